package session

import (
	"context"
	"testing"
	"time"

	"bookvisit/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, 20*time.Minute), mr
}

func TestRedisStore_GetMissingReturnsEmptySession(t *testing.T) {
	store, _ := newTestStore(t)

	us, err := store.Get(context.Background(), "sid-1")
	require.NoError(t, err)
	require.NotNil(t, us)
	assert.Nil(t, us.Booker)
	assert.Nil(t, us.BookingJourney)
	assert.Equal(t, "", us.BookerReference())
}

func TestRedisStore_RoundTrip(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	support := ""

	us := &models.UserSession{
		Booker: &models.Booker{Reference: "ref-1", Prisoners: []models.Prisoner{{PrisonerDisplayID: "p1", PrisonerNumber: "A1234BC"}}},
		BookingJourney: &models.BookingJourney{
			Prisoner:             &models.Prisoner{PrisonerDisplayID: "p1", PrisonerNumber: "A1234BC"},
			SelectedVisitSession: &models.SelectedVisitSession{SessionDate: "2024-05-30", SessionTemplateReference: "a"},
			VisitorSupport:       &support,
		},
		Flash: &models.Flash{Messages: []string{"hello"}},
	}
	require.NoError(t, store.Set(ctx, "sid-1", us))
	assert.Equal(t, 20*time.Minute, mr.TTL(sessionPrefix+"sid-1"))

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "ref-1", got.BookerReference())
	require.NotNil(t, got.BookingJourney.VisitorSupport)
	assert.Equal(t, "", *got.BookingJourney.VisitorSupport, "empty support survives as set")
	assert.Equal(t, []string{"hello"}, got.TakeFlash().Messages)
}

func TestRedisStore_Expiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "sid-1", &models.UserSession{Booker: &models.Booker{Reference: "ref-1"}}))
	mr.FastForward(21 * time.Minute)

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Nil(t, got.Booker)
}

func TestRedisStore_Clear(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "sid-1", &models.UserSession{}))
	require.NoError(t, store.Clear(ctx, "sid-1"))
	assert.False(t, mr.Exists(sessionPrefix+"sid-1"))
}

func TestRedisStore_CorruptData(t *testing.T) {
	store, mr := newTestStore(t)
	require.NoError(t, mr.Set(sessionPrefix+"sid-1", "{not json"))

	_, err := store.Get(context.Background(), "sid-1")
	assert.Error(t, err)
}
