package calendar

import (
	"strings"
	"testing"
	"time"

	"bookvisit/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func session(date, ref, start, end string) models.AvailableVisitSession {
	return models.AvailableVisitSession{
		SessionDate:              date,
		SessionTemplateReference: ref,
		SessionTimeSlot:          models.SessionTimeSlot{StartTime: start, EndTime: end},
	}
}

func flatten(res Result) []CalendarDay {
	var days []CalendarDay
	for _, m := range res.Months {
		days = append(days, m.Days...)
	}
	return days
}

func TestBuildCalendar_EmptySessions(t *testing.T) {
	res := BuildCalendar(nil, time.Date(2024, 5, 28, 9, 0, 0, 0, time.UTC), 28)

	assert.Empty(t, res.Months)
	assert.Equal(t, "", res.FirstSessionDate)
	assert.Empty(t, res.AllVisitSessionIDs)
	assert.NotNil(t, res.AllVisitSessionIDs)
}

func TestBuildCalendar_SpansMonthsWithEveryDate(t *testing.T) {
	// Tuesday 28 May 2024 + 5 days runs into June.
	sessions := []models.AvailableVisitSession{
		session("2024-05-30", "a", "10:00", "11:30"),
		session("2024-05-28", "b", "14:00", "15:00"),
		session("2024-06-02", "c", "09:00", "10:00"),
	}

	res := BuildCalendar(sessions, time.Date(2024, 5, 28, 16, 30, 0, 0, time.UTC), 5)

	require.Len(t, res.Months, 2)
	assert.Equal(t, "May 2024", res.Months[0].Label)
	assert.Equal(t, 2, res.Months[0].StartDayColumn)
	assert.Equal(t, "June 2024", res.Months[1].Label)
	assert.Equal(t, 6, res.Months[1].StartDayColumn)

	assert.Equal(t, []CalendarDay{
		{Date: "2024-05-28", Sessions: []CalendarSession{{Reference: "b", StartTime: "14:00", EndTime: "15:00"}}},
		{Date: "2024-05-29", Sessions: []CalendarSession{}},
		{Date: "2024-05-30", Sessions: []CalendarSession{{Reference: "a", StartTime: "10:00", EndTime: "11:30"}}},
		{Date: "2024-05-31", Sessions: []CalendarSession{}},
	}, res.Months[0].Days)
	assert.Equal(t, []CalendarDay{
		{Date: "2024-06-01", Sessions: []CalendarSession{}},
		{Date: "2024-06-02", Sessions: []CalendarSession{{Reference: "c", StartTime: "09:00", EndTime: "10:00"}}},
	}, res.Months[1].Days)

	assert.Equal(t, "2024-05-30", res.FirstSessionDate, "first session date follows input order")
	assert.Equal(t, []string{"2024-05-30_a", "2024-05-28_b", "2024-06-02_c"}, res.AllVisitSessionIDs)
}

func TestBuildCalendar_KeepsInputOrderWithinDay(t *testing.T) {
	sessions := []models.AvailableVisitSession{
		session("2024-05-28", "late", "15:00", "16:00"),
		session("2024-05-28", "early", "09:00", "10:00"),
	}

	res := BuildCalendar(sessions, time.Date(2024, 5, 28, 0, 0, 0, 0, time.UTC), 0)

	require.Len(t, res.Months, 1)
	require.Len(t, res.Months[0].Days, 1)
	sessionsOnDay := res.Months[0].Days[0].Sessions
	require.Len(t, sessionsOnDay, 2)
	assert.Equal(t, "late", sessionsOnDay[0].Reference)
	assert.Equal(t, "early", sessionsOnDay[1].Reference)
}

func TestBuildCalendar_SundayIsColumnSeven(t *testing.T) {
	sessions := []models.AvailableVisitSession{session("2024-09-01", "a", "10:00", "11:00")}

	res := BuildCalendar(sessions, time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC), 0)

	require.Len(t, res.Months, 1)
	assert.Equal(t, 7, res.Months[0].StartDayColumn)
}

func TestBuildCalendar_Completeness(t *testing.T) {
	sessions := []models.AvailableVisitSession{session("2024-02-29", "leap", "10:00", "11:00")}
	start := time.Date(2024, 2, 20, 12, 0, 0, 0, time.UTC)

	for _, daysAhead := range []int{0, 1, 9, 28, 45, 365} {
		res := BuildCalendar(sessions, start, daysAhead)
		days := flatten(res)

		assert.Len(t, days, daysAhead+1, "daysAhead=%d", daysAhead)
		seen := map[string]bool{}
		for _, d := range days {
			assert.False(t, seen[d.Date], "date %s repeated", d.Date)
			seen[d.Date] = true
			if d.Date != "2024-02-29" {
				assert.Empty(t, d.Sessions)
			}
		}
	}
}

func TestBuildCalendar_IDRoundTrip(t *testing.T) {
	sessions := []models.AvailableVisitSession{
		session("2024-05-28", "abc-def-ghi", "10:00", "11:00"),
		session("2024-05-28", "xyz-xyz-xyz", "13:00", "14:00"),
		session("2024-05-29", "abc-def-ghi", "10:00", "11:00"),
		session("2024-05-28", "abc-def-ghi", "10:00", "11:00"),
	}

	res := BuildCalendar(sessions, time.Date(2024, 5, 28, 0, 0, 0, 0, time.UTC), 3)

	assert.Len(t, res.AllVisitSessionIDs, 3)
	for _, id := range res.AllVisitSessionIDs {
		date, ref, ok := strings.Cut(id, "_")
		require.True(t, ok)
		found := false
		for _, s := range sessions {
			if s.SessionDate == date && s.SessionTemplateReference == ref {
				found = true
			}
		}
		assert.True(t, found, "id %s not in input", id)
	}
	assert.Len(t, flatten(res)[0].Sessions, 2, "duplicate pair is shown once")
}

func TestBuildCalendar_FirstSessionDateSkipsOutOfRange(t *testing.T) {
	sessions := []models.AvailableVisitSession{
		session("2024-07-01", "far", "10:00", "11:00"),
		session("2024-05-29", "near", "10:00", "11:00"),
	}

	res := BuildCalendar(sessions, time.Date(2024, 5, 28, 0, 0, 0, 0, time.UTC), 2)

	assert.Equal(t, "2024-05-29", res.FirstSessionDate)
	assert.Equal(t, []string{"2024-07-01_far", "2024-05-29_near"}, res.AllVisitSessionIDs)
}

func TestBuildCalendar_Deterministic(t *testing.T) {
	sessions := []models.AvailableVisitSession{
		session("2024-05-30", "a", "10:00", "11:30"),
		session("2024-06-02", "c", "09:00", "10:00"),
	}
	now := time.Date(2024, 5, 28, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, BuildCalendar(sessions, now, 10), BuildCalendar(sessions, now, 10))
}
