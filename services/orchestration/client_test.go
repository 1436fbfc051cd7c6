package orchestration

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookvisit/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", srv.Client(), zap.NewNop())
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestClient_RegisterBooker(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/public/booker/register/auth", r.URL.Path)

		var body authDetailDto
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "sub-1", body.OneLoginSub)
		assert.Equal(t, "user@example.com", body.Email)

		writeJSON(w, http.StatusOK, bookerReferenceDto{Value: "aaaa-bbbb-cccc"})
	})

	ref, err := client.RegisterBooker(context.Background(), models.AuthDetails{OneLoginSub: "sub-1", Email: "user@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "aaaa-bbbb-cccc", ref)
}

func TestClient_GetPrisoners(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/public/booker/ref-1/permitted/prisoners", r.URL.Path)
		writeJSON(w, http.StatusOK, []bookerPrisonerInfoDto{{
			Prisoner:            prisonerDto{PrisonerNumber: "A1234BC", FirstName: "John", LastName: "Smith", PrisonID: "HEI", ConvictedStatus: "Convicted"},
			AvailableVOs:        2,
			NextAvailableVODate: "2024-07-01",
			RegisteredPrison:    registeredPrisonDto{PrisonCode: "HEI", PrisonName: "Hewell (HMP)"},
		}})
	})

	prisoners, err := client.GetPrisoners(context.Background(), "ref-1")
	require.NoError(t, err)
	require.Len(t, prisoners, 1)

	p := prisoners[0]
	assert.NotEmpty(t, p.PrisonerDisplayID)
	assert.Equal(t, "A1234BC", p.PrisonerNumber)
	assert.Equal(t, "HEI", p.PrisonCode)
	assert.Equal(t, "Hewell (HMP)", p.PrisonName)
	assert.Equal(t, 2, p.AvailableVOs)
	assert.False(t, p.CanBookWithoutVOs())
}

func TestClient_GetPrisoners_DisplayIDsChangePerFetch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []bookerPrisonerInfoDto{{Prisoner: prisonerDto{PrisonerNumber: "A1234BC"}}})
	})

	first, err := client.GetPrisoners(context.Background(), "ref-1")
	require.NoError(t, err)
	second, err := client.GetPrisoners(context.Background(), "ref-1")
	require.NoError(t, err)
	assert.NotEqual(t, first[0].PrisonerDisplayID, second[0].PrisonerDisplayID)
}

func TestClient_ValidatePrisoner_ValidationError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/public/booker/ref-1/permitted/prisoners/A1234BC/validate", r.URL.Path)
		writeJSON(w, http.StatusUnprocessableEntity, validationErrorResponse{
			Status:          422,
			ValidationError: ReasonPrisonerReleased,
		})
	})

	err := client.ValidatePrisoner(context.Background(), "ref-1", "A1234BC")
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, ReasonPrisonerReleased, ve.Reason())
	assert.True(t, ve.HasReason(ReasonPrisonerReleased))
	assert.False(t, ve.HasReason(ReasonRegisteredPrisonNotSupported))
}

func TestClient_ValidatePrisoner_OK(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	assert.NoError(t, client.ValidatePrisoner(context.Background(), "ref-1", "A1234BC"))
}

func TestClient_GetVisitors_BanDetails(t *testing.T) {
	approved := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/public/booker/ref-1/permitted/prisoners/A1234BC/permitted/visitors", r.URL.Path)
		writeJSON(w, http.StatusOK, []visitorInfoDto{
			{VisitorID: 1, FirstName: "Jane", LastName: "Smith", DateOfBirth: "1980-01-01"},
			{VisitorID: 2, FirstName: "Bob", LastName: "Smith", DateOfBirth: "1981-01-01", VisitorRestrictions: []visitorRestrictionDto{
				{RestrictionType: "CLOSED"},
				{RestrictionType: restrictionTypeBan, ExpiryDate: "2024-06-01"},
				{RestrictionType: restrictionTypeBan, ExpiryDate: "2024-08-01"},
			}},
			{VisitorID: 3, FirstName: "Ann", LastName: "Smith", DateOfBirth: "1982-01-01", VisitorRestrictions: []visitorRestrictionDto{
				{RestrictionType: restrictionTypeBan, ExpiryDate: "2024-06-01"},
				{RestrictionType: restrictionTypeBan},
			}},
			{VisitorID: 4, FirstName: "Tom", LastName: "Smith", DateOfBirth: "1983-01-01", Approved: &approved},
		})
	})

	visitors, err := client.GetVisitors(context.Background(), "ref-1", "A1234BC")
	require.NoError(t, err)
	require.Len(t, visitors, 4)

	assert.False(t, visitors[0].Banned)
	assert.True(t, visitors[0].Approved)

	assert.True(t, visitors[1].Banned)
	assert.Equal(t, "2024-08-01", visitors[1].BanExpiryDate)

	assert.True(t, visitors[2].Banned)
	assert.Empty(t, visitors[2].BanExpiryDate, "open-ended ban is indefinite")

	assert.False(t, visitors[3].Approved)

	seen := map[string]bool{}
	for _, v := range visitors {
		assert.NotEmpty(t, v.VisitorDisplayID)
		assert.False(t, seen[v.VisitorDisplayID])
		seen[v.VisitorDisplayID] = true
	}
}

func TestClient_GetSessionRestriction(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/visit-sessions/available/restriction", r.URL.Path)
		assert.Equal(t, "A1234BC", r.URL.Query().Get("prisonerId"))
		assert.Equal(t, "1,2", r.URL.Query().Get("visitors"))
		writeJSON(w, http.StatusOK, sessionRestrictionDto{SessionRestriction: models.SessionRestrictionClosed})
	})

	restriction, err := client.GetSessionRestriction(context.Background(), "A1234BC", []int64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, models.SessionRestrictionClosed, restriction)
}

func TestClient_GetVisitSessions(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/visit-sessions/available", r.URL.Path)
		assert.Equal(t, "HEI", q.Get("prisonId"))
		assert.Equal(t, "A1234BC", q.Get("prisonerId"))
		assert.Equal(t, "10", q.Get("visitors"))
		assert.Equal(t, "aaa-bbb-ccc", q.Get("excludedApplicationReference"))
		assert.Equal(t, userTypePublic, q.Get("userType"))
		writeJSON(w, http.StatusOK, []availableVisitSessionDto{{
			SessionDate:              "2024-05-30",
			SessionTemplateReference: "a",
			SessionTimeSlot:          sessionTimeSlotDto{StartTime: "10:00", EndTime: "11:30"},
			SessionRestriction:       models.SessionRestrictionOpen,
		}})
	})

	sessions, err := client.GetVisitSessions(context.Background(), VisitSessionsQuery{
		PrisonCode:                   "HEI",
		PrisonerNumber:               "A1234BC",
		VisitorIDs:                   []int64{10},
		ExcludedApplicationReference: "aaa-bbb-ccc",
		BookerReference:              "ref-1",
	})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "2024-05-30_a", sessions[0].ID())
	assert.Equal(t, "11:30", sessions[0].SessionTimeSlot.EndTime)
}

func TestClient_CreateAndChangeApplication(t *testing.T) {
	support := "wheelchair access"
	visitors := []models.Visitor{{VisitorID: 1, FirstName: "Jane", LastName: "Smith"}, {VisitorID: 2}}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/visits/application/slot/reserve":
			assert.Equal(t, http.MethodPost, r.Method)
			var body createApplicationDto
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "A1234BC", body.PrisonerID)
			assert.Equal(t, "ref-1", body.ActionedBy)
			assert.Len(t, body.Visitors, 2)
			writeJSON(w, http.StatusCreated, applicationDto{Reference: "aaa-bbb-ccc"})
		case "/visits/application/aaa-bbb-ccc/slot/change":
			assert.Equal(t, http.MethodPut, r.Method)
			var body changeApplicationDto
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.NotNil(t, body.VisitContact)
			assert.Equal(t, "Jane Smith", body.VisitContact.Name)
			assert.Equal(t, "0123", body.VisitContact.TelephoneNumber)
			require.NotNil(t, body.VisitorSupport)
			assert.Equal(t, support, body.VisitorSupport.Description)
			assert.True(t, body.Visitors[0].VisitContact)
			assert.False(t, body.Visitors[1].VisitContact)
			writeJSON(w, http.StatusOK, applicationDto{Reference: "aaa-bbb-ccc"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	ref, err := client.CreateVisitApplication(context.Background(), CreateApplicationRequest{
		PrisonerNumber:           "A1234BC",
		SessionTemplateReference: "a",
		SessionDate:              "2024-05-30",
		SessionRestriction:       models.SessionRestrictionOpen,
		Visitors:                 visitors,
		BookerReference:          "ref-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "aaa-bbb-ccc", ref)

	err = client.ChangeVisitApplication(context.Background(), ref, ChangeApplicationRequest{
		SessionTemplateReference: "a",
		SessionDate:              "2024-05-30",
		SessionRestriction:       models.SessionRestrictionOpen,
		Visitors:                 visitors,
		MainContact:              &models.MainContact{Contact: &visitors[0]},
		ContactDetails:           &models.ContactDetails{Phone: "0123"},
		VisitorSupport:           &support,
	})
	require.NoError(t, err)
}

func TestClient_BookVisit(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/visits/aaa-bbb-ccc/book", r.URL.Path)
		var body bookApplicationDto
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, applicationMethodWebsite, body.ApplicationMethodType)
		writeJSON(w, http.StatusOK, visitDto{Reference: "ab-cd-ef-gh"})
	})

	ref, err := client.BookVisit(context.Background(), "aaa-bbb-ccc", "ref-1")
	require.NoError(t, err)
	assert.Equal(t, "ab-cd-ef-gh", ref)
}

func TestClient_BookVisit_ValidationErrors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, validationErrorResponse{
			Status:           422,
			ValidationErrors: []string{ReasonApplicationSessionNotAvailable, ReasonApplicationNoSlotCapacity},
		})
	})

	_, err := client.BookVisit(context.Background(), "aaa-bbb-ccc", "ref-1")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, ReasonApplicationSessionNotAvailable, ve.Reason())
	assert.True(t, ve.HasReason(ReasonApplicationNoSlotCapacity))
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "not found", status: http.StatusNotFound, wantErr: ErrNotFound},
		{name: "server error", status: http.StatusInternalServerError, wantErr: ErrInvalidResponse},
		{name: "bad request", status: http.StatusBadRequest, wantErr: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			_, err := client.GetPrison(context.Background(), "HEI")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClient_UnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClient(srv.URL, http.DefaultClient, zap.NewNop())

	_, err := client.GetPrison(context.Background(), "HEI")
	assert.ErrorIs(t, err, ErrInternal)
}

func TestClient_GetPrison(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/config/prisons/prison/HEI", r.URL.Path)
		writeJSON(w, http.StatusOK, prisonDto{Code: "HEI", PrisonName: "Hewell (HMP)", MaxTotalVisitors: 6, MaxAdultVisitors: 3, MaxChildVisitors: 3, AdultAgeYears: 16, PolicyNoticeDaysMin: 2, PolicyNoticeDaysMax: 28})
	})

	prison, err := client.GetPrison(context.Background(), "HEI")
	require.NoError(t, err)
	assert.Equal(t, 16, prison.AdultAgeYears)
	assert.Equal(t, 28, prison.PolicyNoticeDaysMax)
}

func TestClient_RegisterPrisoner(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		want    bool
		wantErr error
	}{
		{name: "registered", status: http.StatusOK, want: true},
		{name: "details do not match", status: http.StatusUnprocessableEntity, want: false},
		{name: "upstream failure", status: http.StatusInternalServerError, want: false, wantErr: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/public/booker/ref-1/permitted/prisoners/register", r.URL.Path)
				writeJSON(w, tt.status, validationErrorResponse{Status: tt.status})
			})
			ok, err := client.RegisterPrisoner(context.Background(), "ref-1", models.RegisterPrisonerRequest{PrisonerNumber: "A1234BC"})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, ok)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestClient_AddVisitorRequest(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/public/booker/ref-1/permitted/prisoners/A1234BC/permitted/visitors/request", r.URL.Path)
		var body addVisitorRequestDto
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Ann", body.FirstName)
		w.WriteHeader(http.StatusCreated)
	})

	err := client.AddVisitorRequest(context.Background(), "ref-1", "A1234BC", models.AddVisitorRequest{FirstName: "Ann", LastName: "Smith", DateOfBirth: "1990-01-01"})
	assert.NoError(t, err)
}

func TestClient_GetFuturePublicVisits(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []visitDto{{
			Reference:            "ab-cd-ef-gh",
			ApplicationReference: "aaa-bbb-ccc",
			PrisonerID:           "A1234BC",
			PrisonID:             "HEI",
			VisitStatus:          "BOOKED",
			StartTimestamp:       "2024-05-30T10:00:00",
			EndTimestamp:         "2024-05-30T11:30:00",
			Visitors:             []visitorSummaryDto{{FirstName: "Jane", LastName: "Smith"}},
		}})
	})

	visits, err := client.GetFuturePublicVisits(context.Background(), "ref-1")
	require.NoError(t, err)
	require.Len(t, visits, 1)
	assert.Equal(t, "2024-05-30", visits[0].SessionDate)
	assert.Equal(t, models.SessionTimeSlot{StartTime: "10:00", EndTime: "11:30"}, visits[0].SessionTimeSlot)
	assert.Equal(t, []string{"Jane Smith"}, visits[0].Visitors)
	assert.NotEmpty(t, visits[0].VisitDisplayID)
}

func TestClient_CancelVisit(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/visits/aaa-bbb-ccc/cancel", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})
	assert.NoError(t, client.CancelVisit(context.Background(), "aaa-bbb-ccc", "ref-1"))
}
