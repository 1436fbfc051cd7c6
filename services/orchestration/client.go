// Package orchestration is the HTTP client for the visits orchestration API,
// which owns prisoner, visitor, session and booking data.
package orchestration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"bookvisit/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2/clientcredentials"
)

// Client talks to the orchestration API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client. httpClient is expected to attach the service's
// bearer token (see NewTokenHTTPClient).
func NewClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// NewTokenHTTPClient returns an http.Client that fetches and refreshes a
// client-credentials system token from HMPPS Auth for every request.
func NewTokenHTTPClient(ctx context.Context, tokenURL, clientID, clientSecret string, timeout time.Duration) *http.Client {
	cfg := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}
	client := cfg.Client(ctx)
	client.Timeout = timeout
	return client
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// Continue below.
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusUnprocessableEntity:
		var vr validationErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
			return fmt.Errorf("%w: failed to decode validation error: %v", ErrInvalidResponse, err)
		}
		reasons := vr.ValidationErrors
		if vr.ValidationError != "" {
			reasons = append([]string{vr.ValidationError}, reasons...)
		}
		return &ValidationError{Reasons: reasons}
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: %s %s returned %d: %s", ErrInvalidResponse, method, path, resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

// RegisterBooker registers (or re-finds) the booker behind a One Login identity.
func (c *Client) RegisterBooker(ctx context.Context, auth models.AuthDetails) (string, error) {
	var ref bookerReferenceDto
	body := authDetailDto{OneLoginSub: auth.OneLoginSub, Email: auth.Email, PhoneNumber: auth.PhoneNumber}
	if err := c.do(ctx, http.MethodPut, "/public/booker/register/auth", nil, body, &ref); err != nil {
		return "", err
	}
	return ref.Value, nil
}

// GetPrisoners returns the booker's prisoners with fresh display IDs.
func (c *Client) GetPrisoners(ctx context.Context, bookerReference string) ([]models.Prisoner, error) {
	var dtos []bookerPrisonerInfoDto
	path := fmt.Sprintf("/public/booker/%s/permitted/prisoners", url.PathEscape(bookerReference))
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &dtos); err != nil {
		return nil, err
	}

	prisoners := make([]models.Prisoner, 0, len(dtos))
	for _, d := range dtos {
		prisonCode := d.RegisteredPrison.PrisonCode
		if prisonCode == "" {
			prisonCode = d.Prisoner.PrisonID
		}
		prisoners = append(prisoners, models.Prisoner{
			PrisonerDisplayID:   uuid.New().String(),
			PrisonerNumber:      d.Prisoner.PrisonerNumber,
			FirstName:           d.Prisoner.FirstName,
			LastName:            d.Prisoner.LastName,
			PrisonCode:          prisonCode,
			PrisonName:          d.RegisteredPrison.PrisonName,
			AvailableVOs:        d.AvailableVOs,
			NextAvailableVODate: d.NextAvailableVODate,
			ConvictedStatus:     d.Prisoner.ConvictedStatus,
		})
	}
	return prisoners, nil
}

// ValidatePrisoner checks the prisoner can currently be booked for. A
// *ValidationError carries the reason when not.
func (c *Client) ValidatePrisoner(ctx context.Context, bookerReference, prisonerNumber string) error {
	path := fmt.Sprintf("/public/booker/%s/permitted/prisoners/%s/validate",
		url.PathEscape(bookerReference), url.PathEscape(prisonerNumber))
	return c.do(ctx, http.MethodGet, path, nil, nil, nil)
}

// GetVisitors returns the prisoner's visitors linked to this booker, with
// fresh display IDs and ban details derived from their restrictions. The
// Adult flag is left for the caller, which knows the prison's threshold.
func (c *Client) GetVisitors(ctx context.Context, bookerReference, prisonerNumber string) ([]models.Visitor, error) {
	var dtos []visitorInfoDto
	path := fmt.Sprintf("/public/booker/%s/permitted/prisoners/%s/permitted/visitors",
		url.PathEscape(bookerReference), url.PathEscape(prisonerNumber))
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &dtos); err != nil {
		return nil, err
	}

	visitors := make([]models.Visitor, 0, len(dtos))
	for _, d := range dtos {
		banned, banExpiry := banDetails(d.VisitorRestrictions)
		approved := true
		if d.Approved != nil {
			approved = *d.Approved
		}
		visitors = append(visitors, models.Visitor{
			VisitorDisplayID: uuid.New().String(),
			VisitorID:        d.VisitorID,
			FirstName:        d.FirstName,
			LastName:         d.LastName,
			DateOfBirth:      d.DateOfBirth,
			Banned:           banned,
			BanExpiryDate:    banExpiry,
			Approved:         approved,
		})
	}
	return visitors, nil
}

// banDetails collapses BAN restrictions: any open-ended ban is indefinite,
// otherwise the latest expiry wins.
func banDetails(restrictions []visitorRestrictionDto) (bool, string) {
	banned := false
	latest := ""
	for _, r := range restrictions {
		if r.RestrictionType != restrictionTypeBan {
			continue
		}
		if r.ExpiryDate == "" {
			return true, ""
		}
		banned = true
		if r.ExpiryDate > latest {
			latest = r.ExpiryDate
		}
	}
	return banned, latest
}

// GetSessionRestriction classifies a visit for these visitors as OPEN or CLOSED.
func (c *Client) GetSessionRestriction(ctx context.Context, prisonerNumber string, visitorIDs []int64) (string, error) {
	var dto sessionRestrictionDto
	query := url.Values{}
	query.Set("prisonerId", prisonerNumber)
	query.Set("visitors", joinIDs(visitorIDs))
	if err := c.do(ctx, http.MethodGet, "/visit-sessions/available/restriction", query, nil, &dto); err != nil {
		return "", err
	}
	return dto.SessionRestriction, nil
}

// GetVisitSessions lists bookable sessions for the visitor group.
func (c *Client) GetVisitSessions(ctx context.Context, q VisitSessionsQuery) ([]models.AvailableVisitSession, error) {
	var dtos []availableVisitSessionDto
	query := url.Values{}
	query.Set("prisonId", q.PrisonCode)
	query.Set("prisonerId", q.PrisonerNumber)
	query.Set("visitors", joinIDs(q.VisitorIDs))
	if q.ExcludedApplicationReference != "" {
		query.Set("excludedApplicationReference", q.ExcludedApplicationReference)
	}
	query.Set("userName", q.BookerReference)
	query.Set("userType", userTypePublic)
	if err := c.do(ctx, http.MethodGet, "/visit-sessions/available", query, nil, &dtos); err != nil {
		return nil, err
	}

	sessions := make([]models.AvailableVisitSession, 0, len(dtos))
	for _, d := range dtos {
		sessions = append(sessions, models.AvailableVisitSession{
			SessionDate:              d.SessionDate,
			SessionTemplateReference: d.SessionTemplateReference,
			SessionTimeSlot:          models.SessionTimeSlot{StartTime: d.SessionTimeSlot.StartTime, EndTime: d.SessionTimeSlot.EndTime},
			SessionRestriction:       d.SessionRestriction,
			NeedsReview:              d.NeedsReview,
		})
	}
	return sessions, nil
}

func visitorDtos(visitors []models.Visitor, mainContact *models.MainContact) []visitorDto {
	dtos := make([]visitorDto, 0, len(visitors))
	for _, v := range visitors {
		isContact := mainContact != nil && mainContact.Contact != nil && mainContact.Contact.VisitorID == v.VisitorID
		dtos = append(dtos, visitorDto{NomisPersonID: v.VisitorID, VisitContact: isContact})
	}
	return dtos
}

// CreateVisitApplication reserves the session and returns the application reference.
func (c *Client) CreateVisitApplication(ctx context.Context, req CreateApplicationRequest) (string, error) {
	body := createApplicationDto{
		PrisonerID:               req.PrisonerNumber,
		SessionTemplateReference: req.SessionTemplateReference,
		SessionDate:              req.SessionDate,
		ApplicationRestriction:   req.SessionRestriction,
		Visitors:                 visitorDtos(req.Visitors, nil),
		ActionedBy:               req.BookerReference,
		UserType:                 userTypePublic,
	}
	var app applicationDto
	if err := c.do(ctx, http.MethodPost, "/visits/application/slot/reserve", nil, body, &app); err != nil {
		return "", err
	}
	c.logger.Info("Visit application created",
		zap.String("applicationReference", app.Reference),
		zap.String("prisonerNumber", req.PrisonerNumber))
	return app.Reference, nil
}

// ChangeVisitApplication updates an existing draft application.
func (c *Client) ChangeVisitApplication(ctx context.Context, applicationReference string, req ChangeApplicationRequest) error {
	body := changeApplicationDto{
		SessionTemplateReference: req.SessionTemplateReference,
		SessionDate:              req.SessionDate,
		ApplicationRestriction:   req.SessionRestriction,
		Visitors:                 visitorDtos(req.Visitors, req.MainContact),
	}
	if req.MainContact != nil {
		contact := &contactDto{Name: req.MainContact.Name()}
		if req.ContactDetails != nil {
			contact.Email = req.ContactDetails.Email
			contact.TelephoneNumber = req.ContactDetails.Phone
		}
		body.VisitContact = contact
	}
	if req.VisitorSupport != nil && *req.VisitorSupport != "" {
		body.VisitorSupport = &supportDto{Description: *req.VisitorSupport}
	}

	path := fmt.Sprintf("/visits/application/%s/slot/change", url.PathEscape(applicationReference))
	return c.do(ctx, http.MethodPut, path, nil, body, &applicationDto{})
}

// BookVisit commits a draft application and returns the visit reference. A
// *ValidationError carries the reason when the booking is refused.
func (c *Client) BookVisit(ctx context.Context, applicationReference, actionedBy string) (string, error) {
	body := bookApplicationDto{
		ApplicationMethodType: applicationMethodWebsite,
		ActionedBy:            actionedBy,
		UserType:              userTypePublic,
	}
	var visit visitDto
	path := fmt.Sprintf("/visits/%s/book", url.PathEscape(applicationReference))
	if err := c.do(ctx, http.MethodPut, path, nil, body, &visit); err != nil {
		return "", err
	}
	return visit.Reference, nil
}

// CancelVisit cancels a booked visit identified by its application reference.
func (c *Client) CancelVisit(ctx context.Context, applicationReference, actionedBy string) error {
	body := cancelVisitDto{
		ActionedBy:            actionedBy,
		UserType:              userTypePublic,
		ApplicationMethodType: applicationMethodWebsite,
	}
	path := fmt.Sprintf("/visits/%s/cancel", url.PathEscape(applicationReference))
	return c.do(ctx, http.MethodPut, path, nil, body, nil)
}

// GetPrison returns a prison's booking policy.
func (c *Client) GetPrison(ctx context.Context, prisonCode string) (*models.Prison, error) {
	var dto prisonDto
	path := fmt.Sprintf("/config/prisons/prison/%s", url.PathEscape(prisonCode))
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &dto); err != nil {
		return nil, err
	}
	return &models.Prison{
		Code:                dto.Code,
		PrisonName:          dto.PrisonName,
		MaxTotalVisitors:    dto.MaxTotalVisitors,
		MaxAdultVisitors:    dto.MaxAdultVisitors,
		MaxChildVisitors:    dto.MaxChildVisitors,
		AdultAgeYears:       dto.AdultAgeYears,
		PolicyNoticeDaysMin: dto.PolicyNoticeDaysMin,
		PolicyNoticeDaysMax: dto.PolicyNoticeDaysMax,
		PhoneNumber:         dto.PhoneNumber,
		WebAddress:          dto.WebAddress,
	}, nil
}

// RegisterPrisoner links a prisoner to the booker. It returns false when the
// details do not match a prisoner.
func (c *Client) RegisterPrisoner(ctx context.Context, bookerReference string, req models.RegisterPrisonerRequest) (bool, error) {
	body := registerPrisonerDto{
		PrisonerID:          req.PrisonerNumber,
		PrisonerFirstName:   req.FirstName,
		PrisonerLastName:    req.LastName,
		PrisonerDateOfBirth: req.DateOfBirth,
		PrisonCode:          req.PrisonCode,
	}
	path := fmt.Sprintf("/public/booker/%s/permitted/prisoners/register", url.PathEscape(bookerReference))
	err := c.do(ctx, http.MethodPost, path, nil, body, nil)
	var ve *ValidationError
	if errors.As(err, &ve) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AddVisitorRequest asks for a visitor to be linked to the booker's prisoner.
func (c *Client) AddVisitorRequest(ctx context.Context, bookerReference, prisonerNumber string, req models.AddVisitorRequest) error {
	body := addVisitorRequestDto{FirstName: req.FirstName, LastName: req.LastName, DateOfBirth: req.DateOfBirth}
	path := fmt.Sprintf("/public/booker/%s/permitted/prisoners/%s/permitted/visitors/request",
		url.PathEscape(bookerReference), url.PathEscape(prisonerNumber))
	return c.do(ctx, http.MethodPost, path, nil, body, nil)
}

// GetFuturePublicVisits lists the booker's upcoming visits with fresh display IDs.
func (c *Client) GetFuturePublicVisits(ctx context.Context, bookerReference string) ([]models.Visit, error) {
	var dtos []visitDto
	path := fmt.Sprintf("/public/booker/%s/visits/booked/future", url.PathEscape(bookerReference))
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &dtos); err != nil {
		return nil, err
	}

	visits := make([]models.Visit, 0, len(dtos))
	for _, d := range dtos {
		date, start := splitTimestamp(d.StartTimestamp)
		_, end := splitTimestamp(d.EndTimestamp)
		names := make([]string, 0, len(d.Visitors))
		for _, v := range d.Visitors {
			names = append(names, v.FirstName+" "+v.LastName)
		}
		visits = append(visits, models.Visit{
			VisitDisplayID:       uuid.New().String(),
			Reference:            d.Reference,
			ApplicationReference: d.ApplicationReference,
			PrisonerNumber:       d.PrisonerID,
			PrisonCode:           d.PrisonID,
			PrisonName:           d.PrisonName,
			VisitStatus:          d.VisitStatus,
			SessionDate:          date,
			SessionTimeSlot:      models.SessionTimeSlot{StartTime: start, EndTime: end},
			Visitors:             names,
		})
	}
	return visits, nil
}

// splitTimestamp turns "2024-05-30T10:00:00" into ("2024-05-30", "10:00").
func splitTimestamp(ts string) (string, string) {
	date, clock, found := strings.Cut(ts, "T")
	if !found {
		return ts, ""
	}
	if len(clock) >= 5 {
		clock = clock[:5]
	}
	return date, clock
}
