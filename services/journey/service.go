package journey

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookvisit/models"
	"bookvisit/services/calendar"
	"bookvisit/services/eligibility"
	"bookvisit/services/orchestration"
	"bookvisit/utils"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	supportMinLength     = 3
	supportMaxLength     = 512
	someoneElseMaxLength = 250
)

var validate = validator.New()

// SelectPrisoner starts a new journey for one of the booker's prisoners,
// replacing any journey already in the session.
func (s *DefaultBookingJourneyService) SelectPrisoner(ctx context.Context, us *models.UserSession, prisonerDisplayID string) (Step, error) {
	us.BookingJourney = nil
	us.BookingConfirmed = nil

	if us.Booker == nil {
		return StepNone, ErrNotFound
	}
	var prisoner *models.Prisoner
	for i := range us.Booker.Prisoners {
		if us.Booker.Prisoners[i].PrisonerDisplayID == prisonerDisplayID {
			p := us.Booker.Prisoners[i]
			prisoner = &p
			break
		}
	}
	if prisoner == nil {
		s.logger().Warn("Unknown prisoner selected",
			zap.String("bookerReference", us.BookerReference()),
			zap.String("prisonerDisplayId", prisonerDisplayID))
		return StepNone, ErrNotFound
	}

	journey := &models.BookingJourney{Prisoner: prisoner}
	us.BookingJourney = journey

	if err := s.Orchestration.ValidatePrisoner(ctx, us.BookerReference(), prisoner.PrisonerNumber); err != nil {
		reason, ok := cannotBookReasonForPrisoner(err)
		if !ok {
			return StepNone, fmt.Errorf("failed to validate prisoner: %w", err)
		}
		journey.CannotBookReason = reason
	} else if prisoner.AvailableVOs <= 0 && !prisoner.CanBookWithoutVOs() {
		journey.CannotBookReason = models.CannotBookNoVOBalance
	}

	if journey.CannotBookReason != "" {
		s.logger().Info("Booking journey cannot proceed",
			zap.String("bookerReference", us.BookerReference()),
			zap.String("reason", journey.CannotBookReason))
		utils.BookingOutcomesTotal.WithLabelValues("cannot_book").Inc()
		return StepCannotBook, nil
	}
	return StepSelectVisitors, nil
}

func cannotBookReasonForPrisoner(err error) (string, bool) {
	var ve *orchestration.ValidationError
	if !errors.As(err, &ve) {
		return "", false
	}
	switch ve.Reason() {
	case orchestration.ReasonPrisonerReleased, orchestration.ReasonPrisonerTransferredSupportedPrison:
		return models.CannotBookTransferOrRelease, true
	case orchestration.ReasonPrisonerTransferredUnsupportedPrison, orchestration.ReasonRegisteredPrisonNotSupported:
		return models.CannotBookUnsupportedPrison, true
	}
	return "", false
}

func (s *DefaultBookingJourneyService) CannotBook(us *models.UserSession) (*CannotBookView, error) {
	j := us.BookingJourney
	if j == nil || j.Prisoner == nil {
		return nil, ErrNoJourney
	}
	return &CannotBookView{Reason: j.CannotBookReason, Prisoner: j.Prisoner, Prison: j.Prison}, nil
}

// SelectVisitors loads the prison policy and visitor list the first time the
// step is shown and reuses them afterwards.
func (s *DefaultBookingJourneyService) SelectVisitors(ctx context.Context, us *models.UserSession) (*SelectVisitorsView, Step, error) {
	j := us.BookingJourney
	if j == nil || j.Prisoner == nil {
		return nil, StepNone, ErrNoJourney
	}

	if !j.VisitorsLoaded() {
		prison, err := s.Orchestration.GetPrison(ctx, j.Prisoner.PrisonCode)
		if err != nil {
			return nil, StepNone, fmt.Errorf("failed to get prison %s: %w", j.Prisoner.PrisonCode, err)
		}
		visitors, err := s.Orchestration.GetVisitors(ctx, us.BookerReference(), j.Prisoner.PrisonerNumber)
		if err != nil {
			return nil, StepNone, fmt.Errorf("failed to get visitors: %w", err)
		}

		today := s.today()
		for i := range visitors {
			visitors[i].Adult = eligibility.IsAdult(visitors[i].DateOfBirth, prison.AdultAgeYears, today)
		}
		partition := eligibility.PartitionByEligibility(visitors, prison.PolicyNoticeDaysMax, today)

		j.Prison = prison
		j.EligibleVisitors = partition.Eligible
		j.IneligibleVisitors = partition.Ineligible
	}

	if len(legalAdults(j.EligibleVisitors, s.today())) == 0 {
		j.CannotBookReason = models.CannotBookNoEligibleAdultVisitor
		utils.BookingOutcomesTotal.WithLabelValues("cannot_book").Inc()
		return nil, StepCannotBook, nil
	}

	selected := make([]string, 0, len(j.SelectedVisitors))
	for _, v := range j.SelectedVisitors {
		selected = append(selected, v.VisitorDisplayID)
	}
	return &SelectVisitorsView{
		Prisoner:                  j.Prisoner,
		Prison:                    j.Prison,
		EligibleVisitors:          j.EligibleVisitors,
		IneligibleVisitors:        j.IneligibleVisitors,
		SelectedVisitorDisplayIDs: selected,
	}, StepNone, nil
}

// legalAdults returns the visitors old enough to accompany a visit and act
// as main contact. This is the fixed legal age, not the prison's threshold.
func legalAdults(visitors []models.Visitor, today time.Time) []models.Visitor {
	out := make([]models.Visitor, 0, len(visitors))
	for _, v := range visitors {
		if eligibility.AgeInYears(v.DateOfBirth, today) >= eligibility.LegalAdultAge {
			out = append(out, v)
		}
	}
	return out
}

// SubmitVisitors validates the chosen visitors and classifies the visit as
// open or closed.
func (s *DefaultBookingJourneyService) SubmitVisitors(ctx context.Context, us *models.UserSession, visitorDisplayIDs []string) (Step, error) {
	j := us.BookingJourney
	if j == nil || j.Prison == nil {
		return StepNone, ErrNoJourney
	}

	selected, err := eligibility.ValidateVisitorSelection(visitorDisplayIDs, j.EligibleVisitors, eligibility.PolicyFor(*j.Prison), s.today())
	if err != nil {
		var ve *eligibility.ValidationError
		if errors.As(err, &ve) {
			return StepNone, fieldError(ve.Field, ve.Kind)
		}
		return StepNone, err
	}

	restriction, err := s.Orchestration.GetSessionRestriction(ctx, j.Prisoner.PrisonerNumber, models.VisitorIDs(selected))
	if err != nil {
		return StepNone, fmt.Errorf("failed to get session restriction: %w", err)
	}

	if !sameVisitors(j.SelectedVisitors, selected) || j.SessionRestriction != restriction {
		// Later answers were given for the old party. The draft keeps its
		// reference and is brought in line when a time is chosen again.
		j.AllVisitSessionIDs = nil
		j.AllVisitSessions = nil
		j.SelectedVisitSession = nil
		j.VisitorSupport = nil
		j.MainContact = nil
		j.ContactDetails = nil
	}
	j.SelectedVisitors = selected
	j.SessionRestriction = restriction
	if restriction == models.SessionRestrictionClosed {
		return StepClosedVisit, nil
	}
	return StepChooseTime, nil
}

func sameVisitors(a, b []models.Visitor) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].VisitorID != b[i].VisitorID {
			return false
		}
	}
	return true
}

func (s *DefaultBookingJourneyService) ClosedVisit(us *models.UserSession) (*ClosedVisitView, error) {
	j := us.BookingJourney
	if j == nil {
		return nil, ErrNoJourney
	}
	return &ClosedVisitView{Prison: j.Prison}, nil
}

// ChooseTime builds the session calendar for the selected visitors. The
// journey's own draft application is excluded so it does not use up the
// capacity it reserved. With no sessions nothing stays selectable.
func (s *DefaultBookingJourneyService) ChooseTime(ctx context.Context, us *models.UserSession) (*ChooseTimeView, error) {
	j := us.BookingJourney
	if j == nil || j.Prison == nil {
		return nil, ErrNoJourney
	}

	sessions, err := s.Orchestration.GetVisitSessions(ctx, orchestration.VisitSessionsQuery{
		PrisonCode:                   j.Prison.Code,
		PrisonerNumber:               j.Prisoner.PrisonerNumber,
		VisitorIDs:                   models.VisitorIDs(j.SelectedVisitors),
		ExcludedApplicationReference: j.ApplicationReference,
		BookerReference:              us.BookerReference(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get visit sessions: %w", err)
	}

	cal := calendar.BuildCalendar(sessions, s.today(), j.Prison.PolicyNoticeDaysMax)
	if len(cal.AllVisitSessionIDs) == 0 {
		j.AllVisitSessionIDs = nil
		j.AllVisitSessions = nil
		return &ChooseTimeView{Prison: j.Prison, NoSessions: true, Calendar: cal}, nil
	}

	j.AllVisitSessionIDs = cal.AllVisitSessionIDs
	j.AllVisitSessions = sessions

	view := &ChooseTimeView{Prison: j.Prison, Calendar: cal}
	if j.SelectedVisitSession != nil {
		id := models.VisitSessionID(j.SelectedVisitSession.SessionDate, j.SelectedVisitSession.SessionTemplateReference)
		if containsString(j.AllVisitSessionIDs, id) {
			view.SelectedVisitSessionID = id
		}
	}
	return view, nil
}

// SubmitVisitTime reserves the chosen session. The first choice creates the
// draft application; later choices move the existing draft.
func (s *DefaultBookingJourneyService) SubmitVisitTime(ctx context.Context, us *models.UserSession, visitSessionID string) (Step, error) {
	j := us.BookingJourney
	if j == nil || j.Prison == nil {
		return StepNone, ErrNoJourney
	}

	if !containsString(j.AllVisitSessionIDs, visitSessionID) {
		return StepNone, fieldError(FieldVisitSession, KindRequired)
	}
	session, ok := findSession(j.AllVisitSessions, visitSessionID)
	if !ok {
		return StepNone, fieldError(FieldVisitSession, KindRequired)
	}

	selected := &models.SelectedVisitSession{
		SessionDate:              session.SessionDate,
		SessionTemplateReference: session.SessionTemplateReference,
		SessionTimeSlot:          session.SessionTimeSlot,
	}

	if j.ApplicationReference == "" {
		ref, err := s.Orchestration.CreateVisitApplication(ctx, orchestration.CreateApplicationRequest{
			PrisonerNumber:           j.Prisoner.PrisonerNumber,
			SessionTemplateReference: selected.SessionTemplateReference,
			SessionDate:              selected.SessionDate,
			SessionRestriction:       j.SessionRestriction,
			Visitors:                 j.SelectedVisitors,
			BookerReference:          us.BookerReference(),
		})
		if err != nil {
			return StepNone, fmt.Errorf("failed to create visit application: %w", err)
		}
		j.SelectedVisitSession = selected
		j.ApplicationReference = ref
		return StepAdditionalSupport, nil
	}

	j.SelectedVisitSession = selected
	if err := s.changeApplication(ctx, j); err != nil {
		return StepNone, err
	}
	return StepAdditionalSupport, nil
}

func findSession(sessions []models.AvailableVisitSession, id string) (models.AvailableVisitSession, bool) {
	for _, s := range sessions {
		if s.ID() == id {
			return s, true
		}
	}
	return models.AvailableVisitSession{}, false
}

func containsString(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

// changeApplication brings the draft application in line with the journey.
func (s *DefaultBookingJourneyService) changeApplication(ctx context.Context, j *models.BookingJourney) error {
	req := orchestration.ChangeApplicationRequest{
		SessionTemplateReference: j.SelectedVisitSession.SessionTemplateReference,
		SessionDate:              j.SelectedVisitSession.SessionDate,
		SessionRestriction:       j.SessionRestriction,
		Visitors:                 j.SelectedVisitors,
		MainContact:              j.MainContact,
		ContactDetails:           j.ContactDetails,
		VisitorSupport:           j.VisitorSupport,
	}
	if err := s.Orchestration.ChangeVisitApplication(ctx, j.ApplicationReference, req); err != nil {
		return fmt.Errorf("failed to change visit application %s: %w", j.ApplicationReference, err)
	}
	return nil
}

func (s *DefaultBookingJourneyService) AdditionalSupport(us *models.UserSession) (*AdditionalSupportView, error) {
	j := us.BookingJourney
	if j == nil {
		return nil, ErrNoJourney
	}
	return &AdditionalSupportView{VisitorSupport: j.VisitorSupport}, nil
}

func (s *DefaultBookingJourneyService) SubmitAdditionalSupport(ctx context.Context, us *models.UserSession, form AdditionalSupportForm) (Step, error) {
	j := us.BookingJourney
	if j == nil || j.SelectedVisitSession == nil {
		return StepNone, ErrNoJourney
	}

	support := ""
	switch form.AdditionalSupportRequired {
	case "no":
	case "yes":
		support = strings.TrimSpace(form.AdditionalSupport)
		switch {
		case support == "":
			return StepNone, fieldError(FieldAdditionalSupport, KindRequired)
		case len(support) < supportMinLength:
			return StepNone, fieldError(FieldAdditionalSupport, KindTooShort)
		case len(support) > supportMaxLength:
			return StepNone, fieldError(FieldAdditionalSupport, KindTooLong)
		}
	default:
		return StepNone, fieldError(FieldAdditionalSupportRequired, KindRequired)
	}

	j.VisitorSupport = &support
	if err := s.changeApplication(ctx, j); err != nil {
		return StepNone, err
	}
	return StepMainContact, nil
}

func (s *DefaultBookingJourneyService) MainContact(us *models.UserSession) (*MainContactView, error) {
	j := us.BookingJourney
	if j == nil {
		return nil, ErrNoJourney
	}
	return &MainContactView{AdultVisitors: legalAdults(j.SelectedVisitors, s.today()), MainContact: j.MainContact}, nil
}

// SubmitMainContact records who the prison should contact about the visit:
// an adult on the visit, or someone named in free text.
func (s *DefaultBookingJourneyService) SubmitMainContact(ctx context.Context, us *models.UserSession, form MainContactForm) (Step, error) {
	j := us.BookingJourney
	if j == nil || j.SelectedVisitSession == nil {
		return StepNone, ErrNoJourney
	}

	var contact models.MainContact
	switch form.Contact {
	case "":
		return StepNone, fieldError(FieldContact, KindRequired)
	case ContactSomeoneElse:
		name := strings.TrimSpace(form.SomeoneElseName)
		if name == "" {
			return StepNone, fieldError(FieldSomeoneElseName, KindRequired)
		}
		if len(name) > someoneElseMaxLength {
			return StepNone, fieldError(FieldSomeoneElseName, KindTooLong)
		}
		contact.ContactName = name
	default:
		v, ok := models.FindVisitor(legalAdults(j.SelectedVisitors, s.today()), form.Contact)
		if !ok {
			return StepNone, ErrNotFound
		}
		contact.Contact = &v
	}

	j.MainContact = &contact
	if err := s.changeApplication(ctx, j); err != nil {
		return StepNone, err
	}
	return StepContactDetails, nil
}

func (s *DefaultBookingJourneyService) ContactDetails(us *models.UserSession) (*ContactDetailsView, error) {
	j := us.BookingJourney
	if j == nil || j.MainContact == nil {
		return nil, ErrNoJourney
	}
	return &ContactDetailsView{MainContactName: j.MainContact.Name(), ContactDetails: j.ContactDetails}, nil
}

// SubmitContactDetails records the optional email and phone for updates.
// Only the channels ticked in GetUpdatesBy are validated and kept.
func (s *DefaultBookingJourneyService) SubmitContactDetails(ctx context.Context, us *models.UserSession, form ContactDetailsForm) (Step, error) {
	j := us.BookingJourney
	if j == nil || j.MainContact == nil {
		return StepNone, ErrNoJourney
	}

	verr := &ValidationError{}
	details := models.ContactDetails{}
	for _, channel := range form.GetUpdatesBy {
		switch channel {
		case "email":
			email := strings.TrimSpace(form.Email)
			if err := validate.Var(email, "required,max=254,email"); err != nil {
				verr.add(FieldEmail, validationKind(err))
				continue
			}
			details.Email = email
		case "phone":
			phone := normalisePhone(form.Phone)
			if err := validate.Var(phone, "required,min=10,max=16,e164|numeric"); err != nil {
				verr.add(FieldPhone, validationKind(err))
				continue
			}
			details.Phone = phone
		default:
			verr.add(FieldGetUpdatesBy, KindInvalid)
		}
	}
	if err := verr.orNil(); err != nil {
		return StepNone, err
	}

	j.ContactDetails = &details
	if err := s.changeApplication(ctx, j); err != nil {
		return StepNone, err
	}
	return StepCheckDetails, nil
}

func normalisePhone(phone string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(phone))
}

// validationKind maps the first failed validator tag to a field error kind.
func validationKind(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Tag() {
		case "required":
			return KindRequired
		case "max":
			return KindTooLong
		case "min":
			return KindTooShort
		}
	}
	return KindInvalid
}

func (s *DefaultBookingJourneyService) CheckDetails(us *models.UserSession) (*CheckDetailsView, error) {
	j := us.BookingJourney
	if j == nil || j.MainContact == nil {
		return nil, ErrNoJourney
	}
	support := ""
	if j.VisitorSupport != nil {
		support = *j.VisitorSupport
	}
	return &CheckDetailsView{
		Prisoner:             j.Prisoner,
		Prison:               j.Prison,
		SelectedVisitors:     j.SelectedVisitors,
		SelectedVisitSession: j.SelectedVisitSession,
		VisitorSupport:       support,
		MainContactName:      j.MainContact.Name(),
		ContactDetails:       j.ContactDetails,
	}, nil
}

// Book commits the draft application. Refusals the booker can act on are
// turned into a redirect; anything else is returned as an error.
func (s *DefaultBookingJourneyService) Book(ctx context.Context, us *models.UserSession) (Step, error) {
	j := us.BookingJourney
	if !StepCheckDetails.Ready(us) {
		return StepNone, ErrNoJourney
	}
	log := s.logger().With(
		zap.String("bookerReference", us.BookerReference()),
		zap.String("applicationReference", j.ApplicationReference))

	visitReference, err := s.Orchestration.BookVisit(ctx, j.ApplicationReference, us.BookerReference())
	if err != nil {
		var ve *orchestration.ValidationError
		if !errors.As(err, &ve) {
			utils.BookingOutcomesTotal.WithLabelValues("error").Inc()
			return StepNone, fmt.Errorf("failed to book visit: %w", err)
		}
		log.Info("Booking refused", zap.Strings("reasons", ve.Reasons))

		switch {
		case ve.HasReason(orchestration.ReasonApplicationPrisonerNotFound):
			utils.BookingOutcomesTotal.WithLabelValues("error").Inc()
			return StepNone, fmt.Errorf("failed to book visit: %w", err)
		case ve.HasReason(orchestration.ReasonApplicationPrisonPrisonerMismatch):
			j.CannotBookReason = models.CannotBookTransferOrRelease
			utils.BookingOutcomesTotal.WithLabelValues("cannot_book").Inc()
			return StepCannotBook, nil
		case ve.HasReason(orchestration.ReasonApplicationNoVOBalance):
			j.CannotBookReason = models.CannotBookNoVOBalance
			utils.BookingOutcomesTotal.WithLabelValues("cannot_book").Inc()
			return StepCannotBook, nil
		case ve.HasReason(orchestration.ReasonApplicationSessionNotAvailable),
			ve.HasReason(orchestration.ReasonApplicationNoSlotCapacity):
			j.SelectedVisitSession = nil
			us.Flash = &models.Flash{Messages: []string{MessageSessionNoLongerAvailable}}
			utils.BookingOutcomesTotal.WithLabelValues("session_unavailable").Inc()
			return StepChooseTime, nil
		}
		utils.BookingOutcomesTotal.WithLabelValues("error").Inc()
		return StepNone, fmt.Errorf("failed to book visit: %w", err)
	}

	confirmed := &models.BookingConfirmed{
		PrisonCode:     j.Prison.Code,
		PrisonName:     j.Prison.PrisonName,
		VisitReference: visitReference,
	}
	if j.ContactDetails != nil {
		confirmed.HasEmail = j.ContactDetails.Email != ""
		confirmed.HasPhone = j.ContactDetails.Phone != ""
	}
	us.BookingConfirmed = confirmed
	us.BookingJourney = nil

	log.Info("Visit booked", zap.String("visitReference", visitReference))
	utils.BookingOutcomesTotal.WithLabelValues("booked").Inc()
	return StepBooked, nil
}

func (s *DefaultBookingJourneyService) Booked(us *models.UserSession) (*BookedView, error) {
	if us.BookingConfirmed == nil {
		return nil, ErrNoJourney
	}
	return &BookedView{BookingConfirmed: *us.BookingConfirmed}, nil
}

// ReturnHome abandons the journey. Any draft application is left to expire upstream.
func (s *DefaultBookingJourneyService) ReturnHome(us *models.UserSession) {
	us.BookingJourney = nil
}
