// Package eligibility decides which visitors may attend a visit and whether
// a selection of visitors satisfies a prison's visitor policy.
package eligibility

import (
	"time"

	"bookvisit/models"
)

const dateFormat = "2006-01-02"

// LegalAdultAge is the age at least one visitor must have reached,
// independent of a prison's own adult threshold.
const LegalAdultAge = 18

// Policy is the subset of a prison's rules that applies to visitor selection.
type Policy struct {
	AdultAgeYears    int
	MaxAdultVisitors int
	MaxChildVisitors int
	MaxTotalVisitors int
}

// PolicyFor extracts the visitor policy from a prison snapshot.
func PolicyFor(prison models.Prison) Policy {
	return Policy{
		AdultAgeYears:    prison.AdultAgeYears,
		MaxAdultVisitors: prison.MaxAdultVisitors,
		MaxChildVisitors: prison.MaxChildVisitors,
		MaxTotalVisitors: prison.MaxTotalVisitors,
	}
}

// Partition is the output of PartitionByEligibility.
type Partition struct {
	Eligible   []models.Visitor
	Ineligible []models.Visitor
}

// PartitionByEligibility splits visitors by whether a ban stops them from
// attending any visit bookable within the notice window. A dated ban counts
// only while it still has policyNoticeDaysMax or more days to run.
func PartitionByEligibility(visitors []models.Visitor, policyNoticeDaysMax int, today time.Time) Partition {
	p := Partition{
		Eligible:   []models.Visitor{},
		Ineligible: []models.Visitor{},
	}
	for _, v := range visitors {
		if isEligible(v, policyNoticeDaysMax, today) {
			p.Eligible = append(p.Eligible, v)
		} else {
			p.Ineligible = append(p.Ineligible, v)
		}
	}
	return p
}

func isEligible(v models.Visitor, policyNoticeDaysMax int, today time.Time) bool {
	if !v.Banned {
		return true
	}
	if v.BanExpiryDate == "" {
		return false
	}
	expiry, err := time.Parse(dateFormat, v.BanExpiryDate)
	if err != nil {
		return false
	}
	return DaysBetween(today, expiry) < policyNoticeDaysMax
}

// ValidateVisitorSelection resolves the submitted display IDs against
// allVisitors and checks them against the policy. Duplicate and unknown IDs
// are dropped silently. On failure the error is a *ValidationError.
func ValidateVisitorSelection(selectedDisplayIDs []string, allVisitors []models.Visitor, policy Policy, today time.Time) ([]models.Visitor, error) {
	seen := make(map[string]bool, len(selectedDisplayIDs))
	selected := make([]models.Visitor, 0, len(selectedDisplayIDs))
	for _, id := range selectedDisplayIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if v, ok := models.FindVisitor(allVisitors, id); ok {
			selected = append(selected, v)
		}
	}

	if len(selected) == 0 {
		return nil, newSelectionError(KindNoVisitorsSelected)
	}
	if len(selected) > policy.MaxTotalVisitors {
		return nil, newSelectionError(KindTotalVisitorsExceeded)
	}

	adults, children, legalAdults := 0, 0, 0
	for _, v := range selected {
		age := AgeInYears(v.DateOfBirth, today)
		if age >= policy.AdultAgeYears {
			adults++
		} else {
			children++
		}
		if age >= LegalAdultAge {
			legalAdults++
		}
	}

	if adults > policy.MaxAdultVisitors {
		return nil, newSelectionError(KindMaxAdultVisitorsExceeded)
	}
	if children > policy.MaxChildVisitors {
		return nil, newSelectionError(KindMaxChildVisitorsExceeded)
	}
	if legalAdults == 0 {
		return nil, newSelectionError(KindNoAdultPresent)
	}

	return selected, nil
}

// AgeInYears returns whole years between dateOfBirth (YYYY-MM-DD) and today.
// An unparseable date gives -1 so the visitor never counts as an adult.
func AgeInYears(dateOfBirth string, today time.Time) int {
	dob, err := time.Parse(dateFormat, dateOfBirth)
	if err != nil {
		return -1
	}
	years := today.Year() - dob.Year()
	if today.Month() < dob.Month() || (today.Month() == dob.Month() && today.Day() < dob.Day()) {
		years--
	}
	return years
}

// IsAdult reports whether the visitor has reached adultAgeYears by today.
func IsAdult(dateOfBirth string, adultAgeYears int, today time.Time) bool {
	return AgeInYears(dateOfBirth, today) >= adultAgeYears
}

// DaysBetween counts calendar days from one date to another, ignoring time of day.
func DaysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
