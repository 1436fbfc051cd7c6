// Package calendar turns a flat list of available visit sessions into a
// month-grouped calendar covering a prison's booking window.
package calendar

import (
	"time"

	"bookvisit/models"
)

const (
	dateFormat  = "2006-01-02"
	monthFormat = "January 2006"
)

// CalendarSession is one selectable session on a calendar day.
type CalendarSession struct {
	Reference string `json:"reference"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// CalendarDay is a single date in the booking window.
type CalendarDay struct {
	Date     string            `json:"date"`
	Sessions []CalendarSession `json:"sessions"`
}

// CalendarMonth groups the days of one month. StartDayColumn is the ISO
// weekday (1=Monday..7=Sunday) of the first day listed.
type CalendarMonth struct {
	Label          string        `json:"label"`
	StartDayColumn int           `json:"startDayColumn"`
	Days           []CalendarDay `json:"days"`
}

// Result is the output of BuildCalendar.
type Result struct {
	Months             []CalendarMonth `json:"months"`
	FirstSessionDate   string          `json:"firstSessionDate"`
	AllVisitSessionIDs []string        `json:"allVisitSessionIds"`
}

// BuildCalendar lays sessions out over every date in the closed interval
// [windowStart, windowStart+daysAhead]. Dates without sessions map to an
// empty list. Sessions within a day keep their input order; a repeated
// (date, reference) pair is kept once.
func BuildCalendar(sessions []models.AvailableVisitSession, windowStart time.Time, daysAhead int) Result {
	if len(sessions) == 0 {
		return Result{
			Months:             []CalendarMonth{},
			FirstSessionDate:   "",
			AllVisitSessionIDs: []string{},
		}
	}

	byDate := make(map[string][]CalendarSession)
	allIDs := make([]string, 0, len(sessions))
	seen := make(map[string]bool, len(sessions))
	for _, s := range sessions {
		id := s.ID()
		if seen[id] {
			continue
		}
		seen[id] = true
		byDate[s.SessionDate] = append(byDate[s.SessionDate], CalendarSession{
			Reference: s.SessionTemplateReference,
			StartTime: s.SessionTimeSlot.StartTime,
			EndTime:   s.SessionTimeSlot.EndTime,
		})
		allIDs = append(allIDs, id)
	}

	start := time.Date(windowStart.Year(), windowStart.Month(), windowStart.Day(), 0, 0, 0, 0, time.UTC)
	if daysAhead < 0 {
		daysAhead = 0
	}

	months := make([]CalendarMonth, 0)
	inRange := make(map[string]bool, daysAhead+1)
	for i := 0; i <= daysAhead; i++ {
		day := start.AddDate(0, 0, i)
		date := day.Format(dateFormat)
		inRange[date] = true

		label := day.Format(monthFormat)
		if len(months) == 0 || months[len(months)-1].Label != label {
			months = append(months, CalendarMonth{
				Label:          label,
				StartDayColumn: isoWeekday(day),
				Days:           []CalendarDay{},
			})
		}

		daySessions := byDate[date]
		if daySessions == nil {
			daySessions = []CalendarSession{}
		}
		current := &months[len(months)-1]
		current.Days = append(current.Days, CalendarDay{Date: date, Sessions: daySessions})
	}

	firstSessionDate := ""
	for _, s := range sessions {
		if inRange[s.SessionDate] {
			firstSessionDate = s.SessionDate
			break
		}
	}

	return Result{
		Months:             months,
		FirstSessionDate:   firstSessionDate,
		AllVisitSessionIDs: allIDs,
	}
}

func isoWeekday(t time.Time) int {
	if t.Weekday() == time.Sunday {
		return 7
	}
	return int(t.Weekday())
}
