// internal/domain/assignment.go
package domain

import (
	"fmt"
	"time"
)

const (
	calendarDateLayout = "2006-01-02"
	displayDateLayout  = "02/01/2006"
)

// CalendarDate is a date without time or zone, stored as "YYYY-MM-DD".
type CalendarDate string

// ParseCalendarDate validates s and returns it as a CalendarDate.
func ParseCalendarDate(s string) (CalendarDate, error) {
	if _, err := time.Parse(calendarDateLayout, s); err != nil {
		return "", fmt.Errorf("invalid calendar date %q: %w", s, err)
	}
	return CalendarDate(s), nil
}

// Time returns the date at midnight UTC.
func (d CalendarDate) Time() (time.Time, error) {
	return time.Parse(calendarDateLayout, string(d))
}

// Display formats the date as day/month/year. Invalid dates are returned unchanged.
func (d CalendarDate) Display() string {
	t, err := d.Time()
	if err != nil {
		return string(d)
	}
	return t.Format(displayDateLayout)
}

// Before reports whether d is strictly earlier than other.
func (d CalendarDate) Before(other CalendarDate) bool {
	a, errA := d.Time()
	b, errB := other.Time()
	if errA != nil || errB != nil {
		return false
	}
	return a.Before(b)
}

// ClientTrainingAssignment binds one training program to one client.
// Assignments are stored in a map keyed by ClientID, one entry per client.
type ClientTrainingAssignment struct {
	ClientID  string        `json:"clientId"`
	ProgramID string        `json:"programId"`
	StartDate *CalendarDate `json:"startDate,omitempty"`
	EndDate   *CalendarDate `json:"endDate,omitempty"`
}

// ResolvedAssignment is an assignment whose program still exists.
type ResolvedAssignment struct {
	Assignment ClientTrainingAssignment `json:"assignment"`
	Program    TrainingProgram          `json:"program"`
}
