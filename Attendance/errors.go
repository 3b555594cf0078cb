package Attendance

import (
	"errors"
	"fmt"
	"time"
)

// Kind is a stable error discriminator for programmatic handling upstream.
type Kind string

const (
	KindNoShiftConfigured      Kind = "no_shift_configured"
	KindAmbiguousPunchSequence Kind = "ambiguous_punch_sequence"
	KindEmployeeNotFound       Kind = "employee_not_found"
	KindDuplicatePunch         Kind = "duplicate_punch"
)

// Error carries the offending (employee, date) key alongside its kind so
// batch reports and API responses can name the failing unit of work.
type Error struct {
	Kind       Kind
	EmployeeID uint
	Date       time.Time
	Detail     string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: employee %d", e.Kind, e.EmployeeID)
	if !e.Date.IsZero() {
		msg += " on " + e.Date.Format("2006-01-02")
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func NewError(kind Kind, employeeID uint, date time.Time, detail string) *Error {
	return &Error{Kind: kind, EmployeeID: employeeID, Date: date, Detail: detail}
}

// KindOf extracts the engine error kind, or "" for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
