package Payroll

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindIncompleteAttendance      Kind = "incomplete_attendance"
	KindCyclicComponentReference  Kind = "cyclic_component_reference"
	KindSlipLocked                Kind = "slip_locked"
	KindEmployeeNotFound          Kind = "employee_not_found"
	KindInvalidStatusTransition   Kind = "invalid_status_transition"
)

// Error carries the offending (employee, month, year) key alongside a stable
// kind.
type Error struct {
	Kind       Kind
	EmployeeID uint
	Month      int
	Year       int
	Detail     string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: employee %d", e.Kind, e.EmployeeID)
	if e.Month != 0 {
		msg += fmt.Sprintf(" for %02d/%d", e.Month, e.Year)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func NewError(kind Kind, employeeID uint, month, year int, detail string) *Error {
	return &Error{Kind: kind, EmployeeID: employeeID, Month: month, Year: year, Detail: detail}
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
