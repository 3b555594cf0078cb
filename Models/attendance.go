package Models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PunchType string

const (
	PunchIn  PunchType = "IN"
	PunchOut PunchType = "OUT"
)

type PunchSource string

const (
	SourceBiometric PunchSource = "biometric"
	SourceManual    PunchSource = "manual"
	SourceAPI       PunchSource = "api"
)

// Precedence returns the conflict-resolution rank of a punch. A verified
// manual entry beats everything; otherwise biometric > api > unverified
// manual.
func Precedence(source PunchSource, verified bool) int {
	if source == SourceManual && verified {
		return 3
	}
	switch source {
	case SourceBiometric:
		return 2
	case SourceAPI:
		return 1
	default:
		return 0
	}
}

// AttendanceLog is one raw punch event. Rows are append-only: created by
// device sync or manual entry, never mutated. The composite unique index is
// the natural key that rejects retried biometric syncs.
type AttendanceLog struct {
	gorm.Model
	EmployeeID      uint           `json:"employee_id" gorm:"uniqueIndex:idx_punch_natural_key;index"`
	BiometricUserID string         `json:"biometric_user_id" gorm:"size:50"`
	PunchTime       time.Time      `json:"punch_time" gorm:"uniqueIndex:idx_punch_natural_key"`
	PunchType       PunchType      `json:"punch_type" gorm:"size:10;uniqueIndex:idx_punch_natural_key"`
	DeviceID        string         `json:"device_id" gorm:"size:50"`
	RawPayload      datatypes.JSON `json:"raw_payload"`
	Source          PunchSource    `json:"source" gorm:"size:20;default:biometric"`
	Verified        bool           `json:"verified"`
}

type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "present"
	StatusAbsent  AttendanceStatus = "absent"
	StatusLate    AttendanceStatus = "late"
	StatusHalfDay AttendanceStatus = "half_day"
	StatusWeekoff AttendanceStatus = "weekoff"
	StatusHoliday AttendanceStatus = "holiday"
	StatusLeave   AttendanceStatus = "leave"
)

// DailyAttendance is the derived record for one (employee, date) pair. It is
// owned and fully rewritten by the daily resolver; the only hand-edit path is
// regularization, which survives recomputation.
type DailyAttendance struct {
	gorm.Model
	EmployeeID          uint             `json:"employee_id" gorm:"uniqueIndex:idx_daily_employee_date;index"`
	Date                time.Time        `json:"date" gorm:"type:date;uniqueIndex:idx_daily_employee_date"`
	ShiftID             *uint            `json:"shift_id"`
	InTime              *time.Time       `json:"in_time"`
	OutTime             *time.Time       `json:"out_time"`
	Status              AttendanceStatus `json:"status" gorm:"size:20;default:absent"`
	WorkHours           float64          `json:"work_hours"`
	OvertimeHours       float64          `json:"overtime_hours"`
	LatenessMinutes     int              `json:"lateness_minutes"`
	IsRegularized       bool             `json:"is_regularized"`
	RegularizationNotes string           `json:"regularization_notes" gorm:"type:text"`
}
