package Models

import (
	"time"

	"gorm.io/gorm"
)

type ShiftType string

const (
	ShiftDay       ShiftType = "day"
	ShiftNight     ShiftType = "night"
	ShiftRotationA ShiftType = "rotation_a"
	ShiftRotationB ShiftType = "rotation_b"
	ShiftGeneral   ShiftType = "general"
)

type Shift struct {
	gorm.Model
	Name      string    `json:"name" gorm:"size:50"`
	ShiftType ShiftType `json:"shift_type" gorm:"size:20;default:general"`

	// Clock times in "15:04" form. For a night shift EndTime falls on the
	// calendar day after StartTime.
	StartTime    string `json:"start_time" gorm:"size:5"`
	EndTime      string `json:"end_time" gorm:"size:5"`
	IsNightShift bool   `json:"is_night_shift"`

	GraceInMinutes     uint    `json:"grace_in_minutes" gorm:"default:15"`
	GraceOutMinutes    uint    `json:"grace_out_minutes" gorm:"default:15"`
	UnpaidBreakMinutes uint    `json:"unpaid_break_minutes" gorm:"default:0"`
	MaxWorkHours       float64 `json:"max_work_hours" gorm:"default:8"`
	IsActive           bool    `json:"is_active" gorm:"default:true"`
}

// ShiftAssignment binds an employee to a shift over [StartDate, EndDate).
// A nil EndDate means the assignment is open-ended. Intervals for one
// employee must not overlap; the overlap guard lives in the controller.
type ShiftAssignment struct {
	gorm.Model
	EmployeeID uint       `json:"employee_id" gorm:"index;not null"`
	ShiftID    uint       `json:"shift_id" gorm:"not null"`
	Shift      Shift      `json:"shift,omitempty" gorm:"foreignKey:ShiftID"`
	StartDate  time.Time  `json:"start_date" gorm:"type:date;not null"`
	EndDate    *time.Time `json:"end_date" gorm:"type:date"`
	IsDefault  bool       `json:"is_default"`
}

// Covers reports whether the assignment interval contains the given date.
func (a *ShiftAssignment) Covers(date time.Time) bool {
	if date.Before(a.StartDate) {
		return false
	}
	return a.EndDate == nil || date.Before(*a.EndDate)
}
