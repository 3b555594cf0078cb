package Models

import (
	"time"

	"gorm.io/gorm"
)

type HolidayCalendar struct {
	gorm.Model
	Date       time.Time `json:"date" gorm:"type:date;uniqueIndex:idx_holiday_date_location"`
	Name       string    `json:"name" gorm:"size:200"`
	IsOptional bool      `json:"is_optional"`
	// Empty location means the holiday applies everywhere.
	Location string `json:"location" gorm:"size:100;uniqueIndex:idx_holiday_date_location"`
}

// LeaveRecord mirrors the leave subsystem's approved leave grants. The
// engine only reads rows with status "approved"; everything else belongs to
// the leave workflow.
type LeaveRecord struct {
	gorm.Model
	EmployeeID uint      `json:"employee_id" gorm:"index;not null"`
	StartDate  time.Time `json:"start_date" gorm:"type:date;not null"`
	EndDate    time.Time `json:"end_date" gorm:"type:date;not null"`
	LeaveType  string    `json:"leave_type" gorm:"size:50"`
	IsPaid     bool      `json:"is_paid"`
	Status     string    `json:"status" gorm:"size:20;default:pending"`
}

// Covers reports whether the leave spans the given date (inclusive range).
func (l *LeaveRecord) Covers(date time.Time) bool {
	return !date.Before(l.StartDate) && !date.After(l.EndDate)
}
