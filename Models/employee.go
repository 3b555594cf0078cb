package Models

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "active"
	EmployeeInactive EmployeeStatus = "inactive"
	EmployeeOnLeave  EmployeeStatus = "on_leave"
)

type Department struct {
	gorm.Model
	Name      string `json:"name"`
	Code      string `json:"code" gorm:"uniqueIndex;size:20"`
	ManagerID *uint  `json:"manager_id"`
	// Comma separated time.Weekday numbers, e.g. "0" for Sunday or "0,6".
	// Empty means the engine default applies.
	WeekoffDays string `json:"weekoff_days" gorm:"size:20"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`
}

// WeekoffWeekdays parses the configured weekly off days. Returns nil when
// none are configured so callers can fall back to the engine default.
func (d *Department) WeekoffWeekdays() []time.Weekday {
	if d.WeekoffDays == "" {
		return nil
	}
	var days []time.Weekday
	for _, part := range strings.Split(d.WeekoffDays, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 || n > 6 {
			continue
		}
		days = append(days, time.Weekday(n))
	}
	return days
}

type Employee struct {
	gorm.Model
	EmployeeCode    string          `json:"employee_code" gorm:"uniqueIndex;size:20"`
	FirstName       string          `json:"first_name" gorm:"size:50"`
	LastName        string          `json:"last_name" gorm:"size:50"`
	DepartmentID    uint            `json:"department_id" gorm:"index"`
	Department      Department      `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	Email           string          `json:"email" gorm:"uniqueIndex;size:254"`
	Phone           string          `json:"phone" gorm:"size:15"`
	DateOfJoining   time.Time       `json:"date_of_joining" gorm:"type:date"`
	BiometricUserID *string         `json:"biometric_user_id" gorm:"uniqueIndex;size:50"`
	BaseSalary      decimal.Decimal `json:"base_salary" gorm:"type:decimal(10,2);default:0"`
	DefaultShiftID  *uint           `json:"default_shift_id"`
	Location        string          `json:"location" gorm:"size:100"`
	Status          EmployeeStatus  `json:"status" gorm:"size:20;default:active"`
}

func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
