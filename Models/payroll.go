package Models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ComponentType string

const (
	ComponentEarnings   ComponentType = "earnings"
	ComponentDeductions ComponentType = "deductions"
)

// SalaryComponent is a named earnings or deduction rule. Fixed components
// carry a flat amount; percentage components reference another component by
// id, or the basic salary when PercentageOfID is nil.
//
// IsFixed and IsActive carry no column default: gorm omits zero-valued
// fields that have one, which would turn every percentage component back
// into a fixed one on insert.
type SalaryComponent struct {
	gorm.Model
	Name           string          `json:"name" gorm:"uniqueIndex;size:100"`
	ComponentType  ComponentType   `json:"component_type" gorm:"size:20"`
	IsFixed        bool            `json:"is_fixed"`
	Amount         decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);default:0"`
	Percentage     decimal.Decimal `json:"percentage" gorm:"type:decimal(5,2);default:0"`
	PercentageOfID *uint           `json:"percentage_of_id"`
	IsActive       bool            `json:"is_active"`
}

type PayStatus string

const (
	PayDraft     PayStatus = "draft"
	PayGenerated PayStatus = "generated"
	PayApproved  PayStatus = "approved"
	PayPaid      PayStatus = "paid"
)

// MonthlySalary is the derived payroll slip for (employee, month, year).
// The aggregator owns it while status is draft or generated; once approved
// it is immutable except for the approved -> paid transition.
type MonthlySalary struct {
	gorm.Model
	EmployeeID uint     `json:"employee_id" gorm:"uniqueIndex:idx_slip_employee_period;index"`
	Employee   Employee `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
	Month      int      `json:"month" gorm:"uniqueIndex:idx_slip_employee_period"`
	Year       int      `json:"year" gorm:"uniqueIndex:idx_slip_employee_period"`

	// Half days count as 0.5, hence the float.
	TotalPresentDays float64 `json:"total_present_days"`
	TotalWorkDays    int     `json:"total_work_days"`
	PaidLeaves       int     `json:"paid_leaves"`
	UnpaidLeaves     int     `json:"unpaid_leaves"`
	LateDays         int     `json:"late_days"`

	BasicSalary     decimal.Decimal `json:"basic_salary" gorm:"type:decimal(10,2);default:0"`
	GrossEarnings   decimal.Decimal `json:"gross_earnings" gorm:"type:decimal(10,2);default:0"`
	TotalDeductions decimal.Decimal `json:"total_deductions" gorm:"type:decimal(10,2);default:0"`
	NetPayable      decimal.Decimal `json:"net_payable" gorm:"type:decimal(10,2);default:0"`

	Status       PayStatus `json:"status" gorm:"size:20;default:draft"`
	GeneratedOn  time.Time `json:"generated_on"`
	ApprovedByID *uint     `json:"approved_by_id"`
}

// Locked reports whether the slip may no longer be recomputed.
func (s *MonthlySalary) Locked() bool {
	return s.Status == PayApproved || s.Status == PayPaid
}
