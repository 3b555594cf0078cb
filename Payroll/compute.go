package Payroll

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"AtlasHR/Models"
)

// Engine aggregates a month of daily attendance into a payroll slip.
type Engine struct {
	DB *gorm.DB
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{DB: db}
}

// ComputeSalary builds or rebuilds the slip for (employee, month, year).
// Warnings report conditions that were resolved deterministically but
// deserve human eyes, such as a net payable clipped to zero.
func (e *Engine) ComputeSalary(employeeID uint, month, year int) (*Models.MonthlySalary, []string, error) {
	var employee Models.Employee
	if err := e.DB.First(&employee, employeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, NewError(KindEmployeeNotFound, employeeID, month, year, "")
		}
		return nil, nil, err
	}

	var existing Models.MonthlySalary
	err := e.DB.Where("employee_id = ? AND month = ? AND year = ?", employeeID, month, year).
		First(&existing).Error
	if err == nil && existing.Locked() {
		return nil, nil, NewError(KindSlipLocked, employeeID, month, year,
			"slip is "+string(existing.Status)+"; recomputation is not permitted")
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	days, missing, err := e.monthAttendance(employeeID, month, year)
	if err != nil {
		return nil, nil, err
	}
	if len(missing) > 0 {
		return nil, nil, NewError(KindIncompleteAttendance, employeeID, month, year,
			"missing daily attendance for "+strings.Join(missing, ", "))
	}

	slip := Models.MonthlySalary{
		EmployeeID:  employeeID,
		Month:       month,
		Year:        year,
		Status:      Models.PayGenerated,
		GeneratedOn: time.Now().UTC(),
	}
	var warnings []string

	leaves, err := e.approvedLeaves(employeeID, month, year)
	if err != nil {
		return nil, nil, err
	}

	for _, day := range days {
		switch day.Status {
		case Models.StatusPresent, Models.StatusLate:
			slip.TotalWorkDays++
			slip.TotalPresentDays++
			if day.Status == Models.StatusLate {
				slip.LateDays++
			}
		case Models.StatusHalfDay:
			slip.TotalWorkDays++
			slip.TotalPresentDays += 0.5
		case Models.StatusLeave:
			slip.TotalWorkDays++
			if leaveIsPaid(leaves, day.Date) {
				slip.PaidLeaves++
			} else {
				slip.UnpaidLeaves++
			}
		case Models.StatusAbsent:
			slip.TotalWorkDays++
		case Models.StatusWeekoff, Models.StatusHoliday:
			// not compensable working days
		}
	}

	// basic = base * (present + paid leaves) / work days, banker's rounding.
	if slip.TotalWorkDays > 0 {
		compensable := decimal.NewFromFloat(slip.TotalPresentDays).
			Add(decimal.NewFromInt(int64(slip.PaidLeaves)))
		slip.BasicSalary = employee.BaseSalary.
			Mul(compensable).
			Div(decimal.NewFromInt(int64(slip.TotalWorkDays))).
			RoundBank(2)
	}

	var components []Models.SalaryComponent
	if err := e.DB.Where("is_active = ?", true).Order("id ASC").Find(&components).Error; err != nil {
		return nil, nil, err
	}
	resolved, err := ResolveComponents(components, slip.BasicSalary)
	if err != nil {
		var perr *Error
		if errors.As(err, &perr) {
			perr.EmployeeID = employeeID
			perr.Month = month
			perr.Year = year
		}
		return nil, nil, err
	}

	slip.GrossEarnings = slip.BasicSalary.Add(resolved.Earnings).RoundBank(2)
	slip.TotalDeductions = resolved.Deductions.RoundBank(2)
	slip.NetPayable = slip.GrossEarnings.Sub(slip.TotalDeductions)
	if slip.NetPayable.IsNegative() {
		warnings = append(warnings, fmt.Sprintf(
			"deductions exceed gross earnings by %s; net payable clipped to zero",
			slip.NetPayable.Neg().StringFixed(2)))
		slip.NetPayable = decimal.Zero
	}

	stored, err := e.upsert(&slip)
	if err != nil {
		return nil, nil, err
	}
	return stored, warnings, nil
}

// monthAttendance loads the month's daily records and names any missing
// calendar dates. Every date of the month must be resolved before payroll
// may run; there is no silent skipping.
func (e *Engine) monthAttendance(employeeID uint, month, year int) ([]Models.DailyAttendance, []string, error) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)

	var days []Models.DailyAttendance
	err := e.DB.Where("employee_id = ? AND date >= ? AND date < ?", employeeID, first, next).
		Order("date ASC").
		Find(&days).Error
	if err != nil {
		return nil, nil, err
	}

	have := make(map[string]bool, len(days))
	for _, day := range days {
		have[day.Date.Format("2006-01-02")] = true
	}
	var missing []string
	for date := first; date.Before(next); date = date.AddDate(0, 0, 1) {
		key := date.Format("2006-01-02")
		if !have[key] {
			missing = append(missing, key)
		}
	}
	return days, missing, nil
}

func (e *Engine) approvedLeaves(employeeID uint, month, year int) ([]Models.LeaveRecord, error) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)

	var leaves []Models.LeaveRecord
	err := e.DB.Where("employee_id = ? AND status = ? AND start_date < ? AND end_date >= ?",
		employeeID, "approved", next, first).
		Find(&leaves).Error
	return leaves, err
}

// leaveIsPaid classifies a leave day against the leave subsystem's metadata.
// A leave-status day with no covering record counts as unpaid.
func leaveIsPaid(leaves []Models.LeaveRecord, date time.Time) bool {
	for i := range leaves {
		if leaves[i].Covers(date) {
			return leaves[i].IsPaid
		}
	}
	return false
}

func (e *Engine) upsert(slip *Models.MonthlySalary) (*Models.MonthlySalary, error) {
	err := e.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "employee_id"}, {Name: "month"}, {Name: "year"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_present_days", "total_work_days", "paid_leaves", "unpaid_leaves",
			"late_days", "basic_salary", "gross_earnings", "total_deductions",
			"net_payable", "status", "generated_on", "updated_at",
		}),
	}).Create(slip).Error
	if err != nil {
		return nil, err
	}

	var stored Models.MonthlySalary
	if err := e.DB.Where("employee_id = ? AND month = ? AND year = ?", slip.EmployeeID, slip.Month, slip.Year).
		First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}
