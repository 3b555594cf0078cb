package Payroll

import (
	"errors"

	"gorm.io/gorm"

	"AtlasHR/Models"
)

// ApproveSalary moves a generated slip to approved and stamps the approver.
// After this the slip is immutable except for MarkPaid.
func (e *Engine) ApproveSalary(slipID, approverID uint) (*Models.MonthlySalary, error) {
	slip, err := e.loadSlip(slipID)
	if err != nil {
		return nil, err
	}
	if slip.Status != Models.PayGenerated {
		return nil, NewError(KindInvalidStatusTransition, slip.EmployeeID, slip.Month, slip.Year,
			"cannot approve a "+string(slip.Status)+" slip")
	}

	slip.Status = Models.PayApproved
	slip.ApprovedByID = &approverID
	if err := e.DB.Model(slip).
		Select("status", "approved_by_id").
		Updates(Models.MonthlySalary{Status: Models.PayApproved, ApprovedByID: &approverID}).Error; err != nil {
		return nil, err
	}
	return slip, nil
}

// MarkPaid is the terminal transition.
func (e *Engine) MarkPaid(slipID uint) (*Models.MonthlySalary, error) {
	slip, err := e.loadSlip(slipID)
	if err != nil {
		return nil, err
	}
	if slip.Status != Models.PayApproved {
		return nil, NewError(KindInvalidStatusTransition, slip.EmployeeID, slip.Month, slip.Year,
			"cannot mark a "+string(slip.Status)+" slip as paid")
	}

	slip.Status = Models.PayPaid
	if err := e.DB.Model(slip).Update("status", Models.PayPaid).Error; err != nil {
		return nil, err
	}
	return slip, nil
}

func (e *Engine) loadSlip(slipID uint) (*Models.MonthlySalary, error) {
	var slip Models.MonthlySalary
	if err := e.DB.First(&slip, slipID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}
	return &slip, nil
}
