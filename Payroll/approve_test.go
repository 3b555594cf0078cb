package Payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AtlasHR/Models"
)

func TestSlipLifecycle(t *testing.T) {
	db := newTestDB(t)
	employee := seedEmployee(t, db, 26000)
	seedMonth(t, db, employee.ID, 2024, time.March, nil)
	engine := NewEngine(db)

	slip, _, err := engine.ComputeSalary(employee.ID, 3, 2024)
	require.NoError(t, err)
	require.Equal(t, Models.PayGenerated, slip.Status)

	approved, err := engine.ApproveSalary(slip.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, Models.PayApproved, approved.Status)
	require.NotNil(t, approved.ApprovedByID)
	assert.EqualValues(t, 7, *approved.ApprovedByID)

	paid, err := engine.MarkPaid(slip.ID)
	require.NoError(t, err)
	assert.Equal(t, Models.PayPaid, paid.Status)

	var stored Models.MonthlySalary
	require.NoError(t, db.First(&stored, slip.ID).Error)
	assert.Equal(t, Models.PayPaid, stored.Status)
}

func TestApproveRejectsWrongStatus(t *testing.T) {
	db := newTestDB(t)
	employee := seedEmployee(t, db, 26000)
	seedMonth(t, db, employee.ID, 2024, time.March, nil)
	engine := NewEngine(db)

	slip, _, err := engine.ComputeSalary(employee.ID, 3, 2024)
	require.NoError(t, err)
	_, err = engine.ApproveSalary(slip.ID, 7)
	require.NoError(t, err)

	// Double approval is not a valid transition.
	_, err = engine.ApproveSalary(slip.ID, 7)
	require.Error(t, err)
	assert.Equal(t, KindInvalidStatusTransition, KindOf(err))
}

func TestMarkPaidRequiresApproval(t *testing.T) {
	db := newTestDB(t)
	employee := seedEmployee(t, db, 26000)
	seedMonth(t, db, employee.ID, 2024, time.March, nil)
	engine := NewEngine(db)

	slip, _, err := engine.ComputeSalary(employee.ID, 3, 2024)
	require.NoError(t, err)

	_, err = engine.MarkPaid(slip.ID)
	require.Error(t, err)
	assert.Equal(t, KindInvalidStatusTransition, KindOf(err))
}
