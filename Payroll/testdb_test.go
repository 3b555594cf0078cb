package Payroll

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"AtlasHR/Models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&Models.Department{}, &Models.Shift{}, &Models.Employee{},
		&Models.LeaveRecord{}, &Models.DailyAttendance{},
		&Models.SalaryComponent{}, &Models.MonthlySalary{}, &Models.User{},
	))
	return db
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func seedEmployee(t *testing.T, db *gorm.DB, baseSalary int64) Models.Employee {
	t.Helper()
	department := Models.Department{Name: "Operations", Code: "OPS-" + t.Name(), WeekoffDays: "0"}
	require.NoError(t, db.Create(&department).Error)

	employee := Models.Employee{
		EmployeeCode:  "EMP-" + t.Name(),
		FirstName:     "Asha",
		LastName:      "Verma",
		DepartmentID:  department.ID,
		Email:         t.Name() + "@atlashr.local",
		DateOfJoining: date(2023, time.January, 1),
		BaseSalary:    decimal.NewFromInt(baseSalary),
		Status:        Models.EmployeeActive,
	}
	require.NoError(t, db.Create(&employee).Error)
	return employee
}

// seedMonth writes one resolved attendance row per calendar day: Sundays
// become weekoff, everything else defaults to present unless overridden by
// day of month.
func seedMonth(t *testing.T, db *gorm.DB, employeeID uint, year int, month time.Month, overrides map[int]Models.AttendanceStatus) {
	t.Helper()
	first := date(year, month, 1)
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		status := Models.StatusPresent
		if d.Weekday() == time.Sunday {
			status = Models.StatusWeekoff
		}
		if override, ok := overrides[d.Day()]; ok {
			status = override
		}
		require.NoError(t, db.Create(&Models.DailyAttendance{
			EmployeeID: employeeID,
			Date:       d,
			Status:     status,
		}).Error)
	}
}

func money(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}
