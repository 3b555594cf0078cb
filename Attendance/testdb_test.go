package Attendance

import (
	"fmt"
	"strings"
	"testing"
	"time"

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

	// sqlite allows one writer; a single pooled connection keeps concurrent
	// batch tests from tripping over lock errors.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&Models.Department{}, &Models.Shift{}, &Models.Employee{},
		&Models.ShiftAssignment{}, &Models.HolidayCalendar{}, &Models.LeaveRecord{},
		&Models.AttendanceLog{}, &Models.DailyAttendance{},
	))
	return db
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func at(d time.Time, hour, minute int) time.Time {
	return d.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func seedDayShift(t *testing.T, db *gorm.DB) Models.Shift {
	t.Helper()
	shift := Models.Shift{
		Name:            "Morning",
		ShiftType:       Models.ShiftDay,
		StartTime:       "09:00",
		EndTime:         "17:00",
		GraceInMinutes:  15,
		GraceOutMinutes: 15,
		MaxWorkHours:    8,
		IsActive:        true,
	}
	require.NoError(t, db.Create(&shift).Error)
	return shift
}

func seedNightShift(t *testing.T, db *gorm.DB) Models.Shift {
	t.Helper()
	shift := Models.Shift{
		Name:            "Night",
		ShiftType:       Models.ShiftNight,
		StartTime:       "22:00",
		EndTime:         "06:00",
		IsNightShift:    true,
		GraceInMinutes:  15,
		GraceOutMinutes: 15,
		MaxWorkHours:    8,
		IsActive:        true,
	}
	require.NoError(t, db.Create(&shift).Error)
	return shift
}

func seedEmployee(t *testing.T, db *gorm.DB, defaultShiftID *uint) Models.Employee {
	return seedEmployeeN(t, db, defaultShiftID, 0)
}

func seedEmployeeN(t *testing.T, db *gorm.DB, defaultShiftID *uint, n int) Models.Employee {
	t.Helper()
	tag := fmt.Sprintf("%s-%d", t.Name(), n)
	department := Models.Department{Name: "Operations", Code: "OPS-" + tag, WeekoffDays: "0"}
	require.NoError(t, db.Create(&department).Error)

	biometricID := "BIO-" + tag
	employee := Models.Employee{
		EmployeeCode:    "EMP-" + tag,
		FirstName:       "Asha",
		LastName:        "Verma",
		DepartmentID:    department.ID,
		Email:           tag + "@atlashr.local",
		DateOfJoining:   date(2023, time.January, 1),
		BiometricUserID: &biometricID,
		DefaultShiftID:  defaultShiftID,
		Status:          Models.EmployeeActive,
	}
	require.NoError(t, db.Create(&employee).Error)
	return employee
}

func seedPunch(t *testing.T, db *gorm.DB, employeeID uint, punchTime time.Time, punchType Models.PunchType) Models.AttendanceLog {
	t.Helper()
	return seedPunchFrom(t, db, employeeID, punchTime, punchType, Models.SourceBiometric, false)
}

func seedPunchFrom(t *testing.T, db *gorm.DB, employeeID uint, punchTime time.Time, punchType Models.PunchType, source Models.PunchSource, verified bool) Models.AttendanceLog {
	t.Helper()
	log := Models.AttendanceLog{
		EmployeeID: employeeID,
		PunchTime:  punchTime,
		PunchType:  punchType,
		DeviceID:   "DEV-1",
		Source:     source,
		Verified:   verified,
	}
	require.NoError(t, db.Create(&log).Error)
	return log
}
