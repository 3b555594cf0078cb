package Attendance

import (
	"bytes"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AtlasHR/Models"
)

func TestResolveDayNightShiftCrossover(t *testing.T) {
	db := newTestDB(t)
	shift := seedNightShift(t, db)
	employee := seedEmployee(t, db, &shift.ID)
	day := date(2024, time.March, 11)

	seedPunch(t, db, employee.ID, at(day, 21, 50), Models.PunchIn)
	seedPunch(t, db, employee.ID, at(day.Add(24*time.Hour), 6, 10), Models.PunchOut)

	record, err := NewDailyResolver(db).ResolveDay(employee.ID, day)
	require.NoError(t, err)

	// The record belongs to the shift's start date even though the OUT punch
	// landed on the next calendar day.
	assert.Equal(t, day, record.Date)
	assert.Equal(t, Models.StatusPresent, record.Status)
	assert.Equal(t, 0, record.LatenessMinutes)
	// 8h20m worked: 8 regular hours, the rest overtime.
	assert.InDelta(t, 8.0, record.WorkHours, 0.001)
	assert.InDelta(t, 0.33, record.OvertimeHours, 0.001)
}

func TestResolveDayGracePeriod(t *testing.T) {
	db := newTestDB(t)
	shift := seedDayShift(t, db)
	employee := seedEmployee(t, db, &shift.ID)
	resolver := NewDailyResolver(db)

	// IN at 09:10 is inside the 15 minute grace window.
	day := date(2024, time.March, 11)
	seedPunch(t, db, employee.ID, at(day, 9, 10), Models.PunchIn)
	seedPunch(t, db, employee.ID, at(day, 17, 10), Models.PunchOut)

	record, err := resolver.ResolveDay(employee.ID, day)
	require.NoError(t, err)
	assert.Equal(t, Models.StatusPresent, record.Status)
	assert.Equal(t, 0, record.LatenessMinutes)

	// IN at 09:20 is 5 minutes past the grace deadline.
	day = date(2024, time.March, 12)
	seedPunch(t, db, employee.ID, at(day, 9, 20), Models.PunchIn)
	seedPunch(t, db, employee.ID, at(day, 17, 0), Models.PunchOut)

	record, err = resolver.ResolveDay(employee.ID, day)
	require.NoError(t, err)
	assert.Equal(t, Models.StatusLate, record.Status)
	assert.Equal(t, 5, record.LatenessMinutes)
}

func TestResolveDayLateButFullHoursStaysPresent(t *testing.T) {
	db := newTestDB(t)
	shift := seedDayShift(t, db)
	employee := seedEmployee(t, db, &shift.ID)
	day := date(2024, time.March, 11)

	// Late arrival, but a full complement of hours worked: the record stays
	// present and the lateness is annotated for downstream policy.
	seedPunch(t, db, employee.ID, at(day, 9, 30), Models.PunchIn)
	seedPunch(t, db, employee.ID, at(day, 17, 45), Models.PunchOut)

	record, err := NewDailyResolver(db).ResolveDay(employee.ID, day)
	require.NoError(t, err)
	assert.Equal(t, Models.StatusPresent, record.Status)
	assert.Equal(t, 15, record.LatenessMinutes)
}

func TestResolveDayHalfDay(t *testing.T) {
	db := newTestDB(t)
	shift := seedDayShift(t, db)
	employee := seedEmployee(t, db, &shift.ID)
	day := date(2024, time.March, 11)

	seedPunch(t, db, employee.ID, at(day, 9, 0), Models.PunchIn)
	seedPunch(t, db, employee.ID, at(day, 12, 0), Models.PunchOut)

	record, err := NewDailyResolver(db).ResolveDay(employee.ID, day)
	require.NoError(t, err)
	assert.Equal(t, Models.StatusHalfDay, record.Status)
	assert.InDelta(t, 3.0, record.WorkHours, 0.001)
}

func TestResolveDayHolidayAndWeekoff(t *testing.T) {
	db := newTestDB(t)
	shift := seedDayShift(t, db)
	employee := seedEmployee(t, db, &shift.ID)
	resolver := NewDailyResolver(db)

	holiday := date(2024, time.March, 12)
	require.NoError(t, db.Create(&Models.HolidayCalendar{Date: holiday, Name: "Festival"}).Error)

	record, err := resolver.ResolveDay(employee.ID, holiday)
	require.NoError(t, err)
	assert.Equal(t, Models.StatusHoliday, record.Status)
	assert.Zero(t, record.WorkHours)

	// March 10th 2024 is a Sunday.
	record, err = resolver.ResolveDay(employee.ID, date(2024, time.March, 10))
	require.NoError(t, err)
	assert.Equal(t, Models.StatusWeekoff, record.Status)
}

func TestResolveDayHolidayWithPunchesCountsWork(t *testing.T) {
	db := newTestDB(t)
	shift := seedDayShift(t, db)
	employee := seedEmployee(t, db, &shift.ID)
	holiday := date(2024, time.March, 12)
	require.NoError(t, db.Create(&Models.HolidayCalendar{Date: holiday, Name: "Festival"}).Error)

	seedPunch(t, db, employee.ID, at(holiday, 9, 0), Models.PunchIn)
	seedPunch(t, db, employee.ID, at(holiday, 17, 0), Models.PunchOut)

	record, err := NewDailyResolver(db).ResolveDay(employee.ID, holiday)
	require.NoError(t, err)
	assert.Equal(t, Models.StatusPresent, record.Status)
	assert.InDelta(t, 8.0, record.WorkHours, 0.001)
}

func TestResolveDayAbsentAndLeave(t *testing.T) {
	db := newTestDB(t)
	shift := seedDayShift(t, db)
	employee := seedEmployee(t, db, &shift.ID)
	resolver := NewDailyResolver(db)

	record, err := resolver.ResolveDay(employee.ID, date(2024, time.March, 11))
	require.NoError(t, err)
	assert.Equal(t, Models.StatusAbsent, record.Status)

	require.NoError(t, db.Create(&Models.LeaveRecord{
		EmployeeID: employee.ID,
		StartDate:  date(2024, time.March, 12),
		EndDate:    date(2024, time.March, 13),
		LeaveType:  "casual",
		IsPaid:     true,
		Status:     "approved",
	}).Error)

	record, err = resolver.ResolveDay(employee.ID, date(2024, time.March, 12))
	require.NoError(t, err)
	assert.Equal(t, Models.StatusLeave, record.Status)
}

func TestResolveDayIdempotent(t *testing.T) {
	db := newTestDB(t)
	shift := seedDayShift(t, db)
	employee := seedEmployee(t, db, &shift.ID)
	day := date(2024, time.March, 11)

	seedPunch(t, db, employee.ID, at(day, 9, 20), Models.PunchIn)
	seedPunch(t, db, employee.ID, at(day, 17, 0), Models.PunchOut)

	resolver := NewDailyResolver(db)
	first, err := resolver.ResolveDay(employee.ID, day)
	require.NoError(t, err)
	second, err := resolver.ResolveDay(employee.ID, day)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.InTime, second.InTime)
	assert.Equal(t, first.OutTime, second.OutTime)
	assert.Equal(t, first.WorkHours, second.WorkHours)
	assert.Equal(t, first.OvertimeHours, second.OvertimeHours)
	assert.Equal(t, first.LatenessMinutes, second.LatenessMinutes)

	var count int64
	db.Model(&Models.DailyAttendance{}).Where("employee_id = ?", employee.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestResolveDayPreservesRegularization(t *testing.T) {
	db := newTestDB(t)
	shift := seedDayShift(t, db)
	employee := seedEmployee(t, db, &shift.ID)
	day := date(2024, time.March, 11)

	resolver := NewDailyResolver(db)
	_, err := resolver.ResolveDay(employee.ID, day)
	require.NoError(t, err)

	corrected, err := resolver.Regularize(employee.ID, day, Models.StatusPresent, "forgot to punch; confirmed by supervisor")
	require.NoError(t, err)
	assert.True(t, corrected.IsRegularized)

	record, err := resolver.ResolveDay(employee.ID, day)
	require.NoError(t, err)
	assert.Equal(t, Models.StatusPresent, record.Status)
	assert.True(t, record.IsRegularized)
	assert.Equal(t, "forgot to punch; confirmed by supervisor", record.RegularizationNotes)
}

func TestResolveDayLogsPunchAnomalies(t *testing.T) {
	db := newTestDB(t)
	shift := seedDayShift(t, db)
	employee := seedEmployee(t, db, &shift.ID)
	day := date(2024, time.March, 11)

	// Orphan OUT before the first IN: discarded from pairing, but it must
	// leave a trace in the log.
	seedPunch(t, db, employee.ID, at(day, 8, 0), Models.PunchOut)
	seedPunch(t, db, employee.ID, at(day, 9, 0), Models.PunchIn)
	seedPunch(t, db, employee.ID, at(day, 17, 0), Models.PunchOut)

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	record, err := NewDailyResolver(db).ResolveDay(employee.ID, day)
	require.NoError(t, err)
	assert.Equal(t, Models.StatusPresent, record.Status)
	assert.Contains(t, buf.String(), "Punch anomaly")
	assert.Contains(t, buf.String(), "orphan OUT")
}

func TestResolveDayEmployeeNotFound(t *testing.T) {
	db := newTestDB(t)
	_, err := NewDailyResolver(db).ResolveDay(9999, date(2024, time.March, 11))
	require.Error(t, err)
	assert.Equal(t, KindEmployeeNotFound, KindOf(err))
}
