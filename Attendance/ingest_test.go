package Attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AtlasHR/Models"
)

func TestIngestPunchByBiometricID(t *testing.T) {
	db := newTestDB(t)
	shift := seedDayShift(t, db)
	employee := seedEmployee(t, db, &shift.ID)

	log, err := NewIngestor(db).IngestPunch(PunchInput{
		BiometricUserID: *employee.BiometricUserID,
		PunchTime:       "2024-03-11 09:02:11",
		PunchType:       Models.PunchIn,
		DeviceID:        "GATE-1",
	})
	require.NoError(t, err)
	assert.Equal(t, employee.ID, log.EmployeeID)
	assert.Equal(t, Models.SourceBiometric, log.Source)
	assert.Equal(t, at(date(2024, time.March, 11), 9, 2).Add(11*time.Second), log.PunchTime)
}

func TestIngestPunchDuplicateRejected(t *testing.T) {
	db := newTestDB(t)
	shift := seedDayShift(t, db)
	employee := seedEmployee(t, db, &shift.ID)
	ingestor := NewIngestor(db)

	input := PunchInput{
		BiometricUserID: *employee.BiometricUserID,
		PunchTime:       "2024-03-11T09:02:11Z",
		PunchType:       Models.PunchIn,
	}
	_, err := ingestor.IngestPunch(input)
	require.NoError(t, err)

	_, err = ingestor.IngestPunch(input)
	require.Error(t, err)
	assert.Equal(t, KindDuplicatePunch, KindOf(err))

	var count int64
	db.Model(&Models.AttendanceLog{}).Where("employee_id = ?", employee.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestIngestPunchUnknownBiometricID(t *testing.T) {
	db := newTestDB(t)
	_, err := NewIngestor(db).IngestPunch(PunchInput{
		BiometricUserID: "NO-SUCH-USER",
		PunchTime:       "2024-03-11 09:00:00",
		PunchType:       Models.PunchIn,
	})
	require.Error(t, err)
	assert.Equal(t, KindEmployeeNotFound, KindOf(err))
}

func TestIngestPunchManualByEmployeeID(t *testing.T) {
	db := newTestDB(t)
	shift := seedDayShift(t, db)
	employee := seedEmployee(t, db, &shift.ID)

	log, err := NewIngestor(db).IngestPunch(PunchInput{
		EmployeeID: employee.ID,
		PunchTime:  "2024-03-11 09:00:00",
		PunchType:  Models.PunchIn,
		Source:     Models.SourceManual,
		Verified:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, Models.SourceManual, log.Source)
	assert.True(t, log.Verified)
}

func TestIngestPunchBiometricSourceRequiresBiometricID(t *testing.T) {
	db := newTestDB(t)
	shift := seedDayShift(t, db)
	employee := seedEmployee(t, db, &shift.ID)

	_, err := NewIngestor(db).IngestPunch(PunchInput{
		EmployeeID: employee.ID,
		PunchTime:  "2024-03-11 09:00:00",
		PunchType:  Models.PunchIn,
		Source:     Models.SourceBiometric,
	})
	require.Error(t, err)
	assert.Equal(t, KindEmployeeNotFound, KindOf(err))
}

func TestIngestPunchRejectsBadInput(t *testing.T) {
	db := newTestDB(t)

	_, err := NewIngestor(db).IngestPunch(PunchInput{
		BiometricUserID: "BIO-1",
		PunchTime:       "2024-03-11 09:00:00",
		PunchType:       "SIDEWAYS",
	})
	require.Error(t, err)

	_, err = NewIngestor(db).IngestPunch(PunchInput{
		BiometricUserID: "BIO-1",
		PunchTime:       "eleven past nine",
		PunchType:       Models.PunchIn,
	})
	require.Error(t, err)
}
