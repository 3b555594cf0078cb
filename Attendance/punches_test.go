package Attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AtlasHR/Models"
)

func TestNormalizeCollapsesNearbyPunches(t *testing.T) {
	db := newTestDB(t)
	shift := seedDayShift(t, db)
	employee := seedEmployee(t, db, &shift.ID)
	day := date(2024, time.March, 11)

	// Two IN punches 30 seconds apart: only the first survives.
	seedPunch(t, db, employee.ID, at(day, 9, 0), Models.PunchIn)
	seedPunch(t, db, employee.ID, at(day, 9, 0).Add(30*time.Second), Models.PunchIn)
	seedPunch(t, db, employee.ID, at(day, 17, 0), Models.PunchOut)

	pairs, anomalies, err := NewNormalizer(db).NormalizePunches(employee.ID, shift, day)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, at(day, 9, 0), pairs[0].In)
	assert.Equal(t, at(day, 17, 0), pairs[0].Out)
	assert.Empty(t, anomalies)
}

func TestNormalizeVerifiedManualOverridesBiometric(t *testing.T) {
	db := newTestDB(t)
	shift := seedDayShift(t, db)
	employee := seedEmployee(t, db, &shift.ID)
	day := date(2024, time.March, 11)

	seedPunchFrom(t, db, employee.ID, at(day, 9, 5), Models.PunchIn, Models.SourceBiometric, false)
	seedPunchFrom(t, db, employee.ID, at(day, 9, 4), Models.PunchIn, Models.SourceManual, true)
	seedPunch(t, db, employee.ID, at(day, 17, 0), Models.PunchOut)

	pairs, _, err := NewNormalizer(db).NormalizePunches(employee.ID, shift, day)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, at(day, 9, 4), pairs[0].In)
}

func TestNormalizeOrphanAndTrailingPunches(t *testing.T) {
	db := newTestDB(t)
	shift := seedDayShift(t, db)
	employee := seedEmployee(t, db, &shift.ID)
	day := date(2024, time.March, 11)

	seedPunch(t, db, employee.ID, at(day, 8, 0), Models.PunchOut) // orphan leading OUT
	seedPunch(t, db, employee.ID, at(day, 9, 0), Models.PunchIn)
	seedPunch(t, db, employee.ID, at(day, 17, 0), Models.PunchOut)
	seedPunch(t, db, employee.ID, at(day, 21, 0), Models.PunchIn) // still clocked in

	pairs, anomalies, err := NewNormalizer(db).NormalizePunches(employee.ID, shift, day)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, at(day, 9, 0), pairs[0].In)
	assert.Len(t, anomalies, 2)
}

func TestNormalizeNightShiftWindowSpansMidnight(t *testing.T) {
	db := newTestDB(t)
	shift := seedNightShift(t, db)
	employee := seedEmployee(t, db, &shift.ID)
	day := date(2024, time.March, 11)

	seedPunch(t, db, employee.ID, at(day, 21, 50), Models.PunchIn)
	seedPunch(t, db, employee.ID, at(day.Add(24*time.Hour), 6, 10), Models.PunchOut)

	pairs, _, err := NewNormalizer(db).NormalizePunches(employee.ID, shift, day)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, at(day, 21, 50), pairs[0].In)
	assert.Equal(t, at(day.Add(24*time.Hour), 6, 10), pairs[0].Out)
}

func TestNormalizeAmbiguousOverlappingPairs(t *testing.T) {
	db := newTestDB(t)
	shift := seedDayShift(t, db)
	employee := seedEmployee(t, db, &shift.ID)
	day := date(2024, time.March, 11)

	// Two complete sessions inside the same shift window signal a data-entry
	// conflict that needs regularization, not silent resolution.
	seedPunch(t, db, employee.ID, at(day, 9, 0), Models.PunchIn)
	seedPunch(t, db, employee.ID, at(day, 12, 0), Models.PunchOut)
	seedPunch(t, db, employee.ID, at(day, 13, 0), Models.PunchIn)
	seedPunch(t, db, employee.ID, at(day, 17, 0), Models.PunchOut)

	_, _, err := NewNormalizer(db).NormalizePunches(employee.ID, shift, day)
	require.Error(t, err)
	assert.Equal(t, KindAmbiguousPunchSequence, KindOf(err))
}

func TestNormalizeNoPunches(t *testing.T) {
	db := newTestDB(t)
	shift := seedDayShift(t, db)
	employee := seedEmployee(t, db, &shift.ID)

	pairs, anomalies, err := NewNormalizer(db).NormalizePunches(employee.ID, shift, date(2024, time.March, 11))
	require.NoError(t, err)
	assert.Empty(t, pairs)
	assert.Empty(t, anomalies)
}
