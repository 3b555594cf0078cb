package Attendance

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"AtlasHR/Models"
)

var validate = validator.New()

// PunchInput is the normalized tuple delivered by the biometric sync
// boundary or a manual/API entry form.
type PunchInput struct {
	BiometricUserID string             `json:"user_id"`
	EmployeeID      uint               `json:"employee_id"`
	PunchTime       string             `json:"punch_time" validate:"required"`
	PunchType       Models.PunchType   `json:"punch_type" validate:"required,oneof=IN OUT"`
	DeviceID        string             `json:"device_id"`
	Source          Models.PunchSource `json:"source" validate:"omitempty,oneof=biometric manual api"`
	Verified        bool               `json:"verified"`
	RawPayload      datatypes.JSON     `json:"raw_payload"`
}

// Ingestor appends raw punches. Writes are append-only and independent of
// reconciliation, which always reads a snapshot.
type Ingestor struct {
	DB *gorm.DB
}

func NewIngestor(db *gorm.DB) *Ingestor {
	return &Ingestor{DB: db}
}

// IngestPunch records one punch. Duplicate submissions (the natural key
// (employee, punch_time, punch_type) already present) are rejected with
// DuplicatePunch, not re-recorded.
func (i *Ingestor) IngestPunch(input PunchInput) (*Models.AttendanceLog, error) {
	input.PunchType = Models.PunchType(strings.ToUpper(string(input.PunchType)))
	if input.Source == "" {
		input.Source = Models.SourceBiometric
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	punchTime, err := ParseTimestamp(input.PunchTime)
	if err != nil {
		return nil, err
	}

	employee, err := i.lookupEmployee(input)
	if err != nil {
		return nil, err
	}

	// Explicit pre-insert check; the unique index on the natural key backs
	// it up against concurrent syncs.
	var count int64
	i.DB.Model(&Models.AttendanceLog{}).
		Where("employee_id = ? AND punch_time = ? AND punch_type = ?", employee.ID, punchTime, input.PunchType).
		Count(&count)
	if count > 0 {
		return nil, NewError(KindDuplicatePunch, employee.ID, DateOnly(punchTime),
			string(input.PunchType)+" at "+punchTime.Format(time.RFC3339)+" already recorded")
	}

	biometricID := input.BiometricUserID
	if biometricID == "" && employee.BiometricUserID != nil {
		biometricID = *employee.BiometricUserID
	}

	log := Models.AttendanceLog{
		EmployeeID:      employee.ID,
		BiometricUserID: biometricID,
		PunchTime:       punchTime,
		PunchType:       input.PunchType,
		DeviceID:        input.DeviceID,
		RawPayload:      input.RawPayload,
		Source:          input.Source,
		Verified:        input.Verified,
	}
	if err := i.DB.Create(&log).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") || strings.Contains(err.Error(), "unique constraint") {
			return nil, NewError(KindDuplicatePunch, employee.ID, DateOnly(punchTime), "")
		}
		return nil, err
	}
	return &log, nil
}

func (i *Ingestor) lookupEmployee(input PunchInput) (*Models.Employee, error) {
	var employee Models.Employee
	if input.BiometricUserID != "" {
		err := i.DB.Where("biometric_user_id = ?", input.BiometricUserID).First(&employee).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewError(KindEmployeeNotFound, 0, time.Time{},
				"no employee with biometric id "+input.BiometricUserID)
		}
		return &employee, err
	}

	// An employee without a biometric id can only receive manual or API
	// punches addressed by employee id.
	if input.EmployeeID == 0 || input.Source == Models.SourceBiometric {
		return nil, NewError(KindEmployeeNotFound, input.EmployeeID, time.Time{},
			"biometric punches must carry a biometric user id")
	}
	err := i.DB.First(&employee, input.EmployeeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewError(KindEmployeeNotFound, input.EmployeeID, time.Time{}, "")
	}
	return &employee, err
}

// ParseTimestamp accepts the formats the sync boundary actually sends.
func ParseTimestamp(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.New("unrecognized punch_time format: " + value)
}
