package Attendance

import (
	"errors"
	"log"
	"math"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"AtlasHR/Models"
)

// DailyResolver owns DailyAttendance rows. Resolution is idempotent: the same
// punches, shift, and calendar always produce the same record.
type DailyResolver struct {
	DB         *gorm.DB
	Calendar   *CalendarResolver
	Normalizer *Normalizer
}

func NewDailyResolver(db *gorm.DB) *DailyResolver {
	return &DailyResolver{
		DB:         db,
		Calendar:   NewCalendarResolver(db),
		Normalizer: NewNormalizer(db),
	}
}

func (r *DailyResolver) ResolveDay(employeeID uint, date time.Time) (*Models.DailyAttendance, error) {
	date = DateOnly(date)

	var employee Models.Employee
	if err := r.DB.Preload("Department").First(&employee, employeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewError(KindEmployeeNotFound, employeeID, date, "")
		}
		return nil, err
	}

	// A regularized record is a human correction; recomputation must not
	// silently undo it.
	var existing Models.DailyAttendance
	err := r.DB.Where("employee_id = ? AND date = ?", employeeID, date).First(&existing).Error
	if err == nil && existing.IsRegularized {
		return &existing, nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	resolution, err := r.Calendar.ResolveShift(&employee, date)
	if err != nil {
		return nil, err
	}
	shift := resolution.Shift

	pairs, anomalies, err := r.Normalizer.NormalizePunches(employeeID, shift, date)
	if err != nil {
		return nil, err
	}
	for _, anomaly := range anomalies {
		log.Printf("Punch anomaly for employee %d on %s: %s\n",
			employeeID, date.Format("2006-01-02"), anomaly)
	}

	record := Models.DailyAttendance{
		EmployeeID: employeeID,
		Date:       date,
		ShiftID:    &shift.ID,
	}

	if len(pairs) == 0 {
		switch resolution.Kind {
		case DayHoliday:
			record.Status = Models.StatusHoliday
		case DayWeekoff:
			record.Status = Models.StatusWeekoff
		default:
			if r.onApprovedLeave(employeeID, date) {
				record.Status = Models.StatusLeave
			} else {
				record.Status = Models.StatusAbsent
			}
		}
		return r.upsert(&record)
	}

	inTime := pairs[0].In
	outTime := pairs[len(pairs)-1].Out
	record.InTime = &inTime
	record.OutTime = &outTime

	schedStart, _, err := ScheduledWindow(shift, date)
	if err != nil {
		return nil, err
	}
	graceDeadline := schedStart.Add(time.Duration(shift.GraceInMinutes) * time.Minute)
	if inTime.After(graceDeadline) {
		record.LatenessMinutes = int(inTime.Sub(graceDeadline) / time.Minute)
	}

	worked := outTime.Sub(inTime).Hours() - float64(shift.UnpaidBreakMinutes)/60
	if worked < 0 {
		worked = 0
	}
	record.WorkHours = round2(math.Min(worked, shift.MaxWorkHours))
	record.OvertimeHours = round2(math.Max(0, worked-shift.MaxWorkHours))

	switch {
	case worked < shift.MaxWorkHours/2:
		record.Status = Models.StatusHalfDay
	case record.LatenessMinutes > 0 && worked < shift.MaxWorkHours:
		record.Status = Models.StatusLate
	default:
		record.Status = Models.StatusPresent
	}

	return r.upsert(&record)
}

// Regularize is the only hand-edit path into a derived daily record. The
// correction is stamped so later recomputations leave it alone.
func (r *DailyResolver) Regularize(employeeID uint, date time.Time, status Models.AttendanceStatus, notes string) (*Models.DailyAttendance, error) {
	date = DateOnly(date)

	var record Models.DailyAttendance
	err := r.DB.Where("employee_id = ? AND date = ?", employeeID, date).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record = Models.DailyAttendance{EmployeeID: employeeID, Date: date}
	} else if err != nil {
		return nil, err
	}

	record.Status = status
	record.IsRegularized = true
	record.RegularizationNotes = notes
	result, err := r.upsert(&record)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *DailyResolver) onApprovedLeave(employeeID uint, date time.Time) bool {
	var count int64
	r.DB.Model(&Models.LeaveRecord{}).
		Where("employee_id = ? AND status = ? AND start_date <= ? AND end_date >= ?",
			employeeID, "approved", date, date).
		Count(&count)
	return count > 0
}

func (r *DailyResolver) upsert(record *Models.DailyAttendance) (*Models.DailyAttendance, error) {
	err := r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "employee_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"shift_id", "in_time", "out_time", "status",
			"work_hours", "overtime_hours", "lateness_minutes",
			"is_regularized", "regularization_notes", "updated_at",
		}),
	}).Create(record).Error
	if err != nil {
		return nil, err
	}

	var stored Models.DailyAttendance
	if err := r.DB.Where("employee_id = ? AND date = ?", record.EmployeeID, record.Date).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
