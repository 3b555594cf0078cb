package Attendance

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"AtlasHR/Models"
)

type DayKind string

const (
	DayWorkday DayKind = "workday"
	DayHoliday DayKind = "holiday"
	DayWeekoff DayKind = "weekoff"
)

// ShiftResolution is the effective shift and day classification for one
// (employee, date) pair. OptionalHolidays lists optional calendar entries
// matching the date; they never force holiday classification but are exposed
// for leave-eligibility decisions downstream.
type ShiftResolution struct {
	Shift            Models.Shift
	Kind             DayKind
	OptionalHolidays []Models.HolidayCalendar
}

// CalendarResolver answers "which shift, and what kind of day" for an
// employee and a date. Pure lookup, no writes.
type CalendarResolver struct {
	DB *gorm.DB
	// Applied when the employee's department configures no weekly off days.
	DefaultWeekoffDays []time.Weekday
}

func NewCalendarResolver(db *gorm.DB) *CalendarResolver {
	return &CalendarResolver{
		DB:                 db,
		DefaultWeekoffDays: []time.Weekday{time.Sunday},
	}
}

func (r *CalendarResolver) ResolveShift(employee *Models.Employee, date time.Time) (*ShiftResolution, error) {
	date = DateOnly(date)

	shift, err := r.effectiveShift(employee, date)
	if err != nil {
		return nil, err
	}

	res := &ShiftResolution{Shift: *shift, Kind: DayWorkday}

	holiday, optionals, err := r.holidayFor(employee, date)
	if err != nil {
		return nil, err
	}
	res.OptionalHolidays = optionals

	switch {
	case holiday != nil:
		res.Kind = DayHoliday
	case r.isWeekoff(employee, date):
		res.Kind = DayWeekoff
	}
	return res, nil
}

func (r *CalendarResolver) effectiveShift(employee *Models.Employee, date time.Time) (*Models.Shift, error) {
	var assignment Models.ShiftAssignment
	err := r.DB.Preload("Shift").
		Where("employee_id = ? AND start_date <= ? AND (end_date IS NULL OR end_date > ?)",
			employee.ID, date, date).
		Order("start_date DESC").
		First(&assignment).Error
	if err == nil {
		return &assignment.Shift, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if employee.DefaultShiftID != nil {
		var shift Models.Shift
		if err := r.DB.First(&shift, *employee.DefaultShiftID).Error; err == nil {
			return &shift, nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return nil, NewError(KindNoShiftConfigured, employee.ID, date, "no assignment covers the date and no default shift is set")
}

func (r *CalendarResolver) holidayFor(employee *Models.Employee, date time.Time) (*Models.HolidayCalendar, []Models.HolidayCalendar, error) {
	var holidays []Models.HolidayCalendar
	err := r.DB.Where("date = ? AND (location = '' OR location = ?)", date, employee.Location).
		Find(&holidays).Error
	if err != nil {
		return nil, nil, err
	}

	var optionals []Models.HolidayCalendar
	for i := range holidays {
		if holidays[i].IsOptional {
			optionals = append(optionals, holidays[i])
		}
	}
	for i := range holidays {
		if !holidays[i].IsOptional {
			return &holidays[i], optionals, nil
		}
	}
	return nil, optionals, nil
}

func (r *CalendarResolver) isWeekoff(employee *Models.Employee, date time.Time) bool {
	days := employee.Department.WeekoffWeekdays()
	if days == nil {
		days = r.DefaultWeekoffDays
	}
	for _, day := range days {
		if date.Weekday() == day {
			return true
		}
	}
	return false
}
