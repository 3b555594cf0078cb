package Attendance

import (
	"fmt"
	"time"
)

// DateOnly truncates a timestamp to midnight UTC. All engine date keys are
// normalized through this so map lookups and gorm date columns agree.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ClockOn places a "15:04" clock value on the given calendar date.
func ClockOn(date time.Time, clock string) (time.Time, error) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock value %q: %w", clock, err)
	}
	day := DateOnly(date)
	return day.Add(time.Duration(parsed.Hour())*time.Hour + time.Duration(parsed.Minute())*time.Minute), nil
}
