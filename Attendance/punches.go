package Attendance

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"AtlasHR/Models"
)

// PunchPair is one validated IN/OUT interval inside a shift-day.
type PunchPair struct {
	In  time.Time `json:"in"`
	Out time.Time `json:"out"`
}

// Normalizer turns the raw punch stream for one shift-day into ordered
// IN/OUT pairs. Reconciliation always works on the snapshot of punches as of
// the query; re-running after more punches arrive is safe.
type Normalizer struct {
	DB *gorm.DB
	// Same-type punches closer together than this collapse into one.
	MinPunchGap time.Duration
}

func NewNormalizer(db *gorm.DB) *Normalizer {
	return &Normalizer{DB: db, MinPunchGap: 2 * time.Minute}
}

// LogicalWindow is the time span a shift-day's punches are grouped into.
// A day shift owns its full calendar date; a night shift owns the span from
// start minus grace on the date itself to end plus grace on the next day.
func (n *Normalizer) LogicalWindow(shift Models.Shift, date time.Time) (time.Time, time.Time, error) {
	date = DateOnly(date)
	if !shift.IsNightShift {
		return date, date.Add(24 * time.Hour), nil
	}

	start, err := ClockOn(date, shift.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ClockOn(date.Add(24*time.Hour), shift.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	graceIn := time.Duration(shift.GraceInMinutes) * time.Minute
	graceOut := time.Duration(shift.GraceOutMinutes) * time.Minute
	return start.Add(-graceIn), end.Add(graceOut), nil
}

// ScheduledWindow is the shift's rostered span on the date, before grace.
func ScheduledWindow(shift Models.Shift, date time.Time) (time.Time, time.Time, error) {
	start, err := ClockOn(date, shift.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ClockOn(date, shift.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if shift.IsNightShift || !end.After(start) {
		end = end.Add(24 * time.Hour)
	}
	return start, end, nil
}

func (n *Normalizer) NormalizePunches(employeeID uint, shift Models.Shift, date time.Time) ([]PunchPair, []string, error) {
	windowStart, windowEnd, err := n.LogicalWindow(shift, date)
	if err != nil {
		return nil, nil, err
	}

	var logs []Models.AttendanceLog
	if err := n.DB.
		Where("employee_id = ? AND punch_time >= ? AND punch_time < ?", employeeID, windowStart, windowEnd).
		Order("punch_time ASC, id ASC").
		Find(&logs).Error; err != nil {
		return nil, nil, err
	}
	if len(logs) == 0 {
		return nil, nil, nil
	}

	punches := n.collapse(logs)
	pairs, anomalies := pairPunches(punches)

	schedStart, schedEnd, err := ScheduledWindow(shift, date)
	if err != nil {
		return nil, nil, err
	}
	acceptStart := schedStart.Add(-time.Duration(shift.GraceInMinutes) * time.Minute)
	acceptEnd := schedEnd.Add(time.Duration(shift.GraceOutMinutes) * time.Minute)

	overlapping := 0
	for _, pair := range pairs {
		if pair.In.Before(acceptEnd) && pair.Out.After(acceptStart) {
			overlapping++
		}
	}
	if overlapping > 1 {
		return nil, anomalies, NewError(KindAmbiguousPunchSequence, employeeID, DateOnly(date),
			fmt.Sprintf("%d punch pairs overlap the shift window; regularization required", overlapping))
	}
	return pairs, anomalies, nil
}

// collapse merges same-type punches that fall within MinPunchGap of each
// other into a single winner. The winner is the highest-precedence record in
// the cluster, earliest wins ties, so a verified manual correction replaces
// the biometric punch it shadows.
func (n *Normalizer) collapse(logs []Models.AttendanceLog) []Models.AttendanceLog {
	var out []Models.AttendanceLog
	for _, punchType := range []Models.PunchType{Models.PunchIn, Models.PunchOut} {
		var cluster []Models.AttendanceLog
		flush := func() {
			if len(cluster) == 0 {
				return
			}
			winner := cluster[0]
			for _, candidate := range cluster[1:] {
				if Models.Precedence(candidate.Source, candidate.Verified) >
					Models.Precedence(winner.Source, winner.Verified) {
					winner = candidate
				}
			}
			out = append(out, winner)
			cluster = cluster[:0]
		}

		for _, punch := range logs {
			if punch.PunchType != punchType {
				continue
			}
			if len(cluster) > 0 && punch.PunchTime.Sub(cluster[0].PunchTime) >= n.MinPunchGap {
				flush()
			}
			cluster = append(cluster, punch)
		}
		flush()
	}

	sortPunches(out)
	return out
}

func sortPunches(punches []Models.AttendanceLog) {
	for i := 1; i < len(punches); i++ {
		for j := i; j > 0 && punchBefore(punches[j], punches[j-1]); j-- {
			punches[j], punches[j-1] = punches[j-1], punches[j]
		}
	}
}

func punchBefore(a, b Models.AttendanceLog) bool {
	if !a.PunchTime.Equal(b.PunchTime) {
		return a.PunchTime.Before(b.PunchTime)
	}
	// Same instant: an IN sorts ahead of an OUT.
	return a.PunchType == Models.PunchIn && b.PunchType == Models.PunchOut
}

// pairPunches walks the collapsed stream assigning alternating IN/OUT roles.
// A leading OUT with no open IN is dropped as an anomaly; a trailing IN is
// treated as still clocked in and dropped as incomplete.
func pairPunches(punches []Models.AttendanceLog) ([]PunchPair, []string) {
	var pairs []PunchPair
	var anomalies []string
	var open *Models.AttendanceLog

	for i := range punches {
		punch := punches[i]
		switch punch.PunchType {
		case Models.PunchIn:
			if open != nil {
				anomalies = append(anomalies,
					fmt.Sprintf("consecutive IN punches at %s and %s; keeping the first",
						open.PunchTime.Format(time.RFC3339), punch.PunchTime.Format(time.RFC3339)))
				continue
			}
			open = &punches[i]
		case Models.PunchOut:
			if open == nil {
				anomalies = append(anomalies,
					fmt.Sprintf("orphan OUT punch at %s discarded", punch.PunchTime.Format(time.RFC3339)))
				continue
			}
			pairs = append(pairs, PunchPair{In: open.PunchTime, Out: punch.PunchTime})
			open = nil
		}
	}
	if open != nil {
		anomalies = append(anomalies,
			fmt.Sprintf("unmatched IN punch at %s; employee still clocked in", open.PunchTime.Format(time.RFC3339)))
	}
	return pairs, anomalies
}
