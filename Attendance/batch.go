package Attendance

import (
	"runtime"
	"sync"
	"time"

	"AtlasHR/Models"
)

// UnitFailure names the unit of work that failed during a batch run.
type UnitFailure struct {
	EmployeeID uint      `json:"employee_id"`
	Date       time.Time `json:"date"`
	Kind       Kind      `json:"kind"`
	Message    string    `json:"message"`
}

// BatchReport aggregates a batch run. Failures never abort the run; each one
// is collected and the remaining units proceed.
type BatchReport struct {
	Resolved int           `json:"resolved"`
	Failures []UnitFailure `json:"failures"`

	mu sync.Mutex
}

func (r *BatchReport) addResolved(n int) {
	r.mu.Lock()
	r.Resolved += n
	r.mu.Unlock()
}

func (r *BatchReport) addFailure(employeeID uint, date time.Time, err error) {
	r.mu.Lock()
	r.Failures = append(r.Failures, UnitFailure{
		EmployeeID: employeeID,
		Date:       date,
		Kind:       KindOf(err),
		Message:    err.Error(),
	})
	r.mu.Unlock()
}

// ReconcileRange resolves every date in [from, to] for one employee,
// sequentially: days inside one timeline have a strict data dependency.
func (r *DailyResolver) ReconcileRange(employeeID uint, from, to time.Time) *BatchReport {
	report := &BatchReport{}
	r.reconcileRangeInto(report, employeeID, from, to)
	return report
}

func (r *DailyResolver) reconcileRangeInto(report *BatchReport, employeeID uint, from, to time.Time) {
	for date := DateOnly(from); !date.After(DateOnly(to)); date = date.Add(24 * time.Hour) {
		if _, err := r.ResolveDay(employeeID, date); err != nil {
			report.addFailure(employeeID, date, err)
			continue
		}
		report.addResolved(1)
	}
}

// ReconcileAll fans the range out across employees. Different employees are
// fully independent, so the work runs on a pool sized to available cores.
func (r *DailyResolver) ReconcileAll(employeeIDs []uint, from, to time.Time) *BatchReport {
	report := &BatchReport{}
	jobs := make(chan uint)
	var wg sync.WaitGroup

	workers := runtime.GOMAXPROCS(0)
	if workers > len(employeeIDs) {
		workers = len(employeeIDs)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for employeeID := range jobs {
				r.reconcileRangeInto(report, employeeID, from, to)
			}
		}()
	}
	for _, id := range employeeIDs {
		jobs <- id
	}
	close(jobs)
	wg.Wait()
	return report
}

// ActiveEmployeeIDs lists the employees the nightly run covers.
func (r *DailyResolver) ActiveEmployeeIDs() ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&Models.Employee{}).
		Where("status = ?", Models.EmployeeActive).
		Pluck("id", &ids).Error
	return ids, err
}
