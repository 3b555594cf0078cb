package CronJobs

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"AtlasHR/Attendance"
	"AtlasHR/Models"
)

// ReconcileChecker runs the nightly attendance reconciliation for every
// active employee.
type ReconcileChecker struct {
	cronScheduler  *cron.Cron
	runImmediately bool
	jobID          cron.EntryID
}

// NewReconcileChecker creates a new nightly reconciliation job
func NewReconcileChecker(runImmediately bool) *ReconcileChecker {
	return &ReconcileChecker{
		cronScheduler:  cron.New(cron.WithSeconds()),
		runImmediately: runImmediately,
	}
}

// Start schedules the nightly run
func (r *ReconcileChecker) Start() error {
	var err error
	r.jobID, err = r.cronScheduler.AddFunc("0 30 2 * * *", func() {
		log.Println("Running scheduled nightly attendance reconciliation")
		r.runReconciliation()
	})
	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}

	r.cronScheduler.Start()
	fmt.Println("Reconciliation scheduler started - will run daily at 2:30 AM")

	if r.runImmediately {
		fmt.Println("Running initial reconciliation")
		r.runReconciliation()
	}
	return nil
}

// Stop terminates the scheduler
func (r *ReconcileChecker) Stop() {
	if r.cronScheduler != nil {
		r.cronScheduler.Stop()
		log.Println("Reconciliation scheduler stopped")
	}
}

// UpdateSchedule changes when the nightly run fires.
// Format: "0 30 2 * * *" = at 02:30:00 AM every day
func (r *ReconcileChecker) UpdateSchedule(schedule string) error {
	r.cronScheduler.Remove(r.jobID)

	var err error
	r.jobID, err = r.cronScheduler.AddFunc(schedule, func() {
		log.Println("Running scheduled attendance reconciliation")
		r.runReconciliation()
	})
	if err != nil {
		return fmt.Errorf("error updating schedule: %w", err)
	}
	log.Printf("Reconciliation schedule updated to: %s\n", schedule)
	return nil
}

// RunManualCheck executes a reconciliation run outside the schedule
func (r *ReconcileChecker) RunManualCheck() {
	log.Println("Running manual reconciliation")
	r.runReconciliation()
}

// runReconciliation reconciles yesterday for all active employees. One
// failing employee/day never aborts the run; failures land in the report.
func (r *ReconcileChecker) runReconciliation() {
	resolver := Attendance.NewDailyResolver(Models.DB)
	ids, err := resolver.ActiveEmployeeIDs()
	if err != nil {
		log.Printf("Error listing active employees: %v\n", err)
		return
	}

	yesterday := Attendance.DateOnly(time.Now().UTC().Add(-24 * time.Hour))
	report := resolver.ReconcileAll(ids, yesterday, yesterday)

	log.Printf("Reconciled %d records across %d employees\n", report.Resolved, len(ids))
	for _, failure := range report.Failures {
		log.Printf("  failed: employee %d on %s: %s\n",
			failure.EmployeeID, failure.Date.Format("2006-01-02"), failure.Message)
	}
}
