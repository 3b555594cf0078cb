package Apis

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"AtlasHR/Attendance"
	"AtlasHR/Models"
)

// ReconcileDay recomputes the daily attendance record for one employee/date.
func ReconcileDay(c *fiber.Ctx) error {
	var input struct {
		EmployeeID uint   `json:"employee_id"`
		Date       string `json:"date"`
	}
	if err := c.BodyParser(&input); err != nil {
		log.Println(err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	date, err := ParseDate(input.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
	}

	resolver := Attendance.NewDailyResolver(Models.DB)
	record, err := resolver.ResolveDay(input.EmployeeID, date)
	if err != nil {
		log.Println("Reconcile failed:", err)
		return engineErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"message":    "Attendance reconciled successfully",
		"attendance": record,
	})
}

// ReconcileRange recomputes a span of dates for one employee.
func ReconcileRange(c *fiber.Ctx) error {
	var input struct {
		EmployeeID uint   `json:"employee_id"`
		StartDate  string `json:"start_date"`
		EndDate    string `json:"end_date"`
	}
	if err := c.BodyParser(&input); err != nil {
		log.Println(err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	from, err := ParseDate(input.StartDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid start_date"})
	}
	to, err := ParseDate(input.EndDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid end_date"})
	}
	if to.Before(from) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "end_date precedes start_date"})
	}

	resolver := Attendance.NewDailyResolver(Models.DB)
	report := resolver.ReconcileRange(input.EmployeeID, from, to)

	return c.JSON(fiber.Map{
		"message": "Range reconciled",
		"report":  report,
	})
}

// ReconcileAll runs the batch engine for every active employee over a range.
func ReconcileAll(c *fiber.Ctx) error {
	var input struct {
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	}
	if err := c.BodyParser(&input); err != nil {
		log.Println(err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	from, err := ParseDate(input.StartDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid start_date"})
	}
	to, err := ParseDate(input.EndDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid end_date"})
	}

	resolver := Attendance.NewDailyResolver(Models.DB)
	ids, err := resolver.ActiveEmployeeIDs()
	if err != nil {
		log.Println(err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list employees"})
	}
	report := resolver.ReconcileAll(ids, from, to)

	return c.JSON(fiber.Map{
		"message":   "Batch reconciliation finished",
		"employees": len(ids),
		"report":    report,
	})
}

// RegularizeAttendance applies a manual correction to a derived daily record.
func RegularizeAttendance(c *fiber.Ctx) error {
	var input struct {
		EmployeeID uint   `json:"employee_id"`
		Date       string `json:"date"`
		Status     string `json:"status"`
		Notes      string `json:"notes"`
	}
	if err := c.BodyParser(&input); err != nil {
		log.Println(err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	date, err := ParseDate(input.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date"})
	}
	if input.Notes == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Regularization requires notes"})
	}

	status := Models.AttendanceStatus(input.Status)
	switch status {
	case Models.StatusPresent, Models.StatusAbsent, Models.StatusLate, Models.StatusHalfDay,
		Models.StatusWeekoff, Models.StatusHoliday, Models.StatusLeave:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown attendance status"})
	}

	resolver := Attendance.NewDailyResolver(Models.DB)
	record, err := resolver.Regularize(input.EmployeeID, date, status, input.Notes)
	if err != nil {
		log.Println("Regularization failed:", err)
		return engineErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"message":    "Attendance regularized",
		"attendance": record,
	})
}
