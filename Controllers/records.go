package Controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"AtlasHR/Models"
)

// RecordController exposes read-only views over raw punches and derived
// records. Writes go through ingestion and the engine, never through here.
type RecordController struct {
	DB *gorm.DB
}

func NewRecordController(db *gorm.DB) *RecordController {
	return &RecordController{DB: db}
}

// GetAttendanceLogs lists raw punches for an employee within a window
func (c *RecordController) GetAttendanceLogs(ctx *fiber.Ctx) error {
	employeeID, err := strconv.Atoi(ctx.Params("employee_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid employee ID"})
	}

	query := c.DB.Where("employee_id = ?", employeeID).Order("punch_time DESC")
	if from := ctx.Query("from"); from != "" {
		query = query.Where("punch_time >= ?", from)
	}
	if to := ctx.Query("to"); to != "" {
		query = query.Where("punch_time < ?", to)
	}

	var logs []Models.AttendanceLog
	if err := query.Limit(500).Find(&logs).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve punches"})
	}
	return ctx.JSON(logs)
}

// GetDailyAttendance lists derived daily records for an employee
func (c *RecordController) GetDailyAttendance(ctx *fiber.Ctx) error {
	employeeID, err := strconv.Atoi(ctx.Params("employee_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid employee ID"})
	}

	query := c.DB.Where("employee_id = ?", employeeID).Order("date DESC")
	if from := ctx.Query("from"); from != "" {
		query = query.Where("date >= ?", from)
	}
	if to := ctx.Query("to"); to != "" {
		query = query.Where("date <= ?", to)
	}

	var records []Models.DailyAttendance
	if err := query.Limit(366).Find(&records).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve attendance"})
	}
	return ctx.JSON(records)
}

// GetMonthlySalaries lists payroll slips, newest period first
func (c *RecordController) GetMonthlySalaries(ctx *fiber.Ctx) error {
	query := c.DB.Preload("Employee").Order("year DESC, month DESC")
	if employeeID := ctx.Query("employee_id"); employeeID != "" {
		query = query.Where("employee_id = ?", employeeID)
	}
	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var slips []Models.MonthlySalary
	if err := query.Limit(500).Find(&slips).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve salaries"})
	}
	return ctx.JSON(slips)
}
