package Controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"AtlasHR/Models"
)

// ShiftController handles shift definitions and assignments
type ShiftController struct {
	DB *gorm.DB
}

func NewShiftController(db *gorm.DB) *ShiftController {
	return &ShiftController{DB: db}
}

// GetShifts retrieves all active shifts
func (c *ShiftController) GetShifts(ctx *fiber.Ctx) error {
	var shifts []Models.Shift
	if err := c.DB.Where("is_active = ?", true).Find(&shifts).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve shifts"})
	}
	return ctx.JSON(shifts)
}

// CreateShift creates a new shift definition
func (c *ShiftController) CreateShift(ctx *fiber.Ctx) error {
	var input Models.Shift
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if _, err := time.Parse("15:04", input.StartTime); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "start_time must be HH:MM"})
	}
	if _, err := time.Parse("15:04", input.EndTime); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "end_time must be HH:MM"})
	}
	if input.MaxWorkHours <= 0 {
		input.MaxWorkHours = 8
	}
	input.IsActive = true

	if err := c.DB.Create(&input).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create shift"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(input)
}

// UpdateShift updates an existing shift definition
func (c *ShiftController) UpdateShift(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid shift ID"})
	}

	var shift Models.Shift
	if err := c.DB.First(&shift, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Shift not found"})
	}

	var input Models.Shift
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	c.DB.Model(&shift).Updates(map[string]interface{}{
		"name":                 input.Name,
		"shift_type":           input.ShiftType,
		"start_time":           input.StartTime,
		"end_time":             input.EndTime,
		"is_night_shift":       input.IsNightShift,
		"grace_in_minutes":     input.GraceInMinutes,
		"grace_out_minutes":    input.GraceOutMinutes,
		"unpaid_break_minutes": input.UnpaidBreakMinutes,
		"max_work_hours":       input.MaxWorkHours,
	})
	return ctx.JSON(shift)
}

// DeleteShift deactivates a shift so history stays intact
func (c *ShiftController) DeleteShift(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid shift ID"})
	}

	var shift Models.Shift
	if err := c.DB.First(&shift, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Shift not found"})
	}
	c.DB.Model(&shift).Update("is_active", false)
	return ctx.JSON(fiber.Map{"message": "Shift deactivated"})
}

// GetAssignments lists an employee's shift assignments
func (c *ShiftController) GetAssignments(ctx *fiber.Ctx) error {
	employeeID, err := strconv.Atoi(ctx.Params("employee_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid employee ID"})
	}

	var assignments []Models.ShiftAssignment
	if err := c.DB.Preload("Shift").
		Where("employee_id = ?", employeeID).
		Order("start_date ASC").
		Find(&assignments).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve assignments"})
	}
	return ctx.JSON(assignments)
}

// CreateAssignment binds an employee to a shift over a date interval.
// Intervals for one employee must not overlap.
func (c *ShiftController) CreateAssignment(ctx *fiber.Ctx) error {
	var input struct {
		EmployeeID uint   `json:"employee_id"`
		ShiftID    uint   `json:"shift_id"`
		StartDate  string `json:"start_date"`
		EndDate    string `json:"end_date"`
		IsDefault  bool   `json:"is_default"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	startDate, err := time.Parse("2006-01-02", input.StartDate)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "start_date must be YYYY-MM-DD"})
	}
	var endDate *time.Time
	if input.EndDate != "" {
		parsed, err := time.Parse("2006-01-02", input.EndDate)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "end_date must be YYYY-MM-DD"})
		}
		if !parsed.After(startDate) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "end_date must follow start_date"})
		}
		endDate = &parsed
	}

	var shift Models.Shift
	if err := c.DB.First(&shift, input.ShiftID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Shift not found"})
	}

	// Overlap guard: [start, end) intervals per employee must be disjoint.
	var overlapping int64
	c.DB.Model(&Models.ShiftAssignment{}).
		Where("employee_id = ?", input.EmployeeID).
		Where("start_date < ?", orMax(endDate)).
		Where("end_date IS NULL OR end_date > ?", startDate).
		Count(&overlapping)
	if overlapping > 0 {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Assignment interval overlaps an existing assignment for this employee",
		})
	}

	assignment := Models.ShiftAssignment{
		EmployeeID: input.EmployeeID,
		ShiftID:    input.ShiftID,
		StartDate:  startDate,
		EndDate:    endDate,
		IsDefault:  input.IsDefault,
	}
	if err := c.DB.Create(&assignment).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create assignment"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(assignment)
}

// DeleteAssignment removes a shift assignment
func (c *ShiftController) DeleteAssignment(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid assignment ID"})
	}

	var assignment Models.ShiftAssignment
	if err := c.DB.First(&assignment, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Assignment not found"})
	}
	c.DB.Delete(&assignment)
	return ctx.JSON(fiber.Map{"message": "Assignment deleted successfully"})
}

// orMax substitutes an effectively unbounded date for open-ended intervals
// in the overlap comparison.
func orMax(end *time.Time) time.Time {
	if end == nil {
		return time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	}
	return *end
}
