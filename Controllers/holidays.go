package Controllers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"AtlasHR/Models"
)

// HolidayController handles the holiday calendar
type HolidayController struct {
	DB *gorm.DB
}

func NewHolidayController(db *gorm.DB) *HolidayController {
	return &HolidayController{DB: db}
}

// GetHolidays retrieves holidays, optionally filtered by year and location
func (c *HolidayController) GetHolidays(ctx *fiber.Ctx) error {
	query := c.DB.Order("date ASC")
	if year := ctx.Query("year"); year != "" {
		query = query.Where("strftime('%Y', date) = ?", year)
	}
	if location := ctx.Query("location"); location != "" {
		query = query.Where("location = '' OR location = ?", location)
	}

	var holidays []Models.HolidayCalendar
	if err := query.Find(&holidays).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve holidays"})
	}
	return ctx.JSON(holidays)
}

// CreateHoliday adds a calendar entry
func (c *HolidayController) CreateHoliday(ctx *fiber.Ctx) error {
	var input struct {
		Date       string `json:"date"`
		Name       string `json:"name"`
		IsOptional bool   `json:"is_optional"`
		Location   string `json:"location"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date must be YYYY-MM-DD"})
	}

	holiday := Models.HolidayCalendar{
		Date:       date,
		Name:       input.Name,
		IsOptional: input.IsOptional,
		Location:   input.Location,
	}
	if err := c.DB.Create(&holiday).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") || strings.Contains(err.Error(), "unique constraint") {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "A holiday already exists for this date and location",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create holiday"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(holiday)
}

// DeleteHoliday removes a calendar entry
func (c *HolidayController) DeleteHoliday(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid holiday ID"})
	}

	var holiday Models.HolidayCalendar
	if err := c.DB.First(&holiday, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Holiday not found"})
	}
	c.DB.Delete(&holiday)
	return ctx.JSON(fiber.Map{"message": "Holiday deleted successfully"})
}
