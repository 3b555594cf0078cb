package Controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"AtlasHR/Models"
	"AtlasHR/Payroll"
)

// SalaryComponentController handles earnings/deduction rule definitions
type SalaryComponentController struct {
	DB *gorm.DB
}

func NewSalaryComponentController(db *gorm.DB) *SalaryComponentController {
	return &SalaryComponentController{DB: db}
}

// GetComponents retrieves all active salary components
func (c *SalaryComponentController) GetComponents(ctx *fiber.Ctx) error {
	var components []Models.SalaryComponent
	if err := c.DB.Where("is_active = ?", true).Order("id ASC").Find(&components).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve components"})
	}
	return ctx.JSON(components)
}

// CreateComponent defines a new component. The reference graph is validated
// before the definition is accepted so cycles are rejected at the door, not
// at payroll time.
func (c *SalaryComponentController) CreateComponent(ctx *fiber.Ctx) error {
	var input Models.SalaryComponent
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.Name == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}
	if input.ComponentType != Models.ComponentEarnings && input.ComponentType != Models.ComponentDeductions {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "component_type must be earnings or deductions"})
	}
	input.IsActive = true

	if input.PercentageOfID != nil {
		var ref Models.SalaryComponent
		if err := c.DB.First(&ref, *input.PercentageOfID).Error; err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "percentage_of_id references an unknown component"})
		}
	}

	if err := c.DB.Create(&input).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") || strings.Contains(err.Error(), "unique constraint") {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A component with this name already exists"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create component"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(input)
}

// UpdateComponent edits a component definition, re-validating the graph
func (c *SalaryComponentController) UpdateComponent(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid component ID"})
	}

	var component Models.SalaryComponent
	if err := c.DB.First(&component, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Component not found"})
	}

	var input Models.SalaryComponent
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// Validate the graph as it would look after the edit.
	var components []Models.SalaryComponent
	if err := c.DB.Where("is_active = ?", true).Find(&components).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load components"})
	}
	for i := range components {
		if components[i].ID == component.ID {
			components[i].IsFixed = input.IsFixed
			components[i].PercentageOfID = input.PercentageOfID
		}
	}
	if err := Payroll.ValidateComponentGraph(components); err != nil {
		return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
			"kind":  Payroll.KindOf(err),
		})
	}

	c.DB.Model(&component).Updates(map[string]interface{}{
		"component_type":   input.ComponentType,
		"is_fixed":         input.IsFixed,
		"amount":           input.Amount,
		"percentage":       input.Percentage,
		"percentage_of_id": input.PercentageOfID,
	})
	return ctx.JSON(component)
}

// DeleteComponent deactivates a component; slips already generated keep
// their historical amounts.
func (c *SalaryComponentController) DeleteComponent(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid component ID"})
	}

	var component Models.SalaryComponent
	if err := c.DB.First(&component, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Component not found"})
	}

	var dependents int64
	c.DB.Model(&Models.SalaryComponent{}).
		Where("percentage_of_id = ? AND is_active = ?", id, true).
		Count(&dependents)
	if dependents > 0 {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Other components reference this one; remove them first",
		})
	}

	c.DB.Model(&component).Update("is_active", false)
	return ctx.JSON(fiber.Map{"message": "Component deactivated"})
}
