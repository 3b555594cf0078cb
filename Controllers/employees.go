package Controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"AtlasHR/Models"
)

// EmployeeController handles employee master-data endpoints
type EmployeeController struct {
	DB *gorm.DB
}

func NewEmployeeController(db *gorm.DB) *EmployeeController {
	return &EmployeeController{DB: db}
}

// GetEmployees retrieves all employees, optionally filtered by department
func (c *EmployeeController) GetEmployees(ctx *fiber.Ctx) error {
	query := c.DB.Preload("Department")
	if dept := ctx.Query("department_id"); dept != "" {
		query = query.Where("department_id = ?", dept)
	}
	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var employees []Models.Employee
	if err := query.Find(&employees).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve employees"})
	}
	return ctx.JSON(employees)
}

// GetEmployee retrieves a single employee by ID
func (c *EmployeeController) GetEmployee(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid employee ID"})
	}

	var employee Models.Employee
	if err := c.DB.Preload("Department").First(&employee, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Employee not found"})
	}
	return ctx.JSON(employee)
}

// CreateEmployee creates a new employee
func (c *EmployeeController) CreateEmployee(ctx *fiber.Ctx) error {
	var input Models.Employee
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.EmployeeCode == "" || input.Email == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "employee_code and email are required"})
	}
	if input.Status == "" {
		input.Status = Models.EmployeeActive
	}

	if err := c.DB.Create(&input).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") || strings.Contains(err.Error(), "unique constraint") {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "An employee with this code, email or biometric id already exists",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create employee"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(input)
}

// UpdateEmployee updates an existing employee
func (c *EmployeeController) UpdateEmployee(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid employee ID"})
	}

	var employee Models.Employee
	if err := c.DB.First(&employee, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Employee not found"})
	}

	var input Models.Employee
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	c.DB.Model(&employee).Updates(Models.Employee{
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		DepartmentID:    input.DepartmentID,
		Phone:           input.Phone,
		BiometricUserID: input.BiometricUserID,
		BaseSalary:      input.BaseSalary,
		DefaultShiftID:  input.DefaultShiftID,
		Location:        input.Location,
		Status:          input.Status,
	})
	return ctx.JSON(employee)
}

// DeleteEmployee soft deletes an employee
func (c *EmployeeController) DeleteEmployee(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid employee ID"})
	}

	var employee Models.Employee
	if err := c.DB.First(&employee, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Employee not found"})
	}
	c.DB.Delete(&employee)
	return ctx.JSON(fiber.Map{"message": "Employee deleted successfully"})
}
