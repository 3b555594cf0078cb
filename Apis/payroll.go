package Apis

import (
	"fmt"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	"AtlasHR/Models"
	"AtlasHR/Payroll"
)

// GeneratePayroll computes or recomputes the monthly slip for one employee.
func GeneratePayroll(c *fiber.Ctx) error {
	var input struct {
		EmployeeID uint `json:"employee_id"`
		Month      int  `json:"month"`
		Year       int  `json:"year"`
	}
	if err := c.BodyParser(&input); err != nil {
		log.Println(err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.Month < 1 || input.Month > 12 || input.Year < 2000 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid month or year"})
	}

	engine := Payroll.NewEngine(Models.DB)
	slip, warnings, err := engine.ComputeSalary(input.EmployeeID, input.Month, input.Year)
	if err != nil {
		log.Println("Payroll generation failed:", err)
		return engineErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"message":  "Payroll generated successfully",
		"salary":   slip,
		"warnings": warnings,
	})
}

// ApprovePayroll locks a generated slip under the approver's identity.
func ApprovePayroll(c *fiber.Ctx) error {
	var input struct {
		SlipID     uint `json:"slip_id"`
		ApproverID uint `json:"approver_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		log.Println(err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	engine := Payroll.NewEngine(Models.DB)
	slip, err := engine.ApproveSalary(input.SlipID, input.ApproverID)
	if err != nil {
		log.Println("Payroll approval failed:", err)
		return engineErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Payroll approved",
		"salary":  slip,
	})
}

// MarkPayrollPaid records the terminal paid transition.
func MarkPayrollPaid(c *fiber.Ctx) error {
	var input struct {
		SlipID uint `json:"slip_id"`
	}
	if err := c.BodyParser(&input); err != nil {
		log.Println(err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	engine := Payroll.NewEngine(Models.DB)
	slip, err := engine.MarkPaid(input.SlipID)
	if err != nil {
		log.Println("Mark paid failed:", err)
		return engineErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Payroll marked as paid",
		"salary":  slip,
	})
}

// ExportMonthlyPayroll writes every slip of the period into an Excel sheet
// and streams the file back.
func ExportMonthlyPayroll(c *fiber.Ctx) error {
	month, err := c.ParamsInt("month")
	if err != nil || month < 1 || month > 12 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid month"})
	}
	year, err := c.ParamsInt("year")
	if err != nil || year < 2000 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid year"})
	}

	var slips []Models.MonthlySalary
	if err := Models.DB.Preload("Employee").
		Where("month = ? AND year = ?", month, year).
		Order("employee_id ASC").
		Find(&slips).Error; err != nil {
		log.Println(err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch salaries"})
	}
	if len(slips) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No payroll slips for this period"})
	}

	file := excelize.NewFile()
	defer file.Close()
	sheet := "Payroll"
	file.SetSheetName("Sheet1", sheet)

	headers := []string{
		"Employee Code", "Name", "Work Days", "Present Days", "Paid Leaves",
		"Unpaid Leaves", "Late Days", "Basic Salary", "Gross Earnings",
		"Total Deductions", "Net Payable", "Status",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		file.SetCellValue(sheet, cell, header)
	}

	for row, slip := range slips {
		values := []interface{}{
			slip.Employee.EmployeeCode,
			slip.Employee.FullName(),
			slip.TotalWorkDays,
			slip.TotalPresentDays,
			slip.PaidLeaves,
			slip.UnpaidLeaves,
			slip.LateDays,
			slip.BasicSalary.StringFixed(2),
			slip.GrossEarnings.StringFixed(2),
			slip.TotalDeductions.StringFixed(2),
			slip.NetPayable.StringFixed(2),
			string(slip.Status),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			file.SetCellValue(sheet, cell, value)
		}
	}

	if err := os.MkdirAll("Exports", 0755); err != nil {
		log.Println(err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to prepare export directory"})
	}
	filename := fmt.Sprintf("Exports/Payroll_%02d_%d.xlsx", month, year)
	if err := file.SaveAs(filename); err != nil {
		log.Println(err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to write export file"})
	}
	return c.SendFile(filename, true)
}
