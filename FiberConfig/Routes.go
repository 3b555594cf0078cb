package FiberConfig

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"

	"AtlasHR/Apis"
	"AtlasHR/Controllers"
	"AtlasHR/Models"
	"AtlasHR/middleware"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize handlers
	employeeController := Controllers.NewEmployeeController(db)
	shiftController := Controllers.NewShiftController(db)
	holidayController := Controllers.NewHolidayController(db)
	componentController := Controllers.NewSalaryComponentController(db)
	recordController := Controllers.NewRecordController(db)

	// Auth
	app.Post("/api/Login", Controllers.Login)
	app.Get("/api/Logout", Controllers.Logout)
	app.Post("/api/RegisterUser", middleware.Verify(4), Controllers.RegisterUser)
	app.Get("/api/FetchUsers", middleware.Verify(4), Controllers.FetchUsers)

	// API group
	api := app.Group("/api")

	// Employee master data
	employees := api.Group("/employees", middleware.Verify(1))
	employees.Get("/", employeeController.GetEmployees)
	employees.Post("/", middleware.Verify(3), employeeController.CreateEmployee)
	employees.Get("/:id", employeeController.GetEmployee)
	employees.Put("/:id", middleware.Verify(3), employeeController.UpdateEmployee)
	employees.Delete("/:id", middleware.Verify(4), employeeController.DeleteEmployee)

	// Shift definitions and assignments
	shifts := api.Group("/shifts", middleware.Verify(1))
	shifts.Get("/", shiftController.GetShifts)
	shifts.Post("/", middleware.Verify(3), shiftController.CreateShift)
	shifts.Put("/:id", middleware.Verify(3), shiftController.UpdateShift)
	shifts.Delete("/:id", middleware.Verify(3), shiftController.DeleteShift)
	api.Get("/employees/:employee_id/assignments", middleware.Verify(1), shiftController.GetAssignments)
	api.Post("/assignments", middleware.Verify(3), shiftController.CreateAssignment)
	api.Delete("/assignments/:id", middleware.Verify(3), shiftController.DeleteAssignment)

	// Holiday calendar
	holidays := api.Group("/holidays", middleware.Verify(1))
	holidays.Get("/", holidayController.GetHolidays)
	holidays.Post("/", middleware.Verify(3), holidayController.CreateHoliday)
	holidays.Delete("/:id", middleware.Verify(3), holidayController.DeleteHoliday)

	// Salary components
	components := api.Group("/salary-components", middleware.Verify(3))
	components.Get("/", componentController.GetComponents)
	components.Post("/", componentController.CreateComponent)
	components.Put("/:id", componentController.UpdateComponent)
	components.Delete("/:id", componentController.DeleteComponent)

	// Raw and derived records (read only)
	api.Get("/employees/:employee_id/punches", middleware.Verify(1), recordController.GetAttendanceLogs)
	api.Get("/employees/:employee_id/attendance", middleware.Verify(1), recordController.GetDailyAttendance)
	api.Get("/salaries", middleware.Verify(3), recordController.GetMonthlySalaries)

	// Reconciliation engine
	attendance := api.Group("/attendance", middleware.Verify(2))
	attendance.Post("/reconcile-day", Apis.ReconcileDay)
	attendance.Post("/reconcile-range", Apis.ReconcileRange)
	attendance.Post("/reconcile-all", Apis.ReconcileAll)
	attendance.Post("/regularize", Apis.RegularizeAttendance)

	// Payroll engine
	payroll := api.Group("/payroll", middleware.Verify(3))
	payroll.Post("/generate", Apis.GeneratePayroll)
	payroll.Post("/approve", middleware.Verify(4), Apis.ApprovePayroll)
	payroll.Post("/mark-paid", middleware.Verify(4), Apis.MarkPayrollPaid)
	payroll.Get("/export/:month/:year", Apis.ExportMonthlyPayroll)

	// Biometric sync boundary: devices authenticate with a shared key, not a
	// user session.
	app.Post("/api/biometric/sync", Apis.BiometricSync)
}

func FiberConfig() {
	fmt.Println("Server Up...")
	app := fiber.New()
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           300,
	}))

	SetupRoutes(app, Models.DB)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "3001"
	}
	app.Listen(":" + port)
}
