package Models

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "database.db"
	}

	connection, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		log.Fatalln("Failed to open database:", err)
	}
	DB = connection

	// 1. Base records with no dependencies
	DB.AutoMigrate(
		&User{},
		&Department{},
		&Shift{},
		&HolidayCalendar{},
	)

	// 2. Records referencing the base set
	DB.AutoMigrate(
		&Employee{},
		&ShiftAssignment{},
		&LeaveRecord{},
		&SalaryComponent{},
	)

	// 3. Derived records owned by the engine
	DB.AutoMigrate(
		&AttendanceLog{},
		&DailyAttendance{},
		&MonthlySalary{},
	)

	if err := seedAdminUser(DB); err != nil {
		log.Println("Admin seed failed:", err)
	}
}

func seedAdminUser(db *gorm.DB) error {
	var count int64
	db.Model(&User{}).Where("permission >= ?", 4).Count(&count)
	if count > 0 {
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin"
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := User{
		Name:       "Administrator",
		Email:      "admin@atlashr.local",
		Password:   hashed,
		Permission: 4,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Println("Default admin user created (admin@atlashr.local)")
	return nil
}
