package Models

import "gorm.io/gorm"

// User is an API account. Permission levels: 1 read, 2 operator (reconcile,
// regularize), 3 payroll (generate, export), 4 admin (approve, user
// management).
type User struct {
	gorm.Model
	Name       string `json:"name" gorm:"size:100"`
	Email      string `json:"email" gorm:"uniqueIndex;size:254"`
	Password   []byte `json:"-"`
	Permission int    `json:"permission" gorm:"default:1"`
	EmployeeID *uint  `json:"employee_id"`
}
