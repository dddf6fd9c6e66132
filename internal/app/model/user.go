package model

import "time"

// User roles.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// User account statuses.
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
	StatusDisabled  = "disabled"
)

// Employment types.
const (
	EmploymentFullTime = "full_time"
	EmploymentPartTime = "part_time"
	EmploymentContract = "contract"
)

// User is a company member: either the company admin or an employee.
// Admins manage HR records; employees own leave, attendance and
// payroll data.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	CompanyID    uint   `gorm:"not null;index" json:"company_id"`
	Email        string `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	FirstName    string `gorm:"size:100;not null" json:"first_name"`
	LastName     string `gorm:"size:100;not null" json:"last_name"`
	Role         string `gorm:"size:20;not null;default:'employee'" json:"role"`
	Status       string `gorm:"size:20;not null;default:'active'" json:"status"`

	// SuspendedUntil bounds a suspension; the scheduler reverts the
	// status to active once the time has passed.
	SuspendedUntil *time.Time `json:"suspended_until,omitempty"`

	DepartmentID   *uint      `gorm:"index" json:"department_id,omitempty"`
	Position       string     `gorm:"size:100" json:"position,omitempty"`
	EmploymentType string     `gorm:"size:20;default:'full_time'" json:"employment_type"`
	HireDate       *time.Time `json:"hire_date,omitempty"`

	BaseSalary   float64 `gorm:"default:0" json:"base_salary"`
	Allowances   float64 `gorm:"default:0" json:"allowances"`
	Deductions   float64 `gorm:"default:0" json:"deductions"`
	WeeklyHours  int     `gorm:"default:40" json:"weekly_hours"`
	VacationDays int     `gorm:"default:15" json:"vacation_days"`
	UsedLeaves   int     `gorm:"default:0" json:"used_leaves"`

	ProfileImageURL string `gorm:"size:500" json:"profile_image_url,omitempty"`

	Company    Company     `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// RemainingLeaves returns the vacation days the user can still take.
func (u *User) RemainingLeaves() int {
	remaining := u.VacationDays - u.UsedLeaves
	if remaining < 0 {
		return 0
	}
	return remaining
}

// FullName returns the display name of the user.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
