package model

import "time"

// PayrollSnapshot is a yearly aggregate of a company's payroll,
// written by the scheduler at year end so historical trends survive
// salary changes.
type PayrollSnapshot struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CompanyID uint `gorm:"not null;index:idx_payroll_company_year,unique" json:"company_id"`
	Year      int  `gorm:"not null;index:idx_payroll_company_year,unique" json:"year"`

	TotalBase       float64 `gorm:"not null" json:"total_base"`
	TotalAllowances float64 `gorm:"not null" json:"total_allowances"`
	TotalDeductions float64 `gorm:"not null" json:"total_deductions"`
	TotalNet        float64 `gorm:"not null" json:"total_net"`
	EmployeeCount   int     `gorm:"not null" json:"employee_count"`

	CreatedAt time.Time `json:"created_at"`
}

func (PayrollSnapshot) TableName() string {
	return "payroll_snapshots"
}
