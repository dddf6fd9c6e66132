package model

import "time"

// Department groups employees within a company.
type Department struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CompanyID   uint   `gorm:"not null;index:idx_departments_company_name,unique" json:"company_id"`
	Name        string `gorm:"size:100;not null;index:idx_departments_company_name,unique" json:"name"`
	Description string `gorm:"size:500" json:"description,omitempty"`
	ManagerID   *uint  `json:"manager_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Department) TableName() string {
	return "departments"
}
