package model

import "time"

// Company is a registered tenant. Every user, department and HR record
// belongs to exactly one company.
type Company struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:200;not null;uniqueIndex" json:"name"`
	Email     string `gorm:"size:255;not null" json:"email"`
	Address   string `gorm:"size:500" json:"address,omitempty"`
	Industry  string `gorm:"size:100" json:"industry,omitempty"`

	// AdminCreationCode is generated at registration and mailed to the
	// company email. It authorizes the creation of the single admin
	// account and is cleared once the admin is created.
	AdminCreationCode string `gorm:"size:12" json:"-"`
	AdminCreated      bool   `gorm:"default:false" json:"admin_created"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Company) TableName() string {
	return "companies"
}
