package model

import "time"

// Leave types.
const (
	LeaveTypeVacation = "vacation"
	LeaveTypeSick     = "sick"
	LeaveTypePersonal = "personal"
)

// Leave statuses.
const (
	LeaveStatusPending  = "pending"
	LeaveStatusApproved = "approved"
	LeaveStatusRejected = "rejected"
)

// Leave is an employee leave request. Approval deducts vacation days
// from the requester and notifies them; both transitions are final.
type Leave struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	CompanyID uint      `gorm:"not null;index" json:"company_id"`
	Type      string    `gorm:"size:20;not null" json:"type"`
	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`
	Days      int       `gorm:"not null" json:"days"`
	Reason    string    `gorm:"size:500" json:"reason,omitempty"`
	Status    string    `gorm:"size:20;not null;default:'pending';index" json:"status"`

	ResolvedBy *uint      `json:"resolved_by,omitempty"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	Comment    string     `gorm:"size:500" json:"comment,omitempty"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Leave) TableName() string {
	return "leaves"
}

// IsResolved reports whether the request has been approved or rejected.
func (l *Leave) IsResolved() bool {
	return l.Status != LeaveStatusPending
}
