package model

import "time"

// Notification types.
const (
	NotificationTypeLeaveApproved = "leave_approved"
	NotificationTypeLeaveRejected = "leave_rejected"
	NotificationTypeLeaveRequest  = "leave_request"
	NotificationTypeSystem        = "system"
)

// Notification is an in-app message for a user, also pushed live over
// the websocket hub when the user is connected.
type Notification struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    uint   `gorm:"not null;index" json:"user_id"`
	CompanyID uint   `gorm:"not null;index" json:"company_id"`
	Type      string `gorm:"size:30;not null" json:"type"`
	Title     string `gorm:"size:200;not null" json:"title"`
	Message   string `gorm:"size:1000" json:"message"`
	Read      bool   `gorm:"not null;default:false" json:"read"`

	CreatedAt time.Time `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
