package model

import "time"

// PasswordReset is a single-use credential reset token. Issuing a new
// token invalidates all earlier unused tokens for the same user, so at
// most one token per user is ever redeemable.
type PasswordReset struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Token     string    `gorm:"size:64;not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Used      bool      `gorm:"not null;default:false" json:"used"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (PasswordReset) TableName() string {
	return "password_resets"
}

// IsExpired reports whether the token has passed its expiry.
func (p *PasswordReset) IsExpired() bool {
	return time.Now().After(p.ExpiresAt)
}
