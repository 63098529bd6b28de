package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/hanamaged/electro-backend/pkg/enums"
)

// User represents the canonical account identity.
type User struct {
	ID             uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email          string           `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash   string           `gorm:"column:password_hash;not null"`
	FirstName      string           `gorm:"column:first_name;not null"`
	LastName       string           `gorm:"column:last_name;not null"`
	Phone          *string          `gorm:"column:phone"`
	Address        *string          `gorm:"column:address"`
	ImageURL       *string          `gorm:"column:image_url"`
	FCMToken       *string          `gorm:"column:fcm_token"`
	Role           enums.UserRole   `gorm:"column:role;type:user_role;not null;default:customer"`
	Status         enums.UserStatus `gorm:"column:status;type:user_status;not null;default:active"`
	EmailConfirmed bool             `gorm:"column:email_confirmed;not null;default:false"`
	LastLoginAt    *time.Time       `gorm:"column:last_login_at"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// FullName joins the display name parts.
func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
