package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/hanamaged/electro-backend/pkg/db/models"
	"github.com/hanamaged/electro-backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID             uuid.UUID        `json:"id"`
	Email          string           `json:"email"`
	FirstName      string           `json:"first_name"`
	LastName       string           `json:"last_name"`
	Phone          *string          `json:"phone,omitempty"`
	Address        *string          `json:"address,omitempty"`
	ImageURL       *string          `json:"image_url,omitempty"`
	Role           enums.UserRole   `json:"role"`
	Status         enums.UserStatus `json:"status"`
	EmailConfirmed bool             `json:"email_confirmed"`
	LastLoginAt    *time.Time       `json:"last_login_at,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email          string
	PasswordHash   string
	FirstName      string
	LastName       string
	Phone          *string
	Address        *string
	ImageURL       *string
	Role           enums.UserRole
	Status         enums.UserStatus
	EmailConfirmed bool
}

// UpdateUserDTO carries the mutable profile fields. Nil means keep current.
type UpdateUserDTO struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Address   *string
	ImageURL  *string
}

// ListFilter narrows admin user listings.
type ListFilter struct {
	Role   *enums.UserRole
	Status *enums.UserStatus
	Search string
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:             u.ID,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Phone:          u.Phone,
		Address:        u.Address,
		ImageURL:       u.ImageURL,
		Role:           u.Role,
		Status:         u.Status,
		EmailConfirmed: u.EmailConfirmed,
		LastLoginAt:    u.LastLoginAt,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	role := c.Role
	if role == "" {
		role = enums.UserRoleCustomer
	}
	status := c.Status
	if status == "" {
		status = enums.UserStatusActive
	}

	return &models.User{
		Email:          c.Email,
		PasswordHash:   c.PasswordHash,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Phone:          c.Phone,
		Address:        c.Address,
		ImageURL:       c.ImageURL,
		Role:           role,
		Status:         status,
		EmailConfirmed: c.EmailConfirmed,
	}
}
