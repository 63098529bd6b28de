package account

import (
	"github.com/google/uuid"

	"github.com/hanamaged/electro-backend/internal/users"
	"github.com/hanamaged/electro-backend/pkg/enums"
	"github.com/hanamaged/electro-backend/pkg/pagination"
)

// RegisterRequest contains the payload required to create an account.
type RegisterRequest struct {
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name" validate:"required"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
	ImageURL  *string `json:"image_url,omitempty" validate:"omitempty,url"`
}

// RegisterResponse echoes the persisted identity back to the caller.
type RegisterResponse struct {
	ID     uuid.UUID        `json:"id"`
	Email  string           `json:"email"`
	Name   string           `json:"name"`
	Role   enums.UserRole   `json:"role"`
	Status enums.UserStatus `json:"status"`
}

// LoginRequest captures the user credentials sent to the login endpoint.
// The push token is the only optional field; supplying it refreshes the
// device registration as a side effect of signing in.
type LoginRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required"`
	FCMToken *string `json:"fcm_token,omitempty"`
}

// LoginResponse contains the tokens and user produced by a successful login.
type LoginResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	User         *users.UserDTO `json:"user"`
}

// ForgotPasswordRequest starts the OTP reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// VerifyOTPRequest carries the code submitted for a pending reset.
type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

// ResetPasswordRequest completes the reset after a verified code.
type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	NewPassword string `json:"new_password" validate:"required"`
}

// ChangePasswordRequest rotates the credential for a logged-in user.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

// UpdateProfileRequest carries the mutable profile fields.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
	ImageURL  *string `json:"image_url,omitempty" validate:"omitempty,url"`
}

// UpgradeRoleRequest names the account being elevated.
type UpgradeRoleRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// UpdateStatusRequest sets a user's lifecycle status.
type UpdateStatusRequest struct {
	Status enums.UserStatus `json:"status" validate:"required"`
}

// ListUsersRequest narrows and pages the admin user listing.
type ListUsersRequest struct {
	Role   *enums.UserRole
	Status *enums.UserStatus
	Search string
	Page   pagination.Params
}

// ListUsersResponse returns one page of users with paging metadata.
type ListUsersResponse struct {
	Users []*users.UserDTO `json:"users"`
	Meta  pagination.Meta  `json:"meta"`
}
