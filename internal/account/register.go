package account

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/hanamaged/electro-backend/internal/users"
	"github.com/hanamaged/electro-backend/pkg/config"
	"github.com/hanamaged/electro-backend/pkg/db"
	"github.com/hanamaged/electro-backend/pkg/enums"
	pkgerrors "github.com/hanamaged/electro-backend/pkg/errors"
	"github.com/hanamaged/electro-backend/pkg/security"
)

const minEmailLength = 5

func (s *service) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	return s.register(ctx, req, enums.UserRoleCustomer)
}

// CreateAdmin is Register with the role fixed to admin. Route-level
// authorization keeps it out of reach of regular callers.
func (s *service) CreateAdmin(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	return s.register(ctx, req, enums.UserRoleAdmin)
}

func (s *service) register(ctx context.Context, req RegisterRequest, role enums.UserRole) (*RegisterResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if err := validateRegistration(email, req, s.passwordCfg); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid registration")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user email")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.users.Create(ctx, users.CreateUserDTO{
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Phone:        req.Phone,
		Address:      req.Address,
		ImageURL:     req.ImageURL,
		Role:         role,
		Status:       enums.UserStatusActive,
		// Accounts are usable immediately; there is no confirmation email step.
		EmailConfirmed: true,
	})
	if err != nil {
		// The unique index is the final arbiter for concurrent registrations.
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}

	return &RegisterResponse{
		ID:     user.ID,
		Email:  user.Email,
		Name:   user.FullName(),
		Role:   user.Role,
		Status: user.Status,
	}, nil
}

// validateRegistration checks every field so one response can report all
// violations together.
func validateRegistration(email string, req RegisterRequest, passwordCfg config.PasswordConfig) error {
	var err error

	if email == "" {
		err = multierr.Append(err, errors.New("email is required"))
	} else if !strings.Contains(email, "@") || len(email) < minEmailLength {
		err = multierr.Append(err, errors.New("email is not valid"))
	}

	if strings.TrimSpace(req.FirstName) == "" {
		err = multierr.Append(err, errors.New("first name is required"))
	}
	if strings.TrimSpace(req.LastName) == "" {
		err = multierr.Append(err, errors.New("last name is required"))
	}

	if req.Password == "" {
		err = multierr.Append(err, errors.New("password is required"))
	} else if violation := security.ValidatePolicy(req.Password, passwordCfg); violation != nil {
		err = multierr.Append(err, violation)
	}

	return err
}
