package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hanamaged/electro-backend/internal/users"
	pkgAuth "github.com/hanamaged/electro-backend/pkg/auth"
	"github.com/hanamaged/electro-backend/pkg/auth/session"
	"github.com/hanamaged/electro-backend/pkg/config"
	"github.com/hanamaged/electro-backend/pkg/db/models"
	"github.com/hanamaged/electro-backend/pkg/enums"
	pkgerrors "github.com/hanamaged/electro-backend/pkg/errors"
	"github.com/hanamaged/electro-backend/pkg/pagination"
	"github.com/hanamaged/electro-backend/pkg/security"
)

// Login failure messages. Each guard discloses its own cause; callers rely on
// the exact wording, so changes here are breaking.
const (
	msgEmailNotRegistered = "this email is not registered"
	msgIncorrectPassword  = "incorrect password"
	msgEmailNotConfirmed  = "email is not confirmed"
	msgAccountBanned      = "this account has been banned"
	msgAccountRejected    = "this account has been rejected"
	msgAccountInactive    = "this account is inactive"
	msgAccountDeleted     = "this account has been deleted"
	msgAccountNotAllowed  = "this account is not allowed to sign in"
)

// Service owns the account lifecycle: registration, status-gated login,
// the OTP reset flow, role elevation, and profile maintenance.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
	CreateAdmin(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error
	VerifyOTP(ctx context.Context, req VerifyOTPRequest) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
	ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error
	GetUserInfo(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*users.UserDTO, error)
	SoftDelete(ctx context.Context, userID uuid.UUID) error
	UpgradeToAdmin(ctx context.Context, req UpgradeRoleRequest) (*users.UserDTO, error)
	ListUsers(ctx context.Context, req ListUsersRequest) (*ListUsersResponse, error)
	UpdateUserStatus(ctx context.Context, userID uuid.UUID, req UpdateStatusRequest) (*users.UserDTO, error)
}

type userRepository interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	UpdateProfile(ctx context.Context, id uuid.UUID, dto users.UpdateUserDTO) error
	UpdateFCMToken(ctx context.Context, id uuid.UUID, token string) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.UserStatus) error
	UpdateRole(ctx context.Context, id uuid.UUID, role enums.UserRole) error
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
	List(ctx context.Context, filter users.ListFilter, page pagination.Params) ([]models.User, int64, error)
}

type otpService interface {
	Issue(ctx context.Context, email string) (string, error)
	Verify(ctx context.Context, email, code string) (bool, error)
	IsVerified(ctx context.Context, email string) (bool, error)
	Consume(ctx context.Context, email string) error
}

type mailSender interface {
	Send(ctx context.Context, to, subject, htmlBody, textBody string) error
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
}

type service struct {
	users       userRepository
	otp         otpService
	mail        mailSender
	session     sessionManager
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
}

// ServiceParams bundles the dependencies required to build the account service.
type ServiceParams struct {
	UserRepo       userRepository
	OTPService     otpService
	MailSender     mailSender
	SessionManager sessionManager
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
}

// NewService constructs the account service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.OTPService == nil {
		return nil, fmt.Errorf("otp service is required")
	}
	if params.MailSender == nil {
		return nil, fmt.Errorf("mail sender is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	return &service{
		users:       params.UserRepo,
		otp:         params.OTPService,
		mail:        params.MailSender,
		session:     params.SessionManager,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, msgEmailNotRegistered)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, msgEmailNotRegistered)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	valid, err := security.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, msgIncorrectPassword)
	}

	if !user.EmailConfirmed {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, msgEmailNotConfirmed)
	}

	if err := statusGate(user.Status); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record login")
	}

	if token := req.FCMToken; token != nil && strings.TrimSpace(*token) != "" {
		if err := s.users.UpdateFCMToken(ctx, user.ID, *token); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store push token")
		}
		user.FCMToken = token
	}

	accessID := session.NewAccessID()
	accessToken, err := pkgAuth.MintAccessToken(s.jwtCfg, now, pkgAuth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		JTI:    accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	refreshToken, err := s.session.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store refresh token")
	}

	user.LastLoginAt = &now
	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         users.FromModel(user),
	}, nil
}

// statusGate rejects every non-active status with its own message.
func statusGate(status enums.UserStatus) error {
	switch status {
	case enums.UserStatusActive:
		return nil
	case enums.UserStatusBanned:
		return pkgerrors.New(pkgerrors.CodeForbidden, msgAccountBanned)
	case enums.UserStatusRejected:
		return pkgerrors.New(pkgerrors.CodeForbidden, msgAccountRejected)
	case enums.UserStatusInactive:
		return pkgerrors.New(pkgerrors.CodeForbidden, msgAccountInactive)
	case enums.UserStatusDeleted:
		return pkgerrors.New(pkgerrors.CodeForbidden, msgAccountDeleted)
	default:
		return pkgerrors.New(pkgerrors.CodeForbidden, msgAccountNotAllowed)
	}
}

func (s *service) GetUserInfo(ctx context.Context, userID uuid.UUID) (*users.UserDTO, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return users.FromModel(user), nil
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*users.UserDTO, error) {
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}

	if err := s.users.UpdateProfile(ctx, userID, users.UpdateUserDTO{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Address:   req.Address,
		ImageURL:  req.ImageURL,
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update profile")
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return users.FromModel(user), nil
}

func (s *service) SoftDelete(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.findUser(ctx, userID); err != nil {
		return err
	}
	if err := s.users.UpdateStatus(ctx, userID, enums.UserStatusDeleted); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "soft delete user")
	}
	return nil
}

func (s *service) findUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	return user, nil
}
