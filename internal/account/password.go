package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/hanamaged/electro-backend/pkg/errors"
	"github.com/hanamaged/electro-backend/pkg/security"
)

const (
	resetEmailSubject  = "Your password reset code"
	invalidOTPMessage  = "invalid or expired OTP"
	resetNotReadyError = "no verified reset request for this email"
)

// ForgotPassword issues an OTP when the email belongs to a user. The response
// is success-shaped either way so callers cannot probe which emails exist.
func (s *service) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	if _, err := s.users.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	code, err := s.otp.Issue(ctx, email)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "issue otp")
	}

	text := fmt.Sprintf("Your password reset code is %s. It expires in 10 minutes.", code)
	html := fmt.Sprintf("<p>Your password reset code is <strong>%s</strong>.</p><p>It expires in 10 minutes.</p>", code)
	if err := s.mail.Send(ctx, email, resetEmailSubject, html, text); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "send reset email")
	}
	return nil
}

// VerifyOTP checks the submitted code. A match consumes the code and opens a
// short window during which ResetPassword may complete.
func (s *service) VerifyOTP(ctx context.Context, req VerifyOTPRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	code := strings.TrimSpace(req.Code)
	if email == "" || code == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email and code are required")
	}

	ok, err := s.otp.Verify(ctx, email, code)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify otp")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeValidation, invalidOTPMessage)
	}
	return nil
}

// ResetPassword replaces the credential once the email holds a verified,
// unexpired challenge, then consumes the challenge.
func (s *service) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	verified, err := s.otp.IsVerified(ctx, email)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check otp verification")
	}
	if !verified {
		return pkgerrors.New(pkgerrors.CodeValidation, resetNotReadyError)
	}

	if violation := security.ValidatePolicy(req.NewPassword, s.passwordCfg); violation != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, violation, "password policy violation")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeValidation, resetNotReadyError)
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	hash, err := security.HashPassword(req.NewPassword, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update password")
	}

	if err := s.otp.Consume(ctx, email); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "consume otp challenge")
	}
	return nil
}

// ChangePassword rotates the credential for an authenticated user after
// re-checking the current password.
func (s *service) ChangePassword(ctx context.Context, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}

	valid, err := security.VerifyPassword(req.CurrentPassword, user.PasswordHash)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, msgIncorrectPassword)
	}

	if violation := security.ValidatePolicy(req.NewPassword, s.passwordCfg); violation != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, violation, "password policy violation")
	}

	hash, err := security.HashPassword(req.NewPassword, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update password")
	}
	return nil
}
