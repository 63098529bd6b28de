package account

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hanamaged/electro-backend/internal/users"
	pkgAuth "github.com/hanamaged/electro-backend/pkg/auth"
	"github.com/hanamaged/electro-backend/pkg/config"
	"github.com/hanamaged/electro-backend/pkg/db/models"
	"github.com/hanamaged/electro-backend/pkg/enums"
	pkgerrors "github.com/hanamaged/electro-backend/pkg/errors"
	"github.com/hanamaged/electro-backend/pkg/pagination"
	"github.com/hanamaged/electro-backend/pkg/security"
)

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newStubUserRepo(seed ...*models.User) *stubUserRepo {
	repo := &stubUserRepo{users: make(map[string]*models.User)}
	for _, u := range seed {
		repo.users[strings.ToLower(u.Email)] = u
	}
	return repo
}

func (r *stubUserRepo) Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(dto.Email)
	if _, exists := r.users[key]; exists {
		return nil, gorm.ErrDuplicatedKey
	}
	user := dto.ToModel()
	user.ID = uuid.New()
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	r.users[key] = user
	return user, nil
}

func (r *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[strings.ToLower(email)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.mutate(id, func(u *models.User) { u.LastLoginAt = &at })
}

func (r *stubUserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, dto users.UpdateUserDTO) error {
	return r.mutate(id, func(u *models.User) {
		if dto.FirstName != nil {
			u.FirstName = *dto.FirstName
		}
		if dto.LastName != nil {
			u.LastName = *dto.LastName
		}
		if dto.Phone != nil {
			u.Phone = dto.Phone
		}
		if dto.Address != nil {
			u.Address = dto.Address
		}
		if dto.ImageURL != nil {
			u.ImageURL = dto.ImageURL
		}
	})
}

func (r *stubUserRepo) UpdateFCMToken(ctx context.Context, id uuid.UUID, token string) error {
	return r.mutate(id, func(u *models.User) { u.FCMToken = &token })
}

func (r *stubUserRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.UserStatus) error {
	return r.mutate(id, func(u *models.User) { u.Status = status })
}

func (r *stubUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role enums.UserRole) error {
	return r.mutate(id, func(u *models.User) { u.Role = role })
}

func (r *stubUserRepo) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	return r.mutate(id, func(u *models.User) { u.PasswordHash = hash })
}

func (r *stubUserRepo) List(ctx context.Context, filter users.ListFilter, page pagination.Params) ([]models.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var rows []models.User
	for _, user := range r.users {
		if filter.Role != nil && user.Role != *filter.Role {
			continue
		}
		if filter.Status != nil && user.Status != *filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(user.Email), strings.ToLower(filter.Search)) {
			continue
		}
		rows = append(rows, *user)
	}
	return rows, int64(len(rows)), nil
}

func (r *stubUserRepo) mutate(id uuid.UUID, fn func(*models.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.ID == id {
			fn(user)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// stubOTP mimics the two-phase OTP flow in memory.
type stubOTP struct {
	mu       sync.Mutex
	codes    map[string]string
	verified map[string]bool
	issued   []string
}

func newStubOTP() *stubOTP {
	return &stubOTP{codes: make(map[string]string), verified: make(map[string]bool)}
}

func (s *stubOTP) Issue(ctx context.Context, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code := "482913"
	s.codes[email] = code
	s.issued = append(s.issued, email)
	return code, nil
}

func (s *stubOTP) Verify(ctx context.Context, email, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.codes[email]
	if !ok || stored != code {
		return false, nil
	}
	delete(s.codes, email)
	s.verified[email] = true
	return true, nil
}

func (s *stubOTP) IsVerified(ctx context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.verified[email], nil
}

func (s *stubOTP) Consume(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.verified, email)
	return nil
}

type sentMail struct {
	To      string
	Subject string
}

type stubMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *stubMailer) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{To: to, Subject: subject})
	return nil
}

type stubSessionManager struct {
	refreshToken string
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	return s.refreshToken, nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "electro",
		ExpirationMinutes: 30,
	}
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    32768,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
		MinLength:        6,
	}
}

type testHarness struct {
	svc    Service
	repo   *stubUserRepo
	otp    *stubOTP
	mailer *stubMailer
}

func buildTestService(t *testing.T, seed ...*models.User) *testHarness {
	t.Helper()
	repo := newStubUserRepo(seed...)
	otp := newStubOTP()
	mailer := &stubMailer{}
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		OTPService:     otp,
		MailSender:     mailer,
		SessionManager: &stubSessionManager{refreshToken: "refresh-token"},
		JWTConfig:      testJWTConfig(),
		PasswordConfig: testPasswordConfig(),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return &testHarness{svc: svc, repo: repo, otp: otp, mailer: mailer}
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordConfig())
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func seedUser(t *testing.T, email, password string, status enums.UserStatus) *models.User {
	t.Helper()
	return &models.User{
		ID:             uuid.New(),
		Email:          email,
		PasswordHash:   mustHashPassword(t, password),
		FirstName:      "Alice",
		LastName:       "Doe",
		Role:           enums.UserRoleCustomer,
		Status:         status,
		EmailConfirmed: true,
	}
}

func expectCode(t *testing.T, err error, code pkgerrors.Code) *pkgerrors.Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != code {
		t.Fatalf("expected code %s, got %v", code, err)
	}
	return typed
}

func TestRegisterCreatesActiveUser(t *testing.T) {
	h := buildTestService(t)

	resp, err := h.svc.Register(context.Background(), RegisterRequest{
		FirstName: "Alice",
		LastName:  "Doe",
		Email:     "Alice@Example.com",
		Password:  "Secret1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.Status != enums.UserStatusActive {
		t.Fatalf("expected active status, got %s", resp.Status)
	}
	if resp.Role != enums.UserRoleCustomer {
		t.Fatalf("expected customer role, got %s", resp.Role)
	}
	if resp.Email != "alice@example.com" {
		t.Fatalf("expected lowercased email, got %s", resp.Email)
	}

	stored, err := h.repo.FindByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("stored user lookup: %v", err)
	}
	if !stored.EmailConfirmed {
		t.Fatal("expected email to be auto-confirmed")
	}
	if stored.PasswordHash == "Secret1" {
		t.Fatal("password stored in plaintext")
	}
}

func TestRegisterReportsAllViolationsTogether(t *testing.T) {
	h := buildTestService(t)

	_, err := h.svc.Register(context.Background(), RegisterRequest{})
	typed := expectCode(t, err, pkgerrors.CodeValidation)

	msg := typed.Error()
	for _, want := range []string{"email", "first name", "last name", "password"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q violation in %q", want, msg)
		}
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	user := seedUser(t, "alice@example.com", "Secret1", enums.UserStatusActive)
	h := buildTestService(t, user)

	_, err := h.svc.Register(context.Background(), RegisterRequest{
		FirstName: "Other",
		LastName:  "Person",
		Email:     "ALICE@example.com",
		Password:  "Other123",
	})
	expectCode(t, err, pkgerrors.CodeConflict)
}

func TestCreateAdminFixesRole(t *testing.T) {
	h := buildTestService(t)

	resp, err := h.svc.CreateAdmin(context.Background(), RegisterRequest{
		FirstName: "Root",
		LastName:  "Admin",
		Email:     "admin@example.com",
		Password:  "Admin123",
	})
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	if resp.Role != enums.UserRoleAdmin {
		t.Fatalf("expected admin role, got %s", resp.Role)
	}
}

func TestLoginSuccessIssuesToken(t *testing.T) {
	user := seedUser(t, "alice@example.com", "Secret1", enums.UserStatusActive)
	h := buildTestService(t, user)

	resp, err := h.svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "Secret1",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.RefreshToken == "" {
		t.Fatal("expected refresh token")
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("token user mismatch: %s vs %s", claims.UserID, user.ID)
	}
	if claims.Role != enums.UserRoleCustomer {
		t.Fatalf("unexpected role claim %s", claims.Role)
	}

	stored, _ := h.repo.FindByEmail(context.Background(), user.Email)
	if stored.LastLoginAt == nil {
		t.Fatal("expected last login to be recorded")
	}
}

func TestLoginPersistsPushToken(t *testing.T) {
	user := seedUser(t, "alice@example.com", "Secret1", enums.UserStatusActive)
	h := buildTestService(t, user)

	token := "fcm-device-token-1"
	resp, err := h.svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "Secret1",
		FCMToken: &token,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("expected access token")
	}

	stored, _ := h.repo.FindByEmail(context.Background(), user.Email)
	if stored.FCMToken == nil || *stored.FCMToken != token {
		t.Fatalf("push token not persisted: %v", stored.FCMToken)
	}

	// Logging in without a token leaves the registration alone.
	if _, err := h.svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "Secret1",
	}); err != nil {
		t.Fatalf("second login: %v", err)
	}
	stored, _ = h.repo.FindByEmail(context.Background(), user.Email)
	if stored.FCMToken == nil || *stored.FCMToken != token {
		t.Fatalf("push token clobbered: %v", stored.FCMToken)
	}
}

func TestRegisterStoresImageReference(t *testing.T) {
	h := buildTestService(t)

	image := "https://cdn.example.com/avatars/alice.png"
	resp, err := h.svc.Register(context.Background(), RegisterRequest{
		FirstName: "Alice",
		LastName:  "Doe",
		Email:     "alice@example.com",
		Password:  "Secret1",
		ImageURL:  &image,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	info, err := h.svc.GetUserInfo(context.Background(), resp.ID)
	if err != nil {
		t.Fatalf("get user info: %v", err)
	}
	if info.ImageURL == nil || *info.ImageURL != image {
		t.Fatalf("image reference not stored: %v", info.ImageURL)
	}
}

func TestLoginGuardChainMessages(t *testing.T) {
	cases := []struct {
		name     string
		status   enums.UserStatus
		email    string
		password string
		wantCode pkgerrors.Code
		wantMsg  string
	}{
		{"unknown email", enums.UserStatusActive, "nobody@example.com", "Secret1", pkgerrors.CodeUnauthorized, msgEmailNotRegistered},
		{"wrong password", enums.UserStatusActive, "alice@example.com", "Wrong999", pkgerrors.CodeUnauthorized, msgIncorrectPassword},
		{"banned", enums.UserStatusBanned, "alice@example.com", "Secret1", pkgerrors.CodeForbidden, msgAccountBanned},
		{"rejected", enums.UserStatusRejected, "alice@example.com", "Secret1", pkgerrors.CodeForbidden, msgAccountRejected},
		{"inactive", enums.UserStatusInactive, "alice@example.com", "Secret1", pkgerrors.CodeForbidden, msgAccountInactive},
		{"deleted", enums.UserStatusDeleted, "alice@example.com", "Secret1", pkgerrors.CodeForbidden, msgAccountDeleted},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			user := seedUser(t, "alice@example.com", "Secret1", tc.status)
			h := buildTestService(t, user)

			_, err := h.svc.Login(context.Background(), LoginRequest{
				Email:    tc.email,
				Password: tc.password,
			})
			typed := expectCode(t, err, tc.wantCode)
			if typed.Message() != tc.wantMsg {
				t.Fatalf("expected message %q, got %q", tc.wantMsg, typed.Message())
			}
		})
	}
}

func TestLoginUnconfirmedEmailForbidden(t *testing.T) {
	user := seedUser(t, "alice@example.com", "Secret1", enums.UserStatusActive)
	user.EmailConfirmed = false
	h := buildTestService(t, user)

	_, err := h.svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "Secret1",
	})
	typed := expectCode(t, err, pkgerrors.CodeForbidden)
	if typed.Message() != msgEmailNotConfirmed {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	h := buildTestService(t)

	if err := h.svc.ForgotPassword(context.Background(), ForgotPasswordRequest{
		Email: "nobody@example.com",
	}); err != nil {
		t.Fatalf("forgot password should be success-shaped: %v", err)
	}
	if len(h.mailer.sent) != 0 {
		t.Fatalf("no email should be sent for unknown address, got %d", len(h.mailer.sent))
	}
	if len(h.otp.issued) != 0 {
		t.Fatalf("no otp should be issued for unknown address")
	}
}

func TestForgotPasswordKnownEmailSendsCode(t *testing.T) {
	user := seedUser(t, "alice@example.com", "Secret1", enums.UserStatusActive)
	h := buildTestService(t, user)

	if err := h.svc.ForgotPassword(context.Background(), ForgotPasswordRequest{
		Email: "alice@example.com",
	}); err != nil {
		t.Fatalf("forgot password: %v", err)
	}
	if len(h.mailer.sent) != 1 || h.mailer.sent[0].To != "alice@example.com" {
		t.Fatalf("expected one reset email to alice, got %+v", h.mailer.sent)
	}
}

func TestResetPasswordRequiresVerifiedChallenge(t *testing.T) {
	user := seedUser(t, "alice@example.com", "Secret1", enums.UserStatusActive)
	h := buildTestService(t, user)

	err := h.svc.ResetPassword(context.Background(), ResetPasswordRequest{
		Email:       "alice@example.com",
		NewPassword: "NewPass1",
	})
	expectCode(t, err, pkgerrors.CodeValidation)
}

func TestPasswordResetLifecycle(t *testing.T) {
	// register -> wrong login -> forgot -> bad otp -> good otp -> reset ->
	// old password rejected, new password accepted.
	h := buildTestService(t)
	ctx := context.Background()

	if _, err := h.svc.Register(ctx, RegisterRequest{
		FirstName: "Alice",
		LastName:  "Doe",
		Email:     "alice@example.com",
		Password:  "Secret1",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := h.svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "Wrong999"}); err == nil {
		t.Fatal("wrong password must not log in")
	}

	if err := h.svc.ForgotPassword(ctx, ForgotPasswordRequest{Email: "alice@example.com"}); err != nil {
		t.Fatalf("forgot password: %v", err)
	}

	err := h.svc.VerifyOTP(ctx, VerifyOTPRequest{Email: "alice@example.com", Code: "000000"})
	expectCode(t, err, pkgerrors.CodeValidation)

	if err := h.svc.VerifyOTP(ctx, VerifyOTPRequest{Email: "alice@example.com", Code: "482913"}); err != nil {
		t.Fatalf("verify otp: %v", err)
	}

	// The code is single use.
	err = h.svc.VerifyOTP(ctx, VerifyOTPRequest{Email: "alice@example.com", Code: "482913"})
	expectCode(t, err, pkgerrors.CodeValidation)

	if err := h.svc.ResetPassword(ctx, ResetPasswordRequest{
		Email:       "alice@example.com",
		NewPassword: "NewPass1",
	}); err != nil {
		t.Fatalf("reset password: %v", err)
	}

	if _, err := h.svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "Secret1"}); err == nil {
		t.Fatal("old password must stop working")
	}
	if _, err := h.svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "NewPass1"}); err != nil {
		t.Fatalf("new password should log in: %v", err)
	}

	// Challenge is consumed: a second reset needs a fresh otp cycle.
	err = h.svc.ResetPassword(ctx, ResetPasswordRequest{
		Email:       "alice@example.com",
		NewPassword: "Another1",
	})
	expectCode(t, err, pkgerrors.CodeValidation)
}

func TestResetPasswordPolicyViolationsJoined(t *testing.T) {
	user := seedUser(t, "alice@example.com", "Secret1", enums.UserStatusActive)
	h := buildTestService(t, user)
	ctx := context.Background()

	if err := h.svc.ForgotPassword(ctx, ForgotPasswordRequest{Email: "alice@example.com"}); err != nil {
		t.Fatalf("forgot password: %v", err)
	}
	if err := h.svc.VerifyOTP(ctx, VerifyOTPRequest{Email: "alice@example.com", Code: "482913"}); err != nil {
		t.Fatalf("verify otp: %v", err)
	}

	err := h.svc.ResetPassword(ctx, ResetPasswordRequest{
		Email:       "alice@example.com",
		NewPassword: "ab",
	})
	typed := expectCode(t, err, pkgerrors.CodeValidation)
	if !strings.Contains(typed.Error(), "6 characters") {
		t.Fatalf("expected length violation in %q", typed.Error())
	}
}

func TestChangePassword(t *testing.T) {
	user := seedUser(t, "alice@example.com", "Secret1", enums.UserStatusActive)
	h := buildTestService(t, user)
	ctx := context.Background()

	err := h.svc.ChangePassword(ctx, user.ID, ChangePasswordRequest{
		CurrentPassword: "Wrong999",
		NewPassword:     "NewPass1",
	})
	expectCode(t, err, pkgerrors.CodeUnauthorized)

	if err := h.svc.ChangePassword(ctx, user.ID, ChangePasswordRequest{
		CurrentPassword: "Secret1",
		NewPassword:     "NewPass1",
	}); err != nil {
		t.Fatalf("change password: %v", err)
	}

	if _, err := h.svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "NewPass1"}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestUpgradeToAdminIsIdempotent(t *testing.T) {
	user := seedUser(t, "alice@example.com", "Secret1", enums.UserStatusActive)
	h := buildTestService(t, user)
	ctx := context.Background()

	dto, err := h.svc.UpgradeToAdmin(ctx, UpgradeRoleRequest{Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("upgrade: %v", err)
	}
	if dto.Role != enums.UserRoleAdmin {
		t.Fatalf("expected admin role, got %s", dto.Role)
	}

	// Second elevation is a no-op, not an error.
	if _, err := h.svc.UpgradeToAdmin(ctx, UpgradeRoleRequest{Email: "alice@example.com"}); err != nil {
		t.Fatalf("second upgrade: %v", err)
	}

	_, err = h.svc.UpgradeToAdmin(ctx, UpgradeRoleRequest{Email: "ghost@example.com"})
	expectCode(t, err, pkgerrors.CodeNotFound)
}

func TestSoftDeleteBlocksLogin(t *testing.T) {
	user := seedUser(t, "alice@example.com", "Secret1", enums.UserStatusActive)
	h := buildTestService(t, user)
	ctx := context.Background()

	if err := h.svc.SoftDelete(ctx, user.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	_, err := h.svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "Secret1"})
	typed := expectCode(t, err, pkgerrors.CodeForbidden)
	if typed.Message() != msgAccountDeleted {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}

func TestUpdateUserStatusRejectedKeepsRecord(t *testing.T) {
	user := seedUser(t, "alice@example.com", "Secret1", enums.UserStatusActive)
	h := buildTestService(t, user)
	ctx := context.Background()

	dto, err := h.svc.UpdateUserStatus(ctx, user.ID, UpdateStatusRequest{Status: enums.UserStatusRejected})
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if dto.Status != enums.UserStatusRejected {
		t.Fatalf("expected rejected, got %s", dto.Status)
	}

	// The row survives rejection; only the status changed.
	if _, err := h.repo.FindByEmail(ctx, "alice@example.com"); err != nil {
		t.Fatalf("rejected user should still exist: %v", err)
	}

	_, err = h.svc.UpdateUserStatus(ctx, user.ID, UpdateStatusRequest{Status: "bogus"})
	expectCode(t, err, pkgerrors.CodeValidation)
}

func TestUpdateProfile(t *testing.T) {
	user := seedUser(t, "alice@example.com", "Secret1", enums.UserStatusActive)
	h := buildTestService(t, user)
	ctx := context.Background()

	first := "Alicia"
	phone := "+201234567890"
	image := "https://cdn.example.com/avatars/alicia.png"
	dto, err := h.svc.UpdateProfile(ctx, user.ID, UpdateProfileRequest{
		FirstName: &first,
		Phone:     &phone,
		ImageURL:  &image,
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if dto.FirstName != "Alicia" {
		t.Fatalf("first name not updated: %s", dto.FirstName)
	}
	if dto.Phone == nil || *dto.Phone != phone {
		t.Fatalf("phone not updated: %v", dto.Phone)
	}
	if dto.ImageURL == nil || *dto.ImageURL != image {
		t.Fatalf("image reference not updated: %v", dto.ImageURL)
	}
	if dto.LastName != "Doe" {
		t.Fatalf("untouched field changed: %s", dto.LastName)
	}
}

func TestListUsersFilters(t *testing.T) {
	admin := seedUser(t, "admin@example.com", "Admin123", enums.UserStatusActive)
	admin.Role = enums.UserRoleAdmin
	customer := seedUser(t, "alice@example.com", "Secret1", enums.UserStatusActive)
	banned := seedUser(t, "bob@example.com", "Secret1", enums.UserStatusBanned)
	h := buildTestService(t, admin, customer, banned)
	ctx := context.Background()

	role := enums.UserRoleCustomer
	resp, err := h.svc.ListUsers(ctx, ListUsersRequest{Role: &role})
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(resp.Users) != 2 {
		t.Fatalf("expected 2 customers, got %d", len(resp.Users))
	}

	status := enums.UserStatusBanned
	resp, err = h.svc.ListUsers(ctx, ListUsersRequest{Status: &status})
	if err != nil {
		t.Fatalf("list users by status: %v", err)
	}
	if len(resp.Users) != 1 || resp.Users[0].Email != "bob@example.com" {
		t.Fatalf("expected only bob, got %+v", resp.Users)
	}

	resp, err = h.svc.ListUsers(ctx, ListUsersRequest{Search: "alice"})
	if err != nil {
		t.Fatalf("list users by search: %v", err)
	}
	if len(resp.Users) != 1 || resp.Users[0].Email != "alice@example.com" {
		t.Fatalf("expected only alice, got %+v", resp.Users)
	}
}
