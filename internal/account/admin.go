package account

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hanamaged/electro-backend/internal/users"
	"github.com/hanamaged/electro-backend/pkg/enums"
	pkgerrors "github.com/hanamaged/electro-backend/pkg/errors"
	"github.com/hanamaged/electro-backend/pkg/pagination"
)

// UpgradeToAdmin idempotently elevates the named account to admin.
func (s *service) UpgradeToAdmin(ctx context.Context, req UpgradeRoleRequest) (*users.UserDTO, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	if user.Role != enums.UserRoleAdmin {
		if err := s.users.UpdateRole(ctx, user.ID, enums.UserRoleAdmin); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update role")
		}
		user.Role = enums.UserRoleAdmin
	}
	return users.FromModel(user), nil
}

// ListUsers returns one filtered page of users for the admin surface.
func (s *service) ListUsers(ctx context.Context, req ListUsersRequest) (*ListUsersResponse, error) {
	if req.Role != nil && !req.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role filter")
	}
	if req.Status != nil && !req.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
	}

	rows, total, err := s.users.List(ctx, users.ListFilter{
		Role:   req.Role,
		Status: req.Status,
		Search: req.Search,
	}, req.Page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list users")
	}

	dtos := make([]*users.UserDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, users.FromModel(&rows[i]))
	}
	return &ListUsersResponse{
		Users: dtos,
		Meta:  pagination.NewMeta(req.Page, total),
	}, nil
}

// UpdateUserStatus writes the lifecycle status set by an admin. Rejection is a
// status write like the rest; the record stays in place.
func (s *service) UpdateUserStatus(ctx context.Context, userID uuid.UUID, req UpdateStatusRequest) (*users.UserDTO, error) {
	if !req.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.Status != req.Status {
		if err := s.users.UpdateStatus(ctx, userID, req.Status); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update status")
		}
		user.Status = req.Status
	}
	return users.FromModel(user), nil
}
