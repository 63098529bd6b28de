package notifications

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hanamaged/electro-backend/pkg/db/models"
	"github.com/hanamaged/electro-backend/pkg/enums"
	pkgerrors "github.com/hanamaged/electro-backend/pkg/errors"
	"github.com/hanamaged/electro-backend/pkg/pagination"
)

// Service exposes the in-app notification feed.
type Service interface {
	List(ctx context.Context, userID uuid.UUID, req ListRequest) (*ListResponse, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	NotifyOrderUpdate(ctx context.Context, userID, orderID uuid.UUID, status enums.OrderStatus) error
}

// ServiceParams groups dependencies for the notification service.
type ServiceParams struct {
	Repo *Repository
}

type service struct {
	repo *Repository
}

// NewService builds a notification service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "notification repo is required")
	}
	return &service{repo: params.Repo}, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, req ListRequest) (*ListResponse, error) {
	params := req.Params.Normalize()
	rows, total, err := s.repo.List(ctx, userID, req.UnreadOnly, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list notifications")
	}

	items := make([]NotificationDTO, 0, len(rows))
	for i := range rows {
		items = append(items, FromModel(&rows[i]))
	}
	return &ListResponse{
		Items: items,
		Meta:  pagination.NewMeta(params, total),
	}, nil
}

func (s *service) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	affected, err := s.repo.MarkRead(ctx, userID, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark notification read")
	}
	if affected > 0 {
		return nil
	}

	// No row was stamped: either the notification does not belong to the
	// caller or it was read already. Re-reads are not an error.
	exists, err := s.repo.Exists(ctx, userID, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark notification read")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.MarkAllRead(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark all notifications read")
	}
	return nil
}

// NotifyOrderUpdate enqueues an order_update row for the order's owner.
func (s *service) NotifyOrderUpdate(ctx context.Context, userID, orderID uuid.UUID, status enums.OrderStatus) error {
	link := fmt.Sprintf("/orders/%s", orderID)
	notification := &models.Notification{
		UserID:  userID,
		Type:    enums.NotificationTypeOrderUpdate,
		Title:   "Order update",
		Message: fmt.Sprintf("Your order is now %s.", status),
		Link:    &link,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order notification")
	}
	return nil
}
