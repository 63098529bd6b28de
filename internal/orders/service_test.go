package orders

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hanamaged/electro-backend/pkg/db/models"
	"github.com/hanamaged/electro-backend/pkg/enums"
	pkgerrors "github.com/hanamaged/electro-backend/pkg/errors"
	"github.com/hanamaged/electro-backend/pkg/logger"
	"github.com/hanamaged/electro-backend/pkg/pagination"
)

type stubStore struct {
	orders map[uuid.UUID]*models.Order
}

func newStubStore(rows ...*models.Order) *stubStore {
	s := &stubStore{orders: map[uuid.UUID]*models.Order{}}
	for _, row := range rows {
		s.orders[row.ID] = row
	}
	return s
}

func (s *stubStore) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	if order, ok := s.orders[id]; ok {
		copied := *order
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubStore) FindForUser(ctx context.Context, userID, id uuid.UUID) (*models.Order, error) {
	order, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return order, nil
}

func (s *stubStore) ListForUser(_ context.Context, userID uuid.UUID, _ pagination.Params) ([]models.Order, int64, error) {
	var rows []models.Order
	for _, order := range s.orders {
		if order.UserID == userID {
			rows = append(rows, *order)
		}
	}
	return rows, int64(len(rows)), nil
}

func (s *stubStore) ListAll(_ context.Context, status *enums.OrderStatus, _ pagination.Params) ([]models.Order, int64, error) {
	var rows []models.Order
	for _, order := range s.orders {
		if status == nil || order.Status == *status {
			rows = append(rows, *order)
		}
	}
	return rows, int64(len(rows)), nil
}

func (s *stubStore) UpdateStatus(_ context.Context, id uuid.UUID, status enums.OrderStatus) error {
	order, ok := s.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.Status = status
	return nil
}

type stubNotifier struct {
	updates []enums.OrderStatus
}

func (n *stubNotifier) NotifyOrderUpdate(_ context.Context, _, _ uuid.UUID, status enums.OrderStatus) error {
	n.updates = append(n.updates, status)
	return nil
}

func buildTestService(t *testing.T, store *stubStore, notifier *stubNotifier) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:     store,
		Notifier: notifier,
		Logger:   logger.New(logger.Options{ServiceName: "orders-test", Output: io.Discard}),
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func pendingOrder(userID uuid.UUID) *models.Order {
	return &models.Order{
		ID:       uuid.New(),
		UserID:   userID,
		Status:   enums.OrderStatusPending,
		Subtotal: decimal.NewFromInt(100),
		Total:    decimal.NewFromInt(100),
	}
}

func TestCancelPendingOrder(t *testing.T) {
	userID := uuid.New()
	order := pendingOrder(userID)
	store := newStubStore(order)
	notifier := &stubNotifier{}
	svc := buildTestService(t, store, notifier)

	dto, err := svc.Cancel(context.Background(), userID, order.ID)
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if dto.Status != enums.OrderStatusCancelled {
		t.Fatalf("status = %s, want cancelled", dto.Status)
	}
	if store.orders[order.ID].Status != enums.OrderStatusCancelled {
		t.Fatalf("store status = %s, want cancelled", store.orders[order.ID].Status)
	}
	if len(notifier.updates) != 1 || notifier.updates[0] != enums.OrderStatusCancelled {
		t.Fatalf("notifier updates = %v, want one cancelled", notifier.updates)
	}
}

func TestCancelNonPendingOrderConflicts(t *testing.T) {
	userID := uuid.New()
	order := pendingOrder(userID)
	order.Status = enums.OrderStatusShipped
	svc := buildTestService(t, newStubStore(order), &stubNotifier{})

	_, err := svc.Cancel(context.Background(), userID, order.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestCancelSomeoneElsesOrderNotFound(t *testing.T) {
	order := pendingOrder(uuid.New())
	svc := buildTestService(t, newStubStore(order), &stubNotifier{})

	_, err := svc.Cancel(context.Background(), uuid.New(), order.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestAdminUpdateStatusFollowsTransitions(t *testing.T) {
	userID := uuid.New()
	order := pendingOrder(userID)
	store := newStubStore(order)
	notifier := &stubNotifier{}
	svc := buildTestService(t, store, notifier)
	ctx := context.Background()

	for _, next := range []string{"processing", "shipped", "delivered"} {
		dto, err := svc.AdminUpdateStatus(ctx, order.ID, UpdateStatusRequest{Status: next})
		if err != nil {
			t.Fatalf("AdminUpdateStatus(%s): %v", next, err)
		}
		if string(dto.Status) != next {
			t.Fatalf("status = %s, want %s", dto.Status, next)
		}
	}
	if len(notifier.updates) != 3 {
		t.Fatalf("notifier updates = %d, want 3", len(notifier.updates))
	}

	// Delivered is terminal.
	_, err := svc.AdminUpdateStatus(ctx, order.ID, UpdateStatusRequest{Status: "cancelled"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestAdminUpdateStatusRejectsUnknownStatus(t *testing.T) {
	order := pendingOrder(uuid.New())
	svc := buildTestService(t, newStubStore(order), &stubNotifier{})

	_, err := svc.AdminUpdateStatus(context.Background(), order.ID, UpdateStatusRequest{Status: "misplaced"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestAdminListRejectsInvalidStatusFilter(t *testing.T) {
	svc := buildTestService(t, newStubStore(), &stubNotifier{})

	bad := enums.OrderStatus("limbo")
	_, err := svc.AdminList(context.Background(), AdminListRequest{Status: &bad})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("err = %v, want validation", err)
	}
}
