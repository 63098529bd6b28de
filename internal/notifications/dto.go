package notifications

import (
	"time"

	"github.com/google/uuid"

	"github.com/hanamaged/electro-backend/pkg/db/models"
	"github.com/hanamaged/electro-backend/pkg/enums"
	"github.com/hanamaged/electro-backend/pkg/pagination"
)

// NotificationDTO is the API shape of one in-app notification.
type NotificationDTO struct {
	ID        uuid.UUID              `json:"id"`
	Type      enums.NotificationType `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Link      *string                `json:"link,omitempty"`
	Read      bool                   `json:"read"`
	ReadAt    *time.Time             `json:"read_at,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// ListRequest filters the caller's notification feed.
type ListRequest struct {
	UnreadOnly bool `json:"unread_only"`
	pagination.Params
}

// ListResponse is one page of notifications.
type ListResponse struct {
	Items []NotificationDTO `json:"items"`
	Meta  pagination.Meta   `json:"meta"`
}

// FromModel converts a stored notification into its API shape.
func FromModel(n *models.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Link:      n.Link,
		Read:      n.IsRead(),
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}
