package portfolio

import (
	"time"

	"github.com/google/uuid"

	"github.com/hanamaged/electro-backend/pkg/db/models"
)

// ItemDTO is the API shape of a portfolio entry.
type ItemDTO struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	ImageURL    string    `json:"image_url"`
	LinkURL     *string   `json:"link_url,omitempty"`
	Position    int       `json:"position"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateItemRequest adds a new portfolio entry.
type CreateItemRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description,omitempty"`
	ImageURL    string  `json:"image_url" validate:"required,url"`
	LinkURL     *string `json:"link_url,omitempty" validate:"omitempty,url"`
	Position    int     `json:"position"`
}

// UpdateItemRequest changes an entry. Nil fields keep their current value.
type UpdateItemRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"image_url,omitempty" validate:"omitempty,url"`
	LinkURL     *string `json:"link_url,omitempty" validate:"omitempty,url"`
	Position    *int    `json:"position,omitempty"`
	IsPublished *bool   `json:"is_published,omitempty"`
}

// FromModel converts a stored entry into its API shape.
func FromModel(item *models.PortfolioItem) *ItemDTO {
	return &ItemDTO{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		ImageURL:    item.ImageURL,
		LinkURL:     item.LinkURL,
		Position:    item.Position,
		IsPublished: item.IsPublished,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}
