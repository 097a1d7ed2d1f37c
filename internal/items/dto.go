package items

import (
	"time"

	"github.com/annalofgren/wishvault-backend/internal/users"
	"github.com/annalofgren/wishvault-backend/pkg/db/models"
	"github.com/annalofgren/wishvault-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateItemRequest is the payload for adding an item to a wishlist.
type CreateItemRequest struct {
	Title       string           `json:"title" validate:"required,max=25"`
	Description *string          `json:"description" validate:"omitempty,max=150"`
	Price       *decimal.Decimal `json:"price" validate:"omitempty"`
	URL         *string          `json:"url" validate:"omitempty,url,max=500"`
	Priority    *enums.Priority  `json:"priority" validate:"omitempty"`
}

// UpdateItemRequest carries the mutable item fields.
type UpdateItemRequest struct {
	Title       *string          `json:"title" validate:"omitempty,max=25"`
	Description *string          `json:"description" validate:"omitempty,max=150"`
	Price       *decimal.Decimal `json:"price" validate:"omitempty"`
	URL         *string          `json:"url" validate:"omitempty,url,max=500"`
	Priority    *enums.Priority  `json:"priority" validate:"omitempty"`
}

// ItemDTO is the public representation of a wishlist item. Purchaser fields
// are already shaped for the viewer before conversion.
type ItemDTO struct {
	ID              uuid.UUID            `json:"id"`
	WishlistID      uuid.UUID            `json:"wishlist_id"`
	Title           string               `json:"title"`
	Description     *string              `json:"description"`
	Price           *decimal.Decimal     `json:"price"`
	URL             *string              `json:"url"`
	Priority        *enums.Priority      `json:"priority"`
	Purchased       bool                 `json:"purchased"`
	PurchasedBy     *uuid.UUID           `json:"purchased_by"`
	PurchasedByUser *users.PublicUserDTO `json:"purchased_by_user"`
	IsExternal      bool                 `json:"is_external"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// FromModel converts a persisted item into its DTO.
func FromModel(item models.WishlistItem) ItemDTO {
	dto := ItemDTO{
		ID:          item.ID,
		WishlistID:  item.WishlistID,
		Title:       item.Title,
		Description: item.Description,
		Price:       item.Price,
		URL:         item.URL,
		Priority:    item.Priority,
		Purchased:   item.Purchased,
		PurchasedBy: item.PurchasedBy,
		IsExternal:  item.IsExternal,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
	if item.PurchasedByUser != nil {
		purchaser := users.FromModelPublic(item.PurchasedByUser)
		dto.PurchasedByUser = &purchaser
	}
	return dto
}

// FromModels converts a slice of persisted items.
func FromModels(items []models.WishlistItem) []ItemDTO {
	out := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, FromModel(item))
	}
	return out
}

// PurchasesPageDTO is a cursor-paginated list of items the caller purchased.
type PurchasesPageDTO struct {
	Items      []ItemDTO `json:"items"`
	NextCursor string    `json:"next_cursor,omitempty"`
}
