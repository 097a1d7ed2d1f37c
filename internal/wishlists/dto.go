package wishlists

import (
	"time"

	"github.com/annalofgren/wishvault-backend/internal/items"
	"github.com/annalofgren/wishvault-backend/internal/users"
	"github.com/annalofgren/wishvault-backend/pkg/db/models"
	"github.com/annalofgren/wishvault-backend/pkg/enums"
	"github.com/google/uuid"
)

// CreateWishlistRequest is the payload for creating a wishlist.
type CreateWishlistRequest struct {
	Title       string         `json:"title" validate:"required,max=25"`
	Description *string        `json:"description" validate:"omitempty,max=75"`
	Occasion    enums.Occasion `json:"occasion" validate:"required"`
}

// UpdateWishlistRequest carries the mutable wishlist fields.
type UpdateWishlistRequest struct {
	Title       *string         `json:"title" validate:"omitempty,max=25"`
	Description *string         `json:"description" validate:"omitempty,max=75"`
	Occasion    *enums.Occasion `json:"occasion" validate:"omitempty"`
}

// WishlistDTO is the public representation of a wishlist. Items are already
// shaped for the viewer before conversion.
type WishlistDTO struct {
	ID          uuid.UUID            `json:"id"`
	OwnerID     uuid.UUID            `json:"owner_id"`
	Owner       *users.PublicUserDTO `json:"owner,omitempty"`
	Title       string               `json:"title"`
	Description *string              `json:"description"`
	Occasion    enums.Occasion       `json:"occasion"`
	Items       []items.ItemDTO      `json:"items,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// FromModel converts a persisted wishlist into its DTO.
func FromModel(wishlist models.Wishlist) WishlistDTO {
	dto := WishlistDTO{
		ID:          wishlist.ID,
		OwnerID:     wishlist.OwnerID,
		Title:       wishlist.Title,
		Description: wishlist.Description,
		Occasion:    wishlist.Occasion,
		CreatedAt:   wishlist.CreatedAt,
		UpdatedAt:   wishlist.UpdatedAt,
	}
	if wishlist.Owner != nil {
		owner := users.FromModelPublic(wishlist.Owner)
		dto.Owner = &owner
	}
	if len(wishlist.Items) > 0 {
		dto.Items = items.FromModels(wishlist.Items)
	}
	return dto
}

// FromModels converts a slice of persisted wishlists.
func FromModels(wishlists []models.Wishlist) []WishlistDTO {
	out := make([]WishlistDTO, 0, len(wishlists))
	for _, wishlist := range wishlists {
		out = append(out, FromModel(wishlist))
	}
	return out
}
