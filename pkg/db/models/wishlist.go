package models

import (
	"time"

	"github.com/annalofgren/wishvault-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Wishlist is a named collection of desired items owned by one user.
type Wishlist struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	OwnerID     uuid.UUID      `gorm:"column:owner_id;type:uuid;not null;index:wishlists_owner_id_idx"`
	Owner       *User          `gorm:"foreignKey:OwnerID"`
	Title       string         `gorm:"column:title;not null"`
	Description *string        `gorm:"column:description"`
	Occasion    enums.Occasion `gorm:"column:occasion;not null"`
	Items       []WishlistItem `gorm:"foreignKey:WishlistID"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns the primary key when the caller left it unset.
func (w *Wishlist) BeforeCreate(_ *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
