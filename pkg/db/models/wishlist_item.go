package models

import (
	"time"

	"github.com/annalofgren/wishvault-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WishlistItem is a single desired item within a wishlist.
//
// PurchasedBy carries the purchaser identity and must never be exposed to the
// wishlist owner; response shaping lives in pkg/visibility.
type WishlistItem struct {
	ID              uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	WishlistID      uuid.UUID        `gorm:"column:wishlist_id;type:uuid;not null;index:wishlist_items_wishlist_id_idx"`
	Title           string           `gorm:"column:title;not null"`
	Description     *string          `gorm:"column:description"`
	Price           *decimal.Decimal `gorm:"column:price;type:numeric(10,2)"`
	URL             *string          `gorm:"column:url"`
	Priority        *enums.Priority  `gorm:"column:priority"`
	Purchased       bool             `gorm:"column:purchased;not null;default:false"`
	PurchasedBy     *uuid.UUID       `gorm:"column:purchased_by;type:uuid;index:wishlist_items_purchased_by_idx"`
	PurchasedByUser *User            `gorm:"foreignKey:PurchasedBy"`
	IsExternal      bool             `gorm:"column:is_external;not null;default:false"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns the primary key when the caller left it unset.
func (i *WishlistItem) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
