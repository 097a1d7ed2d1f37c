package visibility

import (
	"github.com/annalofgren/wishvault-backend/pkg/db/models"
	pkgerrors "github.com/annalofgren/wishvault-backend/pkg/errors"
	"github.com/google/uuid"
)

// ShapeItem redacts purchaser identity when the viewer owns the wishlist.
// The owner still sees the purchased flag, never who bought it. Everyone
// else sees the full record.
func ShapeItem(item models.WishlistItem, ownerID, viewerID uuid.UUID) models.WishlistItem {
	if viewerID == ownerID {
		item.PurchasedBy = nil
		item.PurchasedByUser = nil
	}
	return item
}

// ShapeItems applies ShapeItem across a slice.
func ShapeItems(items []models.WishlistItem, ownerID, viewerID uuid.UUID) []models.WishlistItem {
	shaped := make([]models.WishlistItem, len(items))
	for i, item := range items {
		shaped[i] = ShapeItem(item, ownerID, viewerID)
	}
	return shaped
}

// EnsurePurchasable enforces the canonical purchase rules: owners cannot buy
// their own items and an item can only be purchased once.
func EnsurePurchasable(item models.WishlistItem, ownerID, buyerID uuid.UUID) error {
	if buyerID == ownerID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "cannot purchase items on your own wishlist")
	}
	if item.Purchased {
		return pkgerrors.New(pkgerrors.CodeConflict, "item is already purchased")
	}
	return nil
}

// EnsureCancelable enforces that only the original purchaser can undo a purchase.
func EnsureCancelable(item models.WishlistItem, requesterID uuid.UUID) error {
	if !item.Purchased || item.PurchasedBy == nil {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "item is not purchased")
	}
	if *item.PurchasedBy != requesterID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only the purchaser can cancel this purchase")
	}
	return nil
}

// EnsureExternalAllowed enforces that external items are added by non-owners only.
func EnsureExternalAllowed(ownerID, adderID uuid.UUID) error {
	if adderID == ownerID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "cannot add external items to your own wishlist")
	}
	return nil
}
