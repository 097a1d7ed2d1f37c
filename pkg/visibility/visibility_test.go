package visibility

import (
	"testing"

	"github.com/annalofgren/wishvault-backend/pkg/db/models"
	pkgerrors "github.com/annalofgren/wishvault-backend/pkg/errors"
	"github.com/google/uuid"
)

func TestShapeItemHidesPurchaserFromOwner(t *testing.T) {
	owner := uuid.New()
	buyer := uuid.New()

	item := models.WishlistItem{
		ID:          uuid.New(),
		Purchased:   true,
		PurchasedBy: &buyer,
		PurchasedByUser: &models.User{
			ID:    buyer,
			Email: "buyer@example.com",
		},
	}

	shaped := ShapeItem(item, owner, owner)
	if !shaped.Purchased {
		t.Fatal("owner should still see the purchased flag")
	}
	if shaped.PurchasedBy != nil || shaped.PurchasedByUser != nil {
		t.Fatal("owner should never see purchaser identity")
	}
}

func TestShapeItemKeepsPurchaserForOthers(t *testing.T) {
	owner := uuid.New()
	buyer := uuid.New()

	item := models.WishlistItem{
		ID:          uuid.New(),
		Purchased:   true,
		PurchasedBy: &buyer,
	}

	shaped := ShapeItem(item, owner, buyer)
	if shaped.PurchasedBy == nil || *shaped.PurchasedBy != buyer {
		t.Fatal("non-owner viewers should see purchaser identity")
	}

	stranger := uuid.New()
	shaped = ShapeItem(item, owner, stranger)
	if shaped.PurchasedBy == nil || *shaped.PurchasedBy != buyer {
		t.Fatal("strangers should see purchaser identity")
	}
}

func TestShapeItemsAppliesToAll(t *testing.T) {
	owner := uuid.New()
	buyer := uuid.New()

	items := []models.WishlistItem{
		{ID: uuid.New(), Purchased: true, PurchasedBy: &buyer},
		{ID: uuid.New()},
	}

	shaped := ShapeItems(items, owner, owner)
	if len(shaped) != 2 {
		t.Fatalf("expected 2 items, got %d", len(shaped))
	}
	if shaped[0].PurchasedBy != nil {
		t.Fatal("purchaser should be hidden from owner across the slice")
	}
	if items[0].PurchasedBy == nil {
		t.Fatal("shaping must not mutate the input slice")
	}
}

func TestEnsurePurchasable(t *testing.T) {
	owner := uuid.New()
	buyer := uuid.New()

	if err := EnsurePurchasable(models.WishlistItem{}, owner, buyer); err != nil {
		t.Fatalf("unpurchased item by non-owner should pass, got %v", err)
	}

	err := EnsurePurchasable(models.WishlistItem{}, owner, owner)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("owner purchase should be forbidden, got %v", err)
	}

	err = EnsurePurchasable(models.WishlistItem{Purchased: true, PurchasedBy: &buyer}, owner, uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("double purchase should conflict, got %v", err)
	}
}

func TestEnsureCancelable(t *testing.T) {
	buyer := uuid.New()

	if err := EnsureCancelable(models.WishlistItem{Purchased: true, PurchasedBy: &buyer}, buyer); err != nil {
		t.Fatalf("purchaser cancel should pass, got %v", err)
	}

	err := EnsureCancelable(models.WishlistItem{}, buyer)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("cancel of unpurchased item should be a state conflict, got %v", err)
	}

	err = EnsureCancelable(models.WishlistItem{Purchased: true, PurchasedBy: &buyer}, uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("cancel by another user should be forbidden, got %v", err)
	}
}

func TestEnsureExternalAllowed(t *testing.T) {
	owner := uuid.New()

	if err := EnsureExternalAllowed(owner, uuid.New()); err != nil {
		t.Fatalf("non-owner external add should pass, got %v", err)
	}

	err := EnsureExternalAllowed(owner, owner)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("owner external add should be forbidden, got %v", err)
	}
}
