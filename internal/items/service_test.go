package items

import (
	"context"
	"testing"

	"github.com/annalofgren/wishvault-backend/pkg/db/models"
	pkgerrors "github.com/annalofgren/wishvault-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type stubItemRepo struct {
	items map[uuid.UUID]*models.WishlistItem
}

func newStubItemRepo() *stubItemRepo {
	return &stubItemRepo{items: map[uuid.UUID]*models.WishlistItem{}}
}

func (s *stubItemRepo) Create(_ context.Context, item *models.WishlistItem) error {
	item.ID = uuid.New()
	copied := *item
	s.items[item.ID] = &copied
	return nil
}

func (s *stubItemRepo) FindByID(_ context.Context, id uuid.UUID) (*models.WishlistItem, error) {
	if item, ok := s.items[id]; ok {
		copied := *item
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubItemRepo) Update(_ context.Context, id uuid.UUID, updates map[string]any) error {
	item, ok := s.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if title, ok := updates["title"].(string); ok {
		item.Title = title
	}
	if desc, ok := updates["description"].(string); ok {
		item.Description = &desc
	}
	if price, ok := updates["price"].(decimal.Decimal); ok {
		item.Price = &price
	}
	return nil
}

func (s *stubItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.items, id)
	return nil
}

func (s *stubItemRepo) MarkPurchased(_ context.Context, id, buyerID uuid.UUID) (bool, error) {
	item, ok := s.items[id]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	if item.Purchased {
		return false, nil
	}
	item.Purchased = true
	buyer := buyerID
	item.PurchasedBy = &buyer
	return true, nil
}

func (s *stubItemRepo) ClearPurchase(_ context.Context, id uuid.UUID) error {
	item, ok := s.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	item.Purchased = false
	item.PurchasedBy = nil
	return nil
}

func (s *stubItemRepo) ListPurchasedBy(_ context.Context, buyerID uuid.UUID, _ string, _ int) ([]models.WishlistItem, string, error) {
	var out []models.WishlistItem
	for _, item := range s.items {
		if item.PurchasedBy != nil && *item.PurchasedBy == buyerID {
			out = append(out, *item)
		}
	}
	return out, "", nil
}

type stubOwnerLookup struct {
	owners map[uuid.UUID]uuid.UUID
}

func (s *stubOwnerLookup) FindOwnerID(_ context.Context, wishlistID uuid.UUID) (uuid.UUID, error) {
	if owner, ok := s.owners[wishlistID]; ok {
		return owner, nil
	}
	return uuid.Nil, gorm.ErrRecordNotFound
}

type itemTestSetup struct {
	service    Service
	repo       *stubItemRepo
	owner      uuid.UUID
	buyer      uuid.UUID
	wishlistID uuid.UUID
}

func newItemTestSetup(t *testing.T) *itemTestSetup {
	t.Helper()
	repo := newStubItemRepo()
	owner := uuid.New()
	wishlistID := uuid.New()
	lookup := &stubOwnerLookup{owners: map[uuid.UUID]uuid.UUID{wishlistID: owner}}

	svc, err := NewService(ServiceParams{ItemRepo: repo, WishlistRepo: lookup})
	if err != nil {
		t.Fatalf("new item service: %v", err)
	}
	return &itemTestSetup{
		service:    svc,
		repo:       repo,
		owner:      owner,
		buyer:      uuid.New(),
		wishlistID: wishlistID,
	}
}

func (s *itemTestSetup) addItem(t *testing.T) ItemDTO {
	t.Helper()
	dto, err := s.service.Add(context.Background(), s.owner, s.wishlistID, CreateItemRequest{Title: "Headphones"})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	return dto
}

func TestAddRequiresOwner(t *testing.T) {
	setup := newItemTestSetup(t)

	_, err := setup.service.Add(context.Background(), setup.buyer, setup.wishlistID, CreateItemRequest{Title: "Headphones"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden for non-owner add, got %v", err)
	}
}

func TestAddValidatesFields(t *testing.T) {
	setup := newItemTestSetup(t)
	ctx := context.Background()

	longTitle := "this title is way too long for an item"
	_, err := setup.service.Add(ctx, setup.owner, setup.wishlistID, CreateItemRequest{Title: longTitle})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for long title, got %v", err)
	}

	tooExpensive := decimal.NewFromInt(10001)
	_, err = setup.service.Add(ctx, setup.owner, setup.wishlistID, CreateItemRequest{Title: "Boat", Price: &tooExpensive})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for price above cap, got %v", err)
	}

	negative := decimal.NewFromInt(-1)
	_, err = setup.service.Add(ctx, setup.owner, setup.wishlistID, CreateItemRequest{Title: "Boat", Price: &negative})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for negative price, got %v", err)
	}
}

func TestPurchaseFlow(t *testing.T) {
	setup := newItemTestSetup(t)
	ctx := context.Background()
	item := setup.addItem(t)

	// owner cannot buy their own item
	_, err := setup.service.Purchase(ctx, setup.owner, item.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden for owner purchase, got %v", err)
	}

	dto, err := setup.service.Purchase(ctx, setup.buyer, item.ID)
	if err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	if !dto.Purchased || dto.PurchasedBy == nil || *dto.PurchasedBy != setup.buyer {
		t.Fatalf("buyer should see their own purchase, got %+v", dto)
	}

	_, err = setup.service.Purchase(ctx, uuid.New(), item.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict for double purchase, got %v", err)
	}
}

func TestCancelPurchase(t *testing.T) {
	setup := newItemTestSetup(t)
	ctx := context.Background()
	item := setup.addItem(t)

	_, err := setup.service.CancelPurchase(ctx, setup.buyer, item.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict for cancel of unpurchased item, got %v", err)
	}

	if _, err := setup.service.Purchase(ctx, setup.buyer, item.ID); err != nil {
		t.Fatalf("purchase failed: %v", err)
	}

	_, err = setup.service.CancelPurchase(ctx, uuid.New(), item.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden for cancel by another user, got %v", err)
	}

	dto, err := setup.service.CancelPurchase(ctx, setup.buyer, item.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if dto.Purchased || dto.PurchasedBy != nil {
		t.Fatalf("purchase state should be cleared, got %+v", dto)
	}
}

func TestAddExternal(t *testing.T) {
	setup := newItemTestSetup(t)
	ctx := context.Background()

	_, err := setup.service.AddExternal(ctx, setup.owner, setup.wishlistID, CreateItemRequest{Title: "Surprise"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden for owner external add, got %v", err)
	}

	dto, err := setup.service.AddExternal(ctx, setup.buyer, setup.wishlistID, CreateItemRequest{Title: "Surprise"})
	if err != nil {
		t.Fatalf("external add failed: %v", err)
	}
	if !dto.Purchased || !dto.IsExternal {
		t.Fatalf("external item should be created purchased, got %+v", dto)
	}
	if dto.PurchasedBy == nil || *dto.PurchasedBy != setup.buyer {
		t.Fatalf("external item should record the adder as purchaser, got %+v", dto)
	}
}

func TestUpdateAndDeleteRequireOwner(t *testing.T) {
	setup := newItemTestSetup(t)
	ctx := context.Background()
	item := setup.addItem(t)

	newTitle := "Speakers"
	_, err := setup.service.Update(ctx, setup.buyer, item.ID, UpdateItemRequest{Title: &newTitle})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden for non-owner update, got %v", err)
	}

	dto, err := setup.service.Update(ctx, setup.owner, item.ID, UpdateItemRequest{Title: &newTitle})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if dto.Title != "Speakers" {
		t.Fatalf("expected updated title, got %q", dto.Title)
	}

	if err := setup.service.Delete(ctx, setup.buyer, item.ID); err == nil {
		t.Fatal("expected forbidden for non-owner delete")
	}
	if err := setup.service.Delete(ctx, setup.owner, item.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := setup.repo.FindByID(ctx, item.ID); err == nil {
		t.Fatal("item should be gone after delete")
	}
}

func TestOwnerViewHidesPurchaserAfterUpdate(t *testing.T) {
	setup := newItemTestSetup(t)
	ctx := context.Background()
	item := setup.addItem(t)

	if _, err := setup.service.Purchase(ctx, setup.buyer, item.ID); err != nil {
		t.Fatalf("purchase failed: %v", err)
	}

	dto, err := setup.service.Update(ctx, setup.owner, item.ID, UpdateItemRequest{})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !dto.Purchased {
		t.Fatal("owner should see the purchased flag")
	}
	if dto.PurchasedBy != nil || dto.PurchasedByUser != nil {
		t.Fatal("owner must never see purchaser identity")
	}
}

func TestListPurchases(t *testing.T) {
	setup := newItemTestSetup(t)
	ctx := context.Background()
	item := setup.addItem(t)

	if _, err := setup.service.Purchase(ctx, setup.buyer, item.ID); err != nil {
		t.Fatalf("purchase failed: %v", err)
	}

	page, err := setup.service.ListPurchases(ctx, setup.buyer, "", 10)
	if err != nil {
		t.Fatalf("list purchases failed: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != item.ID {
		t.Fatalf("expected the purchased item, got %+v", page.Items)
	}

	_, err = setup.service.ListPurchases(ctx, uuid.Nil, "", 10)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for anonymous caller, got %v", err)
	}
}
