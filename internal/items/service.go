package items

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/annalofgren/wishvault-backend/pkg/db/models"
	pkgerrors "github.com/annalofgren/wishvault-backend/pkg/errors"
	"github.com/annalofgren/wishvault-backend/pkg/visibility"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var maxItemPrice = decimal.NewFromInt(10000)

// Service exposes business rules for wishlist items, including the purchase
// flow with its visibility guarantees.
type Service interface {
	Add(ctx context.Context, actorID, wishlistID uuid.UUID, req CreateItemRequest) (ItemDTO, error)
	AddExternal(ctx context.Context, actorID, wishlistID uuid.UUID, req CreateItemRequest) (ItemDTO, error)
	Update(ctx context.Context, actorID, itemID uuid.UUID, req UpdateItemRequest) (ItemDTO, error)
	Delete(ctx context.Context, actorID, itemID uuid.UUID) error
	Purchase(ctx context.Context, actorID, itemID uuid.UUID) (ItemDTO, error)
	CancelPurchase(ctx context.Context, actorID, itemID uuid.UUID) (ItemDTO, error)
	ListPurchases(ctx context.Context, actorID uuid.UUID, cursor string, limit int) (PurchasesPageDTO, error)
}

type itemRepository interface {
	Create(ctx context.Context, item *models.WishlistItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.WishlistItem, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
	MarkPurchased(ctx context.Context, id, buyerID uuid.UUID) (bool, error)
	ClearPurchase(ctx context.Context, id uuid.UUID) error
	ListPurchasedBy(ctx context.Context, buyerID uuid.UUID, cursor string, limit int) ([]models.WishlistItem, string, error)
}

type wishlistOwnerLookup interface {
	FindOwnerID(ctx context.Context, wishlistID uuid.UUID) (uuid.UUID, error)
}

type service struct {
	items     itemRepository
	wishlists wishlistOwnerLookup
}

// ServiceParams bundles the dependencies for the item service.
type ServiceParams struct {
	ItemRepo     itemRepository
	WishlistRepo wishlistOwnerLookup
}

// NewService constructs an item service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.ItemRepo == nil {
		return nil, fmt.Errorf("item repository is required")
	}
	if params.WishlistRepo == nil {
		return nil, fmt.Errorf("wishlist repository is required")
	}
	return &service{
		items:     params.ItemRepo,
		wishlists: params.WishlistRepo,
	}, nil
}

// Add creates an item on the caller's own wishlist.
func (s *service) Add(ctx context.Context, actorID, wishlistID uuid.UUID, req CreateItemRequest) (ItemDTO, error) {
	ownerID, err := s.ownerOf(ctx, wishlistID)
	if err != nil {
		return ItemDTO{}, err
	}
	if ownerID != actorID {
		return ItemDTO{}, pkgerrors.New(pkgerrors.CodeForbidden, "only the owner can add items")
	}

	item, err := s.buildItem(wishlistID, req)
	if err != nil {
		return ItemDTO{}, err
	}
	if err := s.items.Create(ctx, item); err != nil {
		return ItemDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create item")
	}
	return FromModel(*item), nil
}

// AddExternal creates an item that is already purchased by the caller. The
// owner never sees it in a requestable state.
func (s *service) AddExternal(ctx context.Context, actorID, wishlistID uuid.UUID, req CreateItemRequest) (ItemDTO, error) {
	ownerID, err := s.ownerOf(ctx, wishlistID)
	if err != nil {
		return ItemDTO{}, err
	}
	if err := visibility.EnsureExternalAllowed(ownerID, actorID); err != nil {
		return ItemDTO{}, err
	}

	item, err := s.buildItem(wishlistID, req)
	if err != nil {
		return ItemDTO{}, err
	}
	buyerID := actorID
	item.Purchased = true
	item.PurchasedBy = &buyerID
	item.IsExternal = true

	if err := s.items.Create(ctx, item); err != nil {
		return ItemDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create external item")
	}
	return FromModel(*item), nil
}

// Update applies changes to an item on the caller's own wishlist.
func (s *service) Update(ctx context.Context, actorID, itemID uuid.UUID, req UpdateItemRequest) (ItemDTO, error) {
	item, ownerID, err := s.loadItemWithOwner(ctx, itemID)
	if err != nil {
		return ItemDTO{}, err
	}
	if ownerID != actorID {
		return ItemDTO{}, pkgerrors.New(pkgerrors.CodeForbidden, "only the owner can update items")
	}

	updates := map[string]any{}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" || len(title) > 25 {
			return ItemDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "title must be between 1 and 25 characters")
		}
		updates["title"] = title
	}
	if req.Description != nil {
		if len(*req.Description) > 150 {
			return ItemDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "description must be at most 150 characters")
		}
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if err := validatePrice(*req.Price); err != nil {
			return ItemDTO{}, err
		}
		updates["price"] = *req.Price
	}
	if req.URL != nil {
		if len(*req.URL) > 500 {
			return ItemDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "url must be at most 500 characters")
		}
		updates["url"] = *req.URL
	}
	if req.Priority != nil {
		if !req.Priority.IsValid() {
			return ItemDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid priority")
		}
		updates["priority"] = *req.Priority
	}

	if len(updates) == 0 {
		return s.shapedDTO(*item, ownerID, actorID), nil
	}
	updates["updated_at"] = time.Now().UTC()

	if err := s.items.Update(ctx, itemID, updates); err != nil {
		return ItemDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update item")
	}

	updated, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return ItemDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload item")
	}
	return s.shapedDTO(*updated, ownerID, actorID), nil
}

// Delete removes an item from the caller's own wishlist.
func (s *service) Delete(ctx context.Context, actorID, itemID uuid.UUID) error {
	_, ownerID, err := s.loadItemWithOwner(ctx, itemID)
	if err != nil {
		return err
	}
	if ownerID != actorID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only the owner can delete items")
	}
	if err := s.items.Delete(ctx, itemID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete item")
	}
	return nil
}

// Purchase marks the item as purchased by the caller.
func (s *service) Purchase(ctx context.Context, actorID, itemID uuid.UUID) (ItemDTO, error) {
	item, ownerID, err := s.loadItemWithOwner(ctx, itemID)
	if err != nil {
		return ItemDTO{}, err
	}
	if err := visibility.EnsurePurchasable(*item, ownerID, actorID); err != nil {
		return ItemDTO{}, err
	}

	won, err := s.items.MarkPurchased(ctx, itemID, actorID)
	if err != nil {
		return ItemDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark purchased")
	}
	if !won {
		return ItemDTO{}, pkgerrors.New(pkgerrors.CodeConflict, "item is already purchased")
	}

	updated, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return ItemDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload item")
	}
	return s.shapedDTO(*updated, ownerID, actorID), nil
}

// CancelPurchase undoes a purchase made by the caller.
func (s *service) CancelPurchase(ctx context.Context, actorID, itemID uuid.UUID) (ItemDTO, error) {
	item, ownerID, err := s.loadItemWithOwner(ctx, itemID)
	if err != nil {
		return ItemDTO{}, err
	}
	if err := visibility.EnsureCancelable(*item, actorID); err != nil {
		return ItemDTO{}, err
	}

	if err := s.items.ClearPurchase(ctx, itemID); err != nil {
		return ItemDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear purchase")
	}

	updated, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return ItemDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload item")
	}
	return s.shapedDTO(*updated, ownerID, actorID), nil
}

// ListPurchases returns the items the caller has purchased, newest first.
func (s *service) ListPurchases(ctx context.Context, actorID uuid.UUID, cursor string, limit int) (PurchasesPageDTO, error) {
	if actorID == uuid.Nil {
		return PurchasesPageDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	records, nextCursor, err := s.items.ListPurchasedBy(ctx, actorID, cursor, limit)
	if err != nil {
		return PurchasesPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list purchases")
	}
	return PurchasesPageDTO{
		Items:      FromModels(records),
		NextCursor: nextCursor,
	}, nil
}

func (s *service) buildItem(wishlistID uuid.UUID, req CreateItemRequest) (*models.WishlistItem, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || len(title) > 25 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title must be between 1 and 25 characters")
	}
	if req.Description != nil && len(*req.Description) > 150 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "description must be at most 150 characters")
	}
	if req.Price != nil {
		if err := validatePrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.URL != nil && len(*req.URL) > 500 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "url must be at most 500 characters")
	}
	if req.Priority != nil && !req.Priority.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid priority")
	}

	return &models.WishlistItem{
		WishlistID:  wishlistID,
		Title:       title,
		Description: req.Description,
		Price:       req.Price,
		URL:         req.URL,
		Priority:    req.Priority,
	}, nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() || price.GreaterThan(maxItemPrice) {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be between 0 and 10000")
	}
	return nil
}

func (s *service) ownerOf(ctx context.Context, wishlistID uuid.UUID) (uuid.UUID, error) {
	if wishlistID == uuid.Nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist id is required")
	}
	ownerID, err := s.wishlists.FindOwnerID(ctx, wishlistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "wishlist not found")
		}
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wishlist")
	}
	return ownerID, nil
}

func (s *service) loadItemWithOwner(ctx context.Context, itemID uuid.UUID) (*models.WishlistItem, uuid.UUID, error) {
	if itemID == uuid.Nil {
		return nil, uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "item not found")
		}
		return nil, uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	ownerID, err := s.ownerOf(ctx, item.WishlistID)
	if err != nil {
		return nil, uuid.Nil, err
	}
	return item, ownerID, nil
}

func (s *service) shapedDTO(item models.WishlistItem, ownerID, viewerID uuid.UUID) ItemDTO {
	return FromModel(visibility.ShapeItem(item, ownerID, viewerID))
}
