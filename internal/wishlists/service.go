package wishlists

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
	"gorm.io/gorm"
)

// Service exposes business rules for wishlists. Reads shape purchase data to
// the viewer so owners never learn who bought their items.
type Service interface {
	Create(ctx context.Context, ownerID uuid.UUID, req CreateWishlistRequest) (WishlistDTO, error)
	Get(ctx context.Context, viewerID, wishlistID uuid.UUID) (WishlistDTO, error)
	ListMine(ctx context.Context, ownerID uuid.UUID) ([]WishlistDTO, error)
	ListByOwner(ctx context.Context, viewerID, ownerID uuid.UUID) ([]WishlistDTO, error)
	Update(ctx context.Context, actorID, wishlistID uuid.UUID, req UpdateWishlistRequest) (WishlistDTO, error)
	Delete(ctx context.Context, actorID, wishlistID uuid.UUID) error
}

type wishlistRepository interface {
	Create(ctx context.Context, wishlist *models.Wishlist) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Wishlist, error)
	FindOwnerID(ctx context.Context, wishlistID uuid.UUID) (uuid.UUID, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Wishlist, error)
	ListByOwnerWithItems(ctx context.Context, ownerID uuid.UUID) ([]models.Wishlist, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteWithItems(ctx context.Context, id uuid.UUID) error
}

type service struct {
	wishlists wishlistRepository
}

// ServiceParams bundles the dependencies for the wishlist service.
type ServiceParams struct {
	WishlistRepo wishlistRepository
}

// NewService constructs a wishlist service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.WishlistRepo == nil {
		return nil, fmt.Errorf("wishlist repository is required")
	}
	return &service{wishlists: params.WishlistRepo}, nil
}

// Create makes a new wishlist owned by the caller.
func (s *service) Create(ctx context.Context, ownerID uuid.UUID, req CreateWishlistRequest) (WishlistDTO, error) {
	if ownerID == uuid.Nil {
		return WishlistDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}

	title := strings.TrimSpace(req.Title)
	if title == "" || len(title) > 25 {
		return WishlistDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "title must be between 1 and 25 characters")
	}
	if req.Description != nil && len(*req.Description) > 75 {
		return WishlistDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "description must be at most 75 characters")
	}
	if !req.Occasion.IsValid() {
		return WishlistDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid occasion")
	}

	wishlist := &models.Wishlist{
		OwnerID:     ownerID,
		Title:       title,
		Description: req.Description,
		Occasion:    req.Occasion,
	}
	if err := s.wishlists.Create(ctx, wishlist); err != nil {
		return WishlistDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create wishlist")
	}
	return FromModel(*wishlist), nil
}

// Get loads a wishlist with its items shaped for the viewer.
func (s *service) Get(ctx context.Context, viewerID, wishlistID uuid.UUID) (WishlistDTO, error) {
	wishlist, err := s.load(ctx, wishlistID)
	if err != nil {
		return WishlistDTO{}, err
	}
	wishlist.Items = visibility.ShapeItems(wishlist.Items, wishlist.OwnerID, viewerID)
	return FromModel(*wishlist), nil
}

// ListMine returns the caller's own wishlists, newest first.
func (s *service) ListMine(ctx context.Context, ownerID uuid.UUID) ([]WishlistDTO, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	wishlists, err := s.wishlists.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wishlists")
	}
	return FromModels(wishlists), nil
}

// ListByOwner returns another user's wishlists with items shaped for the
// viewer. Anonymous viewers (uuid.Nil) see the non-owner projection.
func (s *service) ListByOwner(ctx context.Context, viewerID, ownerID uuid.UUID) ([]WishlistDTO, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner id is required")
	}
	wishlists, err := s.wishlists.ListByOwnerWithItems(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wishlists")
	}
	for i := range wishlists {
		wishlists[i].Items = visibility.ShapeItems(wishlists[i].Items, wishlists[i].OwnerID, viewerID)
	}
	return FromModels(wishlists), nil
}

// Update applies changes to the caller's own wishlist.
func (s *service) Update(ctx context.Context, actorID, wishlistID uuid.UUID, req UpdateWishlistRequest) (WishlistDTO, error) {
	wishlist, err := s.load(ctx, wishlistID)
	if err != nil {
		return WishlistDTO{}, err
	}
	if wishlist.OwnerID != actorID {
		return WishlistDTO{}, pkgerrors.New(pkgerrors.CodeForbidden, "only the owner can update this wishlist")
	}

	updates := map[string]any{}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" || len(title) > 25 {
			return WishlistDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "title must be between 1 and 25 characters")
		}
		updates["title"] = title
	}
	if req.Description != nil {
		if len(*req.Description) > 75 {
			return WishlistDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "description must be at most 75 characters")
		}
		updates["description"] = *req.Description
	}
	if req.Occasion != nil {
		if !req.Occasion.IsValid() {
			return WishlistDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid occasion")
		}
		updates["occasion"] = *req.Occasion
	}

	if len(updates) == 0 {
		wishlist.Items = visibility.ShapeItems(wishlist.Items, wishlist.OwnerID, actorID)
		return FromModel(*wishlist), nil
	}
	updates["updated_at"] = time.Now().UTC()

	if err := s.wishlists.Update(ctx, wishlistID, updates); err != nil {
		return WishlistDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update wishlist")
	}

	updated, err := s.load(ctx, wishlistID)
	if err != nil {
		return WishlistDTO{}, err
	}
	updated.Items = visibility.ShapeItems(updated.Items, updated.OwnerID, actorID)
	return FromModel(*updated), nil
}

// Delete removes the caller's own wishlist together with its items.
func (s *service) Delete(ctx context.Context, actorID, wishlistID uuid.UUID) error {
	if wishlistID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "wishlist id is required")
	}
	ownerID, err := s.wishlists.FindOwnerID(ctx, wishlistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "wishlist not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wishlist")
	}
	if ownerID != actorID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only the owner can delete this wishlist")
	}
	if err := s.wishlists.DeleteWithItems(ctx, wishlistID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete wishlist")
	}
	return nil
}

func (s *service) load(ctx context.Context, wishlistID uuid.UUID) (*models.Wishlist, error) {
	if wishlistID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist id is required")
	}
	wishlist, err := s.wishlists.FindByID(ctx, wishlistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "wishlist not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wishlist")
	}
	return wishlist, nil
}
