package wishlists

import (
	"context"
	"strings"

	"github.com/annalofgren/wishvault-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository encapsulates wishlist persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a wishlist repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the wishlist.
func (r *Repository) Create(ctx context.Context, wishlist *models.Wishlist) error {
	return r.db.WithContext(ctx).Create(wishlist).Error
}

// FindByID loads a wishlist with its owner, items, and each item's purchaser.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Items.PurchasedByUser").
		First(&wishlist, "id = ?", id).
		Error; err != nil {
		return nil, err
	}
	return &wishlist, nil
}

// FindOwnerID resolves only the owner of a wishlist, without loading the rest.
func (r *Repository) FindOwnerID(ctx context.Context, wishlistID uuid.UUID) (uuid.UUID, error) {
	var wishlist models.Wishlist
	if err := r.db.WithContext(ctx).
		Select("id", "owner_id").
		First(&wishlist, "id = ?", wishlistID).
		Error; err != nil {
		return uuid.Nil, err
	}
	return wishlist.OwnerID, nil
}

// ListByOwner returns all wishlists owned by the user, newest first.
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Wishlist, error) {
	var wishlists []models.Wishlist
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&wishlists).
		Error; err != nil {
		return nil, err
	}
	return wishlists, nil
}

// ListByOwnerWithItems returns a user's wishlists with items and purchasers
// loaded, newest wishlist first.
func (r *Repository) ListByOwnerWithItems(ctx context.Context, ownerID uuid.UUID) ([]models.Wishlist, error) {
	var wishlists []models.Wishlist
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Items.PurchasedByUser").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&wishlists).
		Error; err != nil {
		return nil, err
	}
	return wishlists, nil
}

// Update applies the mutable wishlist columns.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Wishlist{}).
		Where("id = ?", id).
		Updates(updates).
		Error
}

// DeleteWithItems removes the wishlist and everything on it in one transaction.
func (r *Repository) DeleteWithItems(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.WishlistItem{}, "wishlist_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Wishlist{}, "id = ?", id).Error
	})
}

// ListNewest returns the most recently created wishlists, excluding the
// caller's own, with owner, items, and purchasers preloaded.
func (r *Repository) ListNewest(ctx context.Context, excludeOwnerID uuid.UUID, limit int) ([]models.Wishlist, error) {
	query := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Items.PurchasedByUser")
	if excludeOwnerID != uuid.Nil {
		query = query.Where("owner_id <> ?", excludeOwnerID)
	}

	var wishlists []models.Wishlist
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Find(&wishlists).
		Error; err != nil {
		return nil, err
	}
	return wishlists, nil
}

// SearchByTitleOrOwner returns up to limit wishlists whose title matches the
// query, or whose owner's name does. Matching is case-insensitive through
// LOWER so it behaves the same on Postgres and the sqlite test driver.
func (r *Repository) SearchByTitleOrOwner(ctx context.Context, query string, limit int) ([]models.Wishlist, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var wishlists []models.Wishlist
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Joins("LEFT JOIN users ON users.id = wishlists.owner_id").
		Where("LOWER(wishlists.title) LIKE ? OR LOWER(users.name) LIKE ?", pattern, pattern).
		Order("wishlists.created_at DESC").
		Limit(limit).
		Find(&wishlists).
		Error; err != nil {
		return nil, err
	}
	return wishlists, nil
}
