package items

import (
	"context"
	"strings"
	"time"

	"github.com/annalofgren/wishvault-backend/pkg/db/models"
	"github.com/annalofgren/wishvault-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository encapsulates wishlist item persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an item repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the item.
func (r *Repository) Create(ctx context.Context, item *models.WishlistItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// FindByID loads an item with its purchaser preloaded.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.WishlistItem, error) {
	var item models.WishlistItem
	if err := r.db.WithContext(ctx).
		Preload("PurchasedByUser").
		First(&item, "id = ?", id).
		Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Update applies the mutable item columns.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.WishlistItem{}).
		Where("id = ?", id).
		Updates(updates).
		Error
}

// Delete removes the item.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&models.WishlistItem{}, "id = ?", id).
		Error
}

// MarkPurchased stamps the purchase only when the item is still unpurchased,
// so two concurrent buyers cannot both win.
func (r *Repository) MarkPurchased(ctx context.Context, id, buyerID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.WishlistItem{}).
		Where("id = ? AND purchased = ?", id, false).
		Updates(map[string]any{
			"purchased":    true,
			"purchased_by": buyerID,
			"updated_at":   time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// ClearPurchase resets the purchase state.
func (r *Repository) ClearPurchase(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.WishlistItem{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"purchased":    false,
			"purchased_by": nil,
			"updated_at":   time.Now().UTC(),
		}).
		Error
}

// ListPurchasedBy returns a cursor-paginated page of items the user purchased.
func (r *Repository) ListPurchasedBy(ctx context.Context, buyerID uuid.UUID, cursor string, limit int) ([]models.WishlistItem, string, error) {
	normalizedLimit := pagination.NormalizeLimit(limit)
	limitWithBuffer := pagination.LimitWithBuffer(limit)
	decodedCursor, err := pagination.ParseCursor(strings.TrimSpace(cursor))
	if err != nil {
		return nil, "", err
	}

	query := r.db.WithContext(ctx).
		Where("purchased_by = ?", buyerID)

	if decodedCursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID)
	}

	var records []models.WishlistItem
	if err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limitWithBuffer).
		Find(&records).
		Error; err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(records) > normalizedLimit {
		records = records[:normalizedLimit]
		last := records[len(records)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}

	return records, nextCursor, nil
}
