package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/annalofgren/wishvault-backend/internal/wishlists"
	"github.com/annalofgren/wishvault-backend/pkg/config"
	"github.com/annalofgren/wishvault-backend/pkg/db/models"
	pkgerrors "github.com/annalofgren/wishvault-backend/pkg/errors"
	"github.com/annalofgren/wishvault-backend/pkg/logger"
	"github.com/annalofgren/wishvault-backend/pkg/visibility"
	"github.com/google/uuid"
)

// Service returns the discovery feed of recently created wishlists.
type Service interface {
	List(ctx context.Context, viewerID uuid.UUID) ([]wishlists.WishlistDTO, error)
}

type feedRepository interface {
	ListNewest(ctx context.Context, excludeOwnerID uuid.UUID, limit int) ([]models.Wishlist, error)
}

// Cache is the slice of the redis client the feed needs. A nil cache disables
// caching without changing behavior.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	FeedKey(viewerID string) string
}

type service struct {
	wishlists feedRepository
	cache     Cache
	cfg       config.FeedConfig
	log       *logger.Logger
}

// ServiceParams bundles the dependencies for the feed service.
type ServiceParams struct {
	WishlistRepo feedRepository
	Cache        Cache
	Config       config.FeedConfig
	Logger       *logger.Logger
}

// NewService constructs a feed service. The cache and logger are optional.
func NewService(params ServiceParams) (Service, error) {
	if params.WishlistRepo == nil {
		return nil, fmt.Errorf("wishlist repository is required")
	}
	if params.Config.PageSize <= 0 {
		return nil, fmt.Errorf("feed page size must be positive")
	}
	return &service{
		wishlists: params.WishlistRepo,
		cache:     params.Cache,
		cfg:       params.Config,
		log:       params.Logger,
	}, nil
}

// List returns the newest wishlists from other users. Pages are cached per
// viewer for a short window so the feed query does not run on every request.
func (s *service) List(ctx context.Context, viewerID uuid.UUID) ([]wishlists.WishlistDTO, error) {
	if cached, ok := s.fromCache(ctx, viewerID); ok {
		return cached, nil
	}

	records, err := s.wishlists.ListNewest(ctx, viewerID, s.cfg.PageSize)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load feed")
	}
	for i := range records {
		records[i].Items = visibility.ShapeItems(records[i].Items, records[i].OwnerID, viewerID)
	}

	page := wishlists.FromModels(records)
	s.storeCache(ctx, viewerID, page)
	return page, nil
}

func (s *service) fromCache(ctx context.Context, viewerID uuid.UUID) ([]wishlists.WishlistDTO, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, s.cache.FeedKey(viewerID.String()))
	if err != nil {
		return nil, false
	}
	var page []wishlists.WishlistDTO
	if err := json.Unmarshal([]byte(raw), &page); err != nil {
		return nil, false
	}
	return page, true
}

func (s *service) storeCache(ctx context.Context, viewerID uuid.UUID, page []wishlists.WishlistDTO) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(page)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.FeedKey(viewerID.String()), string(raw), s.cfg.CacheTTL); err != nil && s.log != nil {
		s.log.Warn(ctx, fmt.Sprintf("feed cache write failed: %v", err))
	}
}
