package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/annalofgren/wishvault-backend/internal/users"
	"github.com/annalofgren/wishvault-backend/internal/wishlists"
	"github.com/annalofgren/wishvault-backend/pkg/db/models"
	pkgerrors "github.com/annalofgren/wishvault-backend/pkg/errors"
	"github.com/google/uuid"
)

const (
	minQueryLength = 2
	maxResults     = 5
)

// Service finds users and wishlists by free-text query.
type Service interface {
	Search(ctx context.Context, viewerID uuid.UUID, query string) (ResultDTO, error)
}

// ResultDTO groups the matches of a single search. User matches carry the
// public profile shape only, never the account email.
type ResultDTO struct {
	Users     []users.PublicUserDTO   `json:"users"`
	Wishlists []wishlists.WishlistDTO `json:"wishlists"`
}

type userSearcher interface {
	SearchByName(ctx context.Context, query string, limit int) ([]models.User, error)
}

type wishlistSearcher interface {
	SearchByTitleOrOwner(ctx context.Context, query string, limit int) ([]models.Wishlist, error)
}

type service struct {
	users     userSearcher
	wishlists wishlistSearcher
}

// ServiceParams bundles the dependencies for the search service.
type ServiceParams struct {
	UserRepo     userSearcher
	WishlistRepo wishlistSearcher
}

// NewService constructs a search service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.WishlistRepo == nil {
		return nil, fmt.Errorf("wishlist repository is required")
	}
	return &service{users: params.UserRepo, wishlists: params.WishlistRepo}, nil
}

// Search returns the top user and wishlist matches for the query. Queries
// shorter than two characters yield empty result sets rather than an error.
func (s *service) Search(ctx context.Context, viewerID uuid.UUID, query string) (ResultDTO, error) {
	trimmed := strings.TrimSpace(query)
	if len(trimmed) < minQueryLength {
		return emptyResult(), nil
	}

	matchedUsers, err := s.users.SearchByName(ctx, trimmed, maxResults)
	if err != nil {
		return ResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search users")
	}
	matchedWishlists, err := s.wishlists.SearchByTitleOrOwner(ctx, trimmed, maxResults)
	if err != nil {
		return ResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search wishlists")
	}

	result := ResultDTO{
		Users:     make([]users.PublicUserDTO, 0, len(matchedUsers)),
		Wishlists: wishlists.FromModels(matchedWishlists),
	}
	for i := range matchedUsers {
		if matchedUsers[i].ID == viewerID {
			continue
		}
		result.Users = append(result.Users, users.FromModelPublic(&matchedUsers[i]))
	}
	return result, nil
}

func emptyResult() ResultDTO {
	return ResultDTO{
		Users:     []users.PublicUserDTO{},
		Wishlists: []wishlists.WishlistDTO{},
	}
}
