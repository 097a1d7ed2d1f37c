package search

import (
	"context"
	"strings"
	"testing"

	"github.com/annalofgren/wishvault-backend/pkg/db/models"
	"github.com/annalofgren/wishvault-backend/pkg/enums"
	"github.com/google/uuid"
)

type stubUserSearcher struct {
	users []models.User
}

func (s *stubUserSearcher) SearchByName(_ context.Context, query string, limit int) ([]models.User, error) {
	var out []models.User
	for _, user := range s.users {
		if user.Name != nil && strings.Contains(*user.Name, query) {
			out = append(out, user)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type stubWishlistSearcher struct {
	wishlists []models.Wishlist
}

func (s *stubWishlistSearcher) SearchByTitleOrOwner(_ context.Context, query string, limit int) ([]models.Wishlist, error) {
	var out []models.Wishlist
	for _, wishlist := range s.wishlists {
		if strings.Contains(wishlist.Title, query) {
			out = append(out, wishlist)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func namedUser(name string) models.User {
	return models.User{ID: uuid.New(), Email: strings.ToLower(name) + "@example.com", Name: &name}
}

func newSearchTestService(t *testing.T, users *stubUserSearcher, wishlists *stubWishlistSearcher) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{UserRepo: users, WishlistRepo: wishlists})
	if err != nil {
		t.Fatalf("new search service: %v", err)
	}
	return svc
}

func TestSearchShortQueryReturnsEmptySets(t *testing.T) {
	userRepo := &stubUserSearcher{users: []models.User{namedUser("Anna")}}
	svc := newSearchTestService(t, userRepo, &stubWishlistSearcher{})

	for _, query := range []string{"", "a", "  a  "} {
		result, err := svc.Search(context.Background(), uuid.New(), query)
		if err != nil {
			t.Fatalf("query %q: unexpected error %v", query, err)
		}
		if result.Users == nil || result.Wishlists == nil {
			t.Fatalf("query %q: result sets should be empty, not absent", query)
		}
		if len(result.Users) != 0 || len(result.Wishlists) != 0 {
			t.Fatalf("query %q: expected no matches, got %+v", query, result)
		}
	}
}

func TestSearchFindsUsersAndWishlists(t *testing.T) {
	anna := namedUser("Anna")
	userRepo := &stubUserSearcher{users: []models.User{anna, namedUser("Bert")}}
	wishlistRepo := &stubWishlistSearcher{wishlists: []models.Wishlist{
		{ID: uuid.New(), OwnerID: anna.ID, Title: "Annas jul", Occasion: enums.OccasionChristmas},
		{ID: uuid.New(), OwnerID: anna.ID, Title: "Gifts", Occasion: enums.OccasionOther},
	}}
	svc := newSearchTestService(t, userRepo, wishlistRepo)

	result, err := svc.Search(context.Background(), uuid.New(), "Anna")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(result.Users) != 1 || *result.Users[0].Name != "Anna" {
		t.Fatalf("expected the matching user, got %+v", result.Users)
	}
	if len(result.Wishlists) != 1 || result.Wishlists[0].Title != "Annas jul" {
		t.Fatalf("expected the matching wishlist, got %+v", result.Wishlists)
	}
}

func TestSearchExcludesCaller(t *testing.T) {
	me := namedUser("Anna Svensson")
	userRepo := &stubUserSearcher{users: []models.User{me, namedUser("Anna Berg")}}
	svc := newSearchTestService(t, userRepo, &stubWishlistSearcher{})

	result, err := svc.Search(context.Background(), me.ID, "Anna")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(result.Users) != 1 || result.Users[0].ID == me.ID {
		t.Fatalf("the caller should not appear in their own results, got %+v", result.Users)
	}
}

func TestSearchCapsResults(t *testing.T) {
	userRepo := &stubUserSearcher{}
	for i := 0; i < 10; i++ {
		userRepo.users = append(userRepo.users, namedUser("Anna Nr"+string(rune('0'+i))))
	}
	svc := newSearchTestService(t, userRepo, &stubWishlistSearcher{})

	result, err := svc.Search(context.Background(), uuid.New(), "Anna")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(result.Users) > 5 {
		t.Fatalf("expected at most 5 users, got %d", len(result.Users))
	}
}
