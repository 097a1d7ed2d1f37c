package wishlists

import (
	"encoding/json"
	"testing"

	"github.com/annalofgren/wishvault-backend/pkg/db/models"
	"github.com/annalofgren/wishvault-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestWishlistDTOSerializesPublicProfilesOnly(t *testing.T) {
	ownerName := "Alice Andersson"
	buyerName := "Bertil Berg"
	buyerImage := "https://cdn.example.com/bertil.png"
	buyerID := uuid.New()

	owner := &models.User{ID: uuid.New(), Email: "alice@example.com", Name: &ownerName}
	buyer := &models.User{ID: buyerID, Email: "buyer@example.com", Name: &buyerName, Image: &buyerImage}

	wishlist := models.Wishlist{
		ID:       uuid.New(),
		OwnerID:  owner.ID,
		Owner:    owner,
		Title:    "Jul",
		Occasion: enums.OccasionChristmas,
		Items: []models.WishlistItem{{
			ID:              uuid.New(),
			Title:           "Scarf",
			Purchased:       true,
			PurchasedBy:     &buyerID,
			PurchasedByUser: buyer,
		}},
	}

	raw, err := json.Marshal(FromModel(wishlist))
	require.NoError(t, err)
	serialized := string(raw)

	require.NotContains(t, serialized, "email", "emails must never reach a wishlist response")
	require.NotContains(t, serialized, "alice@example.com")
	require.NotContains(t, serialized, "buyer@example.com")

	require.Contains(t, serialized, ownerName, "owner name stays visible")
	require.Contains(t, serialized, buyerName, "purchaser name stays visible to non-owners")
	require.Contains(t, serialized, buyerImage, "purchaser image stays visible to non-owners")
}
