package users

import (
	"time"

	"github.com/annalofgren/wishvault-backend/pkg/db/models"
	"github.com/google/uuid"
)

// UserDTO is the public representation of a user. Password hashes never leave
// the service layer.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	Image     *string   `json:"image"`
	CreatedAt time.Time `json:"created_at"`
}

// PublicUserDTO is the subset of a profile visible to anyone. It omits the
// email address.
type PublicUserDTO struct {
	ID    uuid.UUID `json:"id"`
	Name  *string   `json:"name"`
	Image *string   `json:"image"`
}

// UpdateProfileRequest carries the mutable profile fields.
type UpdateProfileRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=2,max=50"`
	Email *string `json:"email" validate:"omitempty,email"`
	Image *string `json:"image" validate:"omitempty,url,max=500"`
}

// FromModelPublic converts a persisted user into its public DTO.
func FromModelPublic(user *models.User) PublicUserDTO {
	if user == nil {
		return PublicUserDTO{}
	}
	return PublicUserDTO{
		ID:    user.ID,
		Name:  user.Name,
		Image: user.Image,
	}
}

// FromModel converts a persisted user into its DTO.
func FromModel(user *models.User) UserDTO {
	if user == nil {
		return UserDTO{}
	}
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Image:     user.Image,
		CreatedAt: user.CreatedAt,
	}
}
