package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/annalofgren/wishvault-backend/pkg/db"
	"github.com/annalofgren/wishvault-backend/pkg/db/models"
	pkgerrors "github.com/annalofgren/wishvault-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes profile management for authenticated users plus the
// public profile lookup.
type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (UserDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (UserDTO, error)
	PublicProfile(ctx context.Context, userID uuid.UUID) (PublicUserDTO, error)
}

type userRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.User, error)
}

type service struct {
	users userRepository
}

// ServiceParams bundles the dependencies required to build a user service.
type ServiceParams struct {
	UserRepo userRepository
}

// NewService constructs a profile service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	return &service{users: params.UserRepo}, nil
}

// GetProfile returns the caller's own profile.
func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (UserDTO, error) {
	if userID == uuid.Nil {
		return UserDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return FromModel(user), nil
}

// PublicProfile returns the fields of a user anyone may see.
func (s *service) PublicProfile(ctx context.Context, userID uuid.UUID) (PublicUserDTO, error) {
	if userID == uuid.Nil {
		return PublicUserDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PublicUserDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return PublicUserDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return FromModelPublic(user), nil
}

// UpdateProfile applies the provided profile changes to the caller's account.
func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (UserDTO, error) {
	if userID == uuid.Nil {
		return UserDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}

	updates := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if len(name) < 2 || len(name) > 50 {
			return UserDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "name must be between 2 and 50 characters").
				WithDetails(map[string]string{"name": "must be between 2 and 50 characters"})
		}
		updates["name"] = name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" {
			return UserDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "email cannot be empty").
				WithDetails(map[string]string{"email": "cannot be empty"})
		}
		if existing, err := s.users.FindByEmail(ctx, email); err == nil && existing.ID != userID {
			return UserDTO{}, pkgerrors.New(pkgerrors.CodeConflict, "email already in use")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup email")
		}
		updates["email"] = email
	}
	if req.Image != nil {
		updates["image"] = strings.TrimSpace(*req.Image)
	}

	if len(updates) == 0 {
		return s.GetProfile(ctx, userID)
	}
	updates["updated_at"] = time.Now().UTC()

	user, err := s.users.UpdateProfile(ctx, userID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		if db.IsUniqueViolation(err, "users_email_key") {
			return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "email already in use")
		}
		return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update profile")
	}
	return FromModel(user), nil
}
