package auth

import (
	"github.com/annalofgren/wishvault-backend/internal/users"
)

// RegisterRequest contains the payload required to create an account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest carries the credentials presented at login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is what a successful authentication yields. The token is set
// as an httpOnly cookie by the controller, never returned in the body.
type LoginResult struct {
	Token string
	User  users.UserDTO
}

// CSRFResponse exposes the derived public token to clients.
type CSRFResponse struct {
	Token string `json:"csrf_token"`
}
