package dto

import "github.com/hongminglow/estate-be/internal/models"

type SignInRequest struct {
	Email string `json:"email"`
}

type SignUpRequest struct {
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
}

type SessionResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}
