package dto

import (
	"time"

	"github.com/yangsb/account-ledger/internal/core/domain"
)

// CreateUserRequest defines the data needed to register an account user.
type CreateUserRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain.AccountUser to its response DTO.
func ToUserResponse(u *domain.AccountUser) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}
