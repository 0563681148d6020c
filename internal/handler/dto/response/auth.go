package response

import (
	"roombooking/internal/usecase/queries"

	"github.com/google/uuid"
)

type LoginResponse struct {
	UserID      uuid.UUID `json:"userId"`
	AccessToken string    `json:"accessToken"`
}

type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

func FromAuthorizedUserView(rm *queries.AuthorizedUserView) *UserResponse {
	return &UserResponse{
		ID:    rm.ID,
		Email: rm.Email,
		Role:  rm.Role,
	}
}
