package dto

import (
	"github.com/google/uuid"

	"github.com/megamounds/sitetrack-api/internal/models"
)

type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Role     string    `json:"role"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     string(u.Role),
	}
}

type InviteUserRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// InviteResponse carries the accept link only when no mail server is
// configured, so an admin can pass it on by hand.
type InviteResponse struct {
	User      UserResponse `json:"user"`
	EmailSent bool         `json:"email_sent"`
	AcceptURL string       `json:"accept_url,omitempty"`
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}
