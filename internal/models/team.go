package models

import (
	"time"

	"github.com/google/uuid"
)

type TeamMember struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project_id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	User      *User     `json:"profile,omitempty"`
}
