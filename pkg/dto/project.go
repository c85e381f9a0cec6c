package dto

import "github.com/google/uuid"

type CreateProjectRequest struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	ProjectType string `json:"project_type"`
	TargetDate  string `json:"target_date"`
}

type UpdateRAGStatusRequest struct {
	RAGStatus string `json:"rag_status"`
}

type AddMemberRequest struct {
	UserID uuid.UUID `json:"user_id"`
}
