package models

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Location    string     `json:"location"`
	ProjectType string     `json:"project_type"`
	TargetDate  *time.Time `json:"target_date"`
	RAGStatus   RAGStatus  `json:"rag_status"`
	CreatedBy   *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ProjectProgress is a project with its task completion counts.
type ProjectProgress struct {
	Project
	TotalTasks     int `json:"total_tasks"`
	CompletedTasks int `json:"completed_tasks"`
	Progress       int `json:"progress"`
}
