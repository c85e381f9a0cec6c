package models

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID         uuid.UUID  `json:"id"`
	ProjectID  uuid.UUID  `json:"project_id"`
	Title      string     `json:"title"`
	Week       string     `json:"week"`
	Section    string     `json:"section"`
	Status     TaskStatus `json:"status"`
	Priority   Priority   `json:"priority"`
	IsCritical bool       `json:"is_critical"`
	Notes      string     `json:"notes"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	AssigneeID *uuid.UUID `json:"assignee_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (t Task) Done() bool {
	return t.Status == TaskComplete
}

type Photo struct {
	ID        uuid.UUID `json:"id"`
	TaskID    uuid.UUID `json:"task_id"`
	URL       string    `json:"url"`
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"created_at"`
}
