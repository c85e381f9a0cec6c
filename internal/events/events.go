// Package events publishes domain events to a RabbitMQ topic exchange so
// other services can react to project changes.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	TaskStatusChanged     = "task.status_changed"
	TaskNoteUpdated       = "task.note_updated"
	TasksImported         = "tasks.imported"
	ResourcesImported     = "resources.imported"
	ResourceStatusChanged = "resource.status_changed"
	RiskUpdated           = "risk.updated"
	MemberRoleChanged     = "member.role_changed"
)

// Event is the envelope written to the exchange.
type Event struct {
	Type       string          `json:"type"`
	ProjectID  uuid.UUID       `json:"project_id,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
	Data       json.RawMessage `json:"data"`
}

func NewEvent(eventType string, projectID uuid.UUID, payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{
		Type:       eventType,
		ProjectID:  projectID,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}, nil
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Nop drops every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }
