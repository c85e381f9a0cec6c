package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/megamounds/sitetrack-api/internal/database"
	"github.com/megamounds/sitetrack-api/internal/events"
	"github.com/megamounds/sitetrack-api/internal/models"
)

func setupMock(t *testing.T) (*database.DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return &database.DB{Pool: mock}, mock
}

var (
	projectCols  = []string{"id", "name", "location", "project_type", "target_date", "rag_status", "created_by", "created_at", "updated_at"}
	taskCols     = []string{"id", "project_id", "title", "week", "section", "status", "priority", "is_critical", "notes", "start_date", "end_date", "assignee_id", "created_at", "updated_at"}
	resourceCols = []string{"id", "project_id", "name", "type", "quantity", "unit", "cost_per_unit", "milestone", "milestone_date", "supplier", "status", "notes", "created_at"}
	riskCols     = []string{"id", "project_id", "title", "likelihood", "impact", "status", "mitigation", "owner", "created_at"}
	userCols     = []string{"id", "email", "full_name", "role", "password_hash", "created_at", "updated_at"}
)

func projectRow(p models.Project) []any {
	return []any{p.ID, p.Name, p.Location, p.ProjectType, p.TargetDate, p.RAGStatus, p.CreatedBy, p.CreatedAt, p.UpdatedAt}
}

func taskRow(t models.Task) []any {
	return []any{t.ID, t.ProjectID, t.Title, t.Week, t.Section, t.Status, t.Priority, t.IsCritical, t.Notes,
		t.StartDate, t.EndDate, t.AssigneeID, t.CreatedAt, t.UpdatedAt}
}

func resourceRow(r models.Resource) []any {
	return []any{r.ID, r.ProjectID, r.Name, r.Type, r.Quantity, r.Unit, r.CostPerUnit, r.Milestone,
		r.MilestoneDate, r.Supplier, r.Status, r.Notes, r.CreatedAt}
}

func riskRow(r models.Risk) []any {
	return []any{r.ID, r.ProjectID, r.Title, r.Likelihood, r.Impact, r.Status, r.Mitigation, r.Owner, r.CreatedAt}
}

func userRow(u models.User) []any {
	return []any{u.ID, u.Email, u.FullName, u.Role, u.PasswordHash, u.CreatedAt, u.UpdatedAt}
}

func sampleTask(projectID uuid.UUID) models.Task {
	now := time.Now()
	return models.Task{
		ID:        uuid.New(),
		ProjectID: projectID,
		Title:     "Plaster lift shaft",
		Week:      "WEEK 1",
		Section:   "Roofing & Rooftop",
		Status:    models.TaskNotStarted,
		Priority:  models.PriorityCritical,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type recordingCache struct {
	invalidated []uuid.UUID
	stored      map[string]any
}

func (c *recordingCache) Get(context.Context, uuid.UUID, string, any) (bool, error) { return false, nil }

func (c *recordingCache) Set(_ context.Context, projectID uuid.UUID, view string, value any) error {
	if c.stored == nil {
		c.stored = map[string]any{}
	}
	c.stored[projectID.String()+"/"+view] = value
	return nil
}

func (c *recordingCache) Invalidate(_ context.Context, projectID uuid.UUID) error {
	c.invalidated = append(c.invalidated, projectID)
	return nil
}

type recordingPublisher struct {
	published []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.Event) error {
	p.published = append(p.published, ev)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	out := make([]string, len(p.published))
	for i, ev := range p.published {
		out[i] = ev.Type
	}
	return out
}
