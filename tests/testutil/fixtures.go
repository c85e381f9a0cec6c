package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/megamounds/sitetrack-api/internal/database"
	"github.com/megamounds/sitetrack-api/internal/models"
	"github.com/megamounds/sitetrack-api/internal/services"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateUser creates a test profile. It has no password unless WithPassword
// is given.
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	user := &models.User{
		Email:    fmt.Sprintf("user%d@example.com", f.counter),
		FullName: fmt.Sprintf("Test User %d", f.counter),
		Role:     models.RoleSiteSupervisor,
	}

	for _, opt := range opts {
		opt(user)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, full_name, role, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, user.Email, user.FullName, user.Role, user.PasswordHash).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// UserOption configures a test user
type UserOption func(*models.User)

// WithEmail sets the user's email
func WithEmail(email string) UserOption {
	return func(u *models.User) {
		u.Email = email
	}
}

// WithRole sets the user's role
func WithRole(role models.Role) UserOption {
	return func(u *models.User) {
		u.Role = role
	}
}

// WithPassword stores a bcrypt hash of password
func WithPassword(password string) UserOption {
	return func(u *models.User) {
		hash, err := services.HashPassword(password)
		if err != nil {
			panic(err)
		}
		u.PasswordHash = &hash
	}
}

// CreateProject creates a test project created by owner
func (f *Fixtures) CreateProject(t *testing.T, owner *models.User, opts ...ProjectOption) *models.Project {
	t.Helper()
	f.counter++

	project := &models.Project{
		Name:      fmt.Sprintf("Test Project %d", f.counter),
		Location:  "Lagos",
		RAGStatus: models.RAGNotStarted,
		CreatedBy: &owner.ID,
	}

	for _, opt := range opts {
		opt(project)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO projects (name, location, project_type, target_date, rag_status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, project.Name, project.Location, project.ProjectType, project.TargetDate, project.RAGStatus, project.CreatedBy).Scan(
		&project.ID, &project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create project: %v", err)
	}

	return project
}

// ProjectOption configures a test project
type ProjectOption func(*models.Project)

// WithProjectName sets the project's name
func WithProjectName(name string) ProjectOption {
	return func(p *models.Project) {
		p.Name = name
	}
}

// WithRAG sets the project's RAG status
func WithRAG(status models.RAGStatus) ProjectOption {
	return func(p *models.Project) {
		p.RAGStatus = status
	}
}

// WithTargetDate sets the project's target date
func WithTargetDate(target time.Time) ProjectOption {
	return func(p *models.Project) {
		p.TargetDate = &target
	}
}

// CreateTask creates a test task in a project
func (f *Fixtures) CreateTask(t *testing.T, project *models.Project, week, section string, status models.TaskStatus) *models.Task {
	t.Helper()
	f.counter++

	task := &models.Task{
		ProjectID: project.ID,
		Title:     fmt.Sprintf("Test Task %d", f.counter),
		Week:      week,
		Section:   section,
		Status:    status,
		Priority:  models.PriorityNormal,
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO tasks (project_id, title, week, section, status, priority)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, task.ProjectID, task.Title, task.Week, task.Section, task.Status, task.Priority).Scan(
		&task.ID, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	return task
}

// AddMember adds a user to a project team
func (f *Fixtures) AddMember(t *testing.T, project *models.Project, user *models.User) {
	t.Helper()

	_, err := f.db.Pool.Exec(context.Background(), `
		INSERT INTO project_members (project_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (project_id, user_id) DO NOTHING
	`, project.ID, user.ID)
	if err != nil {
		t.Fatalf("failed to add project member: %v", err)
	}
}

// CreateRefreshToken creates a test refresh token
func (f *Fixtures) CreateRefreshToken(t *testing.T, userID uuid.UUID, tokenHash string, expiresAt time.Time) {
	t.Helper()

	_, err := f.db.Pool.Exec(context.Background(), `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`, userID, tokenHash, expiresAt)
	if err != nil {
		t.Fatalf("failed to create refresh token: %v", err)
	}
}
