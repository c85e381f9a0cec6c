package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/megamounds/sitetrack-api/internal/database"
	"github.com/megamounds/sitetrack-api/internal/models"
	"github.com/megamounds/sitetrack-api/internal/progress"
)

type ProjectService struct {
	db    *database.DB
	hooks *Hooks
}

func NewProjectService(db *database.DB, hooks *Hooks) *ProjectService {
	return &ProjectService{db: db, hooks: hooks}
}

type CreateProjectInput struct {
	Name        string
	Location    string
	ProjectType string
	TargetDate  *time.Time
}

const projectColumns = `id, name, location, project_type, target_date, rag_status, created_by, created_at, updated_at`

func scanProject(row pgx.Row) (*models.Project, error) {
	var p models.Project
	err := row.Scan(&p.ID, &p.Name, &p.Location, &p.ProjectType, &p.TargetDate,
		&p.RAGStatus, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProjectService) Create(ctx context.Context, role models.Role, createdBy uuid.UUID, in CreateProjectInput) (*models.Project, error) {
	if !role.CanManage() {
		return nil, ErrForbidden
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name", "is required")
	}

	p, err := scanProject(s.db.Pool.QueryRow(ctx, `
		INSERT INTO projects (name, location, project_type, target_date, rag_status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+projectColumns,
		name, strings.TrimSpace(in.Location), strings.TrimSpace(in.ProjectType), in.TargetDate, models.RAGNotStarted, createdBy))
	if err != nil {
		return nil, storeErr("create", "project", uuid.Nil, err)
	}
	return p, nil
}

func (s *ProjectService) GetByID(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	p, err := scanProject(s.db.Pool.QueryRow(ctx, `
		SELECT `+projectColumns+` FROM projects WHERE id = $1
	`, projectID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, storeErr("load", "project", projectID, err)
	}
	return p, nil
}

// ListWithProgress returns every project newest first with its task counts
// rolled up.
func (s *ProjectService) ListWithProgress(ctx context.Context) ([]models.ProjectProgress, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT p.id, p.name, p.location, p.project_type, p.target_date, p.rag_status, p.created_by,
			p.created_at, p.updated_at,
			COUNT(t.id) AS total_tasks,
			COUNT(t.id) FILTER (WHERE t.status = 'Complete') AS completed_tasks
		FROM projects p
		LEFT JOIN tasks t ON t.project_id = p.id
		GROUP BY p.id
		ORDER BY p.created_at DESC
	`)
	if err != nil {
		return nil, storeErr("list", "projects", uuid.Nil, err)
	}
	defer rows.Close()

	out := []models.ProjectProgress{}
	for rows.Next() {
		var pp models.ProjectProgress
		p := &pp.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Location, &p.ProjectType, &p.TargetDate, &p.RAGStatus,
			&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt, &pp.TotalTasks, &pp.CompletedTasks); err != nil {
			return nil, storeErr("list", "projects", uuid.Nil, err)
		}
		pp.Progress = progress.Percent(pp.CompletedTasks, pp.TotalTasks)
		out = append(out, pp)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list", "projects", uuid.Nil, err)
	}
	return out, nil
}

func (s *ProjectService) UpdateRAGStatus(ctx context.Context, role models.Role, projectID uuid.UUID, raw string) (*models.Project, error) {
	if !role.CanManage() {
		return nil, ErrForbidden
	}
	status, ok := models.ParseRAGStatus(raw)
	if !ok {
		return nil, invalid("rag_status", "unknown status "+raw)
	}

	p, err := scanProject(s.db.Pool.QueryRow(ctx, `
		UPDATE projects SET rag_status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+projectColumns, status, projectID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, storeErr("update", "project", projectID, err)
	}
	s.hooks.changed(ctx, projectID, "", nil)
	return p, nil
}
