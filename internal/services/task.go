package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/megamounds/sitetrack-api/internal/database"
	"github.com/megamounds/sitetrack-api/internal/events"
	"github.com/megamounds/sitetrack-api/internal/models"
)

type TaskService struct {
	db    *database.DB
	hooks *Hooks
}

func NewTaskService(db *database.DB, hooks *Hooks) *TaskService {
	return &TaskService{db: db, hooks: hooks}
}

type CreateTaskInput struct {
	Title      string
	Week       string
	Section    string
	Status     string
	Priority   string
	IsCritical bool
	Notes      string
	StartDate  *time.Time
	EndDate    *time.Time
}

const taskColumns = `id, project_id, title, week, section, status, priority, is_critical, notes,
	start_date, end_date, assignee_id, created_at, updated_at`

var taskCopyColumns = []string{
	"project_id", "title", "week", "section", "status", "priority", "is_critical", "notes", "start_date", "end_date",
}

func scanTask(row pgx.Row) (*models.Task, error) {
	var t models.Task
	err := row.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Week, &t.Section, &t.Status, &t.Priority,
		&t.IsCritical, &t.Notes, &t.StartDate, &t.EndDate, &t.AssigneeID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByProject returns tasks ordered by week then section.
func (s *TaskService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Task, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks WHERE project_id = $1
		ORDER BY week, section, created_at
	`, projectID)
	if err != nil {
		return nil, storeErr("list", "tasks", projectID, err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, storeErr("list", "tasks", projectID, err)
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list", "tasks", projectID, err)
	}
	return tasks, nil
}

func (s *TaskService) GetByID(ctx context.Context, taskID uuid.UUID) (*models.Task, error) {
	t, err := scanTask(s.db.Pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, taskID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, storeErr("load", "task", taskID, err)
	}
	return t, nil
}

// Create adds a single task. Status and priority fall back to their defaults
// when blank and are rejected when set to an unknown value.
func (s *TaskService) Create(ctx context.Context, role models.Role, projectID uuid.UUID, in CreateTaskInput) (*models.Task, error) {
	if !role.CanManage() {
		return nil, ErrForbidden
	}
	title, week, section := strings.TrimSpace(in.Title), strings.TrimSpace(in.Week), strings.TrimSpace(in.Section)
	switch {
	case title == "":
		return nil, invalid("title", "is required")
	case week == "":
		return nil, invalid("week", "is required")
	case section == "":
		return nil, invalid("section", "is required")
	}

	status := models.TaskNotStarted
	if in.Status != "" {
		var ok bool
		if status, ok = models.ParseTaskStatus(in.Status); !ok {
			return nil, invalid("status", "unknown status "+in.Status)
		}
	}
	priority := models.PriorityNormal
	if in.Priority != "" {
		var ok bool
		if priority, ok = models.ParsePriority(in.Priority); !ok {
			return nil, invalid("priority", "unknown priority "+in.Priority)
		}
	}

	t, err := scanTask(s.db.Pool.QueryRow(ctx, `
		INSERT INTO tasks (project_id, title, week, section, status, priority, is_critical, notes, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+taskColumns,
		projectID, title, week, section, status, priority, in.IsCritical, in.Notes, in.StartDate, in.EndDate))
	if err != nil {
		return nil, storeErr("create", "task", uuid.Nil, err)
	}
	s.hooks.changed(ctx, projectID, "", nil)
	return t, nil
}

func (s *TaskService) UpdateStatus(ctx context.Context, role models.Role, taskID uuid.UUID, raw string) (*models.Task, error) {
	if !role.CanEditTasks() {
		return nil, ErrForbidden
	}
	status, ok := models.ParseTaskStatus(raw)
	if !ok {
		return nil, invalid("status", "unknown status "+raw)
	}

	t, err := scanTask(s.db.Pool.QueryRow(ctx, `
		UPDATE tasks SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+taskColumns, status, taskID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, storeErr("update", "task", taskID, err)
	}
	s.hooks.changed(ctx, t.ProjectID, events.TaskStatusChanged, map[string]any{
		"task_id": t.ID, "status": t.Status,
	})
	return t, nil
}

// AdvanceStatus moves a task to the next status in the cycle.
func (s *TaskService) AdvanceStatus(ctx context.Context, role models.Role, taskID uuid.UUID) (*models.Task, error) {
	if !role.CanEditTasks() {
		return nil, ErrForbidden
	}
	current, err := s.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return s.UpdateStatus(ctx, role, taskID, string(current.Status.Next()))
}

func (s *TaskService) UpdateNote(ctx context.Context, role models.Role, taskID uuid.UUID, notes string) (*models.Task, error) {
	if !role.CanEditTasks() {
		return nil, ErrForbidden
	}

	t, err := scanTask(s.db.Pool.QueryRow(ctx, `
		UPDATE tasks SET notes = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+taskColumns, notes, taskID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, storeErr("update", "task", taskID, err)
	}
	s.hooks.changed(ctx, t.ProjectID, events.TaskNoteUpdated, map[string]any{"task_id": t.ID})
	return t, nil
}

// InsertBatch copies validated tasks into the table in one round trip.
func (s *TaskService) InsertBatch(ctx context.Context, tasks []models.Task) (int64, error) {
	n, err := s.db.Pool.CopyFrom(ctx, pgx.Identifier{"tasks"}, taskCopyColumns,
		pgx.CopyFromSlice(len(tasks), func(i int) ([]any, error) {
			t := tasks[i]
			return []any{t.ProjectID, t.Title, t.Week, t.Section, string(t.Status), string(t.Priority),
				t.IsCritical, t.Notes, t.StartDate, t.EndDate}, nil
		}))
	if err != nil {
		return n, storeErr("insert", "tasks", uuid.Nil, err)
	}
	return n, nil
}
