package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/megamounds/sitetrack-api/internal/database"
	"github.com/megamounds/sitetrack-api/internal/models"
	"github.com/megamounds/sitetrack-api/internal/storage"
)

type PhotoService struct {
	db    *database.DB
	blobs storage.Blobs
	now   func() time.Time
}

func NewPhotoService(db *database.DB, blobs storage.Blobs) *PhotoService {
	return &PhotoService{db: db, blobs: blobs, now: time.Now}
}

// ObjectKey is where a task photo is stored.
func ObjectKey(taskID uuid.UUID, at time.Time, filename string) string {
	return fmt.Sprintf("%s/%d_%s", taskID, at.UnixMilli(), filename)
}

func cleanFilename(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), `\`, "/"))
	if name == "." || name == "/" || name == ".." {
		return ""
	}
	return name
}

// Upload stores the blob first and then records it against the task. The
// blob is removed again if the row cannot be written.
func (s *PhotoService) Upload(ctx context.Context, role models.Role, taskID uuid.UUID, filename string, body io.Reader) (*models.Photo, error) {
	if !role.CanEditTasks() {
		return nil, ErrForbidden
	}
	filename = cleanFilename(filename)
	if filename == "" {
		return nil, invalid("filename", "is required")
	}

	var exists bool
	if err := s.db.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM tasks WHERE id = $1)`, taskID).Scan(&exists); err != nil {
		return nil, storeErr("load", "task", taskID, err)
	}
	if !exists {
		return nil, ErrTaskNotFound
	}

	key := ObjectKey(taskID, s.now(), filename)
	url, err := s.blobs.Put(ctx, key, body)
	if err != nil {
		return nil, fmt.Errorf("failed to store photo: %w", err)
	}

	var p models.Photo
	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO task_photos (task_id, url, filename)
		VALUES ($1, $2, $3)
		RETURNING id, task_id, url, filename, created_at
	`, taskID, url, filename).Scan(&p.ID, &p.TaskID, &p.URL, &p.Filename, &p.CreatedAt)
	if err != nil {
		_ = s.blobs.Delete(ctx, key)
		return nil, storeErr("create", "photo", taskID, err)
	}
	return &p, nil
}

func (s *PhotoService) ListByTask(ctx context.Context, taskID uuid.UUID) ([]models.Photo, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, task_id, url, filename, created_at
		FROM task_photos WHERE task_id = $1
		ORDER BY created_at
	`, taskID)
	if err != nil {
		return nil, storeErr("list", "photos", taskID, err)
	}
	defer rows.Close()

	photos := []models.Photo{}
	for rows.Next() {
		var p models.Photo
		if err := rows.Scan(&p.ID, &p.TaskID, &p.URL, &p.Filename, &p.CreatedAt); err != nil {
			return nil, storeErr("list", "photos", taskID, err)
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list", "photos", taskID, err)
	}
	return photos, nil
}
