package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/megamounds/sitetrack-api/internal/database"
	"github.com/megamounds/sitetrack-api/internal/events"
	"github.com/megamounds/sitetrack-api/internal/models"
)

type ResourceService struct {
	db    *database.DB
	hooks *Hooks
}

func NewResourceService(db *database.DB, hooks *Hooks) *ResourceService {
	return &ResourceService{db: db, hooks: hooks}
}

type CreateResourceInput struct {
	Name          string
	Type          string
	Quantity      float64
	Unit          string
	CostPerUnit   float64
	Milestone     string
	MilestoneDate *time.Time
	Supplier      string
	Status        string
	Notes         string
}

const resourceColumns = `id, project_id, name, type, quantity, unit, cost_per_unit, milestone,
	milestone_date, supplier, status, notes, created_at`

var resourceCopyColumns = []string{
	"project_id", "name", "type", "quantity", "unit", "cost_per_unit", "milestone", "milestone_date",
	"supplier", "status", "notes",
}

func scanResource(row pgx.Row) (*models.Resource, error) {
	var r models.Resource
	err := row.Scan(&r.ID, &r.ProjectID, &r.Name, &r.Type, &r.Quantity, &r.Unit, &r.CostPerUnit,
		&r.Milestone, &r.MilestoneDate, &r.Supplier, &r.Status, &r.Notes, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *ResourceService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Resource, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+resourceColumns+`
		FROM resources WHERE project_id = $1
		ORDER BY created_at
	`, projectID)
	if err != nil {
		return nil, storeErr("list", "resources", projectID, err)
	}
	defer rows.Close()

	resources := []models.Resource{}
	for rows.Next() {
		r, err := scanResource(rows)
		if err != nil {
			return nil, storeErr("list", "resources", projectID, err)
		}
		resources = append(resources, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list", "resources", projectID, err)
	}
	return resources, nil
}

func validAmount(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func (s *ResourceService) Create(ctx context.Context, role models.Role, projectID uuid.UUID, in CreateResourceInput) (*models.Resource, error) {
	if !role.CanManage() {
		return nil, ErrForbidden
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name", "is required")
	}
	if !validAmount(in.Quantity) {
		return nil, invalid("quantity", "must be zero or more")
	}
	if !validAmount(in.CostPerUnit) {
		return nil, invalid("cost_per_unit", "must be zero or more")
	}

	typ := models.ResourceMaterial
	if in.Type != "" {
		var ok bool
		if typ, ok = models.ParseResourceType(in.Type); !ok {
			return nil, invalid("type", "unknown type "+in.Type)
		}
	}
	status := models.ResourcePlanned
	if in.Status != "" {
		var ok bool
		if status, ok = models.ParseResourceStatus(in.Status); !ok {
			return nil, invalid("status", "unknown status "+in.Status)
		}
	}

	r, err := scanResource(s.db.Pool.QueryRow(ctx, `
		INSERT INTO resources (project_id, name, type, quantity, unit, cost_per_unit, milestone, milestone_date, supplier, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+resourceColumns,
		projectID, name, typ, in.Quantity, in.Unit, in.CostPerUnit, strings.TrimSpace(in.Milestone),
		in.MilestoneDate, in.Supplier, status, in.Notes))
	if err != nil {
		return nil, storeErr("create", "resource", uuid.Nil, err)
	}
	s.hooks.changed(ctx, projectID, "", nil)
	return r, nil
}

func (s *ResourceService) UpdateStatus(ctx context.Context, role models.Role, resourceID uuid.UUID, raw string) (*models.Resource, error) {
	if !role.CanManage() {
		return nil, ErrForbidden
	}
	status, ok := models.ParseResourceStatus(raw)
	if !ok {
		return nil, invalid("status", "unknown status "+raw)
	}

	r, err := scanResource(s.db.Pool.QueryRow(ctx, `
		UPDATE resources SET status = $1
		WHERE id = $2
		RETURNING `+resourceColumns, status, resourceID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrResourceNotFound
	}
	if err != nil {
		return nil, storeErr("update", "resource", resourceID, err)
	}
	s.hooks.changed(ctx, r.ProjectID, events.ResourceStatusChanged, map[string]any{
		"resource_id": r.ID, "status": r.Status,
	})
	return r, nil
}

func (s *ResourceService) InsertBatch(ctx context.Context, resources []models.Resource) (int64, error) {
	n, err := s.db.Pool.CopyFrom(ctx, pgx.Identifier{"resources"}, resourceCopyColumns,
		pgx.CopyFromSlice(len(resources), func(i int) ([]any, error) {
			r := resources[i]
			return []any{r.ProjectID, r.Name, string(r.Type), r.Quantity, r.Unit, r.CostPerUnit, r.Milestone,
				r.MilestoneDate, r.Supplier, string(r.Status), r.Notes}, nil
		}))
	if err != nil {
		return n, storeErr("insert", "resources", uuid.Nil, err)
	}
	return n, nil
}
