package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/megamounds/sitetrack-api/internal/database"
	"github.com/megamounds/sitetrack-api/internal/events"
	"github.com/megamounds/sitetrack-api/internal/models"
)

type RiskService struct {
	db    *database.DB
	hooks *Hooks
}

func NewRiskService(db *database.DB, hooks *Hooks) *RiskService {
	return &RiskService{db: db, hooks: hooks}
}

type CreateRiskInput struct {
	Title      string
	Likelihood string
	Impact     string
	Status     string
	Mitigation string
	Owner      string
}

const riskColumns = `id, project_id, title, likelihood, impact, status, mitigation, owner, created_at`

// riskFieldColumns whitelists the columns UpdateField may write.
var riskFieldColumns = map[string]string{
	models.RiskFieldTitle:      "title",
	models.RiskFieldLikelihood: "likelihood",
	models.RiskFieldImpact:     "impact",
	models.RiskFieldStatus:     "status",
	models.RiskFieldMitigation: "mitigation",
	models.RiskFieldOwner:      "owner",
}

func scanRisk(row pgx.Row) (*models.Risk, error) {
	var r models.Risk
	err := row.Scan(&r.ID, &r.ProjectID, &r.Title, &r.Likelihood, &r.Impact, &r.Status,
		&r.Mitigation, &r.Owner, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *RiskService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Risk, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+riskColumns+`
		FROM risks WHERE project_id = $1
		ORDER BY created_at
	`, projectID)
	if err != nil {
		return nil, storeErr("list", "risks", projectID, err)
	}
	defer rows.Close()

	risks := []models.Risk{}
	for rows.Next() {
		r, err := scanRisk(rows)
		if err != nil {
			return nil, storeErr("list", "risks", projectID, err)
		}
		risks = append(risks, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list", "risks", projectID, err)
	}
	return risks, nil
}

func parseLevel(field, raw string) (models.RiskLevel, error) {
	if raw == "" {
		return models.RiskHigh, nil
	}
	lvl, ok := models.ParseRiskLevel(raw)
	if !ok {
		return "", invalid(field, "must be Low, Medium or High")
	}
	return lvl, nil
}

// Create adds a risk. Likelihood and impact default to High and status to
// Active.
func (s *RiskService) Create(ctx context.Context, role models.Role, projectID uuid.UUID, in CreateRiskInput) (*models.Risk, error) {
	if !role.CanManage() {
		return nil, ErrForbidden
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, invalid("title", "is required")
	}
	likelihood, err := parseLevel("likelihood", in.Likelihood)
	if err != nil {
		return nil, err
	}
	impact, err := parseLevel("impact", in.Impact)
	if err != nil {
		return nil, err
	}
	status := models.RiskActive
	if in.Status != "" {
		var ok bool
		if status, ok = models.ParseRiskStatus(in.Status); !ok {
			return nil, invalid("status", "unknown status "+in.Status)
		}
	}

	r, err := scanRisk(s.db.Pool.QueryRow(ctx, `
		INSERT INTO risks (project_id, title, likelihood, impact, status, mitigation, owner)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+riskColumns,
		projectID, title, likelihood, impact, status, in.Mitigation, in.Owner))
	if err != nil {
		return nil, storeErr("create", "risk", uuid.Nil, err)
	}
	s.hooks.changed(ctx, projectID, events.RiskUpdated, map[string]any{"risk_id": r.ID, "created": true})
	return r, nil
}

// UpdateField changes one risk field. Enum fields are validated against
// their closed sets.
func (s *RiskService) UpdateField(ctx context.Context, role models.Role, riskID uuid.UUID, field, value string) (*models.Risk, error) {
	if !role.CanManage() {
		return nil, ErrForbidden
	}
	column, ok := riskFieldColumns[field]
	if !ok {
		return nil, invalid("field", "cannot update "+field)
	}

	var arg any = value
	switch field {
	case models.RiskFieldLikelihood, models.RiskFieldImpact:
		lvl, ok := models.ParseRiskLevel(value)
		if !ok {
			return nil, invalid(field, "must be Low, Medium or High")
		}
		arg = lvl
	case models.RiskFieldStatus:
		st, ok := models.ParseRiskStatus(value)
		if !ok {
			return nil, invalid(field, "must be Active, Mitigated or Resolved")
		}
		arg = st
	case models.RiskFieldTitle:
		if strings.TrimSpace(value) == "" {
			return nil, invalid(field, "is required")
		}
		arg = strings.TrimSpace(value)
	}

	r, err := scanRisk(s.db.Pool.QueryRow(ctx, `
		UPDATE risks SET `+column+` = $1
		WHERE id = $2
		RETURNING `+riskColumns, arg, riskID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRiskNotFound
	}
	if err != nil {
		return nil, storeErr("update", "risk", riskID, err)
	}
	s.hooks.changed(ctx, r.ProjectID, events.RiskUpdated, map[string]any{"risk_id": r.ID, "field": field})
	return r, nil
}
