package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/megamounds/sitetrack-api/internal/database"
	"github.com/megamounds/sitetrack-api/internal/models"
)

const uniqueViolation = "23505"

type MemberService struct {
	db    *database.DB
	hooks *Hooks
}

func NewMemberService(db *database.DB, hooks *Hooks) *MemberService {
	return &MemberService{db: db, hooks: hooks}
}

// ListByProject returns the project team with each member's profile.
func (s *MemberService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.TeamMember, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT pm.id, pm.project_id, pm.user_id, pm.created_at,
			u.email, u.full_name, u.role
		FROM project_members pm
		JOIN users u ON u.id = pm.user_id
		WHERE pm.project_id = $1
		ORDER BY pm.created_at
	`, projectID)
	if err != nil {
		return nil, storeErr("list", "members", projectID, err)
	}
	defer rows.Close()

	members := []models.TeamMember{}
	for rows.Next() {
		var m models.TeamMember
		u := &models.User{}
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.UserID, &m.CreatedAt, &u.Email, &u.FullName, &u.Role); err != nil {
			return nil, storeErr("list", "members", projectID, err)
		}
		u.ID = m.UserID
		m.User = u
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list", "members", projectID, err)
	}
	return members, nil
}

func (s *MemberService) Add(ctx context.Context, role models.Role, projectID, userID uuid.UUID) (*models.TeamMember, error) {
	if !role.CanManage() {
		return nil, ErrForbidden
	}

	var m models.TeamMember
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO project_members (project_id, user_id)
		VALUES ($1, $2)
		RETURNING id, project_id, user_id, created_at
	`, projectID, userID).Scan(&m.ID, &m.ProjectID, &m.UserID, &m.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrAlreadyMember
		}
		return nil, storeErr("add", "member", userID, err)
	}
	s.hooks.changed(ctx, projectID, "", nil)
	return &m, nil
}

func (s *MemberService) Remove(ctx context.Context, role models.Role, projectID, userID uuid.UUID) error {
	if !role.CanManage() {
		return ErrForbidden
	}

	tag, err := s.db.Pool.Exec(ctx, `
		DELETE FROM project_members WHERE project_id = $1 AND user_id = $2
	`, projectID, userID)
	if err != nil {
		return storeErr("remove", "member", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMemberNotFound
	}
	s.hooks.changed(ctx, projectID, "", nil)
	return nil
}
