package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/megamounds/sitetrack-api/internal/database"
	"github.com/megamounds/sitetrack-api/internal/events"
	"github.com/megamounds/sitetrack-api/internal/models"
)

type UserService struct {
	db           *database.DB
	hooks        *Hooks
	inviteExpiry time.Duration
}

func NewUserService(db *database.DB, hooks *Hooks, inviteExpiry time.Duration) *UserService {
	return &UserService{db: db, hooks: hooks, inviteExpiry: inviteExpiry}
}

const userColumns = `id, email, full_name, role, password_hash, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.Role, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := scanUser(s.db.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, storeErr("load", "user", id, err)
	}
	return u, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := scanUser(s.db.Pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, normalizeEmail(email)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, storeErr("load", "user", uuid.Nil, err)
	}
	return u, nil
}

// List returns every profile, newest first.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.Pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, storeErr("list", "users", uuid.Nil, err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, storeErr("list", "users", uuid.Nil, err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list", "users", uuid.Nil, err)
	}
	return users, nil
}

// Authenticate checks an email and password. Unknown emails, profiles that
// have not accepted their invite and wrong passwords all fail the same way.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.GetByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if u.PasswordHash == nil || !CheckPassword(password, *u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

type InviteInput struct {
	Email    string
	FullName string
	Role     string
}

// Invite creates a profile without a password together with a single use
// invite token. The plain token is returned once for the invite link.
func (s *UserService) Invite(ctx context.Context, actor models.Role, invitedBy uuid.UUID, in InviteInput) (*models.User, string, error) {
	if !actor.IsAdmin() {
		return nil, "", ErrForbidden
	}
	email := normalizeEmail(in.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", invalid("email", "must be an email address")
	}
	role := models.CoerceRole(in.Role)

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, "", storeErr("begin", "invite", uuid.Nil, err)
	}
	defer tx.Rollback(ctx)

	u, err := scanUser(tx.QueryRow(ctx, `
		INSERT INTO users (email, full_name, role)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns, email, strings.TrimSpace(in.FullName), role))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, "", ErrEmailTaken
		}
		return nil, "", storeErr("create", "user", uuid.Nil, err)
	}

	token := newInviteToken()
	_, err = tx.Exec(ctx, `
		INSERT INTO invites (user_id, invited_by, token_hash, expires_at)
		VALUES ($1, $2, $3, $4)
	`, u.ID, invitedBy, HashToken(token), time.Now().Add(s.inviteExpiry))
	if err != nil {
		return nil, "", storeErr("create", "invite", u.ID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, "", storeErr("commit", "invite", u.ID, err)
	}
	return u, token, nil
}

// AcceptInvite sets the invited profile's password and burns the token.
func (s *UserService) AcceptInvite(ctx context.Context, token, password string) (*models.User, error) {
	if len(password) < minPasswordLength {
		return nil, invalid("password", "must be at least 8 characters")
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, storeErr("begin", "invite", uuid.Nil, err)
	}
	defer tx.Rollback(ctx)

	var inviteID, userID uuid.UUID
	err = tx.QueryRow(ctx, `
		SELECT id, user_id FROM invites
		WHERE token_hash = $1 AND used_at IS NULL AND expires_at > NOW()
		FOR UPDATE
	`, HashToken(token)).Scan(&inviteID, &userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrInviteInvalid
	}
	if err != nil {
		return nil, storeErr("load", "invite", uuid.Nil, err)
	}

	u, err := scanUser(tx.QueryRow(ctx, `
		UPDATE users SET password_hash = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+userColumns, hash, userID))
	if err != nil {
		return nil, storeErr("update", "user", userID, err)
	}

	if _, err := tx.Exec(ctx, `UPDATE invites SET used_at = NOW() WHERE id = $1`, inviteID); err != nil {
		return nil, storeErr("update", "invite", inviteID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, storeErr("commit", "invite", inviteID, err)
	}
	return u, nil
}

// UpdateRole changes a profile's role. Cached views of every project the
// user belongs to are dropped so team lists show the new role.
func (s *UserService) UpdateRole(ctx context.Context, actor models.Role, userID uuid.UUID, raw string) (*models.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	role, ok := models.ParseRole(raw)
	if !ok {
		return nil, invalid("role", "unknown role "+raw)
	}

	u, err := s.setRole(ctx, `id = $2`, role, userID)
	if err != nil {
		return nil, err
	}

	projects, err := s.projectsOf(ctx, u.ID)
	if err != nil {
		s.hooks.logger().Warn("membership lookup failed", zap.String("user_id", u.ID.String()), zap.Error(err))
	}
	payload := map[string]any{"user_id": u.ID, "role": u.Role}
	if len(projects) == 0 {
		s.hooks.changed(ctx, uuid.Nil, events.MemberRoleChanged, payload)
	}
	for _, projectID := range projects {
		s.hooks.changed(ctx, projectID, events.MemberRoleChanged, payload)
	}
	return u, nil
}

// SetRoleByEmail is the operator path used by the CLI; it bypasses the
// admin check.
func (s *UserService) SetRoleByEmail(ctx context.Context, email string, role models.Role) (*models.User, error) {
	return s.setRole(ctx, `email = $2`, role, normalizeEmail(email))
}

func (s *UserService) setRole(ctx context.Context, where string, role models.Role, key any) (*models.User, error) {
	u, err := scanUser(s.db.Pool.QueryRow(ctx, `
		UPDATE users SET role = $1, updated_at = NOW()
		WHERE `+where+`
		RETURNING `+userColumns, role, key))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, storeErr("update", "user", uuid.Nil, err)
	}
	return u, nil
}

func (s *UserService) projectsOf(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.Pool.Query(ctx, `SELECT project_id FROM project_members WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
}
