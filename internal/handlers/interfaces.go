package handlers

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/megamounds/sitetrack-api/internal/models"
	"github.com/megamounds/sitetrack-api/internal/services"
)

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	Invite(ctx context.Context, actor models.Role, invitedBy uuid.UUID, in services.InviteInput) (*models.User, string, error)
	AcceptInvite(ctx context.Context, token, password string) (*models.User, error)
	UpdateRole(ctx context.Context, actor models.Role, userID uuid.UUID, raw string) (*models.User, error)
}

// TokenServiceInterface defines the methods used by handlers from TokenService
type TokenServiceInterface interface {
	StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	RotateRefreshToken(ctx context.Context, oldHash, newHash string, expiresAt time.Time) (uuid.UUID, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

// JWTServiceInterface defines the methods used by handlers from JWTService
type JWTServiceInterface interface {
	GenerateTokenPair(user *models.User) (*services.TokenPair, error)
	ValidateRefreshToken(token string) (uuid.UUID, error)
	RefreshExpiry() time.Duration
}

// EmailServiceInterface defines the methods used by handlers from EmailService
type EmailServiceInterface interface {
	IsConfigured() bool
	SendInvite(to, fullName, role, inviterName, acceptURL string) error
}

// ProjectServiceInterface defines the methods used by handlers from ProjectService
type ProjectServiceInterface interface {
	Create(ctx context.Context, role models.Role, createdBy uuid.UUID, in services.CreateProjectInput) (*models.Project, error)
	GetByID(ctx context.Context, projectID uuid.UUID) (*models.Project, error)
	ListWithProgress(ctx context.Context) ([]models.ProjectProgress, error)
	UpdateRAGStatus(ctx context.Context, role models.Role, projectID uuid.UUID, raw string) (*models.Project, error)
}

// TaskServiceInterface defines the methods used by handlers from TaskService
type TaskServiceInterface interface {
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Task, error)
	Create(ctx context.Context, role models.Role, projectID uuid.UUID, in services.CreateTaskInput) (*models.Task, error)
	UpdateStatus(ctx context.Context, role models.Role, taskID uuid.UUID, raw string) (*models.Task, error)
	AdvanceStatus(ctx context.Context, role models.Role, taskID uuid.UUID) (*models.Task, error)
	UpdateNote(ctx context.Context, role models.Role, taskID uuid.UUID, notes string) (*models.Task, error)
}

// ResourceServiceInterface defines the methods used by handlers from ResourceService
type ResourceServiceInterface interface {
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Resource, error)
	Create(ctx context.Context, role models.Role, projectID uuid.UUID, in services.CreateResourceInput) (*models.Resource, error)
	UpdateStatus(ctx context.Context, role models.Role, resourceID uuid.UUID, raw string) (*models.Resource, error)
}

// RiskServiceInterface defines the methods used by handlers from RiskService
type RiskServiceInterface interface {
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Risk, error)
	Create(ctx context.Context, role models.Role, projectID uuid.UUID, in services.CreateRiskInput) (*models.Risk, error)
	UpdateField(ctx context.Context, role models.Role, riskID uuid.UUID, field, value string) (*models.Risk, error)
}

// MemberServiceInterface defines the methods used by handlers from MemberService
type MemberServiceInterface interface {
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.TeamMember, error)
	Add(ctx context.Context, role models.Role, projectID, userID uuid.UUID) (*models.TeamMember, error)
	Remove(ctx context.Context, role models.Role, projectID, userID uuid.UUID) error
}

// DashboardServiceInterface defines the methods used by handlers from DashboardService
type DashboardServiceInterface interface {
	Snapshot(ctx context.Context, projectID uuid.UUID, activeWeek string, now time.Time) (*services.Snapshot, error)
}

// ImportServiceInterface defines the methods used by handlers from ImportService
type ImportServiceInterface interface {
	ImportTasks(ctx context.Context, role models.Role, projectID uuid.UUID, text string) (*services.ImportReport, error)
	ImportResources(ctx context.Context, role models.Role, projectID uuid.UUID, text string) (*services.ImportReport, error)
}

// PhotoServiceInterface defines the methods used by handlers from PhotoService
type PhotoServiceInterface interface {
	Upload(ctx context.Context, role models.Role, taskID uuid.UUID, filename string, body io.Reader) (*models.Photo, error)
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]models.Photo, error)
}
