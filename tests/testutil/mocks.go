package testutil

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/megamounds/sitetrack-api/internal/models"
	"github.com/megamounds/sitetrack-api/internal/services"
)

// MockUserService mocks the UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Invite(ctx context.Context, actor models.Role, invitedBy uuid.UUID, in services.InviteInput) (*models.User, string, error) {
	args := m.Called(ctx, actor, invitedBy, in)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockUserService) AcceptInvite(ctx context.Context, token, password string) (*models.User, error) {
	args := m.Called(ctx, token, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateRole(ctx context.Context, actor models.Role, userID uuid.UUID, raw string) (*models.User, error) {
	args := m.Called(ctx, actor, userID, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockTokenService mocks the TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockTokenService) RotateRefreshToken(ctx context.Context, oldHash, newHash string, expiresAt time.Time) (uuid.UUID, error) {
	args := m.Called(ctx, oldHash, newHash, expiresAt)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTokenService) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *MockTokenService) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockJWTService mocks the JWTService
type MockJWTService struct {
	mock.Mock
}

func (m *MockJWTService) GenerateTokenPair(user *models.User) (*services.TokenPair, error) {
	args := m.Called(user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.TokenPair), args.Error(1)
}

func (m *MockJWTService) ValidateRefreshToken(token string) (uuid.UUID, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockJWTService) RefreshExpiry() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}

// MockEmailService mocks the EmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) IsConfigured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockEmailService) SendInvite(to, fullName, role, inviterName, acceptURL string) error {
	args := m.Called(to, fullName, role, inviterName, acceptURL)
	return args.Error(0)
}

// MockProjectService mocks the ProjectService
type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) Create(ctx context.Context, role models.Role, createdBy uuid.UUID, in services.CreateProjectInput) (*models.Project, error) {
	args := m.Called(ctx, role, createdBy, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectService) GetByID(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectService) ListWithProgress(ctx context.Context) ([]models.ProjectProgress, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProjectProgress), args.Error(1)
}

func (m *MockProjectService) UpdateRAGStatus(ctx context.Context, role models.Role, projectID uuid.UUID, raw string) (*models.Project, error) {
	args := m.Called(ctx, role, projectID, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

// MockTaskService mocks the TaskService
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Task, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockTaskService) Create(ctx context.Context, role models.Role, projectID uuid.UUID, in services.CreateTaskInput) (*models.Task, error) {
	args := m.Called(ctx, role, projectID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskService) UpdateStatus(ctx context.Context, role models.Role, taskID uuid.UUID, raw string) (*models.Task, error) {
	args := m.Called(ctx, role, taskID, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskService) AdvanceStatus(ctx context.Context, role models.Role, taskID uuid.UUID) (*models.Task, error) {
	args := m.Called(ctx, role, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskService) UpdateNote(ctx context.Context, role models.Role, taskID uuid.UUID, notes string) (*models.Task, error) {
	args := m.Called(ctx, role, taskID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

// MockResourceService mocks the ResourceService
type MockResourceService struct {
	mock.Mock
}

func (m *MockResourceService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Resource, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Resource), args.Error(1)
}

func (m *MockResourceService) Create(ctx context.Context, role models.Role, projectID uuid.UUID, in services.CreateResourceInput) (*models.Resource, error) {
	args := m.Called(ctx, role, projectID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Resource), args.Error(1)
}

func (m *MockResourceService) UpdateStatus(ctx context.Context, role models.Role, resourceID uuid.UUID, raw string) (*models.Resource, error) {
	args := m.Called(ctx, role, resourceID, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Resource), args.Error(1)
}

// MockRiskService mocks the RiskService
type MockRiskService struct {
	mock.Mock
}

func (m *MockRiskService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Risk, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Risk), args.Error(1)
}

func (m *MockRiskService) Create(ctx context.Context, role models.Role, projectID uuid.UUID, in services.CreateRiskInput) (*models.Risk, error) {
	args := m.Called(ctx, role, projectID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Risk), args.Error(1)
}

func (m *MockRiskService) UpdateField(ctx context.Context, role models.Role, riskID uuid.UUID, field, value string) (*models.Risk, error) {
	args := m.Called(ctx, role, riskID, field, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Risk), args.Error(1)
}

// MockMemberService mocks the MemberService
type MockMemberService struct {
	mock.Mock
}

func (m *MockMemberService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.TeamMember, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TeamMember), args.Error(1)
}

func (m *MockMemberService) Add(ctx context.Context, role models.Role, projectID, userID uuid.UUID) (*models.TeamMember, error) {
	args := m.Called(ctx, role, projectID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TeamMember), args.Error(1)
}

func (m *MockMemberService) Remove(ctx context.Context, role models.Role, projectID, userID uuid.UUID) error {
	args := m.Called(ctx, role, projectID, userID)
	return args.Error(0)
}

// MockDashboardService mocks the DashboardService
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Snapshot(ctx context.Context, projectID uuid.UUID, activeWeek string, now time.Time) (*services.Snapshot, error) {
	args := m.Called(ctx, projectID, activeWeek, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Snapshot), args.Error(1)
}

// MockImportService mocks the ImportService
type MockImportService struct {
	mock.Mock
}

func (m *MockImportService) ImportTasks(ctx context.Context, role models.Role, projectID uuid.UUID, text string) (*services.ImportReport, error) {
	args := m.Called(ctx, role, projectID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ImportReport), args.Error(1)
}

func (m *MockImportService) ImportResources(ctx context.Context, role models.Role, projectID uuid.UUID, text string) (*services.ImportReport, error) {
	args := m.Called(ctx, role, projectID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ImportReport), args.Error(1)
}

// MockPhotoService mocks the PhotoService. Upload drains the body so tests
// can assert on what was sent.
type MockPhotoService struct {
	mock.Mock
}

func (m *MockPhotoService) Upload(ctx context.Context, role models.Role, taskID uuid.UUID, filename string, body io.Reader) (*models.Photo, error) {
	data, _ := io.ReadAll(body)
	args := m.Called(ctx, role, taskID, filename, string(data))
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Photo), args.Error(1)
}

func (m *MockPhotoService) ListByTask(ctx context.Context, taskID uuid.UUID) ([]models.Photo, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Photo), args.Error(1)
}
