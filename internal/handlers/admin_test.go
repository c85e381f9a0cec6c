package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/megamounds/sitetrack-api/internal/middleware"
	"github.com/megamounds/sitetrack-api/internal/models"
	"github.com/megamounds/sitetrack-api/internal/services"
	"github.com/megamounds/sitetrack-api/pkg/dto"
	"github.com/megamounds/sitetrack-api/tests/testutil"
)

func setupAdminTest(t *testing.T) (*testutil.MockUserService, *testutil.MockEmailService, *testutil.HTTPTestClient) {
	t.Helper()
	mockUserService := new(testutil.MockUserService)
	mockEmailService := new(testutil.MockEmailService)
	handler := NewAdminHandler(mockUserService, mockEmailService, "https://sitetrack.example/")

	app := drift.New()
	app.Use(driftmw.BodyParser())
	admin := app.Group("/admin")
	admin.Use(middleware.Auth(testutil.TestJWTService()))
	admin.Use(middleware.RequireAdmin())
	admin.Get("/users", handler.ListUsers)
	admin.Post("/users", handler.Invite)
	admin.Patch("/users/:id/role", handler.UpdateRole)

	return mockUserService, mockEmailService, testutil.NewHTTPTestClient(t, app)
}

func TestAdminHandler_ListUsers(t *testing.T) {
	mockUserService, _, client := setupAdminTest(t)
	mockUserService.On("List", mock.Anything).Return([]models.User{
		{ID: uuid.New(), Email: "a@site.example", Role: models.RoleAdmin},
		{ID: uuid.New(), Email: "b@site.example", Role: models.RoleSiteEngineer},
	}, nil)

	rec := client.GET("/admin/users", testutil.AuthHeaders(t, uuid.New(), models.RoleAdmin))

	testutil.AssertStatus(t, rec, http.StatusOK)
	var users []dto.UserResponse
	testutil.ParseJSON(t, rec, &users)
	require.Len(t, users, 2)
	assert.Equal(t, "Site Engineer", users[1].Role)
}

func TestAdminHandler_NonAdminRejected(t *testing.T) {
	_, _, client := setupAdminTest(t)

	rec := client.GET("/admin/users", testutil.AuthHeaders(t, uuid.New(), models.RoleProjectManager))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminHandler_Invite_SendsEmail(t *testing.T) {
	mockUserService, mockEmailService, client := setupAdminTest(t)
	adminID := uuid.New()
	invited := &models.User{ID: uuid.New(), Email: "new@site.example", FullName: "New Hire", Role: models.RoleSiteEngineer}
	in := services.InviteInput{Email: "new@site.example", FullName: "New Hire", Role: "Site Engineer"}

	mockUserService.On("Invite", mock.Anything, models.RoleAdmin, adminID, in).Return(invited, "tok+en/1", nil)
	mockUserService.On("GetByID", mock.Anything, adminID).Return(&models.User{ID: adminID, FullName: "Head Office"}, nil)
	mockEmailService.On("IsConfigured").Return(true)
	mockEmailService.On("SendInvite", "new@site.example", "New Hire", "Site Engineer", "Head Office",
		"https://sitetrack.example/invite/accept?token=tok%2Ben%2F1").Return(nil)

	rec := client.POST("/admin/users", dto.InviteUserRequest{Email: in.Email, FullName: in.FullName, Role: in.Role},
		testutil.AuthHeaders(t, adminID, models.RoleAdmin))

	testutil.AssertStatus(t, rec, http.StatusCreated)
	var response dto.InviteResponse
	testutil.ParseJSON(t, rec, &response)
	assert.True(t, response.EmailSent)
	assert.Empty(t, response.AcceptURL)
	mockEmailService.AssertExpectations(t)
}

func TestAdminHandler_Invite_ReturnsLinkWhenMailFails(t *testing.T) {
	mockUserService, mockEmailService, client := setupAdminTest(t)
	adminID := uuid.New()
	invited := &models.User{ID: uuid.New(), Email: "new@site.example", Role: models.RoleSiteSupervisor}

	mockUserService.On("Invite", mock.Anything, models.RoleAdmin, adminID, mock.Anything).Return(invited, "abc", nil)
	mockUserService.On("GetByID", mock.Anything, adminID).Return(nil, services.ErrUserNotFound)
	mockEmailService.On("IsConfigured").Return(true)
	mockEmailService.On("SendInvite", "new@site.example", "", "Site Supervisor", "user@example.com", mock.Anything).
		Return(errors.New("smtp down"))

	rec := client.POST("/admin/users", dto.InviteUserRequest{Email: "new@site.example"}, testutil.AuthHeaders(t, adminID, models.RoleAdmin))

	testutil.AssertStatus(t, rec, http.StatusCreated)
	var response dto.InviteResponse
	testutil.ParseJSON(t, rec, &response)
	assert.False(t, response.EmailSent)
	assert.Equal(t, "https://sitetrack.example/invite/accept?token=abc", response.AcceptURL)
}

func TestAdminHandler_Invite_EmailTaken(t *testing.T) {
	mockUserService, _, client := setupAdminTest(t)
	mockUserService.On("Invite", mock.Anything, models.RoleAdmin, mock.Anything, mock.Anything).Return(nil, "", services.ErrEmailTaken)

	rec := client.POST("/admin/users", dto.InviteUserRequest{Email: "dup@site.example"}, testutil.AuthHeaders(t, uuid.New(), models.RoleAdmin))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAdminHandler_UpdateRole(t *testing.T) {
	mockUserService, _, client := setupAdminTest(t)
	userID := uuid.New()
	mockUserService.On("UpdateRole", mock.Anything, models.RoleAdmin, userID, "Project Manager").
		Return(&models.User{ID: userID, Role: models.RoleProjectManager}, nil)

	rec := client.PATCH("/admin/users/"+userID.String()+"/role", dto.UpdateRoleRequest{Role: "Project Manager"},
		testutil.AuthHeaders(t, uuid.New(), models.RoleAdmin))

	testutil.AssertStatus(t, rec, http.StatusOK)
	testutil.AssertJSON(t, rec, map[string]any{"role": "Project Manager"})
}
