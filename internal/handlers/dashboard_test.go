package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/megamounds/sitetrack-api/internal/middleware"
	"github.com/megamounds/sitetrack-api/internal/models"
	"github.com/megamounds/sitetrack-api/internal/services"
	"github.com/megamounds/sitetrack-api/tests/testutil"
)

func TestDashboardHandler_Snapshot(t *testing.T) {
	mockDashboardService := new(testutil.MockDashboardService)
	handler := NewDashboardHandler(mockDashboardService)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	handler.now = func() time.Time { return now }

	projectID := uuid.New()
	mockDashboardService.On("Snapshot", mock.Anything, projectID, "WEEK 2", now).
		Return(&services.Snapshot{ActiveWeek: "WEEK 2", Project: models.Project{ID: projectID}}, nil)

	app := drift.New()
	app.Use(middleware.Auth(testutil.TestJWTService()))
	app.Get("/projects/:id/snapshot", handler.Snapshot)
	client := testutil.NewHTTPTestClient(t, app)

	rec := client.GET("/projects/"+projectID.String()+"/snapshot?week=WEEK%202", testutil.AuthHeaders(t, uuid.New(), models.RoleSubcontractor))

	testutil.AssertStatus(t, rec, http.StatusOK)
	testutil.AssertJSON(t, rec, map[string]any{"active_week": "WEEK 2"})
	mockDashboardService.AssertExpectations(t)
}

func TestDashboardHandler_Snapshot_ProjectMissing(t *testing.T) {
	mockDashboardService := new(testutil.MockDashboardService)
	handler := NewDashboardHandler(mockDashboardService)
	mockDashboardService.On("Snapshot", mock.Anything, mock.Anything, "", mock.Anything).Return(nil, services.ErrProjectNotFound)

	app := drift.New()
	app.Use(middleware.Auth(testutil.TestJWTService()))
	app.Get("/projects/:id/snapshot", handler.Snapshot)
	client := testutil.NewHTTPTestClient(t, app)

	rec := client.GET("/projects/"+uuid.NewString()+"/snapshot", testutil.AuthHeaders(t, uuid.New(), models.RoleAdmin))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
