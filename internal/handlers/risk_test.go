package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/megamounds/sitetrack-api/internal/middleware"
	"github.com/megamounds/sitetrack-api/internal/models"
	"github.com/megamounds/sitetrack-api/internal/services"
	"github.com/megamounds/sitetrack-api/pkg/dto"
	"github.com/megamounds/sitetrack-api/tests/testutil"
)

func setupRiskTest(t *testing.T) (*testutil.MockRiskService, *testutil.HTTPTestClient) {
	t.Helper()
	mockRiskService := new(testutil.MockRiskService)
	handler := NewRiskHandler(mockRiskService)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(testutil.TestJWTService()))
	app.Get("/projects/:id/risks", handler.List)
	app.Post("/projects/:id/risks", handler.Create)
	app.Patch("/risks/:id", handler.UpdateField)

	return mockRiskService, testutil.NewHTTPTestClient(t, app)
}

func TestRiskHandler_Create(t *testing.T) {
	mockRiskService, client := setupRiskTest(t)
	projectID := uuid.New()
	mockRiskService.On("Create", mock.Anything, models.RoleProjectManager, projectID, services.CreateRiskInput{
		Title:  "Crane availability",
		Impact: "High",
	}).Return(&models.Risk{ID: uuid.New(), Title: "Crane availability", Likelihood: models.RiskHigh, Impact: models.RiskHigh, Status: models.RiskActive}, nil)

	rec := client.POST("/projects/"+projectID.String()+"/risks", dto.CreateRiskRequest{Title: "Crane availability", Impact: "High"},
		testutil.AuthHeaders(t, uuid.New(), models.RoleProjectManager))

	testutil.AssertStatus(t, rec, http.StatusCreated)
	testutil.AssertJSON(t, rec, map[string]any{"title": "Crane availability", "status": "Active"})
	mockRiskService.AssertExpectations(t)
}

func TestRiskHandler_List_StoreFailure(t *testing.T) {
	mockRiskService, client := setupRiskTest(t)
	projectID := uuid.New()
	mockRiskService.On("ListByProject", mock.Anything, projectID).
		Return(nil, &services.StoreError{Op: "list", Entity: "risk", Err: assert.AnError})

	rec := client.GET("/projects/"+projectID.String()+"/risks", testutil.AuthHeaders(t, uuid.New(), models.RoleSiteEngineer))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "failed to list risks")
}

func TestRiskHandler_UpdateField(t *testing.T) {
	mockRiskService, client := setupRiskTest(t)
	riskID := uuid.New()
	mockRiskService.On("UpdateField", mock.Anything, models.RoleAdmin, riskID, "status", "Mitigated").
		Return(&models.Risk{ID: riskID, Status: models.RiskMitigated}, nil)

	rec := client.PATCH("/risks/"+riskID.String(), dto.UpdateRiskFieldRequest{Field: "status", Value: "Mitigated"},
		testutil.AuthHeaders(t, uuid.New(), models.RoleAdmin))

	testutil.AssertStatus(t, rec, http.StatusOK)
	testutil.AssertJSON(t, rec, map[string]any{"status": "Mitigated"})
}

func TestRiskHandler_UpdateField_MissingField(t *testing.T) {
	mockRiskService, client := setupRiskTest(t)

	rec := client.PATCH("/risks/"+uuid.New().String(), dto.UpdateRiskFieldRequest{Value: "x"},
		testutil.AuthHeaders(t, uuid.New(), models.RoleAdmin))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockRiskService.AssertNotCalled(t, "UpdateField")
}

func TestRiskHandler_UpdateField_NotFound(t *testing.T) {
	mockRiskService, client := setupRiskTest(t)
	riskID := uuid.New()
	mockRiskService.On("UpdateField", mock.Anything, models.RoleAdmin, riskID, "owner", "Site lead").
		Return(nil, services.ErrRiskNotFound)

	rec := client.PATCH("/risks/"+riskID.String(), dto.UpdateRiskFieldRequest{Field: "owner", Value: "Site lead"},
		testutil.AuthHeaders(t, uuid.New(), models.RoleAdmin))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
