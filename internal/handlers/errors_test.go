package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/megamounds/sitetrack-api/internal/middleware"
	"github.com/megamounds/sitetrack-api/internal/models"
	"github.com/megamounds/sitetrack-api/internal/services"
	"github.com/megamounds/sitetrack-api/tests/testutil"
)

func setupLoggedTaskTest(t *testing.T) (*testutil.MockTaskService, *testutil.HTTPTestClient, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	mockTaskService := new(testutil.MockTaskService)
	handler := NewTaskHandler(mockTaskService)

	app := drift.New()
	app.Use(middleware.Logger(zap.New(core)))
	app.Use(middleware.Auth(testutil.TestJWTService()))
	app.Get("/projects/:id/tasks", handler.List)

	return mockTaskService, testutil.NewHTTPTestClient(t, app), logs
}

func TestRespondError_LogsStoreFailure(t *testing.T) {
	mockTaskService, client, logs := setupLoggedTaskTest(t)
	projectID := uuid.New()
	mockTaskService.On("ListByProject", mock.Anything, projectID).
		Return(nil, &services.StoreError{Op: "list", Entity: "task", ID: projectID, Err: assert.AnError})

	rec := client.GET("/projects/"+projectID.String()+"/tasks", testutil.AuthHeaders(t, uuid.New(), models.RoleSiteEngineer))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())

	entries := logs.FilterMessage("failed to list tasks").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "list", fields["op"])
	assert.Equal(t, "task", fields["entity"])
	assert.Equal(t, projectID.String(), fields["id"])
	assert.Equal(t, assert.AnError.Error(), fields["error"])
	assert.Equal(t, http.MethodGet, fields["method"])
}

func TestRespondError_ClientErrorsAreNotLogged(t *testing.T) {
	mockTaskService, client, logs := setupLoggedTaskTest(t)
	projectID := uuid.New()
	mockTaskService.On("ListByProject", mock.Anything, projectID).Return(nil, services.ErrProjectNotFound)

	rec := client.GET("/projects/"+projectID.String()+"/tasks", testutil.AuthHeaders(t, uuid.New(), models.RoleSiteEngineer))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, logs.Len())
}

func TestRespondError_UnclassifiedFailureLogged(t *testing.T) {
	mockTaskService, client, logs := setupLoggedTaskTest(t)
	projectID := uuid.New()
	mockTaskService.On("ListByProject", mock.Anything, projectID).Return(nil, assert.AnError)

	rec := client.GET("/projects/"+projectID.String()+"/tasks", testutil.AuthHeaders(t, uuid.New(), models.RoleSiteEngineer))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, 1, logs.FilterMessage("failed to list tasks").Len())
}
