package services

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/megamounds/sitetrack-api/internal/events"
	"github.com/megamounds/sitetrack-api/internal/models"
)

func sampleResource(projectID uuid.UUID) models.Resource {
	return models.Resource{
		ID: uuid.New(), ProjectID: projectID, Name: "Cement bags", Type: models.ResourceMaterial,
		Quantity: 500, Unit: "bags", CostPerUnit: 2500, Milestone: "WEEK 1", Supplier: "Dangote",
		Status: models.ResourcePlanned, CreatedAt: time.Now(),
	}
}

func TestResourceService_ListByProject(t *testing.T) {
	db, mock := setupMock(t)
	svc := NewResourceService(db, nil)
	projectID := uuid.New()
	r := sampleResource(projectID)

	mock.ExpectQuery(`FROM resources WHERE project_id`).WithArgs(projectID).
		WillReturnRows(pgxmock.NewRows(resourceCols).AddRow(resourceRow(r)...))

	out, err := svc.ListByProject(context.Background(), projectID)

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 1250000.0, out[0].LineCost())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResourceService_Create(t *testing.T) {
	db, mock := setupMock(t)
	svc := NewResourceService(db, nil)
	projectID := uuid.New()
	r := sampleResource(projectID)

	mock.ExpectQuery(`INSERT INTO resources`).
		WithArgs(projectID, "Cement bags", models.ResourceMaterial, 500.0, "bags", 2500.0, "WEEK 1",
			(*time.Time)(nil), "Dangote", models.ResourcePlanned, "").
		WillReturnRows(pgxmock.NewRows(resourceCols).AddRow(resourceRow(r)...))

	got, err := svc.Create(context.Background(), models.RoleProjectManager, projectID, CreateResourceInput{
		Name: "Cement bags", Quantity: 500, Unit: "bags", CostPerUnit: 2500, Milestone: " WEEK 1 ", Supplier: "Dangote",
	})

	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResourceService_Create_Validation(t *testing.T) {
	db, _ := setupMock(t)
	svc := NewResourceService(db, nil)

	tests := []struct {
		name  string
		in    CreateResourceInput
		field string
	}{
		{"missing name", CreateResourceInput{}, "name"},
		{"negative quantity", CreateResourceInput{Name: "Sand", Quantity: -1}, "quantity"},
		{"nan cost", CreateResourceInput{Name: "Sand", CostPerUnit: math.NaN()}, "cost_per_unit"},
		{"bad type", CreateResourceInput{Name: "Sand", Type: "Aggregate"}, "type"},
		{"bad status", CreateResourceInput{Name: "Sand", Status: "Delivered"}, "status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), models.RoleAdmin, uuid.New(), tt.in)

			var inputErr *InputError
			require.ErrorAs(t, err, &inputErr)
			assert.Equal(t, tt.field, inputErr.Field)
		})
	}
}

func TestResourceService_Create_Forbidden(t *testing.T) {
	db, _ := setupMock(t)
	svc := NewResourceService(db, nil)

	_, err := svc.Create(context.Background(), models.RoleSiteSupervisor, uuid.New(), CreateResourceInput{Name: "Sand"})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestResourceService_UpdateStatus(t *testing.T) {
	db, mock := setupMock(t)
	publisher := &recordingPublisher{}
	svc := NewResourceService(db, &Hooks{Events: publisher})
	r := sampleResource(uuid.New())
	r.Status = models.ResourceOnSite

	mock.ExpectQuery(`UPDATE resources SET status`).WithArgs(models.ResourceOnSite, r.ID).
		WillReturnRows(pgxmock.NewRows(resourceCols).AddRow(resourceRow(r)...))

	got, err := svc.UpdateStatus(context.Background(), models.RoleAdmin, r.ID, "On Site")

	require.NoError(t, err)
	assert.True(t, got.Deployed())
	assert.Equal(t, []string{events.ResourceStatusChanged}, publisher.types())
	assert.Equal(t, r.ProjectID, publisher.published[0].ProjectID)
}

func TestResourceService_UpdateStatus_NotFound(t *testing.T) {
	db, mock := setupMock(t)
	svc := NewResourceService(db, nil)
	id := uuid.New()

	mock.ExpectQuery(`UPDATE resources SET status`).WithArgs(models.ResourceUsed, id).WillReturnError(pgx.ErrNoRows)

	_, err := svc.UpdateStatus(context.Background(), models.RoleAdmin, id, "Used")

	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestResourceService_InsertBatch(t *testing.T) {
	db, mock := setupMock(t)
	svc := NewResourceService(db, nil)
	projectID := uuid.New()

	mock.ExpectCopyFrom(pgx.Identifier{"resources"}, resourceCopyColumns).WillReturnResult(3)

	n, err := svc.InsertBatch(context.Background(), []models.Resource{
		sampleResource(projectID), sampleResource(projectID), sampleResource(projectID),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
