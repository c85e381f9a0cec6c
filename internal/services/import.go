package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/megamounds/sitetrack-api/internal/events"
	"github.com/megamounds/sitetrack-api/internal/importer"
	"github.com/megamounds/sitetrack-api/internal/metrics"
	"github.com/megamounds/sitetrack-api/internal/models"
)

type TaskBatchWriter interface {
	InsertBatch(ctx context.Context, tasks []models.Task) (int64, error)
}

type ResourceBatchWriter interface {
	InsertBatch(ctx context.Context, resources []models.Resource) (int64, error)
}

type ImportService struct {
	tasks     TaskBatchWriter
	resources ResourceBatchWriter
	batchSize int
	hooks     *Hooks
}

func NewImportService(tasks TaskBatchWriter, resources ResourceBatchWriter, batchSize int, hooks *Hooks) *ImportService {
	if batchSize <= 0 {
		batchSize = importer.DefaultBatchSize
	}
	return &ImportService{tasks: tasks, resources: resources, batchSize: batchSize, hooks: hooks}
}

// ChunkResult is the outcome of one store write. A failed chunk does not
// stop later chunks.
type ChunkResult struct {
	Index    int    `json:"index"`
	Records  int    `json:"records"`
	Inserted int64  `json:"inserted"`
	Error    string `json:"error,omitempty"`
}

type ImportReport struct {
	Kind     string                     `json:"kind"`
	Valid    int                        `json:"valid"`
	Inserted int64                      `json:"inserted"`
	Failed   int                        `json:"failed"`
	Rejected []importer.ValidationError `json:"rejected"`
	Messages []string                   `json:"messages"`
	Chunks   []ChunkResult              `json:"chunks"`
}

func (s *ImportService) ImportTasks(ctx context.Context, role models.Role, projectID uuid.UUID, text string) (*ImportReport, error) {
	if !role.CanManage() {
		return nil, ErrForbidden
	}
	res := importer.Tasks(projectID, text)
	report := runImport(ctx, s, "tasks", res, s.tasks.InsertBatch)
	s.finish(ctx, projectID, events.TasksImported, report)
	return report, nil
}

func (s *ImportService) ImportResources(ctx context.Context, role models.Role, projectID uuid.UUID, text string) (*ImportReport, error) {
	if !role.CanManage() {
		return nil, ErrForbidden
	}
	res := importer.Resources(projectID, text)
	report := runImport(ctx, s, "resources", res, s.resources.InsertBatch)
	s.finish(ctx, projectID, events.ResourcesImported, report)
	return report, nil
}

// runImport writes chunks one after another in input order.
func runImport[T any](ctx context.Context, s *ImportService, kind string, res importer.Result[T],
	insert func(context.Context, []T) (int64, error)) *ImportReport {
	report := &ImportReport{
		Kind:     kind,
		Valid:    len(res.Records),
		Rejected: res.Errors,
		Messages: res.Messages(),
		Chunks:   []ChunkResult{},
	}
	if report.Rejected == nil {
		report.Rejected = []importer.ValidationError{}
	}
	log := s.hooks.logger()

	for i, chunk := range importer.Chunks(res.Records, s.batchSize) {
		cr := ChunkResult{Index: i, Records: len(chunk)}
		if err := ctx.Err(); err != nil {
			cr.Error = err.Error()
		} else if n, err := insert(ctx, chunk); err != nil {
			cr.Error = err.Error()
		} else {
			cr.Inserted = n
		}

		if cr.Error != "" {
			report.Failed += cr.Records
			metrics.IncrementImportChunkFailure(kind)
			log.Warn("import chunk failed", zap.String("kind", kind), zap.Int("chunk", i), zap.String("error", cr.Error))
		}
		report.Inserted += cr.Inserted
		report.Chunks = append(report.Chunks, cr)
	}

	metrics.RecordImport(kind, int(report.Inserted), len(report.Rejected), report.Failed)
	return report
}

func (s *ImportService) finish(ctx context.Context, projectID uuid.UUID, eventType string, report *ImportReport) {
	if report.Inserted == 0 {
		return
	}
	s.hooks.changed(ctx, projectID, eventType, map[string]any{
		"inserted": report.Inserted,
		"rejected": len(report.Rejected),
		"failed":   report.Failed,
	})
}
