package handlers

import (
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/megamounds/sitetrack-api/internal/importer"
	"github.com/megamounds/sitetrack-api/internal/middleware"
	"github.com/megamounds/sitetrack-api/pkg/dto"
)

type ImportHandler struct {
	importService ImportServiceInterface
}

func NewImportHandler(importService ImportServiceInterface) *ImportHandler {
	return &ImportHandler{importService: importService}
}

func (h *ImportHandler) ImportTasks(c *drift.Context) {
	projectID, ok := pathID(c, "id", "project")
	if !ok {
		return
	}

	var req dto.ImportRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	report, err := h.importService.ImportTasks(requestContext(c), middleware.GetRole(c), projectID, req.CSV)
	if err != nil {
		respondError(c, err, "failed to import tasks")
		return
	}

	_ = c.JSON(200, report)
}

func (h *ImportHandler) ImportResources(c *drift.Context) {
	projectID, ok := pathID(c, "id", "project")
	if !ok {
		return
	}

	var req dto.ImportRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	report, err := h.importService.ImportResources(requestContext(c), middleware.GetRole(c), projectID, req.CSV)
	if err != nil {
		respondError(c, err, "failed to import resources")
		return
	}

	_ = c.JSON(200, report)
}

// Template downloads the CSV template for :kind (tasks or resources).
func (h *ImportHandler) Template(c *drift.Context) {
	kind := c.Param("kind")
	body, ok := importer.Template(kind)
	if !ok {
		c.NotFound("unknown template: " + kind)
		return
	}

	c.Response.Header().Set("Content-Type", "text/csv; charset=utf-8")
	c.Response.Header().Set("Content-Disposition", `attachment; filename="`+kind+`_template.csv"`)
	c.Response.WriteHeader(200)
	_, _ = c.Response.Write([]byte(body))
	c.Abort()
}
