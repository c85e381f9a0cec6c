package handlers

import (
	"net/http"
	"path/filepath"

	"github.com/m1z23r/drift/pkg/drift"

	"github.com/megamounds/sitetrack-api/internal/middleware"
)

type PhotoHandler struct {
	photoService PhotoServiceInterface
	maxBytes     int64
}

// NewPhotoHandler rejects uploads larger than maxBytes.
func NewPhotoHandler(photoService PhotoServiceInterface, maxBytes int64) *PhotoHandler {
	return &PhotoHandler{photoService: photoService, maxBytes: maxBytes}
}

// Upload stores the raw request body as a photo of the task. The original
// file name comes from ?filename=.
func (h *PhotoHandler) Upload(c *drift.Context) {
	taskID, ok := pathID(c, "id", "task")
	if !ok {
		return
	}

	filename := c.QueryParam("filename")
	if filename == "" {
		c.BadRequest("filename is required")
		return
	}

	body := http.MaxBytesReader(c.Response, c.Request.Body, h.maxBytes)
	photo, err := h.photoService.Upload(requestContext(c), middleware.GetRole(c), taskID, filename, body)
	if err != nil {
		respondError(c, err, "failed to upload photo")
		return
	}

	_ = c.JSON(201, photo)
}

func (h *PhotoHandler) List(c *drift.Context) {
	taskID, ok := pathID(c, "id", "task")
	if !ok {
		return
	}

	photos, err := h.photoService.ListByTask(requestContext(c), taskID)
	if err != nil {
		respondError(c, err, "failed to list photos")
		return
	}

	_ = c.JSON(200, photos)
}

// ServeFiles serves stored photos from root. Object keys are always
// <task id>/<file>, so both segments are reduced to their base name.
func ServeFiles(root string) drift.HandlerFunc {
	return func(c *drift.Context) {
		taskID, ok := pathID(c, "taskId", "task")
		if !ok {
			return
		}
		name := filepath.Base(c.Param("name"))
		if name == "." || name == string(filepath.Separator) {
			c.NotFound("photo not found")
			return
		}

		http.ServeFile(c.Response, c.Request, filepath.Join(root, taskID.String(), name))
		c.Abort()
	}
}
