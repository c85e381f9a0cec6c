package handlers

import (
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/megamounds/sitetrack-api/internal/middleware"
	"github.com/megamounds/sitetrack-api/internal/services"
	"github.com/megamounds/sitetrack-api/pkg/dto"
)

type TaskHandler struct {
	taskService TaskServiceInterface
}

func NewTaskHandler(taskService TaskServiceInterface) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) List(c *drift.Context) {
	projectID, ok := pathID(c, "id", "project")
	if !ok {
		return
	}

	tasks, err := h.taskService.ListByProject(requestContext(c), projectID)
	if err != nil {
		respondError(c, err, "failed to list tasks")
		return
	}

	_ = c.JSON(200, tasks)
}

func (h *TaskHandler) Create(c *drift.Context) {
	projectID, ok := pathID(c, "id", "project")
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	start, err := optionalDate(req.StartDate)
	if err != nil {
		c.BadRequest("start_date must be YYYY-MM-DD")
		return
	}
	end, err := optionalDate(req.EndDate)
	if err != nil {
		c.BadRequest("end_date must be YYYY-MM-DD")
		return
	}

	task, err := h.taskService.Create(requestContext(c), middleware.GetRole(c), projectID, services.CreateTaskInput{
		Title:      req.Title,
		Week:       req.Week,
		Section:    req.Section,
		Status:     req.Status,
		Priority:   req.Priority,
		IsCritical: req.IsCritical,
		Notes:      req.Notes,
		StartDate:  start,
		EndDate:    end,
	})
	if err != nil {
		respondError(c, err, "failed to create task")
		return
	}

	_ = c.JSON(201, task)
}

func (h *TaskHandler) UpdateStatus(c *drift.Context) {
	taskID, ok := pathID(c, "id", "task")
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	task, err := h.taskService.UpdateStatus(requestContext(c), middleware.GetRole(c), taskID, req.Status)
	if err != nil {
		respondError(c, err, "failed to update task")
		return
	}

	_ = c.JSON(200, task)
}

// Advance moves the task to the next status in the cycle.
func (h *TaskHandler) Advance(c *drift.Context) {
	taskID, ok := pathID(c, "id", "task")
	if !ok {
		return
	}

	task, err := h.taskService.AdvanceStatus(requestContext(c), middleware.GetRole(c), taskID)
	if err != nil {
		respondError(c, err, "failed to update task")
		return
	}

	_ = c.JSON(200, task)
}

func (h *TaskHandler) UpdateNote(c *drift.Context) {
	taskID, ok := pathID(c, "id", "task")
	if !ok {
		return
	}

	var req dto.UpdateNoteRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	task, err := h.taskService.UpdateNote(requestContext(c), middleware.GetRole(c), taskID, req.Notes)
	if err != nil {
		respondError(c, err, "failed to update task")
		return
	}

	_ = c.JSON(200, task)
}
