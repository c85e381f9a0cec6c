package handlers

import (
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/megamounds/sitetrack-api/internal/middleware"
	"github.com/megamounds/sitetrack-api/internal/progress"
	"github.com/megamounds/sitetrack-api/internal/services"
	"github.com/megamounds/sitetrack-api/pkg/dto"
)

type ResourceHandler struct {
	resourceService ResourceServiceInterface
}

func NewResourceHandler(resourceService ResourceServiceInterface) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService}
}

// List returns the full resource table in milestone order.
func (h *ResourceHandler) List(c *drift.Context) {
	projectID, ok := pathID(c, "id", "project")
	if !ok {
		return
	}

	resources, err := h.resourceService.ListByProject(requestContext(c), projectID)
	if err != nil {
		respondError(c, err, "failed to list resources")
		return
	}

	_ = c.JSON(200, progress.Ordered(resources))
}

func (h *ResourceHandler) Create(c *drift.Context) {
	projectID, ok := pathID(c, "id", "project")
	if !ok {
		return
	}

	var req dto.CreateResourceRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	milestoneDate, err := optionalDate(req.MilestoneDate)
	if err != nil {
		c.BadRequest("milestone_date must be YYYY-MM-DD")
		return
	}

	resource, err := h.resourceService.Create(requestContext(c), middleware.GetRole(c), projectID, services.CreateResourceInput{
		Name:          req.Name,
		Type:          req.Type,
		Quantity:      req.Quantity,
		Unit:          req.Unit,
		CostPerUnit:   req.CostPerUnit,
		Milestone:     req.Milestone,
		MilestoneDate: milestoneDate,
		Supplier:      req.Supplier,
		Status:        req.Status,
		Notes:         req.Notes,
	})
	if err != nil {
		respondError(c, err, "failed to create resource")
		return
	}

	_ = c.JSON(201, resource)
}

func (h *ResourceHandler) UpdateStatus(c *drift.Context) {
	resourceID, ok := pathID(c, "id", "resource")
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	resource, err := h.resourceService.UpdateStatus(requestContext(c), middleware.GetRole(c), resourceID, req.Status)
	if err != nil {
		respondError(c, err, "failed to update resource")
		return
	}

	_ = c.JSON(200, resource)
}
