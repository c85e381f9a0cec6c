package handlers

import (
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/megamounds/sitetrack-api/internal/middleware"
	"github.com/megamounds/sitetrack-api/internal/services"
	"github.com/megamounds/sitetrack-api/pkg/dto"
)

type RiskHandler struct {
	riskService RiskServiceInterface
}

func NewRiskHandler(riskService RiskServiceInterface) *RiskHandler {
	return &RiskHandler{riskService: riskService}
}

func (h *RiskHandler) List(c *drift.Context) {
	projectID, ok := pathID(c, "id", "project")
	if !ok {
		return
	}

	risks, err := h.riskService.ListByProject(requestContext(c), projectID)
	if err != nil {
		respondError(c, err, "failed to list risks")
		return
	}

	_ = c.JSON(200, risks)
}

func (h *RiskHandler) Create(c *drift.Context) {
	projectID, ok := pathID(c, "id", "project")
	if !ok {
		return
	}

	var req dto.CreateRiskRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	risk, err := h.riskService.Create(requestContext(c), middleware.GetRole(c), projectID, services.CreateRiskInput{
		Title:      req.Title,
		Likelihood: req.Likelihood,
		Impact:     req.Impact,
		Status:     req.Status,
		Mitigation: req.Mitigation,
		Owner:      req.Owner,
	})
	if err != nil {
		respondError(c, err, "failed to create risk")
		return
	}

	_ = c.JSON(201, risk)
}

func (h *RiskHandler) UpdateField(c *drift.Context) {
	riskID, ok := pathID(c, "id", "risk")
	if !ok {
		return
	}

	var req dto.UpdateRiskFieldRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Field == "" {
		c.BadRequest("field is required")
		return
	}

	risk, err := h.riskService.UpdateField(requestContext(c), middleware.GetRole(c), riskID, req.Field, req.Value)
	if err != nil {
		respondError(c, err, "failed to update risk")
		return
	}

	_ = c.JSON(200, risk)
}
