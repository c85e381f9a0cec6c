package handlers

import (
	"time"

	"github.com/m1z23r/drift/pkg/drift"
)

type DashboardHandler struct {
	dashboardService DashboardServiceInterface
	now              func() time.Time
}

func NewDashboardHandler(dashboardService DashboardServiceInterface) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, now: time.Now}
}

// Snapshot renders the project view. ?week= picks the section breakdown.
func (h *DashboardHandler) Snapshot(c *drift.Context) {
	projectID, ok := pathID(c, "id", "project")
	if !ok {
		return
	}

	snap, err := h.dashboardService.Snapshot(requestContext(c), projectID, c.QueryParam("week"), h.now())
	if err != nil {
		respondError(c, err, "failed to build dashboard")
		return
	}

	_ = c.JSON(200, snap)
}
