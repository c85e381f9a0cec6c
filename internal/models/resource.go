package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Unscheduled is the milestone group for resources without a milestone.
const Unscheduled = "Unscheduled"

// Resource is one scheduled line of labour, material, equipment or
// subcontract work. The same item may appear once per milestone.
type Resource struct {
	ID            uuid.UUID      `json:"id"`
	ProjectID     uuid.UUID      `json:"project_id"`
	Name          string         `json:"name"`
	Type          ResourceType   `json:"type"`
	Quantity      float64        `json:"quantity"`
	Unit          string         `json:"unit"`
	CostPerUnit   float64        `json:"cost_per_unit"`
	Milestone     string         `json:"milestone"`
	MilestoneDate *time.Time     `json:"milestone_date,omitempty"`
	Supplier      string         `json:"supplier"`
	Status        ResourceStatus `json:"status"`
	Notes         string         `json:"notes"`
	CreatedAt     time.Time      `json:"created_at"`
}

func (r Resource) LineCost() float64 {
	return r.Quantity * r.CostPerUnit
}

// MilestoneKey is the group the resource is scheduled under.
func (r Resource) MilestoneKey() string {
	if m := strings.TrimSpace(r.Milestone); m != "" {
		return m
	}
	return Unscheduled
}

func (r Resource) Deployed() bool {
	return r.Status.Deployed()
}
