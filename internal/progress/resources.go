package progress

import (
	"time"

	"github.com/megamounds/sitetrack-api/internal/models"
)

type CostOverview struct {
	Items           int          `json:"items"`
	TotalCost       float64      `json:"total_cost"`
	DeployedCost    float64      `json:"deployed_cost"`
	DeployedPercent int          `json:"deployed_percent"`
	ByStatus        []StatusCost `json:"by_status"`
}

type StatusCost struct {
	Status models.ResourceStatus `json:"status"`
	Count  int                   `json:"count"`
	Cost   float64               `json:"cost"`
}

type MilestoneGroup struct {
	Milestone     string     `json:"milestone"`
	MilestoneDate *time.Time `json:"milestone_date,omitempty"`
	Summary
	Resources []models.Resource `json:"resources"`
}

type TypeGroup struct {
	Type models.ResourceType `json:"type"`
	Summary
	Resources []models.Resource `json:"resources"`
}

func resourceDeployed(r models.Resource) bool { return r.Deployed() }

func resourceCost(r models.Resource) float64 { return r.LineCost() }

// ResourceSummary counts deployed resources and sums their line costs.
func ResourceSummary(resources []models.Resource) Summary {
	return Summarize(resources, resourceDeployed, resourceCost)
}

// TotalCost sums quantity x cost_per_unit over resources.
func TotalCost(resources []models.Resource) float64 {
	var total float64
	for _, r := range resources {
		total += r.LineCost()
	}
	return total
}

// Costs is the cost tracker: totals, the deployed share and a per-status
// breakdown listing every status, in lifecycle order.
func Costs(resources []models.Resource) CostOverview {
	overview := CostOverview{Items: len(resources)}
	byStatus := make(map[models.ResourceStatus]*StatusCost, len(models.ResourceStatuses))
	for _, s := range models.ResourceStatuses {
		byStatus[s] = &StatusCost{Status: s}
	}

	for _, r := range resources {
		cost := r.LineCost()
		overview.TotalCost += cost
		if r.Deployed() {
			overview.DeployedCost += cost
		}
		if sc, ok := byStatus[r.Status]; ok {
			sc.Count++
			sc.Cost += cost
		}
	}

	overview.DeployedPercent = Ratio(overview.DeployedCost, overview.TotalCost)
	for _, s := range models.ResourceStatuses {
		overview.ByStatus = append(overview.ByStatus, *byStatus[s])
	}
	return overview
}

// ByMilestone groups resources under their milestone key, in SortMilestones
// order. A group's date is the first member's milestone date.
func ByMilestone(resources []models.Resource) []MilestoneGroup {
	groups := GroupBy(resources, models.Resource.MilestoneKey)
	keys := SortMilestones(groups.Keys)

	out := make([]MilestoneGroup, 0, len(keys))
	for _, k := range keys {
		members := groups.Members[k]
		out = append(out, MilestoneGroup{
			Milestone:     k,
			MilestoneDate: members[0].MilestoneDate,
			Summary:       ResourceSummary(members),
			Resources:     members,
		})
	}
	return out
}

// ByType groups resources per type in the fixed type order. Types without
// resources are omitted.
func ByType(resources []models.Resource) []TypeGroup {
	groups := GroupBy(resources, func(r models.Resource) string { return string(r.Type) })

	var out []TypeGroup
	for _, t := range models.ResourceTypes {
		members, ok := groups.Members[string(t)]
		if !ok {
			continue
		}
		out = append(out, TypeGroup{
			Type:      t,
			Summary:   ResourceSummary(members),
			Resources: members,
		})
	}
	return out
}

// Ordered flattens resources in milestone order, the full-table view.
func Ordered(resources []models.Resource) []models.Resource {
	out := make([]models.Resource, 0, len(resources))
	for _, g := range ByMilestone(resources) {
		out = append(out, g.Resources...)
	}
	return out
}
