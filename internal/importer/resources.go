package importer

import (
	"github.com/google/uuid"

	"github.com/megamounds/sitetrack-api/internal/models"
)

var resourceRequired = []string{"name"}

// Resources validates resource CSV text for a project.
func Resources(projectID uuid.UUID, text string) Result[models.Resource] {
	var res Result[models.Resource]
	for _, r := range readRows(text) {
		if missing := r.missing(resourceRequired); len(missing) > 0 {
			res.Errors = append(res.Errors, ValidationError{Row: r.number, Missing: missing})
			continue
		}
		milestone := r.get("milestone")
		if milestone == "" {
			milestone = r.get("week")
		}
		res.Records = append(res.Records, models.Resource{
			ProjectID:     projectID,
			Name:          r.get("name"),
			Type:          models.CoerceResourceType(r.get("type")),
			Quantity:      ParseNonNegativeNumber(r.get("quantity")),
			Unit:          r.get("unit"),
			CostPerUnit:   ParseNonNegativeNumber(r.get("cost_per_unit")),
			Milestone:     milestone,
			MilestoneDate: ParseDate(r.get("milestone_date")),
			Supplier:      r.get("supplier"),
			Status:        models.CoerceResourceStatus(r.get("status")),
			Notes:         r.get("notes"),
		})
	}
	return res
}
