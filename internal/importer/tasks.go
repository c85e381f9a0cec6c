package importer

import (
	"strings"

	"github.com/google/uuid"

	"github.com/megamounds/sitetrack-api/internal/models"
)

var taskRequired = []string{"title", "week", "section"}

// Tasks validates task CSV text for a project.
func Tasks(projectID uuid.UUID, text string) Result[models.Task] {
	var res Result[models.Task]
	for _, r := range readRows(text) {
		if missing := r.missing(taskRequired); len(missing) > 0 {
			res.Errors = append(res.Errors, ValidationError{Row: r.number, Missing: missing})
			continue
		}
		res.Records = append(res.Records, models.Task{
			ProjectID:  projectID,
			Title:      r.get("title"),
			Week:       normalizeWeek(r.get("week")),
			Section:    r.get("section"),
			Status:     models.CoerceTaskStatus(r.get("status")),
			Priority:   models.CoercePriority(r.get("priority")),
			IsCritical: parseFlag(r.get("is_critical")),
			Notes:      r.get("notes"),
			StartDate:  ParseDate(r.get("start_date")),
			EndDate:    ParseDate(r.get("end_date")),
		})
	}
	return res
}

// normalizeWeek upper-cases labels that already name a week and prefixes
// bare values, so "3" becomes "WEEK 3".
func normalizeWeek(raw string) string {
	upper := strings.ToUpper(raw)
	if strings.Contains(upper, "WEEK") {
		return upper
	}
	return "WEEK " + raw
}
