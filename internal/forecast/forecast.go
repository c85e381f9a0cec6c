// Package forecast estimates the probability of a project finishing on its
// target date from its average completion rate so far.
//
// The estimate is a linear heuristic, not a statistical model. Its bounds are
// user facing: 0 means there is nothing to estimate, otherwise the value
// stays within [MinProbability, MaxProbability].
package forecast

import (
	"math"
	"time"

	"github.com/megamounds/sitetrack-api/internal/models"
)

const (
	MinProbability = 5
	MaxProbability = 99

	// infeasibleDays stands in for the days needed when nothing has been
	// completed yet.
	infeasibleDays = 9999

	day = 24 * time.Hour
)

// Band is the risk badge a probability maps to.
type Band string

const (
	BandNoData   Band = "no_data"
	BandOnTrack  Band = "on_track"
	BandAtRisk   Band = "at_risk"
	BandHighRisk Band = "high_risk"
)

// Forecast carries the estimate together with the inputs it was derived from.
type Forecast struct {
	Probability    int     `json:"probability"`
	Band           Band    `json:"band"`
	TotalTasks     int     `json:"total_tasks"`
	CompletedTasks int     `json:"completed_tasks"`
	DaysElapsed    int     `json:"days_elapsed"`
	DaysTotal      int     `json:"days_total"`
	DaysLeft       int     `json:"days_left"`
	Velocity       float64 `json:"velocity"`
	DaysNeeded     float64 `json:"days_needed"`
}

// CompletionProbability returns the on-time completion probability in
// percent.
func CompletionProbability(project models.Project, tasks []models.Task, now time.Time) int {
	return Estimate(project, tasks, now).Probability
}

// Estimate runs the velocity heuristic. Velocity is tasks currently complete
// divided by days since the project was created; per-task completion times
// are not tracked.
func Estimate(project models.Project, tasks []models.Task, now time.Time) Forecast {
	f := Forecast{TotalTasks: len(tasks), Band: BandNoData}
	for _, t := range tasks {
		if t.Done() {
			f.CompletedTasks++
		}
	}

	if f.TotalTasks == 0 || project.TargetDate == nil || project.CreatedAt.IsZero() {
		return f
	}
	target := *project.TargetDate

	f.DaysElapsed = max(1, ceilDays(now.Sub(project.CreatedAt)))
	f.DaysTotal = ceilDays(target.Sub(project.CreatedAt))
	f.DaysLeft = max(0, ceilDays(target.Sub(now)))
	f.Velocity = float64(f.CompletedTasks) / float64(f.DaysElapsed)

	remaining := float64(f.TotalTasks - f.CompletedTasks)
	f.DaysNeeded = infeasibleDays
	if f.Velocity > 0 {
		f.DaysNeeded = remaining / f.Velocity
	}

	daysLeft := float64(f.DaysLeft)
	switch {
	case f.DaysNeeded <= daysLeft && f.DaysLeft == 0:
		// Only reachable with nothing remaining on the target day.
		f.Probability = MaxProbability
	case f.DaysNeeded <= daysLeft:
		f.Probability = min(MaxProbability, round(90+10*(daysLeft-f.DaysNeeded)/daysLeft))
	default:
		f.Probability = max(MinProbability, round(90*daysLeft/f.DaysNeeded))
	}
	f.Band = BandFor(f.Probability)
	return f
}

// BandFor maps a probability to its badge: 70 and above is on track, 40 to
// 69 at risk, anything lower high risk. 0 is reserved for no data.
func BandFor(probability int) Band {
	switch {
	case probability <= 0:
		return BandNoData
	case probability >= 70:
		return BandOnTrack
	case probability >= 40:
		return BandAtRisk
	default:
		return BandHighRisk
	}
}

// DaysToTarget is the signed number of days until the target date, negative
// once the project is overdue. ok is false when no target date is set.
func DaysToTarget(project models.Project, now time.Time) (days int, ok bool) {
	if project.TargetDate == nil {
		return 0, false
	}
	return ceilDays(project.TargetDate.Sub(now)), true
}

func ceilDays(d time.Duration) int {
	return int(math.Ceil(float64(d) / float64(day)))
}

func round(v float64) int {
	return int(math.Floor(v + 0.5))
}
