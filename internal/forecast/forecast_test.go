package forecast

import (
	"testing"
	"time"

	"github.com/megamounds/sitetrack-api/internal/models"
	"github.com/stretchr/testify/assert"
)

var now = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func project(elapsedDays, leftDays int) models.Project {
	target := now.AddDate(0, 0, leftDays)
	return models.Project{
		Name:       "Lekki Tower",
		CreatedAt:  now.AddDate(0, 0, -elapsedDays),
		TargetDate: &target,
	}
}

func tasks(total, completed int) []models.Task {
	out := make([]models.Task, total)
	for i := range out {
		out[i].Status = models.TaskNotStarted
		if i < completed {
			out[i].Status = models.TaskComplete
		}
	}
	return out
}

func TestCompletionProbability_NoTasks(t *testing.T) {
	assert.Equal(t, 0, CompletionProbability(project(5, 10), nil, now))
}

func TestCompletionProbability_NoTargetDate(t *testing.T) {
	p := project(5, 10)
	p.TargetDate = nil

	f := Estimate(p, tasks(4, 1), now)

	assert.Equal(t, 0, f.Probability)
	assert.Equal(t, BandNoData, f.Band)
}

func TestCompletionProbability_DoneEarly(t *testing.T) {
	f := Estimate(project(5, 10), tasks(10, 10), now)

	assert.Equal(t, 5, f.DaysElapsed)
	assert.Equal(t, 10, f.DaysLeft)
	assert.Equal(t, 15, f.DaysTotal)
	assert.GreaterOrEqual(t, f.Probability, 90)
	assert.LessOrEqual(t, f.Probability, 99)
	assert.Equal(t, 99, f.Probability)
	assert.Equal(t, BandOnTrack, f.Band)
}

func TestCompletionProbability_WayBehind(t *testing.T) {
	p := CompletionProbability(project(10, 1), tasks(10, 0), now)

	assert.Equal(t, MinProbability, p)
}

func TestCompletionProbability_OnPace(t *testing.T) {
	// 5 of 10 done in 10 days: velocity 0.5, 10 days needed, 12 left.
	f := Estimate(project(10, 12), tasks(10, 5), now)

	assert.InDelta(t, 0.5, f.Velocity, 1e-9)
	assert.InDelta(t, 10, f.DaysNeeded, 1e-9)
	assert.Equal(t, 92, f.Probability)
}

func TestCompletionProbability_Behind(t *testing.T) {
	// 2 of 10 done in 10 days: 40 days needed, 20 left.
	assert.Equal(t, 45, CompletionProbability(project(10, 20), tasks(10, 2), now))
}

func TestCompletionProbability_TargetDayAllDone(t *testing.T) {
	assert.Equal(t, MaxProbability, CompletionProbability(project(30, 0), tasks(3, 3), now))
}

func TestCompletionProbability_OverdueWithWorkLeft(t *testing.T) {
	assert.Equal(t, MinProbability, CompletionProbability(project(40, -5), tasks(8, 6), now))
}

func TestCompletionProbability_SameDayStartFloorsElapsed(t *testing.T) {
	p := project(0, 10)

	f := Estimate(p, tasks(4, 1), now)

	assert.Equal(t, 1, f.DaysElapsed)
	assert.Equal(t, 92, f.Probability)
}

func TestCompletionProbability_Bounds(t *testing.T) {
	for elapsed := 0; elapsed <= 60; elapsed += 7 {
		for left := -10; left <= 60; left += 9 {
			for done := 0; done <= 12; done += 3 {
				p := CompletionProbability(project(elapsed, left), tasks(12, done), now)
				assert.GreaterOrEqual(t, p, MinProbability)
				assert.LessOrEqual(t, p, MaxProbability)
			}
		}
	}
}

func TestBandFor(t *testing.T) {
	assert.Equal(t, BandNoData, BandFor(0))
	assert.Equal(t, BandHighRisk, BandFor(5))
	assert.Equal(t, BandHighRisk, BandFor(39))
	assert.Equal(t, BandAtRisk, BandFor(40))
	assert.Equal(t, BandAtRisk, BandFor(69))
	assert.Equal(t, BandOnTrack, BandFor(70))
}

func TestDaysToTarget(t *testing.T) {
	days, ok := DaysToTarget(project(0, 14), now)
	assert.True(t, ok)
	assert.Equal(t, 14, days)

	days, _ = DaysToTarget(project(0, -3), now)
	assert.Equal(t, -3, days)

	_, ok = DaysToTarget(models.Project{}, now)
	assert.False(t, ok)
}
