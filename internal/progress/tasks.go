package progress

import (
	"strings"

	"github.com/megamounds/sitetrack-api/internal/models"
)

type WeekProgress struct {
	Week string `json:"week"`
	Summary
	Breakdown StatusBreakdown `json:"breakdown"`
}

// StatusBreakdown splits a week's tasks by status. Tasks with an unknown
// status are counted as not started.
type StatusBreakdown struct {
	Complete   int `json:"complete"`
	InProgress int `json:"in_progress"`
	Blocked    int `json:"blocked"`
	NotStarted int `json:"not_started"`
}

type SectionProgress struct {
	Section string `json:"section"`
	Summary
	Tasks []models.Task `json:"tasks"`
}

type StatusCount struct {
	Status models.TaskStatus `json:"status"`
	Count  int               `json:"count"`
}

func taskDone(t models.Task) bool { return t.Done() }

// TaskSummary is the overall completion of a task list.
func TaskSummary(tasks []models.Task) Summary {
	return Summarize(tasks, taskDone, nil)
}

// ByWeek rolls tasks up per week label, weeks in SortWeeks order.
func ByWeek(tasks []models.Task) []WeekProgress {
	groups := GroupBy(tasks, func(t models.Task) string { return t.Week })
	weeks := SortWeeks(groups.Keys)

	out := make([]WeekProgress, 0, len(weeks))
	for _, w := range weeks {
		members := groups.Members[w]
		out = append(out, WeekProgress{
			Week:      w,
			Summary:   Summarize(members, taskDone, nil),
			Breakdown: breakdown(members),
		})
	}
	return out
}

// Sections groups the tasks of one week by section, sections in first-seen
// order. Tasks with a blank section are left out.
func Sections(tasks []models.Task, week string) []SectionProgress {
	var weekTasks []models.Task
	for _, t := range tasks {
		if t.Week == week && strings.TrimSpace(t.Section) != "" {
			weekTasks = append(weekTasks, t)
		}
	}

	groups := GroupBy(weekTasks, func(t models.Task) string { return t.Section })
	out := make([]SectionProgress, 0, len(groups.Keys))
	for _, s := range groups.Keys {
		members := groups.Members[s]
		out = append(out, SectionProgress{
			Section: s,
			Summary: Summarize(members, taskDone, nil),
			Tasks:   members,
		})
	}
	return out
}

// StatusDistribution counts tasks per status, omitting empty statuses.
func StatusDistribution(tasks []models.Task) []StatusCount {
	counts := make(map[models.TaskStatus]int)
	for _, t := range tasks {
		counts[t.Status]++
	}
	var out []StatusCount
	for _, s := range models.TaskStatuses {
		if counts[s] > 0 {
			out = append(out, StatusCount{Status: s, Count: counts[s]})
		}
	}
	return out
}

// CriticalTasks keeps the manually flagged critical tasks in input order.
func CriticalTasks(tasks []models.Task) []models.Task {
	out := []models.Task{}
	for _, t := range tasks {
		if t.IsCritical {
			out = append(out, t)
		}
	}
	return out
}

func breakdown(tasks []models.Task) StatusBreakdown {
	var b StatusBreakdown
	for _, t := range tasks {
		switch t.Status {
		case models.TaskComplete:
			b.Complete++
		case models.TaskInProgress:
			b.InProgress++
		case models.TaskBlocked:
			b.Blocked++
		}
	}
	b.NotStarted = len(tasks) - b.Complete - b.InProgress - b.Blocked
	return b
}
