package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/megamounds/sitetrack-api/internal/cache"
	"github.com/megamounds/sitetrack-api/internal/forecast"
	"github.com/megamounds/sitetrack-api/internal/metrics"
	"github.com/megamounds/sitetrack-api/internal/models"
	"github.com/megamounds/sitetrack-api/internal/progress"
)

type ProjectReader interface {
	GetByID(ctx context.Context, projectID uuid.UUID) (*models.Project, error)
}

type TaskLister interface {
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Task, error)
}

type ResourceLister interface {
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Resource, error)
}

type RiskLister interface {
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Risk, error)
}

type MemberLister interface {
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.TeamMember, error)
}

type DashboardService struct {
	projects  ProjectReader
	tasks     TaskLister
	resources ResourceLister
	risks     RiskLister
	members   MemberLister
	cache     cache.SnapshotCache
	log       *zap.Logger
}

func NewDashboardService(projects ProjectReader, tasks TaskLister, resources ResourceLister, risks RiskLister,
	members MemberLister, snapshots cache.SnapshotCache, log *zap.Logger) *DashboardService {
	if snapshots == nil {
		snapshots = cache.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &DashboardService{
		projects:  projects,
		tasks:     tasks,
		resources: resources,
		risks:     risks,
		members:   members,
		cache:     snapshots,
		log:       log,
	}
}

type Charts struct {
	Weekly             []progress.WeekProgress `json:"weekly"`
	StatusDistribution []progress.StatusCount  `json:"status_distribution"`
}

type ResourceView struct {
	Costs       progress.CostOverview     `json:"costs"`
	ByMilestone []progress.MilestoneGroup `json:"by_milestone"`
	ByType      []progress.TypeGroup      `json:"by_type"`
}

// Snapshot is everything the project view renders, computed from one
// consistent set of reads.
type Snapshot struct {
	Project       models.Project             `json:"project"`
	Overall       progress.Summary           `json:"overall"`
	Weeks         []progress.WeekProgress    `json:"weeks"`
	ActiveWeek    string                     `json:"active_week"`
	Sections      []progress.SectionProgress `json:"sections"`
	Forecast      forecast.Forecast          `json:"forecast"`
	DaysToTarget  *int                       `json:"days_to_target"`
	CriticalTasks []models.Task              `json:"critical_tasks"`
	Charts        Charts                     `json:"charts"`
	Resources     ResourceView               `json:"resources"`
	Risks         []models.Risk              `json:"risks"`
	Team          []models.TeamMember        `json:"team"`
	GeneratedAt   time.Time                  `json:"generated_at"`
}

// Snapshot loads the project and its four collections concurrently and
// aggregates them. activeWeek selects the section breakdown; blank picks the
// first task's week. A cached snapshot is returned as built, so its
// forecast and days to target may trail now by up to the cache TTL.
func (s *DashboardService) Snapshot(ctx context.Context, projectID uuid.UUID, activeWeek string, now time.Time) (*Snapshot, error) {
	activeWeek = strings.TrimSpace(activeWeek)

	var cached Snapshot
	hit, err := s.cache.Get(ctx, projectID, activeWeek, &cached)
	if err != nil {
		s.log.Warn("snapshot cache read failed", zap.String("project_id", projectID.String()), zap.Error(err))
	}
	metrics.RecordSnapshotCache(hit)
	if hit {
		return &cached, nil
	}

	start := time.Now()
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	var (
		tasks     []models.Task
		resources []models.Resource
		risks     []models.Risk
		team      []models.TeamMember
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		tasks, err = s.tasks.ListByProject(gctx, projectID)
		return err
	})
	g.Go(func() (err error) {
		resources, err = s.resources.ListByProject(gctx, projectID)
		return err
	})
	g.Go(func() (err error) {
		risks, err = s.risks.ListByProject(gctx, projectID)
		return err
	})
	g.Go(func() (err error) {
		team, err = s.members.ListByProject(gctx, projectID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap := BuildSnapshot(*project, tasks, resources, risks, team, activeWeek, now)
	metrics.RecordSnapshotBuild(time.Since(start))

	if err := s.cache.Set(ctx, projectID, activeWeek, snap); err != nil {
		s.log.Warn("snapshot cache write failed", zap.String("project_id", projectID.String()), zap.Error(err))
	}
	return snap, nil
}

// BuildSnapshot is the pure aggregation step of Snapshot.
func BuildSnapshot(project models.Project, tasks []models.Task, resources []models.Resource, risks []models.Risk,
	team []models.TeamMember, activeWeek string, now time.Time) *Snapshot {
	if activeWeek == "" && len(tasks) > 0 {
		activeWeek = tasks[0].Week
	}

	weeks := progress.ByWeek(tasks)
	snap := &Snapshot{
		Project:       project,
		Overall:       progress.TaskSummary(tasks),
		Weeks:         weeks,
		ActiveWeek:    activeWeek,
		Sections:      progress.Sections(tasks, activeWeek),
		Forecast:      forecast.Estimate(project, tasks, now),
		CriticalTasks: progress.CriticalTasks(tasks),
		Charts: Charts{
			Weekly:             weeks,
			StatusDistribution: progress.StatusDistribution(tasks),
		},
		Resources: ResourceView{
			Costs:       progress.Costs(resources),
			ByMilestone: progress.ByMilestone(resources),
			ByType:      progress.ByType(resources),
		},
		Risks:       nonNil(risks),
		Team:        nonNil(team),
		GeneratedAt: now,
	}
	if days, ok := forecast.DaysToTarget(project, now); ok {
		snap.DaysToTarget = &days
	}
	if snap.Sections == nil {
		snap.Sections = []progress.SectionProgress{}
	}
	return snap
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

type PortfolioStats struct {
	Total   int `json:"total"`
	OnTrack int `json:"on_track"`
	AtRisk  int `json:"at_risk"`
	Delayed int `json:"delayed"`
}

type Portfolio struct {
	Projects []models.ProjectProgress `json:"projects"`
	Stats    PortfolioStats           `json:"stats"`
}

// BuildPortfolio filters projects by a case-insensitive name search and an
// optional RAG status. Stats always describe the unfiltered list.
func BuildPortfolio(projects []models.ProjectProgress, search string, rag models.RAGStatus) Portfolio {
	out := Portfolio{Projects: []models.ProjectProgress{}}
	needle := strings.ToLower(strings.TrimSpace(search))

	for _, p := range projects {
		out.Stats.Total++
		switch p.RAGStatus {
		case models.RAGOnTrack:
			out.Stats.OnTrack++
		case models.RAGAtRisk:
			out.Stats.AtRisk++
		case models.RAGDelayed:
			out.Stats.Delayed++
		}

		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		if rag != "" && p.RAGStatus != rag {
			continue
		}
		out.Projects = append(out.Projects, p)
	}
	return out
}
