package services

import (
	"time"

	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/kpi"
	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/store"
)

// DashboardService builds the home page from the project and task stores.
type DashboardService struct {
	projects      *store.ProjectStore
	tasks         *store.TaskStore
	revenueTarget float64
}

func NewDashboardService(projects *store.ProjectStore, tasks *store.TaskStore, revenueTarget float64) *DashboardService {
	return &DashboardService{projects: projects, tasks: tasks, revenueTarget: revenueTarget}
}

func (s *DashboardService) Build(at time.Time, step string) kpi.Dashboard {
	return kpi.Build(s.projects.Snapshot(), s.tasks.Snapshot(), kpi.Options{
		Now:           at,
		Step:          step,
		RevenueTarget: s.revenueTarget,
	})
}
