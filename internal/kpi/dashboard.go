package kpi

import (
	"time"

	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/models"
)

const (
	RecentProjectsLimit = 4
	UrgentTasksLimit    = 5
)

type Options struct {
	Now time.Time
	// Step restricts recent projects to one stage; empty means all.
	Step string
	// RevenueTarget is the yearly revenue goal; zero hides the objective.
	RevenueTarget float64
}

type TaskView struct {
	models.Task
	Overdue bool `json:"overdue"`
}

type ProjectView struct {
	models.Project
	Progress []bool `json:"progress"`
	Color    string `json:"color"`
}

type ObjectiveView struct {
	AnnualObjective
	Percent int `json:"percent"`
}

// Dashboard is everything the home page shows.
type Dashboard struct {
	Kpis           Kpis           `json:"kpis"`
	Revenue        []RevenuePoint `json:"revenue"`
	RecentProjects []ProjectView  `json:"recent_projects"`
	UrgentTasks    []TaskView     `json:"urgent_tasks"`
	Objective      *ObjectiveView `json:"objective,omitempty"`
}

func Build(projects []models.Project, tasks []models.Task, opts Options) Dashboard {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	d := Dashboard{
		Kpis:           ComputeKpis(projects, tasks),
		Revenue:        BuildRevenueSeries(projects),
		RecentProjects: []ProjectView{},
		UrgentTasks:    []TaskView{},
	}
	for _, p := range RecentProjects(projects, opts.Step, RecentProjectsLimit) {
		d.RecentProjects = append(d.RecentProjects, ProjectView{Project: p, Progress: p.Status.Progress(), Color: p.Status.Color()})
	}
	for _, t := range UrgentTasks(tasks, UrgentTasksLimit) {
		d.UrgentTasks = append(d.UrgentTasks, TaskView{Task: t, Overdue: t.Overdue(opts.Now)})
	}
	if opts.RevenueTarget > 0 {
		o := AnnualObjective{
			Title:   "Chiffre d'affaires annuel",
			Current: RealizedInYear(projects, opts.Now.Year()),
			Total:   opts.RevenueTarget,
		}
		d.Objective = &ObjectiveView{AnnualObjective: o, Percent: o.Percent()}
	}
	return d
}
