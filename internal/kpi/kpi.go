// Package kpi reduces project and task snapshots into dashboard metrics.
package kpi

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/models"
)

type Kpis struct {
	OngoingProjects  int     `json:"ongoing_projects"`
	FinishedProjects int     `json:"finished_projects"`
	RevenueRealized  float64 `json:"revenue_realized"`
	RevenueForecast  float64 `json:"revenue_forecast"`
	TasksInProgress  int     `json:"tasks_in_progress"`
}

// ComputeKpis counts projects by completion, sums budgets by payment state
// and counts unfinished tasks.
func ComputeKpis(projects []models.Project, tasks []models.Task) Kpis {
	var k Kpis
	for _, p := range projects {
		if p.Status == models.StatusTermine {
			k.FinishedProjects++
		} else {
			k.OngoingProjects++
		}
		switch p.PaymentStatus {
		case models.PaymentPaid:
			k.RevenueRealized += p.Budget
		case models.PaymentDeposit, models.PaymentUnpaid:
			k.RevenueForecast += p.Budget
		}
	}
	for _, t := range tasks {
		if t.Status == models.TaskInProgress {
			k.TasksInProgress++
		}
	}
	return k
}

// RevenuePoint is one month of the revenue chart.
type RevenuePoint struct {
	Label    string     `json:"label"`
	Year     int        `json:"year"`
	Month    time.Month `json:"month"`
	Realized float64    `json:"realized"`
	Forecast float64    `json:"forecast"`
}

var shortMonths = [...]string{
	"janv.", "févr.", "mars", "avr.", "mai", "juin",
	"juil.", "août", "sept.", "oct.", "nov.", "déc.",
}

// MonthLabel renders a month the way the dashboard axis shows it ("janv. 2024").
func MonthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", shortMonths[month-1], year)
}

// BuildRevenueSeries buckets budgets by the month of each project's end date,
// oldest month first. Projects without a parseable end date are left out and
// months without projects are not emitted.
func BuildRevenueSeries(projects []models.Project) []RevenuePoint {
	type key struct {
		year  int
		month time.Month
	}
	buckets := map[key]*RevenuePoint{}
	for _, p := range projects {
		end, ok := models.ParseDate(p.EndDate)
		if !ok {
			continue
		}
		k := key{end.Year(), end.Month()}
		pt, found := buckets[k]
		if !found {
			pt = &RevenuePoint{Label: MonthLabel(k.year, k.month), Year: k.year, Month: k.month}
			buckets[k] = pt
		}
		if p.PaymentStatus.Realized() {
			pt.Realized += p.Budget
		} else {
			pt.Forecast += p.Budget
		}
	}

	series := make([]RevenuePoint, 0, len(buckets))
	for _, pt := range buckets {
		series = append(series, *pt)
	}
	slices.SortFunc(series, func(a, b RevenuePoint) int {
		if c := cmp.Compare(a.Year, b.Year); c != 0 {
			return c
		}
		return cmp.Compare(a.Month, b.Month)
	})
	return series
}

// byDate orders ascending on a date string; unparseable dates sort last.
func byDate[T any](date func(T) string) func(a, b T) int {
	return func(a, b T) int {
		da, okA := models.ParseDate(date(a))
		db, okB := models.ParseDate(date(b))
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return 1
		case !okB:
			return -1
		}
		return da.Compare(db)
	}
}

// RecentProjects returns the first limit projects at the given stage (any
// stage when status is empty or "Tous"), earliest end date first.
func RecentProjects(projects []models.Project, status string, limit int) []models.Project {
	out := []models.Project{}
	for _, p := range projects {
		if status == "" || status == "Tous" || string(p.Status) == status {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, byDate(func(p models.Project) string { return p.EndDate }))
	return out[:min(limit, len(out))]
}

// UrgentTasks returns the first limit tasks by due date. Finished tasks are
// kept, matching the dashboard list.
func UrgentTasks(tasks []models.Task, limit int) []models.Task {
	out := slices.Clone(tasks)
	if out == nil {
		out = []models.Task{}
	}
	slices.SortStableFunc(out, byDate(func(t models.Task) string { return t.DueDate }))
	return out[:min(limit, len(out))]
}

// AnnualObjective tracks progress toward a yearly target.
type AnnualObjective struct {
	Title   string  `json:"title"`
	Current float64 `json:"current"`
	Total   float64 `json:"total"`
}

// Percent is the rounded completion percentage, 0 without a positive target.
func (o AnnualObjective) Percent() int {
	if o.Total <= 0 {
		return 0
	}
	return int(math.Round(o.Current / o.Total * 100))
}

// RealizedInYear sums paid budgets of projects ending in year.
func RealizedInYear(projects []models.Project, year int) float64 {
	var sum float64
	for _, p := range projects {
		end, ok := models.ParseDate(p.EndDate)
		if ok && end.Year() == year && p.PaymentStatus.Realized() {
			sum += p.Budget
		}
	}
	return sum
}
