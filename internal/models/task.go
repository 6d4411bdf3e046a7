package models

import "time"

// Recurrence describes a repeating task. Future occurrences are not generated.
type Recurrence struct {
	Pattern  RecurrencePattern `json:"pattern"`
	Interval int               `json:"interval"`
}

// Task is an organisation task, independent from project sub-tasks.
// Project optionally names a project; the name may not resolve.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Project     string       `json:"project,omitempty"`
	Description string       `json:"description,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	DueDate     string       `json:"due_date"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
	Recurrence  *Recurrence  `json:"recurrence,omitempty"`
}

func (t Task) Clone() Task {
	if t.Recurrence != nil {
		r := *t.Recurrence
		t.Recurrence = &r
	}
	return t
}

type TaskRow struct {
	ID                 string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt          time.Time `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	Title              string    `gorm:"size:255;not null" json:"title"`
	ProjectName        string    `gorm:"size:255" json:"project_name"`
	Description        string    `gorm:"type:text" json:"description"`
	DueDate            string    `gorm:"size:32" json:"due_date"`
	Priority           string    `gorm:"size:20;not null" json:"priority"`
	Status             string    `gorm:"size:20;not null" json:"status"`
	RecurrencePattern  *string   `gorm:"size:20" json:"recurrence_pattern"`
	RecurrenceInterval *int      `json:"recurrence_interval"`
}

func (TaskRow) TableName() string { return "tasks" }

func (r TaskRow) Columns() map[string]any {
	var pattern, interval any
	if r.RecurrencePattern != nil {
		pattern = *r.RecurrencePattern
	}
	if r.RecurrenceInterval != nil {
		interval = *r.RecurrenceInterval
	}
	return map[string]any{
		"title":               r.Title,
		"project_name":        r.ProjectName,
		"description":         r.Description,
		"due_date":            r.DueDate,
		"priority":            r.Priority,
		"status":              r.Status,
		"recurrence_pattern":  pattern,
		"recurrence_interval": interval,
	}
}

func TaskToRow(t Task) TaskRow {
	row := TaskRow{
		ID:          t.ID,
		CreatedAt:   t.CreatedAt,
		Title:       t.Title,
		ProjectName: t.Project,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
	}
	if t.Recurrence != nil {
		pattern := string(t.Recurrence.Pattern)
		interval := t.Recurrence.Interval
		row.RecurrencePattern = &pattern
		row.RecurrenceInterval = &interval
	}
	return row
}

// TaskFromRow rebuilds a task. Unknown priorities read as Normale and unknown
// statuses as En cours.
func TaskFromRow(r TaskRow) Task {
	t := Task{
		ID:          r.ID,
		Title:       r.Title,
		Project:     r.ProjectName,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		DueDate:     r.DueDate,
		Priority:    TaskPriority(r.Priority),
		Status:      TaskStatus(r.Status),
	}
	if !t.Priority.Valid() {
		t.Priority = PriorityNormal
	}
	if !t.Status.Valid() {
		t.Status = TaskInProgress
	}
	if r.RecurrencePattern != nil && RecurrencePattern(*r.RecurrencePattern).Valid() {
		interval := 1
		if r.RecurrenceInterval != nil && *r.RecurrenceInterval > 0 {
			interval = *r.RecurrenceInterval
		}
		t.Recurrence = &Recurrence{Pattern: RecurrencePattern(*r.RecurrencePattern), Interval: interval}
	}
	return t
}

// Overdue reports whether an unfinished task's due day is before now's day.
// Tasks without a parseable due date are never overdue.
func (t Task) Overdue(now time.Time) bool {
	if t.Status == TaskDone {
		return false
	}
	due, ok := ParseDate(t.DueDate)
	if !ok {
		return false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	dy, dm, dd := due.Date()
	return time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC).Before(today)
}
