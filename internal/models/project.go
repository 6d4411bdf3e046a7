package models

import (
	"encoding/json"
	"slices"
	"strings"
	"time"

	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/logger"
)

// SubTask is a checklist item attached to a project.
type SubTask struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// UnmarshalJSON accepts numeric ids written by older clients.
func (t *SubTask) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        json.RawMessage `json:"id"`
		Text      string          `json:"text"`
		Completed bool            `json:"completed"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = SubTask{ID: rawID(raw.ID), Text: raw.Text, Completed: raw.Completed}
	return nil
}

// Document references a file attached to a project. Files themselves live elsewhere.
type Document struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID   json.RawMessage `json:"id"`
		Name string          `json:"name"`
		Path string          `json:"path"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*d = Document{ID: rawID(raw.ID), Name: raw.Name, Path: raw.Path}
	return nil
}

func rawID(b json.RawMessage) string {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		return s
	}
	id := strings.TrimSpace(string(b))
	if id == "null" {
		return ""
	}
	return id
}

// Project is a shoot tracked from conception to delivery.
// Client holds the client's display name, not a reference.
type Project struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Client        string        `json:"client"`
	Description   string        `json:"description"`
	StartDate     string        `json:"start_date"`
	EndDate       string        `json:"end_date"`
	Status        ProjectStatus `json:"status"`
	Type          ProjectType   `json:"type"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	Budget        float64       `json:"budget"`
	IsFavorite    bool          `json:"is_favorite"`
	Tasks         []SubTask     `json:"tasks"`
	Notes         string        `json:"notes"`
	Documents     []Document    `json:"documents"`
	CreatedAt     time.Time     `json:"created_at"`
}

// Clone returns a copy that shares no slices with p.
func (p Project) Clone() Project {
	p.Tasks = slices.Clone(p.Tasks)
	p.Documents = slices.Clone(p.Documents)
	return p
}

// SubTask returns the index of the sub-task with the given id, or -1.
func (p Project) SubTask(id string) int {
	return slices.IndexFunc(p.Tasks, func(t SubTask) bool { return t.ID == id })
}

// ProjectRow is the stored shape of a project. Sub-tasks and documents are
// kept as JSON-encoded text.
type ProjectRow struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	ClientName     string    `gorm:"size:255" json:"client_name"`
	Type           string    `gorm:"size:20" json:"type"`
	Description    string    `gorm:"type:text" json:"description"`
	StartDate      string    `gorm:"size:32" json:"start_date"`
	EndDate        string    `gorm:"size:32" json:"end_date"`
	Status         string    `gorm:"size:20;not null" json:"status"`
	Budget         float64   `gorm:"not null" json:"budget"`
	PaymentStatus  string    `gorm:"size:20" json:"payment_status"`
	IsFavorite     bool      `gorm:"not null" json:"is_favorite"`
	Tasks          string    `gorm:"type:text" json:"tasks"`
	PersonalNotes  string    `gorm:"type:text" json:"personal_notes"`
	AttachmentsURL *string   `gorm:"type:text" json:"attachments_url"`
}

func (ProjectRow) TableName() string { return "projects" }

// Columns returns every editable column, keyed by column name.
func (r ProjectRow) Columns() map[string]any {
	var attachments any
	if r.AttachmentsURL != nil {
		attachments = *r.AttachmentsURL
	}
	return map[string]any{
		"name":            r.Name,
		"client_name":     r.ClientName,
		"type":            r.Type,
		"description":     r.Description,
		"start_date":      r.StartDate,
		"end_date":        r.EndDate,
		"status":          r.Status,
		"budget":          r.Budget,
		"payment_status":  r.PaymentStatus,
		"is_favorite":     r.IsFavorite,
		"tasks":           r.Tasks,
		"personal_notes":  r.PersonalNotes,
		"attachments_url": attachments,
	}
}

// ProjectToRow serialises p for storage.
func ProjectToRow(p Project) ProjectRow {
	tasks := p.Tasks
	if tasks == nil {
		tasks = []SubTask{}
	}
	encodedTasks, _ := json.Marshal(tasks)

	var attachments *string
	if len(p.Documents) > 0 {
		b, _ := json.Marshal(p.Documents)
		s := string(b)
		attachments = &s
	}

	return ProjectRow{
		ID:             p.ID,
		CreatedAt:      p.CreatedAt,
		Name:           p.Name,
		ClientName:     p.Client,
		Type:           string(p.Type),
		Description:    p.Description,
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		Status:         string(p.Status),
		Budget:         p.Budget,
		PaymentStatus:  string(p.PaymentStatus),
		IsFavorite:     p.IsFavorite,
		Tasks:          string(encodedTasks),
		PersonalNotes:  p.Notes,
		AttachmentsURL: attachments,
	}
}

// ProjectFromRow rebuilds a project from storage. Malformed embedded JSON is
// logged and replaced by an empty list; an unknown status falls back to Conception.
func ProjectFromRow(r ProjectRow) Project {
	p := Project{
		ID:            r.ID,
		Name:          r.Name,
		Client:        r.ClientName,
		Description:   r.Description,
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		Status:        ProjectStatus(r.Status),
		Type:          ProjectType(r.Type),
		PaymentStatus: PaymentStatus(r.PaymentStatus),
		Budget:        r.Budget,
		IsFavorite:    r.IsFavorite,
		Notes:         r.PersonalNotes,
		CreatedAt:     r.CreatedAt,
		Tasks:         []SubTask{},
		Documents:     []Document{},
	}
	if !p.Status.Valid() {
		logger.Warn("unknown project status, using Conception", "project", r.ID, "status", r.Status)
		p.Status = StatusConception
	}
	if !p.PaymentStatus.Valid() {
		logger.Warn("unknown payment status, using Non payé", "project", r.ID, "payment_status", r.PaymentStatus)
		p.PaymentStatus = PaymentUnpaid
	}

	if strings.TrimSpace(r.Tasks) != "" {
		if err := json.Unmarshal([]byte(r.Tasks), &p.Tasks); err != nil || p.Tasks == nil {
			logger.Warn("ignoring malformed project tasks", "project", r.ID, "error", err)
			p.Tasks = []SubTask{}
		}
	}
	if r.AttachmentsURL != nil && strings.TrimSpace(*r.AttachmentsURL) != "" {
		if err := json.Unmarshal([]byte(*r.AttachmentsURL), &p.Documents); err != nil || p.Documents == nil {
			logger.Warn("ignoring malformed project documents", "project", r.ID, "error", err)
			p.Documents = []Document{}
		}
	}
	return p
}
