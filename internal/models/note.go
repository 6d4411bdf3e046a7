package models

import (
	"slices"
	"time"

	"gorm.io/datatypes"
)

type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

func (n Note) Clone() Note {
	n.Tags = slices.Clone(n.Tags)
	return n
}

type NoteRow struct {
	ID        string                      `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time                   `gorm:"index" json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
	Title     string                      `gorm:"size:255;not null" json:"title"`
	Text      string                      `gorm:"type:text" json:"text"`
	Tags      datatypes.JSONSlice[string] `json:"tags"`
}

func (NoteRow) TableName() string { return "notes" }

func (r NoteRow) Columns() map[string]any {
	return map[string]any{
		"title": r.Title,
		"text":  r.Text,
		"tags":  r.Tags,
	}
}

func NoteToRow(n Note) NoteRow {
	tags := slices.Clone(n.Tags)
	if tags == nil {
		tags = []string{}
	}
	return NoteRow{
		ID:        n.ID,
		CreatedAt: n.CreatedAt,
		Title:     n.Title,
		Text:      n.Text,
		Tags:      datatypes.JSONSlice[string](tags),
	}
}

func NoteFromRow(r NoteRow) Note {
	tags := []string(slices.Clone(r.Tags))
	if tags == nil {
		tags = []string{}
	}
	return Note{ID: r.ID, Title: r.Title, Text: r.Text, Tags: tags, CreatedAt: r.CreatedAt}
}
