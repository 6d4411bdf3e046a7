package models

import "time"

// Website is a bookmarked resource.
type Website struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	Tag         string `json:"tag,omitempty"`
}

func (w Website) Clone() Website { return w }

type WebsiteRow struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	URL         string    `gorm:"size:2048;not null" json:"url"`
	Description string    `gorm:"type:text" json:"description"`
	Tag         string    `gorm:"size:100" json:"tag"`
}

func (WebsiteRow) TableName() string { return "websites" }

func (r WebsiteRow) Columns() map[string]any {
	return map[string]any{
		"name":        r.Name,
		"url":         r.URL,
		"description": r.Description,
		"tag":         r.Tag,
	}
}

func WebsiteToRow(w Website) WebsiteRow {
	return WebsiteRow{ID: w.ID, Name: w.Name, URL: w.URL, Description: w.Description, Tag: w.Tag}
}

func WebsiteFromRow(r WebsiteRow) Website {
	return Website{ID: r.ID, Name: r.Name, URL: r.URL, Description: r.Description, Tag: r.Tag}
}
