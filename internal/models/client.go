package models

import (
	"slices"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Client is a customer or prospect. Projects refer to it by display name.
type Client struct {
	ID        string       `json:"id"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	Company   string       `json:"company,omitempty"`
	Email     string       `json:"email"`
	Phone     string       `json:"phone"`
	Address   string       `json:"address"`
	Status    ClientStatus `json:"status"`
	Tags      []string     `json:"tags"`
	DateAdded time.Time    `json:"date_added"`
}

// FullName is the name projects use to reference the client.
func (c Client) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// HasTag reports whether the client carries tag, ignoring case.
func (c Client) HasTag(tag string) bool {
	return slices.ContainsFunc(c.Tags, func(t string) bool { return strings.EqualFold(t, tag) })
}

func (c Client) Clone() Client {
	c.Tags = slices.Clone(c.Tags)
	return c
}

type ClientRow struct {
	ID        string                      `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time                   `gorm:"index" json:"created_at"`
	UpdatedAt time.Time                   `json:"updated_at"`
	FirstName string                      `gorm:"size:100;not null" json:"first_name"`
	LastName  string                      `gorm:"size:100;not null" json:"last_name"`
	Company   string                      `gorm:"size:255" json:"company"`
	Email     string                      `gorm:"size:255" json:"email"`
	Phone     string                      `gorm:"size:50" json:"phone"`
	Address   string                      `gorm:"type:text" json:"address"`
	Status    string                      `gorm:"size:20;not null" json:"status"`
	Tags      datatypes.JSONSlice[string] `json:"tags"`
}

func (ClientRow) TableName() string { return "clients" }

func (r ClientRow) Columns() map[string]any {
	return map[string]any{
		"first_name": r.FirstName,
		"last_name":  r.LastName,
		"company":    r.Company,
		"email":      r.Email,
		"phone":      r.Phone,
		"address":    r.Address,
		"status":     r.Status,
		"tags":       r.Tags,
	}
}

func ClientToRow(c Client) ClientRow {
	tags := slices.Clone(c.Tags)
	if tags == nil {
		tags = []string{}
	}
	return ClientRow{
		ID:        c.ID,
		CreatedAt: c.DateAdded,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Company:   c.Company,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		Status:    string(c.Status),
		Tags:      datatypes.JSONSlice[string](tags),
	}
}

// ClientFromRow rebuilds a client; an unknown status reads as Prospect.
func ClientFromRow(r ClientRow) Client {
	status := ClientStatus(r.Status)
	if !status.Valid() {
		status = ClientStatusProspect
	}
	tags := []string(slices.Clone(r.Tags))
	if tags == nil {
		tags = []string{}
	}
	return Client{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Company:   r.Company,
		Email:     r.Email,
		Phone:     r.Phone,
		Address:   r.Address,
		Status:    status,
		Tags:      tags,
		DateAdded: r.CreatedAt,
	}
}
