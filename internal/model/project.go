package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// TechStacks is an open tag set stored as a JSON column.
type TechStacks []string

func (t TechStacks) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal(t)
	return string(b), err
}

func (t *TechStacks) Scan(value interface{}) error {
	if value == nil {
		*t = TechStacks{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case string:
		bytes = []byte(v)
	case []byte:
		bytes = v
	}
	return json.Unmarshal(bytes, t)
}

type Project struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"type:varchar(128);not null" json:"name"`
	Description  string     `gorm:"type:text" json:"description"`
	Problem      string     `gorm:"type:text" json:"problem"`
	Approach     string     `gorm:"type:text" json:"approach"`
	DurationDays int        `gorm:"not null" json:"duration"`
	Budget       float64    `json:"budget"`
	TechStacks   TechStacks `gorm:"type:json" json:"techStacks"`
	LeadID       uint       `gorm:"not null;index:idx_lead_id" json:"leadId"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`

	Lead         *User         `gorm:"foreignKey:LeadID" json:"lead,omitempty"`
	Roles        []Role        `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"roles,omitempty"`
	Applications []Application `gorm:"foreignKey:ProjectID" json:"applications,omitempty"`
}

func (Project) TableName() string { return "projects" }

// Deadline is the instant the project is considered completed.
func (p *Project) Deadline() time.Time {
	return p.CreatedAt.Add(time.Duration(p.DurationDays) * 24 * time.Hour)
}
