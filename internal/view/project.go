// Package view shapes store rows into response payloads. Derived fields
// (status, progress, user type, hasLiked) are computed here and nowhere
// else, so every endpoint reports them identically.
package view

import (
	"time"

	"github.com/clubstack/backend/internal/model"
)

const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// ProjectStatus: completed once the deadline has passed, active up to and
// including the deadline itself.
func ProjectStatus(p *model.Project, now time.Time) string {
	if now.After(p.Deadline()) {
		return StatusCompleted
	}
	return StatusActive
}

// ProjectProgress is the elapsed fraction of the project duration as a
// whole percentage, clamped to [0, 100]. Uses true elapsed time rather
// than calendar day-of-month so it survives month boundaries.
func ProjectProgress(p *model.Project, now time.Time) int {
	total := p.Deadline().Sub(p.CreatedAt)
	if total <= 0 {
		return 100
	}
	elapsed := now.Sub(p.CreatedAt)
	if elapsed <= 0 {
		return 0
	}
	pct := int(elapsed * 100 / total)
	if pct > 100 {
		return 100
	}
	return pct
}

type ProjectSummary struct {
	ID           uint             `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	DurationDays int              `json:"duration"`
	Budget       float64          `json:"budget"`
	TechStacks   model.TechStacks `json:"techStacks"`
	Status       string           `json:"status"`
	Progress     int              `json:"progress"`
	MemberCount  int              `json:"memberCount"`
	CreatedAt    time.Time        `json:"createdAt"`
	Lead         *model.UserBrief `json:"lead,omitempty"`
}

func ProjectToSummary(p *model.Project, now time.Time) ProjectSummary {
	s := ProjectSummary{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		DurationDays: p.DurationDays,
		Budget:       p.Budget,
		TechStacks:   p.TechStacks,
		Status:       ProjectStatus(p, now),
		Progress:     ProjectProgress(p, now),
		MemberCount:  len(p.Roles),
		CreatedAt:    p.CreatedAt,
	}
	if p.Lead != nil {
		b := p.Lead.Brief()
		s.Lead = &b
	}
	return s
}

type ProjectMember struct {
	UserID   uint   `json:"userId"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar,omitempty"`
	Role     string `json:"role"`
	JoinedAt string `json:"joinedAt"`
}

type ProjectDetail struct {
	ProjectSummary
	Problem      string              `json:"problem"`
	Approach     string              `json:"approach"`
	Members      []ProjectMember     `json:"members"`
	Applications []model.Application `json:"applications"`
}

func ProjectToDetail(p *model.Project, now time.Time) ProjectDetail {
	d := ProjectDetail{
		ProjectSummary: ProjectToSummary(p, now),
		Problem:        p.Problem,
		Approach:       p.Approach,
		Members:        make([]ProjectMember, 0, len(p.Roles)),
		Applications:   p.Applications,
	}
	if d.Applications == nil {
		d.Applications = []model.Application{}
	}
	for _, r := range p.Roles {
		m := ProjectMember{
			UserID:   r.UserID,
			Role:     r.Title,
			JoinedAt: r.CreatedAt.UTC().Format(time.RFC3339),
		}
		if r.User != nil {
			m.Name = r.User.Name
			m.Avatar = r.User.Avatar
		}
		d.Members = append(d.Members, m)
	}
	return d
}
