package model

import (
	"strings"
	"time"
)

// Role binds a user to a project under a free-text title. The title doubles
// as the membership marker, so "Member" is as valid as "Backend Developer".
// At most one row exists per (project, user) pair.
type Role struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"not null;uniqueIndex:uk_project_user" json:"projectId"`
	UserID    uint      `gorm:"not null;uniqueIndex:uk_project_user;index:idx_role_user" json:"userId"`
	Title     string    `gorm:"type:varchar(64);not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Role) TableName() string { return "roles" }

// RecommendedRoleTitles is a suggestion list, not an enum. Any non-empty
// title is accepted.
var RecommendedRoleTitles = []string{
	"Member",
	"Developer",
	"Designer",
	"Researcher",
	"Tester",
}

func ValidRoleTitle(title string) bool {
	return strings.TrimSpace(title) != ""
}
