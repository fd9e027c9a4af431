package view

import "github.com/clubstack/backend/internal/model"

// AdminUserRow is the admin directory projection. Type is derived, never
// stored: admin wins over member.
type AdminUserRow struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	RegNo    int    `json:"regno"`
	Year     string `json:"year"`
	IsAdmin  bool   `json:"isAdmin"`
	IsMember bool   `json:"isMember"`
	IsBanned bool   `json:"isBanned"`
	Type     string `json:"type"`
}

func UserToAdminRow(u *model.User) AdminUserRow {
	return AdminUserRow{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Username: u.Username,
		Avatar:   u.Avatar,
		RegNo:    u.RegNo,
		Year:     u.Year,
		IsAdmin:  u.IsAdmin,
		IsMember: u.IsMember,
		IsBanned: u.IsBanned,
		Type:     u.Type(),
	}
}

// DirectoryRow is the member-facing user list: enough to pick teammates,
// nothing sensitive.
type DirectoryRow struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	RegNo        int    `json:"regno"`
	Avatar       string `json:"avatar,omitempty"`
	LeadProjects []uint `json:"leadProjects"`
	RoleProjects []uint `json:"roleProjects"`
}
