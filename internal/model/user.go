package model

import "time"

// Year of study, as stored on the user row.
const (
	YearFirst  = "FIRST"
	YearSecond = "SECOND"
	YearThird  = "THIRD"
	YearFourth = "FOURTH"
	YearFifth  = "FIFTH"
)

// User type classification shown in the admin directory. Admin takes
// precedence over member.
const (
	UserTypeAdmin     = "admin"
	UserTypeMember    = "member"
	UserTypeNonMember = "non-member"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(64);not null" json:"name"`
	Username     string    `gorm:"type:varchar(64)" json:"username"`
	Email        string    `gorm:"type:varchar(128);uniqueIndex:idx_email;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(128);not null" json:"-"`
	Avatar       string    `gorm:"type:varchar(512)" json:"avatar"`
	RegNo        int       `gorm:"uniqueIndex:idx_regno" json:"regno"`
	Year         string    `gorm:"type:varchar(10)" json:"year"`
	IsAdmin      bool      `gorm:"default:false" json:"isAdmin"`
	IsMember     bool      `gorm:"default:false" json:"isMember"`
	IsBanned     bool      `gorm:"default:false" json:"isBanned"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// Type classifies the user for directory views.
func (u *User) Type() string {
	switch {
	case u.IsAdmin:
		return UserTypeAdmin
	case u.IsMember:
		return UserTypeMember
	default:
		return UserTypeNonMember
	}
}

type UserBrief struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Email    string `json:"email,omitempty"`
}

func (u *User) Brief() UserBrief {
	return UserBrief{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Avatar:   u.Avatar,
		Email:    u.Email,
	}
}
