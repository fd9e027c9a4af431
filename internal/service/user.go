package service

import (
	"fmt"

	"github.com/clubstack/backend/internal/model"
	"github.com/clubstack/backend/internal/notify"
	"github.com/clubstack/backend/internal/view"
	"gorm.io/gorm"
)

// User management actions available to admins. The route-level admin gate
// is the authorization boundary; these methods only mutate.
const (
	UserActionPromote = "promote"
	UserActionDemote  = "demote"
	UserActionRemove  = "remove"
	UserActionAccept  = "accept"
)

type UserService struct {
	db       *gorm.DB
	notifier notify.Notifier
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db, notifier: notify.NoopNotifier{}}
}

func (s *UserService) SetNotifier(n notify.Notifier) {
	if n != nil {
		s.notifier = n
	}
}

// ListAll returns every user row for the admin directory.
func (s *UserService) ListAll() ([]model.User, error) {
	var users []model.User
	if err := s.db.Order("created_at desc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Directory is the member-facing user list with led/joined project ids.
func (s *UserService) Directory() ([]view.DirectoryRow, error) {
	var users []model.User
	if err := s.db.Order("name").Find(&users).Error; err != nil {
		return nil, err
	}

	var roles []model.Role
	if err := s.db.Find(&roles).Error; err != nil {
		return nil, err
	}
	var projects []model.Project
	if err := s.db.Select("id", "lead_id").Find(&projects).Error; err != nil {
		return nil, err
	}

	leadsByUser := make(map[uint][]uint)
	for _, p := range projects {
		leadsByUser[p.LeadID] = append(leadsByUser[p.LeadID], p.ID)
	}
	rolesByUser := make(map[uint][]uint)
	for _, r := range roles {
		rolesByUser[r.UserID] = append(rolesByUser[r.UserID], r.ProjectID)
	}

	rows := make([]view.DirectoryRow, 0, len(users))
	for _, u := range users {
		row := view.DirectoryRow{
			ID:           u.ID,
			Name:         u.Name,
			RegNo:        u.RegNo,
			Avatar:       u.Avatar,
			LeadProjects: leadsByUser[u.ID],
			RoleProjects: rolesByUser[u.ID],
		}
		if row.LeadProjects == nil {
			row.LeadProjects = []uint{}
		}
		if row.RoleProjects == nil {
			row.RoleProjects = []uint{}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ApplyAction performs one of the admin user actions. Promote grants admin
// (and membership), demote drops back to member, remove strips both flags,
// accept grants membership.
func (s *UserService) ApplyAction(adminID, targetID uint, action string) (*model.User, error) {
	var user model.User
	if err := s.db.First(&user, targetID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("40401:User not found")
		}
		return nil, err
	}

	switch action {
	case UserActionPromote:
		user.IsAdmin = true
		user.IsMember = true
	case UserActionDemote:
		user.IsAdmin = false
	case UserActionRemove:
		user.IsAdmin = false
		user.IsMember = false
	case UserActionAccept:
		user.IsMember = true
	default:
		return nil, fmt.Errorf("40001:unknown action %q", action)
	}

	if err := s.db.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("50001:Error updating user")
	}
	s.notifier.MembershipChanged(notify.MembershipChangedEvent{
		UserID:  user.ID,
		AdminID: adminID,
		Action:  action,
	})
	return &user, nil
}

// SetBanned flips the ban flag. Banned users fail authentication outright.
func (s *UserService) SetBanned(targetID uint, banned bool) (*model.User, error) {
	var user model.User
	if err := s.db.First(&user, targetID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("40401:User not found")
		}
		return nil, err
	}
	user.IsBanned = banned
	if err := s.db.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("50001:Error updating user")
	}
	return &user, nil
}
