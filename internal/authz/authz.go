// Package authz holds the authorization rules as pure predicates. Every
// handler routes its access decisions through here so the rules cannot
// drift between endpoints. Predicates take an explicit principal and
// already-loaded rows; they never touch the database.
package authz

import "github.com/clubstack/backend/internal/model"

// Principal is the authenticated identity behind a request.
type Principal struct {
	ID       uint
	IsAdmin  bool
	IsMember bool
	IsBanned bool
}

func FromUser(u *model.User) Principal {
	return Principal{ID: u.ID, IsAdmin: u.IsAdmin, IsMember: u.IsMember, IsBanned: u.IsBanned}
}

// CanViewProject: admins see everything; everyone else must lead the
// project or hold a role in it.
func CanViewProject(p Principal, project *model.Project) bool {
	if p.IsAdmin {
		return true
	}
	if project.LeadID == p.ID {
		return true
	}
	for _, r := range project.Roles {
		if r.UserID == p.ID {
			return true
		}
	}
	return false
}

// CanManageMembers gates the membership reconciliation write. Only the
// project lead or a global admin may touch the role set.
func CanManageMembers(p Principal, project *model.Project) bool {
	return p.IsAdmin || project.LeadID == p.ID
}

// CanViewApplication: authors see their own rows, admins see all. List
// endpoints must apply the same rule as a query filter, not a post-filter.
func CanViewApplication(p Principal, app *model.Application) bool {
	return p.IsAdmin || app.AuthorID == p.ID
}

// CanDecideApplication gates approve/reject.
func CanDecideApplication(p Principal) bool {
	return p.IsAdmin
}

// CanManageUsers gates promote/demote/remove/accept, regardless of target.
func CanManageUsers(p Principal) bool {
	return p.IsAdmin
}

// CanRespondToMessage: only the recipient may act on an inbox message.
func CanRespondToMessage(p Principal, msg *model.Message) bool {
	return msg.RecipientID == p.ID
}
