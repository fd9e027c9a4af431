package notify

// ApplicationDecidedEvent is sent when an admin approves or rejects an
// application.
type ApplicationDecidedEvent struct {
	ApplicationID uint
	Type          string
	Subject       string
	Status        string
	AuthorID      uint
	DeciderID     uint
}

// InvitationSentEvent is sent when a lead or admin invites a user into a
// project. The inbox message row already exists; this only drives the
// live stream.
type InvitationSentEvent struct {
	MessageID   uint
	ProjectID   uint
	ProjectName string
	RoleTitle   string
	SenderID    uint
	RecipientID uint
}

// InvitationAnsweredEvent is sent back to the inviter when the recipient
// accepts or declines.
type InvitationAnsweredEvent struct {
	ProjectID   uint
	ProjectName string
	RoleTitle   string
	Accepted    bool
	RecipientID uint // the invited user, who answered
	SenderID    uint // the original inviter, who gets notified
}

// MembershipChangedEvent is sent when an admin changes a user's standing
// (accept into the club, promote, demote, remove).
type MembershipChangedEvent struct {
	UserID  uint
	AdminID uint
	Action  string // accept, promote, demote, remove
}
