package notify

import (
	"fmt"
	"log"

	"github.com/clubstack/backend/internal/model"
	"github.com/clubstack/backend/internal/sse"
	"gorm.io/gorm"
)

// Notifier pushes user-facing notifications. Delivery is best-effort:
// failures are logged, never propagated into the triggering request.
type Notifier interface {
	ApplicationDecided(ev ApplicationDecidedEvent)
	InvitationSent(ev InvitationSentEvent)
	InvitationAnswered(ev InvitationAnsweredEvent)
	MembershipChanged(ev MembershipChangedEvent)
}

// InboxNotifier persists notification messages and broadcasts them on the
// SSE hub so open inboxes update live.
type InboxNotifier struct {
	db  *gorm.DB
	hub *sse.Hub
}

func NewInboxNotifier(db *gorm.DB, hub *sse.Hub) *InboxNotifier {
	return &InboxNotifier{db: db, hub: hub}
}

func (n *InboxNotifier) deliver(msg *model.Message) {
	if err := n.db.Create(msg).Error; err != nil {
		log.Printf("notify: persist message: %v", err)
		return
	}
	if n.hub != nil {
		n.hub.Broadcast(msg.RecipientID, sse.Event{Type: msg.Type, Data: msg})
	}
}

func (n *InboxNotifier) ApplicationDecided(ev ApplicationDecidedEvent) {
	verb := "rejected"
	if ev.Status == model.ApplicationApproved {
		verb = "approved"
	}
	n.deliver(&model.Message{
		SenderID:    ev.DeciderID,
		RecipientID: ev.AuthorID,
		Type:        model.MessageNotification,
		Subject:     fmt.Sprintf("Your %s application was %s", ev.Type, verb),
		Content:     fmt.Sprintf("Application %q has been %s.", ev.Subject, verb),
	})
}

func (n *InboxNotifier) InvitationSent(ev InvitationSentEvent) {
	if n.hub == nil {
		return
	}
	var msg model.Message
	if err := n.db.Preload("Sender").Preload("Project").First(&msg, ev.MessageID).Error; err != nil {
		log.Printf("notify: load invitation %d: %v", ev.MessageID, err)
		return
	}
	n.hub.Broadcast(ev.RecipientID, sse.Event{Type: model.MessageInvitation, Data: &msg})
}

func (n *InboxNotifier) InvitationAnswered(ev InvitationAnsweredEvent) {
	verb := "declined"
	if ev.Accepted {
		verb = "accepted"
	}
	n.deliver(&model.Message{
		SenderID:    ev.RecipientID,
		RecipientID: ev.SenderID,
		Type:        model.MessageNotification,
		Subject:     fmt.Sprintf("Invitation %s", verb),
		Content:     fmt.Sprintf("Your invitation to join %q as %s was %s.", ev.ProjectName, ev.RoleTitle, verb),
		ProjectID:   &ev.ProjectID,
	})
}

func (n *InboxNotifier) MembershipChanged(ev MembershipChangedEvent) {
	var subject, content string
	switch ev.Action {
	case "accept":
		subject = "Welcome to the club"
		content = "Your membership has been approved."
	case "promote":
		subject = "You are now an admin"
		content = "An administrator granted you admin rights."
	case "demote":
		subject = "Admin rights removed"
		content = "An administrator revoked your admin rights. You remain a member."
	case "remove":
		subject = "Membership removed"
		content = "An administrator removed you from the club members."
	default:
		return
	}
	n.deliver(&model.Message{
		SenderID:    ev.AdminID,
		RecipientID: ev.UserID,
		Type:        model.MessageNotification,
		Subject:     subject,
		Content:     content,
	})
}

// NoopNotifier drops everything. Used in tests and when notifications are
// disabled.
type NoopNotifier struct{}

func (NoopNotifier) ApplicationDecided(ApplicationDecidedEvent) {}
func (NoopNotifier) InvitationSent(InvitationSentEvent)         {}
func (NoopNotifier) InvitationAnswered(InvitationAnsweredEvent) {}
func (NoopNotifier) MembershipChanged(MembershipChangedEvent)   {}
