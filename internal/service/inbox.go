package service

import (
	"fmt"
	"sort"

	"github.com/clubstack/backend/internal/authz"
	"github.com/clubstack/backend/internal/model"
	"github.com/clubstack/backend/internal/notify"
	"gorm.io/gorm"
)

type InboxService struct {
	db       *gorm.DB
	projects *ProjectService
	notifier notify.Notifier
}

func NewInboxService(db *gorm.DB, projects *ProjectService) *InboxService {
	return &InboxService{db: db, projects: projects, notifier: notify.NoopNotifier{}}
}

func (s *InboxService) SetNotifier(n notify.Notifier) {
	if n != nil {
		s.notifier = n
	}
}

// List merges sent and received messages, newest first.
func (s *InboxService) List(p authz.Principal) ([]model.Message, error) {
	var in, out []model.Message
	if err := s.db.Preload("Sender").Preload("Project").Where("recipient_id = ?", p.ID).Find(&in).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("Sender").Preload("Project").Where("sender_id = ?", p.ID).Find(&out).Error; err != nil {
		return nil, err
	}

	merged := append(in, out...)
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	return merged, nil
}

type InviteInput struct {
	ProjectID   uint
	RecipientID uint
	RoleTitle   string
	Content     string
}

// Invite sends a project invitation. Only the project lead or an admin
// may invite; the offered title must be usable as a Role title later.
func (s *InboxService) Invite(p authz.Principal, in InviteInput) (*model.Message, error) {
	var project model.Project
	if err := s.db.First(&project, in.ProjectID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("40401:Project not found")
		}
		return nil, err
	}
	if !authz.CanManageMembers(p, &project) {
		return nil, fmt.Errorf("40101:Unauthorized")
	}
	if !model.ValidRoleTitle(in.RoleTitle) {
		return nil, fmt.Errorf("40001:role title must not be empty")
	}
	var count int64
	s.db.Model(&model.User{}).Where("id = ?", in.RecipientID).Count(&count)
	if count == 0 {
		return nil, fmt.Errorf("40401:User not found")
	}

	msg := &model.Message{
		SenderID:    p.ID,
		RecipientID: in.RecipientID,
		Type:        model.MessageInvitation,
		Subject:     fmt.Sprintf("Invitation to join %s", project.Name),
		Content:     in.Content,
		ProjectID:   &in.ProjectID,
		RoleTitle:   in.RoleTitle,
	}
	if err := s.db.Create(msg).Error; err != nil {
		return nil, fmt.Errorf("50001:failed to send invitation")
	}

	s.notifier.InvitationSent(notify.InvitationSentEvent{
		MessageID:   msg.ID,
		ProjectID:   project.ID,
		ProjectName: project.Name,
		RoleTitle:   in.RoleTitle,
		SenderID:    p.ID,
		RecipientID: in.RecipientID,
	})
	return msg, nil
}

// Respond accepts or declines an invitation. Accepting joins the project
// under the offered title (a no-op if the Role row already exists); either
// way the inviter is notified.
func (s *InboxService) Respond(p authz.Principal, messageID uint, accept bool) error {
	var msg model.Message
	if err := s.db.First(&msg, messageID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("40401:Message not found")
		}
		return err
	}
	if !authz.CanRespondToMessage(p, &msg) {
		return fmt.Errorf("40101:Unauthorized")
	}
	if msg.Type != model.MessageInvitation || msg.ProjectID == nil {
		return fmt.Errorf("40001:message is not an invitation")
	}

	var project model.Project
	if err := s.db.First(&project, *msg.ProjectID).Error; err != nil {
		return fmt.Errorf("40401:Project not found")
	}

	if accept {
		title := msg.RoleTitle
		if title == "" {
			title = "Member"
		}
		if err := s.projects.AddMember(project.ID, p.ID, title); err != nil {
			return err
		}
	}

	s.db.Model(&msg).Update("read", true)

	s.notifier.InvitationAnswered(notify.InvitationAnsweredEvent{
		ProjectID:   project.ID,
		ProjectName: project.Name,
		RoleTitle:   msg.RoleTitle,
		Accepted:    accept,
		RecipientID: p.ID,
		SenderID:    msg.SenderID,
	})
	return nil
}

// MarkRead flags a received message as read.
func (s *InboxService) MarkRead(p authz.Principal, messageID uint) error {
	result := s.db.Model(&model.Message{}).
		Where("id = ? AND recipient_id = ?", messageID, p.ID).
		Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("40401:Message not found")
	}
	return nil
}
