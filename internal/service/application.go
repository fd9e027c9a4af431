package service

import (
	"fmt"

	"github.com/clubstack/backend/internal/authz"
	"github.com/clubstack/backend/internal/model"
	"github.com/clubstack/backend/internal/notify"
	"gorm.io/gorm"
)

type ApplicationService struct {
	db       *gorm.DB
	notifier notify.Notifier
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{db: db, notifier: notify.NoopNotifier{}}
}

func (s *ApplicationService) SetNotifier(n notify.Notifier) {
	if n != nil {
		s.notifier = n
	}
}

// List returns the applications visible to the principal: all of them for
// an admin, otherwise own rows only, filtered at the query.
func (s *ApplicationService) List(p authz.Principal) ([]model.Application, error) {
	query := s.db.Model(&model.Application{})
	if !p.IsAdmin {
		query = query.Where("author_id = ?", p.ID)
	}
	var apps []model.Application
	if err := query.Preload("Author").Order("created_at desc").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

type ApplyInput struct {
	Type      string
	Subject   string
	Content   string
	ProjectID *uint
}

// Apply files a new application in PENDING state.
func (s *ApplicationService) Apply(p authz.Principal, in ApplyInput) (*model.Application, error) {
	if !model.ValidApplicationType(in.Type) {
		return nil, fmt.Errorf("40001:invalid application type %q", in.Type)
	}
	if in.Subject == "" {
		return nil, fmt.Errorf("40001:subject is required")
	}
	if in.ProjectID != nil {
		var count int64
		s.db.Model(&model.Project{}).Where("id = ?", *in.ProjectID).Count(&count)
		if count == 0 {
			return nil, fmt.Errorf("40401:Project not found")
		}
	}

	app := &model.Application{
		Type:      in.Type,
		Status:    model.ApplicationPending,
		Subject:   in.Subject,
		Content:   in.Content,
		AuthorID:  p.ID,
		ProjectID: in.ProjectID,
	}
	if err := s.db.Create(app).Error; err != nil {
		return nil, fmt.Errorf("50001:failed to submit application")
	}
	return app, nil
}

// Decide approves or rejects a pending application and notifies the
// author. Admin-only; checked here as well as at the route.
func (s *ApplicationService) Decide(p authz.Principal, id uint, approve bool) (*model.Application, error) {
	if !authz.CanDecideApplication(p) {
		return nil, fmt.Errorf("40101:Unauthorized")
	}
	var app model.Application
	if err := s.db.First(&app, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("40401:Application not found")
		}
		return nil, err
	}
	if app.Status != model.ApplicationPending {
		return nil, fmt.Errorf("40001:application already decided")
	}

	status := model.ApplicationRejected
	if approve {
		status = model.ApplicationApproved
	}
	// The status update and the member-flag flip for approved membership
	// applications must land together or not at all.
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&app).Update("status", status).Error; err != nil {
			return err
		}
		if approve && app.Type == model.ApplicationTypeMembership {
			if err := tx.Model(&model.User{}).Where("id = ?", app.AuthorID).Update("is_member", true).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("50001:failed to update application")
	}
	app.Status = status

	s.notifier.ApplicationDecided(notify.ApplicationDecidedEvent{
		ApplicationID: app.ID,
		Type:          app.Type,
		Subject:       app.Subject,
		Status:        status,
		AuthorID:      app.AuthorID,
		DeciderID:     p.ID,
	})
	return &app, nil
}
