package service

import (
	"fmt"
	"sort"

	"github.com/clubstack/backend/internal/authz"
	"github.com/clubstack/backend/internal/model"
	"gorm.io/gorm"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

type CreateProjectInput struct {
	Name          string
	Description   string
	Problem       string
	Approach      string
	DurationValue int
	DurationUnit  string // days, weeks, months
	Budget        float64
	TechStacks    []string
}

// DurationDays normalizes the submitted duration to days (months count as 30).
func (in CreateProjectInput) DurationDays() int {
	switch in.DurationUnit {
	case "weeks":
		return in.DurationValue * 7
	case "months":
		return in.DurationValue * 30
	default:
		return in.DurationValue
	}
}

// Create makes the caller the project lead. Lead membership is implicit:
// no Role row is written for the lead, so a later reconciliation cannot
// silently strip their access.
func (s *ProjectService) Create(p authz.Principal, in CreateProjectInput) (*model.Project, error) {
	if in.Name == "" || in.DurationDays() <= 0 {
		return nil, fmt.Errorf("40001:name and a positive duration are required")
	}
	project := &model.Project{
		Name:         in.Name,
		Description:  in.Description,
		Problem:      in.Problem,
		Approach:     in.Approach,
		DurationDays: in.DurationDays(),
		Budget:       in.Budget,
		TechStacks:   model.TechStacks(in.TechStacks),
		LeadID:       p.ID,
	}
	if err := s.db.Create(project).Error; err != nil {
		return nil, fmt.Errorf("50001:failed to create project")
	}
	s.db.Preload("Lead").First(project, project.ID)
	return project, nil
}

// List returns the projects visible to the principal: all of them for an
// admin, otherwise led-or-joined only. The membership restriction is a
// query filter, never a post-filter.
func (s *ProjectService) List(p authz.Principal) ([]model.Project, error) {
	query := s.db.Model(&model.Project{})
	if !p.IsAdmin {
		query = query.Where("lead_id = ? OR id IN (SELECT project_id FROM roles WHERE user_id = ?)", p.ID, p.ID)
	}
	var projects []model.Project
	if err := query.Preload("Lead").Preload("Roles").Order("created_at desc").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Get loads a project with members and applications, enforcing visibility.
func (s *ProjectService) Get(p authz.Principal, id uint) (*model.Project, error) {
	var project model.Project
	if err := s.db.Preload("Lead").Preload("Roles.User").Preload("Applications").First(&project, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("40401:Project not found")
		}
		return nil, err
	}
	if !authz.CanViewProject(p, &project) {
		return nil, fmt.Errorf("40101:Unauthorized")
	}
	return &project, nil
}

// ReconcileMembers replaces the project's entire Role set with the
// submitted map, atomically. An empty map legally clears every member.
// The lead is not filtered out: a lead submitted in the map gets a titled
// Role row alongside their implicit lead status.
func (s *ProjectService) ReconcileMembers(p authz.Principal, projectID uint, members map[uint]string) error {
	var project model.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("40401:Project not found")
		}
		return err
	}
	if !authz.CanManageMembers(p, &project) {
		return fmt.Errorf("40101:Unauthorized")
	}
	for _, title := range members {
		if !model.ValidRoleTitle(title) {
			return fmt.Errorf("40001:role title must not be empty")
		}
	}

	// Insert in a stable order so retries behave identically.
	userIDs := make([]uint, 0, len(members))
	for uid := range members {
		userIDs = append(userIDs, uid)
	}
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).Delete(&model.Role{}).Error; err != nil {
			return err
		}
		for _, uid := range userIDs {
			role := &model.Role{
				ProjectID: projectID,
				UserID:    uid,
				Title:     members[uid],
			}
			if err := tx.Create(role).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("50001:Failed to update members")
	}
	return nil
}

// Members returns the current Role rows of a project.
func (s *ProjectService) Members(projectID uint) ([]model.Role, error) {
	var roles []model.Role
	if err := s.db.Where("project_id = ?", projectID).Order("user_id").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// AddMember inserts a single Role row if the pair does not exist yet. Used
// by the invitation-accept flow; reconciliation does not go through here.
func (s *ProjectService) AddMember(projectID, userID uint, title string) error {
	if !model.ValidRoleTitle(title) {
		return fmt.Errorf("40001:role title must not be empty")
	}
	var count int64
	s.db.Model(&model.Role{}).Where("project_id = ? AND user_id = ?", projectID, userID).Count(&count)
	if count > 0 {
		return nil
	}
	role := &model.Role{ProjectID: projectID, UserID: userID, Title: title}
	if err := s.db.Create(role).Error; err != nil {
		return fmt.Errorf("50001:failed to add member")
	}
	return nil
}

func (s *ProjectService) IsMember(projectID, userID uint) bool {
	var count int64
	s.db.Model(&model.Role{}).Where("project_id = ? AND user_id = ?", projectID, userID).Count(&count)
	return count > 0
}
