package model

import "time"

const (
	ApplicationTypeMembership = "MEMBERSHIP"
	ApplicationTypeComponent  = "COMPONENT"
	ApplicationTypeDutyLeave  = "DL"
	ApplicationTypeQuery      = "QUERY"
	ApplicationTypeEvent      = "EVENT"
)

const (
	ApplicationPending  = "PENDING"
	ApplicationApproved = "APPROVED"
	ApplicationRejected = "REJECTED"
)

type Application struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Type      string    `gorm:"type:varchar(16);not null;index:idx_app_type" json:"applicationType"`
	Status    string    `gorm:"type:varchar(10);not null;default:PENDING;index:idx_app_status" json:"status"`
	Subject   string    `gorm:"type:varchar(256);not null" json:"subject"`
	Content   string    `gorm:"type:text" json:"content"`
	AuthorID  uint      `gorm:"not null;index:idx_app_author" json:"authorId"`
	ProjectID *uint     `json:"projectId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Author  *User    `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

func (Application) TableName() string { return "applications" }

func ValidApplicationType(t string) bool {
	switch t {
	case ApplicationTypeMembership, ApplicationTypeComponent,
		ApplicationTypeDutyLeave, ApplicationTypeQuery, ApplicationTypeEvent:
		return true
	}
	return false
}
