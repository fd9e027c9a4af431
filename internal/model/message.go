package model

import "time"

const (
	MessageInvitation   = "invitation"
	MessageAnnouncement = "announcement"
	MessageNotification = "notification"
)

// Message is a directed inbox record. Invitations carry a project reference
// and the role title being offered.
type Message struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SenderID    uint      `gorm:"not null;index:idx_msg_sender" json:"senderId"`
	RecipientID uint      `gorm:"not null;index:idx_msg_recipient" json:"recipientId"`
	Type        string    `gorm:"type:varchar(16);not null" json:"type"`
	Subject     string    `gorm:"type:varchar(256);not null" json:"subject"`
	Content     string    `gorm:"type:text" json:"content"`
	Read        bool      `gorm:"default:false" json:"read"`
	Starred     bool      `gorm:"default:false" json:"starred"`
	ProjectID   *uint     `json:"projectId,omitempty"`
	RoleTitle   string    `gorm:"type:varchar(64)" json:"roleTitle,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`

	Sender    *User    `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Recipient *User    `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
	Project   *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

func (Message) TableName() string { return "messages" }
