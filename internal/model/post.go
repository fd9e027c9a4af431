package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// MediaList holds base64-encoded attachments as a JSON column. Encoding is
// the client's concern; the backend stores them opaquely.
type MediaList []string

func (m MediaList) Value() (driver.Value, error) {
	if m == nil {
		return "[]", nil
	}
	b, err := json.Marshal(m)
	return string(b), err
}

func (m *MediaList) Scan(value interface{}) error {
	if value == nil {
		*m = MediaList{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case string:
		bytes = []byte(v)
	case []byte:
		bytes = v
	}
	return json.Unmarshal(bytes, m)
}

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuthorID  uint      `gorm:"not null;index:idx_post_author" json:"authorId"`
	Title     string    `gorm:"type:varchar(256);not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Category  string    `gorm:"type:varchar(32)" json:"category"`
	IsPrivate bool      `gorm:"default:false" json:"isPrivate"`
	Media     MediaList `gorm:"type:json" json:"media"`
	CreatedAt time.Time `json:"createdAt"`

	Author   *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
	Likes    []Like    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"likes,omitempty"`
}

func (Post) TableName() string { return "posts" }

// Comment nests beneath a post via ParentID (nil for top-level).
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index:idx_comment_post" json:"postId"`
	AuthorID  uint      `gorm:"not null" json:"authorId"`
	ParentID  *uint     `gorm:"index:idx_comment_parent" json:"parentId,omitempty"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`

	Author *User  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Likes  []Like `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"likes,omitempty"`
}

func (Comment) TableName() string { return "comments" }

// Like is a membership row: its existence for (user, post) or
// (user, comment) is what hasLiked reports.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uk_user_post;uniqueIndex:uk_user_comment" json:"userId"`
	PostID    *uint     `gorm:"uniqueIndex:uk_user_post" json:"postId,omitempty"`
	CommentID *uint     `gorm:"uniqueIndex:uk_user_comment" json:"commentId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Like) TableName() string { return "likes" }
