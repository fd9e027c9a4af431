package view

import (
	"time"

	"github.com/clubstack/backend/internal/model"
)

type PostAuthor struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

type FeedPost struct {
	ID            uint            `json:"id"`
	Title         string          `json:"title"`
	Content       string          `json:"content"`
	Category      string          `json:"category,omitempty"`
	Author        PostAuthor      `json:"author"`
	CreatedAt     string          `json:"createdAt"`
	LikesCount    int             `json:"likesCount"`
	CommentsCount int             `json:"commentsCount"`
	HasLiked      bool            `json:"hasLiked"`
	Media         model.MediaList `json:"media"`
}

// PostToFeed projects a post for the feed. hasLiked is true iff a like row
// exists for the viewing user.
func PostToFeed(p *model.Post, viewerID uint) FeedPost {
	fp := FeedPost{
		ID:            p.ID,
		Title:         p.Title,
		Content:       p.Content,
		Category:      p.Category,
		CreatedAt:     p.CreatedAt.UTC().Format(time.RFC3339),
		LikesCount:    len(p.Likes),
		CommentsCount: len(p.Comments),
		Media:         p.Media,
	}
	if fp.Media == nil {
		fp.Media = model.MediaList{}
	}
	if p.Author != nil {
		fp.Author = PostAuthor{ID: p.Author.ID, Username: p.Author.Username, Avatar: p.Author.Avatar}
	}
	for _, l := range p.Likes {
		if l.UserID == viewerID {
			fp.HasLiked = true
			break
		}
	}
	return fp
}

type CommentNode struct {
	ID         uint          `json:"id"`
	Content    string        `json:"content"`
	Author     PostAuthor    `json:"author"`
	CreatedAt  string        `json:"createdAt"`
	LikesCount int           `json:"likesCount"`
	HasLiked   bool          `json:"hasLiked"`
	Replies    []CommentNode `json:"replies"`
}

// CommentsToThread builds the nested reply tree from flat rows.
func CommentsToThread(comments []model.Comment, viewerID uint) []CommentNode {
	byParent := make(map[uint][]model.Comment)
	var roots []model.Comment
	for _, c := range comments {
		if c.ParentID == nil {
			roots = append(roots, c)
		} else {
			byParent[*c.ParentID] = append(byParent[*c.ParentID], c)
		}
	}

	var build func(c model.Comment) CommentNode
	build = func(c model.Comment) CommentNode {
		n := CommentNode{
			ID:         c.ID,
			Content:    c.Content,
			CreatedAt:  c.CreatedAt.UTC().Format(time.RFC3339),
			LikesCount: len(c.Likes),
			Replies:    []CommentNode{},
		}
		if c.Author != nil {
			n.Author = PostAuthor{ID: c.Author.ID, Username: c.Author.Username, Avatar: c.Author.Avatar}
		}
		for _, l := range c.Likes {
			if l.UserID == viewerID {
				n.HasLiked = true
				break
			}
		}
		for _, child := range byParent[c.ID] {
			n.Replies = append(n.Replies, build(child))
		}
		return n
	}

	out := make([]CommentNode, 0, len(roots))
	for _, r := range roots {
		out = append(out, build(r))
	}
	return out
}
