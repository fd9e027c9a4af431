package service

import (
	"fmt"

	"github.com/clubstack/backend/internal/model"
	"github.com/clubstack/backend/internal/view"
	"gorm.io/gorm"
)

const feedPageSize = 10

type PostService struct {
	db *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

// Feed returns one page of the feed, newest first, with hasLiked computed
// for the viewing user.
func (s *PostService) Feed(viewerID uint, page int) ([]view.FeedPost, bool, error) {
	if page < 1 {
		page = 1
	}

	var total int64
	s.db.Model(&model.Post{}).Count(&total)

	var posts []model.Post
	err := s.db.Preload("Author").Preload("Likes").Preload("Comments").
		Order("created_at desc").
		Offset((page - 1) * feedPageSize).Limit(feedPageSize).
		Find(&posts).Error
	if err != nil {
		return nil, false, err
	}

	out := make([]view.FeedPost, 0, len(posts))
	for i := range posts {
		out = append(out, view.PostToFeed(&posts[i], viewerID))
	}
	hasMore := total > int64(page*feedPageSize)
	return out, hasMore, nil
}

type CreatePostInput struct {
	Title     string
	Content   string
	Category  string
	IsPrivate bool
	Media     []string
}

func (s *PostService) Create(authorID uint, in CreatePostInput) (*model.Post, error) {
	if in.Title == "" || in.Content == "" || in.Category == "" {
		return nil, fmt.Errorf("40001:Missing required fields")
	}
	post := &model.Post{
		AuthorID:  authorID,
		Title:     in.Title,
		Content:   in.Content,
		Category:  in.Category,
		IsPrivate: in.IsPrivate,
		Media:     model.MediaList(in.Media),
	}
	if err := s.db.Create(post).Error; err != nil {
		return nil, fmt.Errorf("50001:Failed to create post")
	}
	return post, nil
}

// Comments returns the nested comment thread of a post.
func (s *PostService) Comments(postID, viewerID uint) ([]view.CommentNode, error) {
	var count int64
	s.db.Model(&model.Post{}).Where("id = ?", postID).Count(&count)
	if count == 0 {
		return nil, fmt.Errorf("40401:Post not found")
	}

	var comments []model.Comment
	err := s.db.Preload("Author").Preload("Likes").
		Where("post_id = ?", postID).
		Order("created_at asc").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return view.CommentsToThread(comments, viewerID), nil
}

// AddComment appends a comment, optionally nested under a parent of the
// same post.
func (s *PostService) AddComment(postID, authorID uint, parentID *uint, content string) (*model.Comment, error) {
	if content == "" {
		return nil, fmt.Errorf("40001:Missing required fields")
	}
	var count int64
	s.db.Model(&model.Post{}).Where("id = ?", postID).Count(&count)
	if count == 0 {
		return nil, fmt.Errorf("40401:Post not found")
	}
	if parentID != nil {
		var parent model.Comment
		if err := s.db.First(&parent, *parentID).Error; err != nil || parent.PostID != postID {
			return nil, fmt.Errorf("40401:Parent comment not found")
		}
	}

	comment := &model.Comment{
		PostID:   postID,
		AuthorID: authorID,
		ParentID: parentID,
		Content:  content,
	}
	if err := s.db.Create(comment).Error; err != nil {
		return nil, fmt.Errorf("50001:Failed to add comment")
	}
	return comment, nil
}

// ToggleLike flips the like row for (user, post) and returns the new
// hasLiked state.
func (s *PostService) ToggleLike(postID, userID uint) (bool, error) {
	var count int64
	s.db.Model(&model.Post{}).Where("id = ?", postID).Count(&count)
	if count == 0 {
		return false, fmt.Errorf("40401:Post not found")
	}

	result := s.db.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&model.Like{})
	if result.Error != nil {
		return false, fmt.Errorf("50001:Failed to update like")
	}
	if result.RowsAffected > 0 {
		return false, nil
	}
	like := &model.Like{UserID: userID, PostID: &postID}
	if err := s.db.Create(like).Error; err != nil {
		return false, fmt.Errorf("50001:Failed to update like")
	}
	return true, nil
}

// ToggleCommentLike is ToggleLike for comments.
func (s *PostService) ToggleCommentLike(commentID, userID uint) (bool, error) {
	var count int64
	s.db.Model(&model.Comment{}).Where("id = ?", commentID).Count(&count)
	if count == 0 {
		return false, fmt.Errorf("40401:Comment not found")
	}

	result := s.db.Where("user_id = ? AND comment_id = ?", userID, commentID).Delete(&model.Like{})
	if result.Error != nil {
		return false, fmt.Errorf("50001:Failed to update like")
	}
	if result.RowsAffected > 0 {
		return false, nil
	}
	like := &model.Like{UserID: userID, CommentID: &commentID}
	if err := s.db.Create(like).Error; err != nil {
		return false, fmt.Errorf("50001:Failed to update like")
	}
	return true, nil
}
