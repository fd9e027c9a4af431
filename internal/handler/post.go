package handler

import (
	"net/http"
	"strconv"

	"github.com/clubstack/backend/internal/middleware"
	"github.com/clubstack/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// GET /posts?page=N
func (h *PostHandler) Feed(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	p := middleware.GetPrincipal(c)

	posts, hasMore, err := h.postService.Feed(p.ID, page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts, "hasMore": hasMore})
}

// POST /posts
func (h *PostHandler) Create(c *gin.Context) {
	var req struct {
		Title     string   `json:"title"`
		Content   string   `json:"content"`
		Category  string   `json:"category"`
		IsPrivate bool     `json:"isPrivate"`
		Media     []string `json:"media"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	p := middleware.GetPrincipal(c)
	post, err := h.postService.Create(p.ID, service.CreatePostInput{
		Title:     req.Title,
		Content:   req.Content,
		Category:  req.Category,
		IsPrivate: req.IsPrivate,
		Media:     req.Media,
	})
	if err != nil {
		FailError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// GET /posts/:id/comments
func (h *PostHandler) Comments(c *gin.Context) {
	p := middleware.GetPrincipal(c)
	thread, err := h.postService.Comments(parseID(c.Param("id")), p.ID)
	if err != nil {
		FailError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": thread})
}

// POST /posts/:id/comments
func (h *PostHandler) AddComment(c *gin.Context) {
	var req struct {
		Content  string `json:"content" binding:"required"`
		ParentID *uint  `json:"parentId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	p := middleware.GetPrincipal(c)
	comment, err := h.postService.AddComment(parseID(c.Param("id")), p.ID, req.ParentID, req.Content)
	if err != nil {
		FailError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// POST /posts/:id/like
func (h *PostHandler) ToggleLike(c *gin.Context) {
	p := middleware.GetPrincipal(c)
	hasLiked, err := h.postService.ToggleLike(parseID(c.Param("id")), p.ID)
	if err != nil {
		FailError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hasLiked": hasLiked})
}

// POST /comments/:id/like
func (h *PostHandler) ToggleCommentLike(c *gin.Context) {
	p := middleware.GetPrincipal(c)
	hasLiked, err := h.postService.ToggleCommentLike(parseID(c.Param("id")), p.ID)
	if err != nil {
		FailError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hasLiked": hasLiked})
}
