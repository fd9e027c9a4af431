package handler

import (
	"net/http"

	"github.com/clubstack/backend/internal/middleware"
	"github.com/clubstack/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	appService *service.ApplicationService
}

func NewApplicationHandler(appService *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{appService: appService}
}

// GET /applications — own rows, or all of them for admins
func (h *ApplicationHandler) List(c *gin.Context) {
	p := middleware.GetPrincipal(c)
	apps, err := h.appService.List(p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to list applications"})
		return
	}
	c.JSON(http.StatusOK, apps)
}

// POST /applications
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req struct {
		Type      string `json:"applicationType" binding:"required"`
		Subject   string `json:"subject" binding:"required"`
		Content   string `json:"content"`
		ProjectID *uint  `json:"projectId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "applicationType and subject are required")
		return
	}

	p := middleware.GetPrincipal(c)
	app, err := h.appService.Apply(p, service.ApplyInput{
		Type:      req.Type,
		Subject:   req.Subject,
		Content:   req.Content,
		ProjectID: req.ProjectID,
	})
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// POST /applications/:id/decide
func (h *ApplicationHandler) Decide(c *gin.Context) {
	var req struct {
		Approve *bool `json:"approve" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "approve is required")
		return
	}

	p := middleware.GetPrincipal(c)
	app, err := h.appService.Decide(p, parseID(c.Param("id")), *req.Approve)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}
