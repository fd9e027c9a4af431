package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/clubstack/backend/internal/middleware"
	"github.com/clubstack/backend/internal/service"
	"github.com/clubstack/backend/internal/view"
	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectService *service.ProjectService
}

func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// POST /projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required,max=128"`
		Description string `json:"description"`
		Problem     string `json:"problem"`
		Approach    string `json:"approach"`
		Duration    struct {
			Value string `json:"value" binding:"required"`
			Unit  string `json:"unit" binding:"required,oneof=days weeks months"`
		} `json:"duration" binding:"required"`
		Budget     string   `json:"budget"`
		TechStacks []string `json:"techStacks"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid project payload: "+err.Error())
		return
	}

	durationValue, err := strconv.Atoi(req.Duration.Value)
	if err != nil || durationValue <= 0 {
		BadRequest(c, "duration value must be a positive number")
		return
	}
	var budget float64
	if req.Budget != "" {
		budget, err = strconv.ParseFloat(req.Budget, 64)
		if err != nil || budget < 0 {
			BadRequest(c, "budget must be a non-negative number")
			return
		}
	}

	p := middleware.GetPrincipal(c)
	project, err := h.projectService.Create(p, service.CreateProjectInput{
		Name:          req.Name,
		Description:   req.Description,
		Problem:       req.Problem,
		Approach:      req.Approach,
		DurationValue: durationValue,
		DurationUnit:  req.Duration.Unit,
		Budget:        budget,
		TechStacks:    req.TechStacks,
	})
	if err != nil {
		Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, view.ProjectToSummary(project, time.Now()))
}

// GET /projects
func (h *ProjectHandler) List(c *gin.Context) {
	p := middleware.GetPrincipal(c)
	projects, err := h.projectService.List(p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to list projects"})
		return
	}

	now := time.Now()
	list := make([]view.ProjectSummary, 0, len(projects))
	for i := range projects {
		list = append(list, view.ProjectToSummary(&projects[i], now))
	}
	c.JSON(http.StatusOK, list)
}

// GET /projects/:id
func (h *ProjectHandler) GetDetail(c *gin.Context) {
	p := middleware.GetPrincipal(c)
	project, err := h.projectService.Get(p, parseID(c.Param("id")))
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view.ProjectToDetail(project, time.Now()))
}

// POST /projects/:id/members
func (h *ProjectHandler) ReconcileMembers(c *gin.Context) {
	var req struct {
		Members map[string]string `json:"members"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid members payload")
		return
	}

	// A missing or empty map is a legal "remove everyone" request.
	members := make(map[uint]string, len(req.Members))
	for idStr, title := range req.Members {
		id := parseID(idStr)
		if id == 0 {
			BadRequest(c, "invalid user id "+idStr)
			return
		}
		members[id] = title
	}

	p := middleware.GetPrincipal(c)
	if err := h.projectService.ReconcileMembers(p, parseID(c.Param("id")), members); err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Members updated successfully"})
}
