package handler

import (
	"net/http"

	"github.com/clubstack/backend/internal/middleware"
	"github.com/clubstack/backend/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

// POST /admin/stats — admins get global counts, members their own slice.
// totalUsers stays zero for non-admins.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	p := middleware.GetPrincipal(c)

	stats := gin.H{
		"totalUsers":   int64(0),
		"applications": int64(0),
		"projects":     int64(0),
		"posts":        int64(0),
	}

	var posts int64
	h.db.Model(&model.Post{}).Count(&posts)
	stats["posts"] = posts

	var applications, projects int64
	if p.IsAdmin {
		var totalUsers int64
		h.db.Model(&model.User{}).Count(&totalUsers)
		stats["totalUsers"] = totalUsers
		h.db.Model(&model.Application{}).Count(&applications)
		h.db.Model(&model.Project{}).Count(&projects)
	} else {
		h.db.Model(&model.Application{}).Where("author_id = ?", p.ID).Count(&applications)
		h.db.Model(&model.Project{}).
			Where("lead_id = ? OR id IN (SELECT project_id FROM roles WHERE user_id = ?)", p.ID, p.ID).
			Count(&projects)
	}
	stats["applications"] = applications
	stats["projects"] = projects

	c.JSON(http.StatusOK, stats)
}
