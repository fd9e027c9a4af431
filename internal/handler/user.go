package handler

import (
	"net/http"

	"github.com/clubstack/backend/internal/middleware"
	"github.com/clubstack/backend/internal/service"
	"github.com/clubstack/backend/internal/view"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GET /users — member-facing directory
func (h *UserHandler) Directory(c *gin.Context) {
	rows, err := h.userService.Directory()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching users"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GET /admin/users/list
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching users"})
		return
	}

	rows := make([]view.AdminUserRow, 0, len(users))
	for i := range users {
		rows = append(rows, view.UserToAdminRow(&users[i]))
	}
	c.JSON(http.StatusOK, gin.H{"users": rows})
}

// POST /admin/users/:action  (promote | demote | remove | accept)
func (h *UserHandler) ApplyAction(c *gin.Context) {
	action := c.Param("action")
	switch action {
	case service.UserActionPromote, service.UserActionDemote,
		service.UserActionRemove, service.UserActionAccept:
	default:
		c.JSON(http.StatusNotFound, gin.H{"msg": "Not found"})
		return
	}

	var req struct {
		ID uint `json:"id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}

	admin := middleware.GetPrincipal(c)
	user, err := h.userService.ApplyAction(admin.ID, req.ID, action)
	if err != nil {
		code, msg := parseErrorCode(err)
		c.JSON(httpStatus(code), gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updatedUser": view.UserToAdminRow(user)})
}
