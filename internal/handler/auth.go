package handler

import (
	"net/http"

	"github.com/clubstack/backend/internal/middleware"
	"github.com/clubstack/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// POST /auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		RegNo    int    `json:"regno" binding:"required"`
		Year     string `json:"year"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Validation failed", "errors": err.Error()})
		return
	}

	_, err := h.authService.Signup(service.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		RegNo:    req.RegNo,
		Year:     req.Year,
	})
	if err != nil {
		code, msg := parseErrorCode(err)
		c.JSON(httpStatus(code), gin.H{"success": false, "message": msg})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "User registered successfully"})
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "email and password are required")
		return
	}

	user, token, expireAt, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"expireAt": expireAt,
		"user": gin.H{
			"id":       user.ID,
			"name":     user.Name,
			"username": user.Username,
			"email":    user.Email,
			"regno":    user.RegNo,
			"isAdmin":  user.IsAdmin,
			"isMember": user.IsMember,
		},
	})
}

// GET /auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		Unauthorized(c)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GET /auth/isAdmin
func (h *AuthHandler) IsAdmin(c *gin.Context) {
	p := middleware.GetPrincipal(c)
	c.JSON(http.StatusOK, gin.H{"isAdmin": p.IsAdmin})
}
