package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/primeauto/showroom-api/internal/admins/service"
	"github.com/primeauto/showroom-api/internal/config"
	"github.com/primeauto/showroom-api/internal/tokens"
	"github.com/primeauto/showroom-api/pkg/logger"
	"github.com/primeauto/showroom-api/pkg/middleware"
)

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler holds dependencies
type AuthHandler struct {
	cfg *config.Config
	svc *service.Service
}

func NewAuthHandler(cfg *config.Config, svc *service.Service) *AuthHandler {
	return &AuthHandler{cfg: cfg, svc: svc}
}

// Register routes under /auth
func (h *AuthHandler) Register(rg *gin.RouterGroup) {
	a := rg.Group("/auth")
	a.POST("/register", h.RegisterAdmin)
	a.POST("/login", h.Login)
	a.GET("/dashboard", middleware.AuthRequired(h.cfg), middleware.AdminOnly(), h.Dashboard)
}

// RegisterAdmin creates the admin account used by the dashboard.
func (h *AuthHandler) RegisterAdmin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}
	a, err := h.svc.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "admin already exists"})
			return
		}
		logger.Errorf("admin register: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register admin"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "admin registered", "admin": a})
}

// Login verifies credentials and returns a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}
	token, a, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		logger.Errorf("admin login: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"admin": gin.H{"id": a.ID.Hex(), "email": a.Email, "role": a.Role},
	})
}

// Dashboard echoes the verified identity back to the admin UI.
func (h *AuthHandler) Dashboard(c *gin.Context) {
	v, _ := c.Get(middleware.ClaimsKey)
	claims, _ := v.(*tokens.Claims)
	c.JSON(http.StatusOK, gin.H{
		"admin": gin.H{"id": claims.ID, "email": claims.Email, "role": claims.Role},
	})
}
