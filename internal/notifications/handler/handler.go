package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/primeauto/showroom-api/internal/config"
	"github.com/primeauto/showroom-api/internal/notifications"
	"github.com/primeauto/showroom-api/internal/notifications/repository"
	"github.com/primeauto/showroom-api/pkg/logger"
	"github.com/primeauto/showroom-api/pkg/middleware"
)

// NotificationHandler exposes the admin notification feed. The feed is thin
// enough that the handler talks to the repository directly.
type NotificationHandler struct {
	cfg  *config.Config
	repo repository.Repository
}

func NewNotificationHandler(cfg *config.Config, repo repository.Repository) *NotificationHandler {
	return &NotificationHandler{cfg: cfg, repo: repo}
}

// Register routes under /notifications (all admin-gated)
func (h *NotificationHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/notifications", middleware.AuthRequired(h.cfg), middleware.AdminOnly())
	g.GET("", h.List)
	g.POST("", h.Create)
}

func (h *NotificationHandler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		logger.Errorf("list notifications: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch notifications"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *NotificationHandler) Create(c *gin.Context) {
	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}
	n, err := h.repo.Create(c.Request.Context(), &notifications.Notification{Message: req.Message})
	if err != nil {
		logger.Errorf("create notification: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save notification"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "notification sent", "notification": n})
}
