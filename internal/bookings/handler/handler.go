package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/primeauto/showroom-api/internal/bookings/service"
	"github.com/primeauto/showroom-api/internal/config"
	"github.com/primeauto/showroom-api/pkg/logger"
	"github.com/primeauto/showroom-api/pkg/middleware"
)

type createRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	PreferredDate string `json:"preferredDate"`
	Message       string `json:"message"`
	CarID         string `json:"carId"`
}

// BookingHandler exposes test-drive bookings. Creation is public (storefront
// visitors book test drives); listing and deletion are admin-only.
type BookingHandler struct {
	cfg *config.Config
	svc *service.Service
}

func NewBookingHandler(cfg *config.Config, svc *service.Service) *BookingHandler {
	return &BookingHandler{cfg: cfg, svc: svc}
}

// Register routes under /bookings
func (h *BookingHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/bookings")
	g.POST("", h.Create)

	admin := g.Group("", middleware.AuthRequired(h.cfg), middleware.AdminOnly())
	admin.GET("", h.List)
	admin.DELETE("/:id", h.Delete)
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	b, err := h.svc.Create(c.Request.Context(), service.CreateInput{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		PreferredDate: req.PreferredDate,
		Message:       req.Message,
		CarID:         req.CarID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrCarNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Errorf("create booking: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save booking"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "booking saved", "booking": b})
}

func (h *BookingHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		logger.Errorf("list bookings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch bookings"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *BookingHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		logger.Errorf("delete booking: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete booking"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking deleted"})
}
