package handler

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/primeauto/showroom-api/internal/cars/service"
	"github.com/primeauto/showroom-api/internal/config"
	"github.com/primeauto/showroom-api/pkg/logger"
	"github.com/primeauto/showroom-api/pkg/middleware"
)

// CarHandler exposes the inventory over HTTP. Reads are public; writes are
// admin-gated and accept multipart forms with an images[] file field.
type CarHandler struct {
	cfg *config.Config
	svc *service.Service
}

func NewCarHandler(cfg *config.Config, svc *service.Service) *CarHandler {
	return &CarHandler{cfg: cfg, svc: svc}
}

// Register routes under /cars
func (h *CarHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/cars")
	g.GET("", h.List)
	g.GET("/:id", h.Get)

	admin := g.Group("", middleware.AuthRequired(h.cfg), middleware.AdminOnly())
	admin.POST("", h.Create)
	admin.PUT("/:id", h.Update)
	admin.DELETE("/:id", h.Delete)
}

func (h *CarHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		logger.Errorf("list cars: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch cars"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CarHandler) Get(c *gin.Context) {
	car, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, car)
}

func (h *CarHandler) Create(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form expected"})
		return
	}
	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be a number"})
		return
	}
	uploads, closeAll, err := imageUploads(form.File["images"])
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable image upload"})
		return
	}
	defer closeAll()

	car, err := h.svc.Create(c.Request.Context(), service.CreateInput{
		Name:        c.PostForm("name"),
		Price:       price,
		Description: c.PostForm("description"),
		Images:      uploads,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"car": car})
}

func (h *CarHandler) Update(c *gin.Context) {
	// PUT bodies without new files may still be multipart; tolerate both
	var files []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil {
		files = form.File["images"]
	}
	in := service.UpdateInput{}
	if v, ok := c.GetPostForm("name"); ok {
		in.Name = &v
	}
	if v, ok := c.GetPostForm("price"); ok {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must be a number"})
			return
		}
		in.Price = &p
	}
	if v, ok := c.GetPostForm("description"); ok {
		in.Description = &v
	}
	// removeImages is a JSON array of asset ids, stringified by the frontend
	if v, ok := c.GetPostForm("removeImages"); ok && v != "" {
		if err := json.Unmarshal([]byte(v), &in.RemoveAssetIDs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "removeImages must be a JSON array of asset ids"})
			return
		}
	}
	uploads, closeAll, err := imageUploads(files)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable image upload"})
		return
	}
	defer closeAll()
	in.NewImages = uploads

	car, cleanupErrs, err := h.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	resp := gin.H{"car": car}
	if len(cleanupErrs) > 0 {
		resp["cleanupErrors"] = cleanupErrs
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CarHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "car deleted"})
}

func (h *CarHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "car not found"})
	case errors.Is(err, service.ErrNoImages),
		errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrUnsupportedImageType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Errorf("car handler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// imageUploads opens the multipart file headers in submission order. The
// returned closer must be called once the service call settled.
func imageUploads(files []*multipart.FileHeader) ([]service.ImageUpload, func(), error) {
	uploads := make([]service.ImageUpload, 0, len(files))
	closers := make([]io.Closer, 0, len(files))
	closeAll := func() {
		for _, cl := range closers {
			cl.Close()
		}
	}
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		closers = append(closers, f)
		uploads = append(uploads, service.ImageUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Reader:      f,
		})
	}
	return uploads, closeAll, nil
}
