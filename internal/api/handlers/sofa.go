package handlers

import (
	"errors"
	"net/http"

	"configurator/internal/logger"
	"configurator/internal/media"
	"configurator/internal/metrics"
	"configurator/internal/models"
	"configurator/internal/sofas"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type SofaHandler struct {
	repo    sofas.Repository
	storage *media.Storage
	metrics *metrics.Metrics
	logger  *logger.Logger
}

func NewSofaHandler(repo sofas.Repository, storage *media.Storage, m *metrics.Metrics, log *logger.Logger) *SofaHandler {
	return &SofaHandler{
		repo:    repo,
		storage: storage,
		metrics: m,
		logger:  log,
	}
}

type createSofaRequest struct {
	Name        string          `json:"name" binding:"required"`
	Type        string          `json:"type" binding:"required,oneof=fixe convertible fauteuil meridienne"`
	Width       int             `json:"width" binding:"required,gt=0"`
	Depth       int             `json:"depth" binding:"required,gt=0"`
	Height      int             `json:"height" binding:"required,gt=0"`
	Price       decimal.Decimal `json:"price"`
	Comfort     string          `json:"comfort" binding:"required"`
	InStore     bool            `json:"inStore"`
	InStock     bool            `json:"inStock"`
	OnOrder     bool            `json:"onOrder"`
	MainImage   string          `json:"mainImage" binding:"required"`
	Images      []string        `json:"images"`
	Description *string         `json:"description"`
	Features    []string        `json:"features"`
}

func (h *SofaHandler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list sofas: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sofas"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// Filter lists the sofas matching the query: type, maxWidth, minDepth,
// maxDepth, maxPrice and the inStore/inStock/onOrder flags.
func (h *SofaHandler) Filter(c *gin.Context) {
	list, err := h.repo.Filter(c.Request.Context(), sofas.ParseFilter(c.Request.URL.Query()))
	if err != nil {
		h.logger.Error("Failed to filter sofas: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to filter sofas"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *SofaHandler) Get(c *gin.Context) {
	sofa, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Failed to fetch sofa")
		return
	}
	c.JSON(http.StatusOK, sofa)
}

func (h *SofaHandler) Create(c *gin.Context) {
	var req createSofaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Price.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be positive"})
		return
	}

	sofa := &models.Sofa{
		Name:        req.Name,
		Type:        req.Type,
		Width:       req.Width,
		Depth:       req.Depth,
		Height:      req.Height,
		Price:       req.Price,
		Comfort:     req.Comfort,
		InStore:     req.InStore,
		InStock:     req.InStock,
		OnOrder:     req.OnOrder,
		MainImage:   req.MainImage,
		Images:      req.Images,
		Description: req.Description,
		Features:    req.Features,
	}
	if sofa.Images == nil {
		sofa.Images = []string{}
	}

	created, err := h.repo.Create(c.Request.Context(), sofa)
	if err != nil {
		h.logger.Error("Failed to create sofa: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sofa"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *SofaHandler) Update(c *gin.Context) {
	var update models.SofaUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sofa, err := h.repo.Update(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		h.fail(c, err, "Failed to update sofa")
		return
	}
	c.JSON(http.StatusOK, sofa)
}

// UploadPhoto appends an uploaded photo to the sofa's images and returns the
// updated sofa.
func (h *SofaHandler) UploadPhoto(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.repo.Get(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Failed to upload photo")
		return
	}

	url, ok := savePhoto(c, h.storage)
	if !ok {
		h.metrics.IncUpload(metrics.OutcomeRejected)
		return
	}

	sofa, err := h.repo.AppendImage(c.Request.Context(), id, url)
	if err != nil {
		h.metrics.IncUpload(metrics.OutcomeFailed)
		h.fail(c, err, "Failed to upload photo")
		return
	}
	h.metrics.IncUpload(metrics.OutcomeSuccess)
	c.JSON(http.StatusOK, sofa)
}

func (h *SofaHandler) fail(c *gin.Context, err error, message string) {
	if errors.Is(err, sofas.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sofa not found"})
		return
	}
	h.logger.Error("%s: %v", message, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}
