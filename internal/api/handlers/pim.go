package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	pimconnector "configurator/internal/connectors/pim"
	"configurator/internal/events"
	"configurator/internal/logger"
	"configurator/internal/models"
	"configurator/internal/services/pim"

	"github.com/gin-gonic/gin"
)

type pimSource interface {
	Payload(ctx context.Context, endpoint string) any
	Invalidate(ctx context.Context, endpoints ...string) error
}

type pimCatalog interface {
	Families(ctx context.Context) []models.ProductFamily
	Reference(ctx context.Context, id string) *models.ProductFamily
	Bundle(ctx context.Context) *pimconnector.Bundle
}

type PIMHandler struct {
	source    pimSource
	catalog   pimCatalog
	publisher events.Publisher
	logger    *logger.Logger
}

func NewPIMHandler(source pimSource, connector pimCatalog, publisher events.Publisher, log *logger.Logger) *PIMHandler {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &PIMHandler{
		source:    source,
		catalog:   connector,
		publisher: publisher,
		logger:    log,
	}
}

// Proxy serves the raw payload of one PIM endpoint. Upstream failures are
// answered with an empty list.
func (h *PIMHandler) Proxy(endpoint string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, h.source.Payload(c.Request.Context(), endpoint))
	}
}

func (h *PIMHandler) Families(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Families(c.Request.Context()))
}

func (h *PIMHandler) Family(c *gin.Context) {
	family := h.catalog.Reference(c.Request.Context(), c.Param("id"))
	if family == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reference not found"})
		return
	}
	c.JSON(http.StatusOK, family)
}

func (h *PIMHandler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalog.Bundle(c.Request.Context()))
}

// Refresh drops the cached PIM payloads and announces the refresh so other
// instances do the same. An empty body refreshes every endpoint.
func (h *PIMHandler) Refresh(c *gin.Context) {
	var req struct {
		Endpoints []string `json:"endpoints"`
	}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	for _, endpoint := range req.Endpoints {
		if !pim.KnownEndpoint(endpoint) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown PIM endpoint: " + endpoint})
			return
		}
	}

	ctx := c.Request.Context()
	if err := h.source.Invalidate(ctx, req.Endpoints...); err != nil {
		h.logger.Warn("Failed to invalidate PIM cache: %v", err)
	}

	event := events.NewPIMRefreshRequested(req.Endpoints)
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("Failed to publish PIM refresh event: %v", err)
	}

	endpoints := req.Endpoints
	if len(endpoints) == 0 {
		endpoints = pim.Endpoints
	}
	c.JSON(http.StatusAccepted, gin.H{"id": event.ID, "endpoints": endpoints})
}
