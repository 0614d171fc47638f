package handlers

import (
	"net/http"
	"strconv"

	"configurator/internal/catalog"
	"configurator/internal/events"
	"configurator/internal/format"
	"configurator/internal/logger"
	"configurator/internal/media"
	"configurator/internal/metrics"
	"configurator/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	defaultRelated = 3
	maxRelated     = 12
)

type FamilyHandler struct {
	store     *catalog.Store
	storage   *media.Storage
	publisher events.Publisher
	metrics   *metrics.Metrics
	logger    *logger.Logger
}

func NewFamilyHandler(store *catalog.Store, storage *media.Storage, publisher events.Publisher, m *metrics.Metrics, log *logger.Logger) *FamilyHandler {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &FamilyHandler{
		store:     store,
		storage:   storage,
		publisher: publisher,
		metrics:   m,
		logger:    log,
	}
}

// FamilySummary is the list-page view of a family.
type FamilySummary struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	FamilyType   models.FamilyType `json:"familyType"`
	Image        string            `json:"image"`
	VariantCount int               `json:"variantCount"`
	EntryPrice   *float64          `json:"entryPrice"`
	PriceLabel   string            `json:"priceLabel"`
	Availability []catalog.Bucket  `json:"availability"`
}

// List returns the families, narrowed by any filter given in the query.
func (h *FamilyHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.filtered(c))
}

// Summary returns the list-page projection of the filtered families.
func (h *FamilyHandler) Summary(c *gin.Context) {
	families := h.filtered(c)
	categories := h.store.FabricCategories()

	summaries := make([]FamilySummary, 0, len(families))
	for _, f := range families {
		summaries = append(summaries, summarize(f, categories))
	}
	c.JSON(http.StatusOK, summaries)
}

func (h *FamilyHandler) Get(c *gin.Context) {
	family, ok := h.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Family not found"})
		return
	}
	c.JSON(http.StatusOK, family)
}

// Related returns other families of the same type.
func (h *FamilyHandler) Related(c *gin.Context) {
	family, ok := h.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Family not found"})
		return
	}

	limit := defaultRelated
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxRelated)
	}

	c.JSON(http.StatusOK, catalog.RelatedFamilies(h.store.List(), family, limit))
}

func (h *FamilyHandler) GetVariant(c *gin.Context) {
	match, ok := h.store.GetVariant(c.Param("id"), c.Param("variantId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Variant not found"})
		return
	}
	c.JSON(http.StatusOK, match.Variant)
}

// UploadPhoto appends an uploaded photo to a variant gallery and returns the
// updated variant.
func (h *FamilyHandler) UploadPhoto(c *gin.Context) {
	familyID, variantID := c.Param("id"), c.Param("variantId")
	if _, ok := h.store.GetVariant(familyID, variantID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Variant not found"})
		return
	}

	url, ok := savePhoto(c, h.storage)
	if !ok {
		h.metrics.IncUpload(metrics.OutcomeRejected)
		return
	}

	variant, ok := h.store.AppendGalleryImage(familyID, variantID, url)
	if !ok {
		h.metrics.IncUpload(metrics.OutcomeRejected)
		c.JSON(http.StatusNotFound, gin.H{"error": "Variant not found"})
		return
	}
	h.metrics.IncUpload(metrics.OutcomeSuccess)

	item := variant.Gallery[len(variant.Gallery)-1]
	if err := h.publisher.Publish(c.Request.Context(), events.NewGalleryImageAdded(familyID, variantID, item)); err != nil {
		h.logger.Warn("Failed to publish gallery event for %s/%s: %v", familyID, variantID, err)
	}

	c.JSON(http.StatusOK, variant)
}

func (h *FamilyHandler) FabricCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.FabricCategories())
}

func (h *FamilyHandler) Legs(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.LegCatalog())
}

func (h *FamilyHandler) filtered(c *gin.Context) []models.ProductFamily {
	criteria := catalog.ParseCriteria(c.Request.URL.Query())
	return catalog.FilterFamilies(h.store.List(), criteria, h.store.FabricCategories())
}

func summarize(f models.ProductFamily, categories []models.FabricCategory) FamilySummary {
	s := FamilySummary{
		ID:           f.ID,
		Name:         f.Name,
		FamilyType:   f.FamilyType,
		Image:        f.HeroImage,
		VariantCount: len(f.Variants),
		Availability: []catalog.Bucket{},
	}

	price, ok := catalog.FamilyEntryPrice(f, categories)
	if ok {
		s.EntryPrice = &price
	}
	s.PriceLabel = format.PriceOrRequest(price, ok)

	if len(f.Variants) > 0 {
		first := f.Variants[0]
		s.Availability = catalog.AvailabilityBuckets(first)
		if hero, ok := catalog.HeroItem(first.Gallery); ok {
			s.Image = hero.URL
		}
	}
	if s.Image == "" {
		if hero, ok := catalog.HeroItem(f.Gallery); ok {
			s.Image = hero.URL
		}
	}
	return s
}
