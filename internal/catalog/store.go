package catalog

import (
	"fmt"
	"sync"

	"configurator/internal/models"

	"github.com/google/uuid"
)

// VariantMatch is a variant together with the family that contains it.
type VariantMatch struct {
	Family  models.ProductFamily `json:"family"`
	Variant models.Variant       `json:"variant"`
}

// Store holds the product families in memory for the life of the process.
//
// Families are never mutated in place. AppendGalleryImage builds a new family
// value and swaps it into the map, so values returned by List and Get stay
// consistent snapshots. Slices inside returned values are shared and must be
// treated as read-only by callers.
type Store struct {
	mu       sync.RWMutex
	order    []string
	families map[string]models.ProductFamily
	locks    map[string]*sync.Mutex

	categories []models.FabricCategory
	legs       models.LegCatalog
}

// NewStore loads families with their fabric pricing keyed by category id.
func NewStore(families []models.ProductFamily, categories []models.FabricCategory, legs models.LegCatalog) *Store {
	s := &Store{
		families:   make(map[string]models.ProductFamily, len(families)),
		locks:      make(map[string]*sync.Mutex, len(families)),
		categories: models.SortFabricCategories(categories),
		legs:       legs,
	}
	for _, f := range families {
		if _, exists := s.families[f.ID]; !exists {
			s.order = append(s.order, f.ID)
			s.locks[f.ID] = &sync.Mutex{}
		}
		s.families[f.ID] = normalizeFamily(f, s.categories)
	}
	return s
}

// NewSeededStore returns a store loaded with the built-in catalog.
func NewSeededStore() *Store {
	return NewStore(SeedFamilies(), SeedFabricCategories(), SeedLegCatalog())
}

// List returns every family in seed order.
func (s *Store) List() []models.ProductFamily {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.ProductFamily, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.families[id])
	}
	return out
}

func (s *Store) Get(familyID string) (models.ProductFamily, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.families[familyID]
	return f, ok
}

func (s *Store) GetVariant(familyID, variantID string) (VariantMatch, bool) {
	f, ok := s.Get(familyID)
	if !ok {
		return VariantMatch{}, false
	}
	idx := variantIndex(f, variantID)
	if idx < 0 {
		return VariantMatch{}, false
	}
	return VariantMatch{Family: f, Variant: f.Variants[idx]}, true
}

// AppendGalleryImage adds an uploaded image to the end of a variant's gallery
// and returns the variant as it stood right after the append; the new item is
// the last entry of its gallery. Appends to the same family are serialized so
// none are lost.
func (s *Store) AppendGalleryImage(familyID, variantID, url string) (models.Variant, bool) {
	lock := s.familyLock(familyID)
	if lock == nil {
		return models.Variant{}, false
	}
	lock.Lock()
	defer lock.Unlock()

	f, ok := s.Get(familyID)
	if !ok {
		return models.Variant{}, false
	}
	idx := variantIndex(f, variantID)
	if idx < 0 {
		return models.Variant{}, false
	}

	item := models.GalleryItem{
		ID:         uuid.NewString(),
		SourceType: models.GallerySourceManual,
		URL:        url,
		Alt:        fmt.Sprintf("%s – %s (upload)", f.Name, f.Variants[idx].Label),
	}

	variants := make([]models.Variant, len(f.Variants))
	copy(variants, f.Variants)

	gallery := make([]models.GalleryItem, 0, len(variants[idx].Gallery)+1)
	gallery = append(gallery, variants[idx].Gallery...)
	variants[idx].Gallery = append(gallery, item)

	f.Variants = variants

	s.mu.Lock()
	s.families[familyID] = f
	s.mu.Unlock()

	return variants[idx], true
}

// FabricCategories returns the categories sorted by display order.
func (s *Store) FabricCategories() []models.FabricCategory {
	return append([]models.FabricCategory(nil), s.categories...)
}

func (s *Store) LegCatalog() models.LegCatalog {
	return s.legs
}

func (s *Store) familyLock(familyID string) *sync.Mutex {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.locks[familyID]
}

func variantIndex(f models.ProductFamily, variantID string) int {
	for i, v := range f.Variants {
		if v.ID == variantID {
			return i
		}
	}
	return -1
}
