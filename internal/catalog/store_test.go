package catalog

import (
	"fmt"
	"sync"
	"testing"

	"configurator/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreListKeepsSeedOrder(t *testing.T) {
	store := NewSeededStore()

	families := store.List()
	require.Len(t, families, 6)
	assert.Equal(t, "oslo-fixe", families[0].ID)
	assert.Equal(t, "fcc-compact", families[5].ID)
}

func TestStoreGetVariant(t *testing.T) {
	store := NewSeededStore()

	match, ok := store.GetVariant("oslo-fixe", "oslo-3p")
	require.True(t, ok)
	assert.Equal(t, "Oslo Fixe", match.Family.Name)
	assert.Equal(t, "3 places", match.Variant.Label)

	_, ok = store.GetVariant("oslo-fixe", "missing")
	assert.False(t, ok)
	_, ok = store.GetVariant("missing", "oslo-3p")
	assert.False(t, ok)
}

func TestAppendGalleryImage(t *testing.T) {
	store := NewSeededStore()
	before, _ := store.GetVariant("oslo-fixe", "oslo-2p")

	variant, ok := store.AppendGalleryImage("oslo-fixe", "oslo-2p", "/api/uploads/a.jpg")
	require.True(t, ok)
	require.Len(t, variant.Gallery, len(before.Variant.Gallery)+1)
	item := variant.Gallery[len(variant.Gallery)-1]
	assert.Equal(t, "/api/uploads/a.jpg", item.URL)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, models.GallerySourceManual, item.SourceType)
	assert.Equal(t, "Oslo Fixe – 2 places (upload)", item.Alt)
	assert.False(t, item.IsHero)

	after, _ := store.GetVariant("oslo-fixe", "oslo-2p")
	require.Len(t, after.Variant.Gallery, len(before.Variant.Gallery)+1)
	assert.Equal(t, item, after.Variant.Gallery[len(after.Variant.Gallery)-1])

	// The snapshot taken before the append is left untouched.
	assert.Len(t, before.Variant.Gallery, 2)

	other, _ := store.GetVariant("oslo-fixe", "oslo-3p")
	assert.Len(t, other.Variant.Gallery, 1)
}

func TestAppendGalleryImageNotFound(t *testing.T) {
	store := NewSeededStore()

	_, ok := store.AppendGalleryImage("missing", "oslo-2p", "/x.jpg")
	assert.False(t, ok)
	_, ok = store.AppendGalleryImage("oslo-fixe", "missing", "/x.jpg")
	assert.False(t, ok)
}

func TestAppendGalleryImageConcurrentSameVariant(t *testing.T) {
	store := NewSeededStore()
	before, _ := store.GetVariant("milano-convertible", "milano-3p")

	const uploads = 50
	var wg sync.WaitGroup
	for i := 0; i < uploads; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			url := fmt.Sprintf("/api/uploads/%d.jpg", i)
			variant, ok := store.AppendGalleryImage("milano-convertible", "milano-3p", url)
			if assert.True(t, ok) {
				// Each caller sees its own upload last, whatever the others do.
				assert.Equal(t, url, variant.Gallery[len(variant.Gallery)-1].URL)
			}
		}(i)
	}
	wg.Wait()

	after, _ := store.GetVariant("milano-convertible", "milano-3p")
	assert.Len(t, after.Variant.Gallery, len(before.Variant.Gallery)+uploads)
}

func TestFabricCategoriesSorted(t *testing.T) {
	store := NewStore(nil, []models.FabricCategory{
		{ID: "B", Code: "B", DisplayOrder: 2},
		{ID: "A", Code: "A", DisplayOrder: 1},
	}, models.LegCatalog{})

	categories := store.FabricCategories()
	require.Len(t, categories, 2)
	assert.Equal(t, "A", categories[0].ID)
	assert.Empty(t, store.List())
}

func TestSeedLegCatalog(t *testing.T) {
	legs := NewSeededStore().LegCatalog()
	assert.Len(t, legs.Types, 3)
	assert.Len(t, legs.Colors, 5)
}

func TestNewStoreNormalizesPricingKeys(t *testing.T) {
	categories := []models.FabricCategory{
		{ID: "cat-0", Code: "A", DisplayOrder: 1},
		{ID: "cat-1", Code: "B", DisplayOrder: 2},
	}
	family := models.ProductFamily{
		ID: "f",
		Variants: []models.Variant{{
			ID: "v",
			FabricPricing: models.FabricPricing{
				"A":     models.Float(900),
				"B":     models.Float(1000),
				"cat-1": models.Float(1100),
				"promo": models.Float(10),
			},
		}},
	}

	store := NewStore([]models.ProductFamily{family}, categories, models.LegCatalog{})
	got, ok := store.Get("f")
	require.True(t, ok)

	pricing := got.Variants[0].FabricPricing
	assert.Equal(t, 900.0, *pricing["cat-0"])
	assert.Equal(t, 1100.0, *pricing["cat-1"])
	assert.Equal(t, 10.0, *pricing["promo"])
	assert.NotContains(t, pricing, "A")
	assert.NotContains(t, pricing, "B")

	price, ok := EntryPrice(got.Variants[0], store.FabricCategories())
	require.True(t, ok)
	assert.Equal(t, 900.0, price)

	assert.Contains(t, family.Variants[0].FabricPricing, "A", "input must not be modified")
}
