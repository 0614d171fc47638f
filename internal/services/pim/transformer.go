package pim

import (
	"fmt"
	"html"
	"math"
	"strings"

	"configurator/internal/models"

	"github.com/microcosm-cc/bluemonday"
)

// Base measurements below these floors are treated as bogus.
const (
	minBaseWidth  = 50
	minBaseDepth  = 40
	minBaseHeight = 30

	defaultBaseWidth  = 180
	defaultBaseDepth  = 90
	defaultBaseHeight = 85

	// Reference widths from here on also get a 4-seat variant.
	fourSeatMinWidth = 190
)

// Transformer converts PIM payloads into catalog models. It never fails:
// missing or mistyped fields fall back to defaults.
type Transformer struct {
	policy *bluemonday.Policy
}

func NewTransformer() *Transformer {
	return &Transformer{
		policy: bluemonday.StrictPolicy(),
	}
}

// AdaptReferenceToFamily converts one PIM reference into a family with a
// synthesized variant ladder. It returns nil when raw is not an object.
func (t *Transformer) AdaptReferenceToFamily(raw any) *models.ProductFamily {
	ref := Wrap(raw)
	if !ref.IsObject() {
		return nil
	}

	id := ref.Get("id").TextOr("")
	name := first("Référence FC", ref.Get("francecanape_title"), ref.Get("provider_title"))
	provider := first("France Canapé", ref.Path("provider", "name"), ref.Get("provider_title"))

	hero := ResolveImageURL(first("", ref.Get("picture_url")))
	gallery := []models.GalleryItem{{
		ID:         fmt.Sprintf("fc-%s-hero", id),
		SourceType: models.GallerySourceAPI,
		URL:        hero,
		Alt:        first("Aperçu canapé", ref.Get("francecanape_title")),
	}}

	variants := ladder(
		measure(ref.Get("width"), minBaseWidth, defaultBaseWidth),
		measure(ref.Get("depth"), minBaseDepth, defaultBaseDepth),
		measure(ref.Get("height"), minBaseHeight, defaultBaseHeight),
	)
	for i := range variants {
		variants[i].Gallery = gallery
	}

	return &models.ProductFamily{
		ID:                id,
		Name:              name,
		Description:       t.plainText(first("", ref.Get("description")), "-"),
		ProviderName:      provider,
		CollectionName:    first("", ref.Get("provider_title")),
		FamilyType:        models.FamilyTypeExternal,
		HeroImage:         hero,
		Gallery:           gallery,
		TechnicalSheetURL: first("", ref.Get("technique_url")),
		Variants:          variants,
		IsActive:          true,
	}
}

// AdaptReferencesToFamilies adapts every object in a reference list and
// skips the rest.
func (t *Transformer) AdaptReferencesToFamilies(raw any) []models.ProductFamily {
	families := []models.ProductFamily{}
	for _, item := range Wrap(raw).Items() {
		if f := t.AdaptReferenceToFamily(item.Value()); f != nil {
			families = append(families, *f)
		}
	}
	return families
}

// AdaptDimensionsToVariants converts the dimension list into variants.
func (t *Transformer) AdaptDimensionsToVariants(raw any) []models.Variant {
	variants := []models.Variant{}
	for idx, item := range Wrap(raw).Items() {
		pricing := models.FabricPricing{}
		for key, val := range item.Get("prices").Fields() {
			if val.IsNumber() {
				f, _ := val.Number()
				pricing[key] = models.Float(f)
			} else {
				pricing[key] = nil
			}
		}

		variants = append(variants, models.Variant{
			ID:          coalesce(fmt.Sprintf("variant-%d", idx), item.Get("id")),
			Label:       coalesce("Variante", item.Get("label"), item.Get("nom")),
			VariantType: models.VariantType(coalesce(string(models.VariantType2Seat), item.Get("type"))),
			Dimensions: models.Dimensions{
				Width:      optionalMeasure(item.Get("largeur")),
				Depth:      optionalMeasure(item.Get("profondeur")),
				Height:     optionalMeasure(item.Get("hauteur")),
				SeatHeight: optionalMeasure(item.Get("hauteur_assise")),
				SeatDepth:  optionalMeasure(item.Get("profondeur_assise")),
			},
			FabricPricing:     pricing,
			Legs:              []models.LegConfig{},
			Gallery:           []models.GalleryItem{},
			Availability:      []models.Availability{},
			TechnicalSheetURL: coalesce("", item.Get("fiche_technique")),
		})
	}
	return variants
}

// AdaptTissuesToFabricCategories converts the fabric library into categories,
// ordered as received.
func (t *Transformer) AdaptTissuesToFabricCategories(raw any) []models.FabricCategory {
	categories := []models.FabricCategory{}
	for idx, item := range Wrap(raw).Items() {
		code, hasCode := item.Get("code").Text()
		label := fmt.Sprintf("Catégorie %d", idx+1)
		if hasCode {
			label = "Catégorie " + code
		}
		categories = append(categories, models.FabricCategory{
			ID:           coalesce(fmt.Sprintf("cat-%d", idx), item.Get("code"), item.Get("id")),
			Label:        coalesce(label, item.Get("label"), item.Get("nom")),
			Code:         coalesce(fmt.Sprintf("%d", idx+1), item.Get("code"), item.Get("id")),
			DisplayOrder: idx + 1,
		})
	}
	return categories
}

// AdaptFeetToLegTypes converts the foot catalog into leg types.
func (t *Transformer) AdaptFeetToLegTypes(raw any) []models.LegType {
	legTypes := []models.LegType{}
	for idx, item := range Wrap(raw).Items() {
		legTypes = append(legTypes, models.LegType{
			ID:            coalesce(fmt.Sprintf("leg-%d", idx), item.Get("id")),
			Name:          coalesce("Piètement", item.Get("nom")),
			IconURL:       coalesce("", item.Get("icon")),
			AllowedColors: adaptColors(item.Get("couleurs")),
		})
	}
	return legTypes
}

// AdaptColorsToLegColors converts the standalone color list.
func (t *Transformer) AdaptColorsToLegColors(raw any) []models.LegColor {
	return adaptColors(Wrap(raw))
}

// AdaptStockToAvailability converts stock rows. Unknown states become stock.
func (t *Transformer) AdaptStockToAvailability(raw any) []models.Availability {
	rows := []models.Availability{}
	for _, item := range Wrap(raw).Items() {
		state := models.AvailabilityState(coalesce("", item.Get("statut")))
		if !state.Valid() {
			state = models.AvailabilityInStock
		}

		row := models.Availability{
			Location: coalesce("N/A", item.Get("magasin")),
			State:    state,
			Delay:    coalesce("", item.Get("delai")),
		}
		if q, ok := item.Get("quantite").Number(); ok && item.Get("quantite").IsNumber() {
			n := int(math.Round(q))
			row.Quantity = &n
		}
		rows = append(rows, row)
	}
	return rows
}

func adaptColors(raw Raw) []models.LegColor {
	colors := []models.LegColor{}
	for i, c := range raw.Items() {
		delta, _ := c.Get("delta").Number()
		colors = append(colors, models.LegColor{
			ID:         coalesce(fmt.Sprintf("color-%d", i), c.Get("id")),
			Name:       coalesce("Coloris", c.Get("nom")),
			Code:       coalesce(fmt.Sprintf("%d", i), c.Get("code"), c.Get("id")),
			Hex:        coalesce("", c.Get("hex")),
			PriceDelta: delta,
		})
	}
	return colors
}

// plainText strips markup from s, falling back when nothing readable is left.
func (t *Transformer) plainText(s, fallback string) string {
	clean := strings.TrimSpace(html.UnescapeString(t.policy.Sanitize(s)))
	if clean == "" {
		return fallback
	}
	return clean
}

// measure returns the numeric value when it is above floor, else fallback.
func measure(raw Raw, floor, fallback float64) float64 {
	if v, ok := raw.Number(); ok && v > floor {
		return v
	}
	return fallback
}

// optionalMeasure keeps a dimension only when it is a non-zero number.
func optionalMeasure(raw Raw) *float64 {
	v, ok := raw.Number()
	if !ok || v == 0 {
		return nil
	}
	return models.Float(v)
}

// ladder builds the standard size range for a reference of the given base
// measurements.
func ladder(width, depth, height float64) []models.Variant {
	variant := func(id, label string, vt models.VariantType, w, d, h float64) models.Variant {
		return models.Variant{
			ID:            id,
			Label:         label,
			VariantType:   vt,
			Dimensions:    models.Dimensions{Width: models.Float(w), Depth: models.Float(d), Height: models.Float(h)},
			FabricPricing: models.FabricPricing{},
			Legs:          []models.LegConfig{},
			Availability:  []models.Availability{},
		}
	}

	variants := []models.Variant{
		variant("fauteuil", "Fauteuil", models.VariantTypeArmchair, math.Round(width*0.6), depth, height),
		variant("2p", "2 places", models.VariantType2Seat, width, depth, height),
		variant("3p", "3 places", models.VariantType3Seat, width+20, depth, height),
	}
	if width >= fourSeatMinWidth {
		variants = append(variants, variant("4p", "4 places", models.VariantType4Seat, width+40, depth, height))
	}
	variants = append(variants, variant("pouf", "Pouf", models.VariantTypeOttoman,
		math.Round(width*0.5), math.Round(depth*0.5), math.Round(height*0.6)))
	return variants
}
