package catalog

import "configurator/internal/models"

// EntryPrice returns the first defined price of the variant, walking the
// categories in order and checking each category's code before its id.
func EntryPrice(v models.Variant, categories []models.FabricCategory) (float64, bool) {
	for _, c := range categories {
		if p := v.FabricPricing[c.Code]; p != nil {
			return *p, true
		}
		if p := v.FabricPricing[c.ID]; p != nil {
			return *p, true
		}
	}
	return 0, false
}

// FamilyEntryPrice is the entry price of the family's first variant. A family
// without variants has no displayable price.
func FamilyEntryPrice(f models.ProductFamily, categories []models.FabricCategory) (float64, bool) {
	if len(f.Variants) == 0 {
		return 0, false
	}
	return EntryPrice(f.Variants[0], categories)
}

// DefaultLeg returns the leg flagged as default, falling back to the first one.
func DefaultLeg(v models.Variant) (models.LegConfig, bool) {
	if len(v.Legs) == 0 {
		return models.LegConfig{}, false
	}
	for _, l := range v.Legs {
		if l.IsDefault {
			return l, true
		}
	}
	return v.Legs[0], true
}

// HeroItem returns the gallery item flagged as hero, or the first item.
func HeroItem(gallery []models.GalleryItem) (models.GalleryItem, bool) {
	if len(gallery) == 0 {
		return models.GalleryItem{}, false
	}
	for _, g := range gallery {
		if g.IsHero {
			return g, true
		}
	}
	return gallery[0], true
}

// RelatedFamilies returns up to limit other families of the same type.
func RelatedFamilies(families []models.ProductFamily, family models.ProductFamily, limit int) []models.ProductFamily {
	related := make([]models.ProductFamily, 0, limit)
	for _, f := range families {
		if len(related) >= limit {
			break
		}
		if f.ID == family.ID || f.FamilyType != family.FamilyType {
			continue
		}
		related = append(related, f)
	}
	return related
}

// NormalizePricing rekeys pricing by category id. A code key is moved to the
// id of its category unless the id key already holds a price. Keys matching
// no category are kept as they are.
func NormalizePricing(pricing models.FabricPricing, categories []models.FabricCategory) models.FabricPricing {
	if pricing == nil {
		return nil
	}
	out := make(models.FabricPricing, len(pricing))
	for k, v := range pricing {
		out[k] = v
	}
	for _, c := range categories {
		if c.Code == "" || c.Code == c.ID {
			continue
		}
		p, ok := out[c.Code]
		if !ok {
			continue
		}
		delete(out, c.Code)
		if out[c.ID] == nil {
			out[c.ID] = p
		}
	}
	return out
}

func normalizeFamily(f models.ProductFamily, categories []models.FabricCategory) models.ProductFamily {
	variants := make([]models.Variant, len(f.Variants))
	copy(variants, f.Variants)
	for i := range variants {
		variants[i].FabricPricing = NormalizePricing(variants[i].FabricPricing, categories)
	}
	f.Variants = variants
	return f
}
