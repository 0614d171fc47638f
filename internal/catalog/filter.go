package catalog

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"configurator/internal/models"
)

// Criteria narrows a family listing. Every field is optional; nil numbers and
// an empty Type or Availability mean "no constraint".
type Criteria struct {
	Type         models.FamilyType
	MaxWidth     *float64
	MinDepth     *float64
	MaxDepth     *float64
	MaxPrice     *float64
	Availability []Bucket
}

// variantLevel reports whether any criterion needs a variant to evaluate.
func (c Criteria) variantLevel() bool {
	return c.MaxWidth != nil || c.MinDepth != nil || c.MaxDepth != nil ||
		c.MaxPrice != nil || len(c.Availability) > 0
}

// ParseCriteria reads criteria from query parameters. Numbers that do not
// parse or are not positive are ignored.
func ParseCriteria(query url.Values) Criteria {
	c := Criteria{
		Type:     models.FamilyType(strings.TrimSpace(query.Get("type"))),
		MaxWidth: positive(query.Get("maxWidth")),
		MinDepth: positive(query.Get("minDepth")),
		MaxDepth: positive(query.Get("maxDepth")),
		MaxPrice: positive(query.Get("maxPrice")),
	}
	for _, raw := range strings.Split(query.Get("availability"), ",") {
		if b, ok := ParseBucket(strings.TrimSpace(raw)); ok {
			c.Availability = append(c.Availability, b)
		}
	}
	return c
}

// FilterFamilies keeps the families whose first variant satisfies every
// criterion. Only the first variant is evaluated; other variants never make
// a family match.
func FilterFamilies(families []models.ProductFamily, c Criteria, categories []models.FabricCategory) []models.ProductFamily {
	out := make([]models.ProductFamily, 0, len(families))
	for _, f := range families {
		if c.Type != "" && f.FamilyType != c.Type {
			continue
		}
		if len(f.Variants) == 0 {
			if c.variantLevel() {
				continue
			}
			out = append(out, f)
			continue
		}
		if matchVariant(f.Variants[0], c, categories) {
			out = append(out, f)
		}
	}
	return out
}

func matchVariant(v models.Variant, c Criteria, categories []models.FabricCategory) bool {
	if c.MaxWidth != nil && v.Dimensions.WidthOr(0) > *c.MaxWidth {
		return false
	}

	depth := v.Dimensions.DepthOr(0)
	if c.MinDepth != nil && depth < *c.MinDepth {
		return false
	}
	if c.MaxDepth != nil && depth > *c.MaxDepth {
		return false
	}

	if c.MaxPrice != nil && len(categories) > 0 {
		// The first category with an id key decides, even when its price is
		// null; a null price passes.
		for _, cat := range categories {
			p, ok := v.FabricPricing[cat.ID]
			if !ok {
				continue
			}
			if p != nil && *p > *c.MaxPrice {
				return false
			}
			break
		}
	}

	if len(c.Availability) > 0 && !anyBucket(AvailabilityBuckets(v), c.Availability) {
		return false
	}
	return true
}

func anyBucket(have, want []Bucket) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func positive(raw string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return nil
	}
	return &v
}
