package models

import "sort"

type FabricCategory struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	Code         string `json:"code"`
	DisplayOrder int    `json:"displayOrder"`
}

// FabricPricing maps a fabric category key to a price. Keys may be either the
// category code or the category id; a nil value means "no price".
type FabricPricing map[string]*float64

// SortFabricCategories returns a copy of categories ordered by DisplayOrder.
func SortFabricCategories(categories []FabricCategory) []FabricCategory {
	sorted := make([]FabricCategory, len(categories))
	copy(sorted, categories)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DisplayOrder < sorted[j].DisplayOrder
	})
	return sorted
}
