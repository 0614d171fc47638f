package sofas

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"configurator/internal/models"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("sofa not found")

// Repository stores legacy sofa records.
type Repository interface {
	List(ctx context.Context) ([]models.Sofa, error)
	Get(ctx context.Context, id string) (*models.Sofa, error)
	Create(ctx context.Context, sofa *models.Sofa) (*models.Sofa, error)
	Update(ctx context.Context, id string, update models.SofaUpdate) (*models.Sofa, error)
	AppendImage(ctx context.Context, id, imageURL string) (*models.Sofa, error)
	Filter(ctx context.Context, f Filter) ([]models.Sofa, error)
}

// Filter narrows the sofa listing. Nil bounds are ignored. When any of the
// availability flags is set, a sofa matches if it has at least one of them.
type Filter struct {
	Type     string
	MaxWidth *int
	MinDepth *int
	MaxDepth *int
	MaxPrice *decimal.Decimal
	InStore  bool
	InStock  bool
	OnOrder  bool
}

func (f Filter) availability() bool {
	return f.InStore || f.InStock || f.OnOrder
}

// Match reports whether s passes every set criterion.
func (f Filter) Match(s models.Sofa) bool {
	if f.Type != "" && s.Type != f.Type {
		return false
	}
	if f.MaxWidth != nil && s.Width > *f.MaxWidth {
		return false
	}
	if f.MinDepth != nil && s.Depth < *f.MinDepth {
		return false
	}
	if f.MaxDepth != nil && s.Depth > *f.MaxDepth {
		return false
	}
	if f.MaxPrice != nil && s.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	if f.availability() {
		return (f.InStore && s.InStore) || (f.InStock && s.InStock) || (f.OnOrder && s.OnOrder)
	}
	return true
}

// ParseFilter reads a Filter from query parameters. Zero or unparsable
// numbers are ignored; flags count only when exactly "true".
func ParseFilter(query url.Values) Filter {
	f := Filter{
		Type:     strings.TrimSpace(query.Get("type")),
		MaxWidth: positiveInt(query.Get("maxWidth")),
		MinDepth: positiveInt(query.Get("minDepth")),
		MaxDepth: positiveInt(query.Get("maxDepth")),
		InStore:  query.Get("inStore") == "true",
		InStock:  query.Get("inStock") == "true",
		OnOrder:  query.Get("onOrder") == "true",
	}
	if price, err := decimal.NewFromString(strings.TrimSpace(query.Get("maxPrice"))); err == nil && price.IsPositive() {
		f.MaxPrice = &price
	}
	return f
}

func positiveInt(raw string) *int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v <= 0 {
		return nil
	}
	return &v
}
