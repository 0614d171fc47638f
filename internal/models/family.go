package models

// ProductFamily groups the configurable variants of one sofa model.
type ProductFamily struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Description       string        `json:"description,omitempty"`
	ProviderName      string        `json:"providerName,omitempty"`
	CollectionName    string        `json:"collectionName,omitempty"`
	FamilyType        FamilyType    `json:"familyType"`
	HeroImage         string        `json:"heroImage,omitempty"`
	Gallery           []GalleryItem `json:"gallery"`
	TechnicalSheetURL string        `json:"technicalSheetUrl,omitempty"`
	Tags              []string      `json:"tags,omitempty"`
	Variants          []Variant     `json:"variants"`
	IsActive          bool          `json:"isActive"`
}

type FamilyType string

const (
	FamilyTypeFixed       FamilyType = "fixe"
	FamilyTypeConvertible FamilyType = "convertible"
	FamilyTypeFCC         FamilyType = "fcc"
	FamilyTypeArmchair    FamilyType = "fauteuil"
	FamilyTypeChaise      FamilyType = "meridienne"
	FamilyTypeExternal    FamilyType = "fc"
)

// Variant is one sellable configuration of a family. It belongs to exactly
// one family by containment.
type Variant struct {
	ID                string         `json:"id"`
	Label             string         `json:"label"`
	VariantType       VariantType    `json:"variantType"`
	Dimensions        Dimensions     `json:"dimensions"`
	FabricPricing     FabricPricing  `json:"fabricPricing"`
	Legs              []LegConfig    `json:"legs"`
	Gallery           []GalleryItem  `json:"gallery"`
	Availability      []Availability `json:"availability"`
	TechnicalSheetURL string         `json:"technicalSheetUrl,omitempty"`
	PriceInfo         *PriceInfo     `json:"priceInfo,omitempty"`
}

type VariantType string

const (
	VariantType2Seat    VariantType = "2p"
	VariantType3Seat    VariantType = "3p"
	VariantType4Seat    VariantType = "4p"
	VariantTypeCorner   VariantType = "angle"
	VariantTypeChaise   VariantType = "meridienne"
	VariantTypeOttoman  VariantType = "pouf"
	VariantTypeArmchair VariantType = "fauteuil"
)

// Dimensions are in centimeters. Unknown values stay nil rather than zero.
type Dimensions struct {
	Width      *float64 `json:"width,omitempty"`
	Depth      *float64 `json:"depth,omitempty"`
	Height     *float64 `json:"height,omitempty"`
	SeatHeight *float64 `json:"seatHeight,omitempty"`
	SeatDepth  *float64 `json:"seatDepth,omitempty"`
}

// WidthOr returns the width, or fallback when unknown.
func (d Dimensions) WidthOr(fallback float64) float64 {
	if d.Width == nil {
		return fallback
	}
	return *d.Width
}

// DepthOr returns the depth, or fallback when unknown.
func (d Dimensions) DepthOr(fallback float64) float64 {
	if d.Depth == nil {
		return fallback
	}
	return *d.Depth
}

type PriceInfo struct {
	BasePrice   *float64 `json:"basePrice,omitempty"`
	PromoPrice  *float64 `json:"promoPrice,omitempty"`
	EcoTax      *float64 `json:"ecoTax,omitempty"`
	Coefficient *float64 `json:"coefficient,omitempty"`
}

type GalleryItem struct {
	ID         string        `json:"id"`
	SourceType GallerySource `json:"sourceType"`
	URL        string        `json:"url"`
	Alt        string        `json:"alt,omitempty"`
	IsHero     bool          `json:"isHero,omitempty"`
}

type GallerySource string

const (
	GallerySourceInternal GallerySource = "internal"
	GallerySourceAPI      GallerySource = "api"
	GallerySourceManual   GallerySource = "manual"
)

type Availability struct {
	Location string            `json:"location"`
	State    AvailabilityState `json:"state"`
	Delay    string            `json:"delay,omitempty"`
	Quantity *int              `json:"quantity,omitempty"`
}

type AvailabilityState string

const (
	AvailabilityShowroom      AvailabilityState = "expo"
	AvailabilityInStock       AvailabilityState = "stock"
	AvailabilityOnOrder       AvailabilityState = "commande"
	AvailabilityInStockStores AvailabilityState = "instock_stores"
)

// Valid reports whether s is one of the known availability states.
func (s AvailabilityState) Valid() bool {
	switch s {
	case AvailabilityShowroom, AvailabilityInStock, AvailabilityOnOrder, AvailabilityInStockStores:
		return true
	}
	return false
}

// Float returns a pointer to v. Seed data and adapters use it for optional numbers.
func Float(v float64) *float64 {
	return &v
}
