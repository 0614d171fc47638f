package catalog

import (
	"configurator/internal/models"

	"github.com/google/uuid"
)

var fabricCategories = []models.FabricCategory{
	{ID: "A", Label: "Collection", Code: "A", DisplayOrder: 1},
	{ID: "B", Label: "Edition", Code: "B", DisplayOrder: 2},
	{ID: "C", Label: "Distinction", Code: "C", DisplayOrder: 3},
	{ID: "D", Label: "Exclusif D", Code: "D", DisplayOrder: 4},
	{ID: "E", Label: "Exclusif E", Code: "E", DisplayOrder: 5},
	{ID: "F", Label: "Cuir 1 King Royal", Code: "F", DisplayOrder: 6},
	{ID: "G", Label: "Cuir Viborg", Code: "G", DisplayOrder: 7},
	{ID: "E1", Label: "Editeurs E1", Code: "E1", DisplayOrder: 8},
	{ID: "E2", Label: "Editeurs E2", Code: "E2", DisplayOrder: 9},
	{ID: "E3", Label: "Editeurs E3", Code: "E3", DisplayOrder: 10},
	{ID: "E4", Label: "Editeurs E4", Code: "E4", DisplayOrder: 11},
	{ID: "E5", Label: "Editeurs E5", Code: "E5", DisplayOrder: 12},
}

var (
	colorOak     = models.LegColor{ID: "LC-oak", Name: "Chêne naturel", Code: "ON", Hex: "#c8a46a"}
	colorWalnut  = models.LegColor{ID: "LC-walnut", Name: "Noyer", Code: "NW", Hex: "#7b4b2d", PriceDelta: 50}
	colorBlack   = models.LegColor{ID: "LC-black", Name: "Noir mat", Code: "BK", Hex: "#111111"}
	colorBrass   = models.LegColor{ID: "LC-brass", Name: "Laiton", Code: "BR", Hex: "#d9b34c", PriceDelta: 90}
	colorBrushed = models.LegColor{ID: "LC-brushed", Name: "Métal brossé", Code: "MB", Hex: "#b4b7bc"}
)

const (
	iconWood  = "data:image/svg+xml;utf8,<svg xmlns='http://www.w3.org/2000/svg' width='64' height='64' viewBox='0 0 64 64'><rect x='28' y='10' width='8' height='36' rx='3' fill='%23c8a46a'/><polygon points='22,46 42,46 38,54 26,54' fill='%238a6d3b'/></svg>"
	iconMetal = "data:image/svg+xml;utf8,<svg xmlns='http://www.w3.org/2000/svg' width='64' height='64' viewBox='0 0 64 64'><rect x='30' y='12' width='4' height='34' rx='2' fill='%23b1b4b8'/><rect x='22' y='46' width='20' height='6' rx='2' fill='%238f949a'/></svg>"
	iconLuge  = "data:image/svg+xml;utf8,<svg xmlns='http://www.w3.org/2000/svg' width='64' height='64' viewBox='0 0 64 64'><path d='M18 20 h6 v22 h-6 z M40 20 h6 v22 h-6 z M18 42 h28 v6 H18z' fill='%23222222' stroke='%23222222' stroke-width='1'/></svg>"
)

// SeedFabricCategories returns the fabric categories offered at startup.
func SeedFabricCategories() []models.FabricCategory {
	return append([]models.FabricCategory(nil), fabricCategories...)
}

// SeedLegCatalog returns the leg types and colors offered at startup.
func SeedLegCatalog() models.LegCatalog {
	return models.LegCatalog{
		Types: []models.LegType{
			{ID: "LT-wood", Name: "Pied fuselé bois", IconURL: iconWood, AllowedColors: []models.LegColor{colorOak, colorWalnut, colorBrass}},
			{ID: "LT-metal", Name: "Pied métal", IconURL: iconMetal, AllowedColors: []models.LegColor{colorBlack, colorBrushed}},
			{ID: "LT-luge", Name: "Piètement luge", IconURL: iconLuge, AllowedColors: []models.LegColor{colorBlack, colorBrushed}},
		},
		Colors: []models.LegColor{colorOak, colorWalnut, colorBlack, colorBrass, colorBrushed},
	}
}

// SeedFamilies returns the product families loaded into the store at startup.
func SeedFamilies() []models.ProductFamily {
	return []models.ProductFamily{
		{
			ID:                "oslo-fixe",
			Name:              "Oslo Fixe",
			Description:       "Lignes scandinaves, assise tonique.",
			ProviderName:      "FC",
			CollectionName:    "Nordic 2025",
			FamilyType:        models.FamilyTypeFixed,
			HeroImage:         "/api/images/beige_modern_fixed_sofa.png",
			Gallery:           []models.GalleryItem{image("/api/images/beige_modern_fixed_sofa.png", "Hero", true)},
			TechnicalSheetURL: "https://example.com/ft-oslo.pdf",
			Tags:              []string{"bois", "compact"},
			IsActive:          true,
			Variants: []models.Variant{
				{
					ID:            "oslo-2p",
					Label:         "2 places",
					VariantType:   models.VariantType2Seat,
					Dimensions:    dims(178, 88, 82, 44, 53),
					FabricPricing: prices("A", 1290, "B", 1390, "C", 1490, "D", 1590, "E", 1690, "E1", 1790),
					Legs: []models.LegConfig{
						leg("LT-wood", "LC-oak", nil, true),
						leg("LT-wood", "LC-walnut", models.Float(50), false),
						leg("LT-wood", "LC-brass", models.Float(90), false),
					},
					Gallery: []models.GalleryItem{
						image("/api/images/beige_modern_fixed_sofa.png", "Oslo fixe", true),
						image("/api/images/navy_blue_velvet_loveseat.png", "Version velours", false),
					},
					Availability: []models.Availability{
						{Location: "Lyon Part-Dieu", State: models.AvailabilityShowroom},
						{Location: "Entrepôt Rhône", State: models.AvailabilityInStock, Delay: "10 j"},
						{Location: "Réseau magasins", State: models.AvailabilityInStockStores, Delay: "Disponible en boutique"},
					},
				},
				{
					ID:            "oslo-3p",
					Label:         "3 places",
					VariantType:   models.VariantType3Seat,
					Dimensions:    dims(210, 90, 82, 44, 55),
					FabricPricing: prices("A", 1490, "B", 1590, "C", 1690, "D", 1790, "E", 1890, "F", 2290),
					Legs: []models.LegConfig{
						leg("LT-wood", "LC-oak", nil, true),
						leg("LT-wood", "LC-walnut", models.Float(50), false),
					},
					Gallery: []models.GalleryItem{image("/api/images/beige_modern_fixed_sofa.png", "Oslo 3p", true)},
					Availability: []models.Availability{
						{Location: "Showroom Paris", State: models.AvailabilityOnOrder, Delay: "6-8 sem."},
					},
				},
			},
		},
		{
			ID:                "urban-angle",
			Name:              "Urban Angle",
			Description:       "Grand angle lounge modulable.",
			ProviderName:      "FC",
			CollectionName:    "Urban Loft",
			FamilyType:        models.FamilyTypeFixed,
			HeroImage:         "/api/images/charcoal_sectional_lounge_sofa.png",
			Gallery:           []models.GalleryItem{image("/api/images/charcoal_sectional_lounge_sofa.png", "Hero", true)},
			TechnicalSheetURL: "https://example.com/ft-urban.pdf",
			Tags:              []string{"angle", "deep seat"},
			IsActive:          true,
			Variants: []models.Variant{
				{
					ID:            "urban-angle-left",
					Label:         "Angle gauche",
					VariantType:   models.VariantTypeCorner,
					Dimensions:    dims(280, 105, 75, 43, 65),
					FabricPricing: prices("A", 2290, "B", 2490, "C", 2690, "D", 2890, "E", 3090, "F", 3490),
					Legs: []models.LegConfig{
						leg("LT-luge", "LC-black", nil, true),
						leg("LT-luge", "LC-brushed", models.Float(80), false),
					},
					Gallery: []models.GalleryItem{image("/api/images/charcoal_sectional_lounge_sofa.png", "Urban angle", true)},
					Availability: []models.Availability{
						{Location: "Bordeaux", State: models.AvailabilityOnOrder, Delay: "8 sem."},
					},
				},
			},
		},
		{
			ID:                "milano-convertible",
			Name:              "Milano Convertible",
			Description:       "Convertible quotidien rapido.",
			ProviderName:      "FC",
			CollectionName:    "Italia",
			FamilyType:        models.FamilyTypeConvertible,
			HeroImage:         "/api/images/gray_convertible_sofa_bed.png",
			Gallery:           []models.GalleryItem{image("/api/images/gray_convertible_sofa_bed.png", "Hero", true)},
			TechnicalSheetURL: "https://example.com/ft-milano.pdf",
			Tags:              []string{"rapido", "couchage"},
			IsActive:          true,
			Variants: []models.Variant{
				{
					ID:            "milano-2p",
					Label:         "2 places",
					VariantType:   models.VariantType2Seat,
					Dimensions:    dims(180, 95, 86, 45, 55),
					FabricPricing: prices("A", 1690, "B", 1890, "C", 2090, "D", 2290, "F", 2690),
					Legs: []models.LegConfig{
						leg("LT-metal", "LC-brushed", nil, true),
						leg("LT-metal", "LC-black", nil, false),
					},
					Gallery: []models.GalleryItem{image("/api/images/gray_convertible_sofa_bed.png", "Milano 2p", true)},
					Availability: []models.Availability{
						{Location: "Paris République", State: models.AvailabilityShowroom},
					},
				},
				{
					ID:            "milano-3p",
					Label:         "3 places",
					VariantType:   models.VariantType3Seat,
					Dimensions:    dims(200, 98, 86, 45, 56),
					FabricPricing: prices("A", 1890, "B", 2090, "C", 2290, "D", 2490, "E", 2690, "F", 2990),
					Legs: []models.LegConfig{
						leg("LT-metal", "LC-brushed", nil, true),
						leg("LT-metal", "LC-black", nil, false),
					},
					Gallery: []models.GalleryItem{
						image("/api/images/gray_convertible_sofa_bed.png", "Milano 3p", true),
						image("/api/images/beige_modern_fixed_sofa.png", "Détail accoudoir", false),
					},
					Availability: []models.Availability{
						{Location: "Commande usine", State: models.AvailabilityOnOrder, Delay: "6-8 sem."},
					},
				},
			},
		},
		{
			ID:                "lazio-convertible",
			Name:              "Lazio Convertible",
			Description:       "Convertible compact express.",
			ProviderName:      "FC",
			CollectionName:    "Italia",
			FamilyType:        models.FamilyTypeConvertible,
			HeroImage:         "/api/images/navy_blue_velvet_loveseat.png",
			Gallery:           []models.GalleryItem{image("/api/images/navy_blue_velvet_loveseat.png", "Hero", true)},
			TechnicalSheetURL: "https://example.com/ft-lazio.pdf",
			Tags:              []string{"compact", "daily bed"},
			IsActive:          true,
			Variants: []models.Variant{
				{
					ID:            "lazio-2p",
					Label:         "2 places",
					VariantType:   models.VariantType2Seat,
					Dimensions:    dims(165, 90, 85, 45, 54),
					FabricPricing: prices("A", 1390, "B", 1490, "C", 1590, "D", 1690, "E", 1790),
					Legs: []models.LegConfig{
						leg("LT-metal", "LC-black", nil, true),
						leg("LT-metal", "LC-brushed", models.Float(60), false),
					},
					Gallery: []models.GalleryItem{image("/api/images/navy_blue_velvet_loveseat.png", "Lazio 2p", true)},
					Availability: []models.Availability{
						{Location: "Entrepôt IDF", State: models.AvailabilityInStock, Quantity: intPtr(4)},
					},
				},
			},
		},
		{
			ID:                "fcc-relax",
			Name:              "FCC Relax",
			Description:       "Structure prête pour options FCC (données à venir).",
			ProviderName:      "FCC",
			CollectionName:    "FCC Collection",
			FamilyType:        models.FamilyTypeFCC,
			HeroImage:         "/api/images/pink_meridienne_chaise_lounge.png",
			Gallery:           []models.GalleryItem{image("/api/images/pink_meridienne_chaise_lounge.png", "Hero", true)},
			TechnicalSheetURL: "https://example.com/ft-fcc-relax.pdf",
			Tags:              []string{"fcc"},
			IsActive:          true,
			Variants: []models.Variant{
				{
					ID:            "fcc-relax-2p",
					Label:         "2 places",
					VariantType:   models.VariantType2Seat,
					Dimensions:    models.Dimensions{Width: models.Float(190), Depth: models.Float(92), Height: models.Float(90)},
					FabricPricing: prices("A", 0),
					Legs:          []models.LegConfig{},
					Gallery:       []models.GalleryItem{image("/api/images/pink_meridienne_chaise_lounge.png", "FCC relax", true)},
					Availability:  []models.Availability{},
				},
			},
		},
		{
			ID:                "fcc-compact",
			Name:              "FCC Compact",
			Description:       "Châssis FCC compact prêt à connecter options.",
			ProviderName:      "FCC",
			CollectionName:    "FCC Urbain",
			FamilyType:        models.FamilyTypeFCC,
			HeroImage:         "/api/images/brown_leather_modern_armchair.png",
			Gallery:           []models.GalleryItem{image("/api/images/brown_leather_modern_armchair.png", "Hero", true)},
			TechnicalSheetURL: "https://example.com/ft-fcc-compact.pdf",
			Tags:              []string{"fcc", "compact"},
			IsActive:          true,
			Variants: []models.Variant{
				{
					ID:            "fcc-compact-1p",
					Label:         "Fauteuil",
					VariantType:   models.VariantTypeArmchair,
					Dimensions:    models.Dimensions{Width: models.Float(95), Depth: models.Float(90), Height: models.Float(90)},
					FabricPricing: prices("A", 0),
					Legs:          []models.LegConfig{},
					Gallery:       []models.GalleryItem{image("/api/images/brown_leather_modern_armchair.png", "FCC compact", true)},
					Availability:  []models.Availability{},
				},
			},
		},
	}
}

func image(url, alt string, hero bool) models.GalleryItem {
	return models.GalleryItem{
		ID:         uuid.NewString(),
		SourceType: models.GallerySourceInternal,
		URL:        url,
		Alt:        alt,
		IsHero:     hero,
	}
}

func dims(width, depth, height, seatHeight, seatDepth float64) models.Dimensions {
	return models.Dimensions{
		Width:      models.Float(width),
		Depth:      models.Float(depth),
		Height:     models.Float(height),
		SeatHeight: models.Float(seatHeight),
		SeatDepth:  models.Float(seatDepth),
	}
}

// prices builds a pricing table from alternating key/price pairs.
func prices(pairs ...interface{}) models.FabricPricing {
	pricing := make(models.FabricPricing, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		key := pairs[i].(string)
		switch v := pairs[i+1].(type) {
		case int:
			pricing[key] = models.Float(float64(v))
		case float64:
			pricing[key] = models.Float(v)
		}
	}
	return pricing
}

func leg(legTypeID, colorID string, delta *float64, isDefault bool) models.LegConfig {
	return models.LegConfig{LegTypeID: legTypeID, ColorID: colorID, DeltaPrice: delta, IsDefault: isDefault}
}

func intPtr(v int) *int {
	return &v
}
