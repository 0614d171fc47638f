package sofas

import (
	"configurator/internal/models"

	"github.com/shopspring/decimal"
)

// SeedSofas returns the legacy sofas loaded at startup. IDs are assigned on
// insert.
func SeedSofas() []models.Sofa {
	return []models.Sofa{
		{
			Name:        "Oslo Comfort",
			Type:        string(models.SofaTypeFixed),
			Width:       178,
			Depth:       88,
			Height:      82,
			Price:       decimal.RequireFromString("1299.00"),
			Comfort:     "Confort ferme, assise haute",
			InStore:     true,
			InStock:     true,
			MainImage:   "/api/images/beige_modern_fixed_sofa.png",
			Images:      []string{"/api/images/beige_modern_fixed_sofa.png"},
			Description: text("Canapé fixe au design scandinave épuré, parfait pour les espaces contemporains."),
			Features:    []string{"Tissu anti-taches", "Pieds en chêne massif", "Coussins déhoussables"},
		},
		{
			Name:        "Milano Convertible",
			Type:        string(models.SofaTypeConvertible),
			Width:       200,
			Depth:       95,
			Height:      85,
			Price:       decimal.RequireFromString("1899.00"),
			Comfort:     "Confort moelleux, convertible express",
			InStock:     true,
			MainImage:   "/api/images/gray_convertible_sofa_bed.png",
			Images:      []string{"/api/images/gray_convertible_sofa_bed.png"},
			Description: text("Canapé convertible haut de gamme avec système de couchage quotidien."),
			Features:    []string{"Matelas 14cm inclus", "Mécanisme rapido", "Coffre de rangement"},
		},
		{
			Name:        "Churchill Classic",
			Type:        string(models.SofaTypeArmchair),
			Width:       95,
			Depth:       92,
			Height:      98,
			Price:       decimal.RequireFromString("899.00"),
			Comfort:     "Confort d'exception, cuir pleine fleur",
			InStore:     true,
			OnOrder:     true,
			MainImage:   "/api/images/brown_leather_modern_armchair.png",
			Images:      []string{"/api/images/brown_leather_modern_armchair.png"},
			Description: text("Fauteuil en cuir véritable, inspiré du design anglais classique."),
			Features:    []string{"Cuir aniline", "Structure hêtre massif", "Dossier ergonomique"},
		},
		{
			Name:        "Élégance Méridienne",
			Type:        string(models.SofaTypeChaise),
			Width:       165,
			Depth:       75,
			Height:      78,
			Price:       decimal.RequireFromString("1499.00"),
			Comfort:     "Confort raffiné, assise profonde",
			OnOrder:     true,
			MainImage:   "/api/images/pink_meridienne_chaise_lounge.png",
			Images:      []string{"/api/images/pink_meridienne_chaise_lounge.png"},
			Description: text("Méridienne au design élégant, idéale pour créer un coin lecture."),
			Features:    []string{"Velours haute qualité", "Pieds laiton brossé", "Accoudoir asymétrique"},
		},
		{
			Name:        "Urban Lounge",
			Type:        string(models.SofaTypeFixed),
			Width:       280,
			Depth:       105,
			Height:      75,
			Price:       decimal.RequireFromString("2499.00"),
			Comfort:     "Confort lounge, assise extra profonde",
			InStore:     true,
			InStock:     true,
			MainImage:   "/api/images/charcoal_sectional_lounge_sofa.png",
			Images:      []string{"/api/images/charcoal_sectional_lounge_sofa.png"},
			Description: text("Grand canapé d'angle au confort exceptionnel pour une détente maximale."),
			Features:    []string{"Configuration modulable", "Têtières réglables", "Assise ultra-profonde"},
		},
		{
			Name:        "Bijou Velours",
			Type:        string(models.SofaTypeFixed),
			Width:       140,
			Depth:       82,
			Height:      80,
			Price:       decimal.RequireFromString("1099.00"),
			Comfort:     "Confort élégant, assise compacte",
			InStock:     true,
			MainImage:   "/api/images/navy_blue_velvet_loveseat.png",
			Images:      []string{"/api/images/navy_blue_velvet_loveseat.png"},
			Description: text("Petit canapé 2 places au design raffiné, parfait pour les petits espaces."),
			Features:    []string{"Velours premium", "Design compact", "Pieds dorés"},
		},
	}
}

func text(s string) *string {
	return &s
}
