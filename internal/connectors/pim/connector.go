package pim

import (
	"context"

	"configurator/internal/logger"
	"configurator/internal/models"
	pimservice "configurator/internal/services/pim"

	"golang.org/x/sync/errgroup"
)

// Fetcher is the part of the PIM client the connector needs.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint string) []any
}

// Bundle is the full PIM catalog, adapted to catalog models.
type Bundle struct {
	Families         []models.ProductFamily  `json:"families"`
	FabricCategories []models.FabricCategory `json:"fabricCategories"`
	LegTypes         []models.LegType        `json:"legTypes"`
	LegColors        []models.LegColor       `json:"legColors"`
	Availability     []models.Availability   `json:"availability"`
	Variants         []models.Variant        `json:"variants"`
}

type PIMConnector struct {
	client      Fetcher
	transformer *pimservice.Transformer
	logger      *logger.Logger
}

func New(client Fetcher, log *logger.Logger) *PIMConnector {
	if log == nil {
		log = logger.Nop()
	}
	return &PIMConnector{
		client:      client,
		transformer: pimservice.NewTransformer(),
		logger:      log,
	}
}

// Families fetches and adapts every reference.
func (pc *PIMConnector) Families(ctx context.Context) []models.ProductFamily {
	return pc.transformer.AdaptReferencesToFamilies(pc.client.Fetch(ctx, pimservice.EndpointReferences))
}

// Reference returns the reference whose id stringifies to id, or nil.
func (pc *PIMConnector) Reference(ctx context.Context, id string) *models.ProductFamily {
	for _, item := range pc.client.Fetch(ctx, pimservice.EndpointReferences) {
		if pimservice.Wrap(item).Get("id").TextOr("") != id {
			continue
		}
		return pc.transformer.AdaptReferenceToFamily(item)
	}
	pc.logger.Debug("PIM reference %s not found", id)
	return nil
}

// Bundle fetches the six PIM lists concurrently and adapts them. A failed
// list is empty; the others are still returned.
func (pc *PIMConnector) Bundle(ctx context.Context) *Bundle {
	var references, dimensions, tissues, colors, feet, stocks []any

	g, gctx := errgroup.WithContext(ctx)
	fetch := func(endpoint string, dst *[]any) {
		g.Go(func() error {
			*dst = pc.client.Fetch(gctx, endpoint)
			return nil
		})
	}
	fetch(pimservice.EndpointReferences, &references)
	fetch(pimservice.EndpointDimensions, &dimensions)
	fetch(pimservice.EndpointTissues, &tissues)
	fetch(pimservice.EndpointColors, &colors)
	fetch(pimservice.EndpointFeet, &feet)
	fetch(pimservice.EndpointStocks, &stocks)
	_ = g.Wait()

	t := pc.transformer
	bundle := &Bundle{
		Families:         t.AdaptReferencesToFamilies(references),
		FabricCategories: t.AdaptTissuesToFabricCategories(tissues),
		LegTypes:         t.AdaptFeetToLegTypes(feet),
		LegColors:        t.AdaptColorsToLegColors(colors),
		Availability:     t.AdaptStockToAvailability(stocks),
		Variants:         t.AdaptDimensionsToVariants(dimensions),
	}

	pc.logger.Info("PIM bundle adapted: %d families, %d fabric categories, %d leg types",
		len(bundle.Families), len(bundle.FabricCategories), len(bundle.LegTypes))
	return bundle
}
