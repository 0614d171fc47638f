package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"configurator/internal/api/handlers"
	"configurator/internal/api/middleware"
	"configurator/internal/catalog"
	"configurator/internal/config"
	pimconnector "configurator/internal/connectors/pim"
	"configurator/internal/events"
	"configurator/internal/logger"
	"configurator/internal/media"
	"configurator/internal/metrics"
	"configurator/internal/services/pim"
	"configurator/internal/sofas"

	"github.com/gin-gonic/gin"
	"go.uber.org/multierr"
)

// Deps are the services the HTTP surface is built on.
type Deps struct {
	Store     *catalog.Store
	Sofas     sofas.Repository
	PIM       *pim.Client
	Connector *pimconnector.PIMConnector
	Media     *media.Storage
	Publisher events.Publisher
	Metrics   *metrics.Metrics
}

type Server struct {
	config    *config.Config
	logger    *logger.Logger
	publisher events.Publisher
	router    *gin.Engine
	server    *http.Server
}

func New(cfg *config.Config, logger *logger.Logger, deps Deps) *Server {
	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if deps.Publisher == nil {
		deps.Publisher = events.NopPublisher{}
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.MaxUploadBytes + 1<<20

	// Middleware
	router.Use(middleware.Logger(logger, deps.Metrics))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS(cfg.Origins()))

	// Initialize handlers
	familyHandler := handlers.NewFamilyHandler(deps.Store, deps.Media, deps.Publisher, deps.Metrics, logger)
	sofaHandler := handlers.NewSofaHandler(deps.Sofas, deps.Media, deps.Metrics, logger)
	pimHandler := handlers.NewPIMHandler(deps.PIM, deps.Connector, deps.Publisher, logger)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	router.GET("/placeholder.jpg", func(c *gin.Context) {
		c.File(cfg.PlaceholderFile)
	})

	// Routes
	api := router.Group("/api")
	{
		api.Static("/uploads", deps.Media.Dir())
		api.Static("/images", cfg.AssetsDir)

		// Families
		families := api.Group("/families")
		{
			families.GET("", familyHandler.List)
			families.GET("/summary", familyHandler.Summary)
			families.GET("/:id", familyHandler.Get)
			families.GET("/:id/related", familyHandler.Related)
			families.GET("/:id/variants/:variantId", familyHandler.GetVariant)
			families.POST("/:id/variants/:variantId/photos", familyHandler.UploadPhoto)
		}
		api.GET("/fabric-categories", familyHandler.FabricCategories)
		api.GET("/legs", familyHandler.Legs)

		// Legacy sofas
		sofaRoutes := api.Group("/sofas")
		{
			sofaRoutes.GET("", sofaHandler.List)
			sofaRoutes.GET("/filter", sofaHandler.Filter)
			sofaRoutes.GET("/:id", sofaHandler.Get)
			sofaRoutes.POST("", sofaHandler.Create)
			sofaRoutes.PATCH("/:id", sofaHandler.Update)
			sofaRoutes.POST("/:id/photos", sofaHandler.UploadPhoto)
		}

		// Raw PIM proxy
		for _, endpoint := range pim.Endpoints {
			api.GET("/"+endpoint, pimHandler.Proxy(endpoint))
		}

		// Adapted PIM catalog
		pimRoutes := api.Group("/pim")
		{
			pimRoutes.GET("/families", pimHandler.Families)
			pimRoutes.GET("/families/:id", pimHandler.Family)
			pimRoutes.GET("/catalog", pimHandler.Catalog)
			pimRoutes.POST("/refresh", pimHandler.Refresh)
		}
	}

	return &Server{
		config:    cfg,
		logger:    logger,
		publisher: deps.Publisher,
		router:    router,
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.APIHost, s.config.APIPort)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server on " + addr)
	return s.server.ListenAndServe()
}

// Stop drains in-flight requests, then flushes the event publisher.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	var err error
	if s.server != nil {
		err = s.server.Shutdown(ctx)
	}
	return multierr.Append(err, s.publisher.Close())
}

// GetRouter returns the Gin router for Vercel
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}
