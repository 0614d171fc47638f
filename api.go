package handler

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"configurator/internal/api"
	"configurator/internal/config"
	"configurator/internal/logger"

	"github.com/gin-gonic/gin"
)

var (
	initOnce sync.Once
	router   *gin.Engine
	initErr  error
)

// initRouter builds the API once per serverless instance. Connections opened
// here live as long as the instance.
func initRouter() {
	cfg, err := config.Load()
	if err != nil {
		initErr = err
		return
	}
	// Only /tmp is writable on Vercel.
	if cfg.UploadDir == "uploads" {
		cfg.UploadDir = "/tmp/uploads"
	}

	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "api",
	})

	gin.SetMode(gin.ReleaseMode)
	server, _, err := api.Bootstrap(context.Background(), cfg, log)
	if err != nil {
		initErr = err
		return
	}
	router = server.GetRouter()
}

// Handler is the Vercel entry point.
func Handler(w http.ResponseWriter, r *http.Request) {
	initOnce.Do(initRouter)
	if initErr != nil {
		http.Error(w, fmt.Sprintf("Initialization failed: %v", initErr), http.StatusInternalServerError)
		return
	}
	router.ServeHTTP(w, r)
}
