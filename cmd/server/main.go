package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arnavshah/rotation-api-go/pkg/config"
	"github.com/arnavshah/rotation-api-go/pkg/handlers"
	"github.com/arnavshah/rotation-api-go/pkg/logging"
)

func main() {
	// Load .env if it exists
	envFile, envErr := config.LoadEnv()
	cfg := config.Load()

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()
	if envErr != nil {
		log.Warn("could not load env file", zap.String("path", envFile), zap.Error(envErr))
	}

	if cfg.GinMode == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	h, err := handlers.Setup(cfg, log)
	if err != nil {
		log.Fatal("could not initialize server", zap.Error(err))
	}

	log.Info("server starting", zap.String("port", cfg.Port), zap.String("version", handlers.Version))
	if err := h.NewRouter().Run(":" + cfg.Port); err != nil {
		log.Fatal("could not run server", zap.Error(err))
	}
}
