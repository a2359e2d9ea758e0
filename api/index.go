package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/arnavshah/rotation-api-go/pkg/config"
	"github.com/arnavshah/rotation-api-go/pkg/handlers"
	"github.com/arnavshah/rotation-api-go/pkg/logging"
)

var (
	r       *gin.Engine
	initErr error
)

func init() {
	// Load .env if it exists (for local testing with vercel dev)
	_, _ = config.LoadEnv(".env", "../.env")
	cfg := config.Load()

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		log = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	h, err := handlers.Setup(cfg, log)
	if err != nil {
		log.Error("could not initialize handler", zap.Error(err))
		initErr = err
		return
	}
	r = h.NewRouter()
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	if initErr != nil {
		http.Error(w, `{"error":"service unavailable"}`, http.StatusServiceUnavailable)
		return
	}
	r.ServeHTTP(w, req)
}
