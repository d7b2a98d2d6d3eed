package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Lllllllleong/linkedlens/internal/api"
	"github.com/Lllllllleong/linkedlens/internal/config"
	"github.com/Lllllllleong/linkedlens/internal/metrics"
	"github.com/Lllllllleong/linkedlens/internal/services"
	"github.com/Lllllllleong/linkedlens/internal/store"
)

var (
	router  http.Handler
	once    sync.Once
	initErr error
)

func init() {
	gin.SetMode(gin.ReleaseMode)

	// Register the HTTP function with the framework.
	// "DocumentAPI" is the entry point name we'll see in GCP.
	functions.HTTP("DocumentAPI", handleDocumentAPI)
}

// main is required by the Go Functions Framework.
func main() {}

func handleDocumentAPI(w http.ResponseWriter, r *http.Request) {
	// Use sync.Once for one-time initialization of clients.
	once.Do(func() {
		router, initErr = newRouter(context.Background())
	})
	if initErr != nil {
		slog.Error("CRITICAL: document API initialization failed", "error", initErr)
		http.Error(w, "Internal Server Error: failed to initialize service", http.StatusInternalServerError)
		return
	}
	router.ServeHTTP(w, r)
}

func newRouter(ctx context.Context) (http.Handler, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg.SetupLogging(os.Stdout)

	s, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	metrics.RegisterCollectors(reg)
	svc := services.NewDocumentService(metrics.InstrumentStore(s, cfg.Backend))

	slog.Info("Document API initialized.", "backend", cfg.Backend)
	return api.NewRouter(svc, cfg.Backend, reg), nil
}
