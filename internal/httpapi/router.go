package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Juicern/remagik/internal/preview"
	"github.com/Juicern/remagik/internal/service"
)

// NewRouter serves the application surface: rewrite and tone endpoints
// forwarded to the upstream backend, plus the channel catalog and previews.
func NewRouter(rewriter Rewriter, tones ToneStore, renderer *preview.Renderer, logger *slog.Logger) http.Handler {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := &ProxyAPI{
		rewriter: rewriter,
		tones:    tones,
		renderer: renderer,
		logger:   logger,
	}

	r.GET("/healthz", healthz)
	api.registerRoutes(r.Group("/api"))

	return r
}

// NewBackendRouter serves the upstream surface backed by the tone database
// and an LLM provider.
func NewBackendRouter(tones *service.ToneService, rewrites *service.RewriteService, logger *slog.Logger) http.Handler {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := &BackendAPI{
		tones:    tones,
		rewrites: rewrites,
		logger:   logger,
	}

	r.GET("/healthz", healthz)
	api.registerRoutes(r.Group("/api"))

	return r
}

func healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
