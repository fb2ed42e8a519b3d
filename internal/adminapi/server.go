// Package adminapi exposes the operator-facing diagnostics surface: health
// checks, Prometheus scraping, and read-only snapshots of the registry and
// correlation tables. None of this is on the mobile or HMI wire (spec §6:
// "No CLI, no environment variables, no persisted state in the core" talks
// about the core's own protocol surface, not its ops tooling).
package adminapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/latticeworks/appmgr/internal/core"
	"github.com/latticeworks/appmgr/internal/metrics"
)

// Server wraps a gin engine exposing /healthz, /readyz, /metrics and the
// /debug/* introspection routes.
type Server struct {
	engine *gin.Engine
}

// New builds the admin HTTP surface bound to a live Core and Metrics.
func New(c *core.Core, m *metrics.Metrics, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())

	r.GET("/healthz", func(gc *gin.Context) {
		gc.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/readyz", func(gc *gin.Context) {
		gc.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	debug := r.Group("/debug")
	debug.GET("/apps", func(gc *gin.Context) {
		gc.JSON(http.StatusOK, c.DebugApps())
	})
	debug.GET("/correlation", func(gc *gin.Context) {
		gc.JSON(http.StatusOK, c.DebugCorrelation())
	})

	return &Server{engine: r}
}

// Handler returns the underlying HTTP handler for use with http.Server.
func (s *Server) Handler() http.Handler { return s.engine }
