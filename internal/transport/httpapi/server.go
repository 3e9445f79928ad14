// Package httpapi is the demo HTTP transport standing in for the
// out-of-scope RPC surface of spec §6: gin route groups for snapshot
// ingestion and route queries, a gorilla/websocket endpoint for step
// events, and a Prometheus /metrics endpoint, wired the way
// services/orchestrator/routes/routes.go wires gin route groups in the
// retrieved AleutianLocal tree.
package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sagsin-net/heuristic/facade"
	"github.com/sagsin-net/heuristic/internal/obslog"
)

// Server wraps a gin.Engine bound to one Facade.
type Server struct {
	router  *gin.Engine
	facade  *facade.Facade
	metrics *facade.Metrics
	log     *obslog.Logger
}

// NewServer builds a Server with routes registered but not yet
// listening; call Run to start serving.
func NewServer(f *facade.Facade, metrics *facade.Metrics, log *obslog.Logger) *Server {
	if log == nil {
		log = obslog.Default()
	}

	s := &Server{
		router:  gin.New(),
		facade:  f,
		metrics: metrics,
		log:     log.With("component", "httpapi"),
	}
	s.router.Use(gin.Recovery())
	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	if s.metrics != nil {
		s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})))
	}

	v1 := s.router.Group("/v1")
	{
		v1.POST("/snapshot", s.handleApplySnapshot)

		routes := v1.Group("/routes")
		{
			routes.POST("", s.handleRequestRoute)
			routes.POST("/k-shortest", s.handleKShortest)
			routes.POST("/backup", s.handleBackupRoute)
		}

		v1.GET("/stats", s.handleStats)
		v1.GET("/stats/critical", s.handleCritical)

		stability := v1.Group("/stability")
		{
			stability.GET("/network", s.handleNetworkStability)
			stability.GET("/:id", s.handleEntityStability)
		}

		v1.GET("/runs", s.handleRecentRuns)
		v1.GET("/stream", s.handleStream)
	}
}

// Router exposes the underlying gin.Engine, mainly for tests
// (httptest.NewServer(s.Router())).
func (s *Server) Router() *gin.Engine { return s.router }

// Run starts serving on addr, blocking until the listener errors.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
