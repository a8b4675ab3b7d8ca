package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/broncospizza/orders-api/internal/config"
	"github.com/broncospizza/orders-api/internal/domain"
	"github.com/broncospizza/orders-api/internal/pkg/health"
	"github.com/broncospizza/orders-api/internal/pkg/logger"
	"github.com/broncospizza/orders-api/internal/service"
)

// Server is the HTTP server: a gin router mounted in an http.Server so
// the timeouts and graceful shutdown stay under our control.
type Server struct {
	service    service.OrderService
	hc         *health.DBHealthChecker
	logger     logger.Logger
	httpServer *http.Server
}

// NewServer creates a new Server and registers all routes.
func NewServer(svc service.OrderService, hc *health.DBHealthChecker, logger logger.Logger, cfg config.HTTPServerConfig) *Server {
	srv := &Server{
		service: svc,
		hc:      hc,
		logger:  logger,
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), metricsMiddleware())

	router.GET("/sizes", srv.listCatalog(domain.CatalogSize))
	router.GET("/sauces", srv.listCatalog(domain.CatalogSauce))
	router.GET("/toppings", srv.listCatalog(domain.CatalogTopping))

	router.POST("/", srv.createOrder)
	router.GET("/:id", srv.getOrder)
	router.PUT("/:id", srv.updateOrder)
	router.DELETE("/:id", srv.deleteOrder)

	router.GET("/health", srv.healthz)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv.httpServer = &http.Server{
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return srv
}

// Start the server.
func (s *Server) Start(addr string) error {
	s.httpServer.Addr = addr
	s.logger.Infow("server listening", "addr", addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server, draining in-flight
// requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Infow("shutting down server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) healthz(c *gin.Context) {
	if !s.hc.IsHealthy() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
