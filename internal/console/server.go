package console

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/outreach-console/internal/api/middleware"
	"github.com/GriffinCanCode/outreach-console/internal/backend"
	"github.com/GriffinCanCode/outreach-console/internal/domain/session"
	"github.com/GriffinCanCode/outreach-console/internal/domain/view"
	"github.com/GriffinCanCode/outreach-console/internal/infrastructure/config"
	"github.com/GriffinCanCode/outreach-console/internal/infrastructure/logging"
	"github.com/GriffinCanCode/outreach-console/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/outreach-console/internal/infrastructure/tracing"
)

const shutdownTimeout = 5 * time.Second

// Deps are the collaborators the server is built from.
type Deps struct {
	Config    *config.Config
	Session   *session.Manager
	API       *backend.API
	Logger    *logging.Logger
	Metrics   *monitoring.Metrics
	Gatherer  prometheus.Gatherer
	Sanitizer *view.Sanitizer
}

// Server wraps the HTTP server and dependencies
type Server struct {
	router    *gin.Engine
	session   *session.Manager
	api       *backend.API
	sanitizer *view.Sanitizer
	logger    *logging.Logger
	metrics   *monitoring.Metrics
	upgrader  websocket.Upgrader
	addr      string

	closing   chan struct{}
	closeOnce sync.Once
}

// New creates a server instance
func New(deps Deps) *Server {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if deps.Logger == nil {
		deps.Logger = logging.Nop()
	}
	if deps.Sanitizer == nil {
		deps.Sanitizer = view.NewSanitizer()
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	s := &Server{
		router:    gin.New(),
		session:   deps.Session,
		api:       deps.API,
		sanitizer: deps.Sanitizer,
		logger:    deps.Logger.Named("console"),
		metrics:   deps.Metrics,
		addr:      cfg.Server.Addr(),
		closing:   make(chan struct{}),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     allowOrigins(cfg.CORS.AllowOrigins),
	}

	s.router.Use(
		middleware.RequestID(),
		tracing.HTTPMiddleware(),
		middleware.Recovery(s.logger),
		middleware.Logger(s.logger),
		monitoring.Middleware(s.metrics),
		middleware.CORS(cfg.CORS.AllowOrigins),
	)
	if cfg.RateLimit.Enabled {
		limit := middleware.DefaultRateLimitConfig()
		if cfg.RateLimit.RequestsPerSecond > 0 {
			limit.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		}
		if cfg.RateLimit.Burst > 0 {
			limit.Burst = cfg.RateLimit.Burst
		}
		s.router.Use(middleware.RateLimit(limit))
	}

	s.routes(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{DisableCompression: true}))
	return s
}

func (s *Server) routes(metricsHandler http.Handler) {
	s.router.GET("/healthz", s.health)
	s.router.GET("/metrics", gin.WrapH(metricsHandler))

	sess := s.router.Group("/session")
	{
		sess.GET("", s.getSession)
		sess.POST("/login", s.login)
		sess.POST("/logout", s.logout)
		sess.GET("/events", s.events)
	}

	dash := s.router.Group("/dashboard", s.requireDashboard())
	{
		dash.GET("/stats", s.stats)
		dash.GET("/analytics", s.analytics)

		dash.GET("/prospects", s.listProspects)
		dash.POST("/prospects/:id/message", s.sendMessage)

		dash.GET("/campaigns", s.listCampaigns)
		dash.POST("/campaigns", s.createCampaign)
		dash.POST("/campaigns/:id/start", s.startCampaign)
		dash.POST("/campaigns/:id/pause", s.pauseCampaign)

		dash.GET("/accounts", s.listAccounts)
		dash.POST("/accounts", s.createAccount)
		dash.PUT("/accounts/:id", s.updateAccount)
		dash.DELETE("/accounts/:id", s.deleteAccount)
		dash.POST("/accounts/:id/test", s.testAccount)

		dash.GET("/deployments", s.listDeployments)
		dash.POST("/deployments", s.createDeployment)

		dash.GET("/coolify", s.listCoolifyConfigs)
		dash.POST("/coolify", s.createCoolifyConfig)
	}
}

// Handler returns the root handler. Responses are gzip-compressed except the
// websocket feed, which needs the raw connection.
func (s *Server) Handler() http.Handler {
	gz := gzhttp.GzipHandler(s.router)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == eventsPath {
			s.router.ServeHTTP(w, r)
			return
		}
		gz.ServeHTTP(w, r)
	})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Console server listening", zap.String("addr", s.addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("console server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down console server")
	s.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("console server shutdown: %w", err)
	}
	return nil
}

// Close ends open event feeds. Safe to call more than once.
func (s *Server) Close() {
	s.closeOnce.Do(func() { close(s.closing) })
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"session": s.session.State().String(),
	})
}
