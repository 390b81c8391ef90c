package ingress

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ledgersift/mail-ingestor/internal/logger"
	temporalprovider "github.com/ledgersift/mail-ingestor/internal/providers/temporal"
	"github.com/ledgersift/mail-ingestor/internal/store"
)

// Config holds the server configuration
type Config struct {
	Debug        bool
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	TaskQueue    string
	PushToken    string
}

// Server wraps the HTTP server
type Server struct {
	config     Config
	store      store.Store
	temporal   temporalprovider.Orchestrator
	httpServer *http.Server
}

// New creates a new ingress server
func New(cfg Config, st store.Store, orchestrator temporalprovider.Orchestrator) *Server {
	return &Server{
		config:   cfg,
		store:    st,
		temporal: orchestrator,
	}
}

// Start initializes and starts the HTTP server
func (s *Server) Start() error {
	if s.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(Recovery())
	router.Use(RequestID())
	router.Use(Logger())

	handler := NewHandler(s.temporal, s.store, s.config.TaskQueue)

	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/v1")
	{
		// Push deliveries from the provider's subscription
		v1.POST("/tenants/:tenant_id/notifications", PushAuth(s.config.PushToken), handler.ReceivePush)

		// Mailbox lifecycle management
		v1.POST("/tenants/:tenant_id/mailboxes", handler.LinkMailbox)
		v1.DELETE("/tenants/:tenant_id/mailboxes/:email_address", handler.UnlinkMailbox)
		v1.GET("/tenants/:tenant_id/mailboxes/:email_address/status", handler.MailboxStatus)
	}

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	logger.Info("Starting ingress server", zap.String("address", addr))

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down ingress server")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}
	return nil
}
