package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/vfg2006/ads-dashboard-api/internal/api/handler"
	"github.com/vfg2006/ads-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/ads-dashboard-api/internal/config"
	"github.com/vfg2006/ads-dashboard-api/internal/metrics"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/dashboard"
	"github.com/vfg2006/ads-dashboard-api/pkg/log"
	"github.com/vfg2006/ads-dashboard-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
	onShutdown []func()
}

// Dependencies reúne o que as rotas precisam
type Dependencies struct {
	Manager    *dashboard.Manager
	SyncStatus handler.SyncStatusReporter
	Validator  authenticating.TokenValidator
	Metrics    *metrics.Metrics
	Database   handler.Pinger

	// MetricsHandler expõe /metrics; nil usa o registro padrão do Prometheus
	MetricsHandler http.Handler
}

func New(cfg *config.Config, deps Dependencies, onShutdown ...func()) (*Server, error) {
	if deps.Manager == nil || deps.Validator == nil {
		return nil, fmt.Errorf("servidor requer o gerenciador de visões e o validador de token")
	}
	if deps.MetricsHandler == nil {
		deps.MetricsHandler = metrics.Handler()
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck(deps.Manager, deps.Database)...),
		router.WithRoutes(handler.Metrics(deps.MetricsHandler)...),
		router.WithRoutes(handler.Dashboard(deps.Manager, cfg.Location())...),
		router.WithRoutes(handler.SyncStatus(deps.SyncStatus)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(deps.Metrics),
		middleware.Cors(cfg.Server.AllowedOrigins...),
		middleware.AuthMiddleware(deps.Validator),
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           alice.New(middlewares...).Then(rt),
			ReadHeaderTimeout: 2 * time.Second,
		},
		onShutdown: onShutdown,
	}

	return srv, nil
}

// Handler expõe a cadeia completa de middlewares e rotas
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.L.WithFields(log.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.L.WithError(err).Error("Erro durante a execução do servidor")
			errCh <- err
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case <-done:
		log.L.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		log.L.Info("Contexto de aplicação cancelado")
	case err := <-errCh:
		s.cleanup()
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.L.WithFields(log.Fields{
		"timeout": shutdownTimeout.String(),
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		log.L.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	log.L.Info("Servidor desligado com sucesso")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	s.cleanup()
	if err != nil {
		return err
	}

	log.L.Info("Servidor HTTP desligado com sucesso")
	return nil
}

// cleanup encerra visões e sincronizações depois que o HTTP parou de aceitar requisições
func (s *Server) cleanup() {
	log.L.Info("Executando operações de limpeza antes do desligamento")
	for _, fn := range s.onShutdown {
		fn()
	}
	s.onShutdown = nil
}
