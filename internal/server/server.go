// Package server runs a fiber app with check alive and graceful shutdown.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/GoUserManagement/UserManagement/internal/config"
)

const (
	// CheckAlivePath answers 200 while serving and 503 while draining.
	CheckAlivePath = "/checkalive"
	// MetricsPath exposes the prometheus registry.
	MetricsPath = "/metrics"
)

// Server wraps a fiber app with its lifecycle.
type Server struct {
	App          *fiber.App
	cfg          config.Webserver
	fastShutDown bool
	alive        atomic.Bool
	done         chan struct{}
}

// New creates a Server and registers the check alive and metrics routes on app.
// Routes must be registered before the app handles requests.
func New(app *fiber.App, cfg config.Webserver, fastShutDown bool) *Server {
	s := &Server{
		App:          app,
		cfg:          cfg,
		fastShutDown: fastShutDown,
		done:         make(chan struct{}),
	}

	s.alive.Store(true)

	app.Get(CheckAlivePath, s.CheckAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	return s
}

// CheckAlive reports the serving state for load balancers.
func (s *Server) CheckAlive(c fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("OK")
}

// Alive reports whether the server accepts traffic.
func (s *Server) Alive() bool {
	return s.alive.Load()
}

// Start listens on the configured port in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", ":"+strconv.Itoa(s.cfg.Port))
	if err != nil {
		return err //nolint:wrapcheck
	}

	s.Serve(ln)

	return nil
}

// Serve serves on ln in the background.
func (s *Server) Serve(ln net.Listener) {
	log.Info().Str("addr", ln.Addr().String()).Str("url", s.cfg.URL).Msg("http server listening")

	go func() {
		defer close(s.done)

		err := s.App.Listener(ln, fiber.ListenConfig{DisableStartupMessage: true})
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("fiber listen error")
		}
	}()
}

// WaitShutdown blocks until SIGINT or SIGTERM and then shuts down.
func (s *Server) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	s.Shutdown(context.Background())
}

// Shutdown drains and stops the server.
// Unless fast shutdown is set check alive fails for ShutDownTime seconds first,
// so load balancers can take this instance out.
func (s *Server) Shutdown(ctx context.Context) {
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 for %d seconds to let LB remove this instance from active targets",
			s.cfg.ShutDownTime,
		)

		s.alive.Store(false)

		select {
		case <-time.After(time.Duration(s.cfg.ShutDownTime) * time.Second):
		case <-ctx.Done():
		}
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// Done is closed once the listener returned.
func (s *Server) Done() <-chan struct{} {
	return s.done
}
