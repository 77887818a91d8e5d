package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"strings"
	"time"

	"doomscroll/internal/platform/config"
	"doomscroll/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Server pairs a chi mux with a stdlib http.Server
type Server struct {
	addr string
	mux  *chi.Mux
	srv  *stdhttp.Server
	log  *logger.Logger

	// ShutdownGrace bounds how long Run waits for in-flight requests
	ShutdownGrace time.Duration
}

// NewServer reads PORT (default 4000) from cfg; opts see the mux before any route
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	addr := cfg.MayString("PORT", "4000")
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}
	m := chi.NewRouter()
	for _, o := range opts {
		o(m)
	}
	return &Server{
		addr: addr,
		mux:  m,
		log:  logger.Named("http"),
		srv: &stdhttp.Server{
			Addr:              addr,
			Handler:           m,
			ReadHeaderTimeout: 10 * time.Second,
		},
		ShutdownGrace: 15 * time.Second,
	}
}

// Router exposes the mux through the platform Router
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr is the listen address
func (s *Server) Addr() string { return s.addr }

// Run serves until ctx is done, then drains within ShutdownGrace
func (s *Server) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.addr).Msg("http listening")
		errc <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	sctx, cancel := context.WithTimeout(context.Background(), s.ShutdownGrace)
	defer cancel()
	s.log.Info().Msg("http draining")
	if err := s.srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }
