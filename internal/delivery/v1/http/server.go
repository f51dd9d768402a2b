package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/DRSN-tech/cafe-backend/internal/cfg"
	"github.com/DRSN-tech/cafe-backend/pkg/e"
)

const readHeaderTimeout = 2 * time.Second

// Server обёртка над http.Server с корректной остановкой.
type Server struct {
	httpServer *http.Server
}

func NewServer(handler http.Handler, cfg *cfg.HTTPConfig) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
			ReadTimeout:       cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
		},
	}
}

// Run слушает порт из конфигурации. После Stop возвращает nil.
func (s *Server) Run() error {
	lis, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return e.Wrap("HTTPServer.Run", err)
	}

	return s.Serve(lis)
}

func (s *Server) Serve(lis net.Listener) error {
	if err := s.httpServer.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return e.Wrap("HTTPServer.Serve", err)
	}

	return nil
}

// Stop дожидается завершения активных запросов, по истечении ctx соединения закрываются принудительно.
func (s *Server) Stop(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		_ = s.httpServer.Close()
		return e.Wrap("HTTPServer.Stop", err)
	}

	return nil
}
