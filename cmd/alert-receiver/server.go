package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
)

// Server wraps the HTTP server and its listener
type Server struct {
	config   *Config
	logger   *logrus.Logger
	http     *http.Server
	listener net.Listener
}

// NewServer creates a server for config; nothing is bound until Listen.
func NewServer(config *Config, logger *logrus.Logger) *Server {
	return &Server{
		config: config,
		logger: logger,
		http: &http.Server{
			Handler:           NewRouter(logger, config.MaxBodyBytes),
			ReadHeaderTimeout: config.ReadTimeout,
			ReadTimeout:       config.ReadTimeout,
			WriteTimeout:      config.WriteTimeout,
		},
	}
}

// Listen binds the TCP listener and announces the address.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.config.Address())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Address(), err)
	}
	s.listener = ln

	s.logger.Infof("alert-receiver: listening on http://%s", s.displayAddress())
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// displayAddress keeps the configured host but reports the port actually
// bound, which differs from the configured one when PORT=0.
func (s *Server) displayAddress() string {
	port := s.config.Port
	if tcpAddr, ok := s.listener.Addr().(*net.TCPAddr); ok {
		port = tcpAddr.Port
	}
	return net.JoinHostPort(s.config.Host, strconv.Itoa(port))
}

// Serve handles requests until ctx is cancelled, then shuts down gracefully
// within the configured shutdown timeout. A cancelled ctx is a clean stop and
// returns nil.
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.http.Serve(s.listener)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("alert-receiver: shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	s.logger.Info("alert-receiver: stopped")
	return nil
}
