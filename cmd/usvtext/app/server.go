// Copyright (c) 2025 The USVText Authors.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"net"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"go.uber.org/zap"

	"github.com/usvtext/usvtext/internal/healthcheck"
	"github.com/usvtext/usvtext/internal/httpmetrics"
	"github.com/usvtext/usvtext/internal/metrics"
	"github.com/usvtext/usvtext/internal/recoveryhandler"
	"github.com/usvtext/usvtext/internal/scanservice"
)

// Server runs the scanner HTTP API.
type Server struct {
	logger        *zap.Logger
	scanner       *scanservice.Scanner
	batch         *scanservice.BatchProcessor
	serverOptions *ServerOptions

	httpConn           net.Listener
	httpServer         *http.Server
	unavailableChannel chan healthcheck.Status
}

// NewServer creates and initializes Server.
func NewServer(
	logger *zap.Logger,
	scanner *scanservice.Scanner,
	batch *scanservice.BatchProcessor,
	options *ServerOptions,
	metricsFactory metrics.Factory,
) (*Server, error) {
	if _, _, err := net.SplitHostPort(options.HTTPHostPort); err != nil {
		return nil, err
	}

	return &Server{
		logger:             logger,
		scanner:            scanner,
		batch:              batch,
		serverOptions:      options,
		httpServer:         createHTTPServer(scanner, batch, options, metricsFactory, logger),
		unavailableChannel: make(chan healthcheck.Status),
	}, nil
}

// HealthCheckStatus returns health check status channel a client can subscribe to.
func (s Server) HealthCheckStatus() chan healthcheck.Status {
	return s.unavailableChannel
}

func createHTTPServer(
	scanner *scanservice.Scanner,
	batch *scanservice.BatchProcessor,
	serverOpts *ServerOptions,
	metricsFactory metrics.Factory,
	logger *zap.Logger,
) *http.Server {
	apiHandler := NewAPIHandler(
		scanner,
		batch,
		HandlerOptions.Logger(logger))
	r := NewRouter()
	if serverOpts.BasePath != "/" {
		r = r.PathPrefix(serverOpts.BasePath).Subrouter()
	}

	apiHandler.RegisterRoutes(r)
	var handler http.Handler = r
	handler = httpmetrics.Wrap(handler, metricsFactory)
	handler = handlers.CompressHandler(handler)
	recoveryHandler := recoveryhandler.NewRecoveryHandler(logger, true)
	errorLog, _ := zap.NewStdLogAt(logger, zap.ErrorLevel)
	return &http.Server{
		Handler:           recoveryHandler(handler),
		ErrorLog:          errorLog,
		ReadHeaderTimeout: 2 * time.Second,
	}
}

// Start http server concurrently.
func (s *Server) Start() error {
	conn, err := net.Listen("tcp", s.serverOptions.HTTPHostPort)
	if err != nil {
		return err
	}
	s.httpConn = conn
	s.logger.Info(
		"Scanner server started",
		zap.String("http.host-port", s.httpConn.Addr().String()))

	go func() {
		switch err := s.httpServer.Serve(s.httpConn); err {
		case nil, http.ErrServerClosed:
			// normal exit, nothing to do
		default:
			s.logger.Error("Could not start HTTP server", zap.Error(err))
		}
		s.unavailableChannel <- healthcheck.Unavailable
	}()
	return nil
}

// Close stops the HTTP server and closes the port listener.
func (s *Server) Close() error {
	return s.httpServer.Close()
}
