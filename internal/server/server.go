// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the conversion pipeline over HTTP for the browser
// client. Every request is an independent unit of work; the only shared
// state is the artifact store.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/pdiddy/doc-converter/internal/convert"
	"github.com/pdiddy/doc-converter/internal/engine"
	"github.com/pdiddy/doc-converter/internal/store"
	"github.com/pdiddy/doc-converter/internal/webui"
	"github.com/pdiddy/doc-converter/pkg/types"
)

const (
	defaultAddr            = "localhost:5001"
	defaultMaxUploadBytes  = 64 << 20
	defaultShutdownTimeout = 5 * time.Second
)

// Server wires the conversion service, artifact store, and engine probe
// behind the HTTP API and the embedded browser UI.
type Server struct {
	cfg   types.ServerConfig
	svc   *convert.Service
	store *store.Store
	eng   engine.Engine
	log   *slog.Logger
}

// New creates a server from its collaborators. Zero config fields fall
// back to defaults.
func New(cfg types.ServerConfig, svc *convert.Service, st *store.Store, eng engine.Engine, log *slog.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	if log == nil {
		log = slog.Default()
	}
	return &Server{cfg: cfg, svc: svc, store: st, eng: eng, log: log}
}

// Handler builds the full route table with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/convert/docx-to-pdf", s.handleConvert(types.DocxToPDF))
	mux.HandleFunc("POST /api/convert/pdf-to-docx", s.handleConvert(types.PDFToDocx))
	mux.HandleFunc("POST /api/convert/batch", s.handleBatch)
	mux.HandleFunc("GET /api/download/{file_id}", s.handleDownload)
	mux.HandleFunc("POST /api/download/bulk", s.handleBulk)
	mux.HandleFunc("GET /api/status/{file_id}", s.handleStatus)
	mux.HandleFunc("GET /api/files", s.handleFiles)
	mux.HandleFunc("GET /api/health", s.handleHealth)

	mux.Handle("/", webui.Handler())

	var h http.Handler = mux
	h = cors(h)
	h = logging(s.log)(h)
	h = requestID(h)
	h = recovery(s.log)(h)
	return h
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}
