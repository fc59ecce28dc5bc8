// Package httpapi serves the registration form over HTTP: a server-rendered
// HTML page, a JSON submission endpoint, the OpenAPI contract and metrics.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/goliatone/go-regform/internal/metrics"
	"github.com/goliatone/go-regform/pkg/contract"
	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
)

// Routes served by the handler.
const (
	RouteForm     = "/"
	RouteRegister = "/api/register"
	RouteContract = "/openapi.json"
	RouteMetrics  = "/metrics"
	RouteHealth   = "/healthz"
	RouteAssets   = "/assets/"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and submission logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithOrchestrator replaces the form rendering pipeline.
func WithOrchestrator(orch *orchestrator.Orchestrator) Option {
	return func(s *Server) {
		if orch != nil {
			s.initial = orch
		}
	}
}

// WithMetrics records submissions and request latency. gatherer backs the
// /metrics route; nil leaves the route unmounted.
func WithMetrics(m *metrics.Metrics, gatherer prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = gatherer
	}
}

// WithSubmitter sets the collaborator receiving accepted submissions.
func WithSubmitter(submitter form.Submitter) Option {
	return func(s *Server) {
		if submitter != nil {
			s.submitter = submitter
		}
	}
}

// WithFormOptions forwards options to every per-request form.
func WithFormOptions(options ...form.Option) Option {
	return func(s *Server) {
		s.formOptions = append(s.formOptions, options...)
	}
}

// Server owns the HTTP surface. A new form is created for every submission.
type Server struct {
	logger      *zap.Logger
	initial     *orchestrator.Orchestrator
	orch        atomic.Pointer[orchestrator.Orchestrator]
	metrics     *metrics.Metrics
	gatherer    prometheus.Gatherer
	submitter   form.Submitter
	formOptions []form.Option
	contract    []byte
}

// New builds a Server. The OpenAPI contract is generated once here.
func New(ctx context.Context, options ...Option) (*Server, error) {
	s := &Server{logger: zap.NewNop()}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.initial == nil {
		s.initial = orchestrator.New()
	}
	if s.submitter == nil {
		s.submitter = form.LogSubmitter(s.logger)
	}
	if err := s.Reload(ctx, s.initial); err != nil {
		return nil, err
	}

	doc, err := contract.JSON(ctx, contract.WithPath(RouteRegister))
	if err != nil {
		return nil, fmt.Errorf("httpapi: contract: %w", err)
	}
	s.contract = doc
	return s, nil
}

// Reload swaps the rendering pipeline after checking that it builds. On error
// the current pipeline stays in place.
func (s *Server) Reload(ctx context.Context, orch *orchestrator.Orchestrator) error {
	if orch == nil {
		return errors.New("httpapi: reload: orchestrator is nil")
	}
	if _, err := orch.Form(ctx); err != nil {
		return fmt.Errorf("httpapi: form pipeline: %w", err)
	}
	s.orch.Store(orch)
	return nil
}

// Handler returns the chi router with every route mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get(RouteForm, s.handleForm)
	r.Post(RouteForm, s.handleSubmitForm)
	r.Post(RouteRegister, s.handleRegister)
	r.Get(RouteContract, s.handleContract)
	r.Get(RouteHealth, s.handleHealth)
	r.Handle(RouteAssets+"*", http.StripPrefix(RouteAssets, http.FileServer(http.FS(vanilla.AssetsFS()))))
	if s.gatherer != nil {
		r.Handle(RouteMetrics, promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func (s *Server) newForm() (*form.Form, error) {
	options := []form.Option{form.WithSubmitter(s.submitter)}
	if s.metrics != nil {
		options = append(options, form.WithObserver(s.metrics.Observer()))
	}
	options = append(options, s.formOptions...)
	return form.New(options...)
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("httpapi: listen: %w", err)
	case <-ctx.Done():
		s.logger.Info("http server shutting down")
		if err := srv.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("httpapi: shutdown: %w", err)
		}
		return nil
	}
}
