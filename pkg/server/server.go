// Package server exposes pack creation and settings over HTTP.
//
// Routes:
//
//	GET    /healthz                  liveness and build info
//	GET    /v1/defaults              anchor a pack would use right now
//	GET    /v1/config                saved configuration over defaults
//	PUT    /v1/config                merge and save a (partial) configuration
//	DELETE /v1/config                reset to defaults
//	POST   /v1/layout                compute a layout without creating anything
//	POST   /v1/packs                 create a pack
//	POST   /v1/actions/create-pack   custom action on a set of items
//	POST   /v1/events                forward a UI event to analytics
//	GET    /v1/analytics             tracking state
//	PUT    /v1/analytics             opt in or out
//
// Configuration bodies are validated against settings.Schema before use.
// Errors are returned as {"error": {"code": ..., "message": ...}} with a
// status derived from the error code.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/stickypack/pkg/analytics"
	sperrors "github.com/matzehuels/stickypack/pkg/errors"
	"github.com/matzehuels/stickypack/pkg/pack"
	"github.com/matzehuels/stickypack/pkg/settings"
)

const maxBodyBytes = 1 << 20

// Options wires a Server.
type Options struct {
	Orchestrator *pack.Orchestrator
	Settings     *settings.Service
	Tracker      *analytics.Tracker // optional
	Logger       *log.Logger        // optional
}

// Server is the HTTP API.
type Server struct {
	orch     *pack.Orchestrator
	settings *settings.Service
	tracker  *analytics.Tracker
	logger   *log.Logger
	router   chi.Router
}

// New builds the router.
func New(opts Options) *Server {
	s := &Server{
		orch:     opts.Orchestrator,
		settings: opts.Settings,
		tracker:  opts.Tracker,
		logger:   opts.Logger,
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.tracker == nil {
		s.tracker = analytics.NewTracker(nil)
		s.tracker.Disable()
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(s.recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/defaults", s.handleDefaults)

		r.Get("/config", s.handleGetConfig)
		r.Put("/config", s.handlePutConfig)
		r.Delete("/config", s.handleResetConfig)

		r.Post("/layout", s.handleLayout)
		r.Post("/packs", s.handleCreatePack)
		r.Post("/actions/create-pack", s.handleCustomAction)

		r.Post("/events", s.handleEvent)
		r.Get("/analytics", s.handleGetAnalytics)
		r.Put("/analytics", s.handlePutAnalytics)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// logRequests logs one line per request once it completes.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"took", time.Since(start).Round(time.Millisecond),
			"id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				s.logger.Error("panic in handler", "path", r.URL.Path, "panic", rec)
				writeError(w, sperrors.New(sperrors.ErrCodeInternal, "internal server error"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type errorBody struct {
	Error struct {
		Code    sperrors.Code `json:"code"`
		Message string        `json:"message"`
	} `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	var body errorBody
	body.Error.Code = sperrors.GetCode(err)
	if body.Error.Code == "" {
		body.Error.Code = sperrors.ErrCodeInternal
	}
	body.Error.Message = err.Error()
	writeJSON(w, sperrors.HTTPStatus(err), body)
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return sperrors.Wrap(sperrors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}
