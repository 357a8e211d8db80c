// Package api configures and exposes the HTTP server, routes,
// metrics, docs and related middleware for the registrar.
package api

import (
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"time"

	"registrar/internal/api/handler/v1handler"
	"registrar/internal/api/handler/webhandler"
	"registrar/internal/config"
	"registrar/pkg/controller"
	"registrar/pkg/serrors"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggest/swgui/v5emb"
)

// v1Spec contains the embedded OpenAPI specification for version 1 of the API.
//
//go:embed specs/v1.yaml
var v1Spec []byte

// JobsPrefix is where the job queue dashboard is mounted.
const JobsPrefix = "/admin/jobs"

// Options holds configuration for the HTTP server and its dependencies.
// It is typically created from a config.Config via NewOptions.
// Zero durations fall back to the net/http defaults.
type Options struct {
	// SecHandlerOptions configures token authentication for the API and pages.
	SecHandlerOptions *v1handler.SecHandlerOptions

	// Addr is the TCP address the server listens on, e.g. ":8080".
	Addr              string
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	// RequestTimeout is the global timeout applied via http.TimeoutHandler for handling requests.
	RequestTimeout time.Duration
	MaxHeaderBytes int
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string

	// RateLimit is the per client IP request rate, zero disables limiting.
	RateLimit      float64
	RateBurst      int
	AllowedOrigins string
}

// NewOptions constructs an Options value from the provided application configuration.
func NewOptions(cfg *config.Config) Options {
	return Options{
		SecHandlerOptions: v1handler.NewSecHandlerOptions(cfg),

		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
		RateLimit:         cfg.HTTP.RateLimit,
		RateBurst:         cfg.HTTP.RateBurst,
		AllowedOrigins:    cfg.HTTP.AllowedOrigins,
	}
}

type Deps struct {
	v1handler.Deps

	// Jobs serves the job queue dashboard to staff. Optional.
	Jobs http.Handler
}

// NewServer wires up and returns a configured *http.Server using the provided Options.
// It sets up:
// - Prometheus metrics endpoint (MetricsPath)
// - Embedded OpenAPI v1 spec and Swagger UI
// - JSON API and HTML pages behind token authentication
// - the job dashboard for staff, when deps.Jobs is set
// - pprof endpoints for staff
// The router is wrapped with CORS, rate limiting and logging middlewares and
// a request timeout. The rate limiter janitor runs until ctx is done.
func NewServer(ctx context.Context, deps Deps, opts Options) (*http.Server, error) {
	secHandler, err := v1handler.NewSecHandler(opts.SecHandlerOptions)
	if err != nil {
		return nil, fmt.Errorf("could not create sec handler: %w", err)
	}
	pages, err := webhandler.New(webhandler.Deps{
		Domains:  deps.Domains,
		Requests: deps.Requests,
		Now:      deps.Now,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create web handler: %w", err)
	}

	limiter := controller.NewRateLimiter(opts.RateLimit, opts.RateBurst)
	limiter.StartJanitor(ctx, time.Minute)

	r := chi.NewRouter()

	// prometheus metrics server
	r.Handle(opts.MetricsPath, promhttp.Handler())

	// v1 specs file
	r.Get("/specs/v1.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(v1Spec)
	})
	// v1 api swagger playground
	r.Handle("/v1/docs/*", v5emb.New(
		"Registrar",
		"/specs/v1.yaml",
		"/v1/docs/",
	))

	authenticate := secHandler.Authenticate(deps.Users)
	r.Group(func(r chi.Router) {
		r.Use(authenticate, requireStaff)

		// pprof
		r.Handle("/debug/pprof/*", http.StripPrefix("/debug/pprof", controller.PprofMux()))

		if deps.Jobs != nil {
			r.Handle(JobsPrefix, deps.Jobs)
			r.Handle(JobsPrefix+"/*", deps.Jobs)
		}
	})

	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware)
		v1handler.New(deps.Deps, secHandler).Register(r)
		pages.Register(r, authenticate)
	})

	// cors
	handler := controller.WithCORS(opts.AllowedOrigins)(r)

	// logger
	handler = controller.WithLogger(handler)

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           http.TimeoutHandler(handler, opts.RequestTimeout, `{"error":"request timed out"}`),
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
	}, nil
}

func requireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !v1handler.GetUserFromContext(r.Context()).IsStaff {
			controller.WriteError(r.Context(), w, serrors.With(serrors.ErrForbidden, "staff only"))

			return
		}
		next.ServeHTTP(w, r)
	})
}
