// Package server maps inbound routes to the page pipelines and turns
// pipeline errors into fixed, non-leaking responses.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"cryptodigest/internal/provider"
)

// Pages renders the three pages. *digest.Service implements it.
type Pages interface {
	News(ctx context.Context, symbol string) (string, error)
	Info(ctx context.Context, symbol string) (string, error)
	Prices(ctx context.Context, symbol string) (string, error)
}

// Options configures the handler.
type Options struct {
	// StaticDir is served under /static/ when non-empty.
	StaticDir string
	// Metrics is served at /metrics when non-nil.
	Metrics http.Handler
	Log     zerolog.Logger
}

type failure struct {
	unavailable string
	parse       string
}

// messages are the only error bodies a pipeline ever returns.
var messages = map[string]failure{
	"news":   {unavailable: "Failed to fetch news", parse: "Failed to parse news response"},
	"info":   {unavailable: "Failed to fetch info", parse: "Failed to parse info response"},
	"prices": {unavailable: "Failed to fetch price data", parse: "Failed to parse price data"},
}

const (
	msgNotConfigured = "Service not configured"
	msgInternal      = "Internal server error"
)

// New returns the service's root handler.
func New(pages Pages, opts Options) http.Handler {
	mux := http.NewServeMux()

	news := pageHandler("news", pages.News)
	mux.Handle("GET /{$}", news)
	mux.Handle("GET /news", news)
	mux.Handle("GET /info", pageHandler("info", pages.Info))
	mux.Handle("GET /prices", pageHandler("prices", pages.Prices))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Metrics != nil {
		mux.Handle("GET /metrics", opts.Metrics)
	}
	if opts.StaticDir != "" {
		mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(opts.StaticDir))))
	}

	return withHeaders(logRequests(opts.Log, withGzip(recoverPanic(opts.Log, mux))))
}

func pageHandler(pipeline string, render func(context.Context, string) (string, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		doc, err := render(r.Context(), r.URL.Query().Get("symbol"))
		if err != nil {
			status, msg := errorResponse(pipeline, err)
			http.Error(w, msg, status)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(doc))
	})
}

// errorResponse maps a pipeline error to a status and a fixed body.
// NotFound never reaches here: pipelines render it as a page.
func errorResponse(pipeline string, err error) (int, string) {
	m := messages[pipeline]
	switch {
	case errors.Is(err, provider.ErrUpstreamUnavailable):
		return http.StatusBadGateway, m.unavailable
	case errors.Is(err, provider.ErrParse):
		return http.StatusInternalServerError, m.parse
	case errors.Is(err, provider.ErrNotConfigured):
		return http.StatusServiceUnavailable, msgNotConfigured
	default:
		return http.StatusInternalServerError, msgInternal
	}
}
