package httpserver

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Options struct {
	Addr              string
	MetricsPath       string
	ReadHeaderTimeout time.Duration
}

// Route is an extra handler mounted next to the built-in ones, e.g. the webhook.
type Route struct {
	Pattern string
	Handler http.Handler
}

// New returns a server exposing /healthz, Prometheus metrics and routes.
// The caller owns ListenAndServe and Shutdown.
func New(opts Options, routes ...Route) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.MetricsPath != "" {
		mux.Handle(opts.MetricsPath, promhttp.Handler())
	}
	for _, rt := range routes {
		mux.Handle(rt.Pattern, rt.Handler)
	}
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("whocall telegram bot"))
	})

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           mux,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
	}
}
