package api

import (
	"net/http"
	"strconv"
	"time"

	_ "tcmbrates/docs"
	"tcmbrates/internal/metrics"
	"tcmbrates/internal/rate/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swagger "github.com/swaggo/http-swagger"
)

// NewRouter mounts the rate API. m and gatherer may be nil, in which case requests are not
// measured and /metrics is not served.
func NewRouter(rateHandler *handler.Handler, m *metrics.Metrics, gatherer prometheus.Gatherer) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	if gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(instrument(m))
		r.Get("/currencies", rateHandler.GetCurrencies)
		r.Get("/rates", rateHandler.GetSnapshot)
		r.Get("/rates/{code}/buy", rateHandler.GetBuyRate)
		r.Get("/rates/{code}/sell", rateHandler.GetSellRate)
	})
	return router
}

// instrument records request counts and durations per route pattern and logs each request.
func instrument(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					path = pattern
				}
			}
			duration := time.Since(start)

			if m != nil {
				m.HTTPRequestDuration.WithLabelValues(path, r.Method).Observe(duration.Seconds())
				m.HTTPRequestsTotal.WithLabelValues(path, r.Method, strconv.Itoa(status)).Inc()
			}

			logrus.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"query":    r.URL.RawQuery,
				"status":   status,
				"duration": duration,
			}).Debug("HTTP request")
		})
	}
}
