package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tcmbrates/internal/domain"
	"tcmbrates/internal/metrics"
	"tcmbrates/internal/rate"
	"tcmbrates/internal/rate/handler"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

type stubService struct{}

func (stubService) LookupBuy(_ context.Context, code string, _ domain.RateKind) (float64, error) {
	if code != "USD" {
		return 0, domain.ErrUnknownCurrencyCode
	}
	return 31.4561, nil
}

func (stubService) LookupSell(_ context.Context, _ string, _ domain.RateKind) (float64, error) {
	return 31.5128, nil
}

func (stubService) Snapshot(context.Context) (domain.RateTable, error) {
	return domain.RateTable{PublicationDate: "04.03.2024"}, nil
}

func newTestRouter(t *testing.T) (http.Handler, *metrics.Metrics, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := metrics.NewMetrics(reg)
	h := handler.NewRateHandler(rate.NewValidator(domain.CurrencyNames()), stubService{})
	return NewRouter(h, m, reg), m, reg
}

func serve(router http.Handler, target string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func TestRouter_Routes(t *testing.T) {
	router, _, _ := newTestRouter(t)

	cases := []struct {
		target string
		status int
	}{
		{"/healthz", http.StatusOK},
		{"/api/v1/currencies", http.StatusOK},
		{"/api/v1/rates", http.StatusOK},
		{"/api/v1/rates/USD/buy", http.StatusOK},
		{"/api/v1/rates/usd/sell?type=BanknoteSelling", http.StatusOK},
		{"/api/v1/rates/EUR/buy", http.StatusNotFound},
		{"/api/v1/rates/USD/buy?type=ForexSelling", http.StatusBadRequest},
		{"/api/v1/rates/USD", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.target, func(t *testing.T) {
			require.Equal(t, tc.status, serve(router, tc.target).Code)
		})
	}
}

func TestRouter_RecordsMetricsByRoutePattern(t *testing.T) {
	router, m, _ := newTestRouter(t)

	serve(router, "/api/v1/rates/USD/buy")
	serve(router, "/api/v1/rates/GBP/buy")

	require.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("/api/v1/rates/{code}/buy", http.MethodGet, "200")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("/api/v1/rates/{code}/buy", http.MethodGet, "404")))
}

func TestRouter_ServesMetrics(t *testing.T) {
	router, _, _ := newTestRouter(t)
	serve(router, "/api/v1/currencies")

	rr := serve(router, "/metrics")

	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, strings.Contains(rr.Body.String(), "http_requests_total"))
}

func TestRouter_WithoutMetrics(t *testing.T) {
	h := handler.NewRateHandler(rate.NewValidator(domain.CurrencyNames()), stubService{})
	router := NewRouter(h, nil, nil)

	require.Equal(t, http.StatusOK, serve(router, "/api/v1/rates/USD/buy").Code)
	require.Equal(t, http.StatusNotFound, serve(router, "/metrics").Code)
}
