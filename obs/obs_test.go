package obs

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "json", "warn")

	logger.Info().Msg("hidden")
	logger.Warn().Str("k", "v").Msg("shown")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "shown", line["message"])
	require.Equal(t, "v", line["k"])

	require.Equal(t, zerolog.InfoLevel, newLogger(&buf, "json", "nonsense").GetLevel())
}

func TestRequestLoggerAndMetrics(t *testing.T) {
	var buf bytes.Buffer
	reg := prometheus.NewRegistry()
	metrics := NewHTTPMetrics("test", reg)

	r := chi.NewRouter()
	r.Use(RequestLogger{Logger: newLogger(&buf, "json", "info")}.Middleware)
	r.Use(HTTPObs{Metrics: metrics}.Middleware)
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/7", nil))
	require.Equal(t, http.StatusTeapot, w.Code)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "http_request", line["message"])
	require.Equal(t, "/items/{id}", line["route"])
	require.EqualValues(t, http.StatusTeapot, line["status"])
	require.EqualValues(t, 5, line["bytes"])

	require.Equal(t, 1.0, testutil.ToFloat64(metrics.ReqTotal.WithLabelValues("GET", "/items/{id}", "418")))
	require.Equal(t, 0.0, testutil.ToFloat64(metrics.InFlight))
}

func TestCalculatorMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCalculatorMetrics("test", reg)
	again := NewCalculatorMetrics("test", reg)

	m.Observe(OutcomeComputed)
	again.Observe(OutcomeComputed)
	m.CacheError("get")
	m.WeekPlanServed()

	require.Equal(t, 2.0, testutil.ToFloat64(m.Calculations.WithLabelValues(OutcomeComputed)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.CacheErrors.WithLabelValues("get")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.WeekPlans))

	var nilMetrics *CalculatorMetrics
	nilMetrics.Observe(OutcomeInvalid)
	nilMetrics.CacheError("set")
	nilMetrics.WeekPlanServed()
}
