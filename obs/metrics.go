package obs

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Calculation outcomes.
const (
	OutcomeComputed = "computed"
	OutcomeCached   = "cached"
	OutcomeInvalid  = "invalid"
)

type HTTPMetrics struct {
	ReqTotal *prometheus.CounterVec
	ReqDur   *prometheus.HistogramVec
	InFlight prometheus.Gauge
}

func NewHTTPMetrics(namespace string, reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &HTTPMetrics{
		ReqTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests handled by the server.",
		}, []string{"method", "route", "status"}),
		ReqDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency distribution in milliseconds.",
			Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250, 500},
		}, []string{"method", "route"}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
	}
	m.ReqTotal = mustRegister(reg, m.ReqTotal)
	m.ReqDur = mustRegister(reg, m.ReqDur)
	m.InFlight = mustRegister(reg, m.InFlight)
	return m
}

// CalculatorMetrics counts installment calculations and cache failures.
type CalculatorMetrics struct {
	Calculations *prometheus.CounterVec
	CacheErrors  *prometheus.CounterVec
	WeekPlans    prometheus.Counter
}

func NewCalculatorMetrics(namespace string, reg prometheus.Registerer) *CalculatorMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &CalculatorMetrics{
		Calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "installment_calculations_total",
			Help:      "Installment calculations by outcome.",
		}, []string{"outcome"}),
		CacheErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "installment_cache_errors_total",
			Help:      "Result cache failures by operation.",
		}, []string{"op"}),
		WeekPlans: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "week_plan_recommendations_total",
			Help:      "Week plan recommendations served.",
		}),
	}
	m.Calculations = mustRegister(reg, m.Calculations)
	m.CacheErrors = mustRegister(reg, m.CacheErrors)
	m.WeekPlans = mustRegister(reg, m.WeekPlans)
	return m
}

// Observe records a calculation outcome. Safe on a nil receiver.
func (m *CalculatorMetrics) Observe(outcome string) {
	if m == nil {
		return
	}
	m.Calculations.WithLabelValues(outcome).Inc()
}

func (m *CalculatorMetrics) CacheError(op string) {
	if m == nil {
		return
	}
	m.CacheErrors.WithLabelValues(op).Inc()
}

func (m *CalculatorMetrics) WeekPlanServed() {
	if m == nil {
		return
	}
	m.WeekPlans.Inc()
}

func DurationMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// mustRegister returns the already registered collector when an identical one exists,
// so constructing metrics twice against the default registry does not panic.
func mustRegister[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}
