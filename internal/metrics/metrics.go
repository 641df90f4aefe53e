// Package metrics provides the centralized Prometheus metrics registry for the engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	CompilesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "turf_engine",
		Name:      "compiles_total",
		Help:      "Total number of stake card compiles by degrade mode",
	}, []string{"degrade_mode"})
	OverlaysTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "turf_engine",
		Name:      "overlays_total",
		Help:      "Total number of PRO overlay applications by writer",
	}, []string{"writer"})
	SimulationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "turf_engine",
		Name:      "simulations_total",
		Help:      "Total number of bankroll simulations run",
	})
	BetsSelectedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "turf_engine",
		Name:      "bets_selected_total",
		Help:      "Total number of value bets selected from stake cards",
	})
)

// Gauge metrics
var (
	LastMeanFinal = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "turf_engine",
		Name:      "last_mean_final_bankroll",
		Help:      "Mean final bankroll of the most recent simulation",
	})
)

// Histogram metrics
var (
	SimulationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "turf_engine",
		Name:      "simulation_duration_seconds",
		Help:      "Duration of bankroll simulation runs in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(CompilesTotal)
		registry.MustRegister(OverlaysTotal)
		registry.MustRegister(SimulationsTotal)
		registry.MustRegister(BetsSelectedTotal)
		registry.MustRegister(LastMeanFinal)
		registry.MustRegister(SimulationDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordSimulation records a completed simulation run.
func RecordSimulation(durationSeconds, meanFinal float64) {
	SimulationsTotal.Inc()
	SimulationDuration.Observe(durationSeconds)
	LastMeanFinal.Set(meanFinal)
}
