package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Local registry so these metrics do not collide with anything a library
	// registers globally.
	registry = prometheus.NewRegistry()

	actionsTotal = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "streetsaga_game_actions_total",
			Help: "Total number of game actions applied, partitioned by action type.",
		},
		[]string{"action"},
	)
	savesTotal = promauto.With(registry).NewCounter(
		prometheus.CounterOpts{
			Name: "streetsaga_progress_saves_total",
			Help: "Total number of successful progress saves.",
		},
	)
	loadsTotal = promauto.With(registry).NewCounter(
		prometheus.CounterOpts{
			Name: "streetsaga_progress_loads_total",
			Help: "Total number of successful progress loads.",
		},
	)
)

// metricsHandler exposes the local registry in Prometheus text format.
func metricsHandler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
