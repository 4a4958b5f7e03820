// Package metrics содержит Prometheus-метрики сервиса.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PredictionsTotal — сохранённые вердикты по типу предсказания.
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fakenews_predictions_total",
			Help: "Total number of recorded predictions",
		},
		[]string{"prediction"},
	)

	// ScorerFailuresTotal — неуспешные обращения к ML-сервису.
	ScorerFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fakenews_scorer_failures_total",
			Help: "Total number of failed scorer calls",
		},
		[]string{"reason"},
	)

	// ScorerDuration — длительность обращения к ML-сервису.
	ScorerDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fakenews_scorer_duration_seconds",
			Help:    "Duration of scorer calls in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	// UnrecordedAnalysesTotal — вердикты, вычисленные, но не сохранённые.
	UnrecordedAnalysesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fakenews_unrecorded_analyses_total",
			Help: "Total number of computed verdicts that failed to persist",
		},
	)

	// LoginsTotal — попытки входа по результату.
	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fakenews_logins_total",
			Help: "Total number of login attempts",
		},
		[]string{"result"},
	)
)
