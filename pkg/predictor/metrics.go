package predictor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Prediction metrics
	predictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hpp_predictions_total",
			Help: "Total number of price estimates by outcome",
		},
		[]string{"outcome"},
	)

	predictionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hpp_prediction_duration_seconds",
			Help:    "Duration of a single price estimate in seconds",
			Buckets: []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05},
		},
	)

	// Prediction cache metrics
	predictionCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hpp_prediction_cache_hits_total",
			Help: "Total number of price estimates served from the cache",
		},
	)
	predictionCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hpp_prediction_cache_misses_total",
			Help: "Total number of price estimates computed because the cache had no entry",
		},
	)

	unseenCategories = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hpp_unseen_categories_total",
			Help: "Total number of categorical values with no matching encoded feature",
		},
		[]string{"column"},
	)
)
