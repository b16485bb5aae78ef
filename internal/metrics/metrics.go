package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Pipeline metrics
	AnalyzeRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stocksentiment_analyze_runs_total",
			Help: "Total number of analyze invocations",
		},
		[]string{"status"}, // status: success|invalid_input|fetch_error|classification_error|error
	)

	AnalyzeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stocksentiment_analyze_duration_seconds",
			Help:    "End-to-end analyze latency in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
		},
	)

	Recommendations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stocksentiment_recommendations_total",
			Help: "Recommendations produced by outcome",
		},
		[]string{"recommendation"},
	)

	HeadlinesExtracted = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stocksentiment_headlines_extracted",
			Help:    "Number of headlines extracted per search page",
			Buckets: []float64{0, 1, 2, 4, 6, 8, 10},
		},
	)

	// Search metrics
	FetchLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stocksentiment_fetch_latency_seconds",
			Help:    "Search page fetch latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"status"}, // status: success|error
	)

	// Classifier metrics
	Classifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stocksentiment_classifications_total",
			Help: "Per-headline classifications by backend and sentiment",
		},
		[]string{"backend", "sentiment"}, // sentiment: positive|negative|neutral|error
	)
)

var registerOnce sync.Once

// Init registers all collectors with the default registry. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(AnalyzeRuns)
		prometheus.MustRegister(AnalyzeDuration)
		prometheus.MustRegister(Recommendations)
		prometheus.MustRegister(HeadlinesExtracted)
		prometheus.MustRegister(FetchLatency)
		prometheus.MustRegister(Classifications)
	})
}

// Handler returns Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordFetch records a single search page download.
func RecordFetch(latency time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	FetchLatency.WithLabelValues(status).Observe(latency.Seconds())
}

// RecordClassification records the outcome of one headline classification.
func RecordClassification(backend, sentiment string) {
	Classifications.WithLabelValues(backend, sentiment).Inc()
}

// RecordAnalyze records a finished analyze run.
func RecordAnalyze(status string, duration time.Duration, headlines int, recommendation string) {
	AnalyzeRuns.WithLabelValues(status).Inc()
	AnalyzeDuration.Observe(duration.Seconds())
	if recommendation != "" {
		Recommendations.WithLabelValues(recommendation).Inc()
		HeadlinesExtracted.Observe(float64(headlines))
	}
}
