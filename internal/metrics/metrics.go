// Package metrics defines the Prometheus collectors exposed in serve mode.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all engine-level Prometheus collectors. HTTP traffic
// collectors live in the API middleware.
type Metrics struct {
	QueriesTotal     *prometheus.CounterVec
	QueryLatency     *prometheus.HistogramVec
	DocumentsIndexed prometheus.Gauge
	UniqueTerms      prometheus.Gauge
	WordsIndexed     prometheus.Gauge
	CacheHits        prometheus.CounterFunc
	CacheMisses      prometheus.CounterFunc
}

// New creates and registers the collectors. cacheStats supplies the result
// cache's lifetime hit/miss counters.
func New(cacheStats func() (hits, misses int64)) *Metrics {
	m := &Metrics{
		QueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "search_queries_total",
				Help: "Total queries served, by mode (search, autocomplete, prefix_search).",
			},
			[]string{"mode"},
		),
		QueryLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "search_query_duration_seconds",
				Help:    "Query latency in seconds, by mode.",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"mode"},
		),
		DocumentsIndexed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "index_documents",
			Help: "Number of indexed documents.",
		}),
		UniqueTerms: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "index_unique_terms",
			Help: "Number of distinct indexed terms.",
		}),
		WordsIndexed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "index_words_total",
			Help: "Total tokens across all indexed documents.",
		}),
		CacheHits: prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "result_cache_hits_total",
			Help: "Lifetime result-cache hits.",
		}, func() float64 {
			hits, _ := cacheStats()
			return float64(hits)
		}),
		CacheMisses: prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "result_cache_misses_total",
			Help: "Lifetime result-cache misses.",
		}, func() float64 {
			_, misses := cacheStats()
			return float64(misses)
		}),
	}
	prometheus.MustRegister(
		m.QueriesTotal,
		m.QueryLatency,
		m.DocumentsIndexed,
		m.UniqueTerms,
		m.WordsIndexed,
		m.CacheHits,
		m.CacheMisses,
	)
	return m
}

// SetIndexStats records the outcome of an index build.
func (m *Metrics) SetIndexStats(documents, uniqueTerms, wordsIndexed int) {
	m.DocumentsIndexed.Set(float64(documents))
	m.UniqueTerms.Set(float64(uniqueTerms))
	m.WordsIndexed.Set(float64(wordsIndexed))
}

// Handler returns the scrape endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
