// Package metrics defines the Prometheus collectors for index building,
// querying and backup operations, and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the application.
type Metrics struct {
	FilesIndexedTotal   prometheus.Counter
	FilesSkippedTotal   prometheus.Counter
	WordsIndexedTotal   prometheus.Counter
	TokensRejectedTotal prometheus.Counter
	BuildDuration       prometheus.Histogram
	QueriesTotal        *prometheus.CounterVec
	BackupOpsTotal      *prometheus.CounterVec
	BackupBytes         *prometheus.GaugeVec
	IndexWords          prometheus.Gauge

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg. A nil reg leaves
// them unregistered, which is what tests want.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		FilesIndexedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "invsearch_files_indexed_total",
				Help: "Total number of files scanned into the index.",
			},
		),
		FilesSkippedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "invsearch_files_skipped_total",
				Help: "Total number of files skipped because they could not be read.",
			},
		),
		WordsIndexedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "invsearch_words_indexed_total",
				Help: "Total number of word sightings inserted into the index.",
			},
		),
		TokensRejectedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "invsearch_tokens_rejected_total",
				Help: "Total number of tokens rejected by the tokenizer limits.",
			},
		),
		BuildDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "invsearch_build_duration_seconds",
				Help:    "Time taken to build the index from the file list.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
			},
		),
		QueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "invsearch_queries_total",
				Help: "Total word lookups by result (found, not_found, invalid).",
			},
			[]string{"result"},
		),
		BackupOpsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "invsearch_backup_operations_total",
				Help: "Backup save and load operations by status.",
			},
			[]string{"op", "status"},
		),
		BackupBytes: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "invsearch_backup_bytes",
				Help: "Size of the last backup written or read.",
			},
			[]string{"op"},
		),
		IndexWords: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "invsearch_index_words",
				Help: "Number of distinct words in the index.",
			},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "invsearch_http_requests_total",
				Help: "Requests to the metrics and health endpoints.",
			},
			[]string{"path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "invsearch_http_request_duration_seconds",
				Help:    "Latency of requests to the metrics and health endpoints.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path"},
		),
	}

	if reg != nil {
		reg.MustRegister(
			m.FilesIndexedTotal,
			m.FilesSkippedTotal,
			m.WordsIndexedTotal,
			m.TokensRejectedTotal,
			m.BuildDuration,
			m.QueriesTotal,
			m.BackupOpsTotal,
			m.BackupBytes,
			m.IndexWords,
			m.HTTPRequestsTotal,
			m.HTTPRequestDuration,
		)
	}

	return m
}

// Handler returns the Prometheus scrape HTTP handler for g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
