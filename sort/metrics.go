package main

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"github.com/nathanielgreenna/Multithreaded-Hybrid-Quicksort/qsort"
)

// sortMetrics observes the sorter. All collectors are safe for concurrent
// use, so it can be handed to qsort.WithObserver directly.
type sortMetrics struct {
	reg          *prometheus.Registry
	pieces       prometheus.Counter
	pieceSize    prometheus.Histogram
	pieceSeconds prometheus.Histogram
	partitions   prometheus.Counter
	fallbacks    prometheus.Counter
	busyWorkers  prometheus.Gauge
	runSeconds   *prometheus.HistogramVec
}

func newSortMetrics() *sortMetrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &sortMetrics{
		reg: reg,
		pieces: f.NewCounter(prometheus.CounterOpts{
			Name: "qsort_pieces_total",
			Help: "Pieces produced by the scheduler.",
		}),
		pieceSize: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "qsort_piece_size_elements",
			Help:    "Number of elements per scheduled piece.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 14),
		}),
		pieceSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "qsort_piece_duration_seconds",
			Help:    "Time a worker spent sorting one piece.",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 14),
		}),
		partitions: f.NewCounter(prometheus.CounterOpts{
			Name: "qsort_worker_partitions_total",
			Help: "Partitions run inside workers.",
		}),
		fallbacks: f.NewCounter(prometheus.CounterOpts{
			Name: "qsort_fallback_sorts_total",
			Help: "Ranges handed to the alternate sort.",
		}),
		busyWorkers: f.NewGauge(prometheus.GaugeOpts{
			Name: "qsort_busy_workers",
			Help: "Workers currently sorting a piece.",
		}),
		runSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "qsort_run_duration_seconds",
			Help:    "Wall clock time of a whole sort.",
			Buckets: prometheus.ExponentialBuckets(1e-4, 4, 12),
		}, []string{"mode"}),
	}
}

func (m *sortMetrics) Scheduled(pieces []qsort.Piece) {
	m.pieces.Add(float64(len(pieces)))
	for _, p := range pieces {
		m.pieceSize.Observe(float64(p.Size))
	}
}

func (m *sortMetrics) PieceStarted(int, qsort.Piece) {
	m.busyWorkers.Inc()
}

func (m *sortMetrics) PieceDone(res qsort.PieceResult) {
	m.busyWorkers.Dec()
	m.pieceSeconds.Observe(res.Elapsed.Seconds())
	m.partitions.Add(float64(res.Partitions))
	m.fallbacks.Add(float64(res.Fallbacks))
}

func (m *sortMetrics) observeRun(multithread bool, seconds float64) {
	mode := "sequential"
	if multithread {
		mode = "parallel"
	}
	m.runSeconds.WithLabelValues(mode).Observe(seconds)
}

// writeText dumps every metric in the Prometheus text format.
func (m *sortMetrics) writeText(w io.Writer) error {
	mfs, err := m.reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
