// Package metrics exposes Prometheus collectors for deck building and the
// overflow feedback loop.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dgallion1/docdeck/internal/deck"
	"github.com/dgallion1/docdeck/internal/present"
)

// Metrics holds the service collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	reg *prometheus.Registry

	decksBuilt    prometheus.Counter
	buildDuration *prometheus.HistogramVec
	slides        *prometheus.CounterVec
	splits        *prometheus.CounterVec
	transitions   *prometheus.CounterVec
	fitSplits     prometheus.Counter
}

// New creates and registers collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		reg: reg,
		decksBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "docdeck_decks_built_total",
			Help: "Total number of decks built from uploaded documents",
		}),
		buildDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "docdeck_build_duration_seconds",
			Help:    "Time spent parsing and classifying a document",
			Buckets: prometheus.DefBuckets,
		}, []string{"format"}),
		slides: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "docdeck_slides_total",
			Help: "Slides produced by the classifier, by kind",
		}, []string{"kind"}),
		splits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "docdeck_splits_total",
			Help: "Overflow splits performed, by kind of the split slide",
		}, []string{"kind"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "docdeck_transitions_total",
			Help: "Transition events handled, by result",
		}, []string{"result"}),
		fitSplits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "docdeck_fit_splits_total",
			Help: "Splits performed by headless fit passes",
		}),
	}
	reg.MustRegister(m.decksBuilt, m.buildDuration, m.slides, m.splits, m.transitions, m.fitSplits)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// DeckBuilt records a finished build.
func (m *Metrics) DeckBuilt(format string, d time.Duration, slides []deck.Slide) {
	if m == nil {
		return
	}
	m.decksBuilt.Inc()
	m.buildDuration.WithLabelValues(format).Observe(d.Seconds())
	for _, s := range slides {
		m.slides.WithLabelValues(s.Kind.String()).Inc()
	}
}

// Transition records the outcome of one transition event.
func (m *Metrics) Transition(out present.Outcome, err error) {
	if m == nil {
		return
	}
	switch {
	case err != nil:
		m.transitions.WithLabelValues("error").Inc()
	case out.Split:
		m.transitions.WithLabelValues("split").Inc()
		m.splits.WithLabelValues(out.Kind.String()).Inc()
	default:
		m.transitions.WithLabelValues("fits").Inc()
	}
}

// FitSplits records splits made by a headless fit pass.
func (m *Metrics) FitSplits(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.fitSplits.Add(float64(n))
}

// ObserveSessions exports count as the live session gauge, read at
// scrape time. Call it once.
func (m *Metrics) ObserveSessions(count func() int) {
	if m == nil {
		return
	}
	m.reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "docdeck_sessions",
		Help: "Live presentation sessions",
	}, func() float64 { return float64(count()) }))
}
