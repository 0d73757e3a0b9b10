// Package stats keeps a rolling window of deck build measurements.
package stats

import (
	"slices"
	"sync"
	"time"
)

// Build is one finished deck build.
type Build struct {
	Duration time.Duration
	Slides   int
	Splits   int
}

type entry struct {
	at     time.Time
	ms     int64
	slides int
	splits int
	build  bool
}

// Snapshot aggregates the builds still inside the window.
type Snapshot struct {
	Builds    int     `json:"builds"`
	Slides    int     `json:"slides"`
	Splits    int     `json:"splits"`
	MinMs     int64   `json:"min_ms"`
	MaxMs     int64   `json:"max_ms"`
	AvgMs     float64 `json:"avg_ms"`
	P50Ms     float64 `json:"p50_ms"`
	P95Ms     float64 `json:"p95_ms"`
	AvgSlides float64 `json:"avg_slides"`
}

// Window tracks builds recorded within the last maxAge.
type Window struct {
	mu      sync.Mutex
	entries []entry
	maxAge  time.Duration
	now     func() time.Time
}

func NewWindow(maxAge time.Duration) *Window {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Window{maxAge: maxAge, now: time.Now}
}

func (w *Window) Record(b Build) {
	ms := b.Duration.Milliseconds()
	if ms < 0 {
		ms = 0
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	w.pruneLocked(now)
	w.entries = append(w.entries, entry{at: now, ms: ms, slides: b.Slides, splits: b.Splits, build: true})
}

// AddSplits credits splits made after a build to the window totals.
func (w *Window) AddSplits(n int) {
	if n <= 0 {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	w.pruneLocked(now)
	w.entries = append(w.entries, entry{at: now, splits: n})
}

func (w *Window) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pruneLocked(w.now())

	var snap Snapshot
	var durations []int64
	var sum int64
	for _, e := range w.entries {
		snap.Splits += e.splits
		if !e.build {
			continue
		}
		snap.Builds++
		snap.Slides += e.slides
		durations = append(durations, e.ms)
		sum += e.ms
	}
	if len(durations) == 0 {
		return snap
	}
	slices.Sort(durations)

	snap.MinMs = durations[0]
	snap.MaxMs = durations[len(durations)-1]
	snap.AvgMs = float64(sum) / float64(len(durations))
	snap.P50Ms = percentile(durations, 50)
	snap.P95Ms = percentile(durations, 95)
	snap.AvgSlides = float64(snap.Slides) / float64(snap.Builds)
	return snap
}

func (w *Window) pruneLocked(now time.Time) {
	cutoff := now.Add(-w.maxAge)
	w.entries = slices.DeleteFunc(w.entries, func(e entry) bool {
		return e.at.Before(cutoff)
	})
}

// percentile interpolates linearly between the closest ranks.
func percentile(sorted []int64, pct float64) float64 {
	switch {
	case len(sorted) == 0:
		return 0
	case pct <= 0:
		return float64(sorted[0])
	case pct >= 100:
		return float64(sorted[len(sorted)-1])
	}
	rank := float64(len(sorted)-1) * pct / 100
	lo := int(rank)
	if lo+1 >= len(sorted) {
		return float64(sorted[lo])
	}
	frac := rank - float64(lo)
	return float64(sorted[lo]) + float64(sorted[lo+1]-sorted[lo])*frac
}
