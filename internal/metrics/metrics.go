package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jask/undoctl/internal/undo"
)

// Recorder counts undo banner outcomes. It satisfies undo.Recorder.
type Recorder struct {
	outcomes  *prometheus.CounterVec
	remaining *prometheus.HistogramVec
}

// NewRecorder registers the banner metrics on reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "undoctl",
				Name:      "banner_outcomes_total",
				Help:      "Undo banner lifecycle events by outcome.",
			},
			[]string{"outcome"},
		),
		remaining: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "undoctl",
				Name:      "banner_remaining_seconds",
				Help:      "Countdown value when the banner was dismissed or superseded.",
				Buckets:   []float64{0, 1, 2, 3, 5, 10, 30, 99},
			},
			[]string{"outcome"},
		),
	}
	for _, c := range []prometheus.Collector{r.outcomes, r.remaining} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return r, nil
}

// Record counts outcome and, except for shows, observes the seconds left.
func (r *Recorder) Record(outcome undo.Outcome, remaining int) {
	r.outcomes.WithLabelValues(string(outcome)).Inc()
	if outcome == undo.OutcomeShown {
		return
	}
	r.remaining.WithLabelValues(string(outcome)).Observe(float64(remaining))
}
