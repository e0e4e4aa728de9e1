package undo

// Outcome names a controller lifecycle event.
type Outcome string

const (
	OutcomeShown      Outcome = "shown"      // banner displayed
	OutcomeSuperseded Outcome = "superseded" // replaced by a newer Show
	OutcomeUndone     Outcome = "undone"     // user pressed Undo
	OutcomeExpired    Outcome = "expired"    // countdown ran out
	OutcomeHidden     Outcome = "hidden"     // Hide called
)

// Recorder observes controller outcomes, e.g. for metrics. remaining is the
// countdown value at the time of the event.
type Recorder interface {
	Record(outcome Outcome, remaining int)
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(outcome Outcome, remaining int)

// Record calls f.
func (f RecorderFunc) Record(outcome Outcome, remaining int) { f(outcome, remaining) }

type nopRecorder struct{}

func (nopRecorder) Record(Outcome, int) {}
