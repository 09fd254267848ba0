package watch

import (
	"sort"
	"sync"
	"time"
)

// Outcome is the result of a single job run
type Outcome struct {
	At    time.Time
	Err   error
	Job   string
	Rates int
}

// Reporter receives job run outcomes
type Reporter interface {
	Report(Outcome)
}

type noopReporter struct{}

func (noopReporter) Report(Outcome) {}

// Status is the last known state of a job
type Status struct {
	CheckedAt time.Time `json:"checked_at"`
	Job       string    `json:"job"`
	Error     string    `json:"error,omitempty"`
	Rates     int       `json:"rates"`
	Healthy   bool      `json:"healthy"`
}

// Tracker keeps the last outcome of every job
type Tracker struct {
	last map[string]Status

	mu sync.RWMutex
}

// NewTracker creates a new job status tracker
func NewTracker() *Tracker {
	return &Tracker{
		last: make(map[string]Status),
	}
}

func (t *Tracker) Report(o Outcome) {
	s := Status{
		CheckedAt: o.At.UTC(),
		Job:       o.Job,
		Rates:     o.Rates,
		Healthy:   o.Err == nil,
	}

	if o.Err != nil {
		s.Error = o.Err.Error()
	}

	t.mu.Lock()
	t.last[o.Job] = s
	t.mu.Unlock()
}

// Statuses returns the last status of every reported job, sorted by job name
func (t *Tracker) Statuses() []Status {
	t.mu.RLock()

	out := make([]Status, 0, len(t.last))
	for _, s := range t.last {
		out = append(out, s)
	}

	t.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Job < out[j].Job
	})

	return out
}
