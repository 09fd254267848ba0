package watch

import (
	"context"
	"time"
)

// Job is a single periodically executed check
type Job interface {
	// Name returns the human-readable name of the job
	Name() string

	// Interval returns the interval at which the job should be run
	Interval() time.Duration

	// Run executes the job, returning the number of rates it observed
	Run(context.Context) (int, error)
}
