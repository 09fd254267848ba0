package watch

import (
	"context"
	"sync"
	"time"
)

type (
	nameDelegate     func() string
	intervalDelegate func() time.Duration
	runDelegate      func(context.Context) (int, error)
)

type mockJob struct {
	nameFn     nameDelegate
	intervalFn intervalDelegate
	runFn      runDelegate
}

func (m *mockJob) Name() string {
	if m.nameFn != nil {
		return m.nameFn()
	}

	return ""
}

func (m *mockJob) Interval() time.Duration {
	if m.intervalFn != nil {
		return m.intervalFn()
	}

	return 0
}

func (m *mockJob) Run(ctx context.Context) (int, error) {
	if m.runFn != nil {
		return m.runFn(ctx)
	}

	return 0, nil
}

type reportDelegate func(Outcome)

type mockReporter struct {
	reportFn reportDelegate

	mu sync.Mutex
}

func (m *mockReporter) Report(o Outcome) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.reportFn != nil {
		m.reportFn(o)
	}
}
