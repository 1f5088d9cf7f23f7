package application

import (
	"sync"
	"time"

	"github.com/bnema/euserv-renew/internal/domain"
	"github.com/stretchr/testify/mock"
)

// fakeClock never blocks; it advances its own time by every requested sleep.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

func (c *fakeClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.sleeps...)
}

type recordingMetrics struct {
	logins   []bool
	attempts []int
	outcomes []domain.ResourceOutcome
	runs     []domain.RunStatus
}

func (m *recordingMetrics) LoginFinished(success bool, attempts int) {
	m.logins = append(m.logins, success)
	m.attempts = append(m.attempts, attempts)
}

func (m *recordingMetrics) ResourceFinished(outcome domain.ResourceOutcome) {
	m.outcomes = append(m.outcomes, outcome)
}

func (m *recordingMetrics) RunFinished(status domain.RunStatus, _ time.Duration) {
	m.runs = append(m.runs, status)
}

func mockAnyContext() interface{} {
	return mock.Anything
}

func mockAnything() interface{} {
	return mock.Anything
}
