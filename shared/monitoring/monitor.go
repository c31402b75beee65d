package monitoring

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// Monitor tracks the outcome of the most recent report run. The status
// summary is shown in the UI footer; everything else goes to the log.
type Monitor struct {
	mu             sync.Mutex
	lastRunSuccess bool
	lastRunTime    time.Time
	lastSummary    string
}

func NewMonitor() *Monitor {
	return &Monitor{}
}

func (m *Monitor) RecordSuccess(summary string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastRunSuccess = true
	m.lastRunTime = time.Now()
	m.lastSummary = summary

	log.Printf("Report run completed - %s (took %v)", summary, duration)
}

func (m *Monitor) RecordFailure(err error, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastRunSuccess = false
	m.lastRunTime = time.Now()
	m.lastSummary = err.Error()

	log.Printf("Report run failed: %s (took %v)", err.Error(), duration)
}

// StatusSummary returns a one-line description of the last run for the
// status bar. Empty before the first run.
func (m *Monitor) StatusSummary() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.lastRunTime.IsZero() {
		return ""
	}
	if m.lastRunSuccess {
		return fmt.Sprintf("last report: %s (%s)", m.lastSummary, m.lastRunTime.Format("15:04:05"))
	}
	return fmt.Sprintf("last report failed: %s (%s)", m.lastSummary, m.lastRunTime.Format("15:04:05"))
}
