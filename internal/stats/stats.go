// Package stats keeps in-memory counters about ingested error reports
// for the admin introspection commands. Nothing is persisted.
package stats

import (
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/0x0BSoD/errorWatcher/internal/model"
)

const recentLimit = 10

// RecentError is a short record of one ingested report kept for the
// admin status view.
type RecentError struct {
	Time      time.Time
	Platform  string
	ErrorType string
	Message   string
}

// Tracker accumulates report counters. Safe for concurrent use.
type Tracker struct {
	mu          sync.Mutex
	startedAt   time.Time
	total       int
	dispatched  int
	failed      int
	perPlatform map[string]int
	recent      []RecentError
}

func New() *Tracker {
	return &Tracker{
		startedAt:   time.Now(),
		perPlatform: make(map[string]int),
	}
}

// Record counts one accepted report and whether its dispatch succeeded.
func (t *Tracker) Record(report model.ErrorReport, dispatched bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.total++
	t.perPlatform[report.Platform]++
	if dispatched {
		t.dispatched++
	} else {
		t.failed++
	}

	t.recent = append(t.recent, RecentError{
		Time:      report.Timestamp,
		Platform:  report.Platform,
		ErrorType: report.ErrorType,
		Message:   report.ErrorMessage,
	})
	if len(t.recent) > recentLimit {
		t.recent = t.recent[len(t.recent)-recentLimit:]
	}
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Uptime      time.Duration
	Total       int
	Dispatched  int
	Failed      int
	PerPlatform map[string]int
	Recent      []RecentError
}

func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	return Snapshot{
		Uptime:      time.Since(t.startedAt),
		Total:       t.total,
		Dispatched:  t.dispatched,
		Failed:      t.failed,
		PerPlatform: lo.Assign(map[string]int{}, t.perPlatform),
		Recent:      append([]RecentError(nil), t.recent...),
	}
}
