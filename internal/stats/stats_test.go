package stats

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0x0BSoD/errorWatcher/internal/model"
)

func report(platform string) model.ErrorReport {
	return model.ErrorReport{
		Platform:     platform,
		ErrorType:    "Runtime Error",
		ErrorMessage: "boom",
		Timestamp:    time.Now().UTC(),
	}
}

func TestTracker_Counters(t *testing.T) {
	tracker := New()

	tracker.Record(report("web"), true)
	tracker.Record(report("web"), true)
	tracker.Record(report("bot"), false)

	snap := tracker.Snapshot()

	assert.Equal(t, 3, snap.Total)
	assert.Equal(t, 2, snap.Dispatched)
	assert.Equal(t, 1, snap.Failed)
	assert.Equal(t, map[string]int{"web": 2, "bot": 1}, snap.PerPlatform)
}

func TestTracker_RecentRingIsBounded(t *testing.T) {
	tracker := New()

	for i := 0; i < 25; i++ {
		r := report("web")
		r.ErrorMessage = fmt.Sprintf("error %d", i)
		tracker.Record(r, true)
	}

	snap := tracker.Snapshot()

	require.Len(t, snap.Recent, recentLimit)
	assert.Equal(t, "error 24", snap.Recent[len(snap.Recent)-1].Message)
	assert.Equal(t, "error 15", snap.Recent[0].Message)
}

func TestTracker_SnapshotIsACopy(t *testing.T) {
	tracker := New()
	tracker.Record(report("web"), true)

	snap := tracker.Snapshot()
	snap.PerPlatform["web"] = 99

	assert.Equal(t, 1, tracker.Snapshot().PerPlatform["web"])
}

func TestTracker_ConcurrentRecord(t *testing.T) {
	tracker := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.Record(report("web"), true)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, tracker.Snapshot().Total)
}
