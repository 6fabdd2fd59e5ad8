package watch_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dasdy/gridfit/model"
	"github.com/dasdy/gridfit/watch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const waitFor = 5 * time.Second

func writeLayout(t *testing.T, path, size string) {
	t.Helper()

	content := fmt.Sprintf(`grid: {columns: 37, rows: 19}
screens:
  - tab: squad
    subscreen: overview
    components:
      - {id: squad-list, kind: primary, size: "%s", column: 0, row: 0}
`, size)

	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func nextSnapshot(t *testing.T, w *watch.Watcher) watch.Snapshot {
	t.Helper()

	select {
	case s, ok := <-w.Reports():
		require.True(t, ok, "reports channel closed")

		return s
	case <-time.After(waitFor):
		t.Fatal("no snapshot delivered")
	}

	return watch.Snapshot{}
}

func startWatcher(t *testing.T, path string) *watch.Watcher {
	t.Helper()

	w, err := watch.NewWatcher(path)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	return w
}

func TestWatcherInitialAnalysis(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "layout.yaml")
	writeLayout(t, path, "w10 h10")

	w := startWatcher(t, path)
	defer w.Stop()

	first := nextSnapshot(t, w)

	select {
	case <-w.Ready():
	case <-time.After(waitFor):
		t.Fatal("watcher never became ready")
	}

	require.NoError(t, first.Err)
	require.Len(t, first.Reports, 1)
	assert.Equal(t, 1, first.Generation)
	assert.Equal(t, 100, first.Reports[0].OccupiedCells)
	assert.Equal(t, model.UnderUtilized, first.Reports[0].Classification)
}

func TestWatcherReanalyzesOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "layout.yaml")
	writeLayout(t, path, "w10 h10")

	w := startWatcher(t, path)
	defer w.Stop()

	nextSnapshot(t, w)

	writeLayout(t, path, "w25 h19")

	// a single write may surface as more than one event; keep reading until
	// the new content shows up
	deadline := time.After(waitFor)

	for {
		select {
		case s := <-w.Reports():
			if s.Err == nil && len(s.Reports) == 1 && s.Reports[0].OccupiedCells == 475 {
				assert.Equal(t, model.Optimal, s.Reports[0].Classification)
				assert.Greater(t, s.Generation, 1)

				return
			}
		case <-deadline:
			t.Fatal("change was not picked up")
		}
	}
}

func TestWatcherRapidChurnIsNotDebounced(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "layout.yaml")
	writeLayout(t, path, "w10 h10")

	w := startWatcher(t, path)
	defer w.Stop()

	nextSnapshot(t, w)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for range w.Reports() {
		}
	}()

	for i := 1; i <= 5; i++ {
		writeLayout(t, path, fmt.Sprintf("w%d h5", 10+i))
		time.Sleep(20 * time.Millisecond)
	}

	// unrelated files in the same directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o600))

	require.Eventually(t, func() bool {
		return w.Stats().Analyses >= 3
	}, waitFor, 10*time.Millisecond)

	w.Stop()
	<-done

	stats := w.Stats()
	assert.Equal(t, stats.Analyses, stats.Events+1)
}

func TestWatcherReportsBrokenLayout(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grid: [not, a, map"), 0o600))

	w := startWatcher(t, path)
	defer w.Stop()

	first := nextSnapshot(t, w)

	require.Error(t, first.Err)
	assert.Empty(t, first.Reports)
	assert.Equal(t, 1, w.Stats().Errors)
}

func TestWatcherStopClosesReports(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "layout.yaml")
	writeLayout(t, path, "w10 h10")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w, err := watch.NewWatcher(path)
	require.NoError(t, err)
	require.NoError(t, w.Start(ctx))

	nextSnapshot(t, w)

	w.Stop()
	w.Stop()

	_, ok := <-w.Reports()
	assert.False(t, ok)
	assert.NoError(t, w.Start(ctx))
}

func TestWatcherStopBeforeStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := watch.NewWatcher(filepath.Join(t.TempDir(), "layout.yaml"))
	require.NoError(t, err)

	w.Stop()

	_, ok := <-w.Reports()
	assert.False(t, ok)
}
