package lockmetrics

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestRecordAcquisitionConcurrent(t *testing.T) {
	var m Metrics
	waits := []uint64{10, 50, 5, 100, 7, 3}

	var g errgroup.Group
	for _, w := range waits {
		w := w
		g.Go(func() error {
			m.RecordAcquisition(w, w > 20)
			return nil
		})
	}
	require.NoError(t, g.Wait())

	snap := m.Snapshot()
	require.EqualValues(t, len(waits), snap.LockAcquisitions)

	var total uint64
	var max uint64
	for _, w := range waits {
		total += w
		if w > max {
			max = w
		}
	}
	require.EqualValues(t, total, snap.LockWaitTotalNs)
	require.EqualValues(t, max, snap.MaxWaitNs)
	require.EqualValues(t, 2, snap.LockContentions)
}

func TestDerivedViewsZeroWhenEmpty(t *testing.T) {
	var m Metrics
	snap := m.Snapshot()
	require.EqualValues(t, 0, snap.AvgWaitNs())
	require.InDelta(t, 0, snap.ContentionRatePercent(), 0.0001)
}

func TestReset(t *testing.T) {
	var m Metrics
	m.RecordAcquisition(100, true)
	m.RecordRelease(50)
	m.RecordTimeout()
	m.RecordStaleLockBroken()

	m.Reset()
	snap := m.Snapshot()
	require.Zero(t, snap.LockAcquisitions)
	require.Zero(t, snap.LockWaitTotalNs)
	require.Zero(t, snap.LockHoldTotalNs)
	require.Zero(t, snap.LockTimeouts)
	require.Zero(t, snap.StaleLocksBroken)
}
