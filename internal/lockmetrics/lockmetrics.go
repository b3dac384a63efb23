// Package lockmetrics tracks process-wide, lock-free counters for
// external lock contention. Each counter is a sync/atomic value updated
// on its own; Snapshot is for observability only and makes no promise
// of cross-field consistency.
package lockmetrics

import "sync/atomic"

// Metrics holds eight atomic counters. The zero value is ready to use.
type Metrics struct {
	lockAcquisitions atomic.Uint64
	lockWaitTotalNs  atomic.Uint64
	lockHoldTotalNs  atomic.Uint64
	lockContentions  atomic.Uint64
	maxWaitNs        atomic.Uint64
	maxHoldNs        atomic.Uint64
	lockTimeouts     atomic.Uint64
	staleLocksBroken atomic.Uint64
}

// Snapshot is an independently-read copy of the eight counters plus
// their derived views.
type Snapshot struct {
	LockAcquisitions uint64
	LockWaitTotalNs  uint64
	LockHoldTotalNs  uint64
	LockContentions  uint64
	MaxWaitNs        uint64
	MaxHoldNs        uint64
	LockTimeouts     uint64
	StaleLocksBroken uint64
}

// RecordAcquisition records a completed lock acquisition: waitNs spent
// waiting for it, and whether contention (another holder observed)
// occurred.
func (m *Metrics) RecordAcquisition(waitNs uint64, hadContention bool) {
	m.lockAcquisitions.Add(1)
	m.lockWaitTotalNs.Add(waitNs)
	if hadContention {
		m.lockContentions.Add(1)
	}
	casMax(&m.maxWaitNs, waitNs)
}

// RecordRelease records a completed hold of holdNs duration.
func (m *Metrics) RecordRelease(holdNs uint64) {
	m.lockHoldTotalNs.Add(holdNs)
	casMax(&m.maxHoldNs, holdNs)
}

func (m *Metrics) RecordTimeout() {
	m.lockTimeouts.Add(1)
}

func (m *Metrics) RecordStaleLockBroken() {
	m.staleLocksBroken.Add(1)
}

// casMax updates target to value if value is larger, retrying on a
// lost compare-and-swap race.
func casMax(target *atomic.Uint64, value uint64) {
	for {
		cur := target.Load()
		if value <= cur {
			return
		}
		if target.CompareAndSwap(cur, value) {
			return
		}
	}
}

func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		LockAcquisitions: m.lockAcquisitions.Load(),
		LockWaitTotalNs:  m.lockWaitTotalNs.Load(),
		LockHoldTotalNs:  m.lockHoldTotalNs.Load(),
		LockContentions:  m.lockContentions.Load(),
		MaxWaitNs:        m.maxWaitNs.Load(),
		MaxHoldNs:        m.maxHoldNs.Load(),
		LockTimeouts:     m.lockTimeouts.Load(),
		StaleLocksBroken: m.staleLocksBroken.Load(),
	}
}

// Reset stores zero into every counter. Not atomic across fields.
func (m *Metrics) Reset() {
	m.lockAcquisitions.Store(0)
	m.lockWaitTotalNs.Store(0)
	m.lockHoldTotalNs.Store(0)
	m.lockContentions.Store(0)
	m.maxWaitNs.Store(0)
	m.maxHoldNs.Store(0)
	m.lockTimeouts.Store(0)
	m.staleLocksBroken.Store(0)
}

// AvgWaitNs is 0 when there have been no acquisitions.
func (s Snapshot) AvgWaitNs() uint64 {
	if s.LockAcquisitions == 0 {
		return 0
	}
	return s.LockWaitTotalNs / s.LockAcquisitions
}

// ContentionRatePercent is 0 when there have been no acquisitions.
func (s Snapshot) ContentionRatePercent() float64 {
	if s.LockAcquisitions == 0 {
		return 0
	}
	return float64(s.LockContentions) / float64(s.LockAcquisitions) * 100
}

// FormatHuman renders the snapshot with nanosecond fields converted to
// milliseconds.
func (s Snapshot) FormatHuman() string {
	return formatHuman(s)
}
