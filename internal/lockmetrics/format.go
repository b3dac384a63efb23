package lockmetrics

import "fmt"

func formatHuman(s Snapshot) string {
	toMs := func(ns uint64) float64 { return float64(ns) / 1_000_000 }
	return fmt.Sprintf(
		"acquisitions=%d contentions=%d (%.1f%%) timeouts=%d stale_broken=%d avg_wait=%.3fms max_wait=%.3fms max_hold=%.3fms",
		s.LockAcquisitions, s.LockContentions, s.ContentionRatePercent(), s.LockTimeouts, s.StaleLocksBroken,
		toMs(s.AvgWaitNs()), toMs(s.MaxWaitNs), toMs(s.MaxHoldNs),
	)
}

// ToJSONView returns a plain map suitable for json.Marshal, matching
// the field names used on disk and in the JSON shape of the rest of
// the core.
func (s Snapshot) ToJSONView() map[string]any {
	return map[string]any{
		"lock_acquisitions":   s.LockAcquisitions,
		"lock_wait_total_ns":  s.LockWaitTotalNs,
		"lock_hold_total_ns":  s.LockHoldTotalNs,
		"lock_contentions":    s.LockContentions,
		"max_wait_ns":         s.MaxWaitNs,
		"max_hold_ns":         s.MaxHoldNs,
		"lock_timeouts":       s.LockTimeouts,
		"stale_locks_broken":  s.StaleLocksBroken,
		"avg_wait_ns":         s.AvgWaitNs(),
		"contention_rate_pct": s.ContentionRatePercent(),
	}
}
