// Package locker provides advisory, cross-process mutual exclusion
// over a repository directory, reporting acquisition and hold timings
// into a lockmetrics.Metrics instance. The core's own packages never
// call this; it is the reference implementation of the "external
// caller" the concurrency model assumes will serialize access.
package locker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bzstore/bzcore/internal/lockmetrics"
)

const LockFileName = ".lock"

var (
	ErrUnsupportedPlatform = errors.New("locker: unsupported platform")
	ErrLockBusy            = errors.New("locker: lock held by another process")
)

// Lock is a held advisory lock. Release must be called exactly once.
type Lock struct {
	f         *os.File
	metrics   *lockmetrics.Metrics
	acquired  time.Time
}

// Acquire blocks until it holds an exclusive lock on <dir>/.lock, or
// ctx is done. If a stale lock (holder pid no longer running) is
// detected it is broken and the acquisition retried; this event is
// recorded via metrics.RecordStaleLockBroken.
func Acquire(ctx context.Context, dir string, metrics *lockmetrics.Metrics) (*Lock, error) {
	path := filepath.Join(dir, LockFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("locker: open %s: %w", path, err)
	}

	start := time.Now()
	contended, err := acquireExclusive(ctx, f, metrics)
	if err != nil {
		f.Close()
		return nil, err
	}
	waitNs := uint64(time.Since(start).Nanoseconds())
	metrics.RecordAcquisition(waitNs, contended)

	return &Lock{f: f, metrics: metrics, acquired: time.Now()}, nil
}

// Release unlocks and records the hold duration.
func (l *Lock) Release() error {
	holdNs := uint64(time.Since(l.acquired).Nanoseconds())
	l.metrics.RecordRelease(holdNs)
	err := releaseExclusive(l.f)
	closeErr := l.f.Close()
	if err != nil {
		return err
	}
	return closeErr
}
