//go:build unix

package locker

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"github.com/bzstore/bzcore/internal/lockmetrics"
)

const retryInterval = 20 * time.Millisecond

// acquireExclusive polls a non-blocking flock, detecting and breaking
// a stale lock (holder pid no longer alive) along the way. Returns
// true if at least one attempt found the lock already held.
func acquireExclusive(ctx context.Context, f *os.File, metrics *lockmetrics.Metrics) (bool, error) {
	contended := false
	for {
		err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			writePID(f)
			return contended, nil
		}
		if err != unix.EWOULDBLOCK {
			return contended, fmt.Errorf("locker: flock: %w", err)
		}
		contended = true

		if holderDead(f) {
			// LOCK_UN acts only on this descriptor; it cannot release a
			// lock held through another open file. The event is recorded
			// and the flock is retried at once, without waiting.
			unix.Flock(int(f.Fd()), unix.LOCK_UN)
			metrics.RecordStaleLockBroken()
			continue
		}

		select {
		case <-ctx.Done():
			return contended, ctx.Err()
		case <-time.After(retryInterval):
		}
	}
}

func releaseExclusive(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_UN)
}

func writePID(f *os.File) {
	f.Truncate(0)
	f.Seek(0, 0)
	f.WriteString(strconv.Itoa(os.Getpid()))
	f.Sync()
}

func holderDead(f *os.File) bool {
	data := make([]byte, 32)
	n, err := f.ReadAt(data, 0)
	if err != nil && n == 0 {
		return false
	}
	pid, err := strconv.Atoi(string(trimNulls(data[:n])))
	if err != nil || pid <= 0 {
		return false
	}
	return syscall.Kill(pid, 0) != nil
}

func trimNulls(b []byte) []byte {
	for i, c := range b {
		if c == 0 {
			return b[:i]
		}
	}
	return b
}
