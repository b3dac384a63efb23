//go:build !unix

package locker

import (
	"context"
	"os"

	"github.com/bzstore/bzcore/internal/lockmetrics"
)

func acquireExclusive(ctx context.Context, f *os.File, metrics *lockmetrics.Metrics) (bool, error) {
	return false, ErrUnsupportedPlatform
}

func releaseExclusive(f *os.File) error {
	return ErrUnsupportedPlatform
}
