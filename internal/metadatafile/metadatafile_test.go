package metadatafile

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bzstore/bzcore/internal/types"
)

func TestReadAbsentIsNotFound(t *testing.T) {
	_, err := Read(t.TempDir())
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestWriteThenReadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	m := types.DefaultMetadata("2026-01-01T00:00:00Z", "0.1.0")

	require.NoError(t, Write(dir, m, 1))

	got, err := Read(dir)
	require.NoError(t, err)
	require.Equal(t, m, got)
}

func TestReadToleratesUnknownFields(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Write(dir, types.DefaultMetadata("ts", "v"), 1))

	// Simulate a newer writer having added a field we don't know about.
	path := Path(dir)
	raw := []byte(`{"schema_version":1,"created_at":"ts","bz_version":"v","prefix":"bd","future_field":"x"}` + "\n")
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	got, err := Read(dir)
	require.NoError(t, err)
	require.Equal(t, uint32(1), got.SchemaVersion)
}
