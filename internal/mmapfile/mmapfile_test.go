package mmapfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	mf, err := Open(path)
	require.NoError(t, err)
	defer mf.Close()

	require.Equal(t, 0, mf.Len())
	require.NotNil(t, mf.Data())
}

func TestOpenReadsContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.txt")
	want := []byte("hello, mapped world\n")
	require.NoError(t, os.WriteFile(path, want, 0o644))

	mf, err := Open(path)
	require.NoError(t, err)
	defer mf.Close()

	require.Equal(t, want, mf.Data())
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrFileNotFound))
}
