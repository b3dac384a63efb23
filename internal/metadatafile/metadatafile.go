// Package metadatafile reads and atomically rewrites the small JSON
// document describing a repository's schema version, creation time,
// tool version, and id prefix.
package metadatafile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bzstore/bzcore/internal/atomicwrite"
	"github.com/bzstore/bzcore/internal/types"
)

const FileName = "metadata.json"

var ErrNotFound = errors.New("metadatafile: not found")

func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Read loads metadata.json from dir. Unknown fields are silently
// dropped by encoding/json; absence is reported as ErrNotFound so
// callers can distinguish "fresh repo" from "corrupt file".
func Read(dir string) (types.Metadata, error) {
	data, err := os.ReadFile(Path(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return types.Metadata{}, ErrNotFound
		}
		return types.Metadata{}, fmt.Errorf("metadatafile: read: %w", err)
	}

	var m types.Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return types.Metadata{}, fmt.Errorf("metadatafile: parse: %w", err)
	}
	return m, nil
}

// Write atomically rewrites metadata.json with a trailing newline.
func Write(dir string, m types.Metadata, nowUnix int64) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("metadatafile: encode: %w", err)
	}
	data = append(data, '\n')
	return atomicwrite.Write(Path(dir), data, nowUnix)
}
