// Package jsonl encodes and decodes Issue records as a line-delimited
// JSON log: one object per line, blank lines and '#'-prefixed comment
// lines ignored on read, never produced on write.
package jsonl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/bzstore/bzcore/internal/atomicwrite"
	"github.com/bzstore/bzcore/internal/mmapfile"
	"github.com/bzstore/bzcore/internal/scanner"
	"github.com/bzstore/bzcore/internal/types"
)

// ReadAll parses every issue record in the JSONL file at path. A
// malformed line aborts the read and names the 1-based line number,
// per the resolved parse-error policy (SPEC_FULL.md §4.6).
func ReadAll(path string) ([]*types.Issue, error) {
	mf, err := mmapfile.Open(path)
	if err != nil {
		return nil, err
	}
	defer mf.Close()

	return Decode(mf.Data())
}

// Decode is the in-memory counterpart of ReadAll: it parses a buffer
// the caller already holds, with the same line rules.
func Decode(data []byte) ([]*types.Issue, error) {
	lines := scanner.Lines(data)
	issues := make([]*types.Issue, 0, len(lines))

	for idx, ln := range lines {
		raw := bytes.TrimSpace(data[ln.Start:ln.End])
		if len(raw) == 0 || raw[0] == '#' {
			continue
		}
		var issue types.Issue
		if err := json.Unmarshal(raw, &issue); err != nil {
			return nil, fmt.Errorf("jsonl: parse error at line %d: %w", idx+1, err)
		}
		issues = append(issues, &issue)
	}
	return issues, nil
}

// WriteAll serializes issues one per line, LF terminated, and replaces
// path atomically.
func WriteAll(path string, issues []*types.Issue, nowUnix int64) error {
	var buf bytes.Buffer
	for _, issue := range issues {
		b, err := json.Marshal(issue)
		if err != nil {
			return fmt.Errorf("jsonl: encode %s: %w", issue.ID, err)
		}
		buf.Write(b)
		buf.WriteByte('\n')
	}
	return atomicwrite.Write(path, buf.Bytes(), nowUnix)
}

// Exists reports whether the JSONL file is present, distinguishing
// absence from other stat failures so callers can apply the
// migration engine's "missing issues file needs no backup" rule.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
