// Package statefile reads and writes run state snapshots as JSON files.
// Loaded snapshots are schema-checked and then normalized, so hand-edited
// or out-of-range files come back as repaired, in-range states rather
// than corrupting a run.
package statefile

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/talgya/manorsim/internal/sim"
)

//go:embed schema.json
var schemaJSON string

var schema = jsonschema.MustCompileString("runstate.schema.json", schemaJSON)

// Validate checks raw snapshot bytes against the run state schema.
func Validate(raw []byte) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("statefile: parse: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("statefile: schema: %w", err)
	}
	return nil
}

// Load reads, validates, and normalizes a snapshot file.
func Load(path string) (*sim.RunState, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("statefile: read %s: %w", path, err)
	}
	return Decode(raw)
}

// Decode turns raw snapshot bytes into a normalized state.
func Decode(raw []byte) (*sim.RunState, error) {
	if err := Validate(raw); err != nil {
		return nil, err
	}
	var st sim.RunState
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("statefile: decode: %w", err)
	}
	sim.Normalize(&st)
	return &st, nil
}

// Encode serializes a state as indented JSON. Map keys serialize sorted,
// so equal states encode to equal bytes.
func Encode(st *sim.RunState) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(st); err != nil {
		return nil, fmt.Errorf("statefile: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes a snapshot file. The write goes through a temp file and a
// rename so a crash mid-write never leaves a truncated snapshot behind.
func Save(path string, st *sim.RunState) error {
	raw, err := Encode(st)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("statefile: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("statefile: rename %s: %w", tmp, err)
	}
	return nil
}
