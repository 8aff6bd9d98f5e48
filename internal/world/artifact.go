package world

import (
	"encoding/json"
	"fmt"
	"os"
)

// Artifact is the serialized form of an estate map: a sorted tile list so
// the same seed always writes the same bytes.
type Artifact struct {
	Seed   string  `json:"seed"`
	Radius int     `json:"radius"`
	Tiles  []*Tile `json:"tiles"`
}

// ToArtifact flattens the map for serialization.
func (m *Map) ToArtifact() *Artifact {
	return &Artifact{Seed: m.Seed, Radius: m.Radius, Tiles: m.SortedTiles()}
}

// WriteArtifact writes the estate map artifact as indented JSON.
func WriteArtifact(path string, m *Map) error {
	raw, err := json.MarshalIndent(m.ToArtifact(), "", "  ")
	if err != nil {
		return fmt.Errorf("world: encode artifact: %w", err)
	}
	if err := os.WriteFile(path, append(raw, '\n'), 0o644); err != nil {
		return fmt.Errorf("world: write artifact: %w", err)
	}
	return nil
}
