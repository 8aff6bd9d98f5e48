package world

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIsDeterministic(t *testing.T) {
	cfg := DefaultGenConfig()
	a := Generate("estate-determinism", cfg)
	b := Generate("estate-determinism", cfg)
	require.Equal(t, a.ToArtifact(), b.ToArtifact())

	c := Generate("estate-determinism-other", cfg)
	assert.NotEqual(t, a.ToArtifact(), c.ToArtifact())
}

func TestGenerateFillsTheGrid(t *testing.T) {
	m := Generate("estate-grid", DefaultGenConfig())
	// Hex grid of radius R has 3R^2 + 3R + 1 tiles.
	r := m.Radius
	assert.Equal(t, 3*r*r+3*r+1, m.TileCount())

	for _, tile := range m.SortedTiles() {
		assert.True(t, m.InBounds(tile.Coord))
		assert.GreaterOrEqual(t, tile.Elevation, 0.0)
		assert.LessOrEqual(t, tile.Elevation, 1.0)
	}
}

func TestLandmarksArePlacedOnce(t *testing.T) {
	m := Generate("estate-landmarks", DefaultGenConfig())

	counts := map[Feature]int{}
	for _, tile := range m.SortedTiles() {
		if tile.Feature != "" {
			counts[tile.Feature]++
		}
	}
	for _, f := range []Feature{FeatureManorHouse, FeatureVillage, FeatureChurch, FeatureMill} {
		assert.Equal(t, 1, counts[f], string(f))
	}
}

func TestWriteArtifactIsStable(t *testing.T) {
	dir := t.TempDir()
	m := Generate("estate-artifact", DefaultGenConfig())

	p1 := filepath.Join(dir, "a.json")
	p2 := filepath.Join(dir, "b.json")
	require.NoError(t, WriteArtifact(p1, m))
	require.NoError(t, WriteArtifact(p2, Generate("estate-artifact", DefaultGenConfig())))

	a, _ := os.ReadFile(p1)
	b, _ := os.ReadFile(p2)
	assert.Equal(t, string(a), string(b))
}

func TestHexDistance(t *testing.T) {
	assert.Equal(t, 0, Distance(HexCoord{}, HexCoord{}))
	assert.Equal(t, 1, Distance(HexCoord{}, HexCoord{Q: 1, R: 0}))
	assert.Equal(t, 2, Distance(HexCoord{Q: -1, R: 0}, HexCoord{Q: 1, R: 0}))
	assert.Equal(t, 3, Distance(HexCoord{}, HexCoord{Q: 1, R: 2}))
}
