// Package world generates the static manor map artifact: the hex-tiled
// estate picture a front end draws behind the run. The artifact is a pure
// function of the run seed and is never consulted by the turn pipeline.
// Uses axial coordinates (q, r) for the hex grid.
package world

// HexCoord represents a position on the hex grid using axial coordinates.
// The third cube coordinate s is derived: s = -q - r.
type HexCoord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// S returns the implicit third cube coordinate.
func (h HexCoord) S() int {
	return -h.Q - h.R
}

// Terrain types for estate tiles.
type Terrain string

const (
	TerrainField  Terrain = "field"  // Plowland around the village
	TerrainMeadow Terrain = "meadow" // Pasture and common grazing
	TerrainWood   Terrain = "wood"   // Coppice and timber stands
	TerrainMarsh  Terrain = "marsh"  // Low wet ground along the brook
	TerrainWater  Terrain = "water"  // The brook and the mill pond
)

// Feature marks a built landmark on a tile.
type Feature string

const (
	FeatureManorHouse Feature = "manor_house"
	FeatureChurch     Feature = "church"
	FeatureVillage    Feature = "village"
	FeatureMill       Feature = "mill"
)

// Tile is a single hex of the estate.
type Tile struct {
	Coord     HexCoord `json:"coord"`
	Terrain   Terrain  `json:"terrain"`
	Elevation float64  `json:"elevation"` // 0.0 (brook bottom) to 1.0 (ridge)
	Wetness   float64  `json:"wetness"`   // 0.0 (dry) to 1.0 (waterlogged)
	Feature   Feature  `json:"feature,omitempty"`
}

// HexNeighborDirections defines the six neighbor offsets in axial coordinates.
var HexNeighborDirections = [6]HexCoord{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// Neighbors returns the six adjacent hex coordinates.
func (h HexCoord) Neighbors() [6]HexCoord {
	var result [6]HexCoord
	for i, dir := range HexNeighborDirections {
		result[i] = HexCoord{Q: h.Q + dir.Q, R: h.R + dir.R}
	}
	return result
}

// Distance returns the hex distance between two coordinates.
func Distance(a, b HexCoord) int {
	dq := abs(a.Q - b.Q)
	dr := abs(a.R - b.R)
	ds := abs(a.S() - b.S())
	max := dq
	if dr > max {
		max = dr
	}
	if ds > max {
		max = ds
	}
	return max
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
