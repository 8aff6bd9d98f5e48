package world

import (
	"fmt"
	"sort"
)

// Map holds the estate's hex grid.
type Map struct {
	Seed   string            `json:"seed"`
	Radius int               `json:"radius"`
	Tiles  map[HexCoord]*Tile `json:"-"`
}

// NewMap creates an empty map with the given radius.
// A hex grid of radius R contains hexes where max(|q|, |r|, |s|) <= R.
func NewMap(seed string, radius int) *Map {
	return &Map{
		Seed:   seed,
		Radius: radius,
		Tiles:  make(map[HexCoord]*Tile),
	}
}

// Get returns the tile at the given coordinate, or nil if out of bounds.
func (m *Map) Get(coord HexCoord) *Tile {
	return m.Tiles[coord]
}

// Set places a tile at its coordinate.
func (m *Map) Set(t *Tile) {
	m.Tiles[t.Coord] = t
}

// InBounds returns true if the coordinate is within the map radius.
func (m *Map) InBounds(coord HexCoord) bool {
	q := abs(coord.Q)
	r := abs(coord.R)
	s := abs(coord.S())
	max := q
	if r > max {
		max = r
	}
	if s > max {
		max = s
	}
	return max <= m.Radius
}

// TileCount returns the total number of tiles in the map.
func (m *Map) TileCount() int {
	return len(m.Tiles)
}

// SortedTiles returns tiles ordered by (q, r) so two identical maps
// serialize identically.
func (m *Map) SortedTiles() []*Tile {
	tiles := make([]*Tile, 0, len(m.Tiles))
	for _, t := range m.Tiles {
		tiles = append(tiles, t)
	}
	sort.Slice(tiles, func(i, j int) bool {
		if tiles[i].Coord.Q != tiles[j].Coord.Q {
			return tiles[i].Coord.Q < tiles[j].Coord.Q
		}
		return tiles[i].Coord.R < tiles[j].Coord.R
	})
	return tiles
}

// String returns a summary of the map.
func (m *Map) String() string {
	return fmt.Sprintf("Map(radius=%d, tiles=%d)", m.Radius, m.TileCount())
}
