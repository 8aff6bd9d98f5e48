// Estate map generation using layered simplex noise. Elevation and wetness
// layers derive the terrain; landmarks are then placed on the best-suited
// tiles. Generation is a pure function of the seed string.
package world

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/manorsim/internal/rng"
)

// GenConfig holds estate map generation parameters.
type GenConfig struct {
	Radius   int     // Hex grid radius (~12 for a single estate)
	MarshLvl float64 // Wetness threshold for marsh (0.0–1.0)
	WoodLvl  float64 // Dry-upland threshold for woodland (0.0–1.0)
}

// DefaultGenConfig returns the standard single-estate configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Radius:   12,
		MarshLvl: 0.78,
		WoodLvl:  0.62,
	}
}

// Generate creates the estate map for a run seed.
func Generate(seed string, cfg GenConfig) *Map {
	base := int64(rng.SeedFromString(seed))

	elevNoise := opensimplex.NewNormalized(base)
	wetNoise := opensimplex.NewNormalized(base + 1)

	m := NewMap(seed, cfg.Radius)

	for q := -cfg.Radius; q <= cfg.Radius; q++ {
		for r := -cfg.Radius; r <= cfg.Radius; r++ {
			coord := HexCoord{Q: q, R: r}
			if !m.InBounds(coord) {
				continue
			}

			// Hex axial → cartesian: x = q + r*0.5, y = r * sqrt(3)/2
			x := float64(q) + float64(r)*0.5
			y := float64(r) * math.Sqrt(3.0) / 2.0

			elev := octaveNoise(elevNoise, x, y, 4, 0.11, 0.5)
			wet := octaveNoise(wetNoise, x, y, 3, 0.09, 0.5)

			// The brook runs along the low ground; wetness pools there.
			wet = wet*0.7 + (1.0-elev)*0.3

			tile := &Tile{
				Coord:     coord,
				Terrain:   deriveTerrain(elev, wet, cfg),
				Elevation: elev,
				Wetness:   wet,
			}
			m.Set(tile)
		}
	}

	placeLandmarks(m)
	return m
}

// octaveNoise samples multi-octave noise, normalized to [0, 1].
func octaveNoise(n opensimplex.Noise, x, y float64, octaves int, freq, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxValue := 0.0
	for i := 0; i < octaves; i++ {
		total += n.Eval2(x*freq, y*freq) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		freq *= 2
	}
	return total / maxValue
}

func deriveTerrain(elev, wet float64, cfg GenConfig) Terrain {
	switch {
	case wet > cfg.MarshLvl && elev < 0.35:
		return TerrainWater
	case wet > cfg.MarshLvl:
		return TerrainMarsh
	case elev > cfg.WoodLvl:
		return TerrainWood
	case wet < 0.35:
		return TerrainMeadow
	default:
		return TerrainField
	}
}

// placeLandmarks sets the manor house, church, village, and mill. Placement
// scans tiles in sorted order so the choice is deterministic.
func placeLandmarks(m *Map) {
	tiles := m.SortedTiles()

	// Manor house: the driest field tile nearest the center.
	center := HexCoord{}
	best := func(score func(*Tile) float64) *Tile {
		var pick *Tile
		bestScore := math.Inf(-1)
		for _, t := range tiles {
			if t.Feature != "" {
				continue
			}
			if s := score(t); s > bestScore {
				bestScore = s
				pick = t
			}
		}
		return pick
	}

	// place tries the preferred score first, then a relaxed fallback so a
	// landmark always lands somewhere even on an unlucky seed.
	place := func(f Feature, scores ...func(*Tile) float64) {
		for _, score := range scores {
			if t := best(score); t != nil {
				t.Feature = f
				return
			}
		}
	}

	dryGround := func(t *Tile) float64 {
		if t.Terrain == TerrainWater || t.Terrain == TerrainMarsh {
			return math.Inf(-1)
		}
		return -float64(Distance(t.Coord, center)) - t.Wetness
	}

	place(FeatureManorHouse,
		func(t *Tile) float64 {
			if t.Terrain != TerrainField && t.Terrain != TerrainMeadow {
				return math.Inf(-1)
			}
			return -float64(Distance(t.Coord, center)) - t.Wetness
		},
		dryGround,
	)

	manor := center
	for _, t := range tiles {
		if t.Feature == FeatureManorHouse {
			manor = t.Coord
		}
	}

	place(FeatureVillage,
		func(t *Tile) float64 {
			if t.Terrain != TerrainField {
				return math.Inf(-1)
			}
			d := Distance(t.Coord, manor)
			if d < 1 || d > 4 {
				return math.Inf(-1)
			}
			return -float64(d)
		},
		dryGround,
	)

	place(FeatureChurch,
		func(t *Tile) float64 {
			if t.Terrain == TerrainWater || t.Terrain == TerrainMarsh {
				return math.Inf(-1)
			}
			d := Distance(t.Coord, manor)
			if d < 1 || d > 3 {
				return math.Inf(-1)
			}
			return -float64(d) - t.Wetness
		},
		dryGround,
	)

	// Mill: the wettest non-water tile, by the brook.
	place(FeatureMill, func(t *Tile) float64 {
		if t.Terrain == TerrainWater {
			return math.Inf(-1)
		}
		return t.Wetness
	})
}
