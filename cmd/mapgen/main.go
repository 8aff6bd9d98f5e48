// Command mapgen writes the estate map artifact for a seed without playing
// any turns.
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/talgya/manorsim/internal/world"
)

func main() {
	var (
		seed   = flag.String("seed", "lotm_v007_001_baseline", "run seed")
		out    = flag.String("out", "manor_map.json", "output path")
		radius = flag.Int("radius", 0, "override grid radius (0 = default)")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := world.DefaultGenConfig()
	if *radius > 0 {
		cfg.Radius = *radius
	}

	m := world.Generate(*seed, cfg)
	if err := world.WriteArtifact(*out, m); err != nil {
		slog.Error("failed to write estate map", "error", err)
		os.Exit(1)
	}
	slog.Info("estate map written", "path", *out, "seed", *seed, "tiles", m.TileCount())
}
