// Command manorsim runs a headless manor estate simulation: a fixed seed,
// a decision policy, and a turn count in, a replayable turn log out.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/talgya/manorsim/internal/engine"
	"github.com/talgya/manorsim/internal/policy"
	"github.com/talgya/manorsim/internal/sim"
	"github.com/talgya/manorsim/internal/statefile"
	"github.com/talgya/manorsim/internal/telemetry"
	"github.com/talgya/manorsim/internal/tuning"
	"github.com/talgya/manorsim/internal/world"
)

func main() {
	var (
		seed         = flag.String("seed", "lotm_v007_001_baseline", "run seed")
		turns        = flag.Int("turns", 15, "turns to play")
		policyID     = flag.String("policy", "prudent-builder", "decision policy id")
		acceptRule   = flag.String("accept", "all", "prospect accept override: all, none, or grants")
		tuningPath   = flag.String("tuning", "", "tuning YAML overlay (optional)")
		statePath    = flag.String("state", "", "state snapshot to resume from and save to (optional)")
		dbPath       = flag.String("db", "", "telemetry SQLite database (optional)")
		archiveDir   = flag.String("archive-dir", "", "turn report archive directory (optional)")
		mapPath      = flag.String("map", "", "write the estate map artifact here (optional)")
		listPolicies = flag.Bool("list-policies", false, "list policy ids and exit")
		verbose      = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if *listPolicies {
		for _, id := range policy.IDs() {
			fmt.Println(id)
		}
		return
	}

	decide, ok := policy.Lookup(*policyID)
	if !ok {
		slog.Error("unknown policy", "policy", *policyID, "known", policy.IDs())
		os.Exit(1)
	}
	switch *acceptRule {
	case "all", "none", "grants":
	default:
		slog.Error("unknown accept rule", "accept", *acceptRule)
		os.Exit(1)
	}

	tun := tuning.Default()
	if *tuningPath != "" {
		loaded, err := tuning.Load(*tuningPath)
		if err != nil {
			slog.Error("failed to load tuning", "path", *tuningPath, "error", err)
			os.Exit(1)
		}
		tun = loaded
		slog.Info("tuning loaded", "path", *tuningPath)
	}

	// ── State ─────────────────────────────────────────────────────────
	var st *sim.RunState
	if *statePath != "" {
		if _, err := os.Stat(*statePath); err == nil {
			loaded, err := statefile.Load(*statePath)
			if err != nil {
				slog.Error("failed to load state", "path", *statePath, "error", err)
				os.Exit(1)
			}
			st = loaded
			slog.Info("state resumed", "path", *statePath, "turn", st.TurnIndex)
		}
	}
	if st == nil {
		st = sim.CreateNewRun(*seed, tun)
		slog.Info("new run", "seed", *seed, "policy", *policyID)
	}

	// ── Estate map artifact ───────────────────────────────────────────
	if *mapPath != "" {
		m := world.Generate(st.RunSeed, world.DefaultGenConfig())
		if err := world.WriteArtifact(*mapPath, m); err != nil {
			slog.Error("failed to write estate map", "error", err)
			os.Exit(1)
		}
		slog.Info("estate map written", "path", *mapPath, "tiles", m.TileCount())
	}

	// ── Telemetry ─────────────────────────────────────────────────────
	var db *telemetry.DB
	runID := ""
	if *dbPath != "" {
		os.MkdirAll(filepath.Dir(*dbPath), 0755)
		opened, err := telemetry.Open(*dbPath)
		if err != nil {
			slog.Error("failed to open telemetry db", "error", err)
			os.Exit(1)
		}
		db = opened
		defer db.Close()
		runID, err = db.BeginRun(st.RunSeed, *policyID)
		if err != nil {
			slog.Error("failed to register run", "error", err)
			os.Exit(1)
		}
		slog.Info("telemetry db opened", "path", *dbPath, "run_id", runID)
	}

	var archive *telemetry.Archive
	if *archiveDir != "" {
		// Policy ids may contain "/", which cannot appear in a file name.
		name := fmt.Sprintf("%s-%s", st.RunSeed, strings.ReplaceAll(*policyID, "/", "__"))
		opened, err := telemetry.NewArchive(*archiveDir, name)
		if err != nil {
			slog.Error("failed to open archive", "error", err)
			os.Exit(1)
		}
		archive = opened
		defer archive.Close()
	}

	// ── Run loop ──────────────────────────────────────────────────────
	pl := engine.New(tun)
	played := 0
	for i := 0; i < *turns; i++ {
		ctx, err := pl.ProposeTurn(st)
		if err != nil {
			slog.Error("propose failed", "turn", st.TurnIndex, "error", err)
			os.Exit(1)
		}
		dec := decide(ctx)
		filterProspects(ctx, &dec, *acceptRule)
		next, report, err := pl.ApplyDecisions(ctx, dec)
		if err != nil {
			slog.Error("apply failed", "turn", st.TurnIndex, "error", err)
			os.Exit(1)
		}
		st = next
		played++

		for _, note := range report.Notes {
			slog.Info("note", "turn", report.TurnIndex, "text", note)
		}
		for _, ev := range report.Events {
			slog.Info("event", "turn", report.TurnIndex, "kind", ev.Source, "note", ev.Note)
		}

		if db != nil {
			if err := db.RecordTurn(runID, report, st); err != nil {
				slog.Error("telemetry record failed", "error", err)
			}
		}
		if archive != nil {
			if err := archive.Write(report); err != nil {
				slog.Error("archive write failed", "error", err)
			}
		}

		if st.GameOver {
			slog.Warn("the run has ended", "reason", st.GameOverReason, "turn", report.TurnIndex)
			break
		}
	}

	if db != nil {
		if err := db.FinishRun(runID, st); err != nil {
			slog.Error("telemetry finish failed", "error", err)
		}
	}

	if *statePath != "" {
		if err := statefile.Save(*statePath, st); err != nil {
			slog.Error("failed to save state", "path", *statePath, "error", err)
			os.Exit(1)
		}
		slog.Info("state saved", "path", *statePath)
	}

	// ── Summary ───────────────────────────────────────────────────────
	head := "none"
	if p, ok := st.People[st.House.HeadID]; ok {
		head = fmt.Sprintf("%s (age %d)", p.Name, p.Age)
	}
	slog.Info("run complete",
		"turns_played", played,
		"population", humanize.Comma(int64(st.Manor.Population)),
		"bushels", humanize.Comma(int64(st.Manor.BushelsStored)),
		"coin", humanize.Comma(int64(st.Manor.Coin)),
		"unrest", st.Manor.Unrest,
		"projects_completed", st.Manor.Construction.Completed,
		"head", head,
		"game_over", st.GameOver,
	)
}

// filterProspects overrides the policy's prospect choices per the accept
// rule: "all" keeps them, "none" rejects every shown prospect, "grants"
// accepts only grant prospects and rejects the rest.
func filterProspects(ctx *sim.TurnContext, dec *sim.Decisions, rule string) {
	if rule == "all" || ctx.ProspectsWindow == nil {
		return
	}
	types := make(map[string]string, len(ctx.ProspectsWindow.Shown))
	for _, p := range ctx.ProspectsWindow.Shown {
		types[p.ID] = p.Type
	}
	out := &sim.ProspectDecisions{Kind: "prospects"}
	for _, id := range ctx.ProspectsWindow.ShownIDs {
		action := "reject"
		if rule == "grants" && types[id] == sim.ProspectGrant {
			action = "accept"
		}
		out.Actions = append(out.Actions, sim.ProspectAction{ProspectID: id, Action: action})
	}
	dec.Prospects = out
}
