package telemetry

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/manorsim/internal/engine"
	"github.com/talgya/manorsim/internal/sim"
	"github.com/talgya/manorsim/internal/tuning"
)

func playTurns(t *testing.T, seed string, turns int) (*sim.RunState, []*sim.TurnReport) {
	t.Helper()
	tun := tuning.Default()
	pl := engine.New(tun)
	st := sim.CreateNewRun(seed, tun)

	var reports []*sim.TurnReport
	for i := 0; i < turns; i++ {
		ctx, err := pl.ProposeTurn(st)
		require.NoError(t, err)
		next, report, err := pl.ApplyDecisions(ctx, sim.Decisions{})
		require.NoError(t, err)
		st = next
		reports = append(reports, report)
	}
	return st, reports
}

func TestRecordAndReadBackRun(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "telemetry.db"))
	require.NoError(t, err)
	defer db.Close()

	st, reports := playTurns(t, "telemetry-roundtrip", 3)

	runID, err := db.BeginRun(st.RunSeed, "prudent-builder")
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	for _, r := range reports {
		require.NoError(t, db.RecordTurn(runID, r, st))
	}
	require.NoError(t, db.FinishRun(runID, st))

	got, err := db.TurnReports(runID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, r := range got {
		assert.Equal(t, reports[i].TurnIndex, r.TurnIndex)
		assert.Equal(t, reports[i].Notes, r.Notes)
	}

	runs, err := db.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].RunID)
	assert.Equal(t, "prudent-builder", runs[0].PolicyID)
	assert.Equal(t, 3, runs[0].TurnsPlayed)
}

func TestArchiveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	_, reports := playTurns(t, "telemetry-archive", 3)

	ar, err := NewArchive(dir, "run-archive")
	require.NoError(t, err)
	for _, r := range reports {
		require.NoError(t, ar.Write(r))
	}
	require.NoError(t, ar.Close())

	got, err := ReadArchive[sim.TurnReport](filepath.Join(dir, "run-archive.jsonl.zst"))
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := range got {
		assert.Equal(t, reports[i].TurnIndex, got[i].TurnIndex)
	}
}
