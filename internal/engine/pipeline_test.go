package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/manorsim/internal/policy"
	"github.com/talgya/manorsim/internal/sim"
	"github.com/talgya/manorsim/internal/tuning"
)

func runTurns(t *testing.T, seed, policyID string, turns int, tun tuning.Tuning) *sim.RunState {
	t.Helper()
	pl := New(tun)
	decide, ok := policy.Lookup(policyID)
	require.True(t, ok, "unknown policy %s", policyID)

	st := sim.CreateNewRun(seed, tun)
	for i := 0; i < turns; i++ {
		ctx, err := pl.ProposeTurn(st)
		require.NoError(t, err)
		next, _, err := pl.ApplyDecisions(ctx, decide(ctx))
		require.NoError(t, err)
		st = next
	}
	return st
}

func TestGoldenSeedReplayIsByteIdentical(t *testing.T) {
	tun := tuning.Default()
	a := runTurns(t, "lotm_v007_001_baseline", "prudent-builder", 15, tun)
	b := runTurns(t, "lotm_v007_001_baseline", "prudent-builder", 15, tun)

	rawA, err := json.Marshal(a.Log)
	require.NoError(t, err)
	rawB, err := json.Marshal(b.Log)
	require.NoError(t, err)
	require.Equal(t, string(rawA), string(rawB), "two replays of the golden seed must serialize identically")

	rawStateA, err := json.Marshal(a)
	require.NoError(t, err)
	rawStateB, err := json.Marshal(b)
	require.NoError(t, err)
	require.Equal(t, string(rawStateA), string(rawStateB))
}

func TestDifferentSeedsDiverge(t *testing.T) {
	tun := tuning.Default()
	a := runTurns(t, "lotm_v007_001_baseline", "prudent-builder", 15, tun)
	b := runTurns(t, "lotm_v007_002_variant", "prudent-builder", 15, tun)

	rawA, _ := json.Marshal(a)
	rawB, _ := json.Marshal(b)
	assert.NotEqual(t, string(rawA), string(rawB))
}

func TestAllPoliciesCompleteRuns(t *testing.T) {
	tun := tuning.Default()
	for _, id := range policy.IDs() {
		st := runTurns(t, "policy-sweep", id, 10, tun)
		assert.Len(t, st.Log, 10, "policy %s", id)
	}
}

func TestProposeDoesNotMutateCaller(t *testing.T) {
	tun := tuning.Default()
	st := sim.CreateNewRun("propose-pure", tun)
	before := st.Clone()

	_, err := New(tun).ProposeTurn(st)
	require.NoError(t, err)
	require.Equal(t, before, st, "propose must leave the caller's state untouched")
}

func TestProposeNilStateFails(t *testing.T) {
	_, err := New(tuning.Default()).ProposeTurn(nil)
	assert.Error(t, err)
}

func TestApplyNilContextFails(t *testing.T) {
	_, _, err := New(tuning.Default()).ApplyDecisions(nil, sim.Decisions{})
	assert.Error(t, err)
}

func TestOversubscribedEntryRaisesLaborSignal(t *testing.T) {
	tun := tuning.Default()
	pl := New(tun)
	st := sim.CreateNewRun("labor-signal", tun)
	st.Manor.Population = 50
	st.Manor.Farmers = 40
	st.Manor.Builders = 30

	ctx, err := pl.ProposeTurn(st)
	require.NoError(t, err)

	sig := ctx.Proposal.LaborSignal
	assert.True(t, sig.Oversubscribed)
	assert.Equal(t, 40, sig.Farmers)
	assert.Equal(t, 30, sig.Builders)
	assert.Equal(t, 50, sig.Population)

	m := ctx.PreviewState.Manor
	assert.LessOrEqual(t, m.Farmers+m.Builders, m.Population)

	// The signal lands on the applied report too.
	_, report, err := pl.ApplyDecisions(ctx, sim.Decisions{})
	require.NoError(t, err)
	assert.True(t, report.LaborSignal.Oversubscribed)
}

func TestHeadDeathRosterAndSuccession(t *testing.T) {
	tun := tuning.Default()
	tun.ElderAge = 30
	tun.MortalityElderly = 1000 // every adult dies this turn
	pl := New(tun)

	st := sim.CreateNewRun("succession", tun)
	headID := st.House.HeadID
	heirBefore := eldestSon(st)

	ctx, err := pl.ProposeTurn(st)
	require.NoError(t, err)
	next, report, err := pl.ApplyDecisions(ctx, sim.Decisions{})
	require.NoError(t, err)

	// The report embeds its own roster: the dead head appears, deceased,
	// under his entry role, even though succession already replaced him.
	var headEntry *sim.RosterEntry
	for i := range report.HouseholdRoster {
		if report.HouseholdRoster[i].PersonID == headID {
			headEntry = &report.HouseholdRoster[i]
		}
	}
	require.NotNil(t, headEntry, "dead head must stay in the death turn's roster")
	assert.False(t, headEntry.Alive)
	assert.True(t, headEntry.DiedThisTurn)
	assert.Equal(t, "head", headEntry.Role)

	assert.Equal(t, heirBefore, next.House.HeadID, "eldest living son succeeds")
	assert.NotContains(t, next.PlayerHouse().ChildIDs, heirBefore)
	assert.False(t, next.GameOver)

	// The historical report is never rebuilt from later registry state.
	laterRaw, _ := json.Marshal(next.Log[0].HouseholdRoster)
	reportRaw, _ := json.Marshal(report.HouseholdRoster)
	assert.Equal(t, string(reportRaw), string(laterRaw))
}

func TestNoHeirEndsRunAndFreezesState(t *testing.T) {
	tun := tuning.Default()
	tun.ElderAge = 1
	tun.MortalityElderly = 1000 // the whole registry dies
	pl := New(tun)

	st := sim.CreateNewRun("extinction", tun)
	ctx, err := pl.ProposeTurn(st)
	require.NoError(t, err)
	next, report, err := pl.ApplyDecisions(ctx, sim.Decisions{})
	require.NoError(t, err)

	require.True(t, next.GameOver)
	assert.Equal(t, "no eligible heir", next.GameOverReason)
	assert.True(t, report.GameOver)

	// Terminal runs report but never advance.
	frozen := next.Clone()
	ctx2, err := pl.ProposeTurn(next)
	require.NoError(t, err)
	after, report2, err := pl.ApplyDecisions(ctx2, sim.Decisions{})
	require.NoError(t, err)
	assert.True(t, report2.GameOver)
	assert.Equal(t, frozen, after, "no gameplay mutation after game over")
}

func TestDispossessionEndsRun(t *testing.T) {
	tun := tuning.Default()
	pl := New(tun)
	st := sim.CreateNewRun("arrears", tun)
	st.Manor.Obligations.Arrears.Coin = tun.DispossessCoin + 10

	ctx, err := pl.ProposeTurn(st)
	require.NoError(t, err)
	next, _, err := pl.ApplyDecisions(ctx, sim.Decisions{})
	require.NoError(t, err)

	assert.True(t, next.GameOver)
	assert.Equal(t, "dispossessed", next.GameOverReason)
}

func TestInvalidDecisionsAreLocalNoOps(t *testing.T) {
	tun := tuning.Default()
	pl := New(tun)
	st := sim.CreateNewRun("bad-decisions", tun)

	ctx, err := pl.ProposeTurn(st)
	require.NoError(t, err)

	preview := ctx.PreviewState.Manor
	next, report, err := pl.ApplyDecisions(ctx, sim.Decisions{
		Labor:        &sim.LaborDecision{Farmers: 1_000_000, Builders: 0},
		Construction: &sim.ConstructionDecision{SpendCoin: 1_000_000},
		Prospects:    &sim.ProspectDecisions{Kind: "prospects", Actions: []sim.ProspectAction{{ProspectID: "pr_9999", Action: "accept"}}},
	})
	require.NoError(t, err, "the turn still completes")

	assert.Equal(t, preview.Farmers, next.Manor.Farmers, "rejected labor keeps the old allocation")
	assert.Equal(t, preview.Coin, next.Manor.Coin, "rejected spend leaves coin alone")
	assert.NotEmpty(t, report.Notes)
	assert.Len(t, next.Log, 1)
}

func TestObligationsAccrueIntoArrearsWhenBroke(t *testing.T) {
	tun := tuning.Default()
	pl := New(tun)
	st := sim.CreateNewRun("broke", tun)
	st.Manor.Coin = 0
	allegianceBefore := st.Relationships["liege"].Allegiance

	ctx, err := pl.ProposeTurn(st)
	require.NoError(t, err)

	m := ctx.PreviewState.Manor
	assert.Equal(t, tun.TaxAssessCoin, m.Obligations.Arrears.Coin, "unpaid tax rolls into arrears")
	assert.Equal(t, 0, m.Obligations.TaxDueCoin)
	assert.Less(t, ctx.PreviewState.Relationships["liege"].Allegiance, allegianceBefore)
}

func eldestSon(st *sim.RunState) string {
	best := ""
	bestAge := -1
	for _, id := range st.House.ChildIDs {
		p := st.People[id]
		if p.Sex != "m" || !p.Alive {
			continue
		}
		if p.Age > bestAge || (p.Age == bestAge && id < best) {
			best = id
			bestAge = p.Age
		}
	}
	return best
}
