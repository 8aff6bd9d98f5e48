package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/manorsim/internal/rng"
	"github.com/talgya/manorsim/internal/sim"
	"github.com/talgya/manorsim/internal/tuning"
)

func testState() *sim.RunState {
	return sim.CreateNewRun("deck-test", tuning.Default())
}

func TestStepIsDeterministic(t *testing.T) {
	tun := tuning.Default()
	a := testState()
	b := testState()

	for turn := 0; turn < 10; turn++ {
		ea := NewDeck().Step(a, rng.New(a.RunSeed, "events", turn, "draw"), tun)
		eb := NewDeck().Step(b, rng.New(b.RunSeed, "events", turn, "draw"), tun)
		require.Equal(t, ea, eb, "turn %d", turn)
		require.Equal(t, a.Manor, b.Manor, "turn %d", turn)
	}
}

func TestStepRespectsMaxEventsPerTurn(t *testing.T) {
	tun := tuning.Default()
	tun.QuietWeight = 0 // every draw fires

	st := testState()
	effects := NewDeck().Step(st, rng.New(st.RunSeed, "events", 0, "draw"), tun)

	sources := map[string]bool{}
	for _, e := range effects {
		sources[e.Source] = true
	}
	assert.LessOrEqual(t, len(sources), tun.MaxEventsPerTurn)
	assert.NotEmpty(t, sources, "with no quiet weight at least one event fires")
}

func TestEventNeverFiresTwiceInOneTurn(t *testing.T) {
	tun := tuning.Default()
	tun.QuietWeight = 0
	tun.MaxEventsPerTurn = 10

	st := testState()
	effects := NewDeck().Step(st, rng.New(st.RunSeed, "events", 0, "draw"), tun)

	seen := map[string]int{}
	for _, e := range effects {
		seen[e.Source]++
	}
	for kind, n := range seen {
		assert.Equal(t, 1, n, "event %s fired more than once", kind)
	}
}

func TestCooldownBlocksAndDecrements(t *testing.T) {
	tun := tuning.Default()
	st := testState()
	st.EventCooldowns["good_harvest"] = 2

	deck := NewDeck()
	deck.Step(st, rng.New(st.RunSeed, "events", 0, "draw"), tun)
	assert.Equal(t, 1, st.EventCooldowns["good_harvest"], "cooldown ticks down and still blocks")
}

func TestZeroWeightExcludesEvent(t *testing.T) {
	tun := tuning.Default()
	st := testState()
	st.Manor.Coin = 0
	st.People[st.House.HeadID].Traits.Martial = 90 // drives bandit weight to zero

	for _, def := range NewDeck().Defs() {
		if def.Kind == "bandit_raid" {
			assert.Equal(t, 0, def.Weight(st, tun).Weight)
		}
	}
}

func TestWeightsAreNonNegativeAcrossStates(t *testing.T) {
	tun := tuning.Default()
	stream := rng.New("weight-fuzz", "test", 0, "states")
	deck := NewDeck()

	for i := 0; i < 100; i++ {
		st := testState()
		st.Manor.Coin = stream.Intn(80)
		st.Manor.Population = stream.Intn(300)
		st.Manor.Unrest = stream.Intn(101)
		st.Manor.BushelsStored = stream.Intn(800)
		for _, def := range deck.Defs() {
			w := def.Weight(st, tun)
			require.GreaterOrEqual(t, w.Weight, 0, "%s produced a negative weight", def.Kind)
		}
	}
}

func TestQuietWeightAllowsNoEventTurns(t *testing.T) {
	tun := tuning.Default()
	tun.QuietWeight = 1 << 20 // quiet dominates

	st := testState()
	effects := NewDeck().Step(st, rng.New(st.RunSeed, "events", 0, "draw"), tun)
	assert.Empty(t, effects)
}
