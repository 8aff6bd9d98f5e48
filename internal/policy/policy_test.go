package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/manorsim/internal/sim"
	"github.com/talgya/manorsim/internal/tuning"
)

func previewContext(coin, bushels, population int) *sim.TurnContext {
	st := sim.CreateNewRun("policy-fixture", tuning.Default())
	st.Manor.Coin = coin
	st.Manor.BushelsStored = bushels
	st.Manor.Population = population
	return &sim.TurnContext{PreviewState: st}
}

func TestLookupKnownAndUnknown(t *testing.T) {
	for _, id := range IDs() {
		f, ok := Lookup(id)
		require.True(t, ok, id)
		require.NotNil(t, f, id)
	}
	_, ok := Lookup("no-such-policy")
	assert.False(t, ok)
}

func TestIDsAreSortedAndStable(t *testing.T) {
	ids := IDs()
	require.Equal(t, []string{"builder-forward", "builder-forward/buffered", "prudent-builder"}, ids)
	assert.Equal(t, ids, IDs())
}

func TestPoliciesAreDeterministic(t *testing.T) {
	ctx := previewContext(40, 500, 120)
	for _, id := range IDs() {
		f, _ := Lookup(id)
		assert.Equal(t, f(ctx), f(ctx), id)
	}
}

func TestPoliciesDoNotMutateThePreview(t *testing.T) {
	ctx := previewContext(40, 500, 120)
	before := ctx.PreviewState.Clone()
	for _, id := range IDs() {
		f, _ := Lookup(id)
		f(ctx)
	}
	require.Equal(t, before, ctx.PreviewState)
}

func TestPrudentBuilderStandsBuildersDownWhenGranaryLean(t *testing.T) {
	lean := previewContext(40, 100, 120) // under one turn of food
	d := prudentBuilder(lean)
	require.NotNil(t, d.Labor)
	assert.Equal(t, 0, d.Labor.Builders)
	assert.Equal(t, 72, d.Labor.Farmers)

	fed := previewContext(40, 600, 120)
	d = prudentBuilder(fed)
	assert.Equal(t, 12, d.Labor.Builders)
}

func TestPrudentBuilderBanksCoin(t *testing.T) {
	broke := previewContext(12, 600, 120)
	assert.Nil(t, prudentBuilder(broke).Construction)

	rich := previewContext(60, 600, 120)
	d := prudentBuilder(rich)
	require.NotNil(t, d.Construction)
	assert.Equal(t, 10, d.Construction.SpendCoin, "spend is capped")

	modest := previewContext(18, 600, 120)
	assert.Equal(t, 3, prudentBuilder(modest).Construction.SpendCoin)
}

func TestBufferedVariantFoldsBuildersIntoFarmers(t *testing.T) {
	lean := previewContext(40, 500, 120) // under the two-turn buffer
	d := builderForwardBuffered(lean)
	require.NotNil(t, d.Labor)
	assert.Equal(t, 0, d.Labor.Builders)
	assert.Equal(t, 108, d.Labor.Farmers)

	buffered := previewContext(40, 2000, 120)
	d = builderForwardBuffered(buffered)
	assert.Equal(t, 36, d.Labor.Builders)
	assert.Equal(t, 72, d.Labor.Farmers)
}

func TestPoliciesAcceptEveryShownProspect(t *testing.T) {
	ctx := previewContext(40, 500, 120)
	ctx.ProspectsWindow = &sim.ProspectsWindow{ShownIDs: []string{"pr_0001", "pr_0002"}}

	for _, id := range IDs() {
		f, _ := Lookup(id)
		d := f(ctx)
		require.NotNil(t, d.Prospects, id)
		require.Len(t, d.Prospects.Actions, 2, id)
		assert.Equal(t, "accept", d.Prospects.Actions[0].Action, id)
		assert.Equal(t, "pr_0001", d.Prospects.Actions[0].ProspectID, id)
	}
}

func TestNoWindowMeansNoProspectDecisions(t *testing.T) {
	ctx := previewContext(40, 500, 120)
	for _, id := range IDs() {
		f, _ := Lookup(id)
		assert.Nil(t, f(ctx).Prospects, id)
	}
}
