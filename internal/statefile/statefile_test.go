package statefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/manorsim/internal/sim"
	"github.com/talgya/manorsim/internal/tuning"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	st := sim.CreateNewRun("statefile-roundtrip", tuning.Default())
	path := filepath.Join(t.TempDir(), "state.json")

	require.NoError(t, Save(path, st))
	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, st, loaded)

	// A second save of the loaded state is byte-identical.
	again := filepath.Join(t.TempDir(), "state2.json")
	require.NoError(t, Save(again, loaded))
	a, _ := os.ReadFile(path)
	b, _ := os.ReadFile(again)
	assert.Equal(t, string(a), string(b))
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	st := sim.CreateNewRun("statefile-tmp", tuning.Default())
	require.NoError(t, Save(filepath.Join(dir, "state.json"), st))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "state.json", entries[0].Name())
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "parse")
}

func TestValidateRejectsSchemaViolations(t *testing.T) {
	cases := map[string]string{
		"missing manor":  `{"house":{"house_id":"h_001","head_id":"p_0001"},"people":{},"houses":{},"run_seed":"s","turn_index":0}`,
		"empty seed":     `{"manor":{"population":1,"farmers":0,"builders":0,"bushels_stored":0,"coin":0,"unrest":0,"obligations":{"tax_due_coin":0,"tithe_due_bushels":0,"arrears":{"coin":0,"bushels":0}},"construction":{"progress":0,"required":1,"completed":0}},"house":{"house_id":"h_001","head_id":"p_0001"},"people":{},"houses":{},"run_seed":"","turn_index":0}`,
		"negative turn":  `{"manor":{"population":1,"farmers":0,"builders":0,"bushels_stored":0,"coin":0,"unrest":0,"obligations":{"tax_due_coin":0,"tithe_due_bushels":0,"arrears":{"coin":0,"bushels":0}},"construction":{"progress":0,"required":1,"completed":0}},"house":{"house_id":"h_001","head_id":"p_0001"},"people":{},"houses":{},"run_seed":"s","turn_index":-1}`,
		"bad person sex": `{"manor":{"population":1,"farmers":0,"builders":0,"bushels_stored":0,"coin":0,"unrest":0,"obligations":{"tax_due_coin":0,"tithe_due_bushels":0,"arrears":{"coin":0,"bushels":0}},"construction":{"progress":0,"required":1,"completed":0}},"house":{"house_id":"h_001","head_id":"p_0001"},"people":{"p_0001":{"id":"p_0001","name":"X","sex":"x","age":1,"alive":true}},"houses":{},"run_seed":"s","turn_index":0}`,
	}
	for name, raw := range cases {
		assert.Error(t, Validate([]byte(raw)), name)
	}
}

func TestDecodeNormalizesOutOfRangeFields(t *testing.T) {
	st := sim.CreateNewRun("statefile-repair", tuning.Default())
	st.Manor.Unrest = 400
	st.Manor.Coin = -9
	st.Manor.Farmers = st.Manor.Population + 50

	raw, err := Encode(st)
	require.NoError(t, err)
	loaded, err := Decode(raw)
	require.NoError(t, err)

	assert.Equal(t, 100, loaded.Manor.Unrest)
	assert.Equal(t, 0, loaded.Manor.Coin)
	assert.LessOrEqual(t, loaded.Manor.Farmers+loaded.Manor.Builders, loaded.Manor.Population)
}

func TestValidateAcceptsFreshRun(t *testing.T) {
	st := sim.CreateNewRun("statefile-fresh", tuning.Default())
	raw, err := Encode(st)
	require.NoError(t, err)
	assert.NoError(t, Validate(raw))
}
