package tuning

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte("turn_years: 5\ndispossess_coin: 99\n"), 0o644))

	tun, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, tun.TurnYears)
	assert.Equal(t, 99, tun.DispossessCoin)
	// Untouched knobs keep their defaults.
	assert.Equal(t, Default().FarmYieldBushels, tun.FarmYieldBushels)
	assert.Equal(t, Default().MaxEventsPerTurn, tun.MaxEventsPerTurn)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("turn_years: [oops"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}
