package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "sir", cfg.Model)
	assert.Equal(t, "rk45", cfg.Integrator)
	assert.Greater(t, cfg.Interval, 0.0)
	assert.Greater(t, cfg.TEnd, cfg.TStart)
	assert.Equal(t, 1.0, cfg.InitState.S)
	assert.Equal(t, DefaultI0, cfg.InitState.I)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")

	cfg := DefaultConfig()
	cfg.Model = "seir"
	cfg.Params.Beta = 0.35
	cfg.TEnd = 250

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "seir", loaded.Model)
	assert.Equal(t, 0.35, loaded.Params.Beta)
	assert.Equal(t, 250.0, loaded.TEnd)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("sir", "influenza")
	require.NotNil(t, cfg)
	assert.Equal(t, 0.5, cfg.Params.Beta)
	assert.InDelta(t, 1.0/3.0, cfg.Params.Gamma, 1e-12)

	assert.Nil(t, GetPreset("sir", "nonexistent"))
	assert.Nil(t, GetPreset("nonexistent", "influenza"))
}

func TestListPresets(t *testing.T) {
	assert.NotEmpty(t, ListPresets("sir"))
	assert.NotEmpty(t, ListPresets("seir"))
	assert.Nil(t, ListPresets("nonexistent"))
}

func TestGetInitState(t *testing.T) {
	tests := []struct {
		model    string
		expected int
	}{
		{"sir", 3},
		{"seir", 4},
		{"sis", 2},
		{"sird", 4},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Model = tt.model
		assert.Len(t, cfg.GetInitState(), tt.expected, "model %s", tt.model)
	}
}

func TestPresetsAreConsistent(t *testing.T) {
	for model, byName := range Presets {
		for name, cfg := range byName {
			assert.Equal(t, model, cfg.Model, "preset %s/%s", model, name)
			assert.Greater(t, cfg.TEnd, cfg.TStart, "preset %s/%s", model, name)
			assert.Greater(t, cfg.Interval, 0.0, "preset %s/%s", model, name)
			assert.GreaterOrEqual(t, cfg.Params.Beta, 0.0, "preset %s/%s", model, name)
		}
	}
}
