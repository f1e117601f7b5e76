package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRules(t *testing.T) {
	rules := DefaultRules()

	require.NoError(t, ValidateRules(rules))
	assert.Equal(t, 8, rules.GridSize)
	assert.Equal(t, 3, rules.TrayCapacity)
	assert.Equal(t, 100, rules.InitialTarget)
	assert.Equal(t, 1.5, rules.LevelMultiplier)
	assert.Equal(t, 10, rules.LineBonus)
}

func TestRules_NextTarget(t *testing.T) {
	rules := DefaultRules()

	assert.Equal(t, 150, rules.NextTarget(100))
	assert.Equal(t, 225, rules.NextTarget(150))
	assert.Equal(t, 337, rules.NextTarget(225), "fractional targets round down")
}

func TestValidateRules(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *Rules)
	}{
		{"missing name", func(r *Rules) { r.Name = "" }},
		{"grid too small", func(r *Rules) { r.GridSize = MinGridSize - 1 }},
		{"grid too large", func(r *Rules) { r.GridSize = MaxGridSize + 1 }},
		{"no tray", func(r *Rules) { r.TrayCapacity = 0 }},
		{"huge tray", func(r *Rules) { r.TrayCapacity = MaxTrayCapacity + 1 }},
		{"zero target", func(r *Rules) { r.InitialTarget = 0 }},
		{"flat multiplier", func(r *Rules) { r.LevelMultiplier = 1 }},
		{"multiplier rounds to same target", func(r *Rules) { r.InitialTarget = 1; r.LevelMultiplier = 1.5 }},
		{"negative bonus", func(r *Rules) { r.LineBonus = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := DefaultRules()
			tt.modify(rules)
			assert.Error(t, ValidateRules(rules))
		})
	}

	assert.Error(t, ValidateRules(nil))
}

func TestParseRules_DefaultsMissingFields(t *testing.T) {
	rules, err := ParseRules([]byte(`{"name": "big", "description": "Bigger board", "grid_size": 10}`))
	require.NoError(t, err)

	assert.Equal(t, "big", rules.Name)
	assert.Equal(t, 10, rules.GridSize)
	assert.Equal(t, DefaultTrayCapacity, rules.TrayCapacity)
	assert.Equal(t, DefaultLineBonus, rules.LineBonus)
}

func TestParseRules_Invalid(t *testing.T) {
	_, err := ParseRules([]byte(`{not json`))
	assert.Error(t, err)

	_, err = ParseRules([]byte(`{"grid_size": 8}`))
	assert.Error(t, err, "name is required")
}

func TestLoadRules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiny.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name": "tiny", "grid_size": 5, "tray_capacity": 2}`), 0644))

	rules, err := LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, 5, rules.GridSize)
	assert.Equal(t, 2, rules.TrayCapacity)

	_, err = LoadRules(filepath.Join(dir, "missing.json"))
	assert.True(t, os.IsNotExist(err))
}
