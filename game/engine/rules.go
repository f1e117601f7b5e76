package engine

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// Rules holds the tunable constants of a game. DefaultRules matches the
// classic 8x8 game.
type Rules struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	GridSize        int     `json:"grid_size"`
	TrayCapacity    int     `json:"tray_capacity"`
	InitialTarget   int     `json:"initial_target"`
	LevelMultiplier float64 `json:"level_multiplier"`
	LineBonus       int     `json:"line_bonus"`
}

// DefaultRules returns the standard rule set
func DefaultRules() *Rules {
	return &Rules{
		Name:            "classic",
		Description:     "Standard 8x8 board with a three-slot tray",
		GridSize:        DefaultGridSize,
		TrayCapacity:    DefaultTrayCapacity,
		InitialTarget:   DefaultInitialTarget,
		LevelMultiplier: DefaultLevelMultiplier,
		LineBonus:       DefaultLineBonus,
	}
}

// NextTarget returns the adventure target following target.
func (r *Rules) NextTarget(target int) int {
	return int(math.Floor(float64(target) * r.LevelMultiplier))
}

// ValidateRules validates a rule set for correctness and playability
func ValidateRules(rules *Rules) error {
	if rules == nil {
		return fmt.Errorf("rules validation: rules are nil")
	}
	if rules.Name == "" {
		return fmt.Errorf("rules validation: name is required")
	}

	if rules.GridSize < MinGridSize || rules.GridSize > MaxGridSize {
		return fmt.Errorf("rules validation: grid_size must be between %d and %d, got %d", MinGridSize, MaxGridSize, rules.GridSize)
	}
	if rules.TrayCapacity < MinTrayCapacity || rules.TrayCapacity > MaxTrayCapacity {
		return fmt.Errorf("rules validation: tray_capacity must be between %d and %d, got %d", MinTrayCapacity, MaxTrayCapacity, rules.TrayCapacity)
	}
	if rules.InitialTarget < MinInitialTarget || rules.InitialTarget > MaxInitialTarget {
		return fmt.Errorf("rules validation: initial_target must be between %d and %d, got %d", MinInitialTarget, MaxInitialTarget, rules.InitialTarget)
	}
	if rules.LevelMultiplier <= 1 || rules.LevelMultiplier > MaxLevelMultiplier {
		return fmt.Errorf("rules validation: level_multiplier must be in (1, %g], got %g", MaxLevelMultiplier, rules.LevelMultiplier)
	}
	// The target has to grow, otherwise a level could be completed by its own reset.
	if rules.NextTarget(rules.InitialTarget) <= rules.InitialTarget {
		return fmt.Errorf("rules validation: level_multiplier %g does not raise initial_target %d", rules.LevelMultiplier, rules.InitialTarget)
	}
	if rules.LineBonus < 0 || rules.LineBonus > MaxLineBonus {
		return fmt.Errorf("rules validation: line_bonus must be between 0 and %d, got %d", MaxLineBonus, rules.LineBonus)
	}

	// Every catalog shape must fit on an empty board.
	for _, s := range catalog {
		w, h := s.Bounds()
		if w > rules.GridSize || h > rules.GridSize {
			return fmt.Errorf("rules validation: shape %d (%dx%d) does not fit a %dx%d grid", s.ID, w, h, rules.GridSize, rules.GridSize)
		}
	}

	return nil
}

// LoadRules loads a rule set from a JSON file. Missing numeric fields take
// their default values.
func LoadRules(filename string) (*Rules, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ParseRules(data)
}

// ParseRules decodes and validates a JSON rule set.
func ParseRules(data []byte) (*Rules, error) {
	rules := DefaultRules()
	rules.Name = ""
	rules.Description = ""
	if err := json.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules: %w", err)
	}
	if err := ValidateRules(rules); err != nil {
		return nil, err
	}
	return rules, nil
}
