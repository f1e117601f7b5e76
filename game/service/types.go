package service

import (
	"errors"
	"time"

	"github.com/wricardo/blockpuzzle/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string            `json:"id"`
	RulesName      string            `json:"rules_name"`
	Seed           int64             `json:"seed,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
	GameState      *engine.GameState `json:"game_state"`
	Rules          *engine.Rules     `json:"rules"`
}

// CreateOptions configures a new session. An empty Mode leaves the session
// idle until StartGame is called.
type CreateOptions struct {
	ID        string      `json:"id,omitempty"`
	RulesName string      `json:"rules_name,omitempty"`
	Mode      engine.Mode `json:"mode,omitempty"`
	Seed      int64       `json:"seed,omitempty"`
}

// PlaceResult contains the result of a placement attempt
type PlaceResult struct {
	Accepted   bool              `json:"accepted"`
	RejectCode string            `json:"reject_code,omitempty"` // out_of_bounds|cell_occupied|slot_empty|invalid_slot|not_playing
	Message    string            `json:"message,omitempty"`
	Placement  *engine.Placement `json:"placement,omitempty"`
	Events     []engine.Event    `json:"events,omitempty"`

	// FollowUp holds the events of the deferred refill step, produced after
	// the placement itself completed.
	FollowUp  []engine.Event    `json:"follow_up,omitempty"`
	GameState *engine.GameState `json:"game_state"`
}

// PreviewResult reports whether a placement would be legal
type PreviewResult struct {
	Legal      bool              `json:"legal"`
	RejectCode string            `json:"reject_code,omitempty"`
	Cells      []engine.Position `json:"cells,omitempty"`
	Rows       []int             `json:"rows,omitempty"`
	Cols       []int             `json:"cols,omitempty"`
}

// StepResult is returned by operations that change state without a placement
type StepResult struct {
	Events    []engine.Event    `json:"events,omitempty"`
	GameState *engine.GameState `json:"game_state"`
}

// RulesInfo provides information about a rule preset
type RulesInfo struct {
	Filename      string `json:"filename,omitempty"`
	RulesID       string `json:"rules_id"` // The identifier to use for session creation
	Name          string `json:"name"`
	Description   string `json:"description"`
	GridSize      int    `json:"grid_size"`
	TrayCapacity  int    `json:"tray_capacity"`
	InitialTarget int    `json:"initial_target"`
	BuiltIn       bool   `json:"built_in,omitempty"`
}

// RejectCode maps an engine rejection to a machine-friendly code.
func RejectCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, engine.ErrOutOfBounds):
		return "out_of_bounds"
	case errors.Is(err, engine.ErrCellOccupied):
		return "cell_occupied"
	case errors.Is(err, engine.ErrSlotEmpty):
		return "slot_empty"
	case errors.Is(err, engine.ErrInvalidSlot):
		return "invalid_slot"
	case errors.Is(err, engine.ErrSessionNotPlaying):
		return "not_playing"
	default:
		return "unknown"
	}
}
