package engine

// Color is the category tag carried by a shape and by the cells it occupies.
type Color string

const (
	Blue   Color = "blue"
	Green  Color = "green"
	Red    Color = "red"
	Yellow Color = "yellow"
	Purple Color = "purple"
	Orange Color = "orange"
	Cyan   Color = "cyan"
)

// Mode selects the scoring variant of a game.
type Mode string

const (
	ModeClassic   Mode = "classic"
	ModeAdventure Mode = "adventure"
)

// ParseMode converts a user supplied string into a Mode.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeClassic, ModeAdventure:
		return Mode(s), true
	}
	return "", false
}

// Status is the state of the session state machine.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusPlaying    Status = "playing"
	StatusLevelingUp Status = "leveling_up"
	StatusGameOver   Status = "game_over"
)

const (
	DefaultGridSize        = 8
	DefaultTrayCapacity    = 3
	DefaultInitialTarget   = 100
	DefaultLevelMultiplier = 1.5
	DefaultLineBonus       = 10

	// Validation bounds for Rules
	MinGridSize        = 4
	MaxGridSize        = 16
	MinTrayCapacity    = 1
	MaxTrayCapacity    = 5
	MinInitialTarget   = 1
	MaxInitialTarget   = 100000
	MaxLineBonus       = 1000
	MaxLevelMultiplier = 10.0
)

// Cell represents a single grid cell. Color is only meaningful when Occupied.
type Cell struct {
	Occupied bool  `json:"occupied"`
	Color    Color `json:"color,omitempty"`
}

// Position represents x,y coordinates. X is the column, Y is the row.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// SlotView is a read-only copy of one tray slot.
type SlotView struct {
	Index    int    `json:"index"`
	Occupied bool   `json:"occupied"`
	Shape    *Shape `json:"shape,omitempty"`
}

// GameState represents a complete snapshot of a session
type GameState struct {
	Grid          [][]Cell   `json:"grid"`
	Tray          []SlotView `json:"tray"`
	Score         int        `json:"score"`
	Mode          Mode       `json:"mode"`
	TargetScore   int        `json:"target_score,omitempty"`
	Level         int        `json:"level"`
	Status        Status     `json:"status"`
	RefillPending bool       `json:"refill_pending"`
	FinalScore    int        `json:"final_score,omitempty"`
	RulesName     string     `json:"rules_name"`

	// Running totals for the current game, kept across level-ups.
	ShapesPlaced int `json:"shapes_placed"`
	LinesCleared int `json:"lines_cleared"`
}

// IsGameOver reports whether the snapshot was taken after the session ended.
func (gs *GameState) IsGameOver() bool {
	return gs.Status == StatusGameOver
}
