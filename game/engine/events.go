package engine

// EventType names a state change reported to collaborators.
type EventType string

const (
	EventLinesCleared  EventType = "lines_cleared"
	EventScoreChanged  EventType = "score_changed"
	EventLevelComplete EventType = "level_complete"
	EventGameOver      EventType = "game_over"
	EventTrayRefilled  EventType = "tray_refilled"
)

// Event is a single notification emitted by the engine. Only the fields
// relevant to Type are set.
type Event struct {
	Type EventType `json:"type"`

	// LinesCleared
	Rows []int `json:"rows,omitempty"`
	Cols []int `json:"cols,omitempty"`

	// ScoreChanged carries the new score, GameOver the final one.
	Score int `json:"score"`

	// LevelComplete
	NewTarget int `json:"new_target,omitempty"`
	Level     int `json:"level,omitempty"`

	// TrayRefilled
	Shapes []Shape `json:"shapes,omitempty"`
}

func linesClearedEvent(rows, cols []int) Event {
	return Event{Type: EventLinesCleared, Rows: rows, Cols: cols}
}

func scoreChangedEvent(score int) Event {
	return Event{Type: EventScoreChanged, Score: score}
}

func levelCompleteEvent(target, level int) Event {
	return Event{Type: EventLevelComplete, NewTarget: target, Level: level}
}

func gameOverEvent(finalScore int) Event {
	return Event{Type: EventGameOver, Score: finalScore}
}

func trayRefilledEvent(shapes []Shape) Event {
	return Event{Type: EventTrayRefilled, Shapes: shapes}
}
