package engine

import (
	"errors"
	"fmt"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Session lifecycle
	StartGame(mode Mode) error
	ExitToMenu()
	Status() Status

	// Placement
	AttemptPlace(slot, x, y int) (*Placement, error)
	Preview(slot, x, y int) bool
	Check(slot, x, y int) error
	Ghost(slot, x, y int) (*Ghost, error)

	// Deferred refill
	RefillPending() bool
	Advance() bool

	// Queries
	GetState() *GameState
	GridSnapshot() [][]Cell
	TraySnapshot() []SlotView
	Score() int
	Mode() Mode
	TargetScore() int
	Level() int

	// Events
	DrainEvents() []Event
}

// Placement describes an accepted placement.
type Placement struct {
	Slot      int        `json:"slot"`
	Anchor    Position   `json:"anchor"`
	Shape     Shape      `json:"shape"`
	Cells     []Position `json:"cells"`
	Rows      []int      `json:"rows,omitempty"`
	Cols      []int      `json:"cols,omitempty"`
	Points    int        `json:"points"`
	LineBonus int        `json:"line_bonus"`
	LeveledUp bool       `json:"leveled_up,omitempty"`

	// RefillPending is set when the placement emptied the tray; the refill
	// runs on the next Advance.
	RefillPending bool `json:"refill_pending,omitempty"`
	GameOver      bool `json:"game_over,omitempty"`
}

// GameEngine implements the Engine interface. It is not safe for concurrent
// use; callers serialize access per session.
type GameEngine struct {
	rules    *Rules
	selector Selector

	grid *Grid
	tray *Tray

	status        Status
	mode          Mode
	score         int
	target        int
	level         int
	finalScore    int
	refillPending bool

	shapesPlaced int
	linesCleared int

	events []Event
}

var _ Engine = (*GameEngine)(nil)

// NewEngine creates an idle engine. A nil selector draws randomly.
func NewEngine(rules *Rules, selector Selector) (*GameEngine, error) {
	if err := ValidateRules(rules); err != nil {
		return nil, err
	}
	if selector == nil {
		selector = NewRandomSelector(0)
	}

	return &GameEngine{
		rules:    rules,
		selector: selector,
		grid:     NewGrid(rules.GridSize),
		tray:     NewTray(rules.TrayCapacity),
		status:   StatusIdle,
		mode:     ModeClassic,
	}, nil
}

// NewEngineWithDefaults creates an idle engine with DefaultRules.
func NewEngineWithDefaults(seed int64) *GameEngine {
	eng, err := NewEngine(DefaultRules(), NewRandomSelector(seed))
	if err != nil {
		panic(fmt.Sprintf("default rules are invalid: %v", err))
	}
	return eng
}

// Rules returns the rule set the engine was built with.
func (e *GameEngine) Rules() *Rules {
	return e.rules
}

// StartGame clears the board and deals a fresh tray. It may be called from
// any state, including GameOver.
func (e *GameEngine) StartGame(mode Mode) error {
	if _, ok := ParseMode(string(mode)); !ok {
		return fmt.Errorf("unknown mode %q", mode)
	}

	e.mode = mode
	e.grid.Reset()
	e.tray.Clear()
	e.score = 0
	e.finalScore = 0
	e.level = 1
	e.target = 0
	if mode == ModeAdventure {
		e.target = e.rules.InitialTarget
	}
	e.refillPending = false
	e.shapesPlaced = 0
	e.linesCleared = 0
	e.status = StatusPlaying

	e.emit(scoreChangedEvent(0))
	if err := e.tray.Refill(e.selector); err != nil {
		return err
	}
	e.afterRefill()
	return nil
}

// ExitToMenu abandons the current game.
func (e *GameEngine) ExitToMenu() {
	e.status = StatusIdle
	e.refillPending = false
}

// Status returns the state machine state.
func (e *GameEngine) Status() Status {
	return e.status
}

// Check reports why slot's shape can't go at (x,y), or nil if it can.
func (e *GameEngine) Check(slot, x, y int) error {
	if e.status != StatusPlaying {
		return rejectReason(ErrSessionNotPlaying)
	}
	shape, err := e.tray.Shape(slot)
	if err != nil {
		if errors.Is(err, ErrSlotEmpty) {
			return rejectReason(ErrSlotEmpty)
		}
		return rejectReason(ErrInvalidSlot)
	}
	return Fit(e.grid, shape, x, y)
}

// Preview is the read-only legality check used for drag ghosts.
func (e *GameEngine) Preview(slot, x, y int) bool {
	return e.Check(slot, x, y) == nil
}

// Ghost describes where a placement would land and which lines it would
// complete.
type Ghost struct {
	Cells []Position `json:"cells"`
	Rows  []int      `json:"rows,omitempty"`
	Cols  []int      `json:"cols,omitempty"`
}

// Ghost returns the footprint of a legal placement without applying it.
func (e *GameEngine) Ghost(slot, x, y int) (*Ghost, error) {
	if err := e.Check(slot, x, y); err != nil {
		return nil, err
	}
	shape, err := e.tray.Shape(slot)
	if err != nil {
		return nil, rejectReason(ErrSlotEmpty)
	}
	g := &Ghost{Cells: make([]Position, 0, shape.Size())}
	for _, o := range shape.Offsets {
		g.Cells = append(g.Cells, Position{X: x + o.DX, Y: y + o.DY})
	}
	g.Rows, g.Cols = LinesCompletedBy(e.grid, shape, x, y)
	return g, nil
}

// AttemptPlace drops the shape in slot at anchor (x,y). A rejected attempt
// leaves the session untouched and returns a *RejectedError.
func (e *GameEngine) AttemptPlace(slot, x, y int) (*Placement, error) {
	if err := e.Check(slot, x, y); err != nil {
		return nil, err
	}
	shape, err := e.tray.Shape(slot)
	if err != nil {
		return nil, rejectReason(ErrSlotEmpty)
	}
	// The slot is emptied before the grid changes.
	if err := e.tray.Consume(slot); err != nil {
		return nil, rejectReason(ErrSlotEmpty)
	}

	p := &Placement{
		Slot:   slot,
		Anchor: Position{X: x, Y: y},
		Shape:  shape,
		Cells:  make([]Position, 0, shape.Size()),
	}
	for _, o := range shape.Offsets {
		gx, gy := x+o.DX, y+o.DY
		e.grid.Occupy(gx, gy, shape.Color)
		p.Cells = append(p.Cells, Position{X: gx, Y: gy})
	}
	e.shapesPlaced++

	p.Rows, p.Cols = e.grid.FullRows(), e.grid.FullCols()
	lines := len(p.Rows) + len(p.Cols)
	if lines > 0 {
		e.grid.ClearRowsAndCols(p.Rows, p.Cols)
		e.linesCleared += lines
		e.emit(linesClearedEvent(p.Rows, p.Cols))
	}

	// Base points and line bonus are separate increments, each checked
	// against the adventure target.
	levelBefore := e.level
	p.Points = shape.Size()
	e.addScore(p.Points)
	if lines > 0 {
		p.LineBonus = lines * e.rules.LineBonus
		e.addScore(p.LineBonus)
	}
	p.LeveledUp = e.level != levelBefore

	switch {
	case e.status == StatusGameOver:
	case p.LeveledUp:
		// level-up already dealt a new tray and ran the deadlock check
	case e.tray.AllEmpty():
		e.refillPending = true
	default:
		e.checkDeadlock()
	}

	p.RefillPending = e.refillPending
	p.GameOver = e.status == StatusGameOver
	return p, nil
}

// RefillPending reports whether the tray is waiting for its deferred refill.
func (e *GameEngine) RefillPending() bool {
	return e.refillPending
}

// Advance runs the deferred follow-up step: refilling an emptied tray and
// re-checking for deadlock. It returns false when nothing was pending.
func (e *GameEngine) Advance() bool {
	if !e.refillPending || e.status != StatusPlaying {
		return false
	}
	e.refillPending = false
	if err := e.tray.Refill(e.selector); err != nil {
		return false
	}
	e.afterRefill()
	return true
}

func (e *GameEngine) addScore(points int) {
	if e.status != StatusPlaying {
		return
	}
	e.score += points
	e.emit(scoreChangedEvent(e.score))
	if e.mode == ModeAdventure && e.score >= e.target {
		e.levelUp()
	}
}

// levelUp raises the target and starts the next level on a clean board.
// The tray is replaced even if shapes remain in it.
func (e *GameEngine) levelUp() {
	e.status = StatusLevelingUp
	e.target = e.rules.NextTarget(e.target)
	e.level++
	e.score = 0
	e.grid.Reset()
	e.tray.Clear()
	e.refillPending = false

	e.emit(levelCompleteEvent(e.target, e.level))
	e.emit(scoreChangedEvent(0))
	e.status = StatusPlaying

	e.tray.fill(e.selector)
	e.afterRefill()
}

func (e *GameEngine) afterRefill() {
	e.emit(trayRefilledEvent(e.tray.Shapes()))
	e.checkDeadlock()
}

func (e *GameEngine) checkDeadlock() {
	if BoardIsDeadlocked(e.grid, e.tray) {
		e.status = StatusGameOver
		e.finalScore = e.score
		e.emit(gameOverEvent(e.finalScore))
	}
}

func (e *GameEngine) emit(ev Event) {
	e.events = append(e.events, ev)
}

// DrainEvents returns the queued events and empties the queue.
func (e *GameEngine) DrainEvents() []Event {
	out := e.events
	e.events = nil
	return out
}

// Score returns the current score
func (e *GameEngine) Score() int {
	return e.score
}

// Mode returns the current mode
func (e *GameEngine) Mode() Mode {
	return e.mode
}

// TargetScore returns the adventure target, or 0 in classic mode.
func (e *GameEngine) TargetScore() int {
	return e.target
}

// Level returns the current level, starting at 1.
func (e *GameEngine) Level() int {
	return e.level
}

// GridSnapshot returns a copy of the grid cells.
func (e *GameEngine) GridSnapshot() [][]Cell {
	return e.grid.Snapshot()
}

// TraySnapshot returns a copy of the tray slots.
func (e *GameEngine) TraySnapshot() []SlotView {
	return e.tray.Snapshot()
}

// GetState returns a full snapshot of the session
func (e *GameEngine) GetState() *GameState {
	return &GameState{
		Grid:          e.grid.Snapshot(),
		Tray:          e.tray.Snapshot(),
		Score:         e.score,
		Mode:          e.mode,
		TargetScore:   e.target,
		Level:         e.level,
		Status:        e.status,
		RefillPending: e.refillPending,
		FinalScore:    e.finalScore,
		RulesName:     e.rules.Name,
		ShapesPlaced:  e.shapesPlaced,
		LinesCleared:  e.linesCleared,
	}
}
