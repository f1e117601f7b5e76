package bot

import (
	"math/rand"
	"time"

	"github.com/wricardo/blockpuzzle/game/engine"
)

// Move is a placement request: the shape in Slot anchored at (X,Y).
type Move struct {
	Slot int `json:"slot"`
	X    int `json:"x"`
	Y    int `json:"y"`
}

// Strategy chooses the next move. ok is false when no legal move exists.
type Strategy interface {
	Name() string
	Next(state *engine.GameState) (move Move, ok bool)
}

// candidate is a legal move plus what it would achieve
type candidate struct {
	move  Move
	size  int
	lines int
}

// legalMoves lists every legal placement for the occupied tray slots.
func legalMoves(state *engine.GameState, withLines bool) []candidate {
	if state == nil || state.Status != engine.StatusPlaying {
		return nil
	}
	grid, err := engine.GridFromSnapshot(state.Grid)
	if err != nil {
		return nil
	}

	var out []candidate
	for _, slot := range state.Tray {
		if !slot.Occupied || slot.Shape == nil {
			continue
		}
		shape := *slot.Shape
		for _, pos := range engine.ValidPlacements(grid, shape) {
			c := candidate{
				move: Move{Slot: slot.Index, X: pos.X, Y: pos.Y},
				size: shape.Size(),
			}
			if withLines {
				rows, cols := engine.LinesCompletedBy(grid, shape, pos.X, pos.Y)
				c.lines = len(rows) + len(cols)
			}
			out = append(out, c)
		}
	}
	return out
}

// RandomStrategy picks uniformly among all legal moves.
type RandomStrategy struct {
	rng *rand.Rand
}

// NewRandomStrategy creates a random strategy. A zero seed uses the clock.
func NewRandomStrategy(seed int64) *RandomStrategy {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomStrategy{rng: rand.New(rand.NewSource(seed))}
}

func (s *RandomStrategy) Name() string { return "random" }

func (s *RandomStrategy) Next(state *engine.GameState) (Move, bool) {
	moves := legalMoves(state, false)
	if len(moves) == 0 {
		return Move{}, false
	}
	return moves[s.rng.Intn(len(moves))].move, true
}

// GreedyStrategy maximises lines cleared, then cells placed, then prefers
// the top-most, left-most anchor and the lowest slot. It is deterministic.
type GreedyStrategy struct{}

// NewGreedyStrategy creates a greedy strategy.
func NewGreedyStrategy() *GreedyStrategy {
	return &GreedyStrategy{}
}

func (s *GreedyStrategy) Name() string { return "greedy" }

func (s *GreedyStrategy) Next(state *engine.GameState) (Move, bool) {
	moves := legalMoves(state, true)
	if len(moves) == 0 {
		return Move{}, false
	}
	best := moves[0]
	for _, c := range moves[1:] {
		if better(c, best) {
			best = c
		}
	}
	return best.move, true
}

func better(a, b candidate) bool {
	if a.lines != b.lines {
		return a.lines > b.lines
	}
	if a.size != b.size {
		return a.size > b.size
	}
	if a.move.Y != b.move.Y {
		return a.move.Y < b.move.Y
	}
	if a.move.X != b.move.X {
		return a.move.X < b.move.X
	}
	return a.move.Slot < b.move.Slot
}

// StrategyByName returns a fresh strategy for "greedy" or "random".
func StrategyByName(name string, seed int64) (Strategy, bool) {
	switch name {
	case "greedy":
		return NewGreedyStrategy(), true
	case "random":
		return NewRandomStrategy(seed), true
	default:
		return nil, false
	}
}
