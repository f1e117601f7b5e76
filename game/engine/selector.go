package engine

import (
	"math/rand"
	"time"
)

// Selector draws shapes for tray refills.
type Selector interface {
	Draw() Shape
}

// RandomSelector draws uniformly from the catalog with replacement.
type RandomSelector struct {
	rng *rand.Rand
}

// NewRandomSelector creates a selector seeded with seed. A zero seed uses the clock.
func NewRandomSelector(seed int64) *RandomSelector {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomSelector{rng: rand.New(rand.NewSource(seed))}
}

// Draw returns a random catalog shape.
func (s *RandomSelector) Draw() Shape {
	return catalog[s.rng.Intn(len(catalog))].clone()
}

// SequenceSelector replays a fixed list of catalog IDs, cycling when exhausted.
type SequenceSelector struct {
	ids  []int
	next int
}

// NewSequenceSelector creates a selector cycling through ids. Unknown IDs
// fall back to the single-cell shape.
func NewSequenceSelector(ids ...int) *SequenceSelector {
	if len(ids) == 0 {
		ids = []int{0}
	}
	return &SequenceSelector{ids: ids}
}

// Draw returns the next shape in the sequence.
func (s *SequenceSelector) Draw() Shape {
	id := s.ids[s.next%len(s.ids)]
	s.next++
	shape, ok := ShapeByID(id)
	if !ok {
		shape, _ = ShapeByID(0)
	}
	return shape
}
