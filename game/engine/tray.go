package engine

import "fmt"

// Slot holds at most one shape. An empty slot has a nil shape.
type Slot struct {
	shape *Shape
}

// Occupied reports whether the slot holds a shape.
func (s Slot) Occupied() bool {
	return s.shape != nil
}

// Tray is the fixed-capacity staging area shapes are picked from.
type Tray struct {
	slots []Slot
}

// NewTray creates an empty tray with the given number of slots
func NewTray(capacity int) *Tray {
	return &Tray{slots: make([]Slot, capacity)}
}

// Capacity returns the number of slots.
func (t *Tray) Capacity() int {
	return len(t.slots)
}

// Refill draws a fresh shape for every slot. Slots are only ever refilled as
// a batch, so a tray with any shape left returns ErrTrayNotEmpty.
func (t *Tray) Refill(sel Selector) error {
	if t.AnyOccupied() {
		return ErrTrayNotEmpty
	}
	t.fill(sel)
	return nil
}

// fill replaces every slot regardless of its current content.
func (t *Tray) fill(sel Selector) {
	for i := range t.slots {
		shape := sel.Draw()
		t.slots[i] = Slot{shape: &shape}
	}
}

// Clear empties every slot.
func (t *Tray) Clear() {
	clear(t.slots)
}

// Shape returns the shape in slot i.
func (t *Tray) Shape(i int) (Shape, error) {
	if i < 0 || i >= len(t.slots) {
		return Shape{}, fmt.Errorf("%w: %d", ErrInvalidSlot, i)
	}
	if t.slots[i].shape == nil {
		return Shape{}, ErrSlotEmpty
	}
	return *t.slots[i].shape, nil
}

// Consume marks slot i empty.
func (t *Tray) Consume(i int) error {
	if _, err := t.Shape(i); err != nil {
		return err
	}
	t.slots[i] = Slot{}
	return nil
}

// AnyOccupied reports whether at least one slot holds a shape.
func (t *Tray) AnyOccupied() bool {
	for _, s := range t.slots {
		if s.Occupied() {
			return true
		}
	}
	return false
}

// AllEmpty is the refill trigger condition.
func (t *Tray) AllEmpty() bool {
	return !t.AnyOccupied()
}

// Shapes returns the shapes of occupied slots in slot order.
func (t *Tray) Shapes() []Shape {
	var out []Shape
	for _, s := range t.slots {
		if s.shape != nil {
			out = append(out, s.shape.clone())
		}
	}
	return out
}

// Snapshot returns a copy of every slot.
func (t *Tray) Snapshot() []SlotView {
	out := make([]SlotView, len(t.slots))
	for i, s := range t.slots {
		out[i] = SlotView{Index: i, Occupied: s.Occupied()}
		if s.shape != nil {
			shape := s.shape.clone()
			out[i].Shape = &shape
		}
	}
	return out
}
