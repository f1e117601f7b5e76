package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// staggeredLayout leaves two non-adjacent holes in every row and column:
// single cells fit, nothing larger does, and no line is one cell short.
var staggeredLayout = []string{
	".BBB.BBB",
	"B.BBB.BB",
	"BB.BBB.B",
	"BBB.BBB.",
	".BBB.BBB",
	"B.BBB.BB",
	"BB.BBB.B",
	"BBB.BBB.",
}

func mustLayout(t *testing.T, layout ...string) *Grid {
	t.Helper()
	g, err := GridFromLayout(layout)
	require.NoError(t, err)
	return g
}

// newTestEngine returns a started engine whose tray deals ids in order.
func newTestEngine(t *testing.T, mode Mode, ids ...int) *GameEngine {
	t.Helper()
	eng, err := NewEngine(DefaultRules(), NewSequenceSelector(ids...))
	require.NoError(t, err)
	require.NoError(t, eng.StartGame(mode))
	eng.DrainEvents()
	return eng
}

func eventTypes(events []Event) []EventType {
	out := make([]EventType, len(events))
	for i, ev := range events {
		out[i] = ev.Type
	}
	return out
}

func findEvent(events []Event, typ EventType) (Event, bool) {
	for _, ev := range events {
		if ev.Type == typ {
			return ev, true
		}
	}
	return Event{}, false
}
