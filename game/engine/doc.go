// Package engine provides the core puzzle logic for the block puzzle game.
//
// The engine package implements the game mechanics including:
//   - Shape catalog and random tray refills
//   - Grid occupancy, line detection and line clearing
//   - Placement validation and deadlock (game-over) detection
//   - Scoring, adventure targets and level progression
//
// Core Types:
//
// GameEngine owns one Grid and one Tray and runs the session state machine
// (Idle, Playing, LevelingUp, GameOver). GameState is a read-only snapshot
// handed to collaborators, and Event values describe what changed.
//
// Usage:
//
//	eng, err := engine.NewEngine(engine.DefaultRules(), engine.NewRandomSelector(42))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	eng.StartGame(engine.ModeClassic)
//	if _, err := eng.AttemptPlace(0, 3, 4); err != nil {
//		// errors.Is(err, engine.ErrCellOccupied), ...
//	}
//	if eng.RefillPending() {
//		eng.Advance()
//	}
//	events := eng.DrainEvents()
//
// Game Rules:
//
// Shapes are dragged from a three-slot tray onto an 8x8 grid. Every placed
// cell scores one point and every completed row or column is cleared for a
// bonus. The tray is refilled only once all slots are empty, and the refill
// happens in a follow-up step after the placement that emptied it. The game
// ends when no shape left in the tray fits anywhere on the grid.
package engine
