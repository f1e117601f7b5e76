// Package service provides the business logic layer for the block puzzle game.
//
// The service package implements:
//   - Multi-session game management
//   - Rule preset lookup
//   - Placement, preview and game start/exit operations
//   - The deferred tray refill follow-up step
//   - Event publication to subscribers
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// RulesManager resolves named rule presets.
// Publisher receives the engine events produced by each operation.
//
// Architecture:
//
// The service layer sits between collaborators (UI, bots, CLI) and the game
// engine. Each session owns its own engine; the service serializes access to
// it and is the only code that mutates engine state.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	rulesMgr, _ := config.NewManager("rules")
//	gameService := service.NewGameService(sessionMgr, rulesMgr, hub)
//
//	info, err := gameService.CreateSession(ctx, service.CreateOptions{Mode: engine.ModeClassic})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Place(ctx, info.ID, 0, 3, 4)
//
// Deferred refill:
//
// When a placement empties the tray, Place returns the placement's events in
// Events and runs the refill as a separate step whose events are returned in
// FollowUp and published afterwards.
package service
