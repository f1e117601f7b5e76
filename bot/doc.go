// Package bot plays block puzzle sessions through a service.GameService.
//
// A Strategy looks at a GameState snapshot and picks the next placement.
// Play drives one session with a strategy until the game ends, the move
// limit is hit, or the context is cancelled, and returns a Report.
//
// Two strategies are provided: RandomStrategy picks uniformly among legal
// placements, GreedyStrategy prefers the placement that clears the most
// lines.
package bot
