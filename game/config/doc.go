// Package config manages named rule presets for the block puzzle.
//
// A preset is an engine.Rules value stored as a JSON file in a rules
// directory. The preset ID is the file name without ".json". The built-in
// "classic" preset is always available and is the default unless a file
// named classic.json overrides it.
//
// Example preset:
//
//	{
//	  "name": "quick",
//	  "description": "Short adventure levels",
//	  "initial_target": 40,
//	  "level_multiplier": 1.25
//	}
//
// Fields left out take their classic values. Presets are validated with
// engine.ValidateRules on load and on save; invalid files are skipped by
// ListRules and reported by LoadRules.
//
// Usage:
//
//	manager, err := config.NewManager("rules")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	rules, err := manager.LoadRules("quick")
//	if err != nil {
//		log.Fatal(err)
//	}
package config
