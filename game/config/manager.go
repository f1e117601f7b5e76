package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/wricardo/blockpuzzle/game/engine"
	"github.com/wricardo/blockpuzzle/game/service"
)

var (
	ErrRulesNotFound = errors.New("rules not found")
	ErrInvalidRules  = errors.New("invalid rules")
)

// BuiltinName is the ID of the preset compiled into the binary.
const BuiltinName = "classic"

var logger = log.WithPrefix("config")

// SetLogger replaces the package logger.
func SetLogger(l *log.Logger) {
	logger = l
}

// Manager handles rule preset loading and caching
type Manager struct {
	rulesDir     string
	defaultRules *engine.Rules
	rules        map[string]*engine.Rules
	mu           sync.RWMutex
}

// NewManager creates a new rules manager reading presets from rulesDir.
// An empty rulesDir serves the built-in preset only.
func NewManager(rulesDir string) (*Manager, error) {
	if rulesDir != "" {
		info, err := os.Stat(rulesDir)
		if err != nil {
			return nil, fmt.Errorf("rules directory does not exist: %s", rulesDir)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("rules path is not a directory: %s", rulesDir)
		}
	}

	m := &Manager{
		rulesDir: rulesDir,
		rules:    make(map[string]*engine.Rules),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.loadDefaultRules(); err != nil {
		return nil, fmt.Errorf("failed to load default rules: %w", err)
	}

	return m, nil
}

// LoadRules loads a preset by name. The returned value is a copy the caller
// may keep.
func (m *Manager) LoadRules(name string) (*engine.Rules, error) {
	name = strings.TrimSuffix(name, ".json")

	m.mu.RLock()
	if rules, exists := m.rules[name]; exists {
		m.mu.RUnlock()
		return copyRules(rules), nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	rules, err := m.loadLocked(name)
	if err != nil {
		return nil, err
	}
	return copyRules(rules), nil
}

// loadLocked reads and caches a preset. Callers hold m.mu for writing.
func (m *Manager) loadLocked(name string) (*engine.Rules, error) {
	if rules, exists := m.rules[name]; exists {
		return rules, nil
	}
	if !validName(name) {
		return nil, fmt.Errorf("%w: %q", ErrRulesNotFound, name)
	}

	if m.rulesDir != "" {
		path := filepath.Join(m.rulesDir, name+".json")
		rules, err := engine.LoadRules(path)
		switch {
		case err == nil:
			m.rules[name] = rules
			logger.Debug("rules loaded", "name", name, "path", path)
			return rules, nil
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRules, name, err)
		}
	}

	if name == BuiltinName {
		rules := engine.DefaultRules()
		m.rules[name] = rules
		return rules, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrRulesNotFound, name)
}

// ListRules returns information about all available presets, sorted by ID.
// Files that fail to parse or validate are skipped.
func (m *Manager) ListRules() ([]*service.RulesInfo, error) {
	ids := map[string]string{BuiltinName: ""}

	if m.rulesDir != "" {
		entries, err := os.ReadDir(m.rulesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to read rules directory: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
				continue
			}
			ids[strings.TrimSuffix(entry.Name(), ".json")] = entry.Name()
		}
	}

	var result []*service.RulesInfo
	for id, filename := range ids {
		rules, err := m.LoadRules(id)
		if err != nil {
			logger.Warn("skipping rules file", "file", filename, "err", err)
			continue
		}
		result = append(result, &service.RulesInfo{
			Filename:      filename,
			RulesID:       id,
			Name:          rules.Name,
			Description:   rules.Description,
			GridSize:      rules.GridSize,
			TrayCapacity:  rules.TrayCapacity,
			InitialTarget: rules.InitialTarget,
			BuiltIn:       filename == "",
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].RulesID < result[j].RulesID
	})
	return result, nil
}

// GetDefault returns a copy of the default preset
func (m *Manager) GetDefault() *engine.Rules {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyRules(m.defaultRules)
}

// SetDefault sets the default preset by name
func (m *Manager) SetDefault(name string) error {
	rules, err := m.LoadRules(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultRules = rules
	logger.Info("default rules changed", "name", name)
	return nil
}

// RefreshCache drops every cached preset and reloads the default from disk.
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rules = make(map[string]*engine.Rules)
	return m.loadDefaultRules()
}

// loadDefaultRules picks classic.json when present and valid, else the
// built-in. Callers hold m.mu for writing.
func (m *Manager) loadDefaultRules() error {
	rules, err := m.loadLocked(BuiltinName)
	if err != nil {
		// classic.json exists but is broken
		logger.Warn("falling back to built-in rules", "err", err)
		rules = engine.DefaultRules()
	}
	m.defaultRules = rules
	return nil
}

// SaveRules validates rules and writes them as name.json in the rules
// directory.
func (m *Manager) SaveRules(name string, rules *engine.Rules) error {
	if m.rulesDir == "" {
		return fmt.Errorf("no rules directory configured")
	}
	name = strings.TrimSuffix(name, ".json")
	if !validName(name) {
		return fmt.Errorf("%w: bad preset name %q", ErrInvalidRules, name)
	}
	if err := engine.ValidateRules(rules); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRules, err)
	}

	data, err := json.MarshalIndent(rules, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal rules: %w", err)
	}

	path := filepath.Join(m.rulesDir, name+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write rules file: %w", err)
	}

	m.mu.Lock()
	m.rules[name] = copyRules(rules)
	m.mu.Unlock()

	logger.Info("rules saved", "name", name, "path", path)
	return nil
}

func validName(name string) bool {
	return name != "" && !strings.ContainsAny(name, `/\`) && name != "." && name != ".."
}

func copyRules(r *engine.Rules) *engine.Rules {
	c := *r
	return &c
}
