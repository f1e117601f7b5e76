package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/wricardo/blockpuzzle/game/engine"
	"github.com/wricardo/blockpuzzle/game/service"
)

var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionAlreadyExists = errors.New("session already exists")
	ErrInvalidSessionID     = errors.New("invalid session ID")
)

// MaxIDLength bounds caller-supplied session IDs.
const MaxIDLength = 64

var logger = log.WithPrefix("session")

// SetLogger replaces the package logger.
func SetLogger(l *log.Logger) {
	logger = l
}

// Manager handles game session lifecycle
type Manager struct {
	sessions map[string]*service.Session
	mu       sync.RWMutex
}

// NewManager creates a new session manager
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*service.Session),
	}
}

// Create creates a new idle session with the given ID, rules and shape
// selector. seed is recorded for reporting only. An empty id gets a
// generated one.
func (m *Manager) Create(id string, rules *engine.Rules, selector engine.Selector, seed int64) (*service.Session, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	eng, err := engine.NewEngine(rules, selector)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		id = m.generateSessionID()
	} else if _, exists := m.sessions[strings.ToLower(id)]; exists {
		return nil, fmt.Errorf("%w: %s", ErrSessionAlreadyExists, id)
	}

	sess := service.NewSession(id, eng, eng.Rules(), seed)
	m.sessions[strings.ToLower(id)] = sess

	logger.Debug("session stored", "id", id, "count", len(m.sessions))
	return sess, nil
}

// Get retrieves a session by ID (case-insensitive)
func (m *Manager) Get(id string) (*service.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, exists := m.sessions[strings.ToLower(id)]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return sess, nil
}

// List returns all active sessions
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		result = append(result, sess)
	}
	return result
}

// Delete removes a session
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(id)
	if _, exists := m.sessions[key]; !exists {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(m.sessions, key)
	return nil
}

// UpdateLastAccessed updates the last accessed time for a session
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, exists := m.sessions[strings.ToLower(id)]
	if !exists {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	sess.Touch()
	return nil
}

// CleanupExpiredSessions removes sessions that haven't been accessed in the given duration
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	for key, sess := range m.sessions {
		if sess.LastAccessed().Before(cutoff) {
			delete(m.sessions, key)
			removed++
		}
	}

	if removed > 0 {
		logger.Info("expired sessions removed", "removed", removed, "remaining", len(m.sessions))
	}
	return removed
}

// Count returns the number of active sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// generateSessionID returns an unused 4-character hex ID, growing the ID
// when the short space is crowded. Callers hold m.mu.
func (m *Manager) generateSessionID() string {
	n := 2
	for attempt := 0; ; attempt++ {
		if attempt > 0 && attempt%16 == 0 {
			n++
		}
		bytes := make([]byte, n)
		if _, err := rand.Read(bytes); err != nil {
			logger.Debug("random ID read failed", "err", err)
			continue
		}
		id := hex.EncodeToString(bytes)
		if _, exists := m.sessions[id]; !exists {
			return id
		}
	}
}

func validateID(id string) error {
	if len(id) > MaxIDLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidSessionID, MaxIDLength)
	}
	if strings.TrimSpace(id) != id || strings.ContainsAny(id, "/\\ \t\n") {
		return fmt.Errorf("%w: %q", ErrInvalidSessionID, id)
	}
	return nil
}
