package service

import (
	"context"
	"sync"
	"time"

	"github.com/wricardo/blockpuzzle/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, opts CreateOptions) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	StartGame(ctx context.Context, sessionID string, mode engine.Mode) (*StepResult, error)
	Place(ctx context.Context, sessionID string, slot, x, y int) (*PlaceResult, error)
	Preview(ctx context.Context, sessionID string, slot, x, y int) (*PreviewResult, error)
	ExitToMenu(ctx context.Context, sessionID string) (*engine.GameState, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)

	// Rules
	ListRules(ctx context.Context) ([]*RulesInfo, error)
	LoadRules(ctx context.Context, name string) (*engine.Rules, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, rules *engine.Rules, selector engine.Selector, seed int64) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// RulesManager handles rule preset loading
type RulesManager interface {
	LoadRules(name string) (*engine.Rules, error)
	ListRules() ([]*RulesInfo, error)
	GetDefault() *engine.Rules
}

// Publisher receives engine events for a session.
type Publisher interface {
	Publish(sessionID string, events ...engine.Event)
}

// Session represents an active game session. ID, Rules, Seed and CreatedAt
// never change after NewSession. The engine is only touched while the
// session is locked; the access time has its own lock so it can be read and
// updated without waiting for an engine call.
type Session struct {
	ID        string
	Engine    *engine.GameEngine
	Rules     *engine.Rules
	Seed      int64
	CreatedAt time.Time

	mu sync.Mutex

	accessMu       sync.Mutex
	lastAccessedAt time.Time
}

// NewSession creates a session whose access time starts at its creation.
func NewSession(id string, eng *engine.GameEngine, rules *engine.Rules, seed int64) *Session {
	now := time.Now()
	return &Session{
		ID:             id,
		Engine:         eng,
		Rules:          rules,
		Seed:           seed,
		CreatedAt:      now,
		lastAccessedAt: now,
	}
}

// Lock serializes access to the session's engine.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session.
func (s *Session) Unlock() { s.mu.Unlock() }

// Touch records an access at the current time.
func (s *Session) Touch() {
	s.SetLastAccessed(time.Now())
}

// SetLastAccessed overrides the access time.
func (s *Session) SetLastAccessed(t time.Time) {
	s.accessMu.Lock()
	defer s.accessMu.Unlock()
	s.lastAccessedAt = t
}

// LastAccessed returns the time of the latest access.
func (s *Session) LastAccessed() time.Time {
	s.accessMu.Lock()
	defer s.accessMu.Unlock()
	return s.lastAccessedAt
}
