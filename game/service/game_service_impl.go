package service

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/wricardo/blockpuzzle/game/engine"
)

var logger = log.WithPrefix("service")

// SetLogger replaces the package logger.
func SetLogger(l *log.Logger) {
	logger = l
}

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions  SessionManager
	rules     RulesManager
	publisher Publisher
}

// NewGameService creates a new game service instance. publisher may be nil.
func NewGameService(sessions SessionManager, rules RulesManager, publisher Publisher) GameService {
	return &gameServiceImpl{
		sessions:  sessions,
		rules:     rules,
		publisher: publisher,
	}
}

// CreateSession creates a new game session and, if opts.Mode is set, starts a game
func (s *gameServiceImpl) CreateSession(ctx context.Context, opts CreateOptions) (*SessionInfo, error) {
	var rules *engine.Rules
	var err error
	if opts.RulesName != "" {
		rules, err = s.rules.LoadRules(opts.RulesName)
		if err != nil {
			return nil, s.rulesNotFound(opts.RulesName, err)
		}
	} else {
		rules = s.rules.GetDefault()
	}

	if opts.Mode != "" {
		if _, ok := engine.ParseMode(string(opts.Mode)); !ok {
			return nil, fmt.Errorf("unknown mode %q (use %q or %q)", opts.Mode, engine.ModeClassic, engine.ModeAdventure)
		}
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	sess, err := s.sessions.Create(opts.ID, rules, engine.NewRandomSelector(seed), seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	sess.Lock()
	defer sess.Unlock()

	if opts.Mode != "" {
		if err := sess.Engine.StartGame(opts.Mode); err != nil {
			return nil, fmt.Errorf("failed to start game: %w", err)
		}
		s.publish(sess.ID, sess.Engine.DrainEvents())
	}

	logger.Info("session created", "id", sess.ID, "rules", rules.Name, "mode", opts.Mode, "seed", seed)
	return sessionInfo(sess), nil
}

// rulesNotFound builds a helpful error listing the available presets
func (s *gameServiceImpl) rulesNotFound(name string, err error) error {
	available, listErr := s.rules.ListRules()
	if listErr == nil && len(available) > 0 {
		var ids []string
		for _, r := range available {
			ids = append(ids, r.RulesID)
		}
		return fmt.Errorf("rules '%s' not available (%w). Available rules: %v", name, err, ids)
	}
	return fmt.Errorf("failed to load rules %s: %w", name, err)
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()
	return sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		sess.Lock()
		result = append(result, sessionInfo(sess))
		sess.Unlock()
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(sessionID); err != nil {
		return err
	}
	logger.Info("session deleted", "id", sessionID)
	return nil
}

// StartGame (re)starts the session's game in the given mode
func (s *gameServiceImpl) StartGame(ctx context.Context, sessionID string, mode engine.Mode) (*StepResult, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	if err := sess.Engine.StartGame(mode); err != nil {
		return nil, err
	}
	events := sess.Engine.DrainEvents()
	s.publish(sess.ID, events)

	return &StepResult{
		Events:    events,
		GameState: sess.Engine.GetState(),
	}, nil
}

// Place attempts a placement. Rejections are reported in the result, not as
// an error; errors are reserved for unknown sessions and cancelled contexts.
func (s *gameServiceImpl) Place(ctx context.Context, sessionID string, slot, x, y int) (*PlaceResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	placement, err := sess.Engine.AttemptPlace(slot, x, y)
	if err != nil {
		return &PlaceResult{
			Accepted:   false,
			RejectCode: RejectCode(err),
			Message:    err.Error(),
			GameState:  sess.Engine.GetState(),
		}, nil
	}

	result := &PlaceResult{
		Accepted:  true,
		Placement: placement,
		Events:    sess.Engine.DrainEvents(),
	}
	s.publish(sess.ID, result.Events)

	// The placement step is complete; run the deferred refill as its own step.
	if sess.Engine.RefillPending() && sess.Engine.Advance() {
		result.FollowUp = sess.Engine.DrainEvents()
		s.publish(sess.ID, result.FollowUp)
	}

	result.GameState = sess.Engine.GetState()
	result.Message = placeMessage(result)
	return result, nil
}

// Preview reports whether a placement would be legal without changing anything
func (s *gameServiceImpl) Preview(ctx context.Context, sessionID string, slot, x, y int) (*PreviewResult, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	ghost, err := sess.Engine.Ghost(slot, x, y)
	if err != nil {
		return &PreviewResult{Legal: false, RejectCode: RejectCode(err)}, nil
	}
	return &PreviewResult{
		Legal: true,
		Cells: ghost.Cells,
		Rows:  ghost.Rows,
		Cols:  ghost.Cols,
	}, nil
}

// ExitToMenu returns the session to the idle state
func (s *gameServiceImpl) ExitToMenu(ctx context.Context, sessionID string) (*engine.GameState, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	sess.Engine.ExitToMenu()
	return sess.Engine.GetState(), nil
}

// GetGameState returns the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()
	return sess.Engine.GetState(), nil
}

// ListRules returns the available rule presets
func (s *gameServiceImpl) ListRules(ctx context.Context) ([]*RulesInfo, error) {
	return s.rules.ListRules()
}

// LoadRules returns a rule preset by name
func (s *gameServiceImpl) LoadRules(ctx context.Context, name string) (*engine.Rules, error) {
	return s.rules.LoadRules(name)
}

func (s *gameServiceImpl) session(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.UpdateLastAccessed(sessionID); err != nil {
		// deleted between Get and here; the caller still holds a usable session
		logger.Debug("failed to update last access", "id", sessionID, "err", err)
	}
	return sess, nil
}

func (s *gameServiceImpl) publish(sessionID string, events []engine.Event) {
	if s.publisher == nil || len(events) == 0 {
		return
	}
	s.publisher.Publish(sessionID, events...)
}

func sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		RulesName:      sess.Rules.Name,
		Seed:           sess.Seed,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessed(),
		GameState:      sess.Engine.GetState(),
		Rules:          sess.Rules,
	}
}

func placeMessage(r *PlaceResult) string {
	p := r.Placement
	switch {
	case p.GameOver || r.GameState.IsGameOver():
		return fmt.Sprintf("Game over! Final score: %d", r.GameState.FinalScore)
	case p.LeveledUp:
		return fmt.Sprintf("Level complete! Next target: %d", r.GameState.TargetScore)
	case len(p.Rows)+len(p.Cols) > 0:
		return fmt.Sprintf("Cleared %d line(s) for %d bonus points", len(p.Rows)+len(p.Cols), p.LineBonus)
	case len(r.FollowUp) > 0:
		return "Tray refilled"
	default:
		return fmt.Sprintf("Placed %d cell(s)", p.Points)
	}
}
