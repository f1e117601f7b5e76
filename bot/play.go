package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/wricardo/blockpuzzle/game/engine"
	"github.com/wricardo/blockpuzzle/game/service"
)

var logger = log.WithPrefix("bot")

// SetLogger replaces the package logger.
func SetLogger(l *log.Logger) {
	logger = l
}

// Report summarises one bot-played game.
type Report struct {
	SessionID       string        `json:"session_id"`
	Strategy        string        `json:"strategy"`
	Mode            engine.Mode   `json:"mode"`
	Moves           int           `json:"moves"`
	Score           int           `json:"score"`
	TotalPoints     int           `json:"total_points"`
	Level           int           `json:"level"`
	LevelsCompleted int           `json:"levels_completed"`
	LinesCleared    int           `json:"lines_cleared"`
	Refills         int           `json:"refills"`
	GameOver        bool          `json:"game_over"`
	Duration        time.Duration `json:"duration"`
}

// Play drives a started session with strategy until game over, until
// maxMoves placements (0 means no limit), or until ctx is cancelled. A
// cancelled context returns the partial report along with ctx.Err().
func Play(ctx context.Context, svc service.GameService, sessionID string, strategy Strategy, maxMoves int) (*Report, error) {
	start := time.Now()

	state, err := svc.GetGameState(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state.Status == engine.StatusIdle {
		return nil, fmt.Errorf("session %s has no game in progress", sessionID)
	}

	report := &Report{
		SessionID: sessionID,
		Strategy:  strategy.Name(),
		Mode:      state.Mode,
	}

	for state.Status == engine.StatusPlaying {
		if maxMoves > 0 && report.Moves >= maxMoves {
			break
		}
		if err := ctx.Err(); err != nil {
			report.finish(state, start)
			return report, err
		}

		move, ok := strategy.Next(state)
		if !ok {
			// only reachable if the engine missed a deadlock
			return nil, fmt.Errorf("strategy %s found no move in a live game", strategy.Name())
		}

		res, err := svc.Place(ctx, sessionID, move.Slot, move.X, move.Y)
		if err != nil {
			return nil, err
		}
		if !res.Accepted {
			return nil, fmt.Errorf("strategy %s chose illegal move %+v: %s", strategy.Name(), move, res.Message)
		}

		report.Moves++
		report.TotalPoints += res.Placement.Points + res.Placement.LineBonus
		if res.Placement.LeveledUp {
			logger.Debug("level complete", "session", sessionID, "level", res.GameState.Level, "target", res.GameState.TargetScore)
		}
		if len(res.FollowUp) > 0 {
			report.Refills++
		}
		state = res.GameState
	}

	report.finish(state, start)
	logger.Info("game finished",
		"session", sessionID,
		"strategy", report.Strategy,
		"moves", report.Moves,
		"score", report.Score,
		"level", report.Level,
		"lines", report.LinesCleared,
		"game_over", report.GameOver,
	)
	return report, nil
}

func (r *Report) finish(state *engine.GameState, start time.Time) {
	r.Score = state.Score
	if state.IsGameOver() {
		r.Score = state.FinalScore
	}
	r.Level = state.Level
	// One placement can complete more than one level.
	r.LevelsCompleted = max(state.Level-1, 0)
	r.LinesCleared = state.LinesCleared
	r.GameOver = state.IsGameOver()
	r.Duration = time.Since(start)
}
