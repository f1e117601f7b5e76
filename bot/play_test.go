package bot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/blockpuzzle/game/config"
	"github.com/wricardo/blockpuzzle/game/engine"
	"github.com/wricardo/blockpuzzle/game/service"
	"github.com/wricardo/blockpuzzle/game/session"
)

func newTestService(t *testing.T) service.GameService {
	t.Helper()
	rules, err := config.NewManager("")
	require.NoError(t, err)
	return service.NewGameService(session.NewManager(), rules, nil)
}

func TestPlay_GreedyRunsToCompletionOrLimit(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	info, err := svc.CreateSession(ctx, service.CreateOptions{Mode: engine.ModeClassic, Seed: 1234})
	require.NoError(t, err)

	const limit = 400
	report, err := Play(ctx, svc, info.ID, NewGreedyStrategy(), limit)
	require.NoError(t, err)

	assert.Equal(t, "greedy", report.Strategy)
	assert.Equal(t, engine.ModeClassic, report.Mode)
	assert.Greater(t, report.Moves, 0)
	assert.True(t, report.GameOver || report.Moves == limit)
	assert.GreaterOrEqual(t, report.Score, report.Moves, "every placement scores at least one point")
	assert.Equal(t, report.TotalPoints, report.Score, "classic never resets the score")
	assert.Zero(t, report.LevelsCompleted)

	state, err := svc.GetGameState(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, report.LinesCleared, state.LinesCleared)
	assert.Equal(t, report.Moves, state.ShapesPlaced)
}

func TestPlay_RandomUntilGameOver(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	info, err := svc.CreateSession(ctx, service.CreateOptions{Mode: engine.ModeClassic, Seed: 99})
	require.NoError(t, err)

	report, err := Play(ctx, svc, info.ID, NewRandomStrategy(99), 0)
	require.NoError(t, err)
	assert.True(t, report.GameOver, "random play always ends")

	state, err := svc.GetGameState(ctx, info.ID)
	require.NoError(t, err)
	assert.Equal(t, engine.StatusGameOver, state.Status)
	assert.Equal(t, state.FinalScore, report.Score)

	// a finished game plays zero further moves
	again, err := Play(ctx, svc, info.ID, NewRandomStrategy(1), 0)
	require.NoError(t, err)
	assert.Zero(t, again.Moves)
}

func TestPlay_AdventureLevelsUp(t *testing.T) {
	ctx := context.Background()

	dir := t.TempDir()
	rules, err := config.NewManager(dir)
	require.NoError(t, err)
	easy := engine.DefaultRules()
	easy.Name = "easy"
	easy.InitialTarget = 2
	easy.LevelMultiplier = 2
	require.NoError(t, rules.SaveRules("easy", easy))

	svc := service.NewGameService(session.NewManager(), rules, nil)
	info, err := svc.CreateSession(ctx, service.CreateOptions{RulesName: "easy", Mode: engine.ModeAdventure, Seed: 5})
	require.NoError(t, err)

	report, err := Play(ctx, svc, info.ID, NewGreedyStrategy(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Moves)
	assert.GreaterOrEqual(t, report.LevelsCompleted, 1, "two placements always reach two points")
	assert.Equal(t, report.LevelsCompleted+1, report.Level)
}

func TestPlay_Errors(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := Play(ctx, svc, "missing", NewGreedyStrategy(), 0)
	assert.Error(t, err)

	info, err := svc.CreateSession(ctx, service.CreateOptions{})
	require.NoError(t, err)
	_, err = Play(ctx, svc, info.ID, NewGreedyStrategy(), 0)
	assert.Error(t, err, "idle session")
}

func TestPlay_CancelledContext(t *testing.T) {
	svc := newTestService(t)
	info, err := svc.CreateSession(context.Background(), service.CreateOptions{Mode: engine.ModeClassic, Seed: 3})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := Play(ctx, svc, info.ID, NewGreedyStrategy(), 0)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, report)
	assert.Zero(t, report.Moves)
}

func TestReport_LevelsCompletedFollowsLevel(t *testing.T) {
	// A single placement can level up twice when the line bonus crosses the
	// target the base points just raised.
	r := &Report{}
	r.finish(&engine.GameState{Status: engine.StatusPlaying, Level: 3, Score: 7}, time.Now())
	assert.Equal(t, 2, r.LevelsCompleted)
	assert.Equal(t, 3, r.Level)
	assert.Equal(t, 7, r.Score)

	r.finish(&engine.GameState{Status: engine.StatusGameOver, Level: 1, Score: 9, FinalScore: 9}, time.Now())
	assert.Zero(t, r.LevelsCompleted)
	assert.True(t, r.GameOver)

	r.finish(&engine.GameState{Status: engine.StatusIdle}, time.Now())
	assert.Zero(t, r.LevelsCompleted, "an idle snapshot has level 0")
}
