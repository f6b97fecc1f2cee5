package decision

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/mockdraft/go/internal/ai/profiles"
	"github.com/mcdev12/mockdraft/go/internal/draft/engine"
	"github.com/mcdev12/mockdraft/go/internal/models"
	"github.com/mcdev12/mockdraft/go/internal/randutil"
)

var now = time.Date(2025, 8, 20, 19, 0, 0, 0, time.UTC)

func pool(n int) []models.Player {
	positions := []models.Position{
		models.PositionRB, models.PositionWR, models.PositionQB,
		models.PositionWR, models.PositionRB, models.PositionTE,
		models.PositionK, models.PositionDEF,
	}
	out := make([]models.Player, n)
	for i := range out {
		out[i] = models.Player{
			ID:        fmt.Sprintf("p%03d", i+1),
			Name:      fmt.Sprintf("Player %d", i+1),
			Position:  positions[i%len(positions)],
			Team:      "NYG",
			ByeWeek:   5 + i%10,
			ADP:       float64(i + 1),
			Tier:      i/12 + 1,
			RiskScore: 5,
		}
	}
	return out
}

func newState(t *testing.T, players []models.Player) *models.DraftState {
	t.Helper()
	state, err := engine.InitializeDraft(engine.InitParams{
		UserName:          "Sam",
		UserDraftPosition: 12,
		Settings:          models.DraftSettings{NumTeams: 12, NumRounds: 15},
		Players:           players,
	}, profiles.NewRegistry(), randutil.New(3), now)
	require.NoError(t, err)
	return state
}

func deterministic() *Engine {
	cfg := DefaultConfig()
	cfg.Noise = ZeroNoise{}
	return NewEngine(cfg)
}

func TestSelectAIPickEmptyPool(t *testing.T) {
	state := newState(t, pool(10))
	team, _ := engine.CurrentTeam(state)

	_, ok := deterministic().SelectAIPick(team, state, nil)
	assert.False(t, ok)
}

func TestSelectAIPickWithoutProfileTakesBestADP(t *testing.T) {
	state := newState(t, pool(30))
	user, _ := state.UserTeam()

	got, ok := deterministic().SelectAIPick(user, state, state.AvailablePlayers)
	require.True(t, ok)
	assert.Equal(t, "p001", got.ID)
}

func TestSelectAIPickIsDeterministicWithoutNoise(t *testing.T) {
	state := newState(t, pool(220))
	team, _ := engine.CurrentTeam(state)

	first, ok := deterministic().SelectAIPick(team, state, state.AvailablePlayers)
	require.True(t, ok)
	second, _ := deterministic().SelectAIPick(team, state, state.AvailablePlayers)
	assert.Equal(t, first, second)

	e := deterministic()
	p := state.AvailablePlayers[4]
	assert.Equal(t, e.ScorePlayer(p, team, state, state.AvailablePlayers), e.ScorePlayer(p, team, state, state.AvailablePlayers))
}

func TestScorePlayerBreakdown(t *testing.T) {
	state := newState(t, pool(60))
	team, _ := engine.CurrentTeam(state)
	team.AIProfile = &models.AIProfile{
		ID:               "test",
		RiskTolerance:    0.9,
		ReachThreshold:   1,
		PanicFactor:      0.5,
		ByeWeekAwareness: 1,
		FavoriteTeams:    []string{"KC"},
	}
	player := models.Player{ID: "x", Position: models.PositionWR, Team: "KC", ADP: 10, Tier: 1, RiskScore: 8}

	s := deterministic().ScorePlayer(player, team, state, state.AvailablePlayers)
	b := s.Breakdown

	assert.InDelta(t, 190, b.Base, 1e-9)
	assert.InDelta(t, 4.5, b.Value, 1e-9)
	assert.InDelta(t, 9, b.Risk, 1e-9)
	assert.InDelta(t, 25, b.FavoriteTeam, 1e-9)
	assert.Zero(t, b.Run)
	assert.Zero(t, b.Bye)
	assert.Zero(t, b.ReachPenalty)
	assert.Zero(t, b.Noise)

	sum := b.Base + b.Need + b.Value + b.Run + b.Tier + b.Bye + b.Scarcity + b.FavoriteTeam + b.Risk - b.ReachPenalty
	assert.InDelta(t, sum, s.Total, 1e-9)
}

func TestByeWeekPenalty(t *testing.T) {
	team := &models.Team{}
	for i := 0; i < 4; i++ {
		team.Roster = append(team.Roster, models.Player{ID: fmt.Sprint(i), ByeWeek: 7})
	}
	player := models.Player{ByeWeek: 7}

	tests := []struct {
		rostered int
		want     float64
	}{
		{0, 0}, {1, 0}, {2, -10}, {3, -25}, {4, -40},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.rostered), func(t *testing.T) {
			tm := &models.Team{Roster: team.Roster[:tt.rostered]}
			assert.Equal(t, tt.want, byeWeekPenalty(tm, player, 1))
			assert.Equal(t, tt.want/2, byeWeekPenalty(tm, player, 0.5))
		})
	}
}

func TestRiskAdjustment(t *testing.T) {
	risky := models.Player{RiskScore: 8}
	assert.Equal(t, 9.0, riskAdjustment(risky, 0.8))
	assert.Equal(t, -12.0, riskAdjustment(risky, 0.2))
	assert.Equal(t, 0.0, riskAdjustment(risky, 0.5))
}

func TestUniformNoiseIsBounded(t *testing.T) {
	n := NewUniformNoise(randutil.New(11))
	for i := 0; i < 1000; i++ {
		v := n.Noise()
		assert.GreaterOrEqual(t, v, -NoiseAmplitude)
		assert.Less(t, v, NoiseAmplitude)
	}
}

func TestGetTopCandidates(t *testing.T) {
	state := newState(t, pool(100))
	team, _ := engine.CurrentTeam(state)

	top := deterministic().GetTopCandidates(team, state, 5)

	require.Len(t, top, 5)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Total, top[i].Total)
	}

	pick, _ := deterministic().SelectAIPick(team, state, state.AvailablePlayers)
	assert.Equal(t, pick.ID, top[0].Player.ID)

	assert.Len(t, deterministic().GetTopCandidates(team, state, 500), 100)
}

func TestValidateAIPick(t *testing.T) {
	state := newState(t, pool(60))
	for i := 0; i < 49; i++ {
		team, _ := engine.CurrentTeam(state)
		next, _, err := engine.ExecutePick(state, team.ID, state.AvailablePlayers[len(state.AvailablePlayers)-1].ID, now)
		require.NoError(t, err)
		state = next
	}
	// pick 50 is on the clock with p001 through p011 still available
	early, ok := state.AvailablePlayer("p010")
	require.True(t, ok)
	best, ok := state.AvailablePlayer("p001")
	require.True(t, ok)

	assert.True(t, ValidateAIPick(early, state))
	assert.False(t, ValidateAIPick(best, state))

	drafted := state.Picks[0].PlayerID
	p, _ := state.RosteredPlayer(drafted)
	assert.False(t, ValidateAIPick(p, state))
}

func TestExplainPick(t *testing.T) {
	state := newState(t, pool(60))
	team, _ := engine.CurrentTeam(state)
	homer, err := profiles.NewRegistry().Get(profiles.Homer)
	require.NoError(t, err)
	team.AIProfile = homer
	player := state.AvailablePlayers[0]
	player.Team = homer.FavoriteTeams[0]

	exp := deterministic().ExplainPick(player, team, state)

	assert.Equal(t, player.ID, exp.Score.Player.ID)
	assert.Contains(t, exp.Reasons, fmt.Sprintf("Favorite team pick (%s)", player.Team))
}

func TestThinkWaitsOnClock(t *testing.T) {
	clock := clockwork.NewFakeClock()
	e := NewEngine(Config{Noise: ZeroNoise{}, Clock: clock, ThinkMin: 300 * time.Millisecond, ThinkMax: 700 * time.Millisecond})

	done := make(chan struct{})
	go func() {
		e.Think(context.Background())
		close(done)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	select {
	case <-done:
		t.Fatal("think returned before the clock advanced")
	default:
	}

	clock.Advance(700 * time.Millisecond)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("think did not return after the delay elapsed")
	}
}

func TestThinkReturnsOnCancel(t *testing.T) {
	e := NewEngine(Config{Noise: ZeroNoise{}, Clock: clockwork.NewFakeClock(), ThinkMin: time.Hour, ThinkMax: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e.Think(ctx)
}
