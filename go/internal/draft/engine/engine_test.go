package engine

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/mockdraft/go/internal/ai/profiles"
	"github.com/mcdev12/mockdraft/go/internal/models"
	"github.com/mcdev12/mockdraft/go/internal/randutil"
)

var now = time.Date(2025, 8, 20, 19, 0, 0, 0, time.UTC)

func testPool(n int) []models.Player {
	positions := []models.Position{
		models.PositionRB, models.PositionWR, models.PositionQB,
		models.PositionWR, models.PositionRB, models.PositionTE,
		models.PositionK, models.PositionDEF,
	}
	pool := make([]models.Player, n)
	for i := range pool {
		pool[i] = models.Player{
			ID:       fmt.Sprintf("p%03d", i+1),
			Name:     fmt.Sprintf("Player %d", i+1),
			Position: positions[i%len(positions)],
			Team:     "DAL",
			ByeWeek:  5 + i%10,
			ADP:      float64(i + 1),
			Tier:     i/12 + 1,
		}
	}
	return pool
}

func newDraft(t *testing.T, numTeams, numRounds, userPos int) *models.DraftState {
	t.Helper()
	state, err := InitializeDraft(InitParams{
		UserName:          "Sam",
		UserDraftPosition: userPos,
		Settings: models.DraftSettings{
			NumTeams:  numTeams,
			NumRounds: numRounds,
		},
		Players: testPool(numTeams*numRounds + 40),
	}, profiles.NewRegistry(), randutil.New(42), now)
	require.NoError(t, err)
	return state
}

// pickBest drafts the best available player for whoever is on the clock.
func pickBest(t *testing.T, state *models.DraftState) *models.DraftState {
	t.Helper()
	team, ok := CurrentTeam(state)
	require.True(t, ok)
	next, _, err := ExecutePick(state, team.ID, state.AvailablePlayers[0].ID, now)
	require.NoError(t, err)
	return next
}

func TestGenerateDraftOrder(t *testing.T) {
	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	order := GenerateDraftOrder([]uuid.UUID{a, b, c, d}, 3)

	assert.Equal(t, []uuid.UUID{a, b, c, d, d, c, b, a, a, b, c, d}, order)
}

func TestGenerateDraftOrderEmpty(t *testing.T) {
	assert.Empty(t, GenerateDraftOrder(nil, 3))
	assert.Empty(t, GenerateDraftOrder([]uuid.UUID{uuid.New()}, 0))
}

func TestInitializeDraft(t *testing.T) {
	state := newDraft(t, 12, 15, 4)

	assert.Equal(t, models.DraftStatusInProgress, state.Status)
	assert.Len(t, state.Teams, 12)
	assert.Len(t, state.DraftOrder, 180)
	assert.Equal(t, 0, state.CurrentPickIndex)
	assert.Empty(t, state.Picks)

	user, ok := state.UserTeam()
	require.True(t, ok)
	assert.Equal(t, "Sam", user.Name)
	assert.Equal(t, 4, user.DraftPosition)
	assert.Nil(t, user.AIProfile)
	assert.Equal(t, user.ID, state.DraftOrder[3])

	users := 0
	for _, team := range state.Teams {
		if team.IsUser {
			users++
			continue
		}
		assert.NotNil(t, team.AIProfile, team.Name)
		for _, pos := range models.AllPositions {
			assert.Equal(t, 100.0, team.Needs[pos])
		}
	}
	assert.Equal(t, 1, users)

	for i := 1; i < len(state.AvailablePlayers); i++ {
		assert.LessOrEqual(t, state.AvailablePlayers[i-1].ADP, state.AvailablePlayers[i].ADP)
	}
}

func TestInitializeDraftUsesRequestedProfiles(t *testing.T) {
	state, err := InitializeDraft(InitParams{
		UserName:          "Sam",
		UserDraftPosition: 1,
		Settings:          models.DraftSettings{NumTeams: 4, NumRounds: 2},
		Players:           testPool(20),
		AIProfileIDs:      []string{profiles.Homer, profiles.Reactor},
	}, profiles.NewRegistry(), randutil.New(1), now)
	require.NoError(t, err)

	assert.Equal(t, profiles.Homer, state.Teams[1].AIProfile.ID)
	assert.Equal(t, profiles.Reactor, state.Teams[2].AIProfile.ID)
	assert.NotNil(t, state.Teams[3].AIProfile)
}

func TestInitializeDraftValidation(t *testing.T) {
	valid := InitParams{
		UserName:          "Sam",
		UserDraftPosition: 1,
		Settings:          models.DraftSettings{NumTeams: 12, NumRounds: 15},
	}

	tests := []struct {
		name   string
		mutate func(p *InitParams)
	}{
		{"blank name", func(p *InitParams) { p.UserName = "  " }},
		{"one team", func(p *InitParams) { p.Settings.NumTeams = 1 }},
		{"too many teams", func(p *InitParams) { p.Settings.NumTeams = 21 }},
		{"no rounds", func(p *InitParams) { p.Settings.NumRounds = 0 }},
		{"position zero", func(p *InitParams) { p.UserDraftPosition = 0 }},
		{"position past last team", func(p *InitParams) { p.UserDraftPosition = 13 }},
		{"unknown scoring format", func(p *InitParams) { p.Settings.ScoringFormat = "points_per_carry" }},
		{"negative roster slots", func(p *InitParams) { p.Settings.RosterSlots = models.RosterSettings{QB: 1, RB: -1} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := valid
			tt.mutate(&params)
			_, err := InitializeDraft(params, profiles.NewRegistry(), randutil.New(1), now)
			assert.ErrorIs(t, err, ErrInvalidParams)
		})
	}

	_, err := InitializeDraft(valid, profiles.NewRegistry(), randutil.New(1), now)
	assert.NoError(t, err)
}

func TestInitializeDraftKeepsCustomSettings(t *testing.T) {
	slots := models.RosterSettings{QB: 2, RB: 2, WR: 3, TE: 1, FLEX: 1, K: 0, DEF: 1, Bench: 5}
	state, err := InitializeDraft(InitParams{
		UserName:          "Sam",
		UserDraftPosition: 1,
		Settings: models.DraftSettings{
			NumTeams:      10,
			NumRounds:     15,
			ScoringFormat: models.ScoringHalfPPR,
			RosterSlots:   slots,
		},
	}, profiles.NewRegistry(), randutil.New(1), now)
	require.NoError(t, err)

	assert.Equal(t, slots, state.Settings.RosterSlots)
	assert.Equal(t, models.ScoringHalfPPR, state.Settings.ScoringFormat)
}

func TestInitializeDraftUnknownProfile(t *testing.T) {
	_, err := InitializeDraft(InitParams{
		UserName:          "Sam",
		UserDraftPosition: 1,
		Settings:          models.DraftSettings{NumTeams: 2, NumRounds: 1},
		AIProfileIDs:      []string{"nope"},
	}, profiles.NewRegistry(), randutil.New(1), now)

	assert.ErrorIs(t, err, profiles.ErrProfileNotFound)
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestExecutePick(t *testing.T) {
	state := newDraft(t, 4, 3, 1)
	team, _ := CurrentTeam(state)
	player := state.AvailablePlayers[0]

	next, pick, err := ExecutePick(state, team.ID, player.ID, now)
	require.NoError(t, err)

	assert.Equal(t, 1, pick.PickNumber)
	assert.Equal(t, 1, pick.Round)
	assert.Equal(t, 1, pick.PickInRound)
	assert.False(t, pick.IsAIPick)
	assert.Equal(t, state.ID, pick.DraftID)

	assert.Equal(t, 1, next.CurrentPickIndex)
	assert.Len(t, next.Picks, 1)
	assert.True(t, next.IsDrafted(player.ID))
	_, stillAvailable := next.AvailablePlayer(player.ID)
	assert.False(t, stillAvailable)

	drafter, _ := next.Team(team.ID)
	require.Len(t, drafter.Roster, 1)
	assert.Equal(t, player.ID, drafter.Roster[0].ID)
	assert.Equal(t, 1, drafter.ByeWeeks[player.ByeWeek])

	// the input snapshot is untouched
	assert.Equal(t, 0, state.CurrentPickIndex)
	assert.Empty(t, state.Picks)
	original, _ := state.Team(team.ID)
	assert.Empty(t, original.Roster)
	assert.Equal(t, player.ID, state.AvailablePlayers[0].ID)
}

func TestExecutePickMarksAIPicks(t *testing.T) {
	state := newDraft(t, 4, 3, 1)
	state = pickBest(t, state)

	team, _ := CurrentTeam(state)
	require.False(t, team.IsUser)
	_, pick, err := ExecutePick(state, team.ID, state.AvailablePlayers[0].ID, now)
	require.NoError(t, err)
	assert.True(t, pick.IsAIPick)
	assert.Equal(t, 2, pick.PickInRound)
}

func TestValidatePick(t *testing.T) {
	state := newDraft(t, 4, 3, 1)
	first := state.AvailablePlayers[0].ID
	drafted := pickBest(t, state)
	onClock, _ := CurrentTeam(drafted)
	offClock := drafted.Teams[0].ID

	completed := drafted.Clone()
	completed.Status = models.DraftStatusCompleted

	tests := []struct {
		name     string
		state    *models.DraftState
		teamID   uuid.UUID
		playerID string
		want     error
	}{
		{"legal", drafted, onClock.ID, drafted.AvailablePlayers[0].ID, nil},
		{"not in progress", completed, onClock.ID, drafted.AvailablePlayers[0].ID, ErrNotInProgress},
		{"unknown team", drafted, uuid.New(), drafted.AvailablePlayers[0].ID, ErrTeamNotFound},
		{"wrong turn", drafted, offClock, drafted.AvailablePlayers[0].ID, ErrWrongTurn},
		{"already drafted", drafted, onClock.ID, first, ErrAlreadyDrafted},
		{"unknown player", drafted, onClock.ID, "nobody", ErrPlayerUnavailable},
		// first failing check wins
		{"completed beats unknown team", completed, uuid.New(), "nobody", ErrNotInProgress},
		{"unknown team beats drafted player", drafted, uuid.New(), first, ErrTeamNotFound},
		{"wrong turn beats drafted player", drafted, offClock, first, ErrWrongTurn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePick(tt.state, tt.teamID, tt.playerID)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
			var pe *PickError
			require.True(t, errors.As(err, &pe))
		})
	}
}

func TestExecutePickRejectsWithoutMutation(t *testing.T) {
	state := newDraft(t, 4, 3, 1)
	wrongTeam := state.Teams[2].ID

	got, pick, err := ExecutePick(state, wrongTeam, state.AvailablePlayers[0].ID, now)

	assert.ErrorIs(t, err, ErrWrongTurn)
	assert.Nil(t, pick)
	assert.Same(t, state, got)
	assert.Equal(t, 0, state.CurrentPickIndex)
	assert.Empty(t, state.Picks)
}

func TestFullDraftInvariants(t *testing.T) {
	state := newDraft(t, 12, 15, 7)
	poolSize := len(state.AvailablePlayers)

	for i := 0; i < 180; i++ {
		require.Equal(t, models.DraftStatusInProgress, state.Status, "pick %d", i+1)
		state = pickBest(t, state)

		assert.Equal(t, i+1, state.CurrentPickIndex)
		assert.Equal(t, len(state.Picks), state.CurrentPickIndex)

		rostered := 0
		for _, team := range state.Teams {
			rostered += len(team.Roster)
		}
		assert.Equal(t, poolSize, len(state.AvailablePlayers)+rostered)
	}

	assert.Equal(t, models.DraftStatusCompleted, state.Status)
	assert.Equal(t, 0, RemainingPicks(state))
	_, ok := CurrentTeam(state)
	assert.False(t, ok)

	seen := map[string]bool{}
	for _, team := range state.Teams {
		assert.Len(t, team.Roster, 15)
		for _, p := range team.Roster {
			assert.False(t, seen[p.ID], "player %s on two rosters", p.ID)
			seen[p.ID] = true
			_, available := state.AvailablePlayer(p.ID)
			assert.False(t, available)
		}
	}

	_, _, err := ExecutePick(state, state.Teams[0].ID, state.AvailablePlayers[0].ID, now)
	assert.ErrorIs(t, err, ErrNotInProgress)
}

func TestSnakeTurnover(t *testing.T) {
	state := newDraft(t, 12, 15, 1)
	for i := 0; i < 12; i++ {
		state = pickBest(t, state)
	}
	twelfth := state.Picks[11].TeamID

	team, ok := CurrentTeam(state)
	require.True(t, ok)
	assert.Equal(t, twelfth, team.ID)
	assert.Equal(t, 2, CurrentRound(state))
	assert.Equal(t, 1, PickInRound(state))

	state = pickBest(t, state)
	assert.Equal(t, twelfth, state.Picks[12].TeamID)
	assert.Equal(t, 2, state.Picks[12].Round)
}

func TestUndoLastPickIsInverse(t *testing.T) {
	state := newDraft(t, 4, 3, 2)
	for i := 0; i < 5; i++ {
		state = pickBest(t, state)
	}

	team, _ := CurrentTeam(state)
	player := state.AvailablePlayers[3]
	after, _, err := ExecutePick(state, team.ID, player.ID, now)
	require.NoError(t, err)

	undone := UndoLastPick(after, now)

	assert.Equal(t, state.CurrentPickIndex, undone.CurrentPickIndex)
	assert.Equal(t, state.Picks, undone.Picks)
	assert.Equal(t, state.Status, undone.Status)
	for i := range state.Teams {
		assert.Equal(t, state.Teams[i].Roster, undone.Teams[i].Roster)
		assert.Equal(t, state.Teams[i].ByeWeeks, undone.Teams[i].ByeWeeks)
	}
	assert.ElementsMatch(t, state.AvailablePlayers, undone.AvailablePlayers)
	for i := 1; i < len(undone.AvailablePlayers); i++ {
		assert.LessOrEqual(t, undone.AvailablePlayers[i-1].ADP, undone.AvailablePlayers[i].ADP)
	}
}

func TestUndoReopensCompletedDraft(t *testing.T) {
	state := newDraft(t, 2, 1, 1)
	state = pickBest(t, state)
	state = pickBest(t, state)
	require.Equal(t, models.DraftStatusCompleted, state.Status)

	undone := UndoLastPick(state, now)

	assert.Equal(t, models.DraftStatusInProgress, undone.Status)
	assert.Equal(t, 1, undone.CurrentPickIndex)
}

func TestUndoWithNoPicks(t *testing.T) {
	state := newDraft(t, 4, 3, 1)

	undone := UndoLastPick(state, now)

	assert.NotSame(t, state, undone)
	assert.Equal(t, 0, undone.CurrentPickIndex)
	assert.Empty(t, undone.Picks)
	assert.Equal(t, state.AvailablePlayers, undone.AvailablePlayers)
}
