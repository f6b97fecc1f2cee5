package engine

import (
	"github.com/mcdev12/mockdraft/go/internal/models"
)

// CurrentTeam returns the team on the clock. It returns false once the draft
// order is exhausted.
func CurrentTeam(state *models.DraftState) (*models.Team, bool) {
	idx := state.CurrentPickIndex
	if idx < 0 || idx >= len(state.DraftOrder) {
		return nil, false
	}
	return state.Team(state.DraftOrder[idx])
}

// IsUserTurn reports whether the user's team is on the clock.
func IsUserTurn(state *models.DraftState) bool {
	team, ok := CurrentTeam(state)
	return ok && team.IsUser
}

// CurrentRound returns the 1-indexed round of the pick on the clock.
func CurrentRound(state *models.DraftState) int {
	if state.Settings.NumTeams == 0 {
		return 1
	}
	return state.CurrentPickIndex/state.Settings.NumTeams + 1
}

// PickInRound returns the 1-indexed position of the current pick within its round.
func PickInRound(state *models.DraftState) int {
	if state.Settings.NumTeams == 0 {
		return 1
	}
	return state.CurrentPickIndex%state.Settings.NumTeams + 1
}

// RemainingPicks returns how many picks are left in the draft.
func RemainingPicks(state *models.DraftState) int {
	if n := state.Settings.TotalPicks() - state.CurrentPickIndex; n > 0 {
		return n
	}
	return 0
}

// RecentPick pairs a pick with the player it took.
type RecentPick struct {
	Pick   models.DraftPick `json:"pick"`
	Player models.Player    `json:"player"`
}

// RecentPicks returns up to n of the latest picks, oldest first.
func RecentPicks(state *models.DraftState, n int) []RecentPick {
	n = max(0, min(n, len(state.Picks)))
	start := len(state.Picks) - n
	out := make([]RecentPick, 0, len(state.Picks)-start)
	for _, pick := range state.Picks[start:] {
		player, ok := state.RosteredPlayer(pick.PlayerID)
		if !ok {
			continue
		}
		out = append(out, RecentPick{Pick: pick, Player: player})
	}
	return out
}

// RosterComposition counts the team's rostered players by position.
func RosterComposition(team *models.Team) models.RosterComposition {
	comp := make(models.RosterComposition, len(models.AllPositions))
	for _, pos := range models.AllPositions {
		comp[pos] = 0
	}
	for _, p := range team.Roster {
		comp[p.Position]++
	}
	return comp
}

// ByeWeekDistribution counts the team's rostered players by bye week.
func ByeWeekDistribution(team *models.Team) map[int]int {
	dist := make(map[int]int)
	for _, p := range team.Roster {
		if p.ByeWeek > 0 {
			dist[p.ByeWeek]++
		}
	}
	return dist
}
