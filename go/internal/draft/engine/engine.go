// Package engine is the draft state machine. Every operation is a pure
// function of a snapshot: callers get a new *models.DraftState back and the
// one they passed in is never modified.
package engine

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/mockdraft/go/internal/models"
)

// ValidatePick reports whether teamID may draft playerID right now. It returns
// nil for a legal pick and a *PickError otherwise.
//
// Checks run in this order and the first failure wins: NotInProgress,
// TeamNotFound, WrongTurn, AlreadyDrafted, PlayerUnavailable. An unknown team
// is reported as TeamNotFound even when it is not on the clock, and a player
// already on a roster is reported as AlreadyDrafted rather than unavailable.
func ValidatePick(state *models.DraftState, teamID uuid.UUID, playerID string) error {
	if state.Status != models.DraftStatusInProgress {
		return pickErr(CodeNotInProgress, "draft is %s", state.Status)
	}
	if _, ok := state.Team(teamID); !ok {
		return pickErr(CodeTeamNotFound, "team %s is not in this draft", teamID)
	}

	current, ok := CurrentTeam(state)
	if !ok || current.ID != teamID {
		return pickErr(CodeWrongTurn, "team %s is not on the clock", teamID)
	}
	if state.IsDrafted(playerID) {
		return pickErr(CodeAlreadyDrafted, "player %s has already been drafted", playerID)
	}
	if _, ok := state.AvailablePlayer(playerID); !ok {
		return pickErr(CodePlayerUnavailable, "player %s is not available", playerID)
	}
	return nil
}

// ExecutePick validates and applies a pick. On failure it returns the original
// snapshot and the validation error; on success it returns a new snapshot and
// the recorded pick.
func ExecutePick(state *models.DraftState, teamID uuid.UUID, playerID string, now time.Time) (*models.DraftState, *models.DraftPick, error) {
	if err := ValidatePick(state, teamID, playerID); err != nil {
		return state, nil, err
	}

	next := state.Clone()
	team, _ := next.Team(teamID)
	player, _ := next.AvailablePlayer(playerID)

	idx := next.CurrentPickIndex
	numTeams := next.Settings.NumTeams
	pick := models.DraftPick{
		ID:          uuid.New(),
		DraftID:     next.ID,
		TeamID:      teamID,
		PlayerID:    playerID,
		PickNumber:  idx + 1,
		Round:       idx/numTeams + 1,
		PickInRound: idx%numTeams + 1,
		Timestamp:   now,
		IsAIPick:    !team.IsUser,
	}

	team.Roster = append(team.Roster, player)
	if player.ByeWeek > 0 {
		team.ByeWeeks[player.ByeWeek]++
	}
	next.AvailablePlayers = removePlayer(next.AvailablePlayers, playerID)
	next.Picks = append(next.Picks, pick)
	next.CurrentPickIndex++
	next.Status = statusFor(next)
	next.UpdatedAt = now

	return next, &pick, nil
}

// UndoLastPick reverses the most recent pick. With no picks it returns an
// unchanged copy.
func UndoLastPick(state *models.DraftState, now time.Time) *models.DraftState {
	next := state.Clone()
	if len(next.Picks) == 0 {
		return next
	}

	last := next.Picks[len(next.Picks)-1]
	next.Picks = next.Picks[:len(next.Picks)-1]

	if team, ok := next.Team(last.TeamID); ok {
		for i, p := range team.Roster {
			if p.ID != last.PlayerID {
				continue
			}
			team.Roster = append(team.Roster[:i:i], team.Roster[i+1:]...)
			if p.ByeWeek > 0 {
				team.ByeWeeks[p.ByeWeek]--
				if team.ByeWeeks[p.ByeWeek] <= 0 {
					delete(team.ByeWeeks, p.ByeWeek)
				}
			}
			next.AvailablePlayers = insertByADP(next.AvailablePlayers, p)
			break
		}
	}

	if next.CurrentPickIndex > 0 {
		next.CurrentPickIndex--
	}
	next.Status = models.DraftStatusInProgress
	next.UpdatedAt = now
	return next
}

func statusFor(state *models.DraftState) models.DraftStatus {
	if len(state.Picks) >= state.Settings.TotalPicks() {
		return models.DraftStatusCompleted
	}
	return models.DraftStatusInProgress
}

func removePlayer(players []models.Player, id string) []models.Player {
	out := make([]models.Player, 0, len(players))
	for _, p := range players {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

// insertByADP places p after every player with an ADP less than or equal to its own.
func insertByADP(players []models.Player, p models.Player) []models.Player {
	i := sort.Search(len(players), func(i int) bool { return players[i].ADP > p.ADP })
	out := make([]models.Player, 0, len(players)+1)
	out = append(out, players[:i]...)
	out = append(out, p)
	return append(out, players[i:]...)
}

// SortByADP orders players by ADP ascending, keeping the input order for ties.
func SortByADP(players []models.Player) {
	sort.SliceStable(players, func(i, j int) bool { return players[i].ADP < players[j].ADP })
}
