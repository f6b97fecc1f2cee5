package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// DraftStatus defines the status of a draft.
type DraftStatus string

const (
	DraftStatusSetup      DraftStatus = "setup"
	DraftStatusInProgress DraftStatus = "in_progress"
	DraftStatusCompleted  DraftStatus = "completed"
)

// ScoringFormat defines how receptions are scored.
type ScoringFormat string

const (
	ScoringStandard ScoringFormat = "standard"
	ScoringHalfPPR  ScoringFormat = "half_ppr"
	ScoringPPR      ScoringFormat = "ppr"
)

// Valid reports whether f is a known scoring format.
func (f ScoringFormat) Valid() bool {
	switch f {
	case ScoringStandard, ScoringHalfPPR, ScoringPPR:
		return true
	}
	return false
}

// DraftSettings holds the configuration of a draft.
type DraftSettings struct {
	NumTeams      int            `json:"num_teams"`
	NumRounds     int            `json:"num_rounds"`
	ScoringFormat ScoringFormat  `json:"scoring_format"`
	RosterSlots   RosterSettings `json:"roster_slots"`
}

// TotalPicks returns the number of picks in a complete draft.
func (s DraftSettings) TotalPicks() int {
	return s.NumTeams * s.NumRounds
}

// DraftState is an immutable snapshot of a draft. Operations that change a draft
// return a new snapshot instead of mutating the one they were given.
type DraftState struct {
	ID               uuid.UUID     `json:"id"`
	Teams            []Team        `json:"teams"`
	Picks            []DraftPick   `json:"picks"`
	CurrentPickIndex int           `json:"current_pick_index"`
	AvailablePlayers []Player      `json:"available_players"` // sorted by ADP ascending
	DraftOrder       []uuid.UUID   `json:"draft_order"`
	Settings         DraftSettings `json:"settings"`
	Status           DraftStatus   `json:"status"`
	Version          int64         `json:"version"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// Clone returns a deep copy of the snapshot.
func (s *DraftState) Clone() *DraftState {
	c := *s
	c.Teams = make([]Team, len(s.Teams))
	for i, t := range s.Teams {
		c.Teams[i] = t.Clone()
	}
	c.Picks = slices.Clone(s.Picks)
	c.AvailablePlayers = slices.Clone(s.AvailablePlayers)
	c.DraftOrder = slices.Clone(s.DraftOrder)
	return &c
}

// Team returns the team with the given id.
func (s *DraftState) Team(id uuid.UUID) (*Team, bool) {
	for i := range s.Teams {
		if s.Teams[i].ID == id {
			return &s.Teams[i], true
		}
	}
	return nil, false
}

// UserTeam returns the user-controlled team.
func (s *DraftState) UserTeam() (*Team, bool) {
	for i := range s.Teams {
		if s.Teams[i].IsUser {
			return &s.Teams[i], true
		}
	}
	return nil, false
}

// AvailablePlayer returns the available player with the given id.
func (s *DraftState) AvailablePlayer(id string) (Player, bool) {
	for _, p := range s.AvailablePlayers {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// RosteredPlayer returns a drafted player by id by searching every roster.
func (s *DraftState) RosteredPlayer(id string) (Player, bool) {
	for _, t := range s.Teams {
		for _, p := range t.Roster {
			if p.ID == id {
				return p, true
			}
		}
	}
	return Player{}, false
}

// IsDrafted reports whether any existing pick took the player.
func (s *DraftState) IsDrafted(playerID string) bool {
	for _, p := range s.Picks {
		if p.PlayerID == playerID {
			return true
		}
	}
	return false
}
