package models

import (
	"maps"
	"slices"

	"github.com/google/uuid"
)

// Team is one drafting team. Exactly one team per draft is controlled by the user.
type Team struct {
	ID            uuid.UUID            `json:"id"`
	Name          string               `json:"name"`
	IsUser        bool                 `json:"is_user"`
	AIProfile     *AIProfile           `json:"ai_profile,omitempty"` // nil iff IsUser
	Roster        []Player             `json:"roster"`
	Needs         map[Position]float64 `json:"needs"`
	ByeWeeks      map[int]int          `json:"bye_weeks"` // bye week -> rostered players
	DraftPosition int                  `json:"draft_position"`
}

// CountAt returns how many rostered players play the given position.
func (t *Team) CountAt(pos Position) int {
	n := 0
	for _, p := range t.Roster {
		if p.Position == pos {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the team. The AI profile is shared since profiles are immutable.
func (t Team) Clone() Team {
	c := t
	c.Roster = slices.Clone(t.Roster)
	c.Needs = maps.Clone(t.Needs)
	c.ByeWeeks = maps.Clone(t.ByeWeeks)
	if c.ByeWeeks == nil {
		c.ByeWeeks = map[int]int{}
	}
	return c
}
