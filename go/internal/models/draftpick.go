package models

import (
	"time"

	"github.com/google/uuid"
)

// DraftPick represents a single executed pick in a draft.
type DraftPick struct {
	ID          uuid.UUID `json:"id"`
	DraftID     uuid.UUID `json:"draft_id"`
	TeamID      uuid.UUID `json:"team_id"`
	PlayerID    string    `json:"player_id"`
	PickNumber  int       `json:"pick_number"`   // pick number overall, 1-indexed
	Round       int       `json:"round"`         // 1-indexed
	PickInRound int       `json:"pick_in_round"` // 1-indexed
	Timestamp   time.Time `json:"timestamp"`
	IsAIPick    bool      `json:"is_ai_pick"`
}
