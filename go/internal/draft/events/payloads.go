package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventType names a draft domain event. It is also the last token of the
// subject the event is published on.
type EventType string

const (
	EventDraftStarted   EventType = "DraftStarted"
	EventPickMade       EventType = "PickMade"
	EventPickUndone     EventType = "PickUndone"
	EventDraftCompleted EventType = "DraftCompleted"
)

// Event is a domain event ready to publish.
type Event struct {
	ID        uuid.UUID       `json:"id"`
	DraftID   uuid.UUID       `json:"draft_id"`
	Type      EventType       `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// New marshals payload into an Event.
func New(draftID uuid.UUID, eventType EventType, payload any, now time.Time) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return Event{
		ID:        uuid.New(),
		DraftID:   draftID,
		Type:      eventType,
		Payload:   data,
		CreatedAt: now,
	}, nil
}

// Envelope is the wire format shared by every publisher.
type Envelope struct {
	EventID   string          `json:"eventId"`
	EventType EventType       `json:"eventType"`
	DraftID   string          `json:"draftId"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// Marshal encodes the event inside its envelope.
func (e Event) Marshal() ([]byte, error) {
	data, err := json.Marshal(Envelope{
		EventID:   e.ID.String(),
		EventType: e.Type,
		DraftID:   e.DraftID.String(),
		Timestamp: e.CreatedAt.UTC(),
		Payload:   e.Payload,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}

// DraftStartedPayload is the payload for a DraftStarted event
type DraftStartedPayload struct {
	DraftID           string    `json:"draft_id"`
	StartedAt         time.Time `json:"started_at"`
	NumTeams          int       `json:"num_teams"`
	TotalRounds       int       `json:"total_rounds"`
	TotalPicks        int       `json:"total_picks"`
	UserDraftPosition int       `json:"user_draft_position"`
}

// PickMadePayload is the payload for a PickMade event
type PickMadePayload struct {
	PickID      string    `json:"pick_id"`
	TeamID      string    `json:"team_id"`
	TeamName    string    `json:"team_name"`
	PlayerID    string    `json:"player_id"`
	PlayerName  string    `json:"player_name"`
	Position    string    `json:"position"`
	Round       int       `json:"round"`
	Pick        int       `json:"pick"`
	OverallPick int       `json:"overall_pick"`
	IsAIPick    bool      `json:"is_ai_pick"`
	MadeAt      time.Time `json:"made_at"`
}

// PickUndonePayload is the payload for a PickUndone event
type PickUndonePayload struct {
	PickID      string    `json:"pick_id"`
	TeamID      string    `json:"team_id"`
	PlayerID    string    `json:"player_id"`
	OverallPick int       `json:"overall_pick"`
	UndoneAt    time.Time `json:"undone_at"`
}

// DraftCompletedPayload is the payload for a DraftCompleted event
type DraftCompletedPayload struct {
	DraftID     string    `json:"draft_id"`
	CompletedAt time.Time `json:"completed_at"`
	Duration    string    `json:"duration"`
	TotalPicks  int       `json:"total_picks"`
	AIPicks     int       `json:"ai_picks"`
	UserPicks   int       `json:"user_picks"`
}
