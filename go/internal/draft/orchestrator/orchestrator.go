// Package orchestrator drives drafts: it creates them, applies user picks,
// runs AI teams until the user is on the clock and publishes domain events.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/mockdraft/go/internal/ai/decision"
	"github.com/mcdev12/mockdraft/go/internal/ai/profiles"
	"github.com/mcdev12/mockdraft/go/internal/draft/engine"
	"github.com/mcdev12/mockdraft/go/internal/draft/events"
	"github.com/mcdev12/mockdraft/go/internal/draft/store"
	"github.com/mcdev12/mockdraft/go/internal/models"
)

// maxStalePicks bounds how many AI picks in a row may lose a race before RunAITurns gives up.
const maxStalePicks = 3

// ErrTeamNotFound is returned by read-only lookups for an unknown team.
var ErrTeamNotFound = errors.New("team not found")

type Orchestrator struct {
	repo      store.Repository
	registry  *profiles.Registry
	engine    *decision.Engine
	strat     AutoPickStrategy
	publisher events.Publisher
	clock     clockwork.Clock

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewOrchestrator wires the orchestrator. rng drives profile assignment for new drafts.
func NewOrchestrator(repo store.Repository, registry *profiles.Registry, eng *decision.Engine, strat AutoPickStrategy, publisher events.Publisher, clock clockwork.Clock, rng *rand.Rand) *Orchestrator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Orchestrator{
		repo:      repo,
		registry:  registry,
		engine:    eng,
		strat:     strat,
		publisher: publisher,
		clock:     clock,
		rng:       rng,
	}
}

// CreateDraft initializes and stores a new draft.
func (o *Orchestrator) CreateDraft(ctx context.Context, params engine.InitParams) (*models.DraftState, error) {
	o.rngMu.Lock()
	state, err := engine.InitializeDraft(params, o.registry, o.rng, o.clock.Now())
	o.rngMu.Unlock()
	if err != nil {
		return nil, err
	}

	if err := o.repo.Create(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to store draft: %w", err)
	}
	stored, err := o.repo.Get(ctx, state.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload draft: %w", err)
	}

	log.Info().
		Str("draft_id", stored.ID.String()).
		Int("num_teams", stored.Settings.NumTeams).
		Int("num_rounds", stored.Settings.NumRounds).
		Int("pool_size", len(stored.AvailablePlayers)).
		Msg("draft created")

	o.emit(ctx, stored.ID, events.EventDraftStarted, events.DraftStartedPayload{
		DraftID:           stored.ID.String(),
		StartedAt:         stored.CreatedAt,
		NumTeams:          stored.Settings.NumTeams,
		TotalRounds:       stored.Settings.NumRounds,
		TotalPicks:        stored.Settings.TotalPicks(),
		UserDraftPosition: params.UserDraftPosition,
	})
	return stored, nil
}

// GetDraft returns the latest snapshot.
func (o *Orchestrator) GetDraft(ctx context.Context, draftID uuid.UUID) (*models.DraftState, error) {
	return o.repo.Get(ctx, draftID)
}

// MakePick applies a pick through the same validation path for every team.
func (o *Orchestrator) MakePick(ctx context.Context, draftID, teamID uuid.UUID, playerID string) (*models.DraftState, *models.DraftPick, error) {
	var made *models.DraftPick
	state, err := o.repo.Update(ctx, draftID, func(cur *models.DraftState) (*models.DraftState, error) {
		next, pick, err := engine.ExecutePick(cur, teamID, playerID, o.clock.Now())
		if err != nil {
			return nil, err
		}
		made = pick
		return next, nil
	})
	if err != nil {
		return nil, nil, err
	}

	o.afterPick(ctx, state, made)
	return state, made, nil
}

// RunAITurns makes AI picks until the user is on the clock or the draft ends.
// Thinking happens outside the store lock, so a pick chosen against an older
// snapshot is re-validated and retried if it lost a race.
func (o *Orchestrator) RunAITurns(ctx context.Context, draftID uuid.UUID) (*models.DraftState, []models.DraftPick, error) {
	var picks []models.DraftPick
	stale := 0

	for {
		state, err := o.repo.Get(context.WithoutCancel(ctx), draftID)
		if err != nil {
			return nil, picks, err
		}
		if state.Status != models.DraftStatusInProgress || engine.IsUserTurn(state) {
			return state, picks, nil
		}
		if err := ctx.Err(); err != nil {
			return state, picks, err
		}

		team, ok := engine.CurrentTeam(state)
		if !ok {
			return state, picks, nil
		}

		player, err := o.strat.SelectPlayer(ctx, team, state)
		if err != nil {
			return state, picks, fmt.Errorf("auto-pick for %s: %w", team.Name, err)
		}

		// an abandoned caller does not cancel a pick that has already been chosen
		_, pick, err := o.MakePick(context.WithoutCancel(ctx), draftID, team.ID, player.ID)
		var pe *engine.PickError
		if errors.As(err, &pe) {
			stale++
			log.Warn().
				Err(err).
				Str("draft_id", draftID.String()).
				Str("team", team.Name).
				Str("player_id", player.ID).
				Msg("AI pick rejected")
			if stale >= maxStalePicks {
				return state, picks, fmt.Errorf("AI pick rejected %d times: %w", stale, err)
			}
			continue
		}
		if err != nil {
			return state, picks, err
		}
		stale = 0
		picks = append(picks, *pick)
	}
}

// Undo reverses the last pick. Undoing an empty draft returns it unchanged.
func (o *Orchestrator) Undo(ctx context.Context, draftID uuid.UUID) (*models.DraftState, error) {
	var undone *models.DraftPick
	state, err := o.repo.Update(ctx, draftID, func(cur *models.DraftState) (*models.DraftState, error) {
		if n := len(cur.Picks); n > 0 {
			last := cur.Picks[n-1]
			undone = &last
		}
		return engine.UndoLastPick(cur, o.clock.Now()), nil
	})
	if err != nil {
		return nil, err
	}

	if undone != nil {
		log.Info().
			Str("draft_id", draftID.String()).
			Int("overall_pick", undone.PickNumber).
			Str("player_id", undone.PlayerID).
			Msg("pick undone")
		o.emit(ctx, draftID, events.EventPickUndone, events.PickUndonePayload{
			PickID:      undone.ID.String(),
			TeamID:      undone.TeamID.String(),
			PlayerID:    undone.PlayerID,
			OverallPick: undone.PickNumber,
			UndoneAt:    state.UpdatedAt,
		})
	}
	return state, nil
}

// TopCandidates scores the pool for a team.
func (o *Orchestrator) TopCandidates(ctx context.Context, draftID, teamID uuid.UUID, n int) ([]decision.Score, error) {
	state, err := o.repo.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	team, ok := state.Team(teamID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTeamNotFound, teamID)
	}
	return o.engine.GetTopCandidates(team, state, n), nil
}

// Explain describes how a team's AI would view a player right now.
func (o *Orchestrator) Explain(ctx context.Context, draftID, teamID uuid.UUID, playerID string) (decision.Explanation, error) {
	state, err := o.repo.Get(ctx, draftID)
	if err != nil {
		return decision.Explanation{}, err
	}
	team, ok := state.Team(teamID)
	if !ok {
		return decision.Explanation{}, fmt.Errorf("%w: %s", ErrTeamNotFound, teamID)
	}
	player, ok := state.AvailablePlayer(playerID)
	if !ok {
		return decision.Explanation{}, &engine.PickError{Code: engine.CodePlayerNotFound, Message: fmt.Sprintf("player %s is not available", playerID)}
	}
	return o.engine.ExplainPick(player, team, state), nil
}

func (o *Orchestrator) afterPick(ctx context.Context, state *models.DraftState, pick *models.DraftPick) {
	team, _ := state.Team(pick.TeamID)
	player, _ := state.RosteredPlayer(pick.PlayerID)

	log.Info().
		Str("draft_id", state.ID.String()).
		Int("overall_pick", pick.PickNumber).
		Int("round", pick.Round).
		Str("team", team.Name).
		Str("player", player.Name).
		Str("position", string(player.Position)).
		Bool("ai", pick.IsAIPick).
		Msg("pick made")

	o.emit(ctx, state.ID, events.EventPickMade, events.PickMadePayload{
		PickID:      pick.ID.String(),
		TeamID:      pick.TeamID.String(),
		TeamName:    team.Name,
		PlayerID:    player.ID,
		PlayerName:  player.Name,
		Position:    string(player.Position),
		Round:       pick.Round,
		Pick:        pick.PickInRound,
		OverallPick: pick.PickNumber,
		IsAIPick:    pick.IsAIPick,
		MadeAt:      pick.Timestamp,
	})

	if state.Status == models.DraftStatusCompleted {
		aiPicks := 0
		for _, p := range state.Picks {
			if p.IsAIPick {
				aiPicks++
			}
		}
		log.Info().
			Str("draft_id", state.ID.String()).
			Int("total_picks", len(state.Picks)).
			Int("ai_picks", aiPicks).
			Msg("draft completed")
		o.emit(ctx, state.ID, events.EventDraftCompleted, events.DraftCompletedPayload{
			DraftID:     state.ID.String(),
			CompletedAt: pick.Timestamp,
			Duration:    pick.Timestamp.Sub(state.CreatedAt).String(),
			TotalPicks:  len(state.Picks),
			AIPicks:     aiPicks,
			UserPicks:   len(state.Picks) - aiPicks,
		})
	}
}

// emit publishes an event. Failures are logged and never fail the draft operation.
func (o *Orchestrator) emit(ctx context.Context, draftID uuid.UUID, eventType events.EventType, payload any) {
	ev, err := events.New(draftID, eventType, payload, o.clock.Now())
	if err != nil {
		log.Error().Err(err).Str("draft_id", draftID.String()).Msg("failed to build event")
		return
	}
	if err := o.publisher.Publish(context.WithoutCancel(ctx), ev); err != nil {
		log.Error().
			Err(err).
			Str("draft_id", draftID.String()).
			Str("event_type", string(eventType)).
			Msg("failed to publish event")
	}
}
