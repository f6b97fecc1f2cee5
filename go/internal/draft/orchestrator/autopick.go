package orchestrator

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/mockdraft/go/internal/ai/decision"
	"github.com/mcdev12/mockdraft/go/internal/models"
)

// ErrNoAvailablePlayers is returned when the pool is exhausted before the draft is.
var ErrNoAvailablePlayers = errors.New("no available players")

type AutoPickStrategy interface {
	// SelectPlayer chooses a player for the team on the clock in state.
	// The returned pick is validated again when it is applied.
	SelectPlayer(ctx context.Context, team *models.Team, state *models.DraftState) (models.Player, error)
}

// AIStrategy lets the decision engine think and then choose.
type AIStrategy struct {
	engine *decision.Engine
}

func NewAIStrategy(engine *decision.Engine) *AIStrategy {
	return &AIStrategy{engine: engine}
}

// SelectPlayer implements AutoPickStrategy.SelectPlayer
func (s *AIStrategy) SelectPlayer(ctx context.Context, team *models.Team, state *models.DraftState) (models.Player, error) {
	s.engine.Think(ctx)

	player, ok := s.engine.SelectAIPick(team, state, state.AvailablePlayers)
	if !ok {
		return models.Player{}, ErrNoAvailablePlayers
	}

	if !decision.ValidateAIPick(player, state) {
		log.Warn().
			Str("draft_id", state.ID.String()).
			Str("team", team.Name).
			Str("player_id", player.ID).
			Float64("adp", player.ADP).
			Int("overall_pick", state.CurrentPickIndex+1).
			Msg("AI pick looks implausible, submitting anyway")
	}
	return player, nil
}

// BestAvailableStrategy always takes the top of the ADP board.
type BestAvailableStrategy struct{}

// SelectPlayer implements AutoPickStrategy.SelectPlayer
func (BestAvailableStrategy) SelectPlayer(ctx context.Context, team *models.Team, state *models.DraftState) (models.Player, error) {
	if len(state.AvailablePlayers) == 0 {
		return models.Player{}, ErrNoAvailablePlayers
	}
	return state.AvailablePlayers[0], nil
}
