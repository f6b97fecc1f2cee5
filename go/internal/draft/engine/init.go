package engine

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/mockdraft/go/internal/ai/profiles"
	"github.com/mcdev12/mockdraft/go/internal/models"
)

// ErrInvalidParams marks a draft that cannot be created from the given parameters.
var ErrInvalidParams = errors.New("invalid draft parameters")

const (
	MinTeams = 2
	MaxTeams = 20

	initialNeed = 100.0
)

// InitParams describes a new draft.
type InitParams struct {
	UserName          string               `json:"user_name"`
	UserDraftPosition int                  `json:"user_draft_position"` // 1-indexed
	Settings          models.DraftSettings `json:"settings"`
	Players           []models.Player      `json:"-"`
	AIProfileIDs      []string             `json:"ai_profile_ids,omitempty"`
}

// Validate checks the parameters without touching the registry.
func (p InitParams) Validate() error {
	var errs []error
	if strings.TrimSpace(p.UserName) == "" {
		errs = append(errs, errors.New("user name is required"))
	}
	if p.Settings.NumTeams < MinTeams || p.Settings.NumTeams > MaxTeams {
		errs = append(errs, fmt.Errorf("num_teams must be between %d and %d, got %d", MinTeams, MaxTeams, p.Settings.NumTeams))
	}
	if p.Settings.NumRounds < 1 {
		errs = append(errs, fmt.Errorf("num_rounds must be at least 1, got %d", p.Settings.NumRounds))
	}
	if f := p.Settings.ScoringFormat; f != "" && !f.Valid() {
		errs = append(errs, fmt.Errorf("scoring_format must be one of %s, %s or %s, got %q",
			models.ScoringStandard, models.ScoringHalfPPR, models.ScoringPPR, f))
	}
	if err := p.Settings.RosterSlots.Validate(); err != nil {
		errs = append(errs, err)
	}
	if p.UserDraftPosition < 1 || p.UserDraftPosition > p.Settings.NumTeams {
		errs = append(errs, fmt.Errorf("user_draft_position must be between 1 and %d, got %d", p.Settings.NumTeams, p.UserDraftPosition))
	}
	return errors.Join(errs...)
}

// InitializeDraft builds the opening snapshot: the user's team at its draft
// position, AI teams everywhere else, snake order and a full ADP-sorted pool.
// Requested profile ids are used first; remaining AI teams draw from a
// shuffled cycle of the registry.
func InitializeDraft(params InitParams, registry *profiles.Registry, rng *rand.Rand, now time.Time) (*models.DraftState, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}

	settings := params.Settings
	if settings.ScoringFormat == "" {
		settings.ScoringFormat = models.ScoringPPR
	}
	if settings.RosterSlots.Total() == 0 {
		settings.RosterSlots = models.DefaultRosterSettings()
	}

	numAI := settings.NumTeams - 1
	aiProfiles := make([]*models.AIProfile, 0, numAI)
	for _, id := range params.AIProfileIDs {
		if len(aiProfiles) == numAI {
			break
		}
		p, err := registry.Get(id)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
		}
		aiProfiles = append(aiProfiles, p)
	}
	if missing := numAI - len(aiProfiles); missing > 0 {
		aiProfiles = append(aiProfiles, registry.AssignProfiles(missing, rng)...)
	}

	teams := make([]models.Team, 0, settings.NumTeams)
	teamIDs := make([]uuid.UUID, 0, settings.NumTeams)
	next := 0
	for pos := 1; pos <= settings.NumTeams; pos++ {
		team := models.Team{
			ID:            uuid.New(),
			Roster:        []models.Player{},
			Needs:         initialNeeds(),
			ByeWeeks:      map[int]int{},
			DraftPosition: pos,
		}
		if pos == params.UserDraftPosition {
			team.Name = strings.TrimSpace(params.UserName)
			team.IsUser = true
		} else {
			team.AIProfile = aiProfiles[next]
			team.Name = fmt.Sprintf("Team %d (%s)", pos, team.AIProfile.Name)
			next++
		}
		teams = append(teams, team)
		teamIDs = append(teamIDs, team.ID)
	}

	pool := append([]models.Player(nil), params.Players...)
	SortByADP(pool)

	return &models.DraftState{
		ID:               uuid.New(),
		Teams:            teams,
		Picks:            []models.DraftPick{},
		CurrentPickIndex: 0,
		AvailablePlayers: pool,
		DraftOrder:       GenerateDraftOrder(teamIDs, settings.NumRounds),
		Settings:         settings,
		Status:           models.DraftStatusInProgress,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

func initialNeeds() map[models.Position]float64 {
	needs := make(map[models.Position]float64, len(models.AllPositions))
	for _, pos := range models.AllPositions {
		needs[pos] = initialNeed
	}
	return needs
}
