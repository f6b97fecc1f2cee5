// Package decision selects a player for an AI-controlled team by combining
// tier, psychology and need analysis into one weighted score.
package decision

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/mcdev12/mockdraft/go/internal/ai/needs"
	"github.com/mcdev12/mockdraft/go/internal/ai/psychology"
	"github.com/mcdev12/mockdraft/go/internal/ai/tiers"
	"github.com/mcdev12/mockdraft/go/internal/draft/engine"
	"github.com/mcdev12/mockdraft/go/internal/models"
	"github.com/mcdev12/mockdraft/go/internal/randutil"
)

// Component weights.
const (
	needWeight     = 0.30
	valueWeight    = 0.25
	runWeight      = 0.20
	tierWeight     = 0.15
	byeWeight      = 0.10
	scarcityWeight = 0.10

	lastInTierScore = 50.0
	maxSaneReach    = 40.0
)

// Breakdown holds every weighted component of a score.
type Breakdown struct {
	Base         float64 `json:"base"`
	Need         float64 `json:"need"`
	Value        float64 `json:"value"`
	Run          float64 `json:"run"`
	Tier         float64 `json:"tier"`
	Bye          float64 `json:"bye"`
	Scarcity     float64 `json:"scarcity"`
	FavoriteTeam float64 `json:"favorite_team"`
	Risk         float64 `json:"risk"`
	ReachPenalty float64 `json:"reach_penalty"`
	Noise        float64 `json:"noise"` // relative, e.g. 0.03 = +3%

	LastInTier bool               `json:"last_in_tier"`
	RunInfo    psychology.RunInfo `json:"run_info"`
}

// Score is a candidate's total together with how it was reached.
type Score struct {
	Player    models.Player `json:"player"`
	Total     float64       `json:"total"`
	Breakdown Breakdown     `json:"breakdown"`
}

// Config configures an Engine.
type Config struct {
	Seed     int64           // 0 draws a seed from the clock
	Noise    NoiseSource     // nil uses UniformNoise from the seeded generator
	Clock    clockwork.Clock // nil uses the real clock
	ThinkMin time.Duration
	ThinkMax time.Duration
}

// DefaultConfig returns the production configuration.
func DefaultConfig() Config {
	return Config{
		ThinkMin: 300 * time.Millisecond,
		ThinkMax: 700 * time.Millisecond,
	}
}

// Engine scores and selects players for AI teams. It is safe for concurrent use.
type Engine struct {
	noise    NoiseSource
	delay    *lockedRand
	clock    clockwork.Clock
	thinkMin time.Duration
	thinkMax time.Duration
}

// NewEngine creates an Engine from cfg.
func NewEngine(cfg Config) *Engine {
	rng := randutil.New(cfg.Seed)
	e := &Engine{
		noise:    cfg.Noise,
		delay:    &lockedRand{rng: rng},
		clock:    cfg.Clock,
		thinkMin: cfg.ThinkMin,
		thinkMax: cfg.ThinkMax,
	}
	if e.noise == nil {
		e.noise = &UniformNoise{src: e.delay}
	}
	if e.clock == nil {
		e.clock = clockwork.NewRealClock()
	}
	if e.thinkMax < e.thinkMin {
		e.thinkMax = e.thinkMin
	}
	return e
}

// Think pauses for a random duration in [ThinkMin, ThinkMax] so AI picks feel
// deliberate. It returns early if ctx is done.
func (e *Engine) Think(ctx context.Context) {
	d := e.thinkMin
	if span := e.thinkMax - e.thinkMin; span > 0 {
		d += time.Duration(e.delay.Float64() * float64(span))
	}
	if d <= 0 {
		return
	}
	select {
	case <-e.clock.After(d):
	case <-ctx.Done():
	}
}

// scoringContext is the per-turn input shared by every candidate.
type scoringContext struct {
	round        int
	pick         int
	totalDrafted int
	run          psychology.RunInfo
	pool         []models.Player
}

func newScoringContext(state *models.DraftState, pool []models.Player) scoringContext {
	recent := engine.RecentPicks(state, psychology.RunWindow)
	players := make([]models.Player, len(recent))
	for i, r := range recent {
		players[i] = r.Player
	}
	return scoringContext{
		round:        engine.CurrentRound(state),
		pick:         state.CurrentPickIndex + 1,
		totalDrafted: len(state.Picks),
		run:          psychology.DetectPositionalRun(players),
		pool:         pool,
	}
}

// SelectAIPick returns the player team should draft from pool, or false if the
// pool is empty. Teams without a profile take the best player by ADP. Ties go
// to the candidate that appears first in pool, which is the better ADP.
func (e *Engine) SelectAIPick(team *models.Team, state *models.DraftState, pool []models.Player) (models.Player, bool) {
	if len(pool) == 0 {
		return models.Player{}, false
	}
	if team.AIProfile == nil {
		return pool[0], true
	}

	sc := newScoringContext(state, pool)
	best := e.scorePlayer(pool[0], team, state, sc)
	for _, p := range pool[1:] {
		s := e.scorePlayer(p, team, state, sc)
		if s.Total > best.Total {
			best = s
		}
	}
	return best.Player, true
}

// ScorePlayer scores a single candidate for team against pool.
func (e *Engine) ScorePlayer(player models.Player, team *models.Team, state *models.DraftState, pool []models.Player) Score {
	return e.scorePlayer(player, team, state, newScoringContext(state, pool))
}

func (e *Engine) scorePlayer(player models.Player, team *models.Team, state *models.DraftState, sc scoringContext) Score {
	profile := team.AIProfile
	if profile == nil {
		profile = &models.AIProfile{}
	}

	var b Breakdown
	b.Base = math.Max(0, 200-player.ADP) * profile.Preference(player.Position)
	b.Need = needs.CalculateNeedValue(team, player, state.Settings, sc.round) * needWeight
	b.Value = (player.ADP - float64(sc.pick)) * 2 * valueWeight
	b.Run = psychology.CalculatePanicBonus(player, sc.run, profile.PanicFactor) * runWeight
	b.RunInfo = sc.run

	b.LastInTier = tiers.IsLastInTier(player, sc.pool)
	if b.LastInTier {
		b.Tier = lastInTierScore * tierWeight
	} else {
		b.Tier = tiers.CalculateTierUrgency(player, sc.pool, sc.pick) * tierWeight
	}

	b.Bye = byeWeekPenalty(team, player, profile.ByeWeekAwareness) * byeWeight
	b.Scarcity = psychology.CalculateScarcityIndex(player.Position, sc.pool, sc.totalDrafted) * scarcityWeight
	b.FavoriteTeam = psychology.CalculateFavoriteTeamBonus(player, team.AIProfile)
	b.Risk = riskAdjustment(player, profile.RiskTolerance)
	b.ReachPenalty = psychology.CalculateReachPenalty(player, sc.pick, profile.ReachThreshold)

	total := b.Base + b.Need + b.Value + b.Run + b.Tier + b.Bye +
		b.Scarcity + b.FavoriteTeam + b.Risk - b.ReachPenalty

	b.Noise = e.noise.Noise()
	total *= 1 + b.Noise

	return Score{Player: player, Total: total, Breakdown: b}
}

// byeWeekPenalty discourages stacking rostered players on one bye week.
func byeWeekPenalty(team *models.Team, player models.Player, awareness float64) float64 {
	if player.ByeWeek == 0 {
		return 0
	}
	sharing := 0
	for _, p := range team.Roster {
		if p.ByeWeek == player.ByeWeek {
			sharing++
		}
	}

	var penalty float64
	switch {
	case sharing >= 4:
		penalty = -40
	case sharing == 3:
		penalty = -25
	case sharing == 2:
		penalty = -10
	}
	return penalty * awareness
}

// riskAdjustment rewards volatile players for risk-seeking profiles and
// penalises them for risk-averse ones. Risk scores are centred at 5.
func riskAdjustment(player models.Player, tolerance float64) float64 {
	delta := player.RiskScore - 5
	switch {
	case tolerance > 0.7:
		return delta * 3
	case tolerance < 0.3:
		return -delta * 4
	default:
		return 0
	}
}

// GetTopCandidates returns the n best scored players for team, highest first.
func (e *Engine) GetTopCandidates(team *models.Team, state *models.DraftState, n int) []Score {
	pool := state.AvailablePlayers
	sc := newScoringContext(state, pool)

	scores := make([]Score, 0, len(pool))
	for _, p := range pool {
		scores = append(scores, e.scorePlayer(p, team, state, sc))
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Total > scores[j].Total })

	if n >= 0 && n < len(scores) {
		scores = scores[:n]
	}
	return scores
}

// ValidateAIPick is an advisory sanity check: the player must still be
// available and must not be a reach of more than 40 picks.
func ValidateAIPick(player models.Player, state *models.DraftState) bool {
	if _, ok := state.AvailablePlayer(player.ID); !ok {
		return false
	}
	reach := float64(state.CurrentPickIndex+1) - player.ADP
	return reach <= maxSaneReach
}
