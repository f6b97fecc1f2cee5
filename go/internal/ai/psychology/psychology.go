// Package psychology models the reactive side of drafting: positional runs,
// panic, scarcity, reaching and favorite-team bias.
package psychology

import (
	"math"

	"github.com/mcdev12/mockdraft/go/internal/models"
)

// RunWindow is how many of the most recent picks are examined for a run.
const RunWindow = 5

// FavoriteTeamBonus is the flat bonus for a player on one of the profile's favorite teams.
const FavoriteTeamBonus = 25.0

// initialTopTier is the reference count of top-tier players at each position
// at the start of a draft.
var initialTopTier = map[models.Position]float64{
	models.PositionQB:  12,
	models.PositionRB:  24,
	models.PositionWR:  30,
	models.PositionTE:  10,
	models.PositionK:   12,
	models.PositionDEF: 12,
}

// scarcityMultiplier boosts positions that are prone to runs.
var scarcityMultiplier = map[models.Position]float64{
	models.PositionQB:  1.0,
	models.PositionRB:  1.2,
	models.PositionWR:  1.2,
	models.PositionTE:  1.3,
	models.PositionK:   1.0,
	models.PositionDEF: 1.0,
}

// RunInfo describes a detected positional run. Position is empty when there is no run.
type RunInfo struct {
	Position  models.Position `json:"position,omitempty"`
	Intensity float64         `json:"intensity"`
}

// Active reports whether a run was detected.
func (r RunInfo) Active() bool {
	return r.Position != "" && r.Intensity > 0
}

// DetectPositionalRun looks at the last RunWindow picked players (oldest first)
// and reports the plurality position and how intense the run on it is.
//
// The thresholds are applied in sequence and a later match overwrites an
// earlier one, so three of the last three (70) is replaced by three of the
// last four (60) whenever both hold.
func DetectPositionalRun(recent []models.Player) RunInfo {
	if len(recent) > RunWindow {
		recent = recent[len(recent)-RunWindow:]
	}
	if len(recent) == 0 {
		return RunInfo{}
	}

	pos, total := plurality(recent)
	last3 := countLast(recent, pos, 3)
	last4 := countLast(recent, pos, 4)

	var intensity float64
	if last3 >= 2 {
		intensity = 40
	}
	if last3 >= 3 {
		intensity = 70
	}
	if last4 >= 3 {
		intensity = 60
	}
	if last4 >= 4 {
		intensity = 90
	}
	if total >= 4 {
		intensity = 100
	}

	if intensity == 0 {
		return RunInfo{}
	}
	return RunInfo{Position: pos, Intensity: intensity}
}

// plurality returns the most picked position in picks. Ties go to the
// position picked most recently.
func plurality(picks []models.Player) (models.Position, int) {
	counts := make(map[models.Position]int, len(models.AllPositions))
	lastSeen := make(map[models.Position]int, len(models.AllPositions))
	for i, p := range picks {
		counts[p.Position]++
		lastSeen[p.Position] = i
	}

	var best models.Position
	bestCount := 0
	for pos, n := range counts {
		if n > bestCount || (n == bestCount && lastSeen[pos] > lastSeen[best]) {
			best, bestCount = pos, n
		}
	}
	return best, bestCount
}

func countLast(picks []models.Player, pos models.Position, n int) int {
	if len(picks) > n {
		picks = picks[len(picks)-n:]
	}
	c := 0
	for _, p := range picks {
		if p.Position == pos {
			c++
		}
	}
	return c
}

// CalculatePanicScore returns how strongly an AI feels the pull of a run, in [0,100].
func CalculatePanicScore(run RunInfo, panicFactor, positionNeed float64) float64 {
	score := run.Intensity * panicFactor
	switch {
	case positionNeed > 70:
		score *= 1.5
	case positionNeed > 40:
		score *= 1.2
	}
	return math.Min(100, score)
}

// PanicThreshold is the panic score at which an AI abandons its board.
// Panic-prone profiles have a lower bar (50 at panicFactor 1, 80 at 0).
func PanicThreshold(panicFactor float64) float64 {
	return 50 + (1-panicFactor)*30
}

// ShouldPanicPick reports whether the run pushes the AI over its panic threshold.
func ShouldPanicPick(run RunInfo, panicFactor, positionNeed float64) bool {
	if !run.Active() {
		return false
	}
	return CalculatePanicScore(run, panicFactor, positionNeed) >= PanicThreshold(panicFactor)
}

// CalculatePanicBonus is the score bonus for a candidate at the run position.
func CalculatePanicBonus(player models.Player, run RunInfo, panicFactor float64) float64 {
	if !run.Active() || player.Position != run.Position {
		return 0
	}
	return run.Intensity * panicFactor * 0.8
}

// CalculateScarcityIndex measures in [0,100] how depleted the top of a position is.
// Top-tier players are available players with tier 1 or 2.
func CalculateScarcityIndex(pos models.Position, pool []models.Player, totalDrafted int) float64 {
	remaining := 0
	for _, p := range pool {
		if p.Position == pos && p.Tier > 0 && p.Tier <= 2 {
			remaining++
		}
	}

	depletion := 1 - math.Min(1, float64(remaining)/initialTopTier[pos])
	progress := math.Min(1, float64(totalDrafted)/180)

	scarcity := (depletion*70 + progress*30) * scarcityMultiplier[pos]
	return math.Max(0, math.Min(100, scarcity))
}

// CalculateReachPenalty penalises taking player well ahead of consensus.
// Reaches within 20*reachThreshold picks are free; beyond that the penalty
// grows as excess^1.5 * 5.
func CalculateReachPenalty(player models.Player, currentPick int, reachThreshold float64) float64 {
	reach := float64(currentPick) - player.ADP
	if reach <= 0 {
		return 0
	}
	excess := reach - 20*reachThreshold
	if excess <= 0 {
		return 0
	}
	return math.Pow(excess, 1.5) * 5
}

// CalculateFavoriteTeamBonus returns FavoriteTeamBonus if the player's team is a favorite.
func CalculateFavoriteTeamBonus(player models.Player, profile *models.AIProfile) float64 {
	if profile == nil || !profile.IsFavoriteTeam(player.Team) {
		return 0
	}
	return FavoriteTeamBonus
}
