// Package needs evaluates how badly a team needs each position given its
// roster, the league's roster slots and the current round.
package needs

import (
	"math"

	"github.com/mcdev12/mockdraft/go/internal/models"
)

const (
	earlyRoundCutoff = 5
	lateRoundStart   = 12
)

// TargetComposition returns how many players a team should roster at each position.
// RB and WR share the FLEX slots and most of the bench; QB and TE get a small bench share.
func TargetComposition(slots models.RosterSettings) map[models.Position]float64 {
	bench := float64(slots.Bench)
	flex := float64(slots.FLEX)
	return map[models.Position]float64{
		models.PositionQB:  float64(slots.QB) + bench*0.1,
		models.PositionRB:  float64(slots.RB) + flex*0.5 + bench*0.35,
		models.PositionWR:  float64(slots.WR) + flex*0.5 + bench*0.35,
		models.PositionTE:  float64(slots.TE) + bench*0.1,
		models.PositionK:   float64(slots.K),
		models.PositionDEF: float64(slots.DEF),
	}
}

// CalculateTeamNeeds returns a need score in [0,100] per position.
func CalculateTeamNeeds(team *models.Team, settings models.DraftSettings, currentRound int) map[models.Position]float64 {
	targets := TargetComposition(settings.RosterSlots)
	out := make(map[models.Position]float64, len(models.AllPositions))

	for _, pos := range models.AllPositions {
		rostered := float64(team.CountAt(pos))
		need := positionNeed(rostered, targets[pos])

		if currentRound <= earlyRoundCutoff {
			switch pos {
			case models.PositionK, models.PositionDEF:
				need *= 0.3
			case models.PositionQB:
				need *= 0.7
			}
		}

		if currentRound >= lateRoundStart && rostered == 0 &&
			(pos == models.PositionK || pos == models.PositionDEF) {
			need = 100
		}

		out[pos] = need
	}
	return out
}

func positionNeed(rostered, target float64) float64 {
	switch {
	case rostered == 0:
		return 100
	case rostered < target:
		return 80 - (rostered/target)*30
	case rostered == target:
		return 40
	default:
		return math.Max(0, 30-10*(rostered-target))
	}
}

// CalculateNeedValue scores in [0,100] how much drafting player fills a hole on team.
func CalculateNeedValue(team *models.Team, player models.Player, settings models.DraftSettings, currentRound int) float64 {
	need := CalculateTeamNeeds(team, settings, currentRound)[player.Position]

	value := need
	if team.CountAt(player.Position) == 0 {
		value *= 1.3
	}
	if need > 70 && player.Tier >= 1 && player.Tier <= 3 {
		value *= 1.2
	}
	return math.Min(100, value)
}
