package decision

import (
	"fmt"
	"math"

	"github.com/mcdev12/mockdraft/go/internal/models"
)

// Explanation is a readable account of why an AI would or would not take a player.
type Explanation struct {
	Score   Score    `json:"score"`
	Reasons []string `json:"reasons"`
}

// ExplainPick scores player for team against the current pool and turns the
// breakdown into short reasons, strongest signals first.
func (e *Engine) ExplainPick(player models.Player, team *models.Team, state *models.DraftState) Explanation {
	s := e.ScorePlayer(player, team, state, state.AvailablePlayers)
	return Explanation{Score: s, Reasons: reasons(s, state.CurrentPickIndex+1)}
}

func reasons(s Score, currentPick int) []string {
	b := s.Breakdown
	p := s.Player
	var out []string

	if b.Need >= 20 {
		out = append(out, fmt.Sprintf("Fills a roster need at %s", p.Position))
	}

	diff := p.ADP - float64(currentPick)
	switch {
	case diff >= 5:
		out = append(out, fmt.Sprintf("Value pick: available %.0f picks after ADP", diff))
	case diff <= -5:
		out = append(out, fmt.Sprintf("Reach: taken %.0f picks ahead of ADP", math.Abs(diff)))
	}

	if b.Run > 0 && b.RunInfo.Position == p.Position {
		out = append(out, fmt.Sprintf("Reacting to a %s run (intensity %.0f)", b.RunInfo.Position, b.RunInfo.Intensity))
	}

	switch {
	case b.LastInTier:
		out = append(out, fmt.Sprintf("Last %s left in tier %d", p.Position, p.Tier))
	case b.Tier >= 10:
		out = append(out, fmt.Sprintf("Tier %d %s is thinning out", p.Tier, p.Position))
	}

	if b.Scarcity >= 5 {
		out = append(out, fmt.Sprintf("%s is becoming scarce", p.Position))
	}
	if b.Bye < 0 {
		out = append(out, fmt.Sprintf("Bye week %d conflict with current roster", p.ByeWeek))
	}
	if b.FavoriteTeam > 0 {
		out = append(out, fmt.Sprintf("Favorite team pick (%s)", p.Team))
	}

	switch {
	case b.Risk > 0:
		out = append(out, "High-upside profile fits a risk-seeking style")
	case b.Risk < 0:
		out = append(out, "Risk profile is a concern for a cautious drafter")
	}

	if b.ReachPenalty > 0 {
		out = append(out, fmt.Sprintf("Reach penalty of %.1f", b.ReachPenalty))
	}

	if len(out) == 0 {
		out = append(out, "Best available by overall value")
	}
	return out
}
