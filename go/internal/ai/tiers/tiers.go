// Package tiers partitions a position's player pool into quality tiers
// separated by gaps in average draft position.
package tiers

import (
	"math"
	"sort"

	"github.com/mcdev12/mockdraft/go/internal/models"
)

// baseGap is the ADP gap that opens a new tier at each position.
var baseGap = map[models.Position]float64{
	models.PositionQB:  15,
	models.PositionRB:  8,
	models.PositionWR:  10,
	models.PositionTE:  12,
	models.PositionK:   20,
	models.PositionDEF: 18,
}

// Tier is a cluster of players at one position with similar ADP.
type Tier struct {
	Number     int             `json:"number"` // 1-indexed
	Players    []models.Player `json:"players"`
	AverageADP float64         `json:"average_adp"`
	Remaining  int             `json:"remaining"`
}

// GapThreshold returns the ADP gap that ends tier tierNumber at pos.
// Deeper tiers tolerate wider gaps, 20% per tier beyond the first.
func GapThreshold(pos models.Position, tierNumber int) float64 {
	if tierNumber < 1 {
		tierNumber = 1
	}
	return baseGap[pos] * (1 + 0.2*float64(tierNumber-1))
}

// IdentifyTiers splits players at a single position into tiers. The input is
// not modified.
func IdentifyTiers(players []models.Player) []Tier {
	if len(players) == 0 {
		return nil
	}

	sorted := append([]models.Player(nil), players...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ADP < sorted[j].ADP })

	pos := sorted[0].Position
	var tiers []Tier
	current := Tier{Number: 1, Players: []models.Player{sorted[0]}}

	for i := 1; i < len(sorted); i++ {
		gap := sorted[i].ADP - sorted[i-1].ADP
		if gap > GapThreshold(pos, current.Number) {
			tiers = append(tiers, finish(current))
			current = Tier{Number: current.Number + 1}
		}
		current.Players = append(current.Players, sorted[i])
	}
	return append(tiers, finish(current))
}

func finish(t Tier) Tier {
	sum := 0.0
	for _, p := range t.Players {
		sum += p.ADP
	}
	t.AverageADP = sum / float64(len(t.Players))
	t.Remaining = len(t.Players)
	return t
}

// IsLastInTier reports whether player is the last representative of its tier
// still on the board.
func IsLastInTier(player models.Player, pool []models.Player) bool {
	next, ok := nextAtPosition(player, pool)
	if !ok {
		return true
	}

	tierList, idx := tierFor(player, pool)
	return next.ADP-player.ADP > GapThreshold(player.Position, tierList[idx].Number)
}

// CalculateTierUrgency scores in [0,100] how urgent it is to take player before
// its tier dries up.
func CalculateTierUrgency(player models.Player, pool []models.Player, currentPick int) float64 {
	tierList, idx := tierFor(player, pool)
	remaining := tierList[idx].Remaining

	var urgency float64
	switch remaining {
	case 1:
		urgency = 90
	case 2:
		urgency = 70
	case 3:
		urgency = 50
	default:
		urgency = math.Max(0, 40-5*float64(remaining))
	}

	// Steep drop to the next tier.
	if idx+1 < len(tierList) && tierList[idx+1].Players[0].ADP-player.ADP > 20 {
		urgency += 15
	}

	// Player is going later than consensus while the tier is nearly empty.
	if player.ADP-float64(currentPick) > 10 && remaining <= 2 {
		urgency += 10
	}

	return clamp(urgency, 0, 100)
}

// tierFor partitions the available players at player's position and returns
// the tiers together with the index of the tier holding player. The player is
// included even when it is not part of pool.
func tierFor(player models.Player, pool []models.Player) ([]Tier, int) {
	same := []models.Player{player}
	for _, p := range pool {
		if p.Position == player.Position && p.ID != player.ID {
			same = append(same, p)
		}
	}

	tierList := IdentifyTiers(same)
	for i, t := range tierList {
		for _, p := range t.Players {
			if p.ID == player.ID {
				return tierList, i
			}
		}
	}
	// unreachable: player is always part of same
	return tierList, 0
}

func nextAtPosition(player models.Player, pool []models.Player) (models.Player, bool) {
	var next models.Player
	found := false
	for _, p := range pool {
		if p.Position != player.Position || p.ID == player.ID || p.ADP <= player.ADP {
			continue
		}
		if !found || p.ADP < next.ADP {
			next = p
			found = true
		}
	}
	return next, found
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
