package tiers

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/mockdraft/go/internal/models"
)

func players(pos models.Position, adps ...float64) []models.Player {
	out := make([]models.Player, len(adps))
	for i, adp := range adps {
		out[i] = models.Player{ID: fmt.Sprintf("%s-%d", pos, i), Position: pos, ADP: adp}
	}
	return out
}

func TestGapThreshold(t *testing.T) {
	assert.InDelta(t, 8.0, GapThreshold(models.PositionRB, 1), 1e-9)
	assert.InDelta(t, 9.6, GapThreshold(models.PositionRB, 2), 1e-9)
	assert.InDelta(t, 21.0, GapThreshold(models.PositionQB, 3), 1e-9)
	assert.InDelta(t, 20.0, GapThreshold(models.PositionK, 0), 1e-9)
}

func TestIdentifyTiers(t *testing.T) {
	rbs := players(models.PositionRB, 22, 1, 40, 5, 3, 20)

	got := IdentifyTiers(rbs)
	require.Len(t, got, 3)

	assert.Equal(t, 1, got[0].Number)
	assert.Len(t, got[0].Players, 3)
	assert.InDelta(t, 3.0, got[0].AverageADP, 1e-9)
	assert.Equal(t, 3, got[0].Remaining)

	// second tier threshold widens to 9.6, so 20 -> 22 stays together and 22 -> 40 splits
	assert.Equal(t, 2, got[1].Number)
	assert.Len(t, got[1].Players, 2)
	assert.InDelta(t, 21.0, got[1].AverageADP, 1e-9)

	assert.Equal(t, 3, got[2].Number)
	assert.Equal(t, 40.0, got[2].Players[0].ADP)

	// input order untouched
	assert.Equal(t, 22.0, rbs[0].ADP)
}

func TestIdentifyTiersEmpty(t *testing.T) {
	assert.Nil(t, IdentifyTiers(nil))
}

func TestIsLastInTier(t *testing.T) {
	rbs := players(models.PositionRB, 1, 3, 5, 20, 22, 40)
	pool := append(rbs, players(models.PositionWR, 6, 7)...)

	tests := map[string]struct {
		player   models.Player
		expected bool
	}{
		"top of tier":             {player: rbs[0], expected: false},
		"middle of tier":          {player: rbs[1], expected: false},
		"end of first tier":       {player: rbs[2], expected: true},
		"end of second tier":      {player: rbs[4], expected: true},
		"nothing behind":          {player: rbs[5], expected: true},
		"other positions ignored": {player: pool[6], expected: false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsLastInTier(tc.player, pool))
		})
	}
}

func TestCalculateTierUrgency(t *testing.T) {
	rbs := players(models.PositionRB, 1, 3, 5, 20, 22, 40)
	qbs := players(models.PositionQB, 10, 12, 14, 16, 18, 50)

	tests := map[string]struct {
		player      models.Player
		pool        []models.Player
		currentPick int
		expected    float64
	}{
		"three left in tier":              {player: rbs[2], pool: rbs, currentPick: 1, expected: 50},
		"two left and sliding":            {player: rbs[4], pool: rbs, currentPick: 5, expected: 80},
		"last one and sliding is clamped": {player: rbs[5], pool: rbs, currentPick: 1, expected: 100},
		"deep tier with cliff":            {player: qbs[0], pool: qbs, currentPick: 10, expected: 30},
		"single player pool":              {player: rbs[0], pool: rbs[:1], currentPick: 1, expected: 90},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, CalculateTierUrgency(tc.player, tc.pool, tc.currentPick), 1e-9)
		})
	}
}

func TestCalculateTierUrgencyPlayerNotInPool(t *testing.T) {
	rbs := players(models.PositionRB, 1, 3)
	outsider := models.Player{ID: "x", Position: models.PositionRB, ADP: 2}

	// the outsider joins the first tier for the calculation
	assert.InDelta(t, 50.0, CalculateTierUrgency(outsider, rbs, 1), 1e-9)
}
