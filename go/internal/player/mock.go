package player

import (
	"fmt"
	"math"
	rand "math/rand/v2"

	"github.com/mcdev12/mockdraft/go/internal/ai/tiers"
	"github.com/mcdev12/mockdraft/go/internal/models"
)

// mockShape describes how a position is spread across a mock ADP board.
// Each index in tierBreaks opens a new tier with an ADP cliff wide enough to
// clear the tier gap threshold despite jitter.
type mockShape struct {
	count      int
	firstADP   float64
	spacing    float64
	topPoints  float64
	decay      float64
	tierBreaks []int
}

var mockShapes = map[models.Position]mockShape{
	models.PositionRB:  {count: 60, firstADP: 1, spacing: 2.4, topPoints: 330, decay: 3.6, tierBreaks: []int{6, 14, 26}},
	models.PositionWR:  {count: 72, firstADP: 2, spacing: 2.1, topPoints: 320, decay: 3.0, tierBreaks: []int{6, 16, 30}},
	models.PositionQB:  {count: 28, firstADP: 22, spacing: 5, topPoints: 390, decay: 6.5, tierBreaks: []int{3, 8, 15}},
	models.PositionTE:  {count: 26, firstADP: 16, spacing: 5.5, topPoints: 250, decay: 6, tierBreaks: []int{2, 6, 12}},
	models.PositionK:   {count: 16, firstADP: 135, spacing: 4, topPoints: 150, decay: 2.5, tierBreaks: []int{5}},
	models.PositionDEF: {count: 18, firstADP: 120, spacing: 4, topPoints: 140, decay: 3, tierBreaks: []int{5}},
}

// mockJitter is the half-width of the random ADP offset.
const mockJitter = 1.5

// cliff is the extra ADP added at each tier break. Two base gaps clear the
// threshold of every tier up to the sixth.
func (s mockShape) cliff(pos models.Position) float64 {
	return 2*tiers.GapThreshold(pos, 1) + 2*mockJitter
}

// cliffsBefore counts the tier breaks at or before index i.
func (s mockShape) cliffsBefore(i int) int {
	n := 0
	for _, b := range s.tierBreaks {
		if b <= i {
			n++
		}
	}
	return n
}

var (
	firstNames = []string{
		"Aaron", "Brandon", "Calvin", "Darius", "Eli", "Frank", "Garrett", "Hunter",
		"Isaiah", "Jalen", "Kendall", "Lamar", "Marcus", "Nate", "Omar", "Preston",
		"Quentin", "Rashad", "Trey", "Tyrell", "Victor", "Wes", "Xavier", "Zach",
	}
	lastNames = []string{
		"Adams", "Brooks", "Carter", "Dawson", "Ellis", "Foster", "Griffin", "Hayes",
		"Irving", "Jackson", "Keller", "Lawson", "Mitchell", "Nelson", "Owens", "Parker",
		"Reed", "Sanders", "Turner", "Underwood", "Vaughn", "Walker", "Young", "Zimmerman",
	}
)

const questionable = "Questionable"

// MockPool generates a realistic player pool from rng. The same generator
// state always yields the same pool.
func MockPool(rng *rand.Rand) []models.Player {
	var players []models.Player

	for _, pos := range models.AllPositions {
		shape := mockShapes[pos]
		teams := rng.Perm(len(models.NFLTeams))

		for i := 0; i < shape.count; i++ {
			team := models.NFLTeams[teams[i%len(teams)]]
			adp := shape.firstADP + float64(i)*shape.spacing +
				float64(shape.cliffsBefore(i))*shape.cliff(pos) +
				(rng.Float64()*2-1)*mockJitter
			adp = math.Max(1, math.Round(adp*10)/10)

			name := fmt.Sprintf("%s %s", firstNames[rng.IntN(len(firstNames))], lastNames[rng.IntN(len(lastNames))])
			if pos == models.PositionDEF {
				name = fmt.Sprintf("%s %s", team.City, team.Name)
			}

			points := math.Max(40, shape.topPoints-float64(i)*shape.decay+rng.Float64()*20-10)
			risk := math.Round((1+rng.Float64()*8)*10) / 10

			p := models.Player{
				ID:              fmt.Sprintf("mock-%s-%02d", pos, i+1),
				Name:            name,
				Position:        pos,
				Team:            team.Code,
				ByeWeek:         team.ByeWeek,
				ADP:             adp,
				ProjectedPoints: math.Round(points*10) / 10,
				RiskScore:       risk,
				CeilingScore:    math.Min(100, points/4+risk*3),
				FloorScore:      math.Max(0, points/4-risk*3),
			}
			if rng.Float64() < 0.05 {
				status := questionable
				p.InjuryStatus = &status
			}
			players = append(players, p)
		}
	}

	// Prepare cannot fail here: ids are unique and every field is in range.
	pool, _ := Prepare(players)
	return pool
}
