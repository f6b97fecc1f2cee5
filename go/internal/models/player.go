package models

// Player is a draftable player as delivered by the player-data collaborator.
// Players are never mutated during a draft.
type Player struct {
	ID              string   `json:"id" yaml:"id"`
	Name            string   `json:"name" yaml:"name"`
	Position        Position `json:"position" yaml:"position"`
	Team            string   `json:"team" yaml:"team"` // NFL team abbreviation
	ByeWeek         int      `json:"bye_week" yaml:"bye_week"`
	ADP             float64  `json:"adp" yaml:"adp"`
	Tier            int      `json:"tier" yaml:"tier"`
	ProjectedPoints float64  `json:"projected_points" yaml:"projected_points"`
	RiskScore       float64  `json:"risk_score" yaml:"risk_score"`       // 0-10
	CeilingScore    float64  `json:"ceiling_score" yaml:"ceiling_score"` // 0-100
	FloorScore      float64  `json:"floor_score" yaml:"floor_score"`     // 0-100
	InjuryStatus    *string  `json:"injury_status,omitempty" yaml:"injury_status,omitempty"`
}
