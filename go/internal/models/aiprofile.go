package models

// AIProfile is the personality that drives an AI team's pick selection.
// All factors are in [0,1] unless noted.
type AIProfile struct {
	ID                   string               `json:"id" yaml:"id"`
	Name                 string               `json:"name" yaml:"name"`
	Description          string               `json:"description" yaml:"description"`
	RiskTolerance        float64              `json:"risk_tolerance" yaml:"risk_tolerance"`
	PositionalPreference map[Position]float64 `json:"positional_preference" yaml:"positional_preference"` // multiplier, 1.0 = neutral
	ReachThreshold       float64              `json:"reach_threshold" yaml:"reach_threshold"`
	PanicFactor          float64              `json:"panic_factor" yaml:"panic_factor"`
	ByeWeekAwareness     float64              `json:"bye_week_awareness" yaml:"bye_week_awareness"`
	FavoriteTeams        []string             `json:"favorite_teams,omitempty" yaml:"favorite_teams,omitempty"`
}

// Preference returns the positional multiplier for pos, defaulting to 1.0.
func (p *AIProfile) Preference(pos Position) float64 {
	if v, ok := p.PositionalPreference[pos]; ok {
		return v
	}
	return 1.0
}

// IsFavoriteTeam reports whether the NFL team abbreviation is one of the profile's favorites.
func (p *AIProfile) IsFavoriteTeam(team string) bool {
	for _, t := range p.FavoriteTeams {
		if t == team {
			return true
		}
	}
	return false
}
