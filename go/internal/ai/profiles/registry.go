// Package profiles holds the AI personality registry: the built-in archetypes
// plus any custom profiles loaded at startup.
package profiles

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/mcdev12/mockdraft/go/internal/models"
)

// Built-in profile ids.
const (
	Analyst     = "analyst"
	Gambler     = "gambler"
	Homer       = "homer"
	Reactor     = "reactor"
	ValueHunter = "value_hunter"
	Balanced    = "balanced"
	BestAvail   = "bpa"
)

// ErrProfileNotFound is returned when a profile id is not registered.
var ErrProfileNotFound = errors.New("ai profile not found")

func neutral(overrides map[models.Position]float64) map[models.Position]float64 {
	prefs := map[models.Position]float64{
		models.PositionQB:  1.0,
		models.PositionRB:  1.0,
		models.PositionWR:  1.0,
		models.PositionTE:  1.0,
		models.PositionK:   1.0,
		models.PositionDEF: 1.0,
	}
	for pos, v := range overrides {
		prefs[pos] = v
	}
	return prefs
}

func builtins() []models.AIProfile {
	return []models.AIProfile{
		{
			ID:                   Analyst,
			Name:                 "The Analyst",
			Description:          "Trusts the projections, avoids risk, plans around bye weeks",
			RiskTolerance:        0.2,
			PositionalPreference: neutral(map[models.Position]float64{models.PositionRB: 1.05, models.PositionWR: 1.05, models.PositionK: 0.8, models.PositionDEF: 0.8}),
			ReachThreshold:       0.2,
			PanicFactor:          0.15,
			ByeWeekAwareness:     0.9,
		},
		{
			ID:                   Gambler,
			Name:                 "The Gambler",
			Description:          "Chases upside, reaches for breakouts, ignores bye weeks",
			RiskTolerance:        0.9,
			PositionalPreference: neutral(map[models.Position]float64{models.PositionRB: 1.1, models.PositionWR: 1.1, models.PositionK: 0.7, models.PositionDEF: 0.7}),
			ReachThreshold:       0.8,
			PanicFactor:          0.5,
			ByeWeekAwareness:     0.0,
		},
		{
			ID:                   Homer,
			Name:                 "The Homer",
			Description:          "Loves players from a few favorite teams",
			RiskTolerance:        0.5,
			PositionalPreference: neutral(nil),
			ReachThreshold:       0.5,
			PanicFactor:          0.5,
			ByeWeekAwareness:     0.5,
			FavoriteTeams:        []string{"DAL", "GB", "KC", "PHI"},
		},
		{
			ID:                   Reactor,
			Name:                 "The Reactor",
			Description:          "Jumps on every positional run",
			RiskTolerance:        0.5,
			PositionalPreference: neutral(nil),
			ReachThreshold:       0.6,
			PanicFactor:          0.95,
			ByeWeekAwareness:     0.4,
		},
		{
			ID:                   ValueHunter,
			Name:                 "The Value Hunter",
			Description:          "Never reaches, waits for players to fall",
			RiskTolerance:        0.4,
			PositionalPreference: neutral(nil),
			ReachThreshold:       0.05,
			PanicFactor:          0.2,
			ByeWeekAwareness:     0.6,
		},
		{
			ID:                   Balanced,
			Name:                 "The Balanced Drafter",
			Description:          "Middle of the road on every factor",
			RiskTolerance:        0.5,
			PositionalPreference: neutral(nil),
			ReachThreshold:       0.5,
			PanicFactor:          0.5,
			ByeWeekAwareness:     0.5,
		},
		{
			ID:                   BestAvail,
			Name:                 "Best Player Available",
			Description:          "Sticks to the board and rarely reacts to the room",
			RiskTolerance:        0.5,
			PositionalPreference: neutral(map[models.Position]float64{models.PositionK: 0.9, models.PositionDEF: 0.9}),
			ReachThreshold:       0.1,
			PanicFactor:          0.1,
			ByeWeekAwareness:     0.2,
		},
	}
}

// Registry is a concurrency-safe set of AI profiles. Profiles handed out are
// copies; callers cannot change what is registered.
type Registry struct {
	mu       sync.RWMutex
	profiles map[string]models.AIProfile
	order    []string
}

// NewRegistry returns a registry preloaded with the built-in archetypes.
func NewRegistry() *Registry {
	r := &Registry{profiles: make(map[string]models.AIProfile)}
	for _, p := range builtins() {
		r.profiles[p.ID] = p
		r.order = append(r.order, p.ID)
	}
	return r
}

// Get returns a copy of the profile with the given id.
func (r *Registry) Get(id string) (*models.AIProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}
	return clone(p), nil
}

// All returns copies of every registered profile in registration order.
func (r *Registry) All() []models.AIProfile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.AIProfile, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *clone(r.profiles[id]))
	}
	return out
}

// Register validates and adds a custom profile.
func (r *Registry) Register(p models.AIProfile) error {
	if err := Validate(p); err != nil {
		return fmt.Errorf("invalid profile %q: %w", p.ID, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.profiles[p.ID]; exists {
		return fmt.Errorf("profile %q already registered", p.ID)
	}
	p.PositionalPreference = neutral(p.PositionalPreference)
	r.profiles[p.ID] = *clone(p)
	r.order = append(r.order, p.ID)
	return nil
}

// AssignProfiles picks n profiles by walking a repeating cycle of the registry,
// reshuffling the cycle each time it is exhausted, so every profile is used
// before any repeats.
func (r *Registry) AssignProfiles(n int, rng *rand.Rand) []*models.AIProfile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.AIProfile, 0, n)
	var cycle []string
	for len(out) < n {
		if len(cycle) == 0 {
			cycle = append([]string(nil), r.order...)
			rng.Shuffle(len(cycle), func(i, j int) { cycle[i], cycle[j] = cycle[j], cycle[i] })
		}
		out = append(out, clone(r.profiles[cycle[0]]))
		cycle = cycle[1:]
	}
	return out
}

// Validate checks that every factor is in range.
func Validate(p models.AIProfile) error {
	if p.ID == "" {
		return errors.New("id is required")
	}
	factors := map[string]float64{
		"risk_tolerance":     p.RiskTolerance,
		"reach_threshold":    p.ReachThreshold,
		"panic_factor":       p.PanicFactor,
		"bye_week_awareness": p.ByeWeekAwareness,
	}
	for name, v := range factors {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %v", name, v)
		}
	}
	for pos, v := range p.PositionalPreference {
		if !pos.Valid() {
			return fmt.Errorf("unknown position %q in positional_preference", pos)
		}
		if v <= 0 {
			return fmt.Errorf("positional_preference for %s must be positive, got %v", pos, v)
		}
	}
	return nil
}

type profileFile struct {
	Profiles []models.AIProfile `yaml:"profiles"`
}

// LoadCustomProfiles reads custom profiles from a YAML file and registers them.
// It returns the number of profiles added.
func (r *Registry) LoadCustomProfiles(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read profiles file: %w", err)
	}

	var file profileFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return 0, fmt.Errorf("failed to parse profiles file: %w", err)
	}

	for i, p := range file.Profiles {
		if err := r.Register(p); err != nil {
			return i, err
		}
	}
	return len(file.Profiles), nil
}

func clone(p models.AIProfile) *models.AIProfile {
	c := p
	c.PositionalPreference = make(map[models.Position]float64, len(p.PositionalPreference))
	for k, v := range p.PositionalPreference {
		c.PositionalPreference[k] = v
	}
	c.FavoriteTeams = append([]string(nil), p.FavoriteTeams...)
	return &c
}
