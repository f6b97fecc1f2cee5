// Package player supplies the draftable player pool, either from a data file
// or from a seeded mock generator.
package player

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/mcdev12/mockdraft/go/internal/ai/tiers"
	"github.com/mcdev12/mockdraft/go/internal/models"
)

// Decoder unmarshals raw pool data into v.
type Decoder func(data []byte, v any) error

// decoderRegistry maps file extensions to decoders
type decoderRegistry struct {
	mu       sync.RWMutex
	decoders map[string]Decoder
}

var registry = &decoderRegistry{
	decoders: map[string]Decoder{
		".json": json.Unmarshal,
		".yaml": yaml.Unmarshal,
		".yml":  yaml.Unmarshal,
	},
}

// RegisterDecoder registers a decoder for a file extension such as ".toml".
func RegisterDecoder(ext string, d Decoder) error {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		return fmt.Errorf("extension %q must start with a dot", ext)
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	if _, exists := registry.decoders[ext]; exists {
		return fmt.Errorf("decoder for %s already registered", ext)
	}
	registry.decoders[ext] = d
	return nil
}

func decoderFor(path string) (Decoder, error) {
	ext := strings.ToLower(filepath.Ext(path))

	registry.mu.RLock()
	defer registry.mu.RUnlock()

	d, ok := registry.decoders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return d, nil
}

type poolFile struct {
	Players []models.Player `json:"players" yaml:"players"`
}

// LoadPool reads a pool file. The file holds either a list of players or an
// object with a "players" list. Missing bye weeks are filled from the team
// table and missing tiers are derived from ADP.
func LoadPool(path string) ([]models.Player, error) {
	decode, err := decoderFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read player pool: %w", err)
	}
	return parsePool(data, decode)
}

func parsePool(data []byte, decode Decoder) ([]models.Player, error) {
	var file poolFile
	if err := decode(data, &file); err != nil {
		// fall back to a bare list
		var list []models.Player
		if listErr := decode(data, &list); listErr != nil {
			return nil, fmt.Errorf("failed to parse player pool: %w", err)
		}
		file.Players = list
	}

	return Prepare(file.Players)
}

// Prepare validates players, fills derived fields and sorts them by ADP.
func Prepare(players []models.Player) ([]models.Player, error) {
	if len(players) == 0 {
		return nil, ErrEmptyPool
	}

	seen := make(map[string]bool, len(players))
	out := make([]models.Player, 0, len(players))
	var errs []error
	needTiers := false

	for i, p := range players {
		switch {
		case p.ID == "":
			errs = append(errs, fmt.Errorf("player %d: id is required", i))
			continue
		case seen[p.ID]:
			errs = append(errs, fmt.Errorf("player %s: duplicate id", p.ID))
			continue
		case !p.Position.Valid():
			errs = append(errs, fmt.Errorf("player %s: invalid position %q", p.ID, p.Position))
			continue
		case p.ADP <= 0:
			errs = append(errs, fmt.Errorf("player %s: adp must be positive", p.ID))
			continue
		}
		seen[p.ID] = true

		if p.ByeWeek == 0 {
			p.ByeWeek = models.ByeWeekFor(p.Team)
		}
		if p.Tier == 0 {
			needTiers = true
		}
		out = append(out, p)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid player pool: %w", err)
	}

	if needTiers {
		assigned := AssignTiers(out)
		for i := range out {
			if out[i].Tier == 0 {
				out[i].Tier = assigned[i].Tier
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ADP < out[j].ADP })
	return out, nil
}

// AssignTiers returns a copy of players with Tier set from ADP gaps at each position.
func AssignTiers(players []models.Player) []models.Player {
	byPos := make(map[models.Position][]models.Player)
	for _, p := range players {
		byPos[p.Position] = append(byPos[p.Position], p)
	}

	tierOf := make(map[string]int, len(players))
	for _, group := range byPos {
		for _, t := range tiers.IdentifyTiers(group) {
			for _, p := range t.Players {
				tierOf[p.ID] = t.Number
			}
		}
	}

	out := make([]models.Player, len(players))
	for i, p := range players {
		p.Tier = tierOf[p.ID]
		out[i] = p
	}
	return out
}
