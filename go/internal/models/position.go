package models

import (
	"fmt"
	"strings"
)

// Position is a fantasy-relevant NFL roster position.
type Position string

const (
	PositionQB  Position = "QB"
	PositionRB  Position = "RB"
	PositionWR  Position = "WR"
	PositionTE  Position = "TE"
	PositionK   Position = "K"
	PositionDEF Position = "DEF"
)

// AllPositions lists every draftable position in display order.
var AllPositions = []Position{
	PositionQB,
	PositionRB,
	PositionWR,
	PositionTE,
	PositionK,
	PositionDEF,
}

// ParsePosition converts a provider position string into a Position.
// Unknown positions are rejected rather than mapped to a default.
func ParsePosition(pos string) (Position, error) {
	switch strings.ToUpper(strings.TrimSpace(pos)) {
	case "QB":
		return PositionQB, nil
	case "RB":
		return PositionRB, nil
	case "WR":
		return PositionWR, nil
	case "TE":
		return PositionTE, nil
	case "K", "PK":
		return PositionK, nil
	case "DEF", "DST", "D/ST":
		return PositionDEF, nil
	default:
		return "", fmt.Errorf("unknown position %q", pos)
	}
}

// Valid reports whether p is one of the draftable positions.
func (p Position) Valid() bool {
	switch p {
	case PositionQB, PositionRB, PositionWR, PositionTE, PositionK, PositionDEF:
		return true
	}
	return false
}

// UnmarshalText lets positions be decoded from JSON and YAML strings.
func (p *Position) UnmarshalText(text []byte) error {
	parsed, err := ParsePosition(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
