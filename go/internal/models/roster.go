package models

import (
	"errors"
	"fmt"
)

// RosterSettings holds the number of roster slots per lineup position.
type RosterSettings struct {
	QB    int `json:"qb" yaml:"qb"`
	RB    int `json:"rb" yaml:"rb"`
	WR    int `json:"wr" yaml:"wr"`
	TE    int `json:"te" yaml:"te"`
	FLEX  int `json:"flex" yaml:"flex"`
	K     int `json:"k" yaml:"k"`
	DEF   int `json:"def" yaml:"def"`
	Bench int `json:"bench" yaml:"bench"`
}

// DefaultRosterSettings is the common 1QB/2RB/2WR/1TE/1FLEX/K/DEF lineup with six bench spots.
func DefaultRosterSettings() RosterSettings {
	return RosterSettings{QB: 1, RB: 2, WR: 2, TE: 1, FLEX: 1, K: 1, DEF: 1, Bench: 6}
}

// Total returns the total number of roster slots.
func (r RosterSettings) Total() int {
	return r.QB + r.RB + r.WR + r.TE + r.FLEX + r.K + r.DEF + r.Bench
}

// Validate rejects negative slot counts.
func (r RosterSettings) Validate() error {
	counts := []struct {
		name string
		n    int
	}{
		{"qb", r.QB}, {"rb", r.RB}, {"wr", r.WR}, {"te", r.TE},
		{"flex", r.FLEX}, {"k", r.K}, {"def", r.DEF}, {"bench", r.Bench},
	}
	var errs []error
	for _, c := range counts {
		if c.n < 0 {
			errs = append(errs, fmt.Errorf("roster slots %s must not be negative, got %d", c.name, c.n))
		}
	}
	return errors.Join(errs...)
}

// Slots returns the dedicated starting slots for pos (FLEX and bench excluded).
func (r RosterSettings) Slots(pos Position) int {
	switch pos {
	case PositionQB:
		return r.QB
	case PositionRB:
		return r.RB
	case PositionWR:
		return r.WR
	case PositionTE:
		return r.TE
	case PositionK:
		return r.K
	case PositionDEF:
		return r.DEF
	default:
		return 0
	}
}

// RosterComposition counts rostered players per position.
type RosterComposition map[Position]int
