package engine

import "github.com/google/uuid"

// GenerateDraftOrder expands the team order into one entry per pick using
// snake ordering: even round indexes run forward, odd ones run in reverse.
func GenerateDraftOrder(teamIDs []uuid.UUID, numRounds int) []uuid.UUID {
	numTeams := len(teamIDs)
	if numTeams == 0 || numRounds <= 0 {
		return nil
	}

	order := make([]uuid.UUID, 0, numTeams*numRounds)
	for round := 0; round < numRounds; round++ {
		if round%2 == 0 {
			order = append(order, teamIDs...)
			continue
		}
		for i := numTeams - 1; i >= 0; i-- {
			order = append(order, teamIDs[i])
		}
	}
	return order
}
