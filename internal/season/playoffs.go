package season

import (
	"log/slog"
	"slices"

	"github.com/omarshaarawi/benchwarmer/internal/models"
)

// SeedPlayoffs marks every division winner and then the best wildcards of the
// remaining teams as playoff teams. Nothing is marked when any division has
// fewer than minDivisionSize teams.
func SeedPlayoffs(standings []models.Standing, wildcards, minDivisionSize int) []models.Standing {
	seeded := slices.Clone(standings)
	for i := range seeded {
		seeded[i].MadePlayoffs = false
	}
	Sort(seeded)

	sizes := make(map[string]int)
	var divisions []string
	for _, s := range seeded {
		if _, ok := sizes[s.Division]; !ok {
			divisions = append(divisions, s.Division)
		}
		sizes[s.Division]++
	}
	for _, d := range divisions {
		if sizes[d] < minDivisionSize {
			slog.Debug("Skipping playoff seeding", "division", d, "teams", sizes[d], "minimum", minDivisionSize)
			return seeded
		}
	}

	won := make(map[string]bool)
	for i, s := range seeded {
		if !won[s.Division] {
			won[s.Division] = true
			seeded[i].MadePlayoffs = true
		}
	}

	for i := range seeded {
		if wildcards == 0 {
			break
		}
		if !seeded[i].MadePlayoffs {
			seeded[i].MadePlayoffs = true
			wildcards--
		}
	}

	return seeded
}
