package lineup

import (
	"fmt"

	"github.com/omarshaarawi/benchwarmer/internal/models"
)

// AuditTeamWeek runs the optimizer and all three decision scans for one side
// of a matchup.
func (o *Optimizer) AuditTeamWeek(tw models.TeamWeek) (models.TeamWeekAudit, error) {
	optimal, displaced, err := o.ComputeOptimalLineup(tw.Starting, tw.Bench)
	if err != nil {
		return models.TeamWeekAudit{}, fmt.Errorf("optimizing %s week %d: %w", tw.Owner, tw.Week, err)
	}

	all, err := o.DetectAllWrongDecisions(tw.Starting, tw.Bench)
	if err != nil {
		return models.TeamWeekAudit{}, fmt.Errorf("scanning %s week %d: %w", tw.Owner, tw.Week, err)
	}

	projected, err := o.DetectProjectedWrongDecisions(tw.Starting, tw.Bench)
	if err != nil {
		return models.TeamWeekAudit{}, fmt.Errorf("scanning projections for %s week %d: %w", tw.Owner, tw.Week, err)
	}

	optimalDecisions, err := o.DetectOptimalWrongDecisions(tw.Starting, displaced, optimal)
	if err != nil {
		return models.TeamWeekAudit{}, fmt.Errorf("explaining %s week %d: %w", tw.Owner, tw.Week, err)
	}

	return models.TeamWeekAudit{
		Week:              tw.Week,
		TeamID:            tw.TeamID,
		Owner:             tw.Owner,
		TeamName:          tw.TeamName,
		Opponent:          tw.Opponent,
		Starting:          tw.Starting,
		Bench:             tw.Bench,
		OptimalLineup:     optimal,
		DisplacedStarters: displaced,
		ActualPoints:      totalPoints(tw.Starting),
		OptimalPoints:     totalPoints(optimal),
		AllDecisions:      all,
		OptimalDecisions:  optimalDecisions,
		ProjectedMisses:   projected,
	}, nil
}
