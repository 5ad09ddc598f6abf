package lineup

import (
	"github.com/omarshaarawi/benchwarmer/internal/models"
	"github.com/shopspring/decimal"
)

// DetectAllWrongDecisions compares every bench player against every starter
// whose slot they could have filled and reports each pairing where the bench
// player scored more. A starter can appear once per bench player that beat
// them.
func (o *Optimizer) DetectAllWrongDecisions(starting, bench []models.PlayerWeekRecord) ([]models.WrongDecision, error) {
	return o.scan(starting, bench, models.BasisActual)
}

// DetectProjectedWrongDecisions is DetectAllWrongDecisions keyed on the
// pre-game projection: it flags benchings the projections argued against.
// Bench players without a projection are skipped, as are starters without one
// unless the slot was left empty.
func (o *Optimizer) DetectProjectedWrongDecisions(starting, bench []models.PlayerWeekRecord) ([]models.WrongDecision, error) {
	return o.scan(starting, bench, models.BasisProjected)
}

func (o *Optimizer) scan(starting, bench []models.PlayerWeekRecord, basis models.DecisionBasis) ([]models.WrongDecision, error) {
	eligibility := o.eligibility.Widen(starting)

	var decisions []models.WrongDecision
	for _, benchPlayer := range bench {
		benchValue, ok := value(benchPlayer, basis)
		if !ok {
			continue
		}

		for _, starter := range starting {
			fits, err := eligibility.Fits(benchPlayer.Position, starter.Slot)
			if err != nil {
				return nil, err
			}
			if !fits {
				continue
			}

			starterValue, ok := value(starter, basis)
			if !ok {
				continue
			}
			if benchValue > starterValue {
				decisions = append(decisions, newWrongDecision(starter, benchPlayer, benchValue, starterValue, basis))
			}
		}
	}
	return decisions, nil
}

// DetectOptimalWrongDecisions explains an optimal lineup as one swap per
// displaced starter: each is paired with the first promoted bench player,
// not yet paired, who could have played the starter's original slot.
// Cascading moves can leave a displaced starter without a partner.
// starting is the original lineup and only feeds eligibility widening.
func (o *Optimizer) DetectOptimalWrongDecisions(starting, displaced, final []models.PlayerWeekRecord) ([]models.WrongDecision, error) {
	eligibility := o.eligibility.Widen(starting)

	matched := make([]bool, len(final))
	var decisions []models.WrongDecision
	for _, starter := range displaced {
		for i, player := range final {
			if !player.IsBench || matched[i] {
				continue
			}

			fits, err := eligibility.Fits(player.Position, starter.Slot)
			if err != nil {
				return nil, err
			}
			if !fits {
				continue
			}

			matched[i] = true
			decisions = append(decisions, newWrongDecision(starter, player, player.Points, starter.Points, models.BasisActual))
			break
		}
	}
	return decisions, nil
}

func value(r models.PlayerWeekRecord, basis models.DecisionBasis) (float64, bool) {
	if basis == models.BasisActual {
		return r.Points, true
	}
	if r.HasProjection {
		return r.Projection, true
	}
	return 0, r.IsPlaceholder()
}

func newWrongDecision(starter, benchPlayer models.PlayerWeekRecord, benchValue, starterValue float64, basis models.DecisionBasis) models.WrongDecision {
	lost := decimal.NewFromFloat(benchValue).Sub(decimal.NewFromFloat(starterValue)).Round(2)
	return models.WrongDecision{
		Owner:           starter.Owner,
		Week:            starter.Week,
		ReplacedStarter: starter.PlayerName,
		BenchPlayer:     benchPlayer.PlayerName,
		PointsLost:      lost.InexactFloat64(),
		Basis:           basis,
	}
}
