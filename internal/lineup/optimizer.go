package lineup

import (
	"slices"

	"github.com/omarshaarawi/benchwarmer/internal/models"
	"github.com/shopspring/decimal"
)

// Optimizer reconstructs the best lineup an owner could have set and audits
// the start/sit decisions they actually made. It holds no per-call state and
// is safe for concurrent use.
type Optimizer struct {
	eligibility Eligibility
}

func NewOptimizer(eligibility Eligibility) *Optimizer {
	return &Optimizer{eligibility: eligibility}
}

// queued tags a record with its position in starting+bench so a player can be
// tracked across slot changes. slot is where a starter began the week.
type queued struct {
	id     int
	slot   models.Slot
	record models.PlayerWeekRecord
}

// ComputeOptimalLineup greedily promotes bench players into the starting slot
// where they gain the most points. Every player pushed out of the lineup goes
// back on the queue and may land in another slot. The returned lineup has the
// same length and slot order as starting. displaced lists the original
// starters that ended the run outside the lineup, in the order they were
// pushed out, each with the slot it was started in.
func (o *Optimizer) ComputeOptimalLineup(starting, bench []models.PlayerWeekRecord) (lineup, displaced []models.PlayerWeekRecord, err error) {
	eligibility := o.eligibility.Widen(starting)

	slots := make([]queued, len(starting))
	for i, starter := range starting {
		slots[i] = queued{id: i, slot: starter.Slot, record: starter}
	}
	queue := make([]queued, len(bench))
	for i, player := range bench {
		queue[i] = queued{id: len(starting) + i, record: player}
	}

	var removed []queued
	for len(queue) > 0 {
		player := queue[0]
		queue = queue[1:]

		if player.record.Points <= 0 {
			continue
		}

		best := -1
		var bestGain float64
		for i, occupant := range slots {
			ok, err := eligibility.Fits(player.record.Position, occupant.record.Slot)
			if err != nil {
				return nil, nil, err
			}
			if !ok {
				continue
			}

			gain := player.record.Points - occupant.record.Points
			if round2(gain).GreaterThan(round2(bestGain)) {
				best = i
				bestGain = gain
			}
		}

		if best < 0 {
			continue
		}

		out := slots[best]
		queue = append(queue, out)

		removed = slices.DeleteFunc(removed, func(q queued) bool { return q.id == player.id })
		if !out.record.IsBench {
			benched := out
			benched.record.Slot = out.slot
			removed = append(removed, benched)
		}

		player.record.Slot = out.record.Slot
		slots[best] = player
	}

	lineup = make([]models.PlayerWeekRecord, len(slots))
	for i, q := range slots {
		lineup[i] = q.record
	}
	for _, q := range removed {
		displaced = append(displaced, q.record)
	}
	return lineup, displaced, nil
}

func round2(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

func totalPoints(records []models.PlayerWeekRecord) float64 {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(decimal.NewFromFloat(r.Points))
	}
	return total.Round(2).InexactFloat64()
}
