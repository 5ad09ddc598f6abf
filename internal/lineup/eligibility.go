package lineup

import (
	"errors"
	"fmt"
	"slices"

	"github.com/omarshaarawi/benchwarmer/internal/models"
)

var ErrUnknownSlot = errors.New("unknown lineup slot")

// Eligibility maps each starting slot to the player positions allowed in it.
// Values are never mutated after construction; Widen returns a new value.
type Eligibility struct {
	slots map[models.Slot][]models.Position
}

func DefaultEligibility() Eligibility {
	return NewEligibility(map[models.Slot][]models.Position{
		models.SlotQB:     {models.PositionQB},
		models.SlotRB:     {models.PositionRB},
		models.SlotWR:     {models.PositionWR},
		models.SlotTE:     {models.PositionTE},
		models.SlotDEF:    {models.PositionDefense},
		models.SlotFlex:   {models.PositionRB, models.PositionWR},
		models.SlotExFlex: {models.PositionRB, models.PositionWR, models.PositionTE},
	})
}

func NewEligibility(table map[models.Slot][]models.Position) Eligibility {
	slots := make(map[models.Slot][]models.Position, len(table))
	for slot, positions := range table {
		slots[slot] = slices.Clone(positions)
	}
	return Eligibility{slots: slots}
}

func (e Eligibility) positions(slot models.Slot) ([]models.Position, error) {
	positions, ok := e.slots[slot]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSlot, slot)
	}
	return positions, nil
}

// Fits reports whether a player at pos may occupy slot. Asking about a slot
// outside the table is an error, not a false.
func (e Eligibility) Fits(pos models.Position, slot models.Slot) (bool, error) {
	positions, err := e.positions(slot)
	if err != nil {
		return false, fmt.Errorf("%w (position %q)", err, pos)
	}
	return slices.Contains(positions, pos), nil
}

// Widen derives the eligibility for one roster's week. A WR started in a flex
// slot lets RBs be compared against the pure WR slots, and an RB started in a
// flex slot does the same for WRs against the pure RB slots.
func (e Eligibility) Widen(starting []models.PlayerWeekRecord) Eligibility {
	widened := NewEligibility(e.slots)
	for _, starter := range starting {
		if starter.Slot != models.SlotFlex && starter.Slot != models.SlotExFlex {
			continue
		}
		switch starter.Position {
		case models.PositionWR:
			widened.allow(models.SlotWR, models.PositionRB)
		case models.PositionRB:
			widened.allow(models.SlotRB, models.PositionWR)
		}
	}
	return widened
}

func (e Eligibility) allow(slot models.Slot, pos models.Position) {
	positions, ok := e.slots[slot]
	if !ok || slices.Contains(positions, pos) {
		return
	}
	e.slots[slot] = append(positions, pos)
}
