package lineup

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/omarshaarawi/benchwarmer/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(records []models.PlayerWeekRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.PlayerName
	}
	return out
}

func slotsOf(records []models.PlayerWeekRecord) []models.Slot {
	out := make([]models.Slot, len(records))
	for i, r := range records {
		out[i] = r.Slot
	}
	return out
}

func TestComputeOptimalLineup_BenchRBOutscoresStarter(t *testing.T) {
	o := NewOptimizer(DefaultEligibility())
	starting := []models.PlayerWeekRecord{
		starter("A", models.SlotRB, models.PositionRB, 8.0),
		starter("B", models.SlotWR, models.PositionWR, 5.0),
	}
	bench := []models.PlayerWeekRecord{
		benched("C", models.PositionRB, 12.0),
	}

	lineup, displaced, err := o.ComputeOptimalLineup(starting, bench)
	require.NoError(t, err)

	require.Len(t, lineup, 2)
	assert.Equal(t, "C", lineup[0].PlayerName)
	assert.Equal(t, models.SlotRB, lineup[0].Slot)
	assert.Equal(t, 12.0, lineup[0].Points)
	assert.Equal(t, "B", lineup[1].PlayerName)
	assert.Equal(t, models.SlotWR, lineup[1].Slot)
	assert.Equal(t, 5.0, lineup[1].Points)

	assert.Equal(t, []string{"A"}, names(displaced))
}

func TestComputeOptimalLineup_NoEligibleSwap(t *testing.T) {
	o := NewOptimizer(DefaultEligibility())
	starting := []models.PlayerWeekRecord{
		starter("A", models.SlotRB, models.PositionRB, 8.0),
		starter("B", models.SlotWR, models.PositionWR, 5.0),
	}
	bench := []models.PlayerWeekRecord{
		benched("T", models.PositionTE, 30.0),
	}

	lineup, displaced, err := o.ComputeOptimalLineup(starting, bench)
	require.NoError(t, err)
	assert.Equal(t, starting, lineup)
	assert.Empty(t, displaced)

	all, err := o.DetectAllWrongDecisions(starting, bench)
	require.NoError(t, err)
	assert.Empty(t, all)

	optimal, err := o.DetectOptimalWrongDecisions(starting, displaced, lineup)
	require.NoError(t, err)
	assert.Empty(t, optimal)
}

func TestComputeOptimalLineup_TwoBenchPlayersPromoted(t *testing.T) {
	o := NewOptimizer(DefaultEligibility())
	starting := []models.PlayerWeekRecord{
		starter("R", models.SlotRB, models.PositionRB, 10),
		starter("W", models.SlotWR, models.PositionWR, 6),
		starter("F", models.SlotFlex, models.PositionRB, 3),
	}
	bench := []models.PlayerWeekRecord{
		benched("B1", models.PositionRB, 20),
		benched("B2", models.PositionWR, 8),
	}

	lineup, displaced, err := o.ComputeOptimalLineup(starting, bench)
	require.NoError(t, err)

	assert.Equal(t, []string{"R", "B2", "B1"}, names(lineup))
	assert.Equal(t, []models.Slot{models.SlotRB, models.SlotWR, models.SlotFlex}, slotsOf(lineup))
	assert.Equal(t, []string{"F", "W"}, names(displaced))

	// B2 is the first promoted player who can play F's flex slot, which
	// leaves no WR-eligible partner for W.
	decisions, err := o.DetectOptimalWrongDecisions(starting, displaced, lineup)
	require.NoError(t, err)
	require.Len(t, decisions, 1)
	assert.Equal(t, "F", decisions[0].ReplacedStarter)
	assert.Equal(t, "B2", decisions[0].BenchPlayer)
	assert.Equal(t, 5.0, decisions[0].PointsLost)
}

func TestComputeOptimalLineup_DisplacedStarterFindsNewSlot(t *testing.T) {
	o := NewOptimizer(DefaultEligibility())
	starting := []models.PlayerWeekRecord{
		starter("T", models.SlotTE, models.PositionTE, 19),
		starter("O", models.SlotExFlex, models.PositionWR, 10),
		starter("W", models.SlotWR, models.PositionWR, 4),
	}
	bench := []models.PlayerWeekRecord{
		benched("P", models.PositionTE, 20),
	}

	lineup, displaced, err := o.ComputeOptimalLineup(starting, bench)
	require.NoError(t, err)

	// P takes the flex, O slides over to WR and W is the one left out.
	assert.Equal(t, []string{"T", "P", "O"}, names(lineup))
	assert.Equal(t, []models.Slot{models.SlotTE, models.SlotExFlex, models.SlotWR}, slotsOf(lineup))
	assert.Equal(t, []string{"W"}, names(displaced))

	assert.Equal(t, models.SlotWR, displaced[0].Slot)

	// P is a TE and could not have played W's WR slot, so the cascade leaves
	// W without a partner.
	decisions, err := o.DetectOptimalWrongDecisions(starting, displaced, lineup)
	require.NoError(t, err)
	assert.Empty(t, decisions)
}

func TestComputeOptimalLineup_NonPositiveBenchPlayersIgnored(t *testing.T) {
	o := NewOptimizer(DefaultEligibility())
	starting := []models.PlayerWeekRecord{
		starter("A", models.SlotRB, models.PositionRB, -2),
		emptySlot(models.SlotWR),
	}
	bench := []models.PlayerWeekRecord{
		benched("Z", models.PositionRB, 0),
		benched("N", models.PositionWR, -1.5),
	}

	lineup, displaced, err := o.ComputeOptimalLineup(starting, bench)
	require.NoError(t, err)
	assert.Equal(t, starting, lineup)
	assert.Empty(t, displaced)
}

func TestComputeOptimalLineup_TieGoesToEarliestSlot(t *testing.T) {
	o := NewOptimizer(DefaultEligibility())
	starting := []models.PlayerWeekRecord{
		starter("R1", models.SlotRB, models.PositionRB, 5),
		starter("R2", models.SlotRB, models.PositionRB, 5),
	}
	bench := []models.PlayerWeekRecord{benched("C", models.PositionRB, 9)}

	lineup, displaced, err := o.ComputeOptimalLineup(starting, bench)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "R2"}, names(lineup))
	assert.Equal(t, []string{"R1"}, names(displaced))
}

func TestComputeOptimalLineup_GainComparedAtTwoDecimals(t *testing.T) {
	o := NewOptimizer(DefaultEligibility())
	starting := []models.PlayerWeekRecord{
		starter("R1", models.SlotRB, models.PositionRB, 5.001),
		starter("R2", models.SlotRB, models.PositionRB, 5.0),
	}
	bench := []models.PlayerWeekRecord{benched("C", models.PositionRB, 9)}

	lineup, _, err := o.ComputeOptimalLineup(starting, bench)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "R2"}, names(lineup))
}

func TestComputeOptimalLineup_FillsEmptySlot(t *testing.T) {
	o := NewOptimizer(DefaultEligibility())
	starting := []models.PlayerWeekRecord{
		emptySlot(models.SlotRB),
		starter("B", models.SlotWR, models.PositionWR, 5),
	}
	bench := []models.PlayerWeekRecord{benched("C", models.PositionRB, 3)}

	lineup, displaced, err := o.ComputeOptimalLineup(starting, bench)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "B"}, names(lineup))
	require.Len(t, displaced, 1)
	assert.True(t, displaced[0].IsPlaceholder())

	assert.Equal(t, models.SlotRB, displaced[0].Slot)

	// leaving the slot empty cost C's points
	decisions, err := o.DetectOptimalWrongDecisions(starting, displaced, lineup)
	require.NoError(t, err)
	require.Len(t, decisions, 1)
	assert.Equal(t, "", decisions[0].ReplacedStarter)
	assert.Equal(t, "C", decisions[0].BenchPlayer)
	assert.Equal(t, 3.0, decisions[0].PointsLost)
}

func TestComputeOptimalLineup_UnknownSlot(t *testing.T) {
	o := NewOptimizer(DefaultEligibility())
	starting := []models.PlayerWeekRecord{
		starter("K", "K", "K", 8),
	}
	bench := []models.PlayerWeekRecord{benched("C", models.PositionRB, 12)}

	_, _, err := o.ComputeOptimalLineup(starting, bench)
	assert.ErrorIs(t, err, ErrUnknownSlot)

	_, err = o.DetectAllWrongDecisions(starting, bench)
	assert.ErrorIs(t, err, ErrUnknownSlot)
}

func TestComputeOptimalLineup_InputsNotMutated(t *testing.T) {
	o := NewOptimizer(DefaultEligibility())
	starting := []models.PlayerWeekRecord{
		starter("A", models.SlotRB, models.PositionRB, 8),
		starter("B", models.SlotWR, models.PositionWR, 5),
	}
	bench := []models.PlayerWeekRecord{benched("C", models.PositionRB, 12)}

	startingCopy := append([]models.PlayerWeekRecord(nil), starting...)
	benchCopy := append([]models.PlayerWeekRecord(nil), bench...)

	_, _, err := o.ComputeOptimalLineup(starting, bench)
	require.NoError(t, err)
	assert.Equal(t, startingCopy, starting)
	assert.Equal(t, benchCopy, bench)
}

var (
	fullSlots  = []models.Slot{models.SlotQB, models.SlotRB, models.SlotRB, models.SlotWR, models.SlotWR, models.SlotTE, models.SlotFlex, models.SlotExFlex, models.SlotDEF}
	allowedFor = map[models.Slot][]models.Position{
		models.SlotQB:     {models.PositionQB},
		models.SlotRB:     {models.PositionRB},
		models.SlotWR:     {models.PositionWR},
		models.SlotTE:     {models.PositionTE},
		models.SlotDEF:    {models.PositionDefense},
		models.SlotFlex:   {models.PositionRB, models.PositionWR},
		models.SlotExFlex: {models.PositionRB, models.PositionWR, models.PositionTE},
	}
	benchPositions = []models.Position{models.PositionQB, models.PositionRB, models.PositionWR, models.PositionTE, models.PositionDefense}
)

func randomPoints(rng *rand.Rand) float64 {
	return float64(rng.Intn(3500)-300) / 100
}

func randomRoster(rng *rand.Rand) (starting, bench []models.PlayerWeekRecord) {
	for i, slot := range fullSlots {
		if rng.Intn(12) == 0 {
			starting = append(starting, emptySlot(slot))
			continue
		}
		positions := allowedFor[slot]
		pos := positions[rng.Intn(len(positions))]
		starting = append(starting, starter(fmt.Sprintf("S%d", i), slot, pos, randomPoints(rng)))
	}
	for i := range rng.Intn(10) {
		pos := benchPositions[rng.Intn(len(benchPositions))]
		bench = append(bench, benched(fmt.Sprintf("B%d", i), pos, randomPoints(rng)))
	}
	return starting, bench
}

func TestComputeOptimalLineup_Properties(t *testing.T) {
	o := NewOptimizer(DefaultEligibility())
	rng := rand.New(rand.NewSource(2016))

	for n := range 500 {
		starting, bench := randomRoster(rng)

		lineup, displaced, err := o.ComputeOptimalLineup(starting, bench)
		require.NoError(t, err, "roster %d", n)

		require.Len(t, lineup, len(starting))
		assert.Equal(t, slotsOf(starting), slotsOf(lineup), "roster %d keeps slot order", n)

		assert.GreaterOrEqual(t, totalPoints(lineup), totalPoints(starting), "roster %d never loses points", n)

		widened := DefaultEligibility().Widen(starting)
		for _, r := range lineup {
			if r.IsPlaceholder() {
				continue
			}
			fits, err := widened.Fits(r.Position, r.Slot)
			require.NoError(t, err)
			assert.True(t, fits, "roster %d: %s (%s) in %s", n, r.PlayerName, r.Position, r.Slot)
		}

		inLineup := make(map[string]bool)
		for _, r := range lineup {
			if !r.IsPlaceholder() {
				inLineup[r.PlayerName] = true
			}
		}
		wasDisplaced := make(map[string]bool)
		for _, d := range displaced {
			assert.False(t, d.IsBench, "roster %d: bench player %s reported displaced", n, d.PlayerName)
			if d.IsPlaceholder() {
				continue
			}
			assert.False(t, inLineup[d.PlayerName], "roster %d: %s displaced but still starting", n, d.PlayerName)
			wasDisplaced[d.PlayerName] = true
		}
		for _, s := range starting {
			if s.IsPlaceholder() || inLineup[s.PlayerName] {
				continue
			}
			assert.True(t, wasDisplaced[s.PlayerName], "roster %d: %s dropped without being displaced", n, s.PlayerName)
		}

		again, againDisplaced, err := o.ComputeOptimalLineup(lineup, nil)
		require.NoError(t, err)
		assert.Equal(t, lineup, again, "roster %d re-optimizes to itself", n)
		assert.Empty(t, againDisplaced)

		decisions, err := o.DetectOptimalWrongDecisions(starting, displaced, lineup)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(decisions), len(displaced))
		seen := make(map[string]bool)
		for _, d := range decisions {
			assert.False(t, seen[d.BenchPlayer], "roster %d: %s matched twice", n, d.BenchPlayer)
			seen[d.BenchPlayer] = true
		}
	}
}

func TestComputeOptimalLineup_Deterministic(t *testing.T) {
	o := NewOptimizer(DefaultEligibility())
	rng := rand.New(rand.NewSource(7))

	for range 50 {
		starting, bench := randomRoster(rng)
		tw := models.TeamWeek{Week: 3, Owner: "brecht", Starting: starting, Bench: bench}

		first, err := o.AuditTeamWeek(tw)
		require.NoError(t, err)
		second, err := o.AuditTeamWeek(tw)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}
