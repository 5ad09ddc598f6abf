package season

import (
	"sort"

	"github.com/omarshaarawi/benchwarmer/internal/models"
	"github.com/shopspring/decimal"
)

type table struct {
	order []string
	rows  map[string]*models.Standing
}

func newTable() *table {
	return &table{rows: make(map[string]*models.Standing)}
}

func (t *table) row(owner, division string) *models.Standing {
	if s, ok := t.rows[owner]; ok {
		return s
	}
	s := &models.Standing{Owner: owner, Division: division}
	t.rows[owner] = s
	t.order = append(t.order, owner)
	return s
}

// record scores one head-to-head week. Totals equal at two decimals are a tie.
func (t *table) record(home, away string, homePoints, awayPoints float64, divisions map[string]string) {
	h := t.row(home, divisions[home])
	a := t.row(away, divisions[away])

	h.Points = add(h.Points, homePoints)
	a.Points = add(a.Points, awayPoints)

	hp, ap := decimal.NewFromFloat(homePoints).Round(2), decimal.NewFromFloat(awayPoints).Round(2)
	switch {
	case hp.Equal(ap):
		h.Ties++
		a.Ties++
	case hp.GreaterThan(ap):
		h.Wins++
		a.Losses++
	default:
		h.Losses++
		a.Wins++
	}
}

func (t *table) standings() []models.Standing {
	out := make([]models.Standing, 0, len(t.order))
	for _, owner := range t.order {
		out = append(out, *t.rows[owner])
	}
	Sort(out)
	return out
}

func add(total, points float64) float64 {
	return decimal.NewFromFloat(total).Add(decimal.NewFromFloat(points)).Round(2).InexactFloat64()
}

// Sort orders standings by wins, then total points.
func Sort(standings []models.Standing) {
	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Wins != standings[j].Wins {
			return standings[i].Wins > standings[j].Wins
		}
		return standings[i].Points > standings[j].Points
	})
}

// Tracker accumulates a season of head-to-head results three ways: as
// played, as if every owner had set their optimal lineup, and for each owner
// as if only that owner had.
type Tracker struct {
	divisions  map[string]string
	actual     *table
	optimal    *table
	individual map[string]*table
	owners     []string
}

func NewTracker(teams []models.TeamInfo) *Tracker {
	t := &Tracker{
		divisions:  make(map[string]string, len(teams)),
		actual:     newTable(),
		optimal:    newTable(),
		individual: make(map[string]*table, len(teams)),
	}
	for _, team := range teams {
		t.addOwner(team.Owner, team.Division)
	}
	return t
}

func (t *Tracker) addOwner(owner, division string) {
	if _, ok := t.individual[owner]; ok {
		return
	}
	t.divisions[owner] = division
	t.owners = append(t.owners, owner)
	t.actual.row(owner, division)
	t.optimal.row(owner, division)

	ind := newTable()
	for _, o := range t.owners {
		ind.row(o, t.divisions[o])
	}
	t.individual[owner] = ind
	for _, other := range t.individual {
		other.row(owner, division)
	}
}

// Record scores one matchup from the audits of both sides.
func (t *Tracker) Record(home, away models.TeamWeekAudit) {
	t.addOwner(home.Owner, t.divisions[home.Owner])
	t.addOwner(away.Owner, t.divisions[away.Owner])

	t.actual.record(home.Owner, away.Owner, home.ActualPoints, away.ActualPoints, t.divisions)
	t.optimal.record(home.Owner, away.Owner, home.OptimalPoints, away.OptimalPoints, t.divisions)

	for owner, ind := range t.individual {
		homePoints, awayPoints := home.ActualPoints, away.ActualPoints
		switch owner {
		case home.Owner:
			homePoints = home.OptimalPoints
		case away.Owner:
			awayPoints = away.OptimalPoints
		}
		ind.record(home.Owner, away.Owner, homePoints, awayPoints, t.divisions)
	}
}

func (t *Tracker) Standings() []models.Standing {
	return t.actual.standings()
}

func (t *Tracker) OptimalStandings() []models.Standing {
	return t.optimal.standings()
}

// IndividualOptimal returns, per owner, the standings had only that owner
// played their optimal lineup every week.
func (t *Tracker) IndividualOptimal() map[string][]models.Standing {
	out := make(map[string][]models.Standing, len(t.individual))
	for _, owner := range t.owners {
		out[owner] = t.individual[owner].standings()
	}
	return out
}
