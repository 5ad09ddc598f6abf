package report

import (
	"strings"

	"github.com/omarshaarawi/benchwarmer/internal/models"
)

// Table is one report: a CSV file or a workbook sheet.
type Table struct {
	Name   string
	Header []string
	Rows   [][]any
}

var (
	decisionHeader = []string{"owner", "week", "replacedStarter", "benchPlayer", "pointsLost"}
	standingHeader = []string{"owner", "division", "wins", "losses", "ties", "points", "madePlayoffs"}
	playerHeader   = []string{"week", "owner", "team", "opponent", "slot", "playerName", "playerTeam", "pos", "points", "projection", "draftOwner", "draftAmount", "isBench"}
	draftHeader    = []string{"owner", "playerName", "pos", "draftAmount"}
)

// Tables lays a season audit out as the full set of reports.
func Tables(s *models.SeasonAudit) []Table {
	var all, optimal, projected []models.WrongDecision
	var playerRows [][]any
	for _, a := range s.Audits {
		all = append(all, a.AllDecisions...)
		optimal = append(optimal, a.OptimalDecisions...)
		projected = append(projected, a.ProjectedMisses...)
		for _, r := range a.Starting {
			playerRows = append(playerRows, playerRow(r))
		}
		for _, r := range a.Bench {
			playerRows = append(playerRows, playerRow(r))
		}
	}

	tables := []Table{
		{Name: "wrongDecisionsAll", Header: decisionHeader, Rows: decisionRows(all)},
		{Name: "wrongDecisionsOptimal", Header: decisionHeader, Rows: decisionRows(optimal)},
		{Name: "wrongDecisionsProjected", Header: decisionHeader, Rows: decisionRows(projected)},
		{Name: "playerData", Header: playerHeader, Rows: playerRows},
		{Name: "draft", Header: draftHeader, Rows: draftRows(s.Draft)},
		{Name: "standings", Header: standingHeader, Rows: standingRows(s.Standings)},
		{Name: "standingsOptimal", Header: standingHeader, Rows: standingRows(s.OptimalStandings)},
	}

	for _, team := range s.Teams {
		standings, ok := s.IndividualOptimal[team.Owner]
		if !ok {
			continue
		}
		tables = append(tables, Table{
			Name:   "standingsOptimal-" + fileSafe(team.Owner),
			Header: standingHeader,
			Rows:   standingRows(standings),
		})
	}

	return tables
}

func decisionRows(decisions []models.WrongDecision) [][]any {
	rows := make([][]any, 0, len(decisions))
	for _, d := range decisions {
		rows = append(rows, []any{d.Owner, d.Week, d.ReplacedStarter, d.BenchPlayer, d.PointsLost})
	}
	return rows
}

func playerRow(r models.PlayerWeekRecord) []any {
	var projection any = ""
	if r.HasProjection {
		projection = r.Projection
	}
	var amount any = ""
	if r.DraftOwner != "" {
		amount = r.DraftAmount
	}
	return []any{
		r.Week, r.Owner, r.Team, r.Opponent, string(r.Slot), r.PlayerName, r.PlayerTeam,
		string(r.Position), r.Points, projection, r.DraftOwner, amount, r.IsBench,
	}
}

func draftRows(book *models.DraftBook) [][]any {
	if book == nil {
		return nil
	}
	rows := make([][]any, 0, len(book.Picks))
	for _, p := range book.Picks {
		rows = append(rows, []any{p.Owner, p.PlayerName, string(p.Position), p.Amount})
	}
	return rows
}

func standingRows(standings []models.Standing) [][]any {
	rows := make([][]any, 0, len(standings))
	for _, s := range standings {
		rows = append(rows, []any{s.Owner, s.Division, s.Wins, s.Losses, s.Ties, s.Points, s.MadePlayoffs})
	}
	return rows
}

func fileSafe(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', '[', ']':
			return '_'
		}
		return r
	}, name)
}
