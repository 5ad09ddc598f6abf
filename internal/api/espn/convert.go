package espn

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/omarshaarawi/benchwarmer/internal/models"
)

const (
	slotBench  = 20
	slotIR     = 21
	slotKicker = 17

	positionKicker = 5
)

var lineupSlots = map[int]models.Slot{
	0:         models.SlotQB,
	2:         models.SlotRB,
	3:         models.SlotFlex,
	4:         models.SlotWR,
	6:         models.SlotTE,
	16:        models.SlotDEF,
	23:        models.SlotExFlex,
	slotBench: models.SlotBench,
}

var positions = map[int]models.Position{
	1:  models.PositionQB,
	2:  models.PositionRB,
	3:  models.PositionWR,
	4:  models.PositionTE,
	16: models.PositionDefense,
}

var slotOrder = map[models.Slot]int{
	models.SlotQB:     1,
	models.SlotRB:     2,
	models.SlotWR:     3,
	models.SlotTE:     4,
	models.SlotFlex:   5,
	models.SlotExFlex: 6,
	models.SlotDEF:    7,
}

func getProTeamString(proTeamID int) string {
	teams := map[int]string{
		1: "ATL", 2: "BUF", 3: "CHI", 4: "CIN", 5: "CLE", 6: "DAL", 7: "DEN", 8: "DET",
		9: "GB", 10: "TEN", 11: "IND", 12: "KC", 13: "LV", 14: "LAR", 15: "MIA", 16: "MIN",
		17: "NE", 18: "NO", 19: "NYG", 20: "NYJ", 21: "PHI", 22: "ARI", 23: "PIT", 24: "LAC",
		25: "SF", 26: "SEA", 27: "TB", 28: "WSH", 29: "CAR", 30: "JAX", 33: "BAL", 34: "HOU",
	}

	if team, ok := teams[proTeamID]; ok {
		return team
	}

	return ""
}

// weekPoints returns the actual points (statSourceId 0) and the projection
// (statSourceId 1) a player has for the scoring period.
func weekPoints(player models.Player, week int) (points, projection float64, hasProjection bool) {
	for _, stat := range player.Stats {
		if stat.ScoringPeriodID != week {
			continue
		}
		switch stat.StatSourceID {
		case 0:
			points = stat.AppliedTotal
		case 1:
			projection = stat.AppliedTotal
			hasProjection = true
		}
	}
	return points, projection, hasProjection
}

func teamName(team models.Team) string {
	if team.Name != "" {
		return team.Name
	}
	if team.Location != "" || team.Nickname != "" {
		return team.Location + " " + team.Nickname
	}
	return team.Abbreviation
}

func ownerName(team models.Team, members []models.Member) string {
	ownerID := team.PrimaryOwner
	if ownerID == "" && len(team.Owners) > 0 {
		ownerID = team.Owners[0]
	}
	for _, m := range members {
		if m.ID != ownerID {
			continue
		}
		if m.FirstName != "" || m.LastName != "" {
			return m.FirstName + " " + m.LastName
		}
		if m.DisplayName != "" {
			return m.DisplayName
		}
	}
	return teamName(team)
}

func teamInfos(resp models.LeagueResponse) map[int]models.TeamInfo {
	divisions := make(map[int]string, len(resp.Settings.ScheduleSettings.Divisions))
	for _, d := range resp.Settings.ScheduleSettings.Divisions {
		divisions[d.ID] = d.Name
	}

	infos := make(map[int]models.TeamInfo, len(resp.Teams))
	for _, team := range resp.Teams {
		division, ok := divisions[team.DivisionID]
		if !ok {
			division = strconv.Itoa(team.DivisionID)
		}
		infos[team.ID] = models.TeamInfo{
			TeamID:   team.ID,
			TeamName: teamName(team),
			Owner:    ownerName(team, resp.Members),
			Division: division,
		}
	}
	return infos
}

// buildTeamWeek splits one side of a box score into starters and bench.
// Kickers and injured reserve are not part of the audited lineup and are
// dropped. Starting slots the league has but nobody filled become
// placeholder records so the lineup always has one record per slot.
func buildTeamWeek(week int, team, opponent models.TeamInfo, entries []models.RosterEntry, slotCounts map[string]int) (models.TeamWeek, error) {
	tw := models.TeamWeek{
		Week:     week,
		TeamID:   team.TeamID,
		Owner:    team.Owner,
		TeamName: team.TeamName,
		Opponent: opponent.Owner,
	}

	filled := make(map[models.Slot]int)
	for _, entry := range entries {
		player := entry.PlayerPoolEntry.Player
		if entry.LineupSlotID == slotIR || entry.LineupSlotID == slotKicker || player.DefaultPositionID == positionKicker {
			continue
		}

		slot, ok := lineupSlots[entry.LineupSlotID]
		if !ok {
			return models.TeamWeek{}, fmt.Errorf("%s: unsupported lineup slot %d for %s", team.Owner, entry.LineupSlotID, player.FullName)
		}
		pos, ok := positions[player.DefaultPositionID]
		if !ok {
			return models.TeamWeek{}, fmt.Errorf("%s: unsupported position %d for %s", team.Owner, player.DefaultPositionID, player.FullName)
		}

		points, projection, hasProjection := weekPoints(player, week)
		record := models.PlayerWeekRecord{
			Week:          week,
			Owner:         team.Owner,
			Team:          team.TeamName,
			Opponent:      opponent.TeamName,
			PlayerName:    player.FullName,
			PlayerTeam:    getProTeamString(player.ProTeamID),
			Position:      pos,
			Points:        points,
			Projection:    projection,
			HasProjection: hasProjection,
			Slot:          slot,
			IsBench:       slot == models.SlotBench,
		}

		if record.IsBench {
			tw.Bench = append(tw.Bench, record)
			continue
		}
		tw.Starting = append(tw.Starting, record)
		filled[slot]++
	}

	for key, count := range slotCounts {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		slot, ok := lineupSlots[id]
		if !ok || slot == models.SlotBench {
			continue
		}
		for range count - filled[slot] {
			tw.Starting = append(tw.Starting, models.PlayerWeekRecord{
				Week:     week,
				Owner:    team.Owner,
				Team:     team.TeamName,
				Opponent: opponent.TeamName,
				Slot:     slot,
			})
		}
	}

	sort.SliceStable(tw.Starting, func(i, j int) bool {
		a, b := tw.Starting[i], tw.Starting[j]
		if slotOrder[a.Slot] != slotOrder[b.Slot] {
			return slotOrder[a.Slot] < slotOrder[b.Slot]
		}
		// filled slots before empty ones
		return !a.IsPlaceholder() && b.IsPlaceholder()
	})

	return tw, nil
}
