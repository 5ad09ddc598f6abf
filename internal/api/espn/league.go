package espn

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/omarshaarawi/benchwarmer/internal/models"
)

type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

func (a *API) leagueEndpoint() string {
	return fmt.Sprintf("/seasons/%s/segments/0/leagues/%s", a.client.Config.Year, a.client.Config.LeagueID)
}

func (a *API) GetLeagueMetadata() (*models.LeagueMetadata, error) {
	var espnResponse models.LeagueResponse
	params := map[string]string{
		"view": "mSettings",
	}

	if err := a.client.Get(a.leagueEndpoint(), params, nil, &espnResponse); err != nil {
		return nil, fmt.Errorf("fetching league metadata: %w", err)
	}

	metadata := &models.LeagueMetadata{
		LeagueID:             espnResponse.ID,
		Name:                 espnResponse.Settings.Name,
		CurrentWeek:          espnResponse.Status.CurrentMatchupPeriod,
		CurrentScoringPeriod: espnResponse.ScoringPeriodID,
		SeasonID:             espnResponse.SeasonID,
		FirstWeek:            espnResponse.Status.FirstScoringPeriod,
		LastWeek:             espnResponse.Status.FinalScoringPeriod,
		IsActive:             espnResponse.Status.IsActive,
		LastUpdated:          time.Now(),
	}

	return metadata, nil
}

func (a *API) GetTeams() ([]models.TeamInfo, error) {
	var leagueResponse models.LeagueResponse
	params := map[string]string{
		"view": "mTeam,mSettings",
	}

	if err := a.client.Get(a.leagueEndpoint(), params, nil, &leagueResponse); err != nil {
		return nil, fmt.Errorf("fetching teams: %w", err)
	}

	infos := teamInfos(leagueResponse)
	teams := make([]models.TeamInfo, 0, len(infos))
	for _, info := range infos {
		teams = append(teams, info)
	}
	sort.Slice(teams, func(i, j int) bool {
		return teams[i].TeamID < teams[j].TeamID
	})

	return teams, nil
}

func matchupFilter(week int) (string, error) {
	filters := map[string]interface{}{
		"schedule": map[string]interface{}{
			"filterMatchupPeriodIds": map[string]interface{}{
				"value": []int{week},
			},
		},
	}

	filtersJSON, err := json.Marshal(filters)
	if err != nil {
		return "", fmt.Errorf("error marshalling filters: %w", err)
	}
	return string(filtersJSON), nil
}

// GetWeekMatchups loads every box score for a week and converts both sides
// of each matchup into starting and bench records.
func (a *API) GetWeekMatchups(week int) ([]models.WeekMatchup, error) {
	var leagueResponse models.LeagueResponse
	params := map[string]string{
		"view":            "mMatchupScore,mBoxscore,mTeam,mSettings",
		"scoringPeriodId": fmt.Sprintf("%d", week),
	}

	filter, err := matchupFilter(week)
	if err != nil {
		return nil, err
	}
	headers := map[string]string{
		"x-fantasy-filter": filter,
	}

	if err := a.client.Get(a.leagueEndpoint(), params, headers, &leagueResponse); err != nil {
		return nil, fmt.Errorf("fetching week %d box scores: %w", week, err)
	}

	teams := teamInfos(leagueResponse)
	slotCounts := leagueResponse.Settings.RosterSettings.LineupSlotCounts

	var matchups []models.WeekMatchup
	for _, match := range leagueResponse.Schedule {
		if match.MatchupPeriodID != 0 && match.MatchupPeriodID != week {
			continue
		}

		home, ok := teams[match.Home.TeamID]
		if !ok {
			slog.Debug("Skipping matchup with unknown home team", "matchup", match.ID, "team", match.Home.TeamID)
			continue
		}
		away, ok := teams[match.Away.TeamID]
		if !ok {
			slog.Debug("Skipping matchup without away team", "matchup", match.ID, "team", match.Away.TeamID)
			continue
		}

		homeWeek, err := buildTeamWeek(week, home, away, match.Home.RosterForCurrentScoringPeriod.Entries, slotCounts)
		if err != nil {
			return nil, fmt.Errorf("loading week %d matchup %d: %w", week, match.ID, err)
		}
		awayWeek, err := buildTeamWeek(week, away, home, match.Away.RosterForCurrentScoringPeriod.Entries, slotCounts)
		if err != nil {
			return nil, fmt.Errorf("loading week %d matchup %d: %w", week, match.ID, err)
		}

		matchups = append(matchups, models.WeekMatchup{
			Week: week,
			Home: homeWeek,
			Away: awayWeek,
		})
	}

	slog.Info("Loaded box scores", "week", week, "matchups", len(matchups))
	return matchups, nil
}

// GetDraft returns the league's draft results. Player names come from the
// current rosters, so picks for players no longer on any roster are left out.
func (a *API) GetDraft() (*models.DraftBook, error) {
	var leagueResponse models.LeagueResponse
	params := map[string]string{
		"view": "mDraftDetail,mRoster,mTeam",
	}

	if err := a.client.Get(a.leagueEndpoint(), params, nil, &leagueResponse); err != nil {
		return nil, fmt.Errorf("fetching draft: %w", err)
	}

	teams := teamInfos(leagueResponse)
	players := make(map[int]models.Player)
	for _, team := range leagueResponse.Teams {
		for _, entry := range team.Roster.Entries {
			players[entry.PlayerPoolEntry.Player.ID] = entry.PlayerPoolEntry.Player
		}
	}

	var picks []models.DraftPick
	for _, slot := range leagueResponse.DraftDetail.Picks {
		player, ok := players[slot.PlayerID]
		if !ok {
			slog.Debug("Draft pick not on any roster", "player", slot.PlayerID, "pick", slot.OverallPickNumber)
			continue
		}
		picks = append(picks, models.DraftPick{
			Owner:      teams[slot.TeamID].Owner,
			PlayerName: player.FullName,
			Position:   positions[player.DefaultPositionID],
			Amount:     slot.BidAmount,
		})
	}

	return models.NewDraftBook(picks), nil
}
