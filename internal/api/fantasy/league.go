package fantasy

import (
	"github.com/omarshaarawi/benchwarmer/internal/api/espn"
	"github.com/omarshaarawi/benchwarmer/internal/models"
)

// API is the league data the audit service reads. It hides which fantasy
// host the league lives on.
type API struct {
	espnAPI *espn.API
}

func NewAPI(espnAPI *espn.API) *API {
	return &API{espnAPI: espnAPI}
}

func (a *API) GetLeagueMetadata() (*models.LeagueMetadata, error) {
	return a.espnAPI.GetLeagueMetadata()
}

func (a *API) GetTeams() ([]models.TeamInfo, error) {
	return a.espnAPI.GetTeams()
}

func (a *API) GetWeekMatchups(week int) ([]models.WeekMatchup, error) {
	return a.espnAPI.GetWeekMatchups(week)
}

func (a *API) GetDraft() (*models.DraftBook, error) {
	return a.espnAPI.GetDraft()
}
