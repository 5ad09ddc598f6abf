package service

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/omarshaarawi/benchwarmer/internal/config"
	"github.com/omarshaarawi/benchwarmer/internal/lineup"
	"github.com/omarshaarawi/benchwarmer/internal/models"
	"github.com/omarshaarawi/benchwarmer/internal/repository/memory"
	"github.com/omarshaarawi/benchwarmer/internal/season"
)

var (
	ErrTeamNotFound = errors.New("team not found")
	ErrNoAudit      = errors.New("no audit available")
)

// LeagueSource is where league data comes from.
type LeagueSource interface {
	GetLeagueMetadata() (*models.LeagueMetadata, error)
	GetTeams() ([]models.TeamInfo, error)
	GetWeekMatchups(week int) ([]models.WeekMatchup, error)
	GetDraft() (*models.DraftBook, error)
}

type AuditService struct {
	source    LeagueSource
	repo      *memory.Repository
	optimizer *lineup.Optimizer
	settings  config.Audit
}

func NewAuditService(source LeagueSource, repo *memory.Repository, settings config.Audit) *AuditService {
	return &AuditService{
		source:    source,
		repo:      repo,
		optimizer: lineup.NewOptimizer(lineup.DefaultEligibility()),
		settings:  settings,
	}
}

func (s *AuditService) GetCurrentWeek() (int, error) {
	metadata, err := s.getLeagueMetadata()
	if err != nil {
		return 0, err
	}

	slog.Info("Current week", "week", metadata.CurrentWeek)
	return metadata.CurrentWeek, nil
}

// LastCompletedWeek is the week before the current one.
func (s *AuditService) LastCompletedWeek() (int, error) {
	week, err := s.GetCurrentWeek()
	if err != nil {
		return 0, err
	}
	if week <= 1 {
		return 0, fmt.Errorf("no completed week before week %d: %w", week, ErrNoAudit)
	}
	return week - 1, nil
}

func (s *AuditService) getLeagueMetadata() (*models.LeagueMetadata, error) {
	metadata := s.repo.GetMetadata()
	if metadata == nil || time.Since(metadata.LastUpdated) > 24*time.Hour {
		newMetadata, err := s.source.GetLeagueMetadata()
		if err != nil {
			return nil, err
		}
		s.repo.SaveMetadata(newMetadata)
		return newMetadata, nil
	}
	return metadata, nil
}

func (s *AuditService) teams() ([]models.TeamInfo, error) {
	if teams := s.repo.GetTeams(); len(teams) > 0 {
		return teams, nil
	}
	teams, err := s.source.GetTeams()
	if err != nil {
		return nil, fmt.Errorf("fetching teams: %w", err)
	}
	s.repo.SaveTeams(teams)
	return teams, nil
}

func (s *AuditService) draft() (*models.DraftBook, error) {
	if book := s.repo.GetDraft(); book != nil {
		return book, nil
	}
	book, err := s.source.GetDraft()
	if err != nil {
		return nil, fmt.Errorf("fetching draft: %w", err)
	}
	s.repo.SaveDraft(book)
	return book, nil
}

// AuditWeek audits both sides of every matchup in a week. The result lists
// each matchup's home audit followed by its away audit. Weeks before the
// current one are cached.
func (s *AuditService) AuditWeek(week int) ([]models.TeamWeekAudit, error) {
	if audits, ok := s.repo.GetWeekAudit(week); ok {
		return audits, nil
	}

	matchups, err := s.source.GetWeekMatchups(week)
	if err != nil {
		return nil, fmt.Errorf("error fetching week %d matchups: %w", week, err)
	}
	book, err := s.draft()
	if err != nil {
		return nil, err
	}

	audits := make([]models.TeamWeekAudit, 0, 2*len(matchups))
	for _, m := range matchups {
		for _, side := range []models.TeamWeek{m.Home, m.Away} {
			side.Starting = withDraft(side.Starting, book)
			side.Bench = withDraft(side.Bench, book)

			audit, err := s.optimizer.AuditTeamWeek(side)
			if err != nil {
				return nil, err
			}
			slog.Debug("Audited team",
				"week", week,
				"owner", audit.Owner,
				"actual", audit.ActualPoints,
				"optimal", audit.OptimalPoints,
				"mistakes", len(audit.OptimalDecisions))
			audits = append(audits, audit)
		}
	}

	if len(audits) == 0 {
		return nil, fmt.Errorf("week %d has no matchups: %w", week, ErrNoAudit)
	}

	current, err := s.GetCurrentWeek()
	if err != nil {
		slog.Error("Failed to get current week, not caching audit", "week", week, "error", err)
	} else if week < current {
		s.repo.SaveWeekAudit(week, audits)
	}

	slog.Info("Audited week", "week", week, "teams", len(audits))
	return audits, nil
}

func withDraft(records []models.PlayerWeekRecord, book *models.DraftBook) []models.PlayerWeekRecord {
	out := slices.Clone(records)
	for i := range out {
		if pick, ok := book.Lookup(out[i].PlayerName); ok {
			out[i].DraftOwner = pick.Owner
			out[i].DraftAmount = pick.Amount
		}
	}
	return out
}

// AuditSeason audits weeks 1 through weeks. Standings only count the regular
// season.
func (s *AuditService) AuditSeason(weeks int) (*models.SeasonAudit, error) {
	if weeks <= 0 {
		return nil, fmt.Errorf("auditing %d weeks: %w", weeks, ErrNoAudit)
	}

	teams, err := s.teams()
	if err != nil {
		return nil, err
	}
	book, err := s.draft()
	if err != nil {
		return nil, err
	}

	tracker := season.NewTracker(teams)
	result := &models.SeasonAudit{Teams: teams, Draft: book}
	for week := 1; week <= weeks; week++ {
		audits, err := s.AuditWeek(week)
		if err != nil {
			return nil, err
		}
		result.Weeks = append(result.Weeks, week)
		result.Audits = append(result.Audits, audits...)

		if week > s.settings.RegularSeasonWeeks {
			continue
		}
		for i := 0; i+1 < len(audits); i += 2 {
			tracker.Record(audits[i], audits[i+1])
		}
	}

	result.Standings = s.seed(tracker.Standings())
	result.OptimalStandings = s.seed(tracker.OptimalStandings())
	result.IndividualOptimal = make(map[string][]models.Standing)
	for owner, standings := range tracker.IndividualOptimal() {
		result.IndividualOptimal[owner] = s.seed(standings)
	}

	slog.Info("Audited season", "weeks", weeks, "teams", len(teams))
	return result, nil
}

func (s *AuditService) seed(standings []models.Standing) []models.Standing {
	return season.SeedPlayoffs(standings, s.settings.PlayoffWildcards, s.settings.MinDivisionSize)
}
