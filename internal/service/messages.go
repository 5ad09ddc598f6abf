package service

import (
	"fmt"
	"sort"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/omarshaarawi/benchwarmer/internal/models"
)

// GetWeekSummary reports how many points each team left on the bench.
func (s *AuditService) GetWeekSummary(week int) (string, error) {
	audits, err := s.AuditWeek(week)
	if err != nil {
		return "", fmt.Errorf("error auditing week %d: %w", week, err)
	}

	sorted := make([]models.TeamWeekAudit, len(audits))
	copy(sorted, audits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PointsLeftOnBench() > sorted[j].PointsLeftOnBench()
	})

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🪑 *Week %d Bench Audit*\n\n", week))
	for _, a := range sorted {
		sb.WriteString(fmt.Sprintf("*%s* (%s)\n", md(a.TeamName), md(a.Owner)))
		sb.WriteString(fmt.Sprintf("   Scored: %.2f  Optimal: %.2f\n", a.ActualPoints, a.OptimalPoints))
		sb.WriteString(fmt.Sprintf("   Left on bench: %.2f\n\n", a.PointsLeftOnBench()))
	}

	if worst, ok := worstDecision(audits); ok {
		sb.WriteString(fmt.Sprintf("🤦 *Worst call:* %s started %s over %s (-%.2f)\n",
			md(worst.Owner), starterLabel(worst.ReplacedStarter), md(worst.BenchPlayer), worst.PointsLost))
	}

	return sb.String(), nil
}

func worstDecision(audits []models.TeamWeekAudit) (models.WrongDecision, bool) {
	var worst models.WrongDecision
	found := false
	for _, a := range audits {
		for _, d := range a.OptimalDecisions {
			if !found || d.PointsLost > worst.PointsLost {
				worst = d
				found = true
			}
		}
	}
	return worst, found
}

func starterLabel(name string) string {
	if name == "" {
		return "an empty slot"
	}
	return md(name)
}

// md escapes league supplied names for Telegram's Markdown parse mode.
func md(text string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, text)
}

// GetTeamMistakes lists the lineup calls that cost one team points in a week.
func (s *AuditService) GetTeamMistakes(query string, week int) (string, error) {
	team, err := s.findTeam(query)
	if err != nil {
		return "", err
	}

	audits, err := s.AuditWeek(week)
	if err != nil {
		return "", fmt.Errorf("error auditing week %d: %w", week, err)
	}

	idx := -1
	for i, a := range audits {
		if a.TeamID == team.TeamID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", fmt.Errorf("%s in week %d: %w", team.TeamName, week, ErrNoAudit)
	}
	audit := audits[idx]

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 *%s Week %d*\n\n", md(audit.TeamName), week))
	sb.WriteString(fmt.Sprintf("Scored %.2f of a possible %.2f\n\n", audit.ActualPoints, audit.OptimalPoints))

	if len(audit.OptimalDecisions) == 0 {
		sb.WriteString("Perfect lineup. 👏")
		return sb.String(), nil
	}

	sb.WriteString("*Should have started:*\n")
	for _, d := range audit.OptimalDecisions {
		sb.WriteString(fmt.Sprintf("▫️ %s over %s (+%.2f)\n", md(d.BenchPlayer), starterLabel(d.ReplacedStarter), d.PointsLost))
	}

	if len(audit.ProjectedMisses) > 0 {
		sb.WriteString("\n*Ignored the projections:*\n")
		for _, d := range audit.ProjectedMisses {
			sb.WriteString(fmt.Sprintf("▫️ %s over %s (+%.2f projected)\n", md(d.BenchPlayer), starterLabel(d.ReplacedStarter), d.PointsLost))
		}
	}

	return sb.String(), nil
}

// GetOptimalStandings compares the standings as played with the standings
// had every owner set their optimal lineup, through the last completed week.
func (s *AuditService) GetOptimalStandings() (string, error) {
	week, err := s.LastCompletedWeek()
	if err != nil {
		return "", err
	}
	if week > s.settings.RegularSeasonWeeks {
		week = s.settings.RegularSeasonWeeks
	}

	audit, err := s.AuditSeason(week)
	if err != nil {
		return "", fmt.Errorf("error auditing season: %w", err)
	}

	actual := make(map[string]models.Standing, len(audit.Standings))
	for _, st := range audit.Standings {
		actual[st.Owner] = st
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏆 *Optimal Standings through Week %d*\n\n", week))
	for i, st := range audit.OptimalStandings {
		marker := ""
		if st.MadePlayoffs {
			marker = " 🎟️"
		}
		played := actual[st.Owner]
		sb.WriteString(fmt.Sprintf("%d. *%s*%s\n", i+1, md(st.Owner), marker))
		sb.WriteString(fmt.Sprintf("   Optimal: %d-%d-%d (%.2f)\n", st.Wins, st.Losses, st.Ties, st.Points))
		sb.WriteString(fmt.Sprintf("   Actual: %d-%d-%d (%.2f)\n\n", played.Wins, played.Losses, played.Ties, played.Points))
	}

	return sb.String(), nil
}

// findTeam matches a query against owner and team names: exactly, then as a
// fuzzy subsequence, then by edit distance.
func (s *AuditService) findTeam(query string) (models.TeamInfo, error) {
	teams, err := s.teams()
	if err != nil {
		return models.TeamInfo{}, err
	}

	query = strings.TrimSpace(query)
	for _, t := range teams {
		if strings.EqualFold(t.Owner, query) || strings.EqualFold(t.TeamName, query) {
			return t, nil
		}
	}

	names := make([]string, 0, 2*len(teams))
	for _, t := range teams {
		names = append(names, t.Owner, t.TeamName)
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return teams[ranks[0].OriginalIndex/2], nil
	}

	best, bestDistance := -1, len(query)/2+1
	for i, name := range names {
		d := fuzzy.LevenshteinDistance(strings.ToLower(query), strings.ToLower(name))
		if d < bestDistance {
			best, bestDistance = i, d
		}
	}
	if best < 0 {
		return models.TeamInfo{}, fmt.Errorf("%q: %w", query, ErrTeamNotFound)
	}
	return teams[best/2], nil
}
