package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/omarshaarawi/benchwarmer/internal/service"
)

// AuditService is what the bot asks for its replies.
type AuditService interface {
	LastCompletedWeek() (int, error)
	GetWeekSummary(week int) (string, error)
	GetTeamMistakes(team string, week int) (string, error)
	GetOptimalStandings() (string, error)
}

const helpText = "Available commands:\n" +
	"/audit [week] - Points each team left on the bench\n" +
	"/mistakes <team> [week] - Lineup calls that cost a team points\n" +
	"/optimal - Standings if everyone had set their best lineup"

type Handler struct {
	auditService AuditService
}

func NewHandler(auditService AuditService) *Handler {
	return &Handler{auditService: auditService}
}

func (h *Handler) HandleCommand(update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	args := strings.TrimSpace(update.Message.CommandArguments())
	msg.ParseMode = "Markdown"

	switch command {
	case "start":
		msg.Text = "Welcome to Benchwarmer! Use /help to see available commands."
	case "help":
		msg.Text = helpText
	case "audit":
		h.handleAudit(&msg, args)
	case "mistakes":
		h.handleMistakes(&msg, args)
	case "optimal":
		h.handleOptimal(&msg)
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	return msg
}

func (h *Handler) handleAudit(msg *tgbotapi.MessageConfig, args string) {
	week, err := h.week(args)
	if err != nil {
		msg.Text = replyError("Usage: /audit [week]", err)
		return
	}
	summary, err := h.auditService.GetWeekSummary(week)
	if err != nil {
		msg.Text = replyError(fmt.Sprintf("Error auditing week %d", week), err)
		return
	}
	msg.Text = summary
}

func (h *Handler) handleMistakes(msg *tgbotapi.MessageConfig, args string) {
	team, weekArg := splitTrailingWeek(args)
	if team == "" {
		msg.Text = "Please provide a team or owner. Usage: /mistakes <team> [week]"
		return
	}
	week, err := h.week(weekArg)
	if err != nil {
		msg.Text = replyError("Usage: /mistakes <team> [week]", err)
		return
	}
	report, err := h.auditService.GetTeamMistakes(team, week)
	if err != nil {
		msg.Text = replyError(fmt.Sprintf("Error auditing %s", team), err)
		return
	}
	msg.Text = report
}

func (h *Handler) handleOptimal(msg *tgbotapi.MessageConfig) {
	report, err := h.auditService.GetOptimalStandings()
	if err != nil {
		msg.Text = replyError("Error building optimal standings", err)
		return
	}
	msg.Text = report
}

// week parses an explicit week argument, defaulting to the last completed one.
func (h *Handler) week(arg string) (int, error) {
	if arg == "" {
		return h.auditService.LastCompletedWeek()
	}
	week, err := strconv.Atoi(arg)
	if err != nil || week < 1 {
		return 0, fmt.Errorf("%q is not a week number", arg)
	}
	return week, nil
}

// splitTrailingWeek separates "<team> [week]" into its parts.
func splitTrailingWeek(args string) (team, week string) {
	fields := strings.Fields(args)
	if len(fields) > 1 {
		if _, err := strconv.Atoi(fields[len(fields)-1]); err == nil {
			return strings.Join(fields[:len(fields)-1], " "), fields[len(fields)-1]
		}
	}
	return strings.Join(fields, " "), ""
}

func replyError(prefix string, err error) string {
	switch {
	case errors.Is(err, service.ErrTeamNotFound):
		return "No team or owner matches that name."
	case errors.Is(err, service.ErrNoAudit):
		return "Nothing to audit for that week yet."
	default:
		return fmt.Sprintf("%s: %v", prefix, err)
	}
}
