package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram rejects messages longer than this.
const maxMessageLength = 4096

type TelegramBot struct {
	bot     *tgbotapi.BotAPI
	handler *Handler
	chatID  int64
}

func NewTelegramBot(token string, chatID int64, auditService AuditService) (*TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connecting to telegram: %w", err)
	}

	return &TelegramBot{
		bot:     bot,
		handler: NewHandler(auditService),
		chatID:  chatID,
	}, nil
}

func (t *TelegramBot) Start(ctx context.Context) error {
	slog.Info("Authorized on account", "username", t.bot.Self.UserName)
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.bot.GetUpdatesChan(u)
	defer t.bot.StopReceivingUpdates()

	for {
		select {
		case update := <-updates:
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}

			slog.Info("Handling command", "command", update.Message.Command(), "chat", update.Message.Chat.ID)
			reply := t.handler.HandleCommand(update)
			t.send(reply.ChatID, reply.Text)
		case <-ctx.Done():
			return nil
		}
	}
}

// SendMessage posts text to the league chat.
func (t *TelegramBot) SendMessage(text string) error {
	if t.chatID == 0 {
		slog.Error("Chat ID not set")
		return fmt.Errorf("chat ID not set")
	}
	return t.send(t.chatID, text)
}

func (t *TelegramBot) send(chatID int64, text string) error {
	for _, part := range chunks(text, maxMessageLength) {
		msg := tgbotapi.NewMessage(chatID, part)
		msg.ParseMode = "Markdown"
		if _, err := t.bot.Send(msg); err != nil {
			slog.Error("Error sending message", "error", err)
			return err
		}
	}
	return nil
}

// chunks splits text on line breaks into pieces of at most limit bytes. A
// single line longer than limit is cut on a rune boundary.
func chunks(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	var out []string
	var current strings.Builder
	for _, line := range strings.SplitAfter(text, "\n") {
		for len(line) > limit {
			if current.Len() > 0 {
				out = append(out, current.String())
				current.Reset()
			}
			cut := limit
			for cut > 0 && !utf8.RuneStart(line[cut]) {
				cut--
			}
			out = append(out, line[:cut])
			line = line[cut:]
		}
		if current.Len()+len(line) > limit {
			out = append(out, current.String())
			current.Reset()
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		out = append(out, current.String())
	}
	return out
}
