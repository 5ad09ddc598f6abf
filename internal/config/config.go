package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	TelegramBot TelegramBot
	ESPNAPI     ESPNAPI
	Audit       Audit
}

type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN"`
	ChatID int64  `envconfig:"CHAT_ID"`
}

type ESPNAPI struct {
	Year     string `envconfig:"YEAR" required:"true"`
	LeagueID string `envconfig:"LEAGUE_ID" required:"true"`
	SWID     string `envconfig:"SWID"`
	ESPNS2   string `envconfig:"ESPN_S2"`
}

type Audit struct {
	Schedule           string `envconfig:"AUDIT_SCHEDULE" default:"30 7 * * 2"`
	Timezone           string `envconfig:"AUDIT_TIMEZONE" default:"America/Chicago"`
	OutputDir          string `envconfig:"OUTPUT_DIR" default:"results"`
	RegularSeasonWeeks int    `envconfig:"REGULAR_SEASON_WEEKS" default:"13"`
	PlayoffWildcards   int    `envconfig:"PLAYOFF_WILDCARDS" default:"2"`
	MinDivisionSize    int    `envconfig:"MIN_DIVISION_SIZE" default:"5"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// RequireTelegram checks the settings only the bot needs.
func (c *Config) RequireTelegram() error {
	if c.TelegramBot.Token == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required")
	}
	if c.TelegramBot.ChatID == 0 {
		return fmt.Errorf("CHAT_ID is required")
	}
	return nil
}
