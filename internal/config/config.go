package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/artem20051205/bady/internal/domain"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	BotToken   string `envconfig:"BOT_TOKEN" required:"true"`
	ChannelID  string `envconfig:"CHANNEL_ID" required:"true"` // numeric id or @username
	ChannelURL string `envconfig:"CHANNEL_URL" required:"true"`
	DBPath     string `envconfig:"DB_PATH" default:"./data/bot.db"`
	TZ         string `envconfig:"DEFAULT_TZ" default:"Europe/Kyiv"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error
	HTTPAddr   string `envconfig:"HTTP_ADDR" default:":8080"`

	// Tracking program schedule. Rollover should sit shortly after midnight
	// so the date has settled; the poll interval must stay under a minute or
	// exact-minute triggers get skipped.
	TotalDays         int           `envconfig:"TOTAL_DAYS" default:"3"`
	MenuTime          string        `envconfig:"MENU_TIME" default:"08:30"`
	WeightTime        string        `envconfig:"WEIGHT_TIME" default:"20:00"`
	ReminderOffsetMin int           `envconfig:"REMINDER_OFFSET_MIN" default:"60"`
	RolloverTime      string        `envconfig:"ROLLOVER_TIME" default:"00:05"`
	PollInterval      time.Duration `envconfig:"POLL_INTERVAL" default:"30s"`
}

// Load reads environment variables into Config and validates the schedule.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	if _, _, _, _, err := cfg.Triggers(); err != nil {
		return cfg, err
	}
	if cfg.PollInterval <= 0 || cfg.PollInterval >= time.Minute {
		return cfg, fmt.Errorf("poll interval must be within (0, 1m), got %s", cfg.PollInterval)
	}
	if cfg.TotalDays < 1 {
		return cfg, fmt.Errorf("total days must be >= 1, got %d", cfg.TotalDays)
	}
	return cfg, nil
}

// Triggers parses the configured trigger times. The reminder trigger is the
// weight prompt shifted by the configured offset.
func (c Config) Triggers() (menu, weight, reminder, rollover domain.TriggerTime, err error) {
	if menu, err = domain.ParseTrigger(c.MenuTime); err != nil {
		return menu, weight, reminder, rollover, fmt.Errorf("menu time: %w", err)
	}
	if weight, err = domain.ParseTrigger(c.WeightTime); err != nil {
		return menu, weight, reminder, rollover, fmt.Errorf("weight time: %w", err)
	}
	if rollover, err = domain.ParseTrigger(c.RolloverTime); err != nil {
		return menu, weight, reminder, rollover, fmt.Errorf("rollover time: %w", err)
	}
	reminder = weight.AddMinutes(c.ReminderOffsetMin)
	return menu, weight, reminder, rollover, nil
}
