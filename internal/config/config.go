// Package config loads and validates the coursebell configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// DateColumns maps the logical schedule fields to workbook column names.
type DateColumns struct {
	Name  string `koanf:"name"`
	Start string `koanf:"start_date"`
	End   string `koanf:"end_date"`
}

// Logging controls output format and destinations.
type Logging struct {
	Level   string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
	File    string `koanf:"file"`
	Console bool   `koanf:"console"`
}

// Config is the single immutable configuration value passed down from the
// CLI; no package holds it as global state.
type Config struct {
	SMTPServer     string      `koanf:"smtp_server" validate:"required"`
	SMTPPort       int         `koanf:"smtp_port" validate:"required,gt=0,lte=65535"`
	SenderEmail    string      `koanf:"sender_email" validate:"required,email"`
	SenderPassword string      `koanf:"sender_password" validate:"required"`
	Recipients     []string    `koanf:"recipients" validate:"required,min=1,dive,email"`
	ExcelFile      string      `koanf:"excel_file" validate:"required"`
	ScheduleRepo   string      `koanf:"schedule_repo"`
	DateColumns    DateColumns `koanf:"date_columns"`
	ReminderDays   []int       `koanf:"reminder_days" validate:"required,min=1"`
	CheckTime      string      `koanf:"check_time" validate:"required"`
	InviteDir      string      `koanf:"invite_dir" validate:"required"`
	Location       string      `koanf:"location"`
	SentLog        string      `koanf:"sent_log" validate:"required"`
	Logging        Logging     `koanf:"logging"`
}

// defaultTemplate is written when no config file exists yet, so a first
// run leaves something to edit instead of a stack of validation errors.
const defaultTemplate = `{
    "smtp_server": "smtp-mail.outlook.com",
    "smtp_port": 587,
    "sender_email": "your_email@outlook.com",
    "sender_password": "your_password",
    "recipients": ["recipient1@example.com", "recipient2@example.com"],
    "excel_file": "data/schedules.xlsx",
    "date_columns": {
        "start_date": "Start Date",
        "end_date": "End Date"
    },
    "reminder_days": [14, 7, 2, 1, -14],
    "check_time": "09:00",
    "invite_dir": "calendar_invites",
    "location": "Campus",
    "sent_log": "coursebell.db"
}
`

// Load reads the config file at path, applies COURSEBELL_* environment
// overrides and any command-line flag overrides, fills defaults and
// validates the result. When the file does not exist a default template is
// created and the load fails with instructions.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if writeErr := os.WriteFile(path, []byte(defaultTemplate), 0o600); writeErr != nil {
			return nil, fmt.Errorf("config %s not found and template could not be written: %w", path, writeErr)
		}
		return nil, fmt.Errorf("config %s did not exist; a template was created, edit it and run again", path)
	}

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", filepath.Ext(path))
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := k.Load(env.Provider("COURSEBELL_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "coursebell_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("load env overrides: %w", err)
	}
	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, fmt.Errorf("load flag overrides: %w", err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults fills the optional fields the file may omit.
func (c *Config) SetDefaults() {
	if len(c.ReminderDays) == 0 {
		c.ReminderDays = []int{14, 7, 2, 1, -14}
	}
	if c.CheckTime == "" {
		c.CheckTime = "09:00"
	}
	if c.InviteDir == "" {
		c.InviteDir = "calendar_invites"
	}
	if c.Location == "" {
		c.Location = "Campus"
	}
	if c.SentLog == "" {
		c.SentLog = "coursebell.db"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate checks the struct tags plus the fields the tags cannot express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, _, err := c.CheckClock(); err != nil {
		return err
	}
	return nil
}

// CheckClock parses check_time into its hour and minute components.
func (c *Config) CheckClock() (hour, minute int, err error) {
	t, parseErr := time.Parse("15:04", c.CheckTime)
	if parseErr != nil {
		return 0, 0, fmt.Errorf("check_time %q is not HH:MM: %w", c.CheckTime, parseErr)
	}
	return t.Hour(), t.Minute(), nil
}
