package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Telegram  TelegramConfig  `yaml:"telegram" envconfig:"TELEGRAM"`
	Anthropic AnthropicConfig `yaml:"anthropic" envconfig:"ANTHROPIC"`
	Ledger    LedgerConfig    `yaml:"ledger" envconfig:"LEDGER"`
	Schedule  ScheduleConfig  `yaml:"schedule" envconfig:"SCHEDULE"`
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
}

// TelegramConfig contains bot credentials and delivery targets.
type TelegramConfig struct {
	Token        string `yaml:"token" envconfig:"TOKEN" validate:"required"`
	ReportChatID int64  `yaml:"report_chat_id" envconfig:"REPORT_CHAT_ID"`
	// CommandsPerMinute caps how fast a single chat may trigger reports.
	CommandsPerMinute float64 `yaml:"commands_per_minute" envconfig:"COMMANDS_PER_MINUTE" default:"6"`
}

// AnthropicConfig contains the summary-service credentials.
type AnthropicConfig struct {
	APIKey    string `yaml:"api_key" envconfig:"API_KEY"`
	Model     string `yaml:"model" envconfig:"MODEL" default:"claude-sonnet-4-5-20250929"`
	MaxTokens int64  `yaml:"max_tokens" envconfig:"MAX_TOKENS" default:"200"`
}

// LedgerConfig selects and parameterizes the Google Sheets source adapter.
type LedgerConfig struct {
	SpreadsheetID string `yaml:"spreadsheet_id" envconfig:"SPREADSHEET_ID" validate:"required"`
	SheetName     string `yaml:"sheet_name" envconfig:"SHEET_NAME" default:"ORDER"`
	CellRange     string `yaml:"cell_range" envconfig:"CELL_RANGE" default:"A:AF"`
	// Adapter is "file" (service-account JSON on disk) or "env" (key
	// material injected through the environment, hosted deploys).
	Adapter         string `yaml:"adapter" envconfig:"ADAPTER" default:"file" validate:"oneof=file env"`
	CredentialsFile string `yaml:"credentials_file" envconfig:"CREDENTIALS_FILE" default:"credentials.json"`
	ClientEmail     string `yaml:"client_email" envconfig:"CLIENT_EMAIL"`
	PrivateKey      string `yaml:"private_key" envconfig:"PRIVATE_KEY"`
	ProjectID       string `yaml:"project_id" envconfig:"PROJECT_ID"`
}

// ScheduleConfig controls the automatic report pushes.
type ScheduleConfig struct {
	Enabled  bool   `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	Timezone string `yaml:"timezone" envconfig:"TIMEZONE" default:"Asia/Manila"`
	// Cron expressions for the afternoon and end-of-day reports.
	AfternoonSpec string `yaml:"afternoon_spec" envconfig:"AFTERNOON_SPEC" default:"0 15 * * *"`
	EveningSpec   string `yaml:"evening_spec" envconfig:"EVENING_SPEC" default:"0 23 * * *"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/salesbot.log"`
}

// Load loads configuration from the environment (prefix SALES) and the
// optional YAML file. Precedence is env over file over envconfig defaults;
// the env pass runs first so the file merge can tell a real env value from
// a default filled in for an absent variable.
func Load(configFile string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process("SALES", &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			fileCfg, err := loadFromFile(configFile)
			if err != nil {
				return nil, fmt.Errorf("load config file: %w", err)
			}
			mergeFileConfig(&cfg, fileCfg)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	// Pre-set so a file that never mentions schedule.enabled is
	// distinguishable from one that turns it off.
	cfg.Schedule.Enabled = true
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// overlay applies a file value onto the env-processed config field. The file
// wins only when it actually sets the field and the corresponding SALES
// environment variable is absent; otherwise the env value, or the envconfig
// default standing in for it, is kept.
func overlay[T comparable](dst *T, fileVal T, envKey string) {
	var zero T
	if fileVal == zero {
		return
	}
	if _, ok := os.LookupEnv("SALES_" + envKey); ok {
		return
	}
	*dst = fileVal
}

func mergeFileConfig(cfg, file *Config) {
	overlay(&cfg.Telegram.Token, file.Telegram.Token, "TELEGRAM_TOKEN")
	overlay(&cfg.Telegram.ReportChatID, file.Telegram.ReportChatID, "TELEGRAM_REPORT_CHAT_ID")
	overlay(&cfg.Telegram.CommandsPerMinute, file.Telegram.CommandsPerMinute, "TELEGRAM_COMMANDS_PER_MINUTE")

	overlay(&cfg.Anthropic.APIKey, file.Anthropic.APIKey, "ANTHROPIC_API_KEY")
	overlay(&cfg.Anthropic.Model, file.Anthropic.Model, "ANTHROPIC_MODEL")
	overlay(&cfg.Anthropic.MaxTokens, file.Anthropic.MaxTokens, "ANTHROPIC_MAX_TOKENS")

	overlay(&cfg.Ledger.SpreadsheetID, file.Ledger.SpreadsheetID, "LEDGER_SPREADSHEET_ID")
	overlay(&cfg.Ledger.SheetName, file.Ledger.SheetName, "LEDGER_SHEET_NAME")
	overlay(&cfg.Ledger.CellRange, file.Ledger.CellRange, "LEDGER_CELL_RANGE")
	overlay(&cfg.Ledger.Adapter, file.Ledger.Adapter, "LEDGER_ADAPTER")
	overlay(&cfg.Ledger.CredentialsFile, file.Ledger.CredentialsFile, "LEDGER_CREDENTIALS_FILE")
	overlay(&cfg.Ledger.ClientEmail, file.Ledger.ClientEmail, "LEDGER_CLIENT_EMAIL")
	overlay(&cfg.Ledger.PrivateKey, file.Ledger.PrivateKey, "LEDGER_PRIVATE_KEY")
	overlay(&cfg.Ledger.ProjectID, file.Ledger.ProjectID, "LEDGER_PROJECT_ID")

	// Enabled defaults to true in both layers, so only an explicit file
	// "false" needs carrying over.
	if !file.Schedule.Enabled {
		if _, ok := os.LookupEnv("SALES_SCHEDULE_ENABLED"); !ok {
			cfg.Schedule.Enabled = false
		}
	}
	overlay(&cfg.Schedule.Timezone, file.Schedule.Timezone, "SCHEDULE_TIMEZONE")
	overlay(&cfg.Schedule.AfternoonSpec, file.Schedule.AfternoonSpec, "SCHEDULE_AFTERNOON_SPEC")
	overlay(&cfg.Schedule.EveningSpec, file.Schedule.EveningSpec, "SCHEDULE_EVENING_SPEC")

	overlay(&cfg.Server.Port, file.Server.Port, "SERVER_PORT")
	overlay(&cfg.Server.ReadTimeout, file.Server.ReadTimeout, "SERVER_READ_TIMEOUT")
	overlay(&cfg.Server.WriteTimeout, file.Server.WriteTimeout, "SERVER_WRITE_TIMEOUT")
	overlay(&cfg.Server.IdleTimeout, file.Server.IdleTimeout, "SERVER_IDLE_TIMEOUT")
	overlay(&cfg.Server.ShutdownTimeout, file.Server.ShutdownTimeout, "SERVER_SHUTDOWN_TIMEOUT")

	overlay(&cfg.Logging.Level, file.Logging.Level, "LOGGING_LEVEL")
	overlay(&cfg.Logging.Output, file.Logging.Output, "LOGGING_OUTPUT")
	overlay(&cfg.Logging.FilePath, file.Logging.FilePath, "LOGGING_FILE_PATH")
}

func (c *Config) validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if c.Ledger.Adapter == "env" && (c.Ledger.ClientEmail == "" || c.Ledger.PrivateKey == "") {
		return fmt.Errorf("env ledger adapter requires client_email and private_key")
	}

	if _, err := time.LoadLocation(c.Schedule.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Schedule.Timezone, err)
	}

	return nil
}

// Location resolves the configured report timezone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Schedule.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
