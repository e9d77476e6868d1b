package config

import (
	"context"
	"os"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	VaultPath        string `env:"VAULT_PATH" envDefault:"ogwallet.vault"`
	StoreDriver      string `env:"STORE_DRIVER" envDefault:"sqlite"`
	PostgresDSN      string `env:"POSTGRES_DSN"`
	VaultPassphrase  string `env:"VAULT_PASSPHRASE"`
	ScanDaysBack     int    `env:"SCAN_DAYS_BACK" envDefault:"90"`
	ScanProgress     int    `env:"SCAN_PROGRESS_EVERY" envDefault:"10"`
	CategoriesFile   string `env:"CATEGORIES_FILE"`
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   int64  `env:"TELEGRAM_CHAT_ID"`
	ApiKey           string `env:"API_KEY"`
	ListenAddr       string `env:"LISTEN_ADDR" envDefault:":8080"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty        bool   `env:"LOG_PRETTY" envDefault:"false"`
}

// Load reads an optional .env file and then the process environment. Values already present in
// the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}

		if err := godotenv.Load(f); err != nil {
			return nil, errors.Wrapf(err, "failed to load %s", f)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse environment")
	}

	if cfg.ScanDaysBack <= 0 {
		return nil, errors.Newf("SCAN_DAYS_BACK must be positive, got %d", cfg.ScanDaysBack)
	}

	return &cfg, nil
}

// Logger configures the global logger and returns a context carrying it.
func (c *Config) Logger(ctx context.Context) context.Context {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || c.LogLevel == "" {
		level = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(level)

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if c.LogPretty {
		logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	log.Logger = logger

	return logger.WithContext(ctx)
}

func (c *Config) TelegramEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != 0
}
