package config

import (
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config is the server configuration
type Config struct {
	Port        int      `env:"PORT" envDefault:"3001"`
	DataDir     string   `env:"DATA_DIR" envDefault:"data"`
	UploadsDir  string   `env:"UPLOADS_DIR" envDefault:"uploads"`
	LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	// SMTP relay for lead notifications. Leaving credentials empty disables e-mail.
	SMTP struct {
		Host     string `env:"SMTP_HOST"`
		Port     int    `env:"SMTP_PORT" envDefault:"587"`
		User     string `env:"SMTP_USER"`
		Password string `env:"SMTP_PASS"`
		From     string `env:"SMTP_FROM"`
	}

	// Destination address for lead notifications
	NotifyEmail string `env:"NOTIFY_EMAIL"`

	Telegram struct {
		BotToken string `env:"TELEGRAM_BOT_TOKEN"`
		ChatID   string `env:"TELEGRAM_CHAT_ID"`
	}

	Bookings struct {
		// file, sqlite or postgres
		Driver string `env:"BOOKINGS_DRIVER" envDefault:"file"`
		DSN    string `env:"BOOKINGS_DSN"`
	}

	// Buffer of pending lead notifications
	NotifyQueueSize int `env:"NOTIFY_QUEUE_SIZE" envDefault:"100"`

	// Periodic copies of the content file. A zero interval disables them.
	Backup struct {
		Interval time.Duration `env:"BACKUP_INTERVAL" envDefault:"24h"`
		Keep     int           `env:"BACKUP_KEEP" envDefault:"7"`
	}
}

// SMTPEnabled reports whether enough SMTP settings are present to relay mail
func (c *Config) SMTPEnabled() bool {
	return c.SMTP.Host != "" && c.SMTP.User != "" && c.SMTP.Password != "" && c.NotifyEmail != ""
}

// TelegramEnabled reports whether Telegram relay is configured
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// ClientConfig configures the admin command-line client
type ClientConfig struct {
	APIURL    string `env:"CMS_API_URL" envDefault:"http://localhost:3001"`
	CachePath string `env:"CMS_CACHE_PATH" envDefault:".cms-cache.json"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"warn"`

	// Quiet period before local edits are pushed to the server
	SaveDebounce time.Duration `env:"CMS_SAVE_DEBOUNCE" envDefault:"1s"`

	// Retries for a failed push, with a fixed delay between attempts
	SyncRetries    int           `env:"CMS_SYNC_RETRIES" envDefault:"2"`
	SyncRetryDelay time.Duration `env:"CMS_SYNC_RETRY_DELAY" envDefault:"2s"`

	HTTPTimeout time.Duration `env:"CMS_HTTP_TIMEOUT" envDefault:"10s"`
}

// LoadConfig reads the server configuration from the environment,
// after loading a .env file if one exists.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadClientConfig reads the admin client configuration from the environment
func LoadClientConfig() (*ClientConfig, error) {
	_ = godotenv.Load()

	cfg := &ClientConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
