package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	App struct {
		Env         string   `env:"APP_ENV" env-default:"development"`
		Port        int      `env:"APP_PORT" env-default:"3000"`
		SentryUrl   string   `env:"SENTRY_URL"`
		StaticDir   string   `env:"APP_STATIC_DIR" env-default:"./web"`
		Timezone    string   `env:"APP_TIMEZONE" env-default:"America/Caracas"`
		CORSOrigins []string `env:"APP_CORS_ORIGINS" env-separator:"," env-default:"*"`
		FeedAPIURL  string   `env:"FEED_API_URL" env-description:"Base URL of the posts API used by the feed renderer; empty means in-process"`
	}
	Instagram struct {
		AccessToken string        `env:"INSTAGRAM_ACCESS_TOKEN"`
		UserID      string        `env:"INSTAGRAM_USER_ID"`
		PostsLimit  int           `env:"INSTAGRAM_POSTS_LIMIT" env-default:"6"`
		DemoMode    bool          `env:"INSTAGRAM_DEMO_MODE" env-default:"false"`
		GraphURL    string        `env:"INSTAGRAM_GRAPH_URL" env-default:"https://graph.instagram.com"`
		Timeout     time.Duration `env:"INSTAGRAM_TIMEOUT" env-default:"0s"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT" env-default:"5432"`
		Host    string `env:"POSTGRES_HOST"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	Telegram struct {
		User  int64  `env:"TELEGRAM_USER"`
		Token string `env:"TELEGRAM_TOKEN"`
	}
	FetchLog struct {
		Retention time.Duration `env:"FETCHLOG_RETENTION" env-default:"720h"`
	}
}

// New reads the configuration once from the process environment. A .env file in
// the working directory is loaded first when present.
func New() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		help, _ := cleanenv.GetDescription(cfg, nil)
		return nil, fmt.Errorf("failed to read configuration: %w\n%s", err, help)
	}
	return cfg, nil
}

// GetDSN returns the lib/pq connection string for the configured database.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("dbname=%s user=%s password=%s host=%s port=%d sslmode=%s",
		c.Postgres.Name, c.Postgres.User, c.Postgres.Pass, c.Postgres.Host, c.Postgres.Port, c.Postgres.SslMode,
	)
}

// GetPgxURL returns the pgx pool connection URL for the configured database.
func (c *Config) GetPgxURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Postgres.User,
		c.Postgres.Pass,
		c.Postgres.Host,
		c.Postgres.Port,
		c.Postgres.Name,
		c.Postgres.SslMode,
	)
}

// FetchLogEnabled reports whether fetch events are persisted to Postgres.
func (c *Config) FetchLogEnabled() bool {
	return c.Postgres.Host != ""
}

// AlertsEnabled reports whether operator alerts go to Telegram.
func (c *Config) AlertsEnabled() bool {
	return c.Telegram.Token != "" && c.Telegram.User != 0
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
