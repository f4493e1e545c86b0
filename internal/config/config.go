package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	DBHost            string        `env:"DB_HOST,required"`
	DBPort            int           `env:"DB_PORT,default=5432"`
	DBUser            string        `env:"DB_USER,required"`
	DBPassword        string        `env:"DB_PASSWORD,required"`
	DBName            string        `env:"DB_NAME,required"`
	DBSSLMode         string        `env:"DB_SSLMODE,default=disable"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS,default=10"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS,default=25"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME,default=30m"`

	AlpacaBaseURL   string        `env:"ALPACA_BASE_URL,default=https://data.alpaca.markets"`
	AlpacaKeyID     string        `env:"ALPACA_KEY_ID"`
	AlpacaSecretKey string        `env:"ALPACA_SECRET_KEY"`
	AlpacaTimeout   time.Duration `env:"ALPACA_TIMEOUT,default=10s"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT,default=587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM"`

	// MonitorSchedule is a cron expression; the default checks alerts once a
	// day. The scheduler never overlaps runs of the same job.
	MonitorSchedule    string `env:"MONITOR_SCHEDULE,default=@daily"`
	MonitorConcurrency int    `env:"MONITOR_CONCURRENCY,default=4"`

	HTTPAddr string `env:"HTTP_ADDR,default=:8080"`
	LogLevel string `env:"LOG_LEVEL,default=info"`
}

func Load(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
