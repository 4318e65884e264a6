package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

const (
	EnvDevelopment = "DEV"
	EnvProduction  = "PROD"
)

type AppConfig struct {
	PostgresURL     string
	AppEnv          string // EnvDevelopment or EnvProduction
	LogLevel        slog.Level
	FetchTimeout    time.Duration
	FetchMaxBytes   int64
	UserAgent       string
	ProxyURL        string
	MonitorTick     time.Duration
	TrendTick       time.Duration
	TrendWindowDays int
	MetricsAddr     string
	SMTPHost        string
	SMTPPort        string
	SMTPFrom        string
	SMTPPassword    string
	AppBaseURL      string
	NATSURL         string
	NATSSubject     string
	TelegramToken   string
	TelegramChatID  int64
}

var Config AppConfig

func LoadConfig() {
	cfg := AppConfig{}

	cfg.AppEnv = os.Getenv("APP_ENV")
	cfg.PostgresURL = loadRequired("POSTGRES_URL")

	cfg.FetchTimeout = time.Duration(loadInt("FETCH_TIMEOUT_SECONDS", 10)) * time.Second
	cfg.FetchMaxBytes = int64(loadInt("FETCH_MAX_BYTES", 5<<20))
	cfg.UserAgent = loadOptional("USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	cfg.ProxyURL = os.Getenv("PROXY_URL")

	cfg.MonitorTick = loadDuration("MONITOR_TICK", 15*time.Minute)
	cfg.TrendTick = loadDuration("TREND_TICK", 6*time.Hour)
	cfg.TrendWindowDays = loadInt("TREND_WINDOW_DAYS", 30)
	cfg.MetricsAddr = loadOptional("METRICS_ADDR", ":9090")

	cfg.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.SMTPPort = loadOptional("SMTP_PORT", "587")
	cfg.SMTPFrom = os.Getenv("SMTP_FROM")
	cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.AppBaseURL = os.Getenv("APP_BASE_URL")

	cfg.NATSURL = os.Getenv("NATS_URL")
	cfg.NATSSubject = loadOptional("NATS_SUBJECT", "rivalwatch.updates.high_impact")

	cfg.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	if cfg.TelegramToken != "" {
		cfg.TelegramChatID = loadChatID("TELEGRAM_CHAT_ID")
	}

	lvlString := loadOptional("LOG_LEVEL", "INFO")
	var err error
	cfg.LogLevel, err = parseLogLevel(lvlString)
	if err != nil {
		slog.Error("Invalid LOG_LEVEL", "error", err)
		cfg.LogLevel = slog.LevelInfo
	}

	Config = cfg
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	var err = level.UnmarshalText([]byte(s))
	return level, err
}

func loadRequired(key string) string {
	value := os.Getenv(key)
	if value == "" {
		slog.Error("Required env var not set", "key", key)
		os.Exit(1)
	}
	return value
}

func loadOptional(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// loadInt falls back to defaultValue when the variable is unset or not a positive integer.
func loadInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		slog.Error("Invalid integer env var, using default", "key", key, "value", value, "default", defaultValue)
		return defaultValue
	}
	return n
}

// loadChatID accepts any non-zero id. Group and channel chats have negative ids.
func loadChatID(key string) int64 {
	value := os.Getenv(key)
	if value == "" {
		return 0
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id == 0 {
		slog.Error("Invalid chat id env var", "key", key, "value", value)
		return 0
	}
	return id
}

func loadDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		slog.Error("Invalid duration env var, using default", "key", key, "value", value, "default", defaultValue.String())
		return defaultValue
	}
	return d
}

func (c AppConfig) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

func (c AppConfig) EmailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}

func (c AppConfig) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}
