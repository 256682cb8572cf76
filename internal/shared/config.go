package shared

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	HTTPAddr    string
	MetricsAddr string

	DB       DBConfig
	MySQLDSN string

	RedisAddr string // empty keeps cache and chat history in process
	RedisDB   int
	RedisPass string

	GeminiKey     string
	GeminiModel   string
	GeminiBaseURL string
	Temperature   float32
	MaxTokens     int
	LLMRPS        int
	MaxToolRounds int

	MemoryWindow int
	MemoryTTL    time.Duration
	MaxResults   int
	CacheTTL     time.Duration
	SeedWorkers  int
}

type DBConfig struct {
	Host     string
	Port     int
	Name     string
	User     string
	Password string
}

// DSN builds a go-sql-driver DSN with the options the repository relies on.
func (d DBConfig) DSN() string {
	c := mysql.NewConfig()
	c.User = d.User
	c.Passwd = d.Password
	c.Net = "tcp"
	c.Addr = d.Host + ":" + strconv.Itoa(d.Port)
	c.DBName = d.Name
	c.ParseTime = true
	c.Loc = time.UTC
	c.Params = map[string]string{"charset": "utf8mb4"}
	return c.FormatDSN()
}

// ErrMissingAPIKey is returned when no Gemini API key is configured.
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not set")

// LoadDotEnv reads .env files if present; their values override the
// process environment.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Overload(f); err != nil {
			log.Warn().Err(err).Str("file", f).Msg("failed to load env file")
		}
	}
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		LogLevel:    env("LOG_LEVEL", "info"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: os.Getenv("METRICS_ADDR"),
		DB: DBConfig{
			Host:     env("DB_HOST", "localhost"),
			Port:     atoi("DB_PORT", 3306),
			Name:     env("DB_NAME", "hotel_db"),
			User:     env("DB_USER", "root"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisDB:       atoi("REDIS_DB", 0),
		RedisPass:     os.Getenv("REDIS_PASSWORD"),
		GeminiKey:     env("GEMINI_API_KEY", os.Getenv("GOOGLE_API_KEY")),
		GeminiModel:   env("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiBaseURL: os.Getenv("GEMINI_BASE_URL"),
		Temperature:   float32(atof("LLM_TEMPERATURE", 0.7)),
		MaxTokens:     atoi("LLM_MAX_TOKENS", 1000),
		LLMRPS:        atoi("LLM_RPS", 2),
		MaxToolRounds: atoi("MAX_TOOL_ROUNDS", 5),
		MemoryWindow:  atoi("MEMORY_WINDOW", 10),
		MemoryTTL:     time.Duration(atoi("MEMORY_TTL_SECONDS", 86400)) * time.Second,
		MaxResults:    atoi("MAX_RESULTS", 10),
		CacheTTL:      time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		SeedWorkers:   atoi("SEED_WORKERS", 4),
	}
	c.MySQLDSN = env("MYSQL_DSN", c.DB.DSN())
	return c
}

// RequireLLM fails fast when the chat front ends cannot reach the model.
func (c Config) RequireLLM() error {
	if c.GeminiKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
