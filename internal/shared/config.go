package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	MySQLDSN  string
	RedisAddr string
	RedisDB   int
	RedisPass string

	LLMBase  string
	LLMKey   string
	LLMModel string

	AmadeusBase   string
	AmadeusKey    string
	AmadeusSecret string

	Workers          int
	SearchTimeout    time.Duration
	SortOrder        string
	PlanMaxTokens    int
	SummaryMaxTokens int
	Temperature      float64
}

func Load() Config {
	// .env is a dev convenience; absence is fine
	_ = godotenv.Load()

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
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),

		MySQLDSN:  env("MYSQL_DSN", "root:root@tcp(localhost:3306)/basefly?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr: env("REDIS_ADDR", "localhost:6379"),
		RedisPass: env("REDIS_PASSWORD", ""),
		RedisDB:   atoi("REDIS_DB", 0),

		LLMBase:  env("LLM_BASE_URL", ""),
		LLMKey:   env("LLM_API_KEY", ""),
		LLMModel: env("LLM_MODEL", "gpt-4o"),

		AmadeusBase:   env("AMADEUS_BASE_URL", ""),
		AmadeusKey:    env("AMADEUS_API_KEY", ""),
		AmadeusSecret: env("AMADEUS_API_SECRET", ""),

		Workers:          atoi("SEARCH_WORKERS", 8),
		SearchTimeout:    time.Duration(atoi("SEARCH_TIMEOUT_SECONDS", 60)) * time.Second,
		SortOrder:        env("OFFER_SORT_ORDER", "price_asc"),
		PlanMaxTokens:    atoi("PLAN_MAX_TOKENS", 500),
		SummaryMaxTokens: atoi("SUMMARY_MAX_TOKENS", 500),
		Temperature:      atof("MODEL_TEMPERATURE", 0.7),
	}
	if c.LLMKey == "" {
		log.Warn().Msg("LLM_API_KEY is empty")
	}
	if c.AmadeusKey == "" || c.AmadeusSecret == "" {
		log.Warn().Msg("Amadeus credentials are empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
