package config

import (
	"os"
	"strconv"
	"time"

	"github.com/deadlyfingers/ARStudioGame/internal/logger"

	"github.com/joho/godotenv"
)

// Config holds the client settings
type Config struct {
	Host       string // match service base URL, e.g. https://myfunctions.example.net
	AccessCode string // access-code query parameter sent with every request

	PinLength    int
	JoinPlayerID string

	// Protocol timings
	CountdownTicks     int
	ReadyPollInterval  time.Duration
	JoinRetryInterval  time.Duration
	ResultPollInterval time.Duration
	RematchDelay       time.Duration
	LineDuration       time.Duration

	LogLevel string
	LogJSON  bool
}

// ServerConfig holds the dev match service settings
type ServerConfig struct {
	AppPort     string
	AccessCode  string
	JWTSecret   string // when set, the code param must be a valid HS256 token
	RedisAddr   string // when set, lobbies/matches live in redis
	DatabaseURL string // when set, lobbies/matches live in postgres

	LogLevel string
	LogJSON  bool
}

// Load reads the client configuration from env
func Load() *Config {
	_ = godotenv.Load()

	host := os.Getenv("MATCH_HOST")
	if host == "" {
		logger.Fatal("MATCH_HOST is not set")
	}

	joinPlayerID := os.Getenv("JOIN_PLAYER_ID")
	if joinPlayerID == "" {
		joinPlayerID = "Player2"
	}

	return &Config{
		Host:       host,
		AccessCode: os.Getenv("MATCH_ACCESS_CODE"),

		PinLength:    envInt("PIN_LENGTH", 4),
		JoinPlayerID: joinPlayerID,

		CountdownTicks:     envInt("COUNTDOWN_TICKS", 10),
		ReadyPollInterval:  envMillis("READY_POLL_MS", 8000),
		JoinRetryInterval:  envMillis("JOIN_RETRY_MS", 4000),
		ResultPollInterval: envMillis("RESULT_POLL_MS", 1000),
		RematchDelay:       envMillis("REMATCH_DELAY_MS", 3000),
		LineDuration:       envMillis("LINE_DURATION_MS", 1878),

		LogLevel: envString("LOG_LEVEL", "info"),
		LogJSON:  os.Getenv("LOG_JSON") == "true",
	}
}

// LoadServer reads the dev match service configuration from env
func LoadServer() *ServerConfig {
	_ = godotenv.Load()

	return &ServerConfig{
		AppPort:     envString("APP_PORT", "8080"),
		AccessCode:  os.Getenv("MATCH_ACCESS_CODE"),
		JWTSecret:   os.Getenv("MATCH_JWT_SECRET"),
		RedisAddr:   os.Getenv("MATCH_REDIS_ADDR"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		LogLevel: envString("LOG_LEVEL", "info"),
		LogJSON:  os.Getenv("LOG_JSON") == "true",
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func envMillis(key string, fallback int) time.Duration {
	return time.Duration(envInt(key, fallback)) * time.Millisecond
}
