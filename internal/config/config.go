package config

import (
	"log/slog"
	"time"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Config do cmd/api
type Config struct {
	Port        string
	StoreDriver string
	DatabaseURL string // caminho do SQLite ou DSN do Postgres
	MongoURI    string
	MongoDB     string
	RabbitURI   string // vazio desliga a publicação de eventos
	RabbitQueue string

	GeminiAPIKey string
	GeminiModel  string
	AITimeout    time.Duration

	CORSOrigins []string

	// fuso para next_interview_date sem offset
	Location *time.Location

	LogLevel          slog.Level
	ReadHeaderTimeout time.Duration
	RequestTimeout    time.Duration
	ShutdownTimeout   time.Duration
}

func Load() *Config {
	return &Config{
		Port:        getenvAny("8000", "PORT", "API_PORT"),
		StoreDriver: getenv("STORE_DRIVER", DriverSQLite),
		DatabaseURL: getenv("DATABASE_URL", "job_hunting.db"),
		MongoURI:    getenvAny("mongodb://localhost:27017", "MONGO_URI"),
		MongoDB:     getenv("MONGO_DB", "job_hunting"),
		RabbitURI:   getenvAny("", "RABBITMQ_URL", "RABBIT_URI"),
		RabbitQueue: getenvAny("company_events", "RABBITMQ_QUEUE", "RABBIT_QUEUE"),

		GeminiAPIKey: getenv("GEMINI_API_KEY", ""),
		GeminiModel:  getenv("GEMINI_MODEL", "gemini-2.5-flash"),
		AITimeout:    parseDuration("AI_TIMEOUT", 30*time.Second),

		CORSOrigins: parseList("CORS_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:3001",
			"https://*.onrender.com",
		}),

		Location: parseLocation("APP_TIMEZONE"),

		LogLevel:          parseLevel(getenv("LOG_LEVEL", "info")),
		ReadHeaderTimeout: parseDuration("READ_HEADER_TIMEOUT", 5*time.Second),
		RequestTimeout:    parseDuration("REQUEST_TIMEOUT", 5*time.Second),
		ShutdownTimeout:   parseDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}
