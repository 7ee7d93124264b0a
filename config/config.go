package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server       Server
	Database     Database
	Marking      Marking
	GeminiAPIKey string
	JWTSecret    string
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type Marking struct {
	Workers      int
	PollInterval time.Duration
	CallTimeout  time.Duration
	BackoffBase  time.Duration
	BackoffCap   time.Duration
	MaxRetries   int
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("MARKING_WORKERS", 4)
	viper.SetDefault("MARKING_POLL_INTERVAL", "2s")
	viper.SetDefault("MARKING_CALL_TIMEOUT", "60s")
	viper.SetDefault("MARKING_BACKOFF_BASE", "5s")
	viper.SetDefault("MARKING_BACKOFF_CAP", "2m")
	viper.SetDefault("MARKING_MAX_RETRIES", 4)

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Marking.Workers = viper.GetInt("MARKING_WORKERS")
	config.Marking.PollInterval = viper.GetDuration("MARKING_POLL_INTERVAL")
	config.Marking.CallTimeout = viper.GetDuration("MARKING_CALL_TIMEOUT")
	config.Marking.BackoffBase = viper.GetDuration("MARKING_BACKOFF_BASE")
	config.Marking.BackoffCap = viper.GetDuration("MARKING_BACKOFF_CAP")
	config.Marking.MaxRetries = viper.GetInt("MARKING_MAX_RETRIES")

	config.GeminiAPIKey = viper.GetString("GEMINI_API_KEY")
	config.JWTSecret = viper.GetString("JWT_SECRET")

	log.Info().Str("port", config.Server.Port).Int("markingWorkers", config.Marking.Workers).Msg("Config loaded")
	return &config, nil
}
