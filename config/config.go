package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port string
		Mode string // Gin mode: debug, release or test
	}
	Database struct {
		DSN string // Data Source Name ("memory" or a SQLite file path)
	}
	Assessment struct {
		DefinitionPath     string  `mapstructure:"definition_path"`     // Optional YAML questionnaire; empty uses the built-in one
		MaxRecommendations int     `mapstructure:"max_recommendations"` // Upper bound on recommendations per result
		AttentionRatio     float64 `mapstructure:"attention_ratio"`     // Category share below which targeted advice is guaranteed
	}
	CORS struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	}
}

// AppConfig is the global configuration instance.
var AppConfig Config

// Load reads an optional .env file, then config.yaml from the search paths, then
// environment overrides. Missing files are not an error.
func Load(searchPaths ...string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("WARN: [Config] Could not load .env file: %v", err)
	}

	v := viper.New()
	v.SetConfigName("config") // Name of config file (without extension)
	v.SetConfigType("yaml")
	if len(searchPaths) == 0 {
		searchPaths = []string{"./config", ".", "../config"}
	}
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.dsn", "memory")
	v.SetDefault("assessment.definition_path", "")
	v.SetDefault("assessment.max_recommendations", 6)
	v.SetDefault("assessment.attention_ratio", 0.6)
	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetEnvPrefix("KRF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading configuration file: %w", err)
		}
		log.Println("WARN: [Config] Configuration file (config.yaml) not found. Using environment variables and defaults.")
	} else {
		log.Printf("INFO: [Config] Using configuration file %s.", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling configuration: %w", err)
	}

	// Unprefixed overrides used by the hosting platform.
	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Server.Port = port
		log.Printf("INFO: [Config] Server port overridden by environment variable SERVER_PORT: %s", port)
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		cfg.Database.DSN = dsn
		log.Println("INFO: [Config] Database DSN overridden by environment variable DATABASE_DSN.")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the services cannot work with.
func (c Config) Validate() error {
	if c.Assessment.MaxRecommendations < 1 {
		return fmt.Errorf("assessment.max_recommendations must be at least 1, got %d", c.Assessment.MaxRecommendations)
	}
	if c.Assessment.AttentionRatio <= 0 || c.Assessment.AttentionRatio > 1 {
		return fmt.Errorf("assessment.attention_ratio must be in (0, 1], got %g", c.Assessment.AttentionRatio)
	}
	return nil
}

// LoadConfig loads configuration into AppConfig and exits on failure.
func LoadConfig() {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("FATAL: [Config] %v", err)
	}
	AppConfig = cfg
	log.Println("INFO: [Config] Configuration loading complete.")
}
