// Package config reads the bot configuration from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the bot
type Config struct {
	// DiscordToken is the bot token
	DiscordToken string

	// DiscordApplicationID is the application the commands register under
	DiscordApplicationID string

	// DiscordGuildID optionally scopes command registration to one guild
	DiscordGuildID string

	// RedisAddr is the address of the Redis server
	RedisAddr string

	// FragmentDir holds the dino part images
	FragmentDir string

	// OutputDir is where rendered dino images land
	OutputDir string

	// LogLevel controls log verbosity (debug, info, warn, error)
	LogLevel string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		DiscordToken:         os.Getenv("DISCORD_BOT_TOKEN"),
		DiscordApplicationID: os.Getenv("DISCORD_APPLICATION_ID"),
		DiscordGuildID:       os.Getenv("DISCORD_GUILD_ID"),
		RedisAddr:            getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		FragmentDir:          getEnvOrDefault("FRAGMENT_DIR", "./assets/fragments"),
		OutputDir:            getEnvOrDefault("OUTPUT_DIR", "./assets/dinos"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.DiscordToken == "" {
		return nil, fmt.Errorf("DISCORD_BOT_TOKEN is required")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
