package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// DiscordToken authenticates the bot with the gateway
	DiscordToken string

	// ApplicationID is the bot's application ID, used for command registration
	ApplicationID string

	// GuildID optionally scopes command registration to one server
	GuildID string

	// RedisAddr is the address of the Redis backing the session store
	RedisAddr string

	// RedisPassword is the optional Redis password
	RedisPassword string

	// MoveTimeout is how long a session waits for the initiator's reaction
	MoveTimeout time.Duration

	// MoveWait is the stagger between moving the initiator and the rest
	MoveWait time.Duration

	// VCCreateChannel is the generator channel. Joining it spawns a fresh
	// room; it is never a valid move target.
	VCCreateChannel string

	// VCCategory is the category a destination channel must belong to
	VCCategory string

	// VCIgnoredChannels are channels excluded from consideration
	VCIgnoredChannels map[string]bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	token := os.Getenv("DISCORD_TOKEN")
	if token == "" {
		return nil, errors.New("DISCORD_TOKEN environment variable is required")
	}

	timeoutMinutes, err := intEnv("MOVE_TIMEOUT_MINUTES", 5)
	if err != nil {
		return nil, err
	}

	waitSeconds, err := intEnv("MOVE_WAIT_SECONDS", 3)
	if err != nil {
		return nil, err
	}

	ignored := make(map[string]bool)
	for _, id := range strings.Split(os.Getenv("VC_IGNORED_CHANNELS"), ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			ignored[id] = true
		}
	}

	return &Config{
		DiscordToken:      token,
		ApplicationID:     os.Getenv("APPLICATION_ID"),
		GuildID:           os.Getenv("GUILD_ID"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		MoveTimeout:       time.Duration(timeoutMinutes) * time.Minute,
		MoveWait:          time.Duration(waitSeconds) * time.Second,
		VCCreateChannel:   os.Getenv("VC_CREATE_CHANNEL"),
		VCCategory:        os.Getenv("VC_CATEGORY"),
		VCIgnoredChannels: ignored,
	}, nil
}

// IsIgnoredChannel checks whether a channel is excluded from moves
func (c *Config) IsIgnoredChannel(channelID string) bool {
	return c.VCIgnoredChannels[channelID]
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// intEnv parses an integer environment variable with a default
func intEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if parsed < 0 {
		return 0, fmt.Errorf("invalid value for %s: must not be negative", key)
	}

	return parsed, nil
}
