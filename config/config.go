package config

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	TokenEnv   = "MONOBANK_API_TOKEN"
	BaseURLEnv = "MONOBANK_API_URL"

	// TokenPlaceholder is used when no token is configured. Upstream rejects it.
	TokenPlaceholder = "X_TOKEN_PLACEHOLDER"
	DefaultBaseURL   = "https://api.monobank.ua"
)

type Config struct {
	Token   Secret
	BaseURL string
}

func (c Config) HasToken() bool {
	return c.Token.Reveal() != TokenPlaceholder
}

// Load reads the process configuration. Files are .env files to load
// first; values already in the environment win over them.
func Load(files ...string) Config {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			detail := "failed to load env file"
			slog.WarnContext(context.Background(), detail, "file", f, "error", err)
		}
	}

	return Config{
		Token:   NewSecret(getEnv(TokenEnv, TokenPlaceholder)),
		BaseURL: strings.TrimRight(getEnv(BaseURLEnv, DefaultBaseURL), "/"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); len(value) > 0 {
		return value
	}
	return defaultValue
}
