package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("SERVER_PORT", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.ServerPort)
	require.Equal(t, 50, cfg.SearchLimit)
	require.Equal(t, 100, cfg.ListingLimit)
	require.Equal(t, 10*time.Second, cfg.MarketTimeout)
	require.True(t, cfg.SeedSampleTokens)
	require.False(t, cfg.RequireSignature)
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knowl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server_port: "9090"
search_limit: 10
chat_model: test-model
market_timeout: 3s
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SERVER_PORT", "")
	t.Setenv("SEARCH_LIMIT", "25")
	t.Setenv("REQUIRE_SIGNATURE", "true")
	t.Setenv("JWT_SECRET", "a-real-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.ServerPort)
	require.Equal(t, 25, cfg.SearchLimit)
	require.Equal(t, "test-model", cfg.ChatModel)
	require.Equal(t, 3*time.Second, cfg.MarketTimeout)
	require.True(t, cfg.RequireSignature)
	require.Equal(t, "a-real-secret", cfg.JWTSecret)
}

func TestLoadConfig_DefaultSecretWithSignatures(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("REQUIRE_SIGNATURE", "true")

	_, err := LoadConfig()
	require.ErrorContains(t, err, "jwt secret")

	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.True(t, cfg.RequireSignature)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad int", "SEARCH_LIMIT", "many"},
		{"bad duration", "CHAT_TIMEOUT", "soon"},
		{"bad bool", "REQUIRE_SIGNATURE", "maybe"},
		{"bad port", "SERVER_PORT", "70000"},
		{"zero limit", "LISTING_LIMIT", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CONFIG_FILE", "")
			t.Setenv(tt.key, tt.value)
			_, err := LoadConfig()
			require.Error(t, err)
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("debug", "console")
	require.NoError(t, err)
	require.NotNil(t, logger)

	_, err = NewLogger("loud", "json")
	require.Error(t, err)
}
