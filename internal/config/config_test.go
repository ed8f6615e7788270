package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "play.example.com", cfg.Host)
	assert.Equal(t, 25565, cfg.Port)
	assert.Equal(t, "MyBot", cfg.Username)
	assert.Empty(t, cfg.Password)
	assert.Empty(t, cfg.Version)
	assert.Empty(t, cfg.Owner)
	assert.Equal(t, 60*time.Second, cfg.AFKEvery())
	assert.Equal(t, 5*time.Second, cfg.ReconnectDelay)
	assert.Equal(t, "ws://127.0.0.1:8765/bot", cfg.BridgeURL)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MC_HOST", "mc.local")
	t.Setenv("MC_PORT", "25570")
	t.Setenv("MC_OWNER", " Steve ")
	t.Setenv("AFK_INTERVAL", "0")
	t.Setenv("MC_RECONNECT_DELAY", "250ms")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "mc.local", cfg.Host)
	assert.Equal(t, 25570, cfg.Port)
	assert.Equal(t, "Steve", cfg.Owner)
	assert.Zero(t, cfg.AFKEvery())
	assert.Equal(t, 250*time.Millisecond, cfg.ReconnectDelay)
}

func TestLoadDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("MC_USER=FromFile\nMC_VERSION=1.20.4\n"), 0o644))
	t.Setenv("MC_USER", "FromEnv")
	// godotenv пишет в окружение процесса — подчистим после теста
	t.Cleanup(func() { _ = os.Unsetenv("MC_VERSION") })

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "FromEnv", cfg.Username)
	assert.Equal(t, "1.20.4", cfg.Version)
}

func TestValidate(t *testing.T) {
	base := Config{Port: 25565, Username: "bot", ReconnectDelay: time.Second, BridgeURL: "ws://localhost/bot"}
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.Port = 0 }},
		{"port too big", func(c *Config) { c.Port = 70000 }},
		{"no username", func(c *Config) { c.Username = "" }},
		{"no delay", func(c *Config) { c.ReconnectDelay = 0 }},
		{"http bridge", func(c *Config) { c.BridgeURL = "http://localhost/bot" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
