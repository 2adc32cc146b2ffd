package config

import (
	"context"
	"testing"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(nil))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:5000", cfg.Server.ListenAddr)
	assert.Equal(t, "/api/github", cfg.Server.MountPrefix)
	assert.False(t, cfg.Server.Dev)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.SeedPath)
	assert.Empty(t, cfg.AllowedOrigins)
	assert.Equal(t, "none", cfg.TelemetryExporter)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		check   func(t *testing.T, cfg *Config)
		wantErr bool
	}{
		{
			name: "overrides",
			env: map[string]string{
				"QYTHEX_SERVER_LISTEN_ADDR":  "127.0.0.1:8080",
				"QYTHEX_SERVER_MOUNT_PREFIX": "api/v2/",
				"QYTHEX_SEED_PATH":           "/etc/qythex/seed.yaml",
				"QYTHEX_LOG_LEVEL":           "warn",
				"QYTHEX_ALLOWED_ORIGINS":     "https://a.example,https://b.example",
				"QYTHEX_TELEMETRY_EXPORTER":  "stdout",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "127.0.0.1:8080", cfg.Server.ListenAddr)
				assert.Equal(t, "/api/v2", cfg.Server.MountPrefix)
				assert.Equal(t, "/etc/qythex/seed.yaml", cfg.SeedPath)
				assert.Equal(t, "warn", cfg.LogLevel)
				assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
				assert.Equal(t, "stdout", cfg.TelemetryExporter)
			},
		},
		{
			name: "root mount",
			env:  map[string]string{"QYTHEX_SERVER_MOUNT_PREFIX": "/"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "", cfg.Server.MountPrefix)
			},
		},
		{
			name: "dev forces debug logging",
			env: map[string]string{
				"QYTHEX_SERVER_DEV": "true",
				"QYTHEX_LOG_LEVEL":  "error",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.Server.Dev)
				assert.Equal(t, "debug", cfg.LogLevel)
			},
		},
		{
			name:    "bad bool",
			env:     map[string]string{"QYTHEX_SERVER_DEV": "maybe"},
			wantErr: true,
		},
		{
			name:    "pattern in prefix",
			env:     map[string]string{"QYTHEX_SERVER_MOUNT_PREFIX": "/api/{org}"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := load(context.Background(), envconfig.MapLookuper(tt.env))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}
