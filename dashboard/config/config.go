package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

type Server struct {
	ListenAddr  string `env:"LISTEN_ADDR, default=0.0.0.0:5000"`
	MountPrefix string `env:"MOUNT_PREFIX, default=/api/github"`

	// forces debug logging
	Dev bool `env:"DEV, default=false"`
}

type Config struct {
	Server   Server `env:",prefix=QYTHEX_SERVER_"`
	SeedPath string `env:"QYTHEX_SEED_PATH"`
	LogLevel string `env:"QYTHEX_LOG_LEVEL, default=info"`
	// none, stdout or otlp; otlp reads the standard OTEL_EXPORTER_OTLP_* variables
	TelemetryExporter string `env:"QYTHEX_TELEMETRY_EXPORTER, default=none"`
	// comma-separated; empty allows any origin
	AllowedOrigins []string `env:"QYTHEX_ALLOWED_ORIGINS"`
}

func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	})
	if err != nil {
		return nil, err
	}

	prefix, err := normalizePrefix(cfg.Server.MountPrefix)
	if err != nil {
		return nil, err
	}
	cfg.Server.MountPrefix = prefix

	if cfg.Server.Dev {
		cfg.LogLevel = "debug"
	}

	return &cfg, nil
}

// normalizePrefix returns "/a/b" for "a/b/", and "" for "/".
func normalizePrefix(p string) (string, error) {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return "", nil
	}
	if strings.ContainsAny(p, "{}*") {
		return "", fmt.Errorf("mount prefix %q must not contain route patterns", p)
	}
	return "/" + p, nil
}
