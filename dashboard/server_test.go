package dashboard

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "bad log level",
			env:  map[string]string{"QYTHEX_LOG_LEVEL": "loud"},
			want: "invalid log level",
		},
		{
			name: "missing seed",
			env:  map[string]string{"QYTHEX_SEED_PATH": filepath.Join(t.TempDir(), "nope.yaml")},
			want: "failed to load seed",
		},
		{
			name: "unknown exporter",
			env:  map[string]string{"QYTHEX_TELEMETRY_EXPORTER": "carrier-pigeon"},
			want: "failed to setup telemetry",
		},
		{
			name: "bad dev flag",
			env:  map[string]string{"QYTHEX_SERVER_DEV": "sometimes"},
			want: "failed to load config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			err := Run(context.Background(), Command())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	t.Setenv("QYTHEX_SERVER_LISTEN_ADDR", "127.0.0.1:0")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, Run(ctx, Command()))
}
