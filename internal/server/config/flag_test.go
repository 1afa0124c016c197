package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd",
			"-a", "127.0.0.1:9090", "-g", "127.0.0.1:9091", "-d", "db", "-s", "secret",
			"-t", "60", "-u", "user", "-p", "password", "-b", "bucket", "-r", "us-west-1", "-e", "http://endpoint", "-m", "5",
		}, expectPanic: false,
			expected: &Config{
				EndpointAddrHTTP:      "127.0.0.1:9090",
				EndpointAddrHealth:    "127.0.0.1:9091",
				DatabaseDSN:           "db",
				SecretKey:             "secret",
				TokenValidityDuration: time.Hour,
				S3RootUser:            "user",
				S3RootPassword:        "password",
				S3Bucket:              "bucket",
				S3Region:              "us-west-1",
				S3BaseEndpoint:        "http://endpoint",
				MaxUploadSize:         5 << 20,
			}},
		{name: "bad number", args: []string{"cmd", "-t", "soon"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origArgs := os.Args
			t.Cleanup(func() { os.Args = origArgs })
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}

func TestParseFlags_LeavesUnsetValues(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = []string{"cmd", "-a", ":8080"}

	cfg := &Config{TokenValidityDuration: 90 * time.Second, MaxUploadSize: 1536 << 10}
	parseFlags(cfg)

	assert.Equal(t, ":8080", cfg.EndpointAddrHTTP)
	assert.Equal(t, 90*time.Second, cfg.TokenValidityDuration)
	assert.Equal(t, int64(1536<<10), cfg.MaxUploadSize)
}
