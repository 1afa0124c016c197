package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Setenv(EnvHTTPAddr, ":8080")
	t.Setenv(EnvDatabaseDSN, "postgres://env")
	t.Setenv(EnvTokenValidity, "2h")
	t.Setenv(EnvMaxUploadSize, "2048")
	t.Setenv(EnvS3Endpoint, "http://minio:9000")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":8080", cfg.EndpointAddrHTTP)
	assert.Equal(t, "postgres://env", cfg.DatabaseDSN)
	assert.Equal(t, 2*time.Hour, cfg.TokenValidityDuration)
	assert.Equal(t, int64(2048), cfg.MaxUploadSize)
	assert.Equal(t, "http://minio:9000", cfg.S3BaseEndpoint)
	assert.Equal(t, ":50051", cfg.EndpointAddrHealth, "unset variables keep defaults")
}

func TestParseEnv_BadDurationPanics(t *testing.T) {
	t.Setenv(EnvShutdownTimeout, "soon")

	cfg := &Config{}
	require.Panics(t, func() { parseEnv(cfg) })
}

func TestParseEnv_BadSizePanics(t *testing.T) {
	t.Setenv(EnvMaxUploadSize, "big")

	cfg := &Config{}
	require.Panics(t, func() { parseEnv(cfg) })
}
