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
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:5678", c.ServerEndpointAddr)
	assert.Equal(t, "127.0.0.1:50051", c.HealthEndpointAddr)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, "session.json", c.SessionFile)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = []string{"bin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://127.0.0.1:5678", cfg.ServerEndpointAddr)
	assert.Equal(t, 3*time.Second, cfg.OnlineCheckInterval)
}

func TestLoadConfig_KeepsSubSecondJSONDurations(t *testing.T) {
	p := filepath.Join(t.TempDir(), "client.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"online_check_interval":"500ms","request_timeout":"1500ms"}`), 0o600))

	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = []string{"bin", "-c", p}

	cfg := LoadConfig()
	assert.Equal(t, 500*time.Millisecond, cfg.OnlineCheckInterval)
	assert.Equal(t, 1500*time.Millisecond, cfg.RequestTimeout)
}

func TestLoadConfig_ClampsNonPositiveSettings(t *testing.T) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = []string{"bin", "-i", "0", "-t=-5"}

	cfg := LoadConfig()
	assert.Equal(t, DefaultOnlineCheckInterval, cfg.OnlineCheckInterval)
	assert.Zero(t, cfg.RequestTimeout)
}
