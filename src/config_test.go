package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"REMOTEPS_HOST", "REMOTEPS_PORT", "REMOTEPS_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	// LookupEnv must miss, not see an empty value.
	t.Setenv("REMOTEPS_LOG_FILE", "")
	os.Unsetenv("REMOTEPS_LOG_FILE")
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	clearConfigEnv(t)
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, defaultConfig(), cfg)
	require.Equal(t, "127.0.0.1", cfg.host)
	require.Equal(t, 5002, cfg.port)
	require.Equal(t, 5*time.Second, cfg.sendTimeout)
	require.Equal(t, 3*time.Second, cfg.replyTimeout)
	require.Equal(t, 30*time.Millisecond, cfg.pollInterval)
	require.Equal(t, 65536, cfg.recvBufferSize)
}

func TestLoadConfigFile(t *testing.T) {
	clearConfigEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `server:
  host: pm.lan
  port: 6000
network:
  reply_timeout_ms: 750
  recv_buffer_bytes: 8192
refresh:
  deferred_ms: 0
  periodic_ms: 0
ui:
  poll_interval_ms: 1
discovery:
  enabled: false
  port: 6001
logging:
  level: debug
  file: ""
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "pm.lan", cfg.host)
	require.Equal(t, 6000, cfg.port)
	require.Equal(t, 750*time.Millisecond, cfg.replyTimeout)
	require.Equal(t, 8192, cfg.recvBufferSize)
	require.Zero(t, cfg.deferredRefresh)
	require.Zero(t, cfg.periodicRefresh)
	require.Equal(t, 5*time.Millisecond, cfg.pollInterval)
	require.False(t, cfg.discoveryEnabled)
	require.Equal(t, 6001, cfg.discoveryPort)
	require.Equal(t, "debug", cfg.logLevel)
	require.Empty(t, cfg.logFile)
	require.Equal(t, 3*time.Second, cfg.handshakeTimeout)
}

func TestLoadConfigMalformed(t *testing.T) {
	clearConfigEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o600))
	_, err := loadConfig(path)
	require.ErrorContains(t, err, "failed to parse config file")
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("REMOTEPS_HOST", "10.0.0.1")
	t.Setenv("REMOTEPS_PORT", "7000")
	t.Setenv("REMOTEPS_LOG_FILE", "")

	cfg, err := loadConfig("")
	require.NoError(t, err)
	require.Equal(t, "10.0.0.1", cfg.host)
	require.Equal(t, 7000, cfg.port)
	require.Empty(t, cfg.logFile)

	t.Setenv("REMOTEPS_PORT", "seven")
	_, err = loadConfig("")
	require.ErrorContains(t, err, "REMOTEPS_PORT")
}

func TestClampConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.port = 70000
	cfg.recvBufferSize = 10
	cfg.sendTimeout = 0
	cfg.periodicRefresh = -time.Second
	cfg.connectTimeout = -time.Second
	clampConfig(&cfg)
	require.Equal(t, 5002, cfg.port)
	require.Equal(t, 4096, cfg.recvBufferSize)
	require.Equal(t, 100*time.Millisecond, cfg.sendTimeout)
	require.Zero(t, cfg.periodicRefresh)
	require.Zero(t, cfg.connectTimeout)
}

func TestConfigPath(t *testing.T) {
	t.Setenv(configEnv, "/etc/remoteps.yaml")
	require.Equal(t, "/etc/remoteps.yaml", configPath())
	t.Setenv(configEnv, "")
	require.Contains(t, configPath(), filepath.Join("remoteps", "config.yaml"))
}
