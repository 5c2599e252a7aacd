package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const configEnv = "REMOTEPS_CONFIG"

// fileConfig mirrors the YAML layout of the optional config file.
type fileConfig struct {
	Server    serverSection    `yaml:"server"`
	Network   networkSection   `yaml:"network"`
	Refresh   refreshSection   `yaml:"refresh"`
	UI        uiSection        `yaml:"ui"`
	Discovery discoverySection `yaml:"discovery"`
	Logging   loggingSection   `yaml:"logging"`
}

type serverSection struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type networkSection struct {
	SendTimeoutMS      *int `yaml:"send_timeout_ms"`
	ConnectTimeoutMS   *int `yaml:"connect_timeout_ms"`
	ReplyTimeoutMS     *int `yaml:"reply_timeout_ms"`
	HandshakeTimeoutMS *int `yaml:"handshake_timeout_ms"`
	RecvBufferBytes    *int `yaml:"recv_buffer_bytes"`
}

type refreshSection struct {
	DeferredMS *int `yaml:"deferred_ms"`
	PeriodicMS *int `yaml:"periodic_ms"`
}

type uiSection struct {
	PollIntervalMS *int `yaml:"poll_interval_ms"`
}

type discoverySection struct {
	Enabled   *bool `yaml:"enabled"`
	Port      int   `yaml:"port"`
	TimeoutMS *int  `yaml:"timeout_ms"`
}

type loggingSection struct {
	Level string  `yaml:"level"`
	File  *string `yaml:"file"`
}

func defaultConfig() config {
	return config{
		host:             "127.0.0.1",
		port:             5002,
		sendTimeout:      5 * time.Second,
		connectTimeout:   0,
		replyTimeout:     3 * time.Second,
		handshakeTimeout: 3 * time.Second,
		recvBufferSize:   65536,
		deferredRefresh:  1500 * time.Millisecond,
		periodicRefresh:  5 * time.Second,
		pollInterval:     30 * time.Millisecond,
		discoveryEnabled: true,
		discoveryPort:    5001,
		discoveryTimeout: 2 * time.Second,
		logLevel:         "info",
		logFile:          filepath.Join(os.TempDir(), "remoteps.log"),
	}
}

func configPath() string {
	if p := strings.TrimSpace(os.Getenv(configEnv)); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "remoteps", "config.yaml")
}

// loadConfig reads the YAML file at path (missing is fine), then applies
// environment overrides and clamps.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		default:
			var fc fileConfig
			if err := yaml.Unmarshal(data, &fc); err != nil {
				return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
			fc.apply(&cfg)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	clampConfig(&cfg)
	return cfg, nil
}

func (fc fileConfig) apply(cfg *config) {
	if h := strings.TrimSpace(fc.Server.Host); h != "" {
		cfg.host = h
	}
	if fc.Server.Port != 0 {
		cfg.port = fc.Server.Port
	}
	setMS(&cfg.sendTimeout, fc.Network.SendTimeoutMS)
	setMS(&cfg.connectTimeout, fc.Network.ConnectTimeoutMS)
	setMS(&cfg.replyTimeout, fc.Network.ReplyTimeoutMS)
	setMS(&cfg.handshakeTimeout, fc.Network.HandshakeTimeoutMS)
	if fc.Network.RecvBufferBytes != nil {
		cfg.recvBufferSize = *fc.Network.RecvBufferBytes
	}
	setMS(&cfg.deferredRefresh, fc.Refresh.DeferredMS)
	setMS(&cfg.periodicRefresh, fc.Refresh.PeriodicMS)
	setMS(&cfg.pollInterval, fc.UI.PollIntervalMS)
	if fc.Discovery.Enabled != nil {
		cfg.discoveryEnabled = *fc.Discovery.Enabled
	}
	if fc.Discovery.Port != 0 {
		cfg.discoveryPort = fc.Discovery.Port
	}
	setMS(&cfg.discoveryTimeout, fc.Discovery.TimeoutMS)
	if l := strings.TrimSpace(fc.Logging.Level); l != "" {
		cfg.logLevel = l
	}
	if fc.Logging.File != nil {
		cfg.logFile = strings.TrimSpace(*fc.Logging.File)
	}
}

func setMS(dst *time.Duration, ms *int) {
	if ms == nil {
		return
	}
	*dst = time.Duration(*ms) * time.Millisecond
}

func applyEnv(cfg *config) error {
	if v := strings.TrimSpace(os.Getenv("REMOTEPS_HOST")); v != "" {
		cfg.host = v
	}
	if v := strings.TrimSpace(os.Getenv("REMOTEPS_PORT")); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("REMOTEPS_PORT: %w", err)
		}
		cfg.port = port
	}
	if v := strings.TrimSpace(os.Getenv("REMOTEPS_LOG_LEVEL")); v != "" {
		cfg.logLevel = v
	}
	if v, ok := os.LookupEnv("REMOTEPS_LOG_FILE"); ok {
		cfg.logFile = strings.TrimSpace(v)
	}
	return nil
}

func clampConfig(cfg *config) {
	if cfg.pollInterval < 5*time.Millisecond {
		cfg.pollInterval = 5 * time.Millisecond
	}
	if cfg.replyTimeout < 100*time.Millisecond {
		cfg.replyTimeout = 100 * time.Millisecond
	}
	if cfg.handshakeTimeout < 100*time.Millisecond {
		cfg.handshakeTimeout = 100 * time.Millisecond
	}
	if cfg.sendTimeout < 100*time.Millisecond {
		cfg.sendTimeout = 100 * time.Millisecond
	}
	if cfg.connectTimeout < 0 {
		cfg.connectTimeout = 0
	}
	if cfg.recvBufferSize < 4096 {
		cfg.recvBufferSize = 4096
	}
	if cfg.deferredRefresh < 0 {
		cfg.deferredRefresh = 0
	}
	if cfg.periodicRefresh < 0 {
		cfg.periodicRefresh = 0
	}
	if cfg.discoveryTimeout < 100*time.Millisecond {
		cfg.discoveryTimeout = 100 * time.Millisecond
	}
	if cfg.port < 0 || cfg.port > 65535 {
		cfg.port = 5002
	}
}
