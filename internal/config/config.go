package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Bind            string
	Port            string
	Token           string
	CdpURL          string
	ChromeBinary    string
	Headless        bool
	UserAgent       string
	Locale          string
	NavigateTimeout time.Duration
	ActionTimeout   time.Duration
	StateDir        string
	Parallel        int
	LogLevel        string
	MaxDocs         int
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func envBoolOr(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func homeDir() string {
	h, _ := os.UserHomeDir()
	return h
}

func (c *RuntimeConfig) ListenAddr() string {
	return c.Bind + ":" + c.Port
}

// SlogLevel maps LogLevel onto slog, defaulting to info.
func (c *RuntimeConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// FileConfig is the on-disk configuration. JSON files parse too.
type FileConfig struct {
	Bind        string `yaml:"bind,omitempty" json:"bind,omitempty"`
	Port        string `yaml:"port" json:"port"`
	Token       string `yaml:"token,omitempty" json:"token,omitempty"`
	CdpURL      string `yaml:"cdpUrl,omitempty" json:"cdpUrl,omitempty"`
	StateDir    string `yaml:"stateDir" json:"stateDir"`
	Headless    *bool  `yaml:"headless,omitempty" json:"headless,omitempty"`
	UserAgent   string `yaml:"userAgent,omitempty" json:"userAgent,omitempty"`
	Locale      string `yaml:"locale,omitempty" json:"locale,omitempty"`
	Parallel    *int   `yaml:"parallel,omitempty" json:"parallel,omitempty"`
	MaxDocs     *int   `yaml:"maxDocs,omitempty" json:"maxDocs,omitempty"`
	LogLevel    string `yaml:"logLevel,omitempty" json:"logLevel,omitempty"`
	TimeoutSec  int    `yaml:"timeoutSec,omitempty" json:"timeoutSec,omitempty"`
	NavigateSec int    `yaml:"navigateSec,omitempty" json:"navigateSec,omitempty"`
}

// Path returns the config file location.
func Path() string {
	return envOr("ARIAQUERY_CONFIG", filepath.Join(homeDir(), ".ariaquery", "config.yaml"))
}

func Load() *RuntimeConfig {
	cfg := &RuntimeConfig{
		Bind:            envOr("ARIAQUERY_BIND", "127.0.0.1"),
		Port:            envOr("ARIAQUERY_PORT", "9871"),
		Token:           os.Getenv("ARIAQUERY_TOKEN"),
		CdpURL:          os.Getenv("CDP_URL"),
		ChromeBinary:    os.Getenv("CHROME_BINARY"),
		Headless:        envBoolOr("ARIAQUERY_HEADLESS", true),
		UserAgent:       os.Getenv("ARIAQUERY_USER_AGENT"),
		Locale:          os.Getenv("ARIAQUERY_LOCALE"),
		NavigateTimeout: envDurationOr("ARIAQUERY_NAV_TIMEOUT", 30*time.Second),
		ActionTimeout:   envDurationOr("ARIAQUERY_TIMEOUT", 15*time.Second),
		StateDir:        envOr("ARIAQUERY_STATE_DIR", filepath.Join(homeDir(), ".ariaquery")),
		Parallel:        envIntOr("ARIAQUERY_PARALLEL", 4),
		LogLevel:        envOr("ARIAQUERY_LOG_LEVEL", "info"),
		MaxDocs:         envIntOr("ARIAQUERY_MAX_DOCS", 64),
	}

	fc, err := ReadFile(Path())
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("ignoring config file", "path", Path(), "err", err)
		}
		return cfg
	}
	cfg.apply(fc)
	return cfg
}

// ReadFile parses a config file.
func ReadFile(path string) (FileConfig, error) {
	var fc FileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse %s: %w", path, err)
	}
	return fc, nil
}

// apply overlays file values that the environment did not set.
func (c *RuntimeConfig) apply(fc FileConfig) {
	if fc.Bind != "" && os.Getenv("ARIAQUERY_BIND") == "" {
		c.Bind = fc.Bind
	}
	if fc.Port != "" && os.Getenv("ARIAQUERY_PORT") == "" {
		c.Port = fc.Port
	}
	if fc.Token != "" && os.Getenv("ARIAQUERY_TOKEN") == "" {
		c.Token = fc.Token
	}
	if fc.CdpURL != "" && os.Getenv("CDP_URL") == "" {
		c.CdpURL = fc.CdpURL
	}
	if fc.StateDir != "" && os.Getenv("ARIAQUERY_STATE_DIR") == "" {
		c.StateDir = fc.StateDir
	}
	if fc.Headless != nil && os.Getenv("ARIAQUERY_HEADLESS") == "" {
		c.Headless = *fc.Headless
	}
	if fc.UserAgent != "" && os.Getenv("ARIAQUERY_USER_AGENT") == "" {
		c.UserAgent = fc.UserAgent
	}
	if fc.Locale != "" && os.Getenv("ARIAQUERY_LOCALE") == "" {
		c.Locale = fc.Locale
	}
	if fc.Parallel != nil && *fc.Parallel > 0 && os.Getenv("ARIAQUERY_PARALLEL") == "" {
		c.Parallel = *fc.Parallel
	}
	if fc.MaxDocs != nil && *fc.MaxDocs > 0 && os.Getenv("ARIAQUERY_MAX_DOCS") == "" {
		c.MaxDocs = *fc.MaxDocs
	}
	if fc.LogLevel != "" && os.Getenv("ARIAQUERY_LOG_LEVEL") == "" {
		c.LogLevel = fc.LogLevel
	}
	if fc.TimeoutSec > 0 && os.Getenv("ARIAQUERY_TIMEOUT") == "" {
		c.ActionTimeout = time.Duration(fc.TimeoutSec) * time.Second
	}
	if fc.NavigateSec > 0 && os.Getenv("ARIAQUERY_NAV_TIMEOUT") == "" {
		c.NavigateTimeout = time.Duration(fc.NavigateSec) * time.Second
	}
}

func DefaultFileConfig() FileConfig {
	h := true
	p := 4
	m := 64
	return FileConfig{
		Port:        "9871",
		StateDir:    filepath.Join(homeDir(), ".ariaquery"),
		Headless:    &h,
		Parallel:    &p,
		MaxDocs:     &m,
		LogLevel:    "info",
		TimeoutSec:  15,
		NavigateSec: 30,
	}
}

// ErrConfigExists is returned by WriteDefault when path exists and
// overwrite is false.
var ErrConfigExists = errors.New("config file already exists")

// WriteDefault writes DefaultFileConfig to path as YAML.
func WriteDefault(path string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("%s: %w", path, ErrConfigExists)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(DefaultFileConfig())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Describe prints cfg with the token masked.
func Describe(w io.Writer, cfg *RuntimeConfig) {
	fmt.Fprintln(w, "Current configuration:")
	fmt.Fprintf(w, "  Listen:     %s\n", cfg.ListenAddr())
	fmt.Fprintf(w, "  CDP URL:    %s\n", cfg.CdpURL)
	fmt.Fprintf(w, "  Token:      %s\n", MaskToken(cfg.Token))
	fmt.Fprintf(w, "  State Dir:  %s\n", cfg.StateDir)
	fmt.Fprintf(w, "  Headless:   %v\n", cfg.Headless)
	if cfg.UserAgent != "" {
		fmt.Fprintf(w, "  User Agent: %s\n", cfg.UserAgent)
	}
	if cfg.Locale != "" {
		fmt.Fprintf(w, "  Locale:     %s\n", cfg.Locale)
	}
	fmt.Fprintf(w, "  Parallel:   %d\n", cfg.Parallel)
	fmt.Fprintf(w, "  Max Docs:   %d\n", cfg.MaxDocs)
	fmt.Fprintf(w, "  Log Level:  %s\n", cfg.LogLevel)
	fmt.Fprintf(w, "  Timeouts:   action=%v navigate=%v\n", cfg.ActionTimeout, cfg.NavigateTimeout)
}

func MaskToken(t string) string {
	if t == "" {
		return "(none)"
	}
	if len(t) <= 8 {
		return "***"
	}
	return t[:4] + "..." + t[len(t)-4:]
}
