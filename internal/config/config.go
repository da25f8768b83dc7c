package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultGraphQLEndpoint = "https://communitybanlist.com/graphql"
	DefaultBansPerPage     = 3

	logFilePrefix = "cblbot_"
	logRetention  = 7 * 24 * time.Hour
)

type Config struct {
	v      *viper.Viper
	Logger *log.Logger

	mu      sync.Mutex
	logFile *os.File
}

// NewConfig loads the configuration from various sources using viper
func NewConfig() (*Config, error) {
	// A missing .env is fine, the process environment is used as is.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.New(os.Stderr).Warnf("error reading .env file: %v", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	setDefaults(v)

	// Try to read config file (don't error if it doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		l := log.New(os.Stderr)
		l.Warnf("error reading config file: %v\nContinuing with envs...", err)
	}

	if err := bindEnvs(v); err != nil {
		return nil, fmt.Errorf("error binding environment variables: %w", err)
	}

	newCfg := &Config{v: v}

	if err := newCfg.RotateAndPruneLogs(); err != nil {
		// Fatal on purpose: a bot that can't write its logs is a bot nobody can debug.
		return nil, err
	}

	if err := validateConfig(newCfg); err != nil {
		return nil, err
	}

	return newCfg, nil
}

// RotateAndPruneLogs opens a fresh log file, points the logger at it and
// removes log files past the retention window.
func (c *Config) RotateAndPruneLogs() error {
	dir := c.v.GetString("log_dir")

	f, err := newLogFile(dir)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	c.mu.Lock()
	old := c.logFile
	c.logFile = f
	w := io.MultiWriter(os.Stderr, f)
	if c.Logger == nil {
		c.Logger = log.NewWithOptions(w, log.Options{ReportTimestamp: true})
	} else {
		c.Logger.SetOutput(w)
	}
	c.mu.Unlock()

	c.applyLogLevel()

	if old != nil {
		_ = old.Close()
	}

	if err := pruneOldLogFiles(dir, f.Name()); err != nil {
		return fmt.Errorf("failed to prune old log files: %w", err)
	}
	return nil
}

// SetLogLevel overrides the configured log level, e.g. from a CLI flag.
func (c *Config) SetLogLevel(level string) {
	if level == "" {
		return
	}
	c.v.Set("log_level", level)
	c.applyLogLevel()
}

func (c *Config) applyLogLevel() {
	lvl, err := log.ParseLevel(strings.ToLower(c.v.GetString("log_level")))
	if err != nil {
		c.Logger.Warnf("unknown log level %q, using debug", c.v.GetString("log_level"))
		lvl = log.DebugLevel
	}
	c.Logger.SetLevel(lvl)
}

// newLogFile generates a new log file
func newLogFile(dir string) (*os.File, error) {
	if dir == "" {
		return nil, fmt.Errorf("log directory is not set")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	name := filepath.Join(dir, fmt.Sprintf("%s%s.log", logFilePrefix, time.Now().Format("20060102_150405")))
	file, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	return file, nil
}

// pruneOldLogFiles removes bot log files older than the retention window.
// keep is never removed, even if its mtime is stale.
func pruneOldLogFiles(dir, keep string) error {
	logFiles, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read log directory: %w", err)
	}

	for _, file := range logFiles {
		if file.IsDir() || !strings.HasPrefix(file.Name(), logFilePrefix) {
			continue
		}

		path := filepath.Join(dir, file.Name())
		if path == keep {
			continue
		}

		info, err := file.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) > logRetention {
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to remove old log file %s: %w", file.Name(), err)
			}
		}
	}

	return nil
}

// NewMockConfig creates a mock configuration for testing
func NewMockConfig(kv map[string]interface{}) *Config {
	v := viper.New()
	setDefaults(v)
	for k, val := range kv {
		v.Set(k, val)
	}
	return &Config{
		v:      v,
		Logger: log.New(io.Discard),
	}
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log_dir", "./logs")
	v.SetDefault("log_level", "debug")
	v.SetDefault("graphql_endpoint", DefaultGraphQLEndpoint)
	v.SetDefault("bans_per_page", DefaultBansPerPage)
}

// bindEnvs binds environment variables to viper keys. Earlier env names win.
func bindEnvs(v *viper.Viper) error {
	bindings := []struct {
		key  string
		envs []string
	}{
		{"bot_token", []string{"CBL_BOT_TOKEN", "DISCORD_TOKEN"}},
		{"client_id", []string{"CBL_CLIENT_ID", "DISCORD_CLIENT_ID"}},
		{"guild_id", []string{"CBL_GUILD_ID"}},
		{"graphql_endpoint", []string{"CBL_GRAPHQL_ENDPOINT"}},
		{"log_dir", []string{"CBL_LOG_DIR"}},
		{"log_level", []string{"CBL_LOG_LEVEL"}},
		{"log_channel_id", []string{"CBL_LOG_CHANNEL_ID"}},
		{"bans_per_page", []string{"CBL_BANS_PER_PAGE"}},
	}

	for _, binding := range bindings {
		args := append([]string{binding.key}, binding.envs...)
		if err := v.BindEnv(args...); err != nil {
			return fmt.Errorf("error binding %s environment variable: %w", binding.key, err)
		}
	}
	return nil
}

// validateConfig validates that all required configuration fields are present
func validateConfig(cfg *Config) error {
	if cfg.v.GetString("bot_token") == "" {
		return fmt.Errorf("bot_token is required (set DISCORD_TOKEN or CBL_BOT_TOKEN environment variable)")
	}

	if cfg.v.GetString("client_id") == "" {
		cfg.Logger.Warn("client_id is not set (set DISCORD_CLIENT_ID or CBL_CLIENT_ID environment variable); register will not work")
	}

	return nil
}
