// Package config loads taskdeck settings from flags, environment and an
// optional .taskdeck file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	KeyURL     = "url"
	KeyTimeout = "timeout"
	KeyFPS     = "fps"
	KeyRefresh = "refresh"
	KeyLog     = "log"
	KeyDebug   = "debug"
	KeyStore   = "store"
)

// Config is the resolved configuration.
type Config struct {
	URL       string
	Timeout   time.Duration
	FPS       int
	Refresh   time.Duration
	LogPath   string
	Debug     bool
	StorePath string
}

// Load reads the config file (if any) and resolves every key. Flags bound with
// viper.BindPFlag take precedence over env, which takes precedence over the file.
func Load() (*Config, error) {
	viper.SetDefault(KeyURL, "http://localhost:3000")
	viper.SetDefault(KeyTimeout, "5s")
	viper.SetDefault(KeyFPS, 30)
	viper.SetDefault(KeyRefresh, "0s")
	viper.SetDefault(KeyLog, "~/.taskdeck.log")
	viper.SetDefault(KeyDebug, false)
	viper.SetDefault(KeyStore, "~/.taskdeck.db")
	viper.SetConfigName(".taskdeck") // .yaml is implicit
	viper.SetEnvPrefix("TASKDECK")
	viper.AutomaticEnv()

	if override := os.Getenv("TASKDECK_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")
	viper.AddConfigPath("$HOME")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", viper.ConfigFileUsed(), err)
		}
	}
	return current()
}

func current() (*Config, error) {
	cfg := &Config{
		URL:     viper.GetString(KeyURL),
		Timeout: viper.GetDuration(KeyTimeout),
		FPS:     viper.GetInt(KeyFPS),
		Refresh: viper.GetDuration(KeyRefresh),
		Debug:   viper.GetBool(KeyDebug),
	}

	var err error
	if cfg.LogPath, err = homedir.Expand(viper.GetString(KeyLog)); err != nil {
		return nil, fmt.Errorf("config: %s: %w", KeyLog, err)
	}
	if cfg.StorePath, err = homedir.Expand(viper.GetString(KeyStore)); err != nil {
		return nil, fmt.Errorf("config: %s: %w", KeyStore, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that the client and UI depend on.
func (c *Config) Validate() error {
	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("config: %s: %w", KeyURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: %s: %q is not an http(s) URL", KeyURL, c.URL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("config: %s must not be negative", KeyTimeout)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("config: %s must be positive, got %d", KeyFPS, c.FPS)
	}
	if c.Refresh < 0 {
		return fmt.Errorf("config: %s must not be negative", KeyRefresh)
	}
	return nil
}

// FrameInterval is the time between rendered frames.
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

// Watch calls onChange whenever the config file in use is written. It does
// nothing when no config file was found.
func Watch(onChange func(*Config, error)) {
	if viper.ConfigFileUsed() == "" {
		return
	}
	viper.OnConfigChange(func(e fsnotify.Event) {
		if e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
			return
		}
		onChange(current())
	})
	viper.WatchConfig()
}
