// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; the session token goes to the OS keychain.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"travelgo/cli/internal/backend"
	"travelgo/cli/internal/logging"
	"travelgo/cli/internal/xdg"
)

// DefaultBaseURL is the hosted TravelGo backend.
const DefaultBaseURL = "https://x8ki-letl-twmt.n7.xano.io/api:Rfm_61dW/"

// Environment variables read by Resolve.
const (
	EnvBaseURL        = "TRAVELGO_BASE_URL"
	EnvConnectTimeout = "TRAVELGO_CONNECT_TIMEOUT"
	EnvReadTimeout    = "TRAVELGO_READ_TIMEOUT"
	EnvLogLevel       = "TRAVELGO_LOG_LEVEL"
)

// Config holds non-sensitive CLI settings.
type Config struct {
	BaseURL        string            `json:"base_url" validate:"required,http_url"`
	ConnectTimeout Duration          `json:"connect_timeout" validate:"gt=0"`
	ReadTimeout    Duration          `json:"read_timeout" validate:"gt=0"`
	LogLevel       string            `json:"log_level" validate:"loglevel"`
	Endpoints      backend.Endpoints `json:"endpoints,omitzero"`
}

// Overrides come from command-line flags and win over everything else.
type Overrides struct {
	BaseURL string
	Verbose bool
	// DotEnv is the .env file to read; empty means ".env" in the working directory.
	DotEnv string
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		ConnectTimeout: Duration(backend.DefaultConnectTimeout),
		ReadTimeout:    Duration(backend.DefaultReadTimeout),
		LogLevel:       "info",
	}
}

// Backend converts the settings into a client configuration.
func (c Config) Backend() backend.Config {
	return backend.Config{
		BaseURL:        c.BaseURL,
		ConnectTimeout: c.ConnectTimeout.Std(),
		ReadTimeout:    c.ReadTimeout.Std(),
		Endpoints:      c.Endpoints,
	}
}

// Path returns the path to the config file.
func Path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration; a missing file returns defaults and fields absent
// from the file keep their defaults.
func Load() (Config, error) {
	c := Defaults()
	p, err := Path()
	if err != nil {
		return c, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return c, err
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parse %s: %w", p, err)
	}
	return c, nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

// Resolve layers the config file, the .env file, the environment and flags,
// in that order, and validates the result.
func Resolve(o Overrides) (Config, error) {
	c, err := Load()
	if err != nil {
		return c, err
	}
	if err := loadDotEnv(o.DotEnv); err != nil {
		return c, err
	}
	if err := c.applyEnv(os.LookupEnv); err != nil {
		return c, err
	}
	if v := strings.TrimSpace(o.BaseURL); v != "" {
		c.BaseURL = v
	}
	if o.Verbose {
		c.LogLevel = "debug"
	}
	return c, c.Validate()
}

// loadDotEnv reads KEY=VALUE pairs without overriding variables already set.
func loadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvBaseURL); ok && strings.TrimSpace(v) != "" {
		c.BaseURL = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		c.LogLevel = strings.TrimSpace(v)
	}
	for _, d := range []struct {
		key string
		dst *Duration
	}{
		{EnvConnectTimeout, &c.ConnectTimeout},
		{EnvReadTimeout, &c.ReadTimeout},
	} {
		v, ok := lookup(d.key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		parsed, err := ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", d.key, err)
		}
		*d.dst = parsed
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		_, err := logging.ParseLevel(fl.Field().String())
		return err == nil
	})
	return v
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Field() {
		case "BaseURL":
			problems = append(problems, fmt.Sprintf("base_url %q must be an absolute http(s) URL", c.BaseURL))
		case "ConnectTimeout":
			problems = append(problems, "connect_timeout must be positive")
		case "ReadTimeout":
			problems = append(problems, "read_timeout must be positive")
		case "LogLevel":
			problems = append(problems, fmt.Sprintf("log_level %q must be one of %s", c.LogLevel, strings.Join(logging.Levels, ", ")))
		default:
			problems = append(problems, fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
}

// Duration is a time.Duration stored as a Go duration string ("20s").
// Bare numbers are read as seconds.
type Duration time.Duration

// ParseDuration accepts "20s", "1m30s" or a bare number of seconds.
func ParseDuration(s string) (Duration, error) {
	s = strings.TrimSpace(s)
	if d, err := time.ParseDuration(s); err == nil {
		return Duration(d), nil
	}
	secs, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return Duration(secs * float64(time.Second)), nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

func (d Duration) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

func (d *Duration) UnmarshalJSON(b []byte) error {
	var secs float64
	if err := json.Unmarshal(b, &secs); err == nil {
		*d = Duration(secs * float64(time.Second))
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string or a number of seconds")
	}
	parsed, err := ParseDuration(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
