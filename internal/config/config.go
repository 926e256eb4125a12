// Package config provides configuration management for lexctl.
//
// This package handles all configuration-related functionality including:
//   - The API base path under which backend calls are issued
//   - The backend address the console proxy forwards to
//   - Console server settings (host, port)
//   - Logging and terminal output preferences
//
// Values are resolved once at startup from, in increasing priority: built-in
// defaults, an optional YAML config file, a .env file, process environment
// variables (LEXCHAIN_ prefix, see envNames) and finally command-line flags. The resulting
// Config is treated as immutable for the rest of the process lifetime.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// DefaultBasePath is the proxy prefix used when no override is set.
	// The console server rewrites /lexapi/* to the backend.
	DefaultBasePath = "/lexapi"

	// DefaultBackendURL is where the LexChain backend listens by default.
	DefaultBackendURL = "http://localhost:8000"

	// DefaultServerHost is the default console host address.
	DefaultServerHost = "localhost"

	// DefaultServerPort is the default console port.
	DefaultServerPort = 3000

	// DefaultLogLevel is the default minimum log level.
	DefaultLogLevel = "info"

	// DefaultColorMode is the default terminal color mode.
	DefaultColorMode = "auto"

	// EnvPrefix is the prefix for all environment variables.
	EnvPrefix = "LEXCHAIN"

	// LegacyBaseEnv is the base path variable used by the original web front
	// end. It is honoured when LEXCHAIN_API_BASE is not set.
	LegacyBaseEnv = "NEXT_PUBLIC_API_BASE"

	// DefaultConfigName is the config file name searched for when no explicit
	// file is given (lexctl.yaml).
	DefaultConfigName = "lexctl"
)

// Config represents the complete application configuration.
type Config struct {
	// API holds settings for backend calls made by the view controller.
	API APIConfig `mapstructure:"api"`

	// Backend holds the upstream the console proxy forwards to.
	Backend BackendConfig `mapstructure:"backend"`

	// Server holds the console HTTP server configuration.
	Server ServerConfig `mapstructure:"server"`

	// Logging holds logging settings.
	Logging LoggingConfig `mapstructure:"logging"`

	// Output holds terminal output settings.
	Output OutputConfig `mapstructure:"output"`
}

// APIConfig configures how backend calls are issued.
type APIConfig struct {
	// Base is the base path or URL prepended to every backend endpoint.
	// A relative path (e.g., "/lexapi") is resolved against the console
	// origin so that calls go through the rewrite proxy. An absolute URL
	// (e.g., "http://localhost:8000") bypasses the proxy.
	Base string `mapstructure:"base"`

	// Timeout bounds a single backend call. Zero leaves the transport
	// default in place.
	Timeout time.Duration `mapstructure:"timeout"`
}

// BackendConfig configures the upstream LexChain backend.
type BackendConfig struct {
	// URL is the backend root URL (e.g., "http://localhost:8000").
	URL string `mapstructure:"url"`
}

// ServerConfig represents the console HTTP server configuration.
type ServerConfig struct {
	// Host is the listen host (e.g., "localhost", "0.0.0.0").
	Host string `mapstructure:"host"`

	// Port is the listen TCP port.
	Port int `mapstructure:"port"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level"`
}

// OutputConfig contains terminal output settings.
type OutputConfig struct {
	// Color is one of auto, always, never.
	Color string `mapstructure:"color"`
}

// NewDefaultConfig creates a new configuration instance with default values.
//
// Returns:
//   - A pointer to a newly created Config with default values.
//
// Example:
//
//	cfg := config.NewDefaultConfig()
//	fmt.Printf("Console: %s\n", cfg.GetServerAddress())
func NewDefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Base: DefaultBasePath,
		},
		Backend: BackendConfig{
			URL: DefaultBackendURL,
		},
		Server: ServerConfig{
			Host: DefaultServerHost,
			Port: DefaultServerPort,
		},
		Logging: LoggingConfig{
			Level: DefaultLogLevel,
		},
		Output: OutputConfig{
			Color: DefaultColorMode,
		},
	}
}

// Load reads configuration from the optional config file, a .env file and
// environment variables.
//
// Parameters:
//   - cfgFile: Explicit config file path. Empty searches for lexctl.yaml in
//     the working directory and $HOME/.config/lexctl; a missing file is not
//     an error in that case.
//
// Returns:
//   - The resolved configuration
//   - An error if the config file or .env file cannot be parsed, or the
//     result fails validation
//
// Example:
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return fmt.Errorf("loading config: %w", err)
//	}
func Load(cfgFile string) (*Config, error) {
	// .env never overrides variables already present in the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading .env: %w", err)
	}

	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/lexctl")
	}

	if err := bindEnv(v); err != nil {
		return nil, fmt.Errorf("binding environment: %w", err)
	}
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.API.Base = ResolveBasePath(cfg.API.Base)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// envNames maps config keys to the environment variables that set them,
// in priority order. api.base is handled by baseEnvNames.
var envNames = map[string][]string{
	"api.timeout":   {EnvPrefix + "_API_TIMEOUT", EnvPrefix + "_HTTP_TIMEOUT"},
	"backend.url":   {EnvPrefix + "_BACKEND_URL"},
	"server.host":   {EnvPrefix + "_SERVER_HOST"},
	"server.port":   {EnvPrefix + "_SERVER_PORT"},
	"logging.level": {EnvPrefix + "_LOGGING_LEVEL", EnvPrefix + "_LOG_LEVEL"},
	"output.color":  {EnvPrefix + "_OUTPUT_COLOR"},
}

func bindEnv(v *viper.Viper) error {
	for key, names := range envNames {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return err
		}
	}
	if names := baseEnvNames(); len(names) > 0 {
		return v.BindEnv(append([]string{"api.base"}, names...)...)
	}
	return nil
}

// baseEnvNames returns the base path variables that carry a value, in
// priority order. A blank or whitespace-only variable counts as unset, so it
// does not hide the legacy variable or the config file.
func baseEnvNames() []string {
	var names []string
	for _, name := range []string{EnvPrefix + "_API_BASE", LegacyBaseEnv} {
		if strings.TrimSpace(os.Getenv(name)) != "" {
			names = append(names, name)
		}
	}
	return names
}

func setDefaults(v *viper.Viper) {
	def := NewDefaultConfig()
	v.SetDefault("api.base", def.API.Base)
	v.SetDefault("api.timeout", def.API.Timeout)
	v.SetDefault("backend.url", def.Backend.URL)
	v.SetDefault("server.host", def.Server.Host)
	v.SetDefault("server.port", def.Server.Port)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("output.color", def.Output.Color)
}

// ResolveBasePath applies the base path fallback rule: a blank or
// whitespace-only override yields DefaultBasePath.
func ResolveBasePath(override string) string {
	if strings.TrimSpace(override) == "" {
		return DefaultBasePath
	}
	return strings.TrimSpace(override)
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d (must be between 1-65535)", c.Server.Port)
	}
	if _, err := url.Parse(c.API.Base); err != nil {
		return fmt.Errorf("invalid api base %q: %w", c.API.Base, err)
	}
	backend, err := url.Parse(c.Backend.URL)
	if err != nil || backend.Scheme == "" || backend.Host == "" {
		return fmt.Errorf("invalid backend url %q", c.Backend.URL)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("invalid api timeout %s", c.API.Timeout)
	}
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color mode %q: must be auto, always, or never", c.Output.Color)
	}
	return nil
}

// GetServerAddress returns the listen address in host:port form.
//
// Example:
//
//	addr := cfg.GetServerAddress()
//	// Returns: "localhost:3000"
func (c *Config) GetServerAddress() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// Origin returns the URL the console is reachable at from the local host.
//
// Wildcard listen hosts are replaced with localhost.
//
// Example:
//
//	cfg.Server.Host = "0.0.0.0"
//	cfg.Origin() // "http://localhost:3000"
func (c *Config) Origin() string {
	host := c.Server.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(c.Server.Port))
}

// APIBaseURL returns the absolute URL backend endpoints are appended to.
//
// The base path is resolved against Origin(), so "/lexapi" becomes
// "http://localhost:3000/lexapi" while an absolute base is returned as-is.
// Any trailing slash is dropped.
func (c *Config) APIBaseURL() (string, error) {
	return ResolveBaseURL(c.Origin(), c.API.Base)
}

// ResolveBaseURL resolves base against origin.
//
// Parameters:
//   - origin: Absolute URL used when base is relative
//   - base: Base path or absolute URL
//
// Returns:
//   - The absolute base URL without a trailing slash
//   - An error if either value cannot be parsed or the result is not absolute
func ResolveBaseURL(origin, base string) (string, error) {
	ref, err := url.Parse(ResolveBasePath(base))
	if err != nil {
		return "", fmt.Errorf("invalid api base %q: %w", base, err)
	}
	if !ref.IsAbs() {
		root, err := url.Parse(origin)
		if err != nil {
			return "", fmt.Errorf("invalid origin %q: %w", origin, err)
		}
		if !root.IsAbs() {
			return "", fmt.Errorf("cannot resolve api base %q without an absolute origin", base)
		}
		ref = root.ResolveReference(ref)
	}
	return strings.TrimRight(ref.String(), "/"), nil
}
