// Package config loads sponsorctl settings. Values are layered with koanf:
// built-in defaults, then the JSON config file, then SPONSORCTL_* environment
// variables, each overriding the previous one.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	appDir     = "sponsorctl"
	configFile = "config.json"

	// EnvPrefix namespaces every environment override.
	EnvPrefix = "SPONSORCTL_"
	// PathEnv overrides the config file location.
	PathEnv = EnvPrefix + "CONFIG_PATH"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// HTTPConfig tunes the API client.
type HTTPConfig struct {
	Timeout       time.Duration `koanf:"timeout"`
	RetryAttempts int           `koanf:"retryattempts"`
	RetryDelay    time.Duration `koanf:"retrydelay"`
	// RequestsPerSecond of 0 disables client-side pacing.
	RequestsPerSecond float64 `koanf:"requestspersecond"`
	RateBurst         int     `koanf:"rateburst"`
}

// Configuration holds the application's persisted settings.
type Configuration struct {
	// Origin is the address the dashboard is served from; the API lives
	// under "<origin>/api". Empty means the local development server.
	Origin string     `koanf:"origin"`
	Debug  bool       `koanf:"debug"`
	// Trace prints a span for every request attempt to stderr.
	Trace bool       `koanf:"trace"`
	HTTP  HTTPConfig `koanf:"http"`

	path string
	mu   sync.RWMutex
}

func defaults() map[string]any {
	return map[string]any{
		"origin":                 "",
		"debug":                  false,
		"trace":                  false,
		"http.timeout":           "30s",
		"http.retryattempts":     3,
		"http.retrydelay":        "1s",
		"http.requestspersecond": 0,
		"http.rateburst":         1,
	}
}

// GetConfigDir returns the directory holding the config file and the
// credential storage.
func GetConfigDir() (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}
	return filepath.Dir(path), nil
}

// Path returns the config file location.
func Path() (string, error) {
	if p := os.Getenv(PathEnv); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not get user config directory: %w", err)
	}
	return filepath.Join(dir, appDir, configFile), nil
}

// Load reads configuration and fails if the config file does not exist.
func Load() (*Configuration, error) {
	return load(true)
}

// LoadOrCreate reads configuration, treating a missing file as empty.
func LoadOrCreate() (*Configuration, error) {
	return load(false)
}

func load(requireFile bool) (*Configuration, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if _, statErr := os.Stat(path); statErr == nil {
		// JSON is valid YAML, so the YAML parser reads the file as written by Save.
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file '%s': %w", path, err)
		}
	} else if !os.IsNotExist(statErr) || requireFile {
		return nil, statErr
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envKey,
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := &Configuration{path: path}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey maps SPONSORCTL_HTTP_TIMEOUT to http.timeout.
func envKey(k, v string) (string, any) {
	key := strings.TrimPrefix(k, EnvPrefix)
	if key == "CONFIG_PATH" {
		return "", nil
	}
	return strings.ReplaceAll(strings.ToLower(key), "_", "."), v
}

// Validate checks value ranges.
func (c *Configuration) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch {
	case c.HTTP.Timeout <= 0:
		return fmt.Errorf("%w: http.timeout must be positive", ErrInvalidConfig)
	case c.HTTP.RetryAttempts < 1:
		return fmt.Errorf("%w: http.retryattempts must be at least 1", ErrInvalidConfig)
	case c.HTTP.RetryDelay < 0:
		return fmt.Errorf("%w: http.retrydelay must not be negative", ErrInvalidConfig)
	case c.HTTP.RequestsPerSecond < 0:
		return fmt.Errorf("%w: http.requestspersecond must not be negative", ErrInvalidConfig)
	case c.HTTP.RequestsPerSecond > 0 && c.HTTP.RateBurst < 1:
		return fmt.Errorf("%w: http.rateburst must be at least 1 when pacing is enabled", ErrInvalidConfig)
	}
	return nil
}

// Set assigns a single dotted key from its string form. The result is
// validated but not saved.
func (c *Configuration) Set(key, value string) error {
	c.mu.Lock()
	prev := c.snapshot()
	err := c.assign(key, value)
	c.mu.Unlock()
	if err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		c.mu.Lock()
		c.restore(prev)
		c.mu.Unlock()
		return err
	}
	return nil
}

func (c *Configuration) assign(key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "origin":
		c.Origin = strings.TrimRight(value, "/")
	case "debug":
		c.Debug, err = strconv.ParseBool(value)
	case "trace":
		c.Trace, err = strconv.ParseBool(value)
	case "http.timeout":
		c.HTTP.Timeout, err = time.ParseDuration(value)
	case "http.retryattempts":
		c.HTTP.RetryAttempts, err = strconv.Atoi(value)
	case "http.retrydelay":
		c.HTTP.RetryDelay, err = time.ParseDuration(value)
	case "http.requestspersecond":
		c.HTTP.RequestsPerSecond, err = strconv.ParseFloat(value, 64)
	case "http.rateburst":
		c.HTTP.RateBurst, err = strconv.Atoi(value)
	default:
		return fmt.Errorf("%w: unknown key %q", ErrInvalidConfig, key)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, key, err)
	}
	return nil
}

type snapshot struct {
	origin string
	debug  bool
	trace  bool
	http   HTTPConfig
}

func (c *Configuration) snapshot() snapshot {
	return snapshot{origin: c.Origin, debug: c.Debug, trace: c.Trace, http: c.HTTP}
}

func (c *Configuration) restore(s snapshot) {
	c.Origin, c.Debug, c.Trace, c.HTTP = s.origin, s.debug, s.trace, s.http
}

// Values returns the configuration as dotted keys, durations in string form.
func (c *Configuration) Values() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return map[string]string{
		"origin":                 c.Origin,
		"debug":                  strconv.FormatBool(c.Debug),
		"trace":                  strconv.FormatBool(c.Trace),
		"http.timeout":           c.HTTP.Timeout.String(),
		"http.retryattempts":     strconv.Itoa(c.HTTP.RetryAttempts),
		"http.retrydelay":        c.HTTP.RetryDelay.String(),
		"http.requestspersecond": strconv.FormatFloat(c.HTTP.RequestsPerSecond, 'f', -1, 64),
		"http.rateburst":         strconv.Itoa(c.HTTP.RateBurst),
	}
}

// Save persists the configuration as JSON with 0600 permissions.
func (c *Configuration) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc := map[string]any{
		"origin": c.Origin,
		"debug":  c.Debug,
		"trace":  c.Trace,
		"http": map[string]any{
			"timeout":           c.HTTP.Timeout.String(),
			"retryattempts":     c.HTTP.RetryAttempts,
			"retrydelay":        c.HTTP.RetryDelay.String(),
			"requestspersecond": c.HTTP.RequestsPerSecond,
			"rateburst":         c.HTTP.RateBurst,
		},
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling config to JSON: %w", err)
	}

	path := c.path
	if path == "" {
		if path, err = Path(); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing configuration file: %w", err)
	}
	return nil
}
