package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	wisherror "github.com/msto63/wishbrick/foundation/core/error"
)

// Worker names, in menu order.
const (
	WorkerSort   = "sort"
	WorkerFilter = "filter"
	WorkerSearch = "search"
	WorkerTotals = "totals"
)

// Workers lists every worker name.
var Workers = []string{WorkerSort, WorkerFilter, WorkerSearch, WorkerTotals}

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Client  ClientConfig  `toml:"client" yaml:"client"`
	Store   StoreConfig   `toml:"store" yaml:"store"`
	Sort    WorkerConfig  `toml:"sort" yaml:"sort"`
	Filter  WorkerConfig  `toml:"filter" yaml:"filter"`
	Search  SearchConfig  `toml:"search" yaml:"search"`
	Totals  WorkerConfig  `toml:"totals" yaml:"totals"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name      string `toml:"name" yaml:"name"`
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
	// LogFile receives the interactive client's logs; empty means
	// logs/wish.log in the runtime directory.
	LogFile string `toml:"log_file" yaml:"log_file"`
}

// ClientConfig holds settings of the interactive client
type ClientConfig struct {
	Pause       Duration `toml:"pause" yaml:"pause"`
	EmptyPause  Duration `toml:"empty_pause" yaml:"empty_pause"`
	CallTimeout Duration `toml:"call_timeout" yaml:"call_timeout"`
	// FailFast makes calls to an unreachable worker fail immediately
	// instead of blocking until it comes up.
	FailFast bool `toml:"fail_fast" yaml:"fail_fast"`
}

// StoreConfig selects the record store driver
type StoreConfig struct {
	Driver string `toml:"driver" yaml:"driver"`
}

// WorkerConfig holds the endpoint of one worker
type WorkerConfig struct {
	Host string `toml:"host" yaml:"host"`
	Port int    `toml:"port" yaml:"port"`
	// Address overrides host:port when the client dials the worker.
	Address string `toml:"address" yaml:"address"`
}

// SearchConfig holds the search worker settings
type SearchConfig struct {
	WorkerConfig `yaml:",inline"`
	SearchURL    string `toml:"search_url" yaml:"search_url"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.UnmarshalText([]byte(node.Value))
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, wisherror.Wrap(err, "failed to read config").
			WithCode(wisherror.CodeConfigError).
			WithDetail("path", path)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(content, &cfg)
	default:
		_, err = toml.Decode(string(content), &cfg)
	}
	if err != nil {
		return nil, wisherror.Wrap(err, "failed to parse config").
			WithCode(wisherror.CodeConfigError).
			WithDetail("path", path)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	return &cfg, nil
}

// LoadFromEnv loads configuration from WISH_CONFIG or the default
// locations. When no file exists the defaults are returned. Environment
// overrides are applied in every case.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv("WISH_CONFIG")
	if path == "" {
		home, _ := os.UserHomeDir()
		defaultPaths := []string{
			"./configs/config.toml",
			"./config.toml",
			filepath.Join(home, ".config/wishbrick/config.toml"),
		}
		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	cfg := Default()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.General.Name == "" {
		c.General.Name = "Wish Upon a Brick"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "json"
	}

	if c.Client.Pause.Duration == 0 {
		c.Client.Pause.Duration = time.Second
	}
	if c.Client.EmptyPause.Duration == 0 {
		c.Client.EmptyPause.Duration = 2 * time.Second
	}

	if c.Store.Driver == "" {
		c.Store.Driver = "memory"
	}

	defaultWorker(&c.Sort, 5555)
	defaultWorker(&c.Filter, 5556)
	defaultWorker(&c.Search.WorkerConfig, 5557)
	defaultWorker(&c.Totals, 5558)

	if c.Search.SearchURL == "" {
		c.Search.SearchURL = "https://www.google.com/search?q="
	}
}

func defaultWorker(w *WorkerConfig, port int) {
	if w.Host == "" {
		w.Host = "localhost"
	}
	if w.Port == 0 {
		w.Port = port
	}
}

// expandEnvVars expands environment variables in path-like values
func (c *Config) expandEnvVars() {
	c.General.LogFile = os.ExpandEnv(c.General.LogFile)
}

// ApplyEnv applies WISH_* environment overrides:
// WISH_LOG_LEVEL, WISH_STORE_DRIVER, WISH_SEARCH_URL and
// WISH_<WORKER>_HOST, WISH_<WORKER>_PORT, WISH_<WORKER>_ADDR.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("WISH_LOG_LEVEL"); v != "" {
		c.General.LogLevel = v
	}
	if v := os.Getenv("WISH_STORE_DRIVER"); v != "" {
		c.Store.Driver = v
	}
	if v := os.Getenv("WISH_SEARCH_URL"); v != "" {
		c.Search.SearchURL = v
	}

	for _, name := range Workers {
		w := c.Worker(name)
		prefix := "WISH_" + strings.ToUpper(name) + "_"
		if v := os.Getenv(prefix + "HOST"); v != "" {
			w.Host = v
		}
		if v := os.Getenv(prefix + "PORT"); v != "" {
			port, err := strconv.Atoi(v)
			if err != nil {
				return wisherror.Wrap(err, "invalid port in environment").
					WithCode(wisherror.CodeConfigError).
					WithDetail("variable", prefix+"PORT")
			}
			w.Port = port
		}
		if v := os.Getenv(prefix + "ADDR"); v != "" {
			w.Address = v
		}
	}
	return nil
}

// Validate checks ports, driver and client timings
func (c *Config) Validate() error {
	for _, name := range Workers {
		w := c.Worker(name)
		if w.Port < 1 || w.Port > 65535 {
			return wisherror.Newf("%s worker port %d out of range", name, w.Port).
				WithCode(wisherror.CodeConfigError)
		}
	}
	switch c.Store.Driver {
	case "memory", "sqlite":
	default:
		return wisherror.Newf("unknown store driver %q", c.Store.Driver).
			WithCode(wisherror.CodeConfigError)
	}
	if c.Search.SearchURL == "" {
		return wisherror.New("search_url must not be empty").WithCode(wisherror.CodeConfigError)
	}
	if c.Client.Pause.Duration < 0 || c.Client.EmptyPause.Duration < 0 || c.Client.CallTimeout.Duration < 0 {
		return wisherror.New("client durations must not be negative").WithCode(wisherror.CodeConfigError)
	}
	return nil
}

// Worker returns the endpoint settings of the named worker, or nil
func (c *Config) Worker(name string) *WorkerConfig {
	switch name {
	case WorkerSort:
		return &c.Sort
	case WorkerFilter:
		return &c.Filter
	case WorkerSearch:
		return &c.Search.WorkerConfig
	case WorkerTotals:
		return &c.Totals
	default:
		return nil
	}
}

// ListenAddress returns the address a worker binds to
func (c *Config) ListenAddress(name string) string {
	w := c.Worker(name)
	if w == nil {
		return ""
	}
	return net.JoinHostPort(w.Host, strconv.Itoa(w.Port))
}

// GetServiceAddress returns the address the client dials for a worker
func (c *Config) GetServiceAddress(name string) string {
	w := c.Worker(name)
	if w == nil {
		return ""
	}
	if w.Address != "" {
		return w.Address
	}
	return fmt.Sprintf("%s:%d", w.Host, w.Port)
}
