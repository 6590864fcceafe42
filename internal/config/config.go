// Package config loads the blogsmith configuration file. The file is YAML
// with environment variable expansion, so secrets and machine-specific paths
// can live in the environment (or a .env file) instead of the config itself.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/blogsmith/internal/errors"
)

// DefaultPath is where Load looks when no --config flag is given.
const DefaultPath = "blogsmith.yaml"

// Config is the application configuration.
type Config struct {
	Seed     SeedConfig     `yaml:"seed"`
	Output   OutputConfig   `yaml:"output"`
	Server   ServerConfig   `yaml:"server,omitempty"`
	Publish  PublishConfig  `yaml:"publish,omitempty"`
	History  HistoryConfig  `yaml:"history,omitempty"`
	Generate GenerateConfig `yaml:"generate,omitempty"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
}

// SeedConfig locates the flat-file seed records.
type SeedConfig struct {
	Dir string `yaml:"dir"`
}

// OutputConfig locates the generated snapshot documents.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// ServerConfig configures the admin HTTP server.
type ServerConfig struct {
	Host string `yaml:"host,omitempty"`
	Port int    `yaml:"port,omitempty"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// PublishConfig configures the git publish step. RepoDir is the repository
// the snapshot directory lives in; Remote and Branch name the push target.
type PublishConfig struct {
	RepoDir     string `yaml:"repo_dir,omitempty"`
	Remote      string `yaml:"remote,omitempty"`
	Branch      string `yaml:"branch,omitempty"`
	AuthorName  string `yaml:"author_name,omitempty"`
	AuthorEmail string `yaml:"author_email,omitempty"`
}

// HistoryConfig configures the audit log database.
type HistoryConfig struct {
	Path string `yaml:"path,omitempty"`
}

// GenerateConfig configures automatic regeneration in serve mode. Schedule is
// a cron expression; an empty schedule disables scheduled runs. Debounce is
// how long the seed watcher waits after the last change before regenerating.
type GenerateConfig struct {
	Schedule string        `yaml:"schedule,omitempty"`
	Debounce time.Duration `yaml:"debounce,omitempty"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// Load reads the config file at path, expands environment variables in it,
// and applies defaults. A .env file next to the working directory is loaded
// first so it can feed the expansion; a missing .env is not an error.
func Load(path string) (*Config, error) {
	// Overload is not used: real environment wins over .env entries.
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Config(fmt.Sprintf("configuration file not found: %s", path), nil)
		}
		return nil, errors.Config("read configuration", err)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, errors.Config("parse configuration", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Seed.Dir == "" {
		c.Seed.Dir = "seed"
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "public/data"
	}
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8087
	}
	if c.Publish.Remote == "" {
		c.Publish.Remote = "origin"
	}
	if c.Publish.Branch == "" {
		c.Publish.Branch = "main"
	}
	if c.Publish.AuthorName == "" {
		c.Publish.AuthorName = "blogsmith"
	}
	if c.Publish.AuthorEmail == "" {
		c.Publish.AuthorEmail = "blogsmith@localhost"
	}
	if c.History.Path == "" {
		c.History.Path = ".blogsmith/history.db"
	}
	if c.Generate.Debounce == 0 {
		c.Generate.Debounce = 500 * time.Millisecond
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

// Validate rejects configurations that cannot work at runtime.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.Config(fmt.Sprintf("server port out of range: %d", c.Server.Port), nil)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.Config(fmt.Sprintf("unknown log level: %s", c.Logging.Level), nil)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return errors.Config(fmt.Sprintf("unknown log format: %s", c.Logging.Format), nil)
	}
	if c.Generate.Debounce < 0 {
		return errors.Config("generate debounce must not be negative", nil)
	}
	return nil
}

// Init writes an example configuration to path. It refuses to overwrite an
// existing file unless force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.Config(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", path), nil)
	}

	example := Config{
		Seed:   SeedConfig{Dir: "seed"},
		Output: OutputConfig{Dir: "public/data"},
		Server: ServerConfig{Host: "127.0.0.1", Port: 8087},
		Publish: PublishConfig{
			RepoDir: ".",
			Remote:  "origin",
			Branch:  "main",
		},
		History:  HistoryConfig{Path: ".blogsmith/history.db"},
		Generate: GenerateConfig{Schedule: "0 3 * * *", Debounce: 500 * time.Millisecond},
		Logging:  LoggingConfig{Level: "info", Format: "text"},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return errors.Config("marshal example configuration", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Config("write configuration file", err)
	}
	return nil
}
