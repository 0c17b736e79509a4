// Package config loads the agent configuration from file and environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the agent.
type Config struct {
	General GeneralConfig `mapstructure:"general"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Resolve ResolveConfig `mapstructure:"resolve"`
	Storage StorageConfig `mapstructure:"storage"`
	Server  ServerConfig  `mapstructure:"server"`
}

// GeneralConfig contains general application settings.
type GeneralConfig struct {
	Debug bool `mapstructure:"debug"`
	Quiet bool `mapstructure:"quiet"`
}

// LLMConfig selects and configures the interpreter provider.
type LLMConfig struct {
	Provider  string        `mapstructure:"provider"` // anthropic, openai, openrouter, custom
	Model     string        `mapstructure:"model"`
	APIKey    string        `mapstructure:"api_key"`
	BaseURL   string        `mapstructure:"base_url"`
	MaxTokens int           `mapstructure:"max_tokens"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

func (l LLMConfig) Validate() error {
	switch l.Provider {
	case "anthropic", "openai", "openrouter":
	case "custom":
		if l.BaseURL == "" {
			return errors.New("llm.base_url is required for the custom provider")
		}
	default:
		return fmt.Errorf("llm.provider %q is not one of anthropic, openai, openrouter, custom", l.Provider)
	}
	if l.Model == "" {
		return errors.New("llm.model is required")
	}
	return nil
}

// ResolveConfig configures the bridge to the Resolve scripting runtime.
type ResolveConfig struct {
	PythonPath     string        `mapstructure:"python_path"`
	ScriptPath     string        `mapstructure:"script_path"`
	StartupTimeout time.Duration `mapstructure:"startup_timeout"`
	CallTimeout    time.Duration `mapstructure:"call_timeout"`
}

// Python returns the configured interpreter path, falling back to whatever
// python3 (then python) resolves to on PATH.
func (r ResolveConfig) Python() (string, error) {
	if r.PythonPath != "" {
		return r.PythonPath, nil
	}
	for _, candidate := range []string{"python3", "python"} {
		if path, err := exec.LookPath(candidate); err == nil {
			return path, nil
		}
	}
	return "", errors.New("no python interpreter found; set resolve.python_path")
}

// StorageConfig groups persistence settings.
type StorageConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
}

// PostgresConfig configures the run-history store. URL wins when set.
type PostgresConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// Enabled reports whether a Postgres store is configured at all. Run
// history is optional; without it the agent simply keeps no records.
func (p PostgresConfig) Enabled() bool {
	return p.URL != "" || p.Host != "" || p.DBName != ""
}

// DSN builds the connection URL. Both lib/pq and golang-migrate accept the
// postgres:// form.
func (p PostgresConfig) DSN() string {
	if p.URL != "" {
		return p.URL
	}
	host := p.Host
	if host == "" {
		host = "localhost"
	}
	port := p.Port
	if port == 0 {
		port = 5432
	}
	sslmode := p.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	u := url.URL{
		Scheme:   "postgres",
		Host:     fmt.Sprintf("%s:%d", host, port),
		Path:     "/" + p.DBName,
		RawQuery: "sslmode=" + sslmode,
	}
	if p.User != "" {
		u.User = url.UserPassword(p.User, p.Password)
	}
	return u.String()
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// Load reads magic-agent.yaml plus MAGIC_* environment overrides. A missing
// config file is fine: defaults plus environment are enough to run.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("magic-agent")
	v.SetConfigType("yaml")

	v.SetDefault("general.debug", false)
	v.SetDefault("general.quiet", false)
	v.SetDefault("llm.provider", "anthropic")
	v.SetDefault("llm.model", "claude-sonnet-4-20250514")
	v.SetDefault("llm.max_tokens", 4096)
	v.SetDefault("llm.timeout", 2*time.Minute)
	v.SetDefault("resolve.script_path", "scripts/resolve_bridge.py")
	v.SetDefault("resolve.startup_timeout", 15*time.Second)
	v.SetDefault("resolve.call_timeout", 60*time.Second)
	v.SetDefault("server.address", ":8787")

	if path == "" {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.config/magic-agent")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("MAGIC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.LLM.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
