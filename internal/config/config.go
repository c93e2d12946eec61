package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// rcFileName is the user-scoped config file in the home directory.
const rcFileName = ".mempocketrc.yaml"

// Config holds the full application configuration.
type Config struct {
	Home      string          `yaml:"home" mapstructure:"home"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// AnthropicConfig holds classification oracle settings.
type AnthropicConfig struct {
	Key            string  `yaml:"key" mapstructure:"key"`
	Model          string  `yaml:"model" mapstructure:"model"`
	TimeoutSecs    int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RequestsPerSec float64 `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// Load reads configuration from ~/.mempocketrc.yaml and the environment.
// The store home resolves in order: MEM_HOME env var, the rc file's home
// key, then ~/.mempocket.
func Load() (*Config, error) {
	v := viper.New()

	// Environment
	v.SetEnvPrefix("MEM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("home", defaultHome())
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.timeout_secs", 60)
	v.SetDefault("anthropic.requests_per_sec", 1)
	v.SetDefault("server.port", 8787)

	// User rc file (optional)
	if rc, err := rcPath(); err == nil {
		v.SetConfigFile(rc)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, eris.Wrap(err, "config: read rc file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// SetHome persists the store home in the user rc file, preserving any other
// keys already present.
func SetHome(home string) error {
	rc, err := rcPath()
	if err != nil {
		return err
	}

	settings := map[string]any{}
	if data, err := os.ReadFile(rc); err == nil {
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return eris.Wrap(err, "config: parse rc file")
		}
	}

	abs, err := filepath.Abs(home)
	if err != nil {
		return eris.Wrap(err, "config: resolve home path")
	}
	settings["home"] = abs

	data, err := yaml.Marshal(settings)
	if err != nil {
		return eris.Wrap(err, "config: marshal rc file")
	}
	if err := os.WriteFile(rc, data, 0o644); err != nil {
		return eris.Wrap(err, "config: write rc file")
	}
	return nil
}

func rcPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", eris.Wrap(err, "config: resolve user home")
	}
	return filepath.Join(home, rcFileName), nil
}

func defaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mempocket"
	}
	return filepath.Join(home, ".mempocket")
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
