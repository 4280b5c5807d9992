// Package config handles InsightEd configuration loading and saving.
package config

import (
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	rerrors "github.com/jaffarkeikei/InsightEd/pkg/errors"
)

// Config holds all InsightEd configuration.
type Config struct {
	Data     DataConfig     `yaml:"data"`
	Report   ReportConfig   `yaml:"report"`
	Feedback FeedbackConfig `yaml:"feedback"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
}

// DataConfig locates the exam results dataset.
type DataConfig struct {
	// Path is a .yaml, .yml, .json, .csv or .xlsx results file.
	Path string `yaml:"path" validate:"required"`
	// PassMark is the percentage used when a record carries no explicit status.
	PassMark float64 `yaml:"pass_mark" validate:"gte=0,lte=100"`
}

// ReportConfig controls layout and output of generated PDFs.
type ReportConfig struct {
	SchoolName   string  `yaml:"school_name" validate:"required"`
	PageSize     string  `yaml:"page_size" validate:"oneof=A4 Letter"`
	Margin       float64 `yaml:"margin" validate:"gte=18,lte=144"`
	Chart        string  `yaml:"chart" validate:"oneof=bar radar line none"`
	Renderer     string  `yaml:"renderer" validate:"oneof=native fpdf"`
	Compress     bool    `yaml:"compress"`
	OutputDir    string  `yaml:"output_dir" validate:"required"`
	PrimaryColor string  `yaml:"primary_color" validate:"hexcolor6"`
	VerifyQR     bool    `yaml:"verify_qr"`
	// ClassOverview appends subject analysis after the last student of a class report.
	ClassOverview bool `yaml:"class_overview"`
}

// FeedbackConfig configures the AI feedback collaborator.
type FeedbackConfig struct {
	Enabled     bool          `yaml:"enabled"`
	BaseURL     string        `yaml:"base_url" validate:"omitempty,url"`
	Model       string        `yaml:"model" validate:"required_if=Enabled true"`
	APIKeyEnv   string        `yaml:"api_key_env"`
	Timeout     time.Duration `yaml:"timeout" validate:"gte=0"`
	Temperature float64       `yaml:"temperature" validate:"gte=0,lte=2"`
	MaxTokens   int           `yaml:"max_tokens" validate:"gte=0"`
	Variant     string        `yaml:"variant" validate:"oneof=academic stakeholder narrative"`

	// APIKey is resolved from APIKeyEnv at load time and never written back.
	APIKey string `yaml:"-"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Host        string   `yaml:"host"`
	Port        int      `yaml:"port" validate:"gte=0,lte=65535"`
	CORSOrigins []string `yaml:"cors_origins"`
	AccessLog   bool     `yaml:"access_log"`
}

// LogConfig configures the component loggers.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error off"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Path:     "examples/results.yaml",
			PassMark: 50,
		},
		Report: ReportConfig{
			SchoolName:    "InsightEd School",
			PageSize:      "A4",
			Margin:        40,
			Chart:         "bar",
			Renderer:      "native",
			Compress:      true,
			OutputDir:     "reports",
			PrimaryColor:  "#6366F1",
			VerifyQR:      true,
			ClassOverview: true,
		},
		Feedback: FeedbackConfig{
			Enabled:     true,
			BaseURL:     "https://api.openai.com/v1",
			Model:       "gpt-4o-mini",
			APIKeyEnv:   "OPENAI_API_KEY",
			Timeout:     20 * time.Second,
			Temperature: 0.7,
			MaxTokens:   1000,
			Variant:     "academic",
		},
		Server: ServerConfig{
			Host:        "localhost",
			Port:        8081,
			CORSOrigins: []string{"*"},
			AccessLog:   true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads, overlays and validates configuration from path.
// Missing keys keep their Default() values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, rerrors.ConfigNotFound(path)
		}
		return nil, rerrors.ConfigWrap(err, rerrors.ErrConfigReadFailed, "failed to read configuration file").
			WithContext("path", path)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, rerrors.ConfigParseError(path, err)
	}

	loadDotEnv(filepath.Dir(path))
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads config from path, or returns defaults when path is
// empty or does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}

	cfg := Default()
	loadDotEnv(".")
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes config to path, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return rerrors.ConfigWrap(err, rerrors.ErrConfigWriteFailed, "failed to create config directory").
			WithContext("path", path)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return rerrors.ConfigWrap(err, rerrors.ErrConfigWriteFailed, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return rerrors.ConfigWrap(err, rerrors.ErrConfigWriteFailed, "failed to write config file").
			WithContext("path", path)
	}
	return nil
}

// DefaultConfigPath returns ./insighted.yaml when present, otherwise the
// per-user config file.
func DefaultConfigPath() string {
	if _, err := os.Stat("insighted.yaml"); err == nil {
		return "insighted.yaml"
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "insighted.yaml"
	}
	return filepath.Join(dir, "insighted", "config.yaml")
}

// InitConfig writes the default config to path. An existing file is left
// alone unless force is set.
func InitConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return nil
	}
	if err := Default().Save(path); err != nil {
		return rerrors.ConfigWrap(err, rerrors.ErrConfigInitFailed, "failed to initialize configuration").
			WithContext("path", path)
	}
	return nil
}

// Address returns the host:port the API server listens on.
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
