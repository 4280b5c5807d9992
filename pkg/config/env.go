package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	rerrors "github.com/jaffarkeikei/InsightEd/pkg/errors"
	"github.com/jaffarkeikei/InsightEd/pkg/validate"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "INSIGHTED_"

// loadDotEnv loads .env from dir without overriding variables already set.
func loadDotEnv(dir string) {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err == nil {
		_ = godotenv.Load(path)
	}
}

// ApplyEnv overlays INSIGHTED_* variables and resolves the feedback API key.
func (c *Config) ApplyEnv() {
	if v, ok := lookup("DATA_PATH"); ok {
		c.Data.Path = v
	}
	if v, ok := lookup("OUTPUT_DIR"); ok {
		c.Report.OutputDir = v
	}
	if v, ok := lookup("RENDERER"); ok {
		c.Report.Renderer = v
	}
	if v, ok := lookup("CHART"); ok {
		c.Report.Chart = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := lookup("FEEDBACK_ENABLED"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Feedback.Enabled = b
		}
	}
	if v, ok := lookup("FEEDBACK_MODEL"); ok {
		c.Feedback.Model = v
	}
	if v, ok := lookup("PORT"); ok {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if c.Feedback.APIKeyEnv != "" {
		c.Feedback.APIKey = strings.TrimSpace(os.Getenv(c.Feedback.APIKeyEnv))
	}
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return strings.TrimSpace(v), true
}

// Validate checks field constraints and returns a CONFIG_INVALID error
// listing every violation.
func (c *Config) Validate() error {
	msgs := validate.Struct(c)
	if len(msgs) == 0 {
		return nil
	}
	err := rerrors.New(rerrors.ErrConfigInvalid, rerrors.CategoryConfig, "invalid configuration: "+strings.Join(msgs, "; "))
	for i, m := range msgs {
		err.WithContext("violation_"+strconv.Itoa(i+1), m)
	}
	return rerrors.AttachSuggestions(err)
}
