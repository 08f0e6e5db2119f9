// Package config loads ocv settings from a YAML file, .env files and the
// environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/Dicklesworthstone/orgchart_viewer/pkg/hierarchy"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/layout"
	"github.com/Dicklesworthstone/orgchart_viewer/pkg/model"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = ".ocv.yaml"

// EnvFiles are loaded, when present, before the environment is parsed.
var EnvFiles = []string{".env", ".env.local"}

// Config holds every setting.
type Config struct {
	DataPath  string        `yaml:"data_path" env:"OCV_DATA"`
	Admin     bool          `yaml:"admin" env:"OCV_ADMIN"`
	Mode      layout.Mode   `yaml:"mode" env:"OCV_MODE" validate:"omitempty,oneof=leveled recursive"`
	NodeWidth int           `yaml:"node_width" env:"OCV_NODE_WIDTH" validate:"omitempty,min=12,max=80"`
	Watch     bool          `yaml:"watch" env:"OCV_WATCH"`
	Debounce  time.Duration `yaml:"debounce" env:"OCV_DEBOUNCE" validate:"min=0"`
	ExportDir string        `yaml:"export_dir" env:"OCV_EXPORT_DIR"`
	Scope     model.Scope   `yaml:"scope"`

	LogFile  string `yaml:"log_file" env:"OCV_LOG_FILE"`
	LogLevel string `yaml:"log_level" env:"OCV_LOG_LEVEL" validate:"omitempty,oneof=silent error warn info debug"`

	Policies      layout.Policies `yaml:"policies" validate:"dive"`
	RankOverrides []string        `yaml:"rank_overrides"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Mode:      layout.ModeRecursive,
		NodeWidth: 28,
		Watch:     true,
		Debounce:  200 * time.Millisecond,
		ExportDir: "ocv-export",
		LogLevel:  "info",
		Policies:  layout.DefaultPolicies(),
	}
}

// LoadEnv loads the env files that exist and reports how many were read.
func LoadEnv(files []string) (int, error) {
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if info, err := os.Stat(f); err == nil && !info.IsDir() {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

// Load reads path (DefaultFile when empty; a missing default is not an
// error), applies .env files and the environment, and validates the result.
func Load(path string) (*Config, error) {
	c := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if c.DataPath != "" && !filepath.IsAbs(c.DataPath) {
			c.DataPath = filepath.Join(filepath.Dir(path), c.DataPath)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if _, err := LoadEnv(EnvFiles); err != nil {
		return nil, fmt.Errorf("load env files: %w", err)
	}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag())
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Ranks returns the sibling rank table with any configured overrides
// appended.
func (c *Config) Ranks() hierarchy.RankTable {
	if len(c.RankOverrides) == 0 {
		return hierarchy.SeniorityRanks
	}
	return hierarchy.SeniorityRanks.With(c.RankOverrides...)
}

// LogrusLevel maps LogLevel onto logrus.
func (c *Config) LogrusLevel() logrus.Level {
	switch c.LogLevel {
	case "silent":
		return logrus.PanicLevel
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}

// Logger builds the application logger. The terminal belongs to the chart,
// so logs go to LogFile or are discarded. The returned closer releases the
// file.
func (c *Config) Logger() (*logrus.Logger, io.Closer, error) {
	l := logrus.New()
	l.SetLevel(c.LogrusLevel())
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	if c.LogFile == "" {
		l.SetOutput(io.Discard)
		return l, nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(c.LogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	l.SetOutput(f)
	return l, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
