package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/mcoot/matchthree/internal/factory"
	"github.com/mcoot/matchthree/internal/model"
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
)

// DefaultEnvFile is loaded at startup when it exists. MATCHTHREE_ENV_FILE
// names a different file.
const DefaultEnvFile = ".env"

// LoadEnvFile reads MATCHTHREE_* settings from a dotenv file into the
// environment. Variables that are already set are kept, and a missing file
// is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

// Config holds CLI configuration
type Config struct {
	Height  int
	Width   int
	Pause   time.Duration
	Seed    string
	LogFile string
	Output  string
	Verbose bool

	envErrs []error
}

// DefaultConfig returns a Config with values from the environment, or the defaults
func DefaultConfig() *Config {
	c := &Config{
		Seed:    os.Getenv("MATCHTHREE_SEED"),
		LogFile: os.Getenv("MATCHTHREE_LOG_FILE"),
		Output:  OutputText,
		Verbose: false,
	}
	c.Height = c.getEnvInt("MATCHTHREE_HEIGHT", factory.DefaultHeight)
	c.Width = c.getEnvInt("MATCHTHREE_WIDTH", factory.DefaultWidth)
	c.Pause = c.getEnvDuration("MATCHTHREE_PAUSE", time.Second)
	return c
}

// Validate reports malformed environment values and out of range settings
func (c *Config) Validate() error {
	errs := append([]error(nil), c.envErrs...)
	if c.Height < model.MinGridDimension || c.Width < model.MinGridDimension {
		errs = append(errs, fmt.Errorf("%w: %dx%d", model.ErrInvalidDimensions, c.Height, c.Width))
	}
	if c.Pause < 0 {
		errs = append(errs, fmt.Errorf("pause must not be negative: %s", c.Pause))
	}
	if c.Output != OutputText && c.Output != OutputJSON {
		errs = append(errs, fmt.Errorf("invalid output format %q: must be text or json", c.Output))
	}
	if _, err := c.seed(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// FactoryConfig converts the CLI settings into application settings
func (c *Config) FactoryConfig(logger *slog.Logger) (factory.Config, error) {
	seed, err := c.seed()
	if err != nil {
		return factory.Config{}, err
	}
	return factory.Config{
		Height:       c.Height,
		Width:        c.Width,
		CascadePause: c.Pause,
		Seed:         seed,
		Logger:       logger,
	}, nil
}

func (c *Config) seed() (*uint64, error) {
	if c.Seed == "" {
		return nil, nil
	}
	seed, err := strconv.ParseUint(c.Seed, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid seed %q: %w", c.Seed, err)
	}
	return &seed, nil
}

// NewLogger builds the JSON logger. Logs go to LogFile when set; otherwise to
// stderr in verbose mode when allowStderr is true, or nowhere. The returned
// func closes the log file.
func (c *Config) NewLogger(allowStderr bool) (*slog.Logger, func() error, error) {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		return slog.New(slog.NewJSONHandler(f, opts)), f.Close, nil
	}

	var w io.Writer = io.Discard
	if c.Verbose && allowStderr {
		w = os.Stderr
	}
	return slog.New(slog.NewJSONHandler(w, opts)), func() error { return nil }, nil
}

func (c *Config) getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		c.envErrs = append(c.envErrs, fmt.Errorf("invalid %s %q: %w", key, val, err))
		return defaultVal
	}
	return n
}

func (c *Config) getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		c.envErrs = append(c.envErrs, fmt.Errorf("invalid %s %q: %w", key, val, err))
		return defaultVal
	}
	return d
}
