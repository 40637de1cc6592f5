package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rook-computer/analogclock/internal/render"
	"github.com/rook-computer/analogclock/internal/style"
)

const (
	EnvQuery        = "CLOCK_QUERY"
	EnvFBDevice     = "CLOCK_FB_DEVICE"
	EnvLogLevel     = "CLOCK_LOG_LEVEL"
	EnvLogFile      = "CLOCK_LOG_FILE"
	EnvLogPretty    = "CLOCK_LOG_PRETTY"
	EnvStdioLog     = "CLOCK_STDIO_LOG"
	EnvWindowWidth  = "CLOCK_WINDOW_WIDTH"
	EnvWindowHeight = "CLOCK_WINDOW_HEIGHT"

	DefaultWindowSize = 480
)

// Config holds process settings shared by the device and simulator binaries.
type Config struct {
	Query        string // style overrides, e.g. "f.r=0.9&sh.s=00f"
	FBDevice     string
	LogLevel     string
	LogFile      string // empty means stderr
	LogPretty    bool
	StdioLog     string
	WindowWidth  int
	WindowHeight int
}

// Load reads configuration from the environment. Values missing there are
// taken from the given dotenv files, or ./.env when none are named; a
// missing file is not an error. Process environment always wins.
func Load(files ...string) (*Config, error) {
	optional := len(files) == 0
	if optional {
		files = []string{".env"}
	}
	dotenv, err := godotenv.Read(files...)
	if err != nil {
		if !optional || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read dotenv: %w", err)
		}
		dotenv = nil
	}
	env := source{dotenv: dotenv}

	cfg := &Config{
		Query:    env.get(EnvQuery, ""),
		FBDevice: env.get(EnvFBDevice, render.DefaultFBDevice),
		LogLevel: env.get(EnvLogLevel, "info"),
		LogFile:  env.get(EnvLogFile, ""),
		StdioLog: env.get(EnvStdioLog, ""),
	}
	var errs []error
	cfg.LogPretty, err = env.getBool(EnvLogPretty, false)
	errs = append(errs, err)
	cfg.WindowWidth, err = env.getInt(EnvWindowWidth, DefaultWindowSize)
	errs = append(errs, err)
	cfg.WindowHeight, err = env.getInt(EnvWindowHeight, DefaultWindowSize)
	errs = append(errs, err)
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RegisterFlags binds command line flags to cfg. The current values become
// the flag defaults, so flags given on the command line override the
// environment.
func (c *Config) RegisterFlags(flags *flag.FlagSet) {
	flags.StringVar(&c.Query, "query", c.Query, "style query string; also configurable via "+EnvQuery)
	flags.StringVar(&c.FBDevice, "fb", c.FBDevice, "framebuffer device; also configurable via "+EnvFBDevice)
	flags.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error; also configurable via "+EnvLogLevel)
	flags.StringVar(&c.LogFile, "log-file", c.LogFile, "append logs to this file instead of stderr; also configurable via "+EnvLogFile)
	flags.BoolVar(&c.LogPretty, "log-pretty", c.LogPretty, "human readable log lines; also configurable via "+EnvLogPretty)
	flags.StringVar(&c.StdioLog, "stdio-log", c.StdioLog, "redirect stdout+stderr (including panics) to this file; also configurable via "+EnvStdioLog)
	flags.IntVar(&c.WindowWidth, "width", c.WindowWidth, "simulator window width; also configurable via "+EnvWindowWidth)
	flags.IntVar(&c.WindowHeight, "height", c.WindowHeight, "simulator window height; also configurable via "+EnvWindowHeight)
}

// Validate checks settings that cannot be defaulted.
func (c *Config) Validate() error {
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		return fmt.Errorf("window size must be positive (got %dx%d)", c.WindowWidth, c.WindowHeight)
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%s must be debug, info, warn or error (got %q)", EnvLogLevel, c.LogLevel)
	}
	return nil
}

// Style resolves the query string against the defaults. Malformed fields
// are skipped and reported in the error; the result is usable either way.
func (c *Config) Style() (style.Resolved, error) {
	opts, err := style.ParseQueryString(c.Query)
	return style.Resolve(opts), err
}

type source struct {
	dotenv map[string]string
}

func (s source) lookup(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return s.dotenv[key]
}

func (s source) get(key, defaultValue string) string {
	if value := s.lookup(key); value != "" {
		return value
	}
	return defaultValue
}

func (s source) getInt(key string, defaultValue int) (int, error) {
	raw := s.lookup(key)
	if raw == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue, fmt.Errorf("%s must be an integer (got %q): %w", key, raw, err)
	}
	return parsed, nil
}

func (s source) getBool(key string, defaultValue bool) (bool, error) {
	raw := s.lookup(key)
	if raw == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return defaultValue, fmt.Errorf("%s must be a boolean (got %q): %w", key, raw, err)
	}
	return parsed, nil
}
