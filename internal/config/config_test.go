package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	EnvQuery, EnvFBDevice, EnvLogLevel, EnvLogFile,
	EnvLogPretty, EnvStdioLog, EnvWindowWidth, EnvWindowHeight,
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allKeys {
		t.Setenv(key, "")
	}
}

func writeDotenv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clock.env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, &Config{
		FBDevice:     "/dev/fb0",
		LogLevel:     "info",
		WindowWidth:  DefaultWindowSize,
		WindowHeight: DefaultWindowSize,
	}, cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvQuery, "f.r=0.9")
	t.Setenv(EnvFBDevice, "/dev/fb1")
	t.Setenv(EnvLogPretty, "true")
	t.Setenv(EnvWindowWidth, "800")

	cfg, err := Load(writeDotenv(t, ""))
	require.NoError(t, err)
	assert.Equal(t, "f.r=0.9", cfg.Query)
	assert.Equal(t, "/dev/fb1", cfg.FBDevice)
	assert.True(t, cfg.LogPretty)
	assert.Equal(t, 800, cfg.WindowWidth)
	assert.Equal(t, DefaultWindowSize, cfg.WindowHeight)
}

func TestLoad_DotenvFillsGaps(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvLogLevel, "warn")
	path := writeDotenv(t, "CLOCK_LOG_LEVEL=debug\nCLOCK_QUERY=sh.s=00f&sh.w=3\nCLOCK_WINDOW_HEIGHT=320\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel, "environment wins over dotenv")
	assert.Equal(t, "sh.s=00f&sh.w=3", cfg.Query)
	assert.Equal(t, 320, cfg.WindowHeight)
	// dotenv values never leak into the process environment
	assert.Empty(t, os.Getenv(EnvQuery))
}

func TestLoad_MissingNamedFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvLogPretty, "sometimes")
	t.Setenv(EnvWindowWidth, "wide")

	_, err := Load(writeDotenv(t, ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvLogPretty)
	assert.Contains(t, err.Error(), EnvWindowWidth)
}

func TestRegisterFlags_OverrideEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvFBDevice, "/dev/fb1")
	t.Setenv(EnvLogLevel, "warn")

	cfg, err := Load(writeDotenv(t, ""))
	require.NoError(t, err)

	flags := flag.NewFlagSet("clock", flag.ContinueOnError)
	cfg.RegisterFlags(flags)
	require.NoError(t, flags.Parse([]string{"-fb", "/dev/fb2", "-width", "640", "-log-pretty"}))

	assert.Equal(t, "/dev/fb2", cfg.FBDevice)
	assert.Equal(t, "warn", cfg.LogLevel, "unset flags keep the environment value")
	assert.Equal(t, 640, cfg.WindowWidth)
	assert.True(t, cfg.LogPretty)
}

func TestValidate(t *testing.T) {
	cfg := &Config{LogLevel: "info", WindowWidth: 10, WindowHeight: 10}
	assert.NoError(t, cfg.Validate())

	cfg.WindowHeight = 0
	assert.Error(t, cfg.Validate())

	cfg.WindowHeight = 10
	cfg.LogLevel = "verbose"
	assert.Error(t, cfg.Validate())
}

func TestStyle(t *testing.T) {
	cfg := &Config{Query: "?f.r=0.5&sh.s=00f&hh.w=oops"}

	resolved, err := cfg.Style()
	assert.Error(t, err)
	assert.Equal(t, 0.5, resolved.Frame.RadiusFactor)
	assert.Equal(t, "#00f", resolved.SecondHand.StrokeColor)
	assert.Equal(t, 6.0, resolved.HourHand.LineWidth)

	cfg.Query = ""
	resolved, err = cfg.Style()
	assert.NoError(t, err)
	assert.Equal(t, 1.0, resolved.Frame.RadiusFactor)
}
