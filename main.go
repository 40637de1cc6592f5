package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/analogclock/internal/app"
	"github.com/rook-computer/analogclock/internal/config"
	"github.com/rook-computer/analogclock/internal/render"
	"github.com/rook-computer/analogclock/internal/state"
	"github.com/rook-computer/analogclock/internal/system"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		fmt.Println("config error:", err)
		os.Exit(2)
	}

	// Best-effort: redirect all stdout/stderr output (including panic stack traces)
	// to a file so crashes are diagnosable even when the console is left in graphics mode.
	if err := system.RedirectStdIO(cfg.StdioLog); err != nil {
		fmt.Println("stdio log redirect error:", err)
	}

	logger, closeLog, err := app.OpenZeroLogger(cfg.LogFile, cfg.LogLevel, cfg.LogPretty)
	if err != nil {
		fmt.Println("logger error:", err)
		os.Exit(2)
	}
	defer closeLog()

	cfgStyle, err := cfg.Style()
	if err != nil {
		logger.Errorf("main", "ignoring malformed style settings: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New(state.NewStore(), render.NewFBRenderer(cfg.FBDevice), cfgStyle)
	a.Logger = logger
	a.Console = true

	system.StartExitOnF4(ctx, logger, func() { a.Exit(nil) })

	logger.Infof("main", "analog clock starting on %s", cfg.FBDevice)
	if err := a.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Errorf("main", "app error: %v", err)
		closeLog()
		os.Exit(1)
	}
	logger.Infof("main", "analog clock stopped")
}
