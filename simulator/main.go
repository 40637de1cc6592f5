package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rook-computer/analogclock/internal/app"
	"github.com/rook-computer/analogclock/internal/config"
	"github.com/rook-computer/analogclock/internal/render"
	"github.com/rook-computer/analogclock/internal/render/layout"
	"github.com/rook-computer/analogclock/internal/state"
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

	processCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	size := layout.Viewport{Width: cfg.WindowWidth, Height: cfg.WindowHeight}
	sink := render.NewBufferSink(size)
	a := app.New(state.NewStore(), sink, cfgStyle)
	a.Logger = logger

	appDone := make(chan error, 1)
	go func() { appDone <- a.Start(processCtx) }()

	ebiten.SetWindowTitle("Analog clock")
	ebiten.SetWindowSize(size.Width, size.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(30)

	w := &window{app: a, sink: sink, size: size, done: processCtx.Done()}
	runErr := ebiten.RunGame(w)

	a.Exit(nil)
	if err := <-appDone; err != nil && !errors.Is(err, context.Canceled) {
		logger.Errorf("main", "app error: %v", err)
	}
	if runErr != nil {
		logger.Errorf("main", "window error: %v", runErr)
		closeLog()
		os.Exit(1)
	}
}
