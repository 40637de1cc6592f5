package app

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rook-computer/analogclock/internal/loop"
	"github.com/rook-computer/analogclock/internal/render"
	"github.com/rook-computer/analogclock/internal/render/layout"
	"github.com/rook-computer/analogclock/internal/state"
	"github.com/rook-computer/analogclock/internal/style"
	"github.com/rook-computer/analogclock/internal/system"
)

const DefaultHeartbeat = time.Minute

type App struct {
	Store  *state.Store
	Sink   render.Sink
	Style  style.Resolved
	Clock  clockwork.Clock
	Logger Logger
	// Console switches the Linux console to graphics mode and hides the
	// cursor while running.
	Console   bool
	Heartbeat time.Duration

	mu         sync.Mutex
	controller *loop.Controller

	exitOnce atomic.Bool
	exitCh   chan error
}

func New(store *state.Store, sink render.Sink, cfg style.Resolved) *App {
	return &App{
		Store:     store,
		Sink:      sink,
		Style:     cfg,
		Clock:     clockwork.NewRealClock(),
		Logger:    NoopLogger{},
		Heartbeat: DefaultHeartbeat,
		exitCh:    make(chan error, 1),
	}
}

// Exit requests the app to stop running.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

// Resize forwards a new viewport to the running clock.
func (app *App) Resize(viewport layout.Viewport) {
	app.mu.Lock()
	controller := app.controller
	app.mu.Unlock()
	if controller != nil {
		controller.Resize(viewport)
	}
}

// Start runs the clock until ctx is done or Exit is called.
func (app *App) Start(ctx context.Context) error {
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	app.exitOnce.Store(false)
	if app.Logger == nil {
		app.Logger = NoopLogger{}
	}
	if app.Clock == nil {
		app.Clock = clockwork.NewRealClock()
	}
	if app.Store == nil {
		app.Store = state.NewStore()
	}
	if app.Sink == nil {
		app.Sink = render.NewFBRenderer(render.DefaultFBDevice)
	}
	if fb, ok := app.Sink.(*render.FBRenderer); ok {
		fb.Logger = app.Logger
	}

	if err := app.Sink.Start(ctx); err != nil {
		app.Logger.Errorf("app", "sink start error: %v", err)
		app.Store.SetPhase(state.ERROR)
		return fmt.Errorf("start sink: %w", err)
	}
	defer func() {
		if err := app.Sink.Stop(); err != nil {
			app.Logger.Errorf("app", "sink stop error: %v", err)
		}
	}()

	if app.Console {
		// Switch console to KD_GRAPHICS to suppress hardware cursor
		if err := system.SetGraphicsModeWithLog(app.Logger); err != nil {
			app.Logger.Errorf("tty", "set graphics mode failed: %v", err)
		}
		_ = system.HideCursorWithLog(app.Logger)
		defer func() { _ = system.ShowCursorWithLog(app.Logger); _ = system.RestoreTextModeWithLog(app.Logger) }()
	}

	controller := &loop.Controller{
		Clock:  app.Clock,
		Canvas: render.NewCanvas(0, 0),
		Style:  app.Style,
		Sink:   app.Sink,
		Store:  app.Store,
		Logger: app.Logger,
	}
	mounted := app.Sink.Viewport()
	if err := controller.Mount(ctx, mounted); err != nil {
		return fmt.Errorf("mount clock: %w", err)
	}
	app.mu.Lock()
	app.controller = controller
	app.mu.Unlock()
	// The host may have changed size while mounting.
	if current := app.Sink.Viewport(); current != mounted {
		controller.Resize(current)
	}
	defer func() {
		app.mu.Lock()
		app.controller = nil
		app.mu.Unlock()
		controller.Unmount()
	}()

	hbCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		app.heartbeat(hbCtx)
	}()

	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case err = <-app.exitCh:
	}
	cancel()
	wg.Wait()
	return err
}

func (app *App) heartbeat(ctx context.Context) {
	if app.Heartbeat <= 0 {
		return
	}
	ticker := app.Clock.NewTicker(app.Heartbeat)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			snap := app.Store.Snapshot()
			app.Logger.Infof("app", "phase=%s viewport=%dx%d frames=%d resizes=%d last=%s draw=%s",
				snap.Phase, snap.Viewport.Width, snap.Viewport.Height,
				snap.Frames.Count, snap.Frames.Resizes,
				snap.Frames.Last.Format("15:04:05.000"), snap.Frames.LastDraw)
			if snap.Frames.Err != "" {
				app.Logger.Errorf("app", "last present error: %s", snap.Frames.Err)
			}
		}
	}
}

func (app *App) Stop() error {
	app.Exit(nil)
	return nil
}
