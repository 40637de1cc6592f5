package loop

import (
	"context"
	"errors"
	"image"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rook-computer/analogclock/internal/render"
	"github.com/rook-computer/analogclock/internal/render/layout"
	"github.com/rook-computer/analogclock/internal/state"
	"github.com/rook-computer/analogclock/internal/style"
)

var ErrMounted = errors.New("clock already mounted")

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Presenter is the part of a render.Sink the loop draws into.
type Presenter interface {
	Present(frame *image.RGBA, at time.Time) error
}

// Controller keeps a canvas drawn with the current time. After Mount a
// single goroutine owns the canvas: it redraws at every whole second and
// on every Resize until Unmount.
type Controller struct {
	Clock  clockwork.Clock
	Canvas *render.Canvas
	Style  style.Resolved
	Sink   Presenter
	Store  *state.Store
	Logger Logger

	mu      sync.Mutex
	mounted bool
	cancel  context.CancelFunc
	resize  chan layout.Viewport
	done    chan struct{}
}

func New(canvas *render.Canvas, cfg style.Resolved, sink Presenter) *Controller {
	return &Controller{
		Clock:  clockwork.NewRealClock(),
		Canvas: canvas,
		Style:  cfg,
		Sink:   sink,
	}
}

// NextDelay is the time from t to the next whole second.
func NextDelay(t time.Time) time.Duration {
	ms := t.Nanosecond() / int(time.Millisecond)
	return time.Duration(1000-ms) * time.Millisecond
}

// Mount sizes the canvas to viewport, draws a frame and starts the loop.
// Without a canvas or sink nothing is started and no error is returned.
func (c *Controller) Mount(ctx context.Context, viewport layout.Viewport) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mounted {
		return ErrMounted
	}
	if c.Canvas == nil || c.Sink == nil {
		c.logger().Errorf("loop", "no canvas or sink, clock not started")
		return nil
	}
	if c.Clock == nil {
		c.Clock = clockwork.NewRealClock()
	}

	viewport = viewport.Normalize()
	c.Canvas.SetSize(viewport.Width, viewport.Height)
	if c.Store != nil {
		c.Store.SetViewport(viewport)
		c.Store.SetPhase(state.MOUNTED)
	}
	c.logger().Infof("loop", "mounted at %dx%d", viewport.Width, viewport.Height)

	c.draw()
	timer := c.Clock.NewTimer(NextDelay(c.Clock.Now()))

	loopCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.resize = make(chan layout.Viewport)
	c.done = make(chan struct{})
	c.mounted = true

	go c.run(loopCtx, timer, c.resize, c.done)
	return nil
}

// Resize resizes the canvas and draws one extra frame. The per-second
// schedule is not affected. It is ignored while not mounted.
func (c *Controller) Resize(viewport layout.Viewport) {
	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		return
	}
	resize, done := c.resize, c.done
	c.mu.Unlock()

	select {
	case resize <- viewport.Normalize():
	case <-done:
	}
}

// Unmount stops the loop and waits for it. No frame is drawn once it
// returns. Calling it again is a no-op.
func (c *Controller) Unmount() {
	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		return
	}
	c.mounted = false
	cancel, done := c.cancel, c.done
	c.mu.Unlock()

	cancel()
	<-done
	if c.Store != nil {
		c.Store.SetPhase(state.STOPPED)
	}
	c.logger().Infof("loop", "unmounted")
}

// Mounted reports whether the loop is running.
func (c *Controller) Mounted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mounted
}

func (c *Controller) run(ctx context.Context, timer clockwork.Timer, resize <-chan layout.Viewport, done chan<- struct{}) {
	defer close(done)
	defer func() { timer.Stop() }()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.Chan():
			// A late Unmount must not draw.
			if ctx.Err() != nil {
				return
			}
			c.draw()
			timer = c.Clock.NewTimer(NextDelay(c.Clock.Now()))
		case viewport := <-resize:
			c.Canvas.SetSize(viewport.Width, viewport.Height)
			if c.Store != nil {
				c.Store.SetViewport(viewport)
			}
			c.draw()
		}
	}
}

func (c *Controller) draw() {
	now := c.Clock.Now()
	render.DrawClock(c.Canvas, c.Style, now)
	err := c.Sink.Present(c.Canvas.Image(), now)
	if err != nil {
		c.logger().Errorf("loop", "present failed: %v", err)
	}
	if c.Store != nil {
		c.Store.RecordFrame(now, c.Clock.Since(now), err)
	}
}

func (c *Controller) logger() Logger {
	if c.Logger == nil {
		return noopLogger{}
	}
	return c.Logger
}

type noopLogger struct{}

func (noopLogger) Infof(component, format string, args ...interface{})  {}
func (noopLogger) Errorf(component, format string, args ...interface{}) {}
