package render

import (
	"context"
	"errors"
	"image"
	"sync"
	"time"

	"github.com/rook-computer/analogclock/internal/render/layout"
)

var ErrSinkStopped = errors.New("sink stopped")

// BufferSink keeps a copy of the latest frame for hosts that pull frames
// on their own schedule, such as a desktop window.
type BufferSink struct {
	mu      sync.Mutex
	size    layout.Viewport
	frame   *image.RGBA
	at      time.Time
	seq     uint64
	stopped bool
}

func NewBufferSink(size layout.Viewport) *BufferSink {
	return &BufferSink{size: size.Normalize()}
}

func (s *BufferSink) Start(ctx context.Context) error {
	s.mu.Lock()
	s.stopped = false
	s.mu.Unlock()
	return nil
}

func (s *BufferSink) Stop() error {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	return nil
}

func (s *BufferSink) Viewport() layout.Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

// SetViewport records the host size reported at the next mount.
func (s *BufferSink) SetViewport(size layout.Viewport) {
	s.mu.Lock()
	s.size = size.Normalize()
	s.mu.Unlock()
}

func (s *BufferSink) Present(frame *image.RGBA, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return ErrSinkStopped
	}
	if s.frame == nil || s.frame.Rect != frame.Rect {
		s.frame = image.NewRGBA(frame.Rect)
	}
	copy(s.frame.Pix, frame.Pix)
	s.at = at
	s.seq++
	return nil
}

// View calls fn with the latest frame while holding the lock. frame is nil
// before the first Present. seq grows by one per presented frame.
func (s *BufferSink) View(fn func(frame *image.RGBA, at time.Time, seq uint64)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.frame, s.at, s.seq)
}
