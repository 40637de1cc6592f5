package render

import (
	"context"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/rook-computer/analogclock/internal/render/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferSink_KeepsCopyOfLatestFrame(t *testing.T) {
	sink := NewBufferSink(layout.Viewport{Width: 4, Height: 2})
	require.NoError(t, sink.Start(context.Background()))

	sink.View(func(frame *image.RGBA, at time.Time, seq uint64) {
		assert.Nil(t, frame)
		assert.Zero(t, seq)
	})

	src := image.NewRGBA(image.Rect(0, 0, 4, 2))
	src.SetRGBA(1, 1, color.RGBA{R: 0xFF, A: 0xFF})
	at := time.Date(2024, 2, 2, 2, 2, 2, 0, time.UTC)
	require.NoError(t, sink.Present(src, at))

	// later writes to the source must not show up
	src.SetRGBA(1, 1, color.RGBA{B: 0xFF, A: 0xFF})

	sink.View(func(frame *image.RGBA, got time.Time, seq uint64) {
		require.NotNil(t, frame)
		assert.Equal(t, color.RGBA{R: 0xFF, A: 0xFF}, frame.RGBAAt(1, 1))
		assert.Equal(t, at, got)
		assert.Equal(t, uint64(1), seq)
	})
}

func TestBufferSink_FollowsFrameSize(t *testing.T) {
	sink := NewBufferSink(layout.Viewport{Width: 4, Height: 4})
	require.NoError(t, sink.Present(image.NewRGBA(image.Rect(0, 0, 4, 4)), time.Now()))
	require.NoError(t, sink.Present(image.NewRGBA(image.Rect(0, 0, 8, 3)), time.Now()))

	sink.View(func(frame *image.RGBA, _ time.Time, seq uint64) {
		assert.Equal(t, image.Rect(0, 0, 8, 3), frame.Bounds())
		assert.Equal(t, uint64(2), seq)
	})
}

func TestBufferSink_Viewport(t *testing.T) {
	sink := NewBufferSink(layout.Viewport{Width: -1, Height: 10})
	assert.Equal(t, layout.Viewport{Width: 0, Height: 10}, sink.Viewport())

	sink.SetViewport(layout.Viewport{Width: 300, Height: 200})
	assert.Equal(t, layout.Viewport{Width: 300, Height: 200}, sink.Viewport())
}

func TestBufferSink_StoppedRejectsFrames(t *testing.T) {
	sink := NewBufferSink(layout.Viewport{Width: 1, Height: 1})
	require.NoError(t, sink.Stop())

	err := sink.Present(image.NewRGBA(image.Rect(0, 0, 1, 1)), time.Now())
	assert.ErrorIs(t, err, ErrSinkStopped)
}
