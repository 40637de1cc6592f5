package main

import (
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rook-computer/analogclock/internal/render"
	"github.com/rook-computer/analogclock/internal/render/layout"
)

// window shows the latest clock frame and turns window size changes into
// clock resizes.
type window struct {
	app interface {
		Resize(layout.Viewport)
	}
	sink *render.BufferSink
	size layout.Viewport
	done <-chan struct{}

	img *ebiten.Image
	seq uint64
}

func (w *window) Update() error {
	select {
	case <-w.done:
		return ebiten.Termination
	default:
	}
	return nil
}

func (w *window) Draw(screen *ebiten.Image) {
	screen.Fill(render.Backdrop)
	w.sink.View(func(frame *image.RGBA, _ time.Time, seq uint64) {
		if frame == nil || frame.Rect.Empty() {
			return
		}
		if w.img == nil || w.img.Bounds().Size() != frame.Rect.Size() {
			if w.img != nil {
				w.img.Deallocate()
			}
			w.img = ebiten.NewImage(frame.Rect.Dx(), frame.Rect.Dy())
			w.seq = 0
		}
		if seq != w.seq {
			w.img.WritePixels(frame.Pix)
			w.seq = seq
		}
	})
	if w.img != nil {
		screen.DrawImage(w.img, nil)
	}
}

// Layout keeps one frame pixel per window pixel.
func (w *window) Layout(outsideWidth, outsideHeight int) (int, int) {
	size := layout.Viewport{Width: outsideWidth, Height: outsideHeight}
	if size.Empty() {
		// minimized
		return w.size.Width, w.size.Height
	}
	if size != w.size {
		w.size = size
		w.sink.SetViewport(size)
		w.app.Resize(size)
	}
	return size.Width, size.Height
}
