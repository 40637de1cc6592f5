package render

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync"
	"sync/atomic"
	"time"

	fb "github.com/gonutz/framebuffer"
	"github.com/rook-computer/analogclock/internal/render/layout"
	xdraw "golang.org/x/image/draw"
)

const DefaultFBDevice = "/dev/fb0"

// FBRenderer presents frames on a Linux framebuffer device.
type FBRenderer struct {
	Device string
	Logger interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}

	mu      sync.Mutex
	fbDev   *fb.Device
	running atomic.Bool
	frames  uint64
}

func NewFBRenderer(device string) *FBRenderer {
	if device == "" {
		device = DefaultFBDevice
	}
	return &FBRenderer{Device: device}
}

func (r *FBRenderer) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	dev, err := fb.Open(r.Device)
	if err != nil {
		return err
	}
	r.fbDev = dev
	if r.Logger != nil {
		bounds := dev.Bounds()
		r.Logger.Infof("fb", "framebuffer %s open, bounds=%dx%d", r.Device, bounds.Dx(), bounds.Dy())
	}
	r.running.Store(true)
	return nil
}

func (r *FBRenderer) Stop() error {
	r.running.Store(false)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fbDev != nil {
		r.fbDev.Close()
		r.fbDev = nil
	}
	return nil
}

// Viewport is the framebuffer resolution, or zero before Start.
func (r *FBRenderer) Viewport() layout.Viewport {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fbDev == nil {
		return layout.Viewport{}
	}
	return layout.FromRect(r.fbDev.Bounds())
}

func (r *FBRenderer) Present(frame *image.RGBA, at time.Time) error {
	if !r.running.Load() {
		return errors.New("framebuffer not running")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fbDev == nil {
		return errors.New("framebuffer closed")
	}
	blit(r.fbDev, frame, Backdrop)
	r.frames++
	if r.Logger != nil && r.frames%60 == 0 {
		r.Logger.Infof("fb", "presented %d frames, last at %s", r.frames, at.Format("15:04:05.000"))
	}
	return nil
}

// pixelSetter is the write side of a framebuffer device.
type pixelSetter interface {
	Bounds() image.Rectangle
	Set(x, y int, c color.Color)
}

// blit copies frame onto dst, scaling with nearest-neighbor sampling when
// the sizes differ and compositing translucent pixels over backdrop.
func blit(dst pixelSetter, frame *image.RGBA, backdrop color.RGBA) {
	bounds := dst.Bounds()
	if bounds.Empty() {
		return
	}
	src := frame
	if frame.Bounds().Empty() {
		src = nil
	} else if frame.Bounds().Size() != bounds.Size() {
		src = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		xdraw.NearestNeighbor.Scale(src, src.Bounds(), frame, frame.Bounds(), xdraw.Src, nil)
	}
	origin := image.Point{}
	if src != nil {
		origin = src.Bounds().Min
	}
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			pixel := backdrop
			if src != nil {
				pixel = over(src.RGBAAt(origin.X+x, origin.Y+y), backdrop)
			}
			dst.Set(bounds.Min.X+x, bounds.Min.Y+y, pixel)
		}
	}
}

// over composites premultiplied src onto an opaque backdrop.
func over(src, backdrop color.RGBA) color.RGBA {
	k := uint32(0xFF - src.A)
	return color.RGBA{
		R: uint8(uint32(src.R) + uint32(backdrop.R)*k/0xFF),
		G: uint8(uint32(src.G) + uint32(backdrop.G)*k/0xFF),
		B: uint8(uint32(src.B) + uint32(backdrop.B)*k/0xFF),
		A: 0xFF,
	}
}
