package render

import "image/color"

// Backdrop is what transparent frame pixels are composited over when a
// sink has no alpha channel of its own.
var Backdrop = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}
