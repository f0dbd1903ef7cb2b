// Package canvas provides the 1-bit-per-pixel raster that label elements are
// painted onto. The bitmap satisfies draw.Image so glyph and symbol drawing
// from the image ecosystem lands directly in packed, printer-ready rows.
package canvas

import (
	"image"
	"image/color"
	"image/draw"
)

// Bitmap is a 1bpp raster with MSB-first packed rows. A set bit is ink
// (printed); a clear bit is background. Stride is ceil(width/8) bytes, so the
// rows are already laid out the way the device encoders consume them. Pixels
// written through Set are thresholded: anything darker than 50% luminance
// becomes ink.
type Bitmap struct {
	W, H   int
	Stride int
	Pix    []byte
}

// New returns a blank, background-filled bitmap.
func New(w, h int) *Bitmap {
	stride := (w + 7) / 8
	return &Bitmap{
		W:      w,
		H:      h,
		Stride: stride,
		Pix:    make([]byte, stride*h),
	}
}

func (b *Bitmap) ColorModel() color.Model {
	return color.ModelFunc(func(c color.Color) color.Color {
		if isInk(c) {
			return color.Black
		}
		return color.White
	})
}

func (b *Bitmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.W, b.H)
}

func (b *Bitmap) At(x, y int) color.Color {
	if b.Ink(x, y) {
		return color.Black
	}
	return color.White
}

// Set implements draw.Image. Out-of-bounds writes are dropped, which is what
// clips elements whose boxes extend past the label edge.
func (b *Bitmap) Set(x, y int, c color.Color) {
	b.SetInk(x, y, isInk(c))
}

// SetInk writes a single pixel. Out-of-bounds writes are ignored.
func (b *Bitmap) SetInk(x, y int, ink bool) {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return
	}
	idx := y*b.Stride + x/8
	mask := byte(0x80) >> uint(x%8)
	if ink {
		b.Pix[idx] |= mask
	} else {
		b.Pix[idx] &^= mask
	}
}

// Ink reports whether the pixel at (x, y) is ink. Out-of-bounds pixels read
// as background.
func (b *Bitmap) Ink(x, y int) bool {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return false
	}
	return b.Pix[y*b.Stride+x/8]&(byte(0x80)>>uint(x%8)) != 0
}

// Row returns the packed bytes of row y. Unused low-order bits of the final
// byte are always background.
func (b *Bitmap) Row(y int) []byte {
	return b.Pix[y*b.Stride : (y+1)*b.Stride]
}

// MaskCircle forces every pixel outside the inscribed circle to background.
// The circle's diameter is the smaller of the two canvas dimensions.
func (b *Bitmap) MaskCircle() {
	cx := float64(b.W-1) / 2
	cy := float64(b.H-1) / 2
	d := b.W
	if b.H < d {
		d = b.H
	}
	r := float64(d) / 2
	rr := r * r
	for y := 0; y < b.H; y++ {
		dy := float64(y) - cy
		for x := 0; x < b.W; x++ {
			dx := float64(x) - cx
			if dx*dx+dy*dy > rr {
				b.SetInk(x, y, false)
			}
		}
	}
}

// Preview expands the bitmap into an NRGBA image for human viewing. When
// circular is true, pixels outside the inscribed circle become fully
// transparent instead of white; this variant is never sent to a printer.
func (b *Bitmap) Preview(circular bool) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, b.W, b.H))
	cx := float64(b.W-1) / 2
	cy := float64(b.H-1) / 2
	d := b.W
	if b.H < d {
		d = b.H
	}
	r := float64(d) / 2
	rr := r * r
	for y := 0; y < b.H; y++ {
		dy := float64(y) - cy
		for x := 0; x < b.W; x++ {
			if circular {
				dx := float64(x) - cx
				if dx*dx+dy*dy > rr {
					out.SetNRGBA(x, y, color.NRGBA{})
					continue
				}
			}
			if b.Ink(x, y) {
				out.SetNRGBA(x, y, color.NRGBA{A: 255})
			} else {
				out.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
			}
		}
	}
	return out
}

// Paste copies src onto the bitmap with its top-left corner at (x0, y0),
// overwriting both ink and background in the covered region. Pixels falling
// outside the canvas are clipped.
func (b *Bitmap) Paste(src image.Image, x0, y0 int) {
	bounds := src.Bounds()
	for sy := bounds.Min.Y; sy < bounds.Max.Y; sy++ {
		for sx := bounds.Min.X; sx < bounds.Max.X; sx++ {
			b.SetInk(x0+sx-bounds.Min.X, y0+sy-bounds.Min.Y, isInk(src.At(sx, sy)))
		}
	}
}

// FillRect sets every pixel in the w×h rectangle at (x0, y0), clipped to the
// canvas.
func (b *Bitmap) FillRect(x0, y0, w, h int, ink bool) {
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			b.SetInk(x, y, ink)
		}
	}
}

var _ draw.Image = (*Bitmap)(nil)

// isInk thresholds a color at 50% luminance. Fully transparent pixels count
// as background regardless of their color channels.
func isInk(c color.Color) bool {
	r, g, bl, a := c.RGBA()
	if a == 0 {
		return false
	}
	y := (299*r + 587*g + 114*bl) / 1000
	return y < 0x8000
}
