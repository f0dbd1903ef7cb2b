// Package elements paints label elements onto the canvas. One Painter
// serves all renders of an Engine; it holds no per-render state.
package elements

import (
	"image/color"
	"log/slog"

	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/datamatrix"
	"github.com/boombuler/barcode/qr"

	"github.com/inkmill/labelkit/fonts"
	"github.com/inkmill/labelkit/internal/canvas"
	"github.com/inkmill/labelkit/internal/logging"
	"github.com/inkmill/labelkit/label"
)

const probeContent = "PROBE"

// Painter dispatches the closed element variant set onto the canvas. Codec
// availability is probed once at construction; elements whose codec is
// unavailable degrade to logged no-ops instead of failing the render.
type Painter struct {
	fonts fonts.Provider
	log   *slog.Logger

	qrOK      bool
	dmOK      bool
	code128OK bool
}

// NewPainter probes the barcode codecs and returns a Painter ready for
// concurrent use.
func NewPainter(provider fonts.Provider) *Painter {
	p := &Painter{
		fonts: provider,
		log:   logging.Component(logging.ComponentRenderer),
	}
	if _, err := qr.Encode(probeContent, qr.M, qr.Auto); err != nil {
		p.log.Warn("qr codec unavailable, qr elements will be skipped", "error", err)
	} else {
		p.qrOK = true
	}
	if _, err := datamatrix.Encode(probeContent); err != nil {
		p.log.Warn("datamatrix codec unavailable, datamatrix elements will be skipped", "error", err)
	} else {
		p.dmOK = true
	}
	if _, err := code128.Encode(probeContent); err != nil {
		p.log.Warn("code128 codec unavailable, code128 elements will be skipped", "error", err)
	} else {
		p.code128OK = true
	}
	return p
}

// Paint renders a single element. Failures degrade to warnings; the canvas
// is left untouched by elements that cannot render.
func (p *Painter) Paint(bm *canvas.Bitmap, el label.Element, ctx label.Context, def *label.Definition) {
	switch e := el.(type) {
	case *label.TextElement:
		p.paintText(bm, e, ctx, def)
	case *label.QRCodeElement:
		p.paintQRCode(bm, e, ctx, def)
	case *label.DataMatrixElement:
		p.paintDataMatrix(bm, e, ctx, def)
	case *label.Code128Element:
		p.paintCode128(bm, e, ctx, def)
	default:
		p.log.Warn("unknown element kind", "kind", el.Kind())
	}
}

// dark thresholds a symbol pixel at 50% luminance.
func dark(c color.Color) bool {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return false
	}
	y := (299*r + 587*g + 114*b) / 1000
	return y < 0x8000
}
