package elements

import (
	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/datamatrix"
	"github.com/boombuler/barcode/qr"

	"github.com/inkmill/labelkit/internal/canvas"
	"github.com/inkmill/labelkit/internal/geometry"
	"github.com/inkmill/labelkit/label"
)

// qrLevels maps the template error-correction tier onto the codec's levels.
// Unmapped tiers fall back to M.
var qrLevels = map[label.ECLevel]qr.ErrorCorrectionLevel{
	label.ECLow:      qr.L,
	label.ECMedium:   qr.M,
	label.ECQuartile: qr.Q,
	label.ECHigh:     qr.H,
}

func (p *Painter) paintQRCode(bm *canvas.Bitmap, e *label.QRCodeElement, ctx label.Context, def *label.Definition) {
	value := label.Stringify(ctx[e.Field])
	if value == "" {
		return
	}
	if !p.qrOK {
		p.log.Warn("skipping qr element, codec unavailable", "field", e.Field)
		return
	}
	data := e.Prefix + value + e.Suffix

	dpi := def.DPI
	cx := geometry.MmToPx(e.XMm, dpi)
	cy := geometry.MmToPx(e.YMm, dpi)
	size := geometry.MmToPx(e.SizeMm, dpi)
	if size <= 0 {
		return
	}

	level, ok := qrLevels[e.ErrorCorrection]
	if !ok {
		level = qr.M
	}
	code, err := qr.Encode(data, level, qr.Auto)
	if err != nil {
		p.log.Warn("skipping qr element", "field", e.Field, "error", err)
		return
	}
	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		p.log.Warn("skipping qr element, symbol does not fit requested size",
			"field", e.Field, "size_px", size, "error", err)
		return
	}
	bm.Paste(scaled, cx-size/2, cy-size/2)
}

func (p *Painter) paintDataMatrix(bm *canvas.Bitmap, e *label.DataMatrixElement, ctx label.Context, def *label.Definition) {
	value := label.Stringify(ctx[e.Field])
	if value == "" {
		return
	}
	if !p.dmOK {
		p.log.Warn("skipping datamatrix element, codec unavailable", "field", e.Field)
		return
	}
	data := e.Prefix + value + e.Suffix

	dpi := def.DPI
	cx := geometry.MmToPx(e.XMm, dpi)
	cy := geometry.MmToPx(e.YMm, dpi)
	size := geometry.MmToPx(e.SizeMm, dpi)
	if size <= 0 {
		return
	}

	code, err := datamatrix.Encode(data)
	if err != nil {
		p.log.Warn("skipping datamatrix element", "field", e.Field, "error", err)
		return
	}
	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		p.log.Warn("skipping datamatrix element, symbol does not fit requested size",
			"field", e.Field, "size_px", size, "error", err)
		return
	}
	bm.Paste(scaled, cx-size/2, cy-size/2)
}

// paintCode128 renders each symbol module as an exact moduleWidth × height
// block, after cropping any blank quiet-zone columns the generator adds.
// Module width directly encodes data under the symbology, so the narrowest
// painted bar must be exactly the configured width.
func (p *Painter) paintCode128(bm *canvas.Bitmap, e *label.Code128Element, ctx label.Context, def *label.Definition) {
	value := label.Stringify(ctx[e.Field])
	if value == "" {
		return
	}
	if !p.code128OK {
		p.log.Warn("skipping code128 element, codec unavailable", "field", e.Field)
		return
	}
	data := e.Prefix + value + e.Suffix

	dpi := def.DPI
	cx := geometry.MmToPx(e.XMm, dpi)
	cy := geometry.MmToPx(e.YMm, dpi)
	heightPx := geometry.MmToPx(e.HeightMm, dpi)
	moduleW := geometry.MmToPx(e.ModuleWidthMm, dpi)
	if moduleW < 1 {
		moduleW = 1
	}
	if heightPx <= 0 {
		return
	}

	code, err := code128.Encode(data)
	if err != nil {
		p.log.Warn("skipping code128 element", "field", e.Field, "error", err)
		return
	}

	// Crop to the tight bounding box of bar content.
	b := code.Bounds()
	row := b.Min.Y
	first, last := -1, -1
	for x := b.Min.X; x < b.Max.X; x++ {
		if dark(code.At(x, row)) {
			if first < 0 {
				first = x
			}
			last = x
		}
	}
	if first < 0 {
		p.log.Warn("skipping code128 element, symbol has no bars", "field", e.Field)
		return
	}

	modules := last - first + 1
	totalW := modules * moduleW
	x0 := cx - totalW/2
	y0 := cy - heightPx/2
	bm.FillRect(x0, y0, totalW, heightPx, false)
	for i := 0; i < modules; i++ {
		if dark(code.At(first+i, row)) {
			bm.FillRect(x0+i*moduleW, y0, moduleW, heightPx, true)
		}
	}
}
