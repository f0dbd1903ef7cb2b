// Package labelkit renders declarative label templates into printer-native
// command streams. A render is a pure function of (template, context,
// format): inputs are validated up front, elements paint onto a fresh 1-bit
// canvas in declared order, circular stock is masked, and the finished
// bitmap is encoded for the target printer language. Engines are safe for
// concurrent use; templates are never mutated.
package labelkit

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/inkmill/labelkit/fonts"
	"github.com/inkmill/labelkit/internal/canvas"
	"github.com/inkmill/labelkit/internal/elements"
	"github.com/inkmill/labelkit/internal/encoding"
	"github.com/inkmill/labelkit/internal/geometry"
	"github.com/inkmill/labelkit/label"
)

// Format selects the printer command language of the output.
type Format string

const (
	FormatZPL  Format = "zpl"
	FormatEPL2 Format = "epl2"
)

// PreviewFormat selects the image encoding of a preview render.
type PreviewFormat string

const (
	PreviewPNG  PreviewFormat = "png"
	PreviewJPEG PreviewFormat = "jpeg"
)

// UnsupportedFormatError reports a requested output format that is neither
// supported target. It is returned before any canvas work begins.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported output format: %s", e.Format)
}

// ParseFormat maps a format name onto a Format, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatZPL:
		return FormatZPL, nil
	case FormatEPL2:
		return FormatEPL2, nil
	default:
		return "", &UnsupportedFormatError{Format: s}
	}
}

// Engine renders label templates. It owns the font provider and the element
// painters; codec availability is probed once at construction. One Engine
// serves any number of concurrent renders.
type Engine struct {
	fonts   fonts.Provider
	painter *elements.Painter
}

// New returns an Engine using the given font provider, or the embedded
// default library when provider is nil.
func New(provider fonts.Provider) *Engine {
	if provider == nil {
		provider = fonts.NewLibrary()
	}
	return &Engine{
		fonts:   provider,
		painter: elements.NewPainter(provider),
	}
}

// Render produces the printer command stream for the template and context.
// It fails with *UnsupportedFormatError or a validation error (including
// *label.MissingFieldError) before any canvas is allocated; after that the
// caller always receives a complete encoding, with unrenderable elements
// degraded to no-ops.
func (e *Engine) Render(def *label.Definition, ctx label.Context, format Format) ([]byte, error) {
	switch format {
	case FormatZPL, FormatEPL2:
	default:
		return nil, &UnsupportedFormatError{Format: string(format)}
	}
	bm, err := e.renderCanvas(def, ctx)
	if err != nil {
		return nil, err
	}
	if def.Shape == label.ShapeCircle {
		bm.MaskCircle()
	}
	switch format {
	case FormatEPL2:
		return encoding.EncodeEPL2(bm), nil
	default:
		return encoding.EncodeZPL(bm, encoding.ZPLOptions{
			Darkness: def.Darkness,
			OffsetX:  geometry.MmToPx(def.OffsetXMm, def.DPI),
			OffsetY:  geometry.MmToPx(def.OffsetYMm, def.DPI),
		}), nil
	}
}

// RenderPreview produces a human-viewable raster of the label instead of a
// printer payload. Circular labels get a transparent exterior rather than
// the background-fill masking used for printing; JPEG output is composited
// onto white since the format has no alpha.
func (e *Engine) RenderPreview(def *label.Definition, ctx label.Context, format PreviewFormat) ([]byte, error) {
	switch format {
	case PreviewPNG, PreviewJPEG, "":
	default:
		return nil, &UnsupportedFormatError{Format: string(format)}
	}
	bm, err := e.renderCanvas(def, ctx)
	if err != nil {
		return nil, err
	}
	img := bm.Preview(def.Shape == label.ShapeCircle)

	var buf bytes.Buffer
	if format == PreviewJPEG {
		flat := image.NewRGBA(img.Bounds())
		draw.Draw(flat, flat.Bounds(), image.White, image.Point{}, draw.Src)
		draw.Draw(flat, flat.Bounds(), img, image.Point{}, draw.Over)
		if err := jpeg.Encode(&buf, flat, nil); err != nil {
			return nil, fmt.Errorf("encoding preview: %w", err)
		}
		return buf.Bytes(), nil
	}
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding preview: %w", err)
	}
	return buf.Bytes(), nil
}

// renderCanvas validates inputs, resolves the context, and paints every
// element in declared order onto a fresh canvas.
func (e *Engine) renderCanvas(def *label.Definition, ctx label.Context) (*canvas.Bitmap, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	resolved, err := def.ResolveContext(ctx)
	if err != nil {
		return nil, err
	}

	var widthPx, heightPx int
	if def.Shape == label.ShapeCircle {
		d := geometry.MmToPx(def.Dimensions.DiameterMm, def.DPI)
		widthPx, heightPx = d, d
	} else {
		widthPx = geometry.MmToPx(def.Dimensions.WidthMm, def.DPI)
		heightPx = geometry.MmToPx(def.Dimensions.HeightMm, def.DPI)
	}
	if widthPx <= 0 || heightPx <= 0 {
		return nil, fmt.Errorf("invalid template %q: %dx%d dots is not printable", def.Name, widthPx, heightPx)
	}

	bm := canvas.New(widthPx, heightPx)
	for _, el := range def.Elements {
		e.painter.Paint(bm, el, resolved, def)
	}
	return bm, nil
}
