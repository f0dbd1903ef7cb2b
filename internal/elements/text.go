package elements

import (
	"image"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/inkmill/labelkit/internal/canvas"
	"github.com/inkmill/labelkit/internal/geometry"
	"github.com/inkmill/labelkit/label"
)

const (
	minFontSize    = 6
	scaleTolerance = 2 // auto-scale search stops within this many size units
)

// circleGeom carries the label circle in pixels for circle-aware layout.
type circleGeom struct {
	cx, cy, r int
}

func circleFor(e *label.TextElement, def *label.Definition) *circleGeom {
	if !e.CircleAware || def.Shape != label.ShapeCircle || def.Dimensions.DiameterMm <= 0 {
		return nil
	}
	r := geometry.MmToPx(def.Dimensions.DiameterMm/2, def.DPI)
	return &circleGeom{cx: r, cy: r, r: r}
}

func (p *Painter) paintText(bm *canvas.Bitmap, e *label.TextElement, ctx label.Context, def *label.Definition) {
	var text string
	if e.Field != "" {
		text = label.Stringify(ctx[e.Field])
	} else {
		text = e.StaticText
	}
	if text == "" {
		return
	}

	dpi := def.DPI
	boxX := geometry.MmToPx(e.Bounds.XMm, dpi)
	boxY := geometry.MmToPx(e.Bounds.YMm, dpi)
	boxW := geometry.MmToPx(e.Bounds.WidthMm, dpi)
	boxH := geometry.MmToPx(e.Bounds.HeightMm, dpi)
	if boxW <= 0 || boxH <= 0 {
		return
	}

	cg := circleFor(e, def)
	size := e.FontSize
	if e.AutoScale {
		size = p.fitFontSize(text, e, boxX, boxY, boxW, boxH, cg)
	}
	face := p.fonts.Resolve(e.Font, size)

	var lines []string
	if e.Wrap {
		lines = wrapText(text, face, boxW, boxY, cg)
	} else {
		lines = []string{text}
	}
	if len(lines) == 0 {
		return
	}

	lineH, spacedH, totalH, ascent := blockMetrics(face, len(lines), e.LineSpacing)
	curY := blockStartY(e.VAlign, boxY, boxH, totalH)

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			// Blank lines advance the cursor but draw nothing.
			curY += spacedH
			continue
		}
		centerY := curY + lineH/2
		avail := boxW
		start := boxX
		if cg != nil {
			avail = geometry.ChordWidth(centerY, cg.cy, cg.r, boxW)
			start = geometry.ChordStart(centerY, cg.cx, cg.cy, cg.r, boxX)
		}
		lineW := font.MeasureString(face, line).Ceil()
		lineX := start
		switch e.Align {
		case label.AlignCenter:
			lineX = start + (avail-lineW)/2
		case label.AlignRight:
			lineX = start + avail - lineW
		}
		d := font.Drawer{
			Dst:  bm,
			Src:  image.Black,
			Face: face,
			Dot:  fixed.P(lineX, curY+ascent),
		}
		d.DrawString(line)
		curY += spacedH
	}
}

// fitFontSize binary-searches the largest size in [minFontSize, requested]
// whose laid-out text fits the box, stopping once the interval is within
// scaleTolerance. The result is guaranteed to fit when any size in the range
// does; it may be up to one tolerance step smaller than optimal.
func (p *Painter) fitFontSize(text string, e *label.TextElement, boxX, boxY, boxW, boxH int, cg *circleGeom) int {
	lo, hi := minFontSize, e.FontSize
	for hi-lo > scaleTolerance {
		mid := (lo + hi) / 2
		if p.textFits(text, e, mid, boxX, boxY, boxW, boxH, cg) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

func (p *Painter) textFits(text string, e *label.TextElement, size, boxX, boxY, boxW, boxH int, cg *circleGeom) bool {
	face := p.fonts.Resolve(e.Font, size)
	var lines []string
	if e.Wrap {
		lines = wrapText(text, face, boxW, boxY, cg)
	} else {
		lines = []string{text}
	}
	if len(lines) == 0 {
		return true
	}
	lineH, spacedH, totalH, _ := blockMetrics(face, len(lines), e.LineSpacing)
	if totalH > boxH {
		return false
	}
	curY := blockStartY(e.VAlign, boxY, boxH, totalH)
	for _, line := range lines {
		avail := boxW
		if cg != nil {
			avail = geometry.ChordWidth(curY+lineH/2, cg.cy, cg.r, boxW)
		}
		if font.MeasureString(face, line).Ceil() > avail {
			return false
		}
		curY += spacedH
	}
	return true
}

// wrapText greedily packs words into lines. The width available to each line
// is recomputed at that line's vertical position when circle-aware, since
// chords shrink toward the circle's top and bottom. A word wider than the
// available width still gets its own line; the canvas boundary clips it.
func wrapText(text string, face font.Face, maxWidth, startY int, cg *circleGeom) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	m := face.Metrics()
	lineH := (m.Ascent + m.Descent).Ceil()

	var lines []string
	var current []string
	curY := startY
	for _, word := range words {
		avail := maxWidth
		if cg != nil {
			avail = geometry.ChordWidth(curY+lineH/2, cg.cy, cg.r, maxWidth)
		}
		candidate := strings.Join(append(current[:len(current):len(current)], word), " ")
		if font.MeasureString(face, candidate).Ceil() <= avail {
			current = append(current, word)
			continue
		}
		if len(current) > 0 {
			lines = append(lines, strings.Join(current, " "))
			curY += lineH
		}
		current = []string{word}
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return lines
}

// blockMetrics returns the face line height, the advance between lines after
// the spacing multiplier, the stacked height of n lines, and the ascent used
// to place baselines.
func blockMetrics(face font.Face, n int, spacing float64) (lineH, spacedH, totalH, ascent int) {
	m := face.Metrics()
	lineH = (m.Ascent + m.Descent).Ceil()
	if spacing <= 0 {
		spacing = 1.0
	}
	spacedH = int(float64(lineH) * spacing)
	if n > 0 {
		totalH = (n-1)*spacedH + lineH
	}
	ascent = m.Ascent.Ceil()
	return
}

func blockStartY(va label.VAlign, boxY, boxH, totalH int) int {
	switch va {
	case label.VAlignMiddle:
		return boxY + (boxH-totalH)/2
	case label.VAlignBottom:
		return boxY + boxH - totalH
	default:
		return boxY
	}
}
