// Package geometry holds the unit conversions and circle-chord math shared by
// the text layout, auto-scale, and masking code. Every millimeter-to-dot
// conversion in a render goes through MmToPx so rounding stays consistent.
package geometry

import "math"

// MmToPx converts a distance in millimeters to printer dots at the given
// resolution, rounding half away from zero.
func MmToPx(mm float64, dpi int) int {
	return int(math.Round(mm * float64(dpi) / 25.4))
}

// PxToMm converts printer dots back to millimeters.
func PxToMm(px int, dpi int) float64 {
	return float64(px) * 25.4 / float64(dpi)
}

// ChordWidth returns the usable horizontal span at row y inside a circle
// centered at (_, cy) with the given radius, constrained to boxWidth.
// Rows at or beyond the circle's top/bottom edge have no usable width.
func ChordWidth(y, cy, radius, boxWidth int) int {
	off := y - cy
	if off < 0 {
		off = -off
	}
	if off >= radius {
		return 0
	}
	half := math.Sqrt(float64(radius*radius - off*off))
	width := int(2 * half)
	if width > boxWidth {
		return boxWidth
	}
	return width
}

// ChordStart returns the x coordinate where the chord at row y begins,
// clamped so it never starts left of boxLeft.
func ChordStart(y, cx, cy, radius, boxLeft int) int {
	off := y - cy
	if off < 0 {
		off = -off
	}
	if off >= radius {
		return boxLeft
	}
	half := math.Sqrt(float64(radius*radius - off*off))
	start := int(float64(cx) - half)
	if start < boxLeft {
		return boxLeft
	}
	return start
}
