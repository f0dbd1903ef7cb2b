// Package encoding turns a finished label bitmap into printer-native command
// streams. Both target languages share one bit-packing routine so their
// graphic payloads stay byte-for-byte consistent.
package encoding

import "github.com/inkmill/labelkit/internal/canvas"

// Pack flattens the bitmap into device rows: bytesPerRow = ceil(width/8),
// rows top to bottom, 8 pixels per byte MSB first, a set bit meaning ink.
// Unused low-order bits in the last byte of a row are padded with background.
func Pack(bm *canvas.Bitmap) (data []byte, bytesPerRow int) {
	bytesPerRow = (bm.W + 7) / 8
	data = make([]byte, bytesPerRow*bm.H)
	for y := 0; y < bm.H; y++ {
		rowOff := y * bytesPerRow
		for x := 0; x < bm.W; x++ {
			if bm.Ink(x, y) {
				data[rowOff+x/8] |= byte(0x80) >> uint(x%8)
			}
		}
	}
	return data, bytesPerRow
}
