package encoding

import (
	"bytes"
	"fmt"

	"github.com/inkmill/labelkit/internal/canvas"
)

// EncodeEPL2 renders the bitmap as a GW graphics-write command with a raw
// binary payload, preceded by a buffer clear (N) and followed by a print
// command (P1). The payload is exactly bytesPerRow * height bytes.
func EncodeEPL2(bm *canvas.Bitmap) []byte {
	data, bytesPerRow := Pack(bm)

	var b bytes.Buffer
	b.Grow(len(data) + 32)
	b.WriteString("N\n")
	fmt.Fprintf(&b, "GW0,0,%d,%d,", bytesPerRow, bm.H)
	b.Write(data)
	b.WriteString("\nP1\n")
	return b.Bytes()
}
