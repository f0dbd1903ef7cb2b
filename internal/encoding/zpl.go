package encoding

import (
	"fmt"
	"strings"

	"github.com/inkmill/labelkit/internal/canvas"
)

// ZPLOptions carries the print settings that become commands in the ZPL
// envelope. Zero values emit nothing: darkness and home-offset commands
// appear only when explicitly configured.
type ZPLOptions struct {
	// Darkness is the ~SD print darkness (0-30); nil omits the command.
	Darkness *int
	// OffsetX/OffsetY are the ^LH label home offsets in dots.
	OffsetX int
	OffsetY int
}

const hexUpper = "0123456789ABCDEF"

// EncodeZPL renders the bitmap as a ^GFA graphics field inside a ^XA/^XZ
// format envelope. The hex payload is uppercase and exactly twice totalBytes
// characters long.
func EncodeZPL(bm *canvas.Bitmap, opts ZPLOptions) []byte {
	data, bytesPerRow := Pack(bm)
	totalBytes := len(data)

	var b strings.Builder
	b.Grow(2*totalBytes + 64)
	b.WriteString("^XA\n")
	if opts.Darkness != nil {
		fmt.Fprintf(&b, "~SD%d\n", *opts.Darkness)
	}
	if opts.OffsetX != 0 || opts.OffsetY != 0 {
		fmt.Fprintf(&b, "^LH%d,%d\n", opts.OffsetX, opts.OffsetY)
	}
	fmt.Fprintf(&b, "^FO0,0^GFA,%d,%d,%d,", totalBytes, totalBytes, bytesPerRow)
	for _, by := range data {
		b.WriteByte(hexUpper[by>>4])
		b.WriteByte(hexUpper[by&0x0f])
	}
	b.WriteString("\n^XZ\n")
	return []byte(b.String())
}
