package canvas

import (
	"image"
	"image/color"
	"testing"
)

func TestNewIsBlank(t *testing.T) {
	b := New(13, 4)
	if b.Stride != 2 {
		t.Fatalf("stride = %d, want 2", b.Stride)
	}
	if len(b.Pix) != 8 {
		t.Fatalf("len(Pix) = %d, want 8", len(b.Pix))
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 13; x++ {
			if b.Ink(x, y) {
				t.Fatalf("fresh canvas has ink at (%d,%d)", x, y)
			}
		}
	}
}

func TestSetInkPacking(t *testing.T) {
	b := New(10, 2)
	b.SetInk(0, 0, true)
	b.SetInk(9, 0, true)
	if b.Pix[0] != 0x80 {
		t.Errorf("byte 0 = %#02x, want 0x80", b.Pix[0])
	}
	// Pixel 9 is the second bit of the second byte.
	if b.Pix[1] != 0x40 {
		t.Errorf("byte 1 = %#02x, want 0x40", b.Pix[1])
	}
	b.SetInk(0, 0, false)
	if b.Pix[0] != 0 {
		t.Errorf("clearing pixel left %#02x", b.Pix[0])
	}
}

func TestSetClipsOutOfBounds(t *testing.T) {
	b := New(8, 8)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {8, 0}, {0, 8}, {100, 100}} {
		b.SetInk(p[0], p[1], true)
	}
	for _, by := range b.Pix {
		if by != 0 {
			t.Fatal("out-of-bounds write modified the canvas")
		}
	}
	if b.Ink(-1, -1) || b.Ink(8, 8) {
		t.Error("out-of-bounds read returned ink")
	}
}

func TestSetThreshold(t *testing.T) {
	b := New(4, 1)
	b.Set(0, 0, color.Black)
	b.Set(1, 0, color.White)
	b.Set(2, 0, color.Gray{Y: 40})
	b.Set(3, 0, color.Gray{Y: 200})
	want := []bool{true, false, true, false}
	for x, w := range want {
		if b.Ink(x, 0) != w {
			t.Errorf("pixel %d ink = %v, want %v", x, b.Ink(x, 0), w)
		}
	}
}

func TestMaskCircle(t *testing.T) {
	b := New(40, 40)
	b.FillRect(0, 0, 40, 40, true)
	b.MaskCircle()
	// Corners fall outside the inscribed circle.
	for _, p := range [][2]int{{0, 0}, {39, 0}, {0, 39}, {39, 39}} {
		if b.Ink(p[0], p[1]) {
			t.Errorf("corner (%d,%d) survived the mask", p[0], p[1])
		}
	}
	// The center survives.
	if !b.Ink(20, 20) {
		t.Error("center pixel was cleared")
	}
	if !b.Ink(19, 19) {
		t.Error("near-center pixel was cleared")
	}
}

func TestPreviewTransparentOutsideCircle(t *testing.T) {
	b := New(20, 20)
	b.SetInk(10, 10, true)
	img := b.Preview(true)
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Error("corner is not transparent in circular preview")
	}
	if r, _, _, a := img.At(10, 10).RGBA(); a == 0 || r != 0 {
		t.Error("ink pixel is not opaque black")
	}
	flat := b.Preview(false)
	if _, _, _, a := flat.At(0, 0).RGBA(); a == 0 {
		t.Error("rectangular preview has transparent pixels")
	}
}

func TestPaste(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			src.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	src.SetGray(0, 0, color.Gray{Y: 0})
	src.SetGray(1, 1, color.Gray{Y: 0})
	b := New(4, 4)
	b.FillRect(0, 0, 4, 4, true)
	b.Paste(src, 1, 1)
	// Paste overwrites background as well as ink.
	if !b.Ink(1, 1) || b.Ink(2, 1) || b.Ink(1, 2) || !b.Ink(2, 2) {
		t.Error("paste did not overwrite the covered region")
	}
	if !b.Ink(0, 0) {
		t.Error("paste touched pixels outside the covered region")
	}
}
