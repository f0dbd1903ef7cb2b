package elements

import (
	"testing"

	"github.com/inkmill/labelkit/internal/canvas"
	"github.com/inkmill/labelkit/internal/geometry"
	"github.com/inkmill/labelkit/label"
)

func TestCodecsAvailable(t *testing.T) {
	p := testPainter(t)
	if !p.qrOK || !p.dmOK || !p.code128OK {
		t.Errorf("codec probe failed: qr=%v dm=%v code128=%v", p.qrOK, p.dmOK, p.code128OK)
	}
}

func TestQRCodeConfinedToSquare(t *testing.T) {
	p := testPainter(t)
	def := rectDef(50, 50)
	el := &label.QRCodeElement{
		Field:           "url",
		XMm:             25,
		YMm:             25,
		SizeMm:          10,
		ErrorCorrection: label.ECMedium,
	}
	bm := canvas.New(400, 400)
	p.paintQRCode(bm, el, label.Context{"url": "https://example.com/1234"}, def)

	size := geometry.MmToPx(10, 203) // 80
	cx := geometry.MmToPx(25, 203)   // 200
	x0, y0 := cx-size/2, cx-size/2
	ink := 0
	for y := 0; y < bm.H; y++ {
		for x := 0; x < bm.W; x++ {
			if !bm.Ink(x, y) {
				continue
			}
			ink++
			if x < x0 || x >= x0+size || y < y0 || y >= y0+size {
				t.Fatalf("ink at (%d,%d) outside the %dpx square at (%d,%d)", x, y, size, x0, y0)
			}
		}
	}
	if ink == 0 {
		t.Fatal("qr element painted no ink")
	}
}

func TestQRCodeEmptyFieldIsNoOp(t *testing.T) {
	p := testPainter(t)
	def := rectDef(50, 50)
	el := &label.QRCodeElement{Field: "url", XMm: 25, YMm: 25, SizeMm: 10}
	bm := canvas.New(400, 400)
	p.paintQRCode(bm, el, label.Context{}, def)
	p.paintQRCode(bm, el, label.Context{"url": ""}, def)
	if countInk(bm) != 0 {
		t.Error("empty field painted ink")
	}
}

func TestQRCodePrefixSuffixChangesSymbol(t *testing.T) {
	p := testPainter(t)
	def := rectDef(50, 50)
	plain := &label.QRCodeElement{Field: "id", XMm: 25, YMm: 25, SizeMm: 12}
	prefixed := &label.QRCodeElement{Field: "id", XMm: 25, YMm: 25, SizeMm: 12, Prefix: "https://inv.example/", Suffix: "?v=1"}
	a := canvas.New(400, 400)
	b := canvas.New(400, 400)
	p.paintQRCode(a, plain, label.Context{"id": "X1"}, def)
	p.paintQRCode(b, prefixed, label.Context{"id": "X1"}, def)
	same := true
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("prefix/suffix did not change the encoded symbol")
	}
}

func TestDataMatrixPaints(t *testing.T) {
	p := testPainter(t)
	def := rectDef(50, 50)
	el := &label.DataMatrixElement{Field: "sn", XMm: 25, YMm: 25, SizeMm: 10}
	bm := canvas.New(400, 400)
	p.paintDataMatrix(bm, el, label.Context{"sn": "SN-0042"}, def)
	if countInk(bm) == 0 {
		t.Error("datamatrix element painted no ink")
	}
}

func TestCode128ModuleWidthExact(t *testing.T) {
	p := testPainter(t)
	def := rectDef(80, 30)
	el := &label.Code128Element{
		Field:         "sn",
		XMm:           40,
		YMm:           15,
		HeightMm:      10,
		ModuleWidthMm: 0.3,
	}
	bm := canvas.New(geometry.MmToPx(80, 203), geometry.MmToPx(30, 203))
	p.paintCode128(bm, el, label.Context{"sn": "ABC123"}, def)

	moduleW := geometry.MmToPx(0.3, 203) // 2
	y := geometry.MmToPx(15, 203)
	// Measure ink runs across the center row; the narrowest bar must be
	// exactly one module wide.
	minRun, run := bm.W, 0
	sawInk := false
	for x := 0; x <= bm.W; x++ {
		if x < bm.W && bm.Ink(x, y) {
			run++
			sawInk = true
			continue
		}
		if run > 0 && run < minRun {
			minRun = run
		}
		run = 0
	}
	if !sawInk {
		t.Fatal("code128 element painted no ink")
	}
	if minRun != moduleW {
		t.Errorf("narrowest bar = %dpx, want %dpx", minRun, moduleW)
	}
}

func TestCode128HeightAndCentering(t *testing.T) {
	p := testPainter(t)
	def := rectDef(80, 30)
	el := &label.Code128Element{
		Field:         "sn",
		XMm:           40,
		YMm:           15,
		HeightMm:      10,
		ModuleWidthMm: 0.3,
	}
	bm := canvas.New(geometry.MmToPx(80, 203), geometry.MmToPx(30, 203))
	p.paintCode128(bm, el, label.Context{"sn": "ABC123"}, def)

	minY, maxY := bm.H, -1
	for y := 0; y < bm.H; y++ {
		for x := 0; x < bm.W; x++ {
			if bm.Ink(x, y) {
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
				break
			}
		}
	}
	heightPx := geometry.MmToPx(10, 203)
	if got := maxY - minY + 1; got != heightPx {
		t.Errorf("bar height = %dpx, want %d", got, heightPx)
	}
	cy := geometry.MmToPx(15, 203)
	wantTop := cy - heightPx/2
	if minY != wantTop {
		t.Errorf("bars start at y=%d, want %d", minY, wantTop)
	}
}

func TestCode128EmptyFieldIsNoOp(t *testing.T) {
	p := testPainter(t)
	def := rectDef(80, 30)
	el := &label.Code128Element{Field: "sn", XMm: 40, YMm: 15, HeightMm: 10, ModuleWidthMm: 0.3}
	bm := canvas.New(100, 100)
	p.paintCode128(bm, el, label.Context{"sn": ""}, def)
	if countInk(bm) != 0 {
		t.Error("empty field painted ink")
	}
}

func TestPaintDispatch(t *testing.T) {
	p := testPainter(t)
	def := rectDef(50, 25)
	bm := canvas.New(400, 200)
	var el label.Element = textEl("", "dispatch")
	p.Paint(bm, el, label.Context{}, def)
	if countInk(bm) == 0 {
		t.Error("Paint did not dispatch to the text painter")
	}
}
