package fonts

import (
	"sync"
	"testing"

	"golang.org/x/image/font"
)

func TestResolveKnownFont(t *testing.T) {
	l := NewLibrary()
	face := l.Resolve("Go-Regular", 14)
	if face == nil {
		t.Fatal("Resolve returned nil face")
	}
	if w := font.MeasureString(face, "Hello"); w <= 0 {
		t.Errorf("measured width = %v", w)
	}
}

func TestResolveUnknownFallsBack(t *testing.T) {
	l := NewLibrary()
	face := l.Resolve("ComicSans", 14)
	if face == nil {
		t.Fatal("fallback face is nil")
	}
}

func TestResolveClampsSize(t *testing.T) {
	l := NewLibrary()
	if face := l.Resolve("Go-Regular", 0); face == nil {
		t.Fatal("zero size returned nil face")
	}
	if face := l.Resolve("Go-Regular", -3); face == nil {
		t.Fatal("negative size returned nil face")
	}
}

func TestLargerSizeMeasuresWider(t *testing.T) {
	l := NewLibrary()
	small := font.MeasureString(l.Resolve("Go-Regular", 8), "Width")
	large := font.MeasureString(l.Resolve("Go-Regular", 24), "Width")
	if large <= small {
		t.Errorf("24px width %v not larger than 8px width %v", large, small)
	}
}

func TestRegisterRejectsGarbage(t *testing.T) {
	l := NewLibrary()
	if err := l.Register("bad", []byte("not a font")); err == nil {
		t.Error("Register accepted garbage data")
	}
}

func TestConcurrentResolve(t *testing.T) {
	l := NewLibrary()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			face := l.Resolve("Go-Regular", 6+n)
			font.MeasureString(face, "concurrent")
		}(i)
	}
	wg.Wait()
}
