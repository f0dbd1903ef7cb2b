// Package fonts supplies font faces to the text renderer. The Provider
// contract never fails: unresolved names fall back to an embedded face so a
// render always has something to draw with.
package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/inkmill/labelkit/internal/logging"
)

// Provider resolves a font name and pixel size to a drawable face. Resolve
// never fails; unresolved names yield a fallback face. Faces returned from
// separate Resolve calls are independent, so concurrent renders each get
// their own.
type Provider interface {
	Resolve(name string, size int) font.Face
}

// Library is the default Provider. It holds parsed fonts keyed by name;
// parsed fonts are immutable, so concurrent Resolve calls only share
// read-only data. Each Resolve builds a fresh face because faces carry
// mutable shaping buffers.
type Library struct {
	mu       sync.RWMutex
	fonts    map[string]*opentype.Font
	fallback *opentype.Font
}

// NewLibrary returns a Library seeded with the embedded Go fonts
// (Go-Regular, Go-Bold, Go-Italic, Go-Mono). Go-Regular is the fallback.
func NewLibrary() *Library {
	l := &Library{fonts: make(map[string]*opentype.Font)}
	l.fallback = mustParse(goregular.TTF)
	l.fonts["Go-Regular"] = l.fallback
	l.fonts["Go-Bold"] = mustParse(gobold.TTF)
	l.fonts["Go-Italic"] = mustParse(goitalic.TTF)
	l.fonts["Go-Mono"] = mustParse(gomono.TTF)
	return l
}

func mustParse(data []byte) *opentype.Font {
	f, err := opentype.Parse(data)
	if err != nil {
		// The embedded Go fonts are compile-time constants.
		panic(fmt.Sprintf("fonts: parsing embedded font: %v", err))
	}
	return f
}

// Register parses TTF/OTF data and stores it under name, replacing any
// existing entry.
func (l *Library) Register(name string, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parsing font %s: %w", name, err)
	}
	l.mu.Lock()
	l.fonts[name] = f
	l.mu.Unlock()
	return nil
}

// RegisterFile loads a font file and registers it under its base filename
// (without extension).
func (l *Library) RegisterFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading font %s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return l.Register(name, data)
}

// RegisterDir registers every .ttf/.otf file in dir. Files that fail to
// parse are skipped with a warning.
func (l *Library) RegisterDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading font dir %s: %w", dir, err)
	}
	log := logging.Component(logging.ComponentFonts)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".ttf" && ext != ".otf" {
			continue
		}
		if err := l.RegisterFile(filepath.Join(dir, e.Name())); err != nil {
			log.Warn("skipping font file", "path", e.Name(), "error", err)
		}
	}
	return nil
}

// Resolve returns a face for the named font at the given pixel size. Unknown
// names resolve to the fallback font; sizes below 1 are clamped.
func (l *Library) Resolve(name string, size int) font.Face {
	if size < 1 {
		size = 1
	}
	l.mu.RLock()
	f, ok := l.fonts[name]
	l.mu.RUnlock()
	if !ok {
		logging.Component(logging.ComponentFonts).Debug("font not registered, using fallback", "font", name)
		f = l.fallback
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72, // size is in pixels; 1pt == 1px at 72 dpi
		Hinting: font.HintingFull,
	})
	if err != nil {
		// NewFace only fails on invalid options; fall back to the default
		// face so the contract holds.
		face, _ = opentype.NewFace(l.fallback, &opentype.FaceOptions{Size: 14, DPI: 72})
	}
	return face
}

// Names returns the registered font names, for diagnostics.
func (l *Library) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.fonts))
	for name := range l.fonts {
		names = append(names, name)
	}
	return names
}
