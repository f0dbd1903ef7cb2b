package label

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Element is the closed variant set of things that can be painted on a
// label: text, QR code, DataMatrix, and Code 128. Elements render in
// template-declared order; later elements may overlap earlier ink.
type Element interface {
	// Kind returns the wire discriminator ("text", "qrcode", ...).
	Kind() string
}

// TextElement draws a line or block of text inside a bounding box. Exactly
// one of Field and StaticText supplies the content.
type TextElement struct {
	Field      string `json:"field,omitempty" yaml:"field,omitempty"`
	StaticText string `json:"static_text,omitempty" yaml:"static_text,omitempty"`
	Bounds     Box    `json:"bounds" yaml:"bounds"`
	Font       string `json:"font,omitempty" yaml:"font,omitempty"`
	FontSize   int    `json:"font_size,omitempty" yaml:"font_size,omitempty" validate:"gt=0"`
	Align      HAlign `json:"alignment,omitempty" yaml:"alignment,omitempty" validate:"omitempty,oneof=left center right"`
	VAlign     VAlign `json:"vertical_align,omitempty" yaml:"vertical_align,omitempty" validate:"omitempty,oneof=top middle bottom"`
	Wrap       bool   `json:"wrap,omitempty" yaml:"wrap,omitempty"`
	AutoScale  bool   `json:"auto_scale,omitempty" yaml:"auto_scale,omitempty"`
	// CircleAware constrains wrapping and alignment to the chord of the
	// label's circle at each line's height.
	CircleAware bool `json:"circle_aware,omitempty" yaml:"circle_aware,omitempty"`
	// LineSpacing multiplies the line height (1.0 = normal).
	LineSpacing float64 `json:"line_spacing,omitempty" yaml:"line_spacing,omitempty" validate:"gt=0"`
}

func (*TextElement) Kind() string { return "text" }

// QRCodeElement draws a QR code centered at (XMm, YMm). The encoded payload
// is Prefix + field value + Suffix.
type QRCodeElement struct {
	Field           string  `json:"field" yaml:"field" validate:"required"`
	XMm             float64 `json:"x_mm" yaml:"x_mm"`
	YMm             float64 `json:"y_mm" yaml:"y_mm"`
	SizeMm          float64 `json:"size_mm" yaml:"size_mm" validate:"gt=0"`
	ErrorCorrection ECLevel `json:"error_correction,omitempty" yaml:"error_correction,omitempty"`
	Prefix          string  `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Suffix          string  `json:"suffix,omitempty" yaml:"suffix,omitempty"`
}

func (*QRCodeElement) Kind() string { return "qrcode" }

// DataMatrixElement draws a DataMatrix symbol centered at (XMm, YMm).
type DataMatrixElement struct {
	Field  string  `json:"field" yaml:"field" validate:"required"`
	XMm    float64 `json:"x_mm" yaml:"x_mm"`
	YMm    float64 `json:"y_mm" yaml:"y_mm"`
	SizeMm float64 `json:"size_mm" yaml:"size_mm" validate:"gt=0"`
	Prefix string  `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Suffix string  `json:"suffix,omitempty" yaml:"suffix,omitempty"`
}

func (*DataMatrixElement) Kind() string { return "datamatrix" }

// Code128Element draws a Code 128 barcode centered at (XMm, YMm). The width
// follows from the payload and the module width; ModuleWidthMm is the width
// of the narrowest bar and directly encodes data under the symbology.
type Code128Element struct {
	Field         string  `json:"field" yaml:"field" validate:"required"`
	XMm           float64 `json:"x_mm" yaml:"x_mm"`
	YMm           float64 `json:"y_mm" yaml:"y_mm"`
	HeightMm      float64 `json:"height_mm" yaml:"height_mm" validate:"gt=0"`
	ModuleWidthMm float64 `json:"module_width_mm,omitempty" yaml:"module_width_mm,omitempty" validate:"gt=0"`
	Prefix        string  `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Suffix        string  `json:"suffix,omitempty" yaml:"suffix,omitempty"`
}

func (*Code128Element) Kind() string { return "code128" }

// DefaultFont is used by text elements that do not name one. It resolves to
// the provider's embedded fallback.
const DefaultFont = "Go-Regular"

func newTextElement() *TextElement {
	return &TextElement{
		Font:        DefaultFont,
		FontSize:    14,
		Align:       AlignLeft,
		VAlign:      VAlignTop,
		LineSpacing: 1.0,
	}
}

func newQRCodeElement() *QRCodeElement {
	return &QRCodeElement{ErrorCorrection: ECMedium}
}

func newCode128Element() *Code128Element {
	return &Code128Element{ModuleWidthMm: 0.3}
}

// emptyElement builds the variant for a type discriminator with its defaults
// applied, ready to be overwritten by the decoder.
func emptyElement(kind string) (Element, error) {
	switch kind {
	case "text":
		return newTextElement(), nil
	case "qrcode":
		return newQRCodeElement(), nil
	case "datamatrix":
		return &DataMatrixElement{}, nil
	case "code128":
		return newCode128Element(), nil
	default:
		return nil, fmt.Errorf("unknown element type %q", kind)
	}
}

func decodeElementYAML(node *yaml.Node) (Element, error) {
	var head struct {
		Type string `yaml:"type"`
	}
	if err := node.Decode(&head); err != nil {
		return nil, err
	}
	el, err := emptyElement(head.Type)
	if err != nil {
		return nil, err
	}
	if err := node.Decode(el); err != nil {
		return nil, fmt.Errorf("decoding %s element: %w", head.Type, err)
	}
	return el, nil
}

func decodeElementJSON(raw json.RawMessage) (Element, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}
	el, err := emptyElement(head.Type)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, el); err != nil {
		return nil, fmt.Errorf("decoding %s element: %w", head.Type, err)
	}
	return el, nil
}
