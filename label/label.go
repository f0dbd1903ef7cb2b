// Package label defines the declarative template model a render starts from:
// label geometry, the ordered element list, and the field schema the
// field-value context is resolved against. Definitions are immutable once
// loaded and safe to share across concurrent renders.
package label

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Shape selects the physical label stock.
type Shape string

const (
	ShapeRectangle Shape = "rectangle"
	ShapeCircle    Shape = "circle"
)

// HAlign is horizontal text alignment within an element box.
type HAlign string

const (
	AlignLeft   HAlign = "left"
	AlignCenter HAlign = "center"
	AlignRight  HAlign = "right"
)

// VAlign is vertical text alignment within an element box.
type VAlign string

const (
	VAlignTop    VAlign = "top"
	VAlignMiddle VAlign = "middle"
	VAlignBottom VAlign = "bottom"
)

// ECLevel is a QR error-correction tier.
type ECLevel string

const (
	ECLow      ECLevel = "L"
	ECMedium   ECLevel = "M"
	ECQuartile ECLevel = "Q"
	ECHigh     ECLevel = "H"
)

// FieldType enumerates the scalar kinds a template field can hold.
type FieldType string

const (
	FieldString   FieldType = "string"
	FieldInteger  FieldType = "integer"
	FieldFloat    FieldType = "float"
	FieldBoolean  FieldType = "boolean"
	FieldDatetime FieldType = "datetime"
	FieldSelect   FieldType = "select"
)

// DefaultDPI is the resolution assumed when a template does not set one.
const DefaultDPI = 203

// DefaultDatetimeLayout formats auto-filled datetime fields.
const DefaultDatetimeLayout = "2006-01-02 15:04"

// Dimensions is the physical label size. Rectangles use width/height,
// circles use diameter.
type Dimensions struct {
	WidthMm    float64 `json:"width_mm,omitempty" yaml:"width_mm,omitempty" validate:"gte=0"`
	HeightMm   float64 `json:"height_mm,omitempty" yaml:"height_mm,omitempty" validate:"gte=0"`
	DiameterMm float64 `json:"diameter_mm,omitempty" yaml:"diameter_mm,omitempty" validate:"gte=0"`
}

// Box positions a text element, in millimeters from the label origin.
type Box struct {
	XMm      float64 `json:"x_mm" yaml:"x_mm"`
	YMm      float64 `json:"y_mm" yaml:"y_mm"`
	WidthMm  float64 `json:"width_mm" yaml:"width_mm" validate:"gt=0"`
	HeightMm float64 `json:"height_mm" yaml:"height_mm" validate:"gt=0"`
}

// Field declares one entry of the template's field schema.
type Field struct {
	Name     string    `json:"name" yaml:"name" validate:"required"`
	Type     FieldType `json:"type,omitempty" yaml:"type,omitempty" validate:"omitempty,oneof=string integer float boolean datetime select"`
	Required bool      `json:"required,omitempty" yaml:"required,omitempty"`
	Default  any       `json:"default,omitempty" yaml:"default,omitempty"`
	// Layout is the Go time layout for datetime fields; DefaultDatetimeLayout
	// when empty.
	Layout  string   `json:"layout,omitempty" yaml:"layout,omitempty"`
	Options []string `json:"options,omitempty" yaml:"options,omitempty"`
}

// Definition is a complete label template. Shared read-only across renders.
type Definition struct {
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Shape       Shape      `json:"shape,omitempty" yaml:"shape,omitempty" validate:"omitempty,oneof=rectangle circle"`
	Dimensions  Dimensions `json:"dimensions" yaml:"dimensions"`
	DPI         int        `json:"dpi,omitempty" yaml:"dpi,omitempty" validate:"gt=0"`
	Elements    []Element  `json:"elements" yaml:"elements" validate:"dive"`
	Fields      []Field    `json:"fields,omitempty" yaml:"fields,omitempty" validate:"dive"`

	// Darkness, when set, emits a print-darkness command (ZPL ~SD, 0-30).
	Darkness *int `json:"darkness,omitempty" yaml:"darkness,omitempty" validate:"omitempty,gte=0,lte=30"`
	// Offsets shift the label home position on the media (ZPL ^LH).
	OffsetXMm float64 `json:"offset_x_mm,omitempty" yaml:"offset_x_mm,omitempty"`
	OffsetYMm float64 `json:"offset_y_mm,omitempty" yaml:"offset_y_mm,omitempty"`

	// FontPaths lists extra font files or directories the host should
	// register with its font provider before rendering. The render core
	// itself never reads them.
	FontPaths []string `json:"font_paths,omitempty" yaml:"font_paths,omitempty"`
}

var validate = validator.New()

// Validate checks the structural invariants of the definition. It does not
// touch the field-value context; that happens in ResolveContext.
func (d *Definition) Validate() error {
	if d.DPI <= 0 {
		return fmt.Errorf("invalid template %q: dpi must be positive", d.Name)
	}
	for i, el := range d.Elements {
		if el == nil {
			return fmt.Errorf("invalid template %q: element %d is empty", d.Name, i)
		}
	}
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("invalid template %q: %w", d.Name, err)
	}
	switch d.Shape {
	case ShapeCircle:
		if d.Dimensions.DiameterMm <= 0 {
			return fmt.Errorf("invalid template %q: circular labels need diameter_mm", d.Name)
		}
	case ShapeRectangle, "":
		if d.Dimensions.WidthMm <= 0 || d.Dimensions.HeightMm <= 0 {
			return fmt.Errorf("invalid template %q: rectangular labels need width_mm and height_mm", d.Name)
		}
	}
	for i, el := range d.Elements {
		if t, ok := el.(*TextElement); ok {
			if t.Field != "" && t.StaticText != "" {
				return fmt.Errorf("invalid template %q: text element %d sets both field and static_text", d.Name, i)
			}
		}
	}
	return nil
}

// FieldByName returns the schema entry for name, or nil.
func (d *Definition) FieldByName(name string) *Field {
	for i := range d.Fields {
		if d.Fields[i].Name == name {
			return &d.Fields[i]
		}
	}
	return nil
}
