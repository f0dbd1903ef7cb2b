package label

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// definitionDoc mirrors Definition with raw element nodes so the type
// discriminator can pick the concrete variant.
type definitionDoc struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	Shape       Shape       `json:"shape" yaml:"shape"`
	Dimensions  Dimensions  `json:"dimensions" yaml:"dimensions"`
	DPI         int         `json:"dpi" yaml:"dpi"`
	Fields      []Field     `json:"fields" yaml:"fields"`
	Darkness    *int        `json:"darkness" yaml:"darkness"`
	OffsetXMm   float64     `json:"offset_x_mm" yaml:"offset_x_mm"`
	OffsetYMm   float64     `json:"offset_y_mm" yaml:"offset_y_mm"`
	FontPaths   []string    `json:"font_paths" yaml:"font_paths"`
	Elements    []yaml.Node `json:"-" yaml:"elements"`
}

func (doc *definitionDoc) apply(d *Definition) {
	d.Name = doc.Name
	d.Description = doc.Description
	d.Shape = doc.Shape
	d.Dimensions = doc.Dimensions
	d.DPI = doc.DPI
	d.Fields = doc.Fields
	d.Darkness = doc.Darkness
	d.OffsetXMm = doc.OffsetXMm
	d.OffsetYMm = doc.OffsetYMm
	d.FontPaths = doc.FontPaths
	if d.Shape == "" {
		d.Shape = ShapeRectangle
	}
	if d.DPI == 0 {
		d.DPI = DefaultDPI
	}
}

// UnmarshalYAML decodes a definition, dispatching each element on its `type`
// discriminator and filling in defaults.
func (d *Definition) UnmarshalYAML(node *yaml.Node) error {
	var doc definitionDoc
	if err := node.Decode(&doc); err != nil {
		return err
	}
	doc.apply(d)
	d.Elements = make([]Element, 0, len(doc.Elements))
	for i := range doc.Elements {
		el, err := decodeElementYAML(&doc.Elements[i])
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		d.Elements = append(d.Elements, el)
	}
	return nil
}

// UnmarshalJSON decodes a definition from JSON the same way.
func (d *Definition) UnmarshalJSON(data []byte) error {
	type jsonDoc struct {
		definitionDoc
		Elements []json.RawMessage `json:"elements"`
	}
	var doc jsonDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	doc.definitionDoc.apply(d)
	d.Elements = make([]Element, 0, len(doc.Elements))
	for i, raw := range doc.Elements {
		el, err := decodeElementJSON(raw)
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		d.Elements = append(d.Elements, el)
	}
	return nil
}

// Load parses a template definition from YAML or JSON and validates it.
func Load(data []byte) (*Definition, error) {
	var d Definition
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("parsing template: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("parsing template: %w", err)
		}
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// LoadFile reads and parses a template definition file. `.json` files decode
// as JSON, anything else as YAML.
func LoadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		var d Definition
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", path, err)
		}
		if err := d.Validate(); err != nil {
			return nil, err
		}
		return &d, nil
	}
	return Load(data)
}
