package label

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Context maps field names to already-typed scalar values.
type Context map[string]any

// MissingFieldError reports a required field with neither a value nor a
// default. It is returned before any canvas work begins.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// ResolveContext validates ctx against the template's field schema and
// returns a new context with coerced values and defaults applied. Keys not
// declared in the schema pass through untouched. Datetime fields are filled
// from the clock using the field's layout.
func (d *Definition) ResolveContext(ctx Context) (Context, error) {
	return d.resolveContext(ctx, time.Now)
}

func (d *Definition) resolveContext(ctx Context, now func() time.Time) (Context, error) {
	declared := make(map[string]bool, len(d.Fields))
	for i := range d.Fields {
		declared[d.Fields[i].Name] = true
	}
	resolved := make(Context, len(ctx)+len(d.Fields))
	for k, v := range ctx {
		if !declared[k] {
			resolved[k] = v
		}
	}
	for i := range d.Fields {
		f := &d.Fields[i]
		if f.Type == FieldDatetime {
			layout := f.Layout
			if layout == "" {
				layout = DefaultDatetimeLayout
			}
			resolved[f.Name] = now().Format(layout)
			continue
		}
		value, ok := ctx[f.Name]
		if !ok || value == nil {
			if f.Default != nil {
				resolved[f.Name] = f.Default
				continue
			}
			if f.Required {
				return nil, &MissingFieldError{Field: f.Name}
			}
			continue
		}
		coerced, err := coerce(value, f.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		resolved[f.Name] = coerced
	}
	return resolved, nil
}

func coerce(v any, t FieldType) (any, error) {
	switch t {
	case FieldInteger:
		switch n := v.(type) {
		case int:
			return n, nil
		case int64:
			return int(n), nil
		case float64:
			return int(n), nil
		case string:
			i, err := strconv.Atoi(strings.TrimSpace(n))
			if err != nil {
				return nil, fmt.Errorf("not an integer: %q", n)
			}
			return i, nil
		}
		return nil, fmt.Errorf("not an integer: %v", v)
	case FieldFloat:
		switch n := v.(type) {
		case float64:
			return n, nil
		case float32:
			return float64(n), nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
			if err != nil {
				return nil, fmt.Errorf("not a number: %q", n)
			}
			return f, nil
		}
		return nil, fmt.Errorf("not a number: %v", v)
	case FieldBoolean:
		switch b := v.(type) {
		case bool:
			return b, nil
		case string:
			// "on" is what HTML checkboxes submit when checked.
			switch strings.ToLower(b) {
			case "true", "1", "yes", "on":
				return true, nil
			default:
				return false, nil
			}
		}
		return v != nil, nil
	default:
		return Stringify(v), nil
	}
}

// Stringify renders a scalar context value the way it should appear on the
// label.
func Stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		return strconv.FormatBool(s)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32)
	default:
		return fmt.Sprint(v)
	}
}
