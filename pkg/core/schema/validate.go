// Copyright Product Decoder Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"
	"strings"
)

// Kind is the JSON kind a field is expected to hold.
type Kind int

const (
	String Kind = iota
	Number
	Bool
	Object
	Array
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Number:
		return "number"
	case Bool:
		return "bool"
	case Object:
		return "object"
	case Array:
		return "array"
	default:
		return "unknown"
	}
}

// Field describes one property of an object schema.
//
// Optional fields that are absent (or JSON null) produce no violation;
// defaulting them is the caller's job. Coercions are opt-in per field:
// the only one supported is CoerceString, which accepts a JSON number
// where a string is expected.
type Field struct {
	Name     string
	Required bool
	Kind     Kind
	Const    string  // for String fields: exact value required when non-empty
	Elem     *Schema // for Object fields: nested schema
	Items    *Field  // for Array fields: element spec (Name ignored)
	Coerce   bool    // CoerceString: number satisfies a String field
}

// Schema is a declarative shape description for decoded JSON values.
// Upstream responses are checked against a Schema before any field is
// mapped, so adapters never read unvalidated data.
type Schema struct {
	Fields []Field
}

// Violation records a single failed expectation at a JSON path.
type Violation struct {
	Path     string
	Expected string
	Actual   string
}

// ValidationError carries every violation found in one pass, so callers
// can see all contract drift at once instead of one opaque message.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: expected %s, got %s", v.Path, v.Expected, v.Actual))
	}
	return "schema validation failed: " + strings.Join(parts, "; ")
}

// Assert validates a decoded JSON value against the schema. The whole
// value is walked and every violation is collected; a nil return means
// the value conforms.
func (s *Schema) Assert(value any) error {
	var violations []Violation
	checkObject(s, value, "$", &violations)
	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

func checkObject(s *Schema, value any, path string, out *[]Violation) {
	obj, ok := value.(map[string]any)
	if !ok {
		*out = append(*out, Violation{Path: path, Expected: "object", Actual: kindOf(value)})
		return
	}
	for _, f := range s.Fields {
		fieldPath := path + "." + f.Name
		v, present := obj[f.Name]
		if !present || v == nil {
			if f.Required {
				*out = append(*out, Violation{Path: fieldPath, Expected: f.Kind.String(), Actual: "absent"})
			}
			continue
		}
		checkField(&f, v, fieldPath, out)
	}
}

func checkField(f *Field, v any, path string, out *[]Violation) {
	switch f.Kind {
	case String:
		s, ok := v.(string)
		if !ok {
			if _, isNum := v.(float64); isNum && f.Coerce {
				return
			}
			*out = append(*out, Violation{Path: path, Expected: "string", Actual: kindOf(v)})
			return
		}
		if f.Const != "" && s != f.Const {
			*out = append(*out, Violation{Path: path, Expected: fmt.Sprintf("%q", f.Const), Actual: fmt.Sprintf("%q", s)})
		}
	case Number:
		if _, ok := v.(float64); !ok {
			*out = append(*out, Violation{Path: path, Expected: "number", Actual: kindOf(v)})
		}
	case Bool:
		if _, ok := v.(bool); !ok {
			*out = append(*out, Violation{Path: path, Expected: "bool", Actual: kindOf(v)})
		}
	case Object:
		checkObject(f.Elem, v, path, out)
	case Array:
		arr, ok := v.([]any)
		if !ok {
			*out = append(*out, Violation{Path: path, Expected: "array", Actual: kindOf(v)})
			return
		}
		if f.Items == nil {
			return
		}
		for i, el := range arr {
			checkField(f.Items, el, fmt.Sprintf("%s[%d]", path, i), out)
		}
	}
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "bool"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
