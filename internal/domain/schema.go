package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// FieldType represents the type of a field in a kind schema
type FieldType string

const (
	FieldTypeString     FieldType = "string"
	FieldTypeInteger    FieldType = "integer"
	FieldTypeFloat      FieldType = "float"
	FieldTypeStringList FieldType = "string_list"
)

// FieldDefinition represents a statically declared field of a kind. Default is
// what the getter returns while the field is unset on the record.
type FieldDefinition struct {
	Name        string    `json:"name"`
	Type        FieldType `json:"type"`
	Default     any       `json:"default,omitempty"`
	Description string    `json:"description,omitempty"`
}

// Schema lists the typed fields a kind adds on top of id and timestamps.
type Schema struct {
	Kind   string            `json:"kind"`
	Fields []FieldDefinition `json:"fields"`
}

// Field looks up a field definition by name.
func (s Schema) Field(name string) (FieldDefinition, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDefinition{}, false
}

// Coerce converts a stored value to the Go type of the field: string, int,
// float64 or []string.
func (f FieldDefinition) Coerce(value any) (any, error) {
	var (
		out any
		err error
	)
	switch f.Type {
	case FieldTypeString:
		out, err = cast.ToStringE(value)
	case FieldTypeInteger:
		if text, ok := value.(string); ok {
			// cast parses strings in base 0, which reads "010" as octal
			out, err = strconv.Atoi(strings.TrimSpace(text))
		} else {
			out, err = cast.ToIntE(value)
		}
	case FieldTypeFloat:
		out, err = cast.ToFloat64E(value)
	case FieldTypeStringList:
		out, err = cast.ToStringSliceE(value)
	default:
		return nil, fmt.Errorf("field %s has unsupported type %s", f.Name, f.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("field %s must be %s: %w", f.Name, f.Type, err)
	}
	return out, nil
}
