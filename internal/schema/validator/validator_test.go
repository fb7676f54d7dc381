package validator

import (
	"strings"
	"testing"

	"github.com/rpattn/hbnb/internal/domain"
)

func TestValidateFields_RegisteredSchemas(t *testing.T) {
	for _, kind := range domain.Kinds() {
		schema, err := domain.SchemaFor(kind)
		if err != nil {
			t.Fatalf("expected schema for %s, got error: %v", kind, err)
		}
		if err := ValidateFields(schema.Fields); err != nil {
			t.Fatalf("expected %s schema to be valid, got error: %v", kind, err)
		}
	}
}

func TestValidateFields_Rejects(t *testing.T) {
	cases := map[string]struct {
		fields []domain.FieldDefinition
		want   string
	}{
		"empty name": {
			fields: []domain.FieldDefinition{{Name: " ", Type: domain.FieldTypeString}},
			want:   "cannot be empty",
		},
		"reserved name": {
			fields: []domain.FieldDefinition{{Name: "created_at", Type: domain.FieldTypeString}},
			want:   "reserved name",
		},
		"duplicate": {
			fields: []domain.FieldDefinition{
				{Name: "city_id", Type: domain.FieldTypeString},
				{Name: "city_id", Type: domain.FieldTypeString},
			},
			want: "declared twice",
		},
		"unknown type": {
			fields: []domain.FieldDefinition{{Name: "rating", Type: "decimal"}},
			want:   "unsupported type",
		},
		"bad default": {
			fields: []domain.FieldDefinition{{Name: "max_guest", Type: domain.FieldTypeInteger, Default: "many"}},
			want:   "invalid default",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := ValidateFields(tc.fields)
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error to mention %q, got %v", tc.want, err)
			}
		})
	}
}
