package validator

import (
	"fmt"
	"strings"

	"github.com/rpattn/hbnb/internal/domain"
)

var supportedTypes = map[domain.FieldType]struct{}{
	domain.FieldTypeString:     {},
	domain.FieldTypeInteger:    {},
	domain.FieldTypeFloat:      {},
	domain.FieldTypeStringList: {},
}

var reservedNames = map[string]struct{}{
	domain.KeyID:        {},
	domain.KeyCreatedAt: {},
	domain.KeyUpdatedAt: {},
	domain.TypeTagKey:   {},
}

// ValidateFields ensures schema field definitions are usable: names are set,
// unique and not reserved, types are known and defaults coerce to their type.
func ValidateFields(fields []domain.FieldDefinition) error {
	seen := make(map[string]struct{}, len(fields))

	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return fmt.Errorf("field name cannot be empty")
		}
		if name != field.Name {
			return fmt.Errorf("field %q cannot have surrounding whitespace", field.Name)
		}
		if _, ok := reservedNames[name]; ok {
			return fmt.Errorf("field %s uses a reserved name", name)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("field %s is declared twice", name)
		}
		seen[name] = struct{}{}

		if _, ok := supportedTypes[field.Type]; !ok {
			return fmt.Errorf("field %s has unsupported type %s", name, field.Type)
		}
		if field.Default != nil {
			if _, err := field.Coerce(field.Default); err != nil {
				return fmt.Errorf("invalid default: %w", err)
			}
		}
	}

	return nil
}
