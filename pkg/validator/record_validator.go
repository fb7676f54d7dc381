package validator

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/rpattn/hbnb/internal/domain"
	schemavalidator "github.com/rpattn/hbnb/internal/schema/validator"
)

// RecordValidator checks records against the schema of their kind
type RecordValidator struct{}

// NewRecordValidator creates a new record validator
func NewRecordValidator() *RecordValidator {
	return &RecordValidator{}
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// ValidationResult represents the result of validation
type ValidationResult struct {
	IsValid  bool              `json:"is_valid"`
	Errors   []ValidationError `json:"errors"`
	Warnings []ValidationError `json:"warnings"`
}

func newResult() ValidationResult {
	return ValidationResult{
		IsValid:  true,
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}
}

func (r *ValidationResult) fail(field, message string, value any) {
	r.IsValid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message, Value: value})
}

func (r *ValidationResult) warn(field, message string, value any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Message: message, Value: value})
}

// ValidateRecord reports schema fields that do not hold a value of their
// declared type, and missing identity or timestamps. Attributes outside the
// schema only produce warnings: kinds accept dynamic attributes.
func (rv *RecordValidator) ValidateRecord(m domain.Model) ValidationResult {
	result := newResult()
	record := m.Base()

	schema, err := domain.SchemaFor(m.Kind())
	if err != nil {
		result.fail(domain.TypeTagKey, err.Error(), m.Kind())
		return result
	}
	if err := schemavalidator.ValidateFields(schema.Fields); err != nil {
		result.fail(domain.TypeTagKey, fmt.Sprintf("schema of %s is invalid: %v", schema.Kind, err), m.Kind())
		return result
	}

	rv.validateIdentity(record, &result)

	for _, key := range record.Keys() {
		switch key {
		case domain.KeyID, domain.KeyCreatedAt, domain.KeyUpdatedAt:
			continue
		}
		value, _ := record.Get(key)

		if key == "name" || key == "my_number" {
			result.warn(key, fmt.Sprintf("field '%s' is kept on the record but never serialized", key), value)
		}

		field, declared := schema.Field(key)
		if !declared {
			if len(schema.Fields) > 0 {
				result.warn(key, fmt.Sprintf("property '%s' is not defined in the %s schema", key, schema.Kind), value)
			}
			continue
		}
		if _, err := field.Coerce(value); err != nil {
			result.fail(key, err.Error(), value)
		}
	}

	return result
}

// Normalize converts every declared field to its schema type in place, so
// values read from sheets ("3") serialize as their typed form (3). Fields that
// cannot be converted are reported and left as they are.
func (rv *RecordValidator) Normalize(m domain.Model) ValidationResult {
	result := newResult()
	record := m.Base()

	schema, err := domain.SchemaFor(m.Kind())
	if err != nil {
		result.fail(domain.TypeTagKey, err.Error(), m.Kind())
		return result
	}

	for _, field := range schema.Fields {
		value, ok := record.Get(field.Name)
		if !ok {
			continue
		}
		coerced, err := field.Coerce(value)
		if err != nil {
			result.fail(field.Name, err.Error(), value)
			continue
		}
		if err := record.Set(field.Name, coerced); err != nil {
			result.fail(field.Name, err.Error(), value)
		}
	}

	return result
}

func (rv *RecordValidator) validateIdentity(record *domain.Record, result *ValidationResult) {
	if record.ID() == "" {
		result.fail(domain.KeyID, "record has no id", nil)
	} else if _, err := uuid.Parse(record.ID()); err != nil {
		result.warn(domain.KeyID, fmt.Sprintf("id '%s' is not a UUID: %v", record.ID(), err), record.ID())
	}

	created, updated := record.CreatedAt(), record.UpdatedAt()
	if created.IsZero() {
		result.fail(domain.KeyCreatedAt, "record has no created_at", nil)
	}
	if updated.IsZero() {
		result.fail(domain.KeyUpdatedAt, "record has no updated_at", nil)
	}
	if !created.IsZero() && !updated.IsZero() && updated.Before(created) {
		result.warn(domain.KeyUpdatedAt, "updated_at is earlier than created_at", domain.FormatTimestamp(updated))
	}
}
