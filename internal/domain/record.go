package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// TypeTagKey names the concrete kind in a serialized mapping.
	TypeTagKey = "__class__"

	KeyID        = "id"
	KeyCreatedAt = "created_at"
	KeyUpdatedAt = "updated_at"
)

// ErrReservedKey is returned by Set for keys owned by the record itself.
var ErrReservedKey = errors.New("reserved attribute")

// excludedKeys never appear in ToMapping, even though the live record keeps them.
var excludedKeys = map[string]struct{}{
	"name":      {},
	"my_number": {},
}

// Record represents an identity + timestamp entity with an open attribute bag.
// A Record is owned by a single caller; it does no locking.
type Record struct {
	id        string
	kind      string
	createdAt time.Time
	updatedAt time.Time
	attrs     attributes
}

// NewRecord creates a fresh record of the given kind with a random v4 id
func NewRecord(kind string) *Record {
	t := now()
	return &Record{
		id:        uuid.NewString(),
		kind:      kind,
		createdAt: t,
		updatedAt: t,
	}
}

// FromMapping rehydrates a record from a previously serialized mapping. The
// type tag is skipped, created_at/updated_at are parsed with TimestampFormat and
// every other key is copied verbatim. On a timestamp error no record is
// returned.
func FromMapping(kind string, m map[string]any) (*Record, error) {
	r := &Record{kind: kind}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := m[key]
		switch key {
		case TypeTagKey:
			continue
		case KeyCreatedAt:
			t, err := ParseTimestamp(key, value)
			if err != nil {
				return nil, err
			}
			r.createdAt = t
		case KeyUpdatedAt:
			t, err := ParseTimestamp(key, value)
			if err != nil {
				return nil, err
			}
			r.updatedAt = t
		case KeyID:
			if s, ok := value.(string); ok {
				r.id = s
			} else {
				r.id = fmt.Sprint(value)
			}
		default:
			r.attrs.set(key, value)
		}
	}

	return r, nil
}

func (r *Record) ID() string {
	return r.id
}

// Kind returns the concrete kind name used as the type tag.
func (r *Record) Kind() string {
	return r.kind
}

func (r *Record) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Record) UpdatedAt() time.Time {
	return r.updatedAt
}

// Base returns the record itself, so *Record satisfies Model.
func (r *Record) Base() *Record {
	return r
}

// Touch refreshes updated_at. It does not persist anything.
func (r *Record) Touch() {
	t := now()
	if t.Before(r.updatedAt) {
		// wall clock stepped back; keep updated_at monotonic
		t = r.updatedAt
	}
	r.updatedAt = t
}

// Get returns a dynamic attribute, or one of id/created_at/updated_at.
func (r *Record) Get(key string) (any, bool) {
	switch key {
	case KeyID:
		return r.id, r.id != ""
	case KeyCreatedAt:
		return r.createdAt, !r.createdAt.IsZero()
	case KeyUpdatedAt:
		return r.updatedAt, !r.updatedAt.IsZero()
	}
	return r.attrs.get(key)
}

// Has reports whether key is currently set on the record.
func (r *Record) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Set attaches or replaces a dynamic attribute.
func (r *Record) Set(key string, value any) error {
	if isReserved(key) {
		return fmt.Errorf("%w: %s", ErrReservedKey, key)
	}
	r.attrs.set(key, value)
	return nil
}

// Delete removes a dynamic attribute. Reserved keys are left untouched.
func (r *Record) Delete(key string) {
	if isReserved(key) {
		return
	}
	r.attrs.delete(key)
}

// Keys lists the attributes set on the record: id, created_at and updated_at
// first, then dynamic attributes in insertion order.
func (r *Record) Keys() []string {
	keys := make([]string, 0, r.attrs.len()+3)
	for _, k := range []string{KeyID, KeyCreatedAt, KeyUpdatedAt} {
		if r.Has(k) {
			keys = append(keys, k)
		}
	}
	return append(keys, r.attrs.keys...)
}

// ToMapping returns a new serializable mapping of the record. Legacy keys
// name and my_number are left out, the type tag is added and timestamps are
// rendered with TimestampFormat.
func (r *Record) ToMapping() map[string]any {
	result := make(map[string]any, r.attrs.len()+4)
	for _, key := range r.Keys() {
		if _, excluded := excludedKeys[key]; excluded {
			continue
		}
		value, _ := r.Get(key)
		if t, ok := value.(time.Time); ok {
			value = FormatTimestamp(t)
		}
		result[key] = value
	}
	result[TypeTagKey] = r.kind
	return result
}

// String renders "[<Kind>] (<id>) {...}" for logs and debugging.
func (r *Record) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, key := range r.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		value, _ := r.Get(key)
		fmt.Fprintf(&b, "%q: %s", key, displayValue(value))
	}
	b.WriteString("}")
	return fmt.Sprintf("[%s] (%s) %s", r.kind, r.id, b.String())
}

func displayValue(value any) string {
	switch v := value.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case time.Time:
		return fmt.Sprintf("time(%s)", FormatTimestamp(v))
	default:
		return fmt.Sprintf("%v", v)
	}
}

func isReserved(key string) bool {
	switch key {
	case KeyID, KeyCreatedAt, KeyUpdatedAt, TypeTagKey:
		return true
	}
	return false
}
