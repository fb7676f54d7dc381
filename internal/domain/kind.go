package domain

import (
	"errors"
	"fmt"
	"sort"
)

// KindBase is the kind of a plain record with no schema of its own.
const KindBase = "BaseModel"

var (
	ErrUnknownKind    = errors.New("unknown kind")
	ErrMissingTypeTag = errors.New("mapping has no " + TypeTagKey + " string")
)

// Model is implemented by *Record and by every concrete kind embedding it.
type Model interface {
	ID() string
	Kind() string
	Touch()
	ToMapping() map[string]any
	String() string
	Base() *Record
}

type kindEntry struct {
	schema    Schema
	fresh     func() Model
	rehydrate func(map[string]any) (Model, error)
}

var kinds = map[string]kindEntry{
	KindBase: {
		schema: Schema{Kind: KindBase},
		fresh:  func() Model { return NewRecord(KindBase) },
		rehydrate: func(m map[string]any) (Model, error) {
			r, err := FromMapping(KindBase, m)
			if err != nil {
				return nil, err
			}
			return r, nil
		},
	},
	KindPlace: {
		schema: PlaceSchema,
		fresh:  func() Model { return NewPlace() },
		rehydrate: func(m map[string]any) (Model, error) {
			p, err := PlaceFromMapping(m)
			if err != nil {
				return nil, err
			}
			return p, nil
		},
	},
}

// Kinds returns the registered kind names, sorted.
func Kinds() []string {
	names := make([]string, 0, len(kinds))
	for name := range kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SchemaFor returns the schema registered for kind.
func SchemaFor(kind string) (Schema, error) {
	entry, ok := kinds[kind]
	if !ok {
		return Schema{}, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return entry.schema, nil
}

// New creates a fresh model of the given kind.
func New(kind string) (Model, error) {
	entry, ok := kinds[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return entry.fresh(), nil
}

// Rehydrate rebuilds a model from a serialized mapping, picking the concrete
// kind from the type tag.
func Rehydrate(m map[string]any) (Model, error) {
	kind, ok := m[TypeTagKey].(string)
	if !ok || kind == "" {
		return nil, ErrMissingTypeTag
	}
	entry, ok := kinds[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return entry.rehydrate(m)
}

// ObjectKey returns "<Kind>.<id>", the key of a model in an object document.
func ObjectKey(m Model) string {
	return m.Kind() + "." + m.ID()
}
