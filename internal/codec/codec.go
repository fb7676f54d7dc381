package codec

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/rpattn/hbnb/internal/domain"
)

// Format is a document encoding for serialized mappings.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrKeyMismatch       = errors.New("object key does not match its mapping")
)

// ParseFormat resolves a user supplied format name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", errors.Wrapf(ErrUnsupportedFormat, "%q", name)
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", errors.Wrapf(ErrUnsupportedFormat, "no extension on %q", path)
	}
	return ParseFormat(ext)
}

// Option configures a Codec
type Option func(*Codec)

// WithIndent sets the indentation width of encoded documents. Zero keeps JSON
// compact.
func WithIndent(width int) Option {
	return func(c *Codec) {
		if width >= 0 {
			c.indent = width
		}
	}
}

// Codec reads and writes serialized mappings. It holds no state beyond its
// settings.
type Codec struct {
	format Format
	indent int
}

// New returns a codec for format.
func New(format Format, opts ...Option) (*Codec, error) {
	if format != FormatJSON && format != FormatYAML {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", format)
	}
	c := &Codec{format: format}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Codec) Format() Format {
	return c.format
}

// EncodeMapping writes one mapping.
func (c *Codec) EncodeMapping(w io.Writer, m map[string]any) error {
	return c.encode(w, m)
}

// DecodeMapping reads one mapping. JSON numbers are kept as json.Number.
func (c *Codec) DecodeMapping(r io.Reader) (map[string]any, error) {
	var m map[string]any
	if err := c.decode(r, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}

// EncodeObjects writes models as an object document keyed by "<Kind>.<id>".
func (c *Codec) EncodeObjects(w io.Writer, models []domain.Model) error {
	doc := make(map[string]map[string]any, len(models))
	for _, m := range models {
		doc[domain.ObjectKey(m)] = m.ToMapping()
	}
	return c.encode(w, doc)
}

// DecodeObjects reads an object document and rehydrates every entry, in key
// order.
func (c *Codec) DecodeObjects(r io.Reader) ([]domain.Model, error) {
	var doc map[string]map[string]any
	if err := c.decode(r, &doc); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	models := make([]domain.Model, 0, len(keys))
	for _, key := range keys {
		model, err := domain.Rehydrate(doc[key])
		if err != nil {
			return nil, errors.Wrapf(err, "could not rehydrate object %q", key)
		}
		if got := domain.ObjectKey(model); got != key {
			return nil, errors.Wrapf(ErrKeyMismatch, "%q holds %q", key, got)
		}
		models = append(models, model)
	}

	return models, nil
}

func (c *Codec) encode(w io.Writer, v any) error {
	switch c.format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		if c.indent > 0 {
			enc.SetIndent(c.indent)
		}
		if err := enc.Encode(plainNumbers(v)); err != nil {
			return errors.Wrap(err, "could not encode yaml document")
		}
		return errors.WithStack(enc.Close())
	default:
		enc := json.NewEncoder(w)
		if c.indent > 0 {
			enc.SetIndent("", strings.Repeat(" ", c.indent))
		}
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "could not encode json document")
		}
		return nil
	}
}

func (c *Codec) decode(r io.Reader, v any) error {
	switch c.format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(v); err != nil && err != io.EOF {
			return errors.Wrap(err, "could not decode yaml document")
		}
		return nil
	default:
		payload, err := io.ReadAll(r)
		if err != nil {
			return errors.WithStack(err)
		}
		if len(bytes.TrimSpace(payload)) == 0 {
			return nil
		}
		dec := json.NewDecoder(bytes.NewReader(payload))
		dec.UseNumber()
		if err := dec.Decode(v); err != nil {
			return errors.Wrap(err, "could not decode json document")
		}
		return nil
	}
}

// plainNumbers replaces json.Number values so yaml emits them as numbers
// rather than quoted strings.
func plainNumbers(v any) any {
	switch value := v.(type) {
	case json.Number:
		if i, err := value.Int64(); err == nil {
			return i
		}
		if f, err := value.Float64(); err == nil {
			return f
		}
		return value.String()
	case map[string]map[string]any:
		out := make(map[string]any, len(value))
		for k, item := range value {
			out[k] = plainNumbers(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(value))
		for k, item := range value {
			out[k] = plainNumbers(item)
		}
		return out
	case []any:
		out := make([]any, len(value))
		for i, item := range value {
			out[i] = plainNumbers(item)
		}
		return out
	}
	return v
}
