package record

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpattn/hbnb/internal/command"
	"github.com/rpattn/hbnb/internal/command/common"
	"github.com/rpattn/hbnb/internal/domain"
)

const objects = `{
  "Place.abc-123": {
    "__class__": "Place",
    "id": "abc-123",
    "created_at": "2024-01-01T00:00:00.000000",
    "updated_at": "2024-01-01T00:00:00.000000",
    "city_id": "c1"
  },
  "BaseModel.4f1c2d6e-9a0b-4c1d-8e2f-3a4b5c6d7e8f": {
    "__class__": "BaseModel",
    "id": "4f1c2d6e-9a0b-4c1d-8e2f-3a4b5c6d7e8f",
    "created_at": "2024-02-01T12:00:00.500000",
    "updated_at": "2024-02-01T12:00:00.500000"
  }
}`

func run(t *testing.T, fs afero.Fs, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := command.NewApp("hbnb", "test", fs, Commands()...)
	app.Writer = &out
	app.ErrWriter = io.Discard
	err := app.Run(append([]string{"hbnb"}, args...))
	return out.String(), err
}

func newFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/objects.json", []byte(objects), 0o644))
	return fs
}

func TestNewPrintsFreshMapping(t *testing.T) {
	out, err := run(t, afero.NewMemMapFs(), "new", "Place")
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Equal(t, "Place", m["__class__"])
	_, err = uuid.Parse(m["id"].(string))
	assert.NoError(t, err)
	assert.Equal(t, m["created_at"], m["updated_at"])
}

func TestNewYAMLFormatFlag(t *testing.T) {
	out, err := run(t, afero.NewMemMapFs(), "--format", "yaml", "new", "BaseModel")
	require.NoError(t, err)
	assert.Contains(t, out, "__class__: BaseModel")
}

func TestNewWritesObjectDocument(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, err := run(t, fs, "new", "-o", "/data/new.yaml", "Place")
	require.NoError(t, err)

	out, err := run(t, fs, "show", "-f", "/data/new.yaml")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "[Place] ("), out)
}

func TestNewRejectsUnknownKind(t *testing.T) {
	_, err := run(t, afero.NewMemMapFs(), "new", "Review")
	assert.ErrorIs(t, err, domain.ErrUnknownKind)

	_, err = run(t, afero.NewMemMapFs(), "new")
	assert.Error(t, err)
}

func TestShow(t *testing.T) {
	out, err := run(t, newFs(t), "show", "-f", "/data/objects.json", "--key", "Place.abc-123")
	require.NoError(t, err)
	assert.Equal(t,
		`[Place] (abc-123) {"id": "abc-123", "created_at": time(2024-01-01T00:00:00.000000), "updated_at": time(2024-01-01T00:00:00.000000), "city_id": "c1"}`+"\n",
		out)

	out, err = run(t, newFs(t), "show", "-f", "/data/objects.json")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)
}

func TestShowUnknownKey(t *testing.T) {
	_, err := run(t, newFs(t), "show", "-f", "/data/objects.json", "-k", "Place.missing")
	assert.ErrorIs(t, err, common.ErrObjectNotFound)
}

func TestTouchRefreshesSelectedObject(t *testing.T) {
	fs := newFs(t)
	_, err := run(t, fs, "touch", "-f", "/data/objects.json", "-k", "Place.abc-123", "-o", "/data/touched.json")
	require.NoError(t, err)

	payload, err := afero.ReadFile(fs, "/data/touched.json")
	require.NoError(t, err)

	var doc map[string]map[string]any
	require.NoError(t, json.Unmarshal(payload, &doc))
	require.Len(t, doc, 2)

	place := doc["Place.abc-123"]
	assert.Equal(t, "2024-01-01T00:00:00.000000", place["created_at"])
	updated, err := time.ParseInLocation(domain.TimestampFormat, place["updated_at"].(string), time.Local)
	require.NoError(t, err)
	assert.True(t, updated.After(time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)))

	base := doc["BaseModel.4f1c2d6e-9a0b-4c1d-8e2f-3a4b5c6d7e8f"]
	assert.Equal(t, "2024-02-01T12:00:00.500000", base["updated_at"])
}

func TestValidate(t *testing.T) {
	out, err := run(t, newFs(t), "validate", "-f", "/data/objects.json")
	require.NoError(t, err)
	assert.Contains(t, out, "BaseModel.4f1c2d6e-9a0b-4c1d-8e2f-3a4b5c6d7e8f: ok")
	assert.Contains(t, out, "Place.abc-123: warning: id:")
	assert.Contains(t, out, "Place.abc-123: ok")
}

func TestValidateReportsInvalidObjects(t *testing.T) {
	fs := afero.NewMemMapFs()
	doc := "Place.p1:\n  __class__: Place\n  id: p1\n  created_at: \"2024-01-01T00:00:00.000000\"\n  updated_at: \"2024-01-01T00:00:00.000000\"\n  max_guest: plenty\n"
	require.NoError(t, afero.WriteFile(fs, "/data/objects.yml", []byte(doc), 0o644))

	out, err := run(t, fs, "validate", "-f", "/data/objects.yml")
	assert.ErrorIs(t, err, ErrInvalidObjects)
	assert.Contains(t, out, "Place.p1: error: max_guest:")
}

func TestMalformedTimestampFailsRead(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/bad.json", []byte(`{"BaseModel.x": {"__class__": "BaseModel", "id": "x", "created_at": "not-a-date"}}`), 0o644))

	_, err := run(t, fs, "show", "-f", "/data/bad.json")
	assert.ErrorIs(t, err, domain.ErrTimestampParse)
}
