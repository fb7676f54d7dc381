package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlaceDefaults(t *testing.T) {
	p := NewPlace()

	assert.Equal(t, KindPlace, p.Kind())
	assert.Equal(t, "", p.CityID())
	assert.Equal(t, 0, p.NumberRooms())
	assert.Equal(t, 0.0, p.Latitude())
	assert.Empty(t, p.AmenityIDs())

	m := p.ToMapping()
	assert.ElementsMatch(t, []string{"id", "created_at", "updated_at", "__class__"}, keysOf(m))
	assert.Equal(t, "Place", m["__class__"])
}

func TestPlaceSettersSerialize(t *testing.T) {
	p := NewPlace()
	p.SetCityID("c1")
	p.SetUserID("u1")
	p.SetName("Loft")
	p.SetDescription("Sunny loft")
	p.SetNumberRooms(3)
	p.SetNumberBathrooms(1)
	p.SetMaxGuest(5)
	p.SetPriceByNight(120)
	p.SetLatitude(48.85)
	p.SetLongitude(2.35)
	p.SetAmenityIDs([]string{"a1", "a2"})

	assert.Equal(t, "Loft", p.Name())

	m := p.ToMapping()
	assert.NotContains(t, m, "name")
	assert.Equal(t, "c1", m["city_id"])
	assert.Equal(t, 3, m["number_rooms"])
	assert.Equal(t, 48.85, m["latitude"])
	assert.Equal(t, []string{"a1", "a2"}, m["amenity_ids"])
}

func TestPlaceGettersCoerceDecodedValues(t *testing.T) {
	p, err := PlaceFromMapping(map[string]any{
		"id":               "p-1",
		"number_rooms":     json.Number("4"),
		"number_bathrooms": "2",
		"max_guest":        float64(6),
		"latitude":         "37.77",
		"amenity_ids":      []any{"wifi", "pool"},
	})
	require.NoError(t, err)

	assert.Equal(t, 4, p.NumberRooms())
	assert.Equal(t, 2, p.NumberBathrooms())
	assert.Equal(t, 6, p.MaxGuest())
	assert.InDelta(t, 37.77, p.Latitude(), 1e-9)
	assert.Equal(t, []string{"wifi", "pool"}, p.AmenityIDs())
}

func TestPlaceGetterFallsBackOnBadValue(t *testing.T) {
	p, err := PlaceFromMapping(map[string]any{"price_by_night": "cheap"})
	require.NoError(t, err)

	assert.Equal(t, 0, p.PriceByNight())
	raw, ok := p.Get("price_by_night")
	require.True(t, ok)
	assert.Equal(t, "cheap", raw)
}

func TestPlaceAmenityIDsAreCopied(t *testing.T) {
	p := NewPlace()
	ids := []string{"a1"}
	p.SetAmenityIDs(ids)
	ids[0] = "changed"

	got := p.AmenityIDs()
	assert.Equal(t, []string{"a1"}, got)
	got[0] = "mutated"
	assert.Equal(t, []string{"a1"}, p.AmenityIDs())
}

func TestPlaceRoundTrip(t *testing.T) {
	p := NewPlace()
	p.SetCityID("c1")
	p.SetName("dropped on serialization")
	p.SetMaxGuest(2)

	first := p.ToMapping()
	again, err := PlaceFromMapping(first)
	require.NoError(t, err)

	assert.Equal(t, first, again.ToMapping())
	assert.Equal(t, "", again.Name())
}

func TestPlaceFromMappingFailsOnBadTimestamp(t *testing.T) {
	p, err := PlaceFromMapping(map[string]any{"updated_at": "2024/01/01"})
	assert.ErrorIs(t, err, ErrTimestampParse)
	assert.Nil(t, p)
}

func keysOf(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
