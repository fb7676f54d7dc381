package domain

import "github.com/spf13/cast"

const KindPlace = "Place"

// PlaceSchema declares the fields of a Place and their defaults.
var PlaceSchema = Schema{
	Kind: KindPlace,
	Fields: []FieldDefinition{
		{Name: "city_id", Type: FieldTypeString, Default: ""},
		{Name: "user_id", Type: FieldTypeString, Default: ""},
		{Name: "name", Type: FieldTypeString, Default: "", Description: "kept on the record but never serialized"},
		{Name: "description", Type: FieldTypeString, Default: ""},
		{Name: "number_rooms", Type: FieldTypeInteger, Default: 0},
		{Name: "number_bathrooms", Type: FieldTypeInteger, Default: 0},
		{Name: "max_guest", Type: FieldTypeInteger, Default: 0},
		{Name: "price_by_night", Type: FieldTypeInteger, Default: 0},
		{Name: "latitude", Type: FieldTypeFloat, Default: 0.0},
		{Name: "longitude", Type: FieldTypeFloat, Default: 0.0},
		{Name: "amenity_ids", Type: FieldTypeStringList, Default: []string{}},
	},
}

// Place is a rentable place. Unset fields read as their schema default and
// are not part of the serialized mapping.
type Place struct {
	*Record
}

// NewPlace creates a fresh place
func NewPlace() *Place {
	return &Place{Record: NewRecord(KindPlace)}
}

// PlaceFromMapping rehydrates a place from a serialized mapping.
func PlaceFromMapping(m map[string]any) (*Place, error) {
	r, err := FromMapping(KindPlace, m)
	if err != nil {
		return nil, err
	}
	return &Place{Record: r}, nil
}

func (p *Place) CityID() string {
	return p.str("city_id")
}

func (p *Place) UserID() string {
	return p.str("user_id")
}

func (p *Place) Name() string {
	return p.str("name")
}

func (p *Place) Description() string {
	return p.str("description")
}

func (p *Place) NumberRooms() int {
	return p.integer("number_rooms")
}

func (p *Place) NumberBathrooms() int {
	return p.integer("number_bathrooms")
}

func (p *Place) MaxGuest() int {
	return p.integer("max_guest")
}

func (p *Place) PriceByNight() int {
	return p.integer("price_by_night")
}

func (p *Place) Latitude() float64 {
	return p.float("latitude")
}

func (p *Place) Longitude() float64 {
	return p.float("longitude")
}

func (p *Place) AmenityIDs() []string {
	return p.strings("amenity_ids")
}

func (p *Place) SetCityID(v string) {
	p.attrs.set("city_id", v)
}

func (p *Place) SetUserID(v string) {
	p.attrs.set("user_id", v)
}

func (p *Place) SetName(v string) {
	p.attrs.set("name", v)
}

func (p *Place) SetDescription(v string) {
	p.attrs.set("description", v)
}

func (p *Place) SetNumberRooms(v int) {
	p.attrs.set("number_rooms", v)
}

func (p *Place) SetNumberBathrooms(v int) {
	p.attrs.set("number_bathrooms", v)
}

func (p *Place) SetMaxGuest(v int) {
	p.attrs.set("max_guest", v)
}

func (p *Place) SetPriceByNight(v int) {
	p.attrs.set("price_by_night", v)
}

func (p *Place) SetLatitude(v float64) {
	p.attrs.set("latitude", v)
}

func (p *Place) SetLongitude(v float64) {
	p.attrs.set("longitude", v)
}

func (p *Place) SetAmenityIDs(v []string) {
	p.attrs.set("amenity_ids", append([]string(nil), v...))
}

// value returns the coerced field value, falling back to the schema default
// when the field is unset or holds something that does not coerce.
func (p *Place) value(name string) any {
	field, _ := PlaceSchema.Field(name)
	raw, ok := p.attrs.get(name)
	if !ok {
		return field.Default
	}
	v, err := field.Coerce(raw)
	if err != nil {
		return field.Default
	}
	return v
}

func (p *Place) str(name string) string {
	return cast.ToString(p.value(name))
}

func (p *Place) integer(name string) int {
	return cast.ToInt(p.value(name))
}

func (p *Place) float(name string) float64 {
	return cast.ToFloat64(p.value(name))
}

func (p *Place) strings(name string) []string {
	return append([]string(nil), cast.ToStringSlice(p.value(name))...)
}
