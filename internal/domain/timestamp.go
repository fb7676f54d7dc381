package domain

import (
	"errors"
	"fmt"
	"time"
)

// TimestampFormat is the serialized form of created_at and updated_at:
// microsecond precision, no zone.
const TimestampFormat = "2006-01-02T15:04:05.000000"

// ErrTimestampParse is matched by every *TimestampParseError through errors.Is.
var ErrTimestampParse = errors.New("error parsing datetime")

// TimestampParseError reports a created_at/updated_at value that does not
// match TimestampFormat.
type TimestampParseError struct {
	Field string
	Value string
	Err   error
}

func (e *TimestampParseError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrTimestampParse, e.Field, e.Err)
}

func (e *TimestampParseError) Unwrap() error {
	return e.Err
}

func (e *TimestampParseError) Is(target error) bool {
	return target == ErrTimestampParse
}

// FormatTimestamp renders t with TimestampFormat.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampFormat)
}

// ParseTimestamp parses a serialized timestamp for the given field. Values are
// read as local wall-clock time.
func ParseTimestamp(field string, value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		t, err := time.ParseInLocation(TimestampFormat, v, time.Local)
		if err != nil {
			return time.Time{}, &TimestampParseError{Field: field, Value: v, Err: err}
		}
		return t, nil
	default:
		return time.Time{}, &TimestampParseError{
			Field: field,
			Value: fmt.Sprint(value),
			Err:   fmt.Errorf("expected a timestamp string, got %T", value),
		}
	}
}

// now is the clock used for fresh records and Touch.
var now = time.Now
