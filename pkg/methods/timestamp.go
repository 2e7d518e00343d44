package methods

import (
	"cmp"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Timestamp is a message timestamp of the form "1512085950.000216":
// seconds since the epoch and a six-digit microsecond suffix. Comparisons
// are exact; the value is never converted to a float.
type Timestamp struct {
	Seconds int64
	Micros  int64
}

// ParseTimestamp parses a message timestamp. The fractional part is optional
// and is right-padded to six digits.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}, fmt.Errorf("%w: empty timestamp", ErrInvalidOptions)
	}
	secPart, fracPart, _ := strings.Cut(s, ".")
	sec, err := strconv.ParseInt(secPart, 10, 64)
	if err != nil || sec < 0 {
		return Timestamp{}, fmt.Errorf("%w: timestamp %q", ErrInvalidOptions, s)
	}
	var micros int64
	if fracPart != "" {
		if len(fracPart) > 6 {
			return Timestamp{}, fmt.Errorf("%w: timestamp %q has more than 6 fractional digits", ErrInvalidOptions, s)
		}
		micros, err = strconv.ParseInt(fracPart+strings.Repeat("0", 6-len(fracPart)), 10, 64)
		if err != nil || micros < 0 {
			return Timestamp{}, fmt.Errorf("%w: timestamp %q", ErrInvalidOptions, s)
		}
	}
	return Timestamp{Seconds: sec, Micros: micros}, nil
}

// TimestampOf parses a timestamp held in a request or response value.
func TimestampOf(v any) (Timestamp, error) {
	switch t := v.(type) {
	case string:
		return ParseTimestamp(t)
	case json.Number:
		return ParseTimestamp(t.String())
	case float64:
		return ParseTimestamp(strconv.FormatFloat(t, 'f', 6, 64))
	case int, int64:
		return ParseTimestamp(fmt.Sprint(t))
	default:
		return Timestamp{}, fmt.Errorf("%w: timestamp of type %T", ErrInvalidOptions, v)
	}
}

// Compare returns -1, 0 or +1 as t is before, equal to or after u.
func (t Timestamp) Compare(u Timestamp) int {
	if c := cmp.Compare(t.Seconds, u.Seconds); c != 0 {
		return c
	}
	return cmp.Compare(t.Micros, u.Micros)
}

// String formats the timestamp with a six-digit fraction.
func (t Timestamp) String() string {
	return fmt.Sprintf("%d.%06d", t.Seconds, t.Micros)
}

// AddMicros returns t shifted by n microseconds, clamped at the epoch.
func (t Timestamp) AddMicros(n int64) Timestamp {
	total := max(t.Seconds*1_000_000+t.Micros+n, 0)
	return Timestamp{Seconds: total / 1_000_000, Micros: total % 1_000_000}
}
