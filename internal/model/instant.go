package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"
)

var errInvalidInstant = errors.New("instant must be a string or a number")

// epochMillisThreshold separates epoch seconds from epoch milliseconds.
// 1e12 seconds is roughly the year 33658.
const epochMillisThreshold = 1e12

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	time.DateOnly,
}

// Instant is a point in time as reported by the analysis backend: either an
// ISO-8601 string or a Unix epoch number. The original representation is kept
// so that it round-trips unchanged.
type Instant struct {
	text   string
	number json.Number
}

// InstantFromString returns an Instant holding s verbatim.
func InstantFromString(s string) Instant {
	return Instant{text: s}
}

// InstantFromEpoch returns an Instant holding an epoch number verbatim.
func InstantFromEpoch(n json.Number) Instant {
	return Instant{number: n}
}

// IsZero reports whether the instant was absent.
func (i Instant) IsZero() bool {
	return i.text == "" && i.number == ""
}

// String returns the instant as reported upstream.
func (i Instant) String() string {
	if i.number != "" {
		return i.number.String()
	}
	return i.text
}

// Time parses the instant, reading date-times without a zone as UTC. It
// returns false when the instant is absent or cannot be interpreted.
func (i Instant) Time() (time.Time, bool) {
	return i.TimeIn(time.UTC)
}

// TimeIn is like Time but reads date-times without a zone as local time in
// loc. Zoned strings and epochs denote the same moment whatever loc is.
func (i Instant) TimeIn(loc *time.Location) (time.Time, bool) {
	if i.number != "" {
		return epochTime(i.number)
	}

	s := strings.TrimSpace(i.text)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	// Some producers serialize epochs as strings.
	return epochTime(json.Number(s))
}

func epochTime(n json.Number) (time.Time, bool) {
	f, err := n.Float64()
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return time.Time{}, false
	}
	if math.Abs(f) >= epochMillisThreshold {
		return time.UnixMilli(int64(f)).UTC(), true
	}
	sec, frac := math.Modf(f)
	return time.Unix(int64(sec), int64(frac*float64(time.Second))).UTC(), true
}

// UnmarshalJSON accepts a JSON string, number or null.
func (i *Instant) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*i = Instant{}
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*i = Instant{text: s}
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return errInvalidInstant
		}
		*i = Instant{number: n}
		return nil
	}
}

// MarshalJSON writes the instant in its original representation.
func (i Instant) MarshalJSON() ([]byte, error) {
	switch {
	case i.number != "":
		return []byte(i.number), nil
	case i.text != "":
		return json.Marshal(i.text)
	default:
		return []byte("null"), nil
	}
}
