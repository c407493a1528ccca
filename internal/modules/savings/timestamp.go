package savings

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the wire format for every date in requests and responses.
const TimestampLayout = "2006-01-02 15:04:05"

var acceptedLayouts = []string{
	TimestampLayout,
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// NormalizeTime truncates t to whole seconds and drops its zone, keeping the
// wall clock. Two instants that print identically normalize identically.
func NormalizeTime(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

// ParseTimestamp parses a wire timestamp and normalizes it.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return NormalizeTime(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q: expected %s", value, "YYYY-MM-DD HH:mm:ss")
}

// FormatTimestamp renders t in the wire format.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// Timestamp is a time.Time that encodes to and from the wire format.
type Timestamp time.Time

// Time returns the underlying time.
func (ts Timestamp) Time() time.Time {
	return time.Time(ts)
}

// MarshalJSON implements json.Marshaler.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + FormatTimestamp(time.Time(ts)) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return fmt.Errorf("timestamp is required")
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string")
	}
	t, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*ts = Timestamp(t)
	return nil
}
