package model

import (
	"strings"
	"time"
)

// Timestamp wraps time.Time to accept the backend's wire formats. The server
// serializes naive datetimes without a zone offset ("2006-01-02T15:04:05"),
// which encoding/json's time.Time rejects, so we try RFC 3339 first and fall
// back to offset-less variants. Values without a zone are taken as UTC.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	var lastErr error
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed.UTC()
			return nil
		}
		lastErr = err
	}
	return lastErr
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Time.UTC().Format(time.RFC3339) + `"`), nil
}

// NewTimestamp is a convenience for building request payloads and fixtures.
func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t}
}
