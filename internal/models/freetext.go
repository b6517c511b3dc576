package models

import (
	"bytes"
	"encoding/json"
)

// FreeText is an optional form value kept exactly as it was sent.
// Any JSON value is accepted and stored as raw JSON,
// so "2" and 2 survive a round trip unchanged.
type FreeText string

// Text wraps a Go string
func Text(s string) FreeText {
	if s == "" {
		return ""
	}
	data, _ := json.Marshal(s)
	return FreeText(data)
}

func (t *FreeText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return err
	}
	*t = FreeText(buf.String())
	return nil
}

func (t FreeText) MarshalJSON() ([]byte, error) {
	switch {
	case t == "":
		return []byte("null"), nil
	case json.Valid([]byte(t)):
		return []byte(t), nil
	default:
		return json.Marshal(string(t))
	}
}

// String returns the value for display, without JSON quoting
func (t FreeText) String() string {
	var s string
	if err := json.Unmarshal([]byte(t), &s); err == nil {
		return s
	}
	return string(t)
}
