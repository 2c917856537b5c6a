package models

import (
	"database/sql/driver"
	"fmt"
)

// JSONPayload stores an arbitrary JSON document as text. The payload is
// carried opaquely: the server never interprets its shape, it only
// round-trips what the client sent.
type JSONPayload []byte

// Value implements driver.Valuer. Empty payloads persist as NULL.
func (p JSONPayload) Value() (driver.Value, error) {
	if len(p) == 0 {
		return nil, nil
	}
	return string(p), nil
}

// Scan implements sql.Scanner.
func (p *JSONPayload) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*p = append((*p)[:0], v...)
	case string:
		*p = JSONPayload(v)
	default:
		return fmt.Errorf("cannot scan %T into JSONPayload", value)
	}
	return nil
}

// MarshalJSON emits the stored document verbatim, null when empty.
func (p JSONPayload) MarshalJSON() ([]byte, error) {
	if len(p) == 0 {
		return []byte("null"), nil
	}
	return p, nil
}

// UnmarshalJSON keeps the raw document bytes.
func (p *JSONPayload) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = nil
		return nil
	}
	*p = append((*p)[:0], data...)
	return nil
}
