package user

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ID is an opaque server-assigned identifier.
//
// The upstream may send identifiers as JSON numbers or strings; ID remembers
// which form it arrived in so it can be echoed back unchanged.
type ID struct {
	value   string
	numeric bool
}

// NewID wraps a textual identifier, e.g. one taken from a URL path.
func NewID(value string) ID {
	return ID{value: strings.TrimSpace(value)}
}

// String returns the identifier text.
func (id ID) String() string {
	return id.value
}

// IsZero reports whether no identifier is set.
func (id ID) IsZero() bool {
	return id.value == ""
}

// Equal compares identifiers by text, ignoring their JSON form.
func (id ID) Equal(other ID) bool {
	return id.value == other.value
}

// MarshalJSON implements json.Marshaler.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.value == "" {
		return []byte("null"), nil
	}
	if id.numeric {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ID{}
		return nil
	}
	if data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = ID{value: value}
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = ID{value: number.String(), numeric: true}
	return nil
}
