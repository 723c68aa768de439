// Package jsonx holds JSON helpers for rows coming from loosely typed stores.
package jsonx

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Scalar is a key or label the store may send as a JSON number or a string.
// It is kept as text either way.
type Scalar string

func (s *Scalar) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*s = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = Scalar(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("scalar: %w", err)
	}
	*s = Scalar(n.String())
	return nil
}

// MarshalJSON writes canonical integers back as numbers.
func (s Scalar) MarshalJSON() ([]byte, error) {
	if s.IsInt() {
		return []byte(s), nil
	}
	return json.Marshal(string(s))
}

// IsInt reports whether s is a canonical base-10 int64.
func (s Scalar) IsInt() bool {
	n, err := strconv.ParseInt(string(s), 10, 64)
	return err == nil && strconv.FormatInt(n, 10) == string(s)
}

// Scan implements sql.Scanner for integer, uuid and text columns.
func (s *Scalar) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*s = ""
	case int64:
		*s = Scalar(strconv.FormatInt(v, 10))
	case []byte:
		*s = Scalar(v)
	case string:
		*s = Scalar(v)
	default:
		return fmt.Errorf("scalar: unsupported type %T", src)
	}
	return nil
}

// Value implements driver.Valuer; integers go out as int64.
func (s Scalar) Value() (driver.Value, error) {
	if s.IsInt() {
		n, _ := strconv.ParseInt(string(s), 10, 64)
		return n, nil
	}
	return string(s), nil
}

func (s Scalar) String() string {
	return string(s)
}
