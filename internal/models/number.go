package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Number is an optional numeric value. The zero value is "missing".
// A missing reading is never the same thing as a reading of zero.
type Number struct {
	Value float64
	Valid bool
}

// N wraps a float64 in a valid Number.
func N(v float64) Number {
	return Number{Value: v, Valid: true}
}

// Float returns the value and whether it is present.
func (n Number) Float() (float64, bool) {
	return n.Value, n.Valid
}

// UnmarshalJSON accepts a JSON number, a numeric string, or null.
// Anything else, including non-finite values, leaves the Number invalid.
func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		*n = N(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	*n = N(v)
	return nil
}

// MarshalJSON encodes a missing Number as null.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}
