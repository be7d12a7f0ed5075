package domain

import (
	"encoding/json"
	"math"
	"strconv"
)

// NullFloat is a numeric cell that is either a finite number or missing.
// Missing is distinct from zero and serializes as JSON null.
type NullFloat struct {
	Value float64
	Valid bool
}

// Some returns a present value. NaN and ±Inf are treated as missing so a
// NullFloat never carries a non-finite number.
func Some(v float64) NullFloat {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NullFloat{}
	}
	return NullFloat{Value: v, Valid: true}
}

// None returns a missing value.
func None() NullFloat {
	return NullFloat{}
}

// Get returns the value and whether it is present.
func (n NullFloat) Get() (float64, bool) {
	return n.Value, n.Valid
}

// IsZero reports whether the value is present and equal to zero.
func (n NullFloat) IsZero() bool {
	return n.Valid && n.Value == 0
}

// Or returns the value, or fallback when missing.
func (n NullFloat) Or(fallback float64) float64 {
	if !n.Valid {
		return fallback
	}
	return n.Value
}

// String implements fmt.Stringer.
func (n NullFloat) String() string {
	if !n.Valid {
		return "<missing>"
	}
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

// MarshalJSON renders missing values as null.
func (n NullFloat) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// UnmarshalJSON accepts a number or null.
func (n *NullFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = NullFloat{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Some(v)
	return nil
}
