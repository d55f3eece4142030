// Package analytics computes derived metrics and display aggregations over
// the flat usage and seat tables. Every function is pure: tables go in,
// values come out, nothing is mutated.
package analytics

import "encoding/json"

// Rate is a numeric metric that may be undefined. A zero denominator yields
// an undefined rate, which is distinct from a legitimate zero value and is
// excluded from any mean taken over rates.
type Rate struct {
	Value float64
	Valid bool
}

// NewRate divides num by den, undefined when den is 0.
func NewRate(num, den float64) Rate {
	if den == 0 {
		return Rate{}
	}
	return Rate{Value: num / den, Valid: true}
}

// Percent divides num by den and scales to a percentage, undefined when den
// is 0.
func Percent(num, den float64) Rate {
	if den == 0 {
		return Rate{}
	}
	return Rate{Value: num / den * 100, Valid: true}
}

// Number wraps a plain value in an always-valid Rate.
func Number(v float64) Rate {
	return Rate{Value: v, Valid: true}
}

// MarshalJSON encodes an undefined rate as null.
func (r Rate) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

// UnmarshalJSON decodes null as undefined.
func (r *Rate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Rate{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = Rate{Value: v, Valid: true}
	return nil
}

// MeanRate averages the defined rates only. Undefined entries reduce the
// denominator count instead of being coerced to zero. All-undefined (or
// empty) input yields an undefined mean.
func MeanRate(rates []Rate) Rate {
	var sum float64
	var n int
	for _, r := range rates {
		if !r.Valid {
			continue
		}
		sum += r.Value
		n++
	}
	if n == 0 {
		return Rate{}
	}
	return Rate{Value: sum / float64(n), Valid: true}
}
