package attendance

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Numeric is a number as it was stored by the data-entry layer: a JSON
// number, a numeric string, an empty string or null. Reading it never fails;
// anything unparseable reads as "no value".
type Numeric string

func NumericFromFloat(f float64) Numeric {
	return Numeric(strconv.FormatFloat(f, 'f', -1, 64))
}

func NumericFromInt(i int) Numeric {
	return Numeric(strconv.Itoa(i))
}

// Float returns the parsed value and whether one was present.
func (n Numeric) Float() (float64, bool) {
	s := strings.TrimSpace(string(n))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Float64 returns the value or 0.
func (n Numeric) Float64() float64 {
	f, _ := n.Float()
	return f
}

// Int returns the value rounded to the nearest integer, or 0.
func (n Numeric) Int() int {
	return int(math.Round(n.Float64()))
}

// Decimal returns the value as money, or zero.
func (n Numeric) Decimal() decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(string(n)))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Ptr returns nil for an empty value, for nullable columns.
func (n Numeric) Ptr() *string {
	if _, ok := n.Float(); !ok {
		return nil
	}
	s := strings.TrimSpace(string(n))
	return &s
}

func (n *Numeric) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*n = ""
			return nil
		}
		*n = Numeric(s)
		return nil
	}
	*n = Numeric(b)
	return nil
}

func (n Numeric) MarshalJSON() ([]byte, error) {
	f, ok := n.Float()
	if !ok {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}
