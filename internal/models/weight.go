package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Weight is the shared weight/quantity type (3 decimal places, kg-grade
// precision as delivered by the scale interfaces).
type Weight struct {
	decimal.Decimal
}

// NewWeightFromDecimal creates a Weight from a decimal.
func NewWeightFromDecimal(amount decimal.Decimal) Weight {
	return Weight{Decimal: amount.Round(3)}
}

// NewWeightFromFloat creates a Weight from a float.
func NewWeightFromFloat(amount float64) Weight {
	return Weight{Decimal: decimal.NewFromFloat(amount).Round(3)}
}

// MarshalJSON renders a fixed 3-decimal string.
func (w Weight) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.Decimal.Round(3).StringFixed(3))
}

// UnmarshalJSON accepts a string or a number.
func (w *Weight) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		w.Decimal = d.Round(3)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	w.Decimal = decimal.NewFromFloat(f).Round(3)
	return nil
}

// Value is used for database writes.
func (w Weight) Value() (driver.Value, error) {
	return w.Decimal.Round(3).Value()
}

// Scan is used for database reads.
func (w *Weight) Scan(value interface{}) error {
	if err := w.Decimal.Scan(value); err != nil {
		return err
	}
	w.Decimal = w.Decimal.Round(3)
	return nil
}

// String returns the fixed 3-decimal form.
func (w Weight) String() string {
	return w.Decimal.Round(3).StringFixed(3)
}
