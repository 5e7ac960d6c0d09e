package models

import (
	"database/sql/driver"
	"encoding/json"
)

// JSON stores loosely structured detail payloads as a json column.
type JSON map[string]interface{}

// Value implements driver.Valuer.
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner.
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSON)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, j)
}

// StringArray stores a list of strings (batch numbers etc.) as a json column.
type StringArray []string

// Value implements driver.Valuer.
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner.
func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = StringArray{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, s)
}

// EmptyGood is one returned-container entry on a picked position
// (E2 crates, pallets, hooks and similar Leergut).
type EmptyGood struct {
	Kind   string  `json:"kind"`
	Count  int     `json:"count"`
	Weight float64 `json:"weight"`
}

// EmptyGoodsList stores the Leergut entries of a position as a json column.
type EmptyGoodsList []EmptyGood

// Value implements driver.Valuer.
func (l EmptyGoodsList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *EmptyGoodsList) Scan(value interface{}) error {
	if value == nil {
		*l = EmptyGoodsList{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, l)
}
