package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSONSlice stores an ordered collection as a single JSON column.
// Embedded collections (bank accounts, line items, messages,
// milestones) keep their insertion order and round-trip losslessly.
type JSONSlice[T any] []T

// Value implements driver.Valuer for database storage as JSON
func (s JSONSlice[T]) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for database retrieval
func (s *JSONSlice[T]) Scan(value any) error {
	if value == nil {
		*s = JSONSlice[T]{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into JSONSlice", value)
	}
	if len(data) == 0 || string(data) == "null" {
		*s = JSONSlice[T]{}
		return nil
	}
	return json.Unmarshal(data, s)
}
