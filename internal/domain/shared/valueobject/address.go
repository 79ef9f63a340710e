package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Address is a value object representing a US street address.
// It is immutable - all operations return new Address instances.
type Address struct {
	street string
	unit   string
	city   string
	state  string
	zip    string
}

// AddressOption is a functional option for configuring Address
type AddressOption func(*Address)

// WithUnit sets the unit or apartment number
func WithUnit(unit string) AddressOption {
	return func(a *Address) {
		a.unit = strings.TrimSpace(unit)
	}
}

// NewAddress creates a new Address. Street and city are required;
// state must be a two-letter abbreviation when provided.
func NewAddress(street, city, state, zip string, opts ...AddressOption) (Address, error) {
	street = strings.TrimSpace(street)
	city = strings.TrimSpace(city)
	state = strings.ToUpper(strings.TrimSpace(state))
	zip = strings.TrimSpace(zip)

	if street == "" {
		return Address{}, fmt.Errorf("street cannot be empty")
	}
	if len(street) > 200 {
		return Address{}, fmt.Errorf("street cannot exceed 200 characters")
	}
	if len(city) > 100 {
		return Address{}, fmt.Errorf("city cannot exceed 100 characters")
	}
	if state != "" && len(state) != 2 {
		return Address{}, fmt.Errorf("state must be a two-letter abbreviation")
	}
	if len(zip) > 10 {
		return Address{}, fmt.Errorf("zip cannot exceed 10 characters")
	}

	addr := Address{
		street: street,
		city:   city,
		state:  state,
		zip:    zip,
	}
	for _, opt := range opts {
		opt(&addr)
	}
	return addr, nil
}

// MustNewAddress creates a new Address, panics on error
func MustNewAddress(street, city, state, zip string, opts ...AddressOption) Address {
	addr, err := NewAddress(street, city, state, zip, opts...)
	if err != nil {
		panic(err)
	}
	return addr
}

// EmptyAddress returns an empty address (for optional address fields)
func EmptyAddress() Address {
	return Address{}
}

// Street returns the street line
func (a Address) Street() string { return a.street }

// Unit returns the unit or apartment number
func (a Address) Unit() string { return a.unit }

// City returns the city
func (a Address) City() string { return a.city }

// State returns the two-letter state abbreviation
func (a Address) State() string { return a.state }

// Zip returns the zip code
func (a Address) Zip() string { return a.zip }

// IsEmpty returns true if all fields are blank
func (a Address) IsEmpty() bool {
	return a.street == "" && a.city == "" && a.state == "" && a.zip == ""
}

// Line1 returns the street line including the unit when present
func (a Address) Line1() string {
	if a.unit != "" {
		return a.street + " " + a.unit
	}
	return a.street
}

// FullAddress returns the complete formatted address string.
// Format: "street unit, city, ST zip"
func (a Address) FullAddress() string {
	if a.IsEmpty() {
		return ""
	}
	parts := make([]string, 0, 3)
	parts = append(parts, a.Line1())
	if a.city != "" {
		parts = append(parts, a.city)
	}
	tail := strings.TrimSpace(a.state + " " + a.zip)
	if tail != "" {
		parts = append(parts, tail)
	}
	return strings.Join(parts, ", ")
}

// String returns a string representation of the address
func (a Address) String() string {
	return a.FullAddress()
}

// Equals returns true if both addresses are equal
func (a Address) Equals(other Address) bool {
	return a == other
}

type addressJSON struct {
	Street string `json:"street"`
	Unit   string `json:"unit,omitempty"`
	City   string `json:"city,omitempty"`
	State  string `json:"state,omitempty"`
	Zip    string `json:"zip,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(addressJSON{
		Street: a.street,
		Unit:   a.unit,
		City:   a.city,
		State:  a.state,
		Zip:    a.zip,
	})
}

// UnmarshalJSON implements json.Unmarshaler. Empty payloads yield an
// empty address; anything else goes through NewAddress validation.
func (a *Address) UnmarshalJSON(data []byte) error {
	var v addressJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v.Street == "" && v.City == "" && v.State == "" && v.Zip == "" {
		*a = EmptyAddress()
		return nil
	}
	addr, err := NewAddress(v.Street, v.City, v.State, v.Zip, WithUnit(v.Unit))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// Value implements driver.Valuer for database storage as JSON
func (a Address) Value() (driver.Value, error) {
	if a.IsEmpty() {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner for database retrieval
func (a *Address) Scan(value any) error {
	if value == nil {
		*a = EmptyAddress()
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into Address", value)
	}
	if len(data) == 0 || string(data) == "null" {
		*a = EmptyAddress()
		return nil
	}
	return json.Unmarshal(data, a)
}
