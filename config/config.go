// Package config holds construction-time settings shared by all three
// table variants. Validate is the only place these settings are checked
// with a Go error; the dictionary operations themselves never return one.
package config

import (
	goerrors "github.com/agilira/go-errors"
)

// Error codes for Table.Validate.
const (
	codeInvalidCapacity   = "CONDICT_INVALID_CAPACITY"
	codeInvalidLoadFactor = "CONDICT_INVALID_LOAD_FACTOR"
)

// Table is the capacity/load-factor pair every New(...) constructor takes,
// pulled into one validated struct for the CLI and for callers who want to
// validate before constructing.
type Table struct {
	Capacity   uint64
	LoadFactor float32
}

// Validate reports a coded error for a capacity above 1<<40
// (CONDICT_INVALID_CAPACITY) or a non-zero load factor outside (0, 1]
// (CONDICT_INVALID_LOAD_FACTOR). A zero Capacity/LoadFactor is
// treated by the table constructors as "use the variant's default", so
// Validate only rejects values that were set but nonsensical.
func (t Table) Validate() error {
	if t.Capacity != 0 && t.Capacity > 1<<40 {
		return goerrors.New(codeInvalidCapacity, "capacity is implausibly large")
	}
	if t.LoadFactor != 0 && (t.LoadFactor <= 0 || t.LoadFactor > 1) {
		return goerrors.New(codeInvalidLoadFactor, "load factor must be in (0, 1]")
	}
	return nil
}
