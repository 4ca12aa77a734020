// Package model defines the data types shared by every stage of the
// matching pipeline: stored records, queries, and the several match kinds
// the pipeline can produce.
//
// Types here are immutable once constructed, in line with the store's
// read-only contract: a SequenceRecord is built once by the ingester (out
// of scope for this module) and never mutated afterward.
package model

import (
	"fmt"
	"regexp"
)

// ID is an OEIS identifier: "A" followed by six decimal digits, e.g. A000045.
type ID string

var idPattern = regexp.MustCompile(`^A[0-9]{6}$`)

// Valid reports whether id has the canonical seven-character A-number shape.
func (id ID) Valid() bool {
	return idPattern.MatchString(string(id))
}

// ParseID validates and returns an ID, or an error if s is not a
// well-formed A-number.
func ParseID(s string) (ID, error) {
	id := ID(s)
	if !id.Valid() {
		return "", fmt.Errorf("model: malformed id %q: want \"A\" + six digits", s)
	}
	return id, nil
}

func (id ID) String() string { return string(id) }
