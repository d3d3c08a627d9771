/*
number.go - Employee number generation

PURPOSE:
  Produces the human-readable employee number, a display/lookup aid of the
  form PREFIX-RANDOM-DATE:

    PREFIX  first 3 characters of the last name, uppercased; last names
            shorter than 3 characters are right-padded with '*'
    RANDOM  5-digit zero-padded number drawn from [0, 100000)
    DATE    birth date as DDMMMYYYY, uppercased (e.g. 05JAN1990)

  Example: SMI-04217-05JAN1990

NOT UNIQUE:
  The number is regenerated on every update, so two employees can share a
  number and the same employee can carry different numbers across edits.
  It is a derived display field, never a primary key.

RANDOMNESS:
  The random component is not security sensitive. The source is injected
  so tests can supply a deterministic sequence and assert exact strings.
*/
package payroll

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

const (
	numberPrefixLen  = 3
	numberPadChar    = "*"
	randomUpperBound = 100000
)

// NumberGenerator builds employee numbers from a pluggable random source.
type NumberGenerator struct {
	// Intn returns a non-negative random int in [0, n).
	Intn func(n int) int
}

// NewNumberGenerator returns a generator backed by the process-wide
// math/rand source.
func NewNumberGenerator() *NumberGenerator {
	return &NumberGenerator{Intn: rand.Intn}
}

// Generate builds an employee number from the last name and birth date.
func (g *NumberGenerator) Generate(lastName string, dateOfBirth time.Time) string {
	prefix := namePrefix(lastName)
	random := fmt.Sprintf("%05d", g.Intn(randomUpperBound))
	datePart := strings.ToUpper(dateOfBirth.Format("02Jan2006"))

	return fmt.Sprintf("%s-%s-%s", prefix, random, datePart)
}

func namePrefix(lastName string) string {
	runes := []rune(strings.ToUpper(lastName))
	if len(runes) >= numberPrefixLen {
		return string(runes[:numberPrefixLen])
	}
	return string(runes) + strings.Repeat(numberPadChar, numberPrefixLen-len(runes))
}
