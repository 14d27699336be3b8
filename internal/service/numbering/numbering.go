// Package numbering mints human-readable register numbers of the form
// PREFIX-YEAR-NNNNN. Sequences are scoped to (prefix, year) and backed by an
// atomic counter, so concurrent callers never receive the same number.
package numbering

import (
	"context"
	"fmt"
	"time"

	"github.com/mamadbah2/livestockcare/internal/repository"
)

// Register prefixes.
const (
	PrefixOPD         = "OPD"
	PrefixIPD         = "IPD"
	PrefixSurgical    = "SURG"
	PrefixGynaecology = "GYN"
	PrefixCastration  = "CAST"
	PrefixVet         = "VET"
)

// CaseNumber is a minted register number.
type CaseNumber struct {
	Number string
	Serial int64
	Year   int
}

// Generator hands out case numbers.
type Generator struct {
	counter repository.Counter
	now     func() time.Time
}

// NewGenerator builds a generator over the given counter store.
func NewGenerator(counter repository.Counter) *Generator {
	return &Generator{counter: counter, now: time.Now}
}

// WithClock overrides the time source.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Next returns the next number for prefix in the current UTC year.
func (g *Generator) Next(ctx context.Context, prefix string) (CaseNumber, error) {
	year := g.now().UTC().Year()
	seq, err := g.counter.NextSequence(ctx, Key(prefix, year))
	if err != nil {
		return CaseNumber{}, fmt.Errorf("next %s number: %w", prefix, err)
	}
	return CaseNumber{Number: Format(prefix, year, seq), Serial: seq, Year: year}, nil
}

// Key is the counter key for a prefix and year.
func Key(prefix string, year int) string {
	return fmt.Sprintf("%s-%d", prefix, year)
}

// Format renders a register number.
func Format(prefix string, year int, seq int64) string {
	return fmt.Sprintf("%s-%d-%05d", prefix, year, seq)
}
