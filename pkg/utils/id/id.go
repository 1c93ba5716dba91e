// Package id provides unique ID generation for the Atlas platform.
//
// IDs are ULIDs: time-ordered, 26 characters, safe for use in URLs and log
// fields. Session IDs and request IDs share the same generator so they sort
// by creation time.
package id

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator defines the interface for ID generators.
type Generator interface {
	// Generate creates a new unique ID.
	Generate() string
}

// ULIDGenerator generates monotonic ULIDs. Safe for concurrent use.
type ULIDGenerator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewULIDGenerator creates a new ULID generator backed by crypto/rand.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Generate creates a new ULID string.
func (g *ULIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy).String()
}

var (
	defaultULID *ULIDGenerator
	initOnce    sync.Once
)

func defaultGenerator() *ULIDGenerator {
	initOnce.Do(func() {
		defaultULID = NewULIDGenerator()
	})
	return defaultULID
}

// NewULID generates a new ULID string using the default generator.
func NewULID() string {
	return defaultGenerator().Generate()
}

// Parse parses a ULID string.
func Parse(s string) (ulid.ULID, error) {
	return ulid.ParseStrict(s)
}

// IsValid reports whether s is a well-formed ULID.
func IsValid(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}

// Time extracts the embedded timestamp from a ULID string.
// Returns the zero time if s is not a valid ULID.
func Time(s string) time.Time {
	u, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMilli(int64(u.Time()))
}
