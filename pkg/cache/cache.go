package cache

import "errors"

// ErrIndexNotFound is returned when querying an index that was never registered
var ErrIndexNotFound = errors.New("index not found")

// Cache defines the basic interface for a generic in-memory registry
type Cache[K comparable, V any] interface {
	// Set adds or updates an item
	Set(key K, value V)
	// Get retrieves an item
	Get(key K) (V, bool)
	// Del removes an item
	Del(key K)
	// Len returns the number of items
	Len() int
	// Keys returns all keys
	Keys() []K
	// Values returns all items
	Values() []V
	// Clear removes all items
	Clear()
	// Contains checks if a key exists
	Contains(key K) bool
}

// Extractor derives the index values an item is filed under. Returning
// several values files the item under each of them, so one session can be
// found through every role it carries. Returning none leaves the item out
// of the index.
type Extractor[V any] func(V) []any

// Store extends Cache with multi-valued secondary indexes
type Store[K comparable, V any] interface {
	Cache[K, V]

	// AddIndex registers a new secondary index
	AddIndex(name string, extract Extractor[V])

	// Find retrieves items filed under the index value
	Find(indexName string, indexValue any) ([]V, error)

	// Filter scans the store and returns items matching the predicate
	Filter(predicate func(V) bool) []V
}
