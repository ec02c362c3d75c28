package iterator

import "mocktable/pkg/types"

// Iterator iterates over a sorted sequence of key-value pairs.
//
// A fresh iterator is not positioned: Valid reports false until one of
// Seek, First or Last is called.
type Iterator interface {
	// Seek moves the iterator to the first key >= target.
	Seek(target types.Key)
	// First moves to the smallest key.
	First()
	// Last moves to the largest key.
	Last()
	// Next advances to the next key. No-op when not positioned.
	Next()
	// Prev moves to the previous key. No-op when not positioned.
	Prev()
	// Valid reports whether the iterator points to a valid entry.
	Valid() bool
	// Key returns the current key.
	Key() types.Key
	// Value returns the current value.
	Value() types.Value
	// Err reports misuse of the iterator, such as reading Key while not Valid.
	Err() error
	// Close releases resources.
	Close() error
}
