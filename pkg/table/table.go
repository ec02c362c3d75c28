// Package table defines the contract between the storage engine and a sorted
// table format. The engine only talks to these interfaces, so an on-disk
// format and the in-memory mock in package mock are interchangeable.
package table

import (
	"io"

	"mocktable/pkg/ikey"
	"mocktable/pkg/iterator"
	"mocktable/pkg/types"
)

// Factory creates readers and builders for one table format.
type Factory interface {
	// Name identifies the format.
	Name() string
	// NewTableReader opens the table stored in file.
	NewTableReader(file io.ReaderAt) (Reader, error)
	// NewTableBuilder starts a new table that will be written into file.
	NewTableBuilder(file io.Writer) (Builder, error)
}

// Reader serves lookups against one sealed table.
type Reader interface {
	// NewIterator returns an unpositioned iterator over the table.
	NewIterator() iterator.Iterator
	// Get seeks to the first entry >= key and offers entries to sink, in
	// order, until sink returns false or the table is exhausted.
	// A key that is absent is not an error.
	Get(key types.Key, sink Sink) error
	// TableProperties returns statistics collected while building the table.
	TableProperties() *Properties
	Close() error
}

// Builder accumulates entries for a new table.
//
// Keys must be added in ascending internal-key order.
type Builder interface {
	Add(key types.Key, value types.Value) error
	// Finish seals the table. Calling it twice is an error.
	Finish() error
	// Abandon drops the table without sealing it.
	Abandon() error
	NumEntries() int
	// FileSize is the number of bytes the table occupies so far.
	FileSize() uint64
}

// Sink receives candidate entries during Get. Returning false stops the scan.
type Sink func(key ikey.ParsedKey, value types.Value) bool

// Properties describes a table's contents.
type Properties struct {
	DataSize     uint64
	IndexSize    uint64
	FilterSize   uint64
	RawKeySize   uint64
	RawValueSize uint64
	NumEntries   uint64
	NumDeletions uint64
	FormatName   string
}
