package mock

import (
	"fmt"
	"sync/atomic"

	"mocktable/pkg/dberrors"
	"mocktable/pkg/ikey"
	"mocktable/pkg/iterator"
	"mocktable/pkg/table"
	"mocktable/pkg/types"
)

var _ table.Reader = (*Reader)(nil)

// Reader serves one sealed table. It shares the contents with the registry
// until Close drops the reference.
type Reader struct {
	id       types.TableID
	contents atomic.Pointer[Contents]
}

func newReader(id types.TableID, contents *Contents) *Reader {
	r := &Reader{id: id}
	r.contents.Store(contents)
	return r
}

func (r *Reader) ID() types.TableID {
	return r.id
}

// NumEntries is zero once the reader is closed.
func (r *Reader) NumEntries() int {
	contents := r.contents.Load()
	if contents == nil {
		return 0
	}
	return contents.Len()
}

// NewIterator returns an exhausted iterator once the reader is closed.
func (r *Reader) NewIterator() iterator.Iterator {
	return newIterator(r.contents.Load())
}

// Get offers every entry from the first one >= key to sink until sink
// returns false. An entry that is not a valid internal key fails the lookup
// with ErrCorruption once the scan reaches it.
func (r *Reader) Get(key types.Key, sink table.Sink) error {
	contents := r.contents.Load()
	if contents == nil {
		return fmt.Errorf("get from table %d: %w", r.id, dberrors.ErrClosed)
	}

	it := newIterator(contents)
	defer it.Close()

	for it.Seek(key); it.Valid(); it.Next() {
		parsed, err := ikey.Parse(it.Key())
		if err != nil {
			return fmt.Errorf("table %d: %w", r.id, err)
		}
		if !sink(parsed, it.Value()) {
			break
		}
	}

	return nil
}

// TableProperties is not modeled by the mock format and is always empty.
func (r *Reader) TableProperties() *table.Properties {
	return &table.Properties{}
}

// Close drops the reference to the contents. Iterators opened earlier keep
// their own reference.
func (r *Reader) Close() error {
	r.contents.Store(nil)
	return nil
}
