package mock

import (
	"fmt"

	"mocktable/pkg/dberrors"
	"mocktable/pkg/iterator"
	"mocktable/pkg/types"
)

var _ iterator.Iterator = (*Iterator)(nil)

const (
	beforeFirst = -1
	exhausted   = -2
)

// Iterator is a cursor over sealed contents. pos is an entry index, or one
// of beforeFirst and exhausted.
type Iterator struct {
	contents *Contents
	pos      int
	err      error
}

// newIterator returns an unpositioned iterator, or an exhausted one when
// contents is nil.
func newIterator(contents *Contents) *Iterator {
	if contents == nil {
		return &Iterator{pos: exhausted}
	}
	return &Iterator{
		contents: contents,
		pos:      beforeFirst,
	}
}

func (it *Iterator) Seek(target types.Key) {
	if it.contents == nil {
		return
	}
	it.setPos(it.contents.search(target))
}

func (it *Iterator) First() {
	if it.contents == nil {
		return
	}
	it.setPos(0)
}

func (it *Iterator) Last() {
	if it.contents == nil {
		return
	}
	it.setPos(it.contents.Len() - 1)
}

func (it *Iterator) Next() {
	if !it.Valid() {
		return
	}
	it.setPos(it.pos + 1)
}

func (it *Iterator) Prev() {
	if !it.Valid() {
		return
	}
	it.setPos(it.pos - 1)
}

func (it *Iterator) Valid() bool {
	return it.pos >= 0
}

// Key returns nil and records ErrInvalidState when the iterator is not positioned.
func (it *Iterator) Key() types.Key {
	if !it.Valid() {
		it.misuse("key")
		return nil
	}
	return it.contents.Key(it.pos)
}

// Value returns nil and records ErrInvalidState when the iterator is not positioned.
func (it *Iterator) Value() types.Value {
	if !it.Valid() {
		it.misuse("value")
		return nil
	}
	return it.contents.Value(it.pos)
}

func (it *Iterator) Err() error {
	return it.err
}

// Close drops the reference to the contents. A closed iterator stays exhausted.
func (it *Iterator) Close() error {
	it.contents = nil
	it.pos = exhausted
	return nil
}

func (it *Iterator) setPos(pos int) {
	if pos < 0 || pos >= it.contents.Len() {
		it.pos = exhausted
		return
	}
	it.pos = pos
}

func (it *Iterator) misuse(op string) {
	if it.err == nil {
		it.err = fmt.Errorf("%s of unpositioned iterator: %w", op, dberrors.ErrInvalidState)
	}
}
