package mock

import (
	"fmt"
	"log/slog"

	"mocktable/pkg/dberrors"
	"mocktable/pkg/ikey"
	"mocktable/pkg/types"

	"github.com/zhangyunhao116/skipmap"
)

type builderState uint8

const (
	building builderState = iota
	finished
	abandoned
)

// Builder accumulates the entries of one table. It is driven by a single
// goroutine; nothing becomes visible to readers until Finish.
type Builder struct {
	id     types.TableID
	cmp    ikey.Comparator
	tables *registry

	state   builderState
	buf     *skipmap.FuncMap[[]byte, []byte]
	entries int
	rawSize uint64
}

func newBuilder(id types.TableID, cmp ikey.Comparator, tables *registry) *Builder {
	return &Builder{
		id:     id,
		cmp:    cmp,
		tables: tables,
		buf: skipmap.NewFunc[[]byte, []byte](func(a, b []byte) bool {
			return cmp(a, b) < 0
		}),
	}
}

func (b *Builder) ID() types.TableID {
	return b.id
}

// Add buffers a copy of key and value. A key added twice keeps the later value.
func (b *Builder) Add(key types.Key, value types.Value) error {
	if b.state != building {
		return fmt.Errorf("add to %s table %d: %w", b.state, b.id, dberrors.ErrInvalidState)
	}

	k := append([]byte(nil), key...)
	v := append([]byte(nil), value...)
	if old, ok := b.buf.Load(k); ok {
		b.rawSize -= uint64(len(k) + len(old))
	} else {
		b.entries++
	}
	b.buf.Store(k, v)
	b.rawSize += uint64(len(k) + len(v))

	return nil
}

// Finish seals the buffered entries into the registry under the builder's id.
func (b *Builder) Finish() error {
	if b.state != building {
		return fmt.Errorf("finish %s table %d: %w", b.state, b.id, dberrors.ErrInvalidState)
	}

	contents := &Contents{
		cmp:    b.cmp,
		keys:   make([]types.Key, 0, b.entries),
		values: make([]types.Value, 0, b.entries),
	}
	b.buf.Range(func(k, v []byte) bool {
		contents.keys = append(contents.keys, k)
		contents.values = append(contents.values, v)
		return true
	})

	if err := b.tables.insert(b.id, contents); err != nil {
		return err
	}

	b.state = finished
	b.buf = nil
	slog.Debug("mock table sealed", "id", b.id, "entries", contents.Len())

	return nil
}

// Abandon drops the buffered entries. The table id is not reused.
func (b *Builder) Abandon() error {
	if b.state != building {
		return fmt.Errorf("abandon %s table %d: %w", b.state, b.id, dberrors.ErrInvalidState)
	}

	b.state = abandoned
	b.buf = nil
	slog.Debug("mock table abandoned", "id", b.id)

	return nil
}

func (b *Builder) NumEntries() int {
	return b.entries
}

func (b *Builder) FileSize() uint64 {
	return HeaderSize + b.rawSize
}

func (s builderState) String() string {
	switch s {
	case finished:
		return "finished"
	case abandoned:
		return "abandoned"
	default:
		return "building"
	}
}
