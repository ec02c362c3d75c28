// Package mock is an in-memory table format. Table contents live in a
// registry owned by the Factory; the backing file only carries a 4-byte
// header naming the table id, standing in for a real format's footer.
package mock

import (
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"

	"mocktable/pkg/clock"
	"mocktable/pkg/dberrors"
	"mocktable/pkg/ikey"
	"mocktable/pkg/table"
	"mocktable/pkg/types"
)

const (
	FormatName = "MockTable"

	// HeaderSize is the size of the table id written at offset 0 of every file.
	HeaderSize = 4
)

var _ table.Factory = (*Factory)(nil)

type Options struct {
	// Comparator orders table entries. Defaults to ikey.Compare.
	Comparator ikey.Comparator
}

type Factory struct {
	cmp    ikey.Comparator
	nextID *clock.AtomicCounter
	tables *registry
}

func NewFactory(opts Options) *Factory {
	cmp := opts.Comparator
	if cmp == nil {
		cmp = ikey.Compare
	}
	return &Factory{
		cmp:    cmp,
		nextID: clock.NewAtomic(0),
		tables: newRegistry(),
	}
}

func (f *Factory) Name() string {
	return FormatName
}

// NewTableBuilder allocates the next table id and writes it as the file header.
func (f *Factory) NewTableBuilder(file io.Writer) (table.Builder, error) {
	id := types.TableID(f.nextID.Next())

	var header [HeaderSize]byte
	binary.LittleEndian.PutUint32(header[:], uint32(id))
	if _, err := file.Write(header[:]); err != nil {
		return nil, fmt.Errorf("failed to write header of table %d: %w", id, err)
	}

	slog.Debug("mock table builder created", "id", id)
	return newBuilder(id, f.cmp, f.tables), nil
}

// NewTableReader reads the table id from the file header and binds a reader
// to the sealed contents registered under it.
func (f *Factory) NewTableReader(file io.ReaderAt) (table.Reader, error) {
	id, err := readHeader(file)
	if err != nil {
		return nil, err
	}

	contents, ok := f.tables.lookup(id)
	if !ok {
		return nil, fmt.Errorf("mock table %d: %w", id, dberrors.ErrNotFound)
	}

	slog.Debug("mock table reader opened", "id", id, "entries", contents.Len())
	return newReader(id, contents), nil
}

// Lookup returns the sealed contents of table id.
func (f *Factory) Lookup(id types.TableID) (*Contents, bool) {
	return f.tables.lookup(id)
}

// Size is the number of sealed tables.
func (f *Factory) Size() int {
	return f.tables.size()
}

// Snapshot lists every sealed table in ascending id order.
func (f *Factory) Snapshot() []Table {
	return f.tables.snapshot()
}

// SingleTable returns the contents of the only sealed table. It fails when
// the factory holds any other number of tables.
func (f *Factory) SingleTable() (*Contents, error) {
	tables := f.tables.snapshot()
	if len(tables) != 1 {
		return nil, fmt.Errorf("expected exactly one table, have %d: %w", len(tables), dberrors.ErrInvalidState)
	}
	return tables[0].Contents, nil
}

func readHeader(file io.ReaderAt) (types.TableID, error) {
	var header [HeaderSize]byte
	n, err := file.ReadAt(header[:], 0)
	if n < HeaderSize {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return 0, fmt.Errorf("failed to read mock table header (%d of %d bytes): %w: %w", n, HeaderSize, err, dberrors.ErrNotFound)
	}
	return types.TableID(binary.LittleEndian.Uint32(header[:])), nil
}
