package mock

import (
	"fmt"
	"sync"

	"mocktable/pkg/dberrors"
	"mocktable/pkg/types"

	"github.com/google/btree"
)

const registryDegree = 8

// Table is one registry entry as returned by Factory.Snapshot.
type Table struct {
	ID       types.TableID
	Contents *Contents
}

// registry maps table ids to sealed contents. Every access holds mu; no I/O
// happens under it.
type registry struct {
	mu     sync.Mutex
	tables *btree.BTreeG[Table]
}

func newRegistry() *registry {
	return &registry{
		tables: btree.NewG[Table](registryDegree, func(a, b Table) bool {
			return a.ID < b.ID
		}),
	}
}

func (r *registry) insert(id types.TableID, contents *Contents) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.tables.Has(Table{ID: id}) {
		return fmt.Errorf("table %d already sealed: %w", id, dberrors.ErrInvalidState)
	}
	r.tables.ReplaceOrInsert(Table{ID: id, Contents: contents})
	return nil
}

func (r *registry) lookup(id types.TableID) (*Contents, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tables.Get(Table{ID: id})
	if !ok {
		return nil, false
	}
	return t.Contents, true
}

func (r *registry) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.tables.Len()
}

// snapshot lists the tables in ascending id order.
func (r *registry) snapshot() []Table {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]Table, 0, r.tables.Len())
	r.tables.Ascend(func(t Table) bool {
		result = append(result, t)
		return true
	})
	return result
}
