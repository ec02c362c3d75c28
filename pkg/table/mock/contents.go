package mock

import (
	"sort"

	"mocktable/pkg/ikey"
	"mocktable/pkg/types"
)

// Contents is the sealed content of one mock table: entries ordered by the
// factory's comparator. It is never mutated once sealed, so any number of
// readers may share it without locking.
type Contents struct {
	cmp    ikey.Comparator
	keys   []types.Key
	values []types.Value
}

func (c *Contents) Len() int {
	return len(c.keys)
}

func (c *Contents) Key(i int) types.Key {
	return c.keys[i]
}

func (c *Contents) Value(i int) types.Value {
	return c.values[i]
}

// search returns the index of the first entry >= target, or Len when there is none.
func (c *Contents) search(target types.Key) int {
	return sort.Search(len(c.keys), func(i int) bool {
		return c.cmp(c.keys[i], target) >= 0
	})
}

// Map returns a copy of the contents keyed by the raw encoded key.
func (c *Contents) Map() map[string]string {
	m := make(map[string]string, len(c.keys))
	for i, k := range c.keys {
		m[string(k)] = string(c.values[i])
	}
	return m
}

// Equal reports whether the contents hold exactly the given entries.
func (c *Contents) Equal(want map[string]string) bool {
	if len(want) != len(c.keys) {
		return false
	}
	for i, k := range c.keys {
		v, ok := want[string(k)]
		if !ok || v != string(c.values[i]) {
			return false
		}
	}
	return true
}

func (c *Contents) rawSize() (keys, values uint64) {
	for i := range c.keys {
		keys += uint64(len(c.keys[i]))
		values += uint64(len(c.values[i]))
	}
	return keys, values
}
