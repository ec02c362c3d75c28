package ikey_test

import (
	"bytes"
	"sort"
	"testing"

	"mocktable/pkg/dberrors"
	"mocktable/pkg/ikey"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeParse(t *testing.T) {
	key := ikey.Encode([]byte("user"), 42, ikey.KindPut)
	require.Len(t, key, len("user")+ikey.TrailerSize)

	parsed, err := ikey.Parse(key)
	require.NoError(t, err)
	assert.Equal(t, []byte("user"), parsed.UserKey)
	assert.Equal(t, uint64(42), uint64(parsed.Seq))
	assert.Equal(t, ikey.KindPut, parsed.Kind)
	assert.Equal(t, []byte("user"), ikey.UserKey(key))
}

func TestParse_Corruption(t *testing.T) {
	tests := []struct {
		name string
		key  []byte
	}{
		{name: "empty", key: nil},
		{name: "short", key: []byte("k1")},
		{name: "unknown kind", key: append([]byte("k"), 0xff, 0, 0, 0, 0, 0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ikey.Parse(tt.key)
			require.ErrorIs(t, err, dberrors.ErrCorruption)
		})
	}
}

func TestCompare_Order(t *testing.T) {
	want := [][]byte{
		ikey.Encode([]byte("a"), 9, ikey.KindPut),
		ikey.Encode([]byte("a"), 3, ikey.KindDelete),
		ikey.Encode([]byte("a"), 1, ikey.KindPut),
		ikey.Encode([]byte("ab"), 5, ikey.KindPut),
		ikey.Encode([]byte("b"), 100, ikey.KindMerge),
		ikey.Encode([]byte("b"), 100, ikey.KindPut),
	}

	got := make([][]byte, 0, len(want))
	for i := len(want) - 1; i >= 0; i-- {
		got = append(got, want[i])
	}
	sort.Slice(got, func(i, j int) bool { return ikey.Compare(got[i], got[j]) < 0 })

	assert.Equal(t, want, got)
}

func TestLookupKey_SortsBeforeVisibleVersions(t *testing.T) {
	lookup := ikey.LookupKey([]byte("a"), 5)

	assert.Less(t, ikey.Compare(lookup, ikey.Encode([]byte("a"), 5, ikey.KindPut)), 0)
	assert.Less(t, ikey.Compare(lookup, ikey.Encode([]byte("a"), 4, ikey.KindDelete)), 0)
	assert.Greater(t, ikey.Compare(lookup, ikey.Encode([]byte("a"), 6, ikey.KindPut)), 0)
	assert.Less(t, ikey.Compare(lookup, ikey.Encode([]byte("b"), ikey.MaxSequenceNumber, ikey.KindPut)), 0)
}

func TestCompare_ShortKeysAreTotal(t *testing.T) {
	short := []byte("b\x00")
	full := ikey.Encode([]byte("a"), 1, ikey.KindPut)

	assert.Greater(t, ikey.Compare(short, full), 0)
	assert.Less(t, ikey.Compare(full, short), 0)
	assert.Equal(t, 0, ikey.Compare(short, []byte("b\x00")))
}

func TestCompare_ShortKeyDistinctFromZeroTrailer(t *testing.T) {
	short := []byte("abc")
	full := ikey.Encode([]byte("abc"), 0, ikey.KindDelete)

	assert.Less(t, ikey.Compare(short, full), 0)
	assert.Greater(t, ikey.Compare(full, short), 0)
}

func TestNewComparator_UserOrder(t *testing.T) {
	reverse := ikey.NewComparator(func(a, b []byte) int { return bytes.Compare(b, a) })

	a := ikey.Encode([]byte("a"), 1, ikey.KindPut)
	b := ikey.Encode([]byte("b"), 1, ikey.KindPut)
	assert.Greater(t, reverse(a, b), 0)
	assert.Equal(t, ikey.Compare(a, b), ikey.NewComparator(nil)(a, b))
}
