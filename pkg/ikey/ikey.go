// Package ikey encodes internal keys: a user key followed by an 8-byte
// trailer packing the sequence number and the kind of the write.
//
//	+-------------+------------+----------+
//	| UserKey (N) | SeqNum (7) | Kind (1) |
//	+-------------+------------+----------+
//
// The trailer is stored little-endian. Internal keys order by user key
// ascending, then by trailer descending, so the newest version of a user key
// comes first.
package ikey

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"mocktable/pkg/dberrors"
	"mocktable/pkg/types"
)

// Kind enumerates the kind of write: a deletion tombstone, a put, a merge operand.
type Kind uint8

const (
	KindDelete Kind = iota
	KindPut
	KindMerge

	// KindSeek is the largest kind. A lookup key built with it sorts before
	// every entry of the same user key and sequence number.
	KindSeek = KindMerge
)

const (
	TrailerSize = 8

	// MaxSequenceNumber is the largest sequence number that fits in the trailer.
	MaxSequenceNumber types.SequenceNumber = 1<<56 - 1
)

func (k Kind) String() string {
	switch k {
	case KindDelete:
		return "DEL"
	case KindPut:
		return "PUT"
	case KindMerge:
		return "MERGE"
	default:
		return fmt.Sprintf("KIND(%d)", uint8(k))
	}
}

// ParsedKey is the decoded form of an internal key.
type ParsedKey struct {
	UserKey types.Key
	Seq     types.SequenceNumber
	Kind    Kind
}

func (p ParsedKey) String() string {
	return fmt.Sprintf("%q@%d#%s", p.UserKey, p.Seq, p.Kind)
}

// Comparator reports -1, 0 or +1 the way bytes.Compare does.
type Comparator func(a, b []byte) int

// Encode appends the trailer for seq and kind to a copy of userKey.
func Encode(userKey types.Key, seq types.SequenceNumber, kind Kind) types.Key {
	buf := make([]byte, len(userKey)+TrailerSize)
	copy(buf, userKey)
	binary.LittleEndian.PutUint64(buf[len(userKey):], packTrailer(seq, kind))
	return buf
}

// LookupKey returns the key a table lookup seeks to in order to find the
// newest version of userKey visible at seq.
func LookupKey(userKey types.Key, seq types.SequenceNumber) types.Key {
	return Encode(userKey, seq, KindSeek)
}

// Parse decodes an internal key. The returned user key aliases key.
func Parse(key []byte) (ParsedKey, error) {
	if len(key) < TrailerSize {
		return ParsedKey{}, fmt.Errorf("internal key too short (%d bytes): %w", len(key), dberrors.ErrCorruption)
	}

	n := len(key) - TrailerSize
	trailer := binary.LittleEndian.Uint64(key[n:])
	kind := Kind(trailer & 0xff)
	if kind > KindSeek {
		return ParsedKey{}, fmt.Errorf("unknown key kind %d: %w", uint8(kind), dberrors.ErrCorruption)
	}

	return ParsedKey{
		UserKey: key[:n],
		Seq:     types.SequenceNumber(trailer >> 8),
		Kind:    kind,
	}, nil
}

// UserKey strips the trailer. Keys shorter than a trailer are returned whole.
func UserKey(key []byte) types.Key {
	if len(key) < TrailerSize {
		return key
	}
	return key[:len(key)-TrailerSize]
}

// Compare orders internal keys with a bytewise user-key order.
func Compare(a, b []byte) int {
	return compare(bytes.Compare, a, b)
}

// NewComparator returns an internal-key comparator over the given user-key order.
func NewComparator(user Comparator) Comparator {
	if user == nil {
		return Compare
	}
	return func(a, b []byte) int {
		return compare(user, a, b)
	}
}

// compare treats keys shorter than a trailer as bare user keys with a zero
// trailer. Ties involving such a key are broken on the raw bytes, so a
// malformed key never compares equal to a well-formed one.
func compare(user Comparator, a, b []byte) int {
	ua, ta := split(a)
	ub, tb := split(b)
	if c := user(ua, ub); c != 0 {
		return c
	}
	switch {
	case ta > tb:
		return -1
	case ta < tb:
		return 1
	case len(a) < TrailerSize || len(b) < TrailerSize:
		return bytes.Compare(a, b)
	default:
		return 0
	}
}

func split(key []byte) ([]byte, uint64) {
	if len(key) < TrailerSize {
		return key, 0
	}
	n := len(key) - TrailerSize
	return key[:n], binary.LittleEndian.Uint64(key[n:])
}

func packTrailer(seq types.SequenceNumber, kind Kind) uint64 {
	return uint64(seq)<<8 | uint64(kind)
}
