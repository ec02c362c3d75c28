package types

// Key is an immutable byte slice type alias used for clarity.
type Key = []byte

// Value is an immutable byte slice type alias used for clarity.
type Value = []byte

// SequenceNumber orders versions of the same user key. Newer writes carry larger numbers.
type SequenceNumber uint64

// TableID identifies one sealed table within a table factory.
type TableID uint32
