package table

import (
	"bytes"

	"mocktable/pkg/ikey"
	"mocktable/pkg/types"
)

type GetState uint8

const (
	GetNotFound GetState = iota
	GetFound
	GetDeleted
	GetMerge
)

func (s GetState) String() string {
	switch s {
	case GetFound:
		return "found"
	case GetDeleted:
		return "deleted"
	case GetMerge:
		return "merge"
	default:
		return "not found"
	}
}

// GetContext resolves a single user key from the entries a Reader offers.
// Its SaveValue method is a Sink.
type GetContext struct {
	userCmp ikey.Comparator
	userKey types.Key

	state GetState
	value types.Value
}

// NewGetContext creates a context looking for userKey. A nil userCmp means bytewise order.
func NewGetContext(userCmp ikey.Comparator, userKey types.Key) *GetContext {
	if userCmp == nil {
		userCmp = bytes.Compare
	}
	return &GetContext{
		userCmp: userCmp,
		userKey: userKey,
	}
}

// SaveValue records the newest version of the user key. Entries are offered
// newest first, so the first entry of the user key decides the outcome.
func (g *GetContext) SaveValue(key ikey.ParsedKey, value types.Value) bool {
	if g.userCmp(key.UserKey, g.userKey) != 0 {
		return false
	}

	switch key.Kind {
	case ikey.KindPut:
		g.state = GetFound
		g.value = append([]byte(nil), value...)
	case ikey.KindDelete:
		g.state = GetDeleted
	case ikey.KindMerge:
		// operands are resolved by the engine's merge operator
		g.state = GetMerge
		g.value = append([]byte(nil), value...)
	}
	return false
}

func (g *GetContext) State() GetState {
	return g.state
}

// Value is the resolved value when State is GetFound, or the merge operand for GetMerge.
func (g *GetContext) Value() types.Value {
	return g.value
}
