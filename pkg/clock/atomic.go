package clock

import "sync/atomic"

// AtomicCounter hands out strictly increasing 32-bit values.
type AtomicCounter struct {
	atomic.Uint32
}

func NewAtomic(init uint32) *AtomicCounter {
	var ac AtomicCounter
	ac.Set(init)
	return &ac
}

func (ac *AtomicCounter) Val() uint32 {
	return ac.Load()
}

// Next returns the value following the last one handed out.
func (ac *AtomicCounter) Next() uint32 {
	return ac.Add(1)
}

func (ac *AtomicCounter) Set(v uint32) {
	ac.Store(v)
}
