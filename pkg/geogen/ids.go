package geogen

import (
	"sync/atomic"
)

// IDAllocator hands out monotonically increasing object ids. Every
// component that builds configurations owns its own allocator; ids are
// unique per allocator, also when several goroutines share it.
type IDAllocator struct {
	id int64
}

func NewIDAllocator() *IDAllocator {
	return &IDAllocator{}
}

func (a *IDAllocator) Next() ObjectID {
	return ObjectID(atomic.AddInt64(&a.id, 1))
}
