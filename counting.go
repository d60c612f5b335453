// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package deleg

import (
	"sync/atomic"
	"unsafe"
)

// Counting is an Allocator that tracks the blocks passing through
// another Allocator. It is safe for concurrent use.
type Counting struct {
	next     Allocator
	allocs   atomic.Int64
	frees    atomic.Int64
	failures atomic.Int64
	bytes    atomic.Int64
}

// NewCounting wraps next; a nil next means Heap.
func NewCounting(next Allocator) *Counting {
	if next == nil {
		next = Heap{}
	}
	return &Counting{next: next}
}

func (c *Counting) Allocate(l Layout) (unsafe.Pointer, error) {
	p, err := c.next.Allocate(l)
	if err != nil || p == nil {
		c.failures.Add(1)
		return p, err
	}
	c.allocs.Add(1)
	c.bytes.Add(int64(l.Size))
	return p, nil
}

func (c *Counting) Deallocate(p unsafe.Pointer, l Layout) {
	c.next.Deallocate(p, l)
	c.frees.Add(1)
	c.bytes.Add(-int64(l.Size))
}

// Allocs returns the number of blocks handed out.
func (c *Counting) Allocs() int64 { return c.allocs.Load() }

// Frees returns the number of blocks returned.
func (c *Counting) Frees() int64 { return c.frees.Load() }

// Failures returns the number of declined requests.
func (c *Counting) Failures() int64 { return c.failures.Load() }

// Live returns the number of blocks currently outstanding.
func (c *Counting) Live() int64 { return c.allocs.Load() - c.frees.Load() }

// LiveBytes returns the bytes currently outstanding.
func (c *Counting) LiveBytes() int64 { return c.bytes.Load() }
