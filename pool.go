// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package deleg

import (
	"sync"
	"unsafe"
)

// Block pools for pointer-free functor state.
// Blocks are word slabs the GC never scans, so only layouts without
// pointers may live in them. Released blocks are zeroed before reuse.

var poolClasses = [...]uintptr{64, 128, 256, 512, 1024, 2048, 4096}

// Pool is an Allocator recycling pointer-free blocks by size class.
// Layouts with pointers, stricter alignment than a word, or larger than
// the biggest class are served by [Layout.New] and left to the GC.
// Pool is safe for concurrent use.
type Pool struct {
	classes [len(poolClasses)]sync.Pool
}

// NewPool returns an empty Pool.
func NewPool() *Pool {
	p := &Pool{}
	for i := range p.classes {
		words := poolClasses[i] / wordSize
		p.classes[i].New = func() any {
			return unsafe.Pointer(unsafe.SliceData(make([]uintptr, words)))
		}
	}
	return p
}

// classOf returns the size class serving l, or -1 if l is not pooled.
func classOf(l Layout) int {
	if l.Pointers || l.Align > wordAlign {
		return -1
	}
	for i, size := range poolClasses {
		if l.Size <= size {
			return i
		}
	}
	return -1
}

// Allocate acquires a zeroed block for l.
func (p *Pool) Allocate(l Layout) (unsafe.Pointer, error) {
	i := classOf(l)
	if i < 0 {
		return l.New(), nil
	}
	return p.classes[i].Get().(unsafe.Pointer), nil
}

// Deallocate zeroes a pooled block and returns it to its class; no-op for
// blocks served by the Go heap.
func (p *Pool) Deallocate(b unsafe.Pointer, l Layout) {
	i := classOf(l)
	if i < 0 || b == nil {
		return
	}
	clear(unsafe.Slice((*uintptr)(b), poolClasses[i]/wordSize))
	p.classes[i].Put(b)
}
