// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package deleg

import (
	"reflect"
	"sync"
	"unsafe"
)

// Layout describes a block requested for functor state that does not fit
// the inline buffer.
type Layout struct {
	// Size and Align of the stored value in bytes.
	Size  uintptr
	Align uintptr

	// Pointers reports whether the value contains pointers. Blocks for such
	// values must be GC-visible memory obtained through [Layout.New].
	Pointers bool

	newf func() unsafe.Pointer
}

// New allocates a zeroed, correctly typed block for the layout on the Go heap.
// Allocators that do not manage the memory themselves fall back to New.
func (l Layout) New() unsafe.Pointer {
	return l.newf()
}

// Allocator supplies and releases heap blocks for oversized functor state.
//
// Allocate returns a block of at least l.Size bytes aligned to l.Align, or an
// error when it declines. Deallocate is called exactly once per block
// returned by Allocate, with the same layout.
type Allocator interface {
	Allocate(l Layout) (unsafe.Pointer, error)
	Deallocate(p unsafe.Pointer, l Layout)
}

// Heap allocates typed blocks on the Go heap and leaves them to the GC.
type Heap struct{}

func (Heap) Allocate(l Layout) (unsafe.Pointer, error) { return l.New(), nil }

func (Heap) Deallocate(unsafe.Pointer, Layout) {}

// Bypass declines every allocation. Functors bound under Bypass must fit
// the inline buffer or construction fails with [ErrAllocationFailure].
type Bypass struct{}

func (Bypass) Allocate(Layout) (unsafe.Pointer, error) { return nil, ErrAllocationFailure }

func (Bypass) Deallocate(unsafe.Pointer, Layout) {}

// typedNew is the block constructor for F.
func typedNew[F any]() unsafe.Pointer { return unsafe.Pointer(new(F)) }

// pointerCache memoizes hasPointers per type; the reflect walk allocates.
var pointerCache sync.Map

func layoutOf[F any]() Layout {
	t := reflect.TypeFor[F]()
	p, ok := pointerCache.Load(t)
	if !ok {
		p, _ = pointerCache.LoadOrStore(t, hasPointers(t))
	}
	return Layout{
		Size:     t.Size(),
		Align:    uintptr(t.Align()),
		Pointers: p.(bool),
	}
}

// blockLayout is layoutOf with the typed constructor attached, for the
// paths that actually request a block.
func blockLayout[F any]() Layout {
	l := layoutOf[F]()
	l.newf = typedNew[F]
	return l
}

func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return true
	}
}
