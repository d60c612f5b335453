// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package deleg

import "unsafe"

const (
	wordSize    = unsafe.Sizeof(uintptr(0))
	wordAlign   = unsafe.Alignof(uintptr(0))
	inlineWords = 4

	// InlineSize is the capacity in bytes of the inline buffer for
	// pointer-free functor state.
	InlineSize = inlineWords * wordSize
)

// cell is the storage of one binding.
//
// ref and aux are GC-visible: ref holds the bound object, a pointer-shaped
// functor, or the heap block; aux holds a func value. words holds
// pointer-free functor state and is never scanned.
type cell struct {
	ref   unsafe.Pointer
	aux   unsafe.Pointer
	words [inlineWords]uintptr
}

// thunk is the per-kind code path of a binding.
// Implementations are zero-size generic types, so storing one in a
// Delegate does not allocate and the compiler-built itab is the
// operation table.
type thunk[A, R any] interface {
	kind() Kind
	mode() Storage
	invoke(c *cell, a A) R
	clone(dst, src *cell, alloc Allocator) error
	destroy(c *cell, alloc Allocator)
}

// trivial supplies clone and destroy for bindings whose state is plain
// pointers or pointer-free words.
type trivial struct{}

func (trivial) clone(dst, src *cell, _ Allocator) error {
	*dst = *src
	return nil
}

func (trivial) destroy(c *cell, _ Allocator) { *c = cell{} }

// funcSlot reinterprets a pointer slot as a func value of type Fn.
// A func value is a single pointer to its funcval.
func funcSlot[Fn any](p *unsafe.Pointer) *Fn { return (*Fn)(unsafe.Pointer(p)) }

// a. free function chosen by type.

type staticFuncThunk[A, R any, F Callable[A, R]] struct{ trivial }

func (staticFuncThunk[A, R, F]) kind() Kind    { return KindStaticFunc }
func (staticFuncThunk[A, R, F]) mode() Storage { return StorageNone }

func (staticFuncThunk[A, R, F]) invoke(_ *cell, a A) R {
	var f F
	return f.Call(a)
}

// b. free function or closure held as a func value in aux.

type funcThunk[A, R any] struct{ trivial }

func (funcThunk[A, R]) kind() Kind    { return KindFunc }
func (funcThunk[A, R]) mode() Storage { return StorageInline }

func (funcThunk[A, R]) invoke(c *cell, a A) R {
	return (*funcSlot[func(A) R](&c.aux))(a)
}

// c. method chosen by selector type, object in ref.

type staticMethodThunk[A, R any, M Method[T, A, R], T any] struct{ trivial }

func (staticMethodThunk[A, R, M, T]) kind() Kind    { return KindStaticMethod }
func (staticMethodThunk[A, R, M, T]) mode() Storage { return StorageInline }

func (staticMethodThunk[A, R, M, T]) invoke(c *cell, a A) R {
	var m M
	return m.Call((*T)(c.ref), a)
}

// d. method expression in aux, object in ref.

type methodThunk[A, R, T any] struct{ trivial }

func (methodThunk[A, R, T]) kind() Kind    { return KindMethod }
func (methodThunk[A, R, T]) mode() Storage { return StorageInline }

func (methodThunk[A, R, T]) invoke(c *cell, a A) R {
	return (*funcSlot[func(*T, A) R](&c.aux))((*T)(c.ref), a)
}

// e. value-receiver forms of c and d: the object is read, never written.

type staticConstMethodThunk[A, R any, M ConstMethod[T, A, R], T any] struct{ trivial }

func (staticConstMethodThunk[A, R, M, T]) kind() Kind    { return KindStaticConstMethod }
func (staticConstMethodThunk[A, R, M, T]) mode() Storage { return StorageInline }

func (staticConstMethodThunk[A, R, M, T]) invoke(c *cell, a A) R {
	var m M
	return m.Call(*(*T)(c.ref), a)
}

type constMethodThunk[A, R, T any] struct{ trivial }

func (constMethodThunk[A, R, T]) kind() Kind    { return KindConstMethod }
func (constMethodThunk[A, R, T]) mode() Storage { return StorageInline }

func (constMethodThunk[A, R, T]) invoke(c *cell, a A) R {
	return (*funcSlot[func(T, A) R](&c.aux))(*(*T)(c.ref), a)
}

// f. functor values, one thunk per storage location.

// functorEmpty calls a zero-size functor; nothing is stored.
type functorEmpty[A, R any, F Callable[A, R]] struct{ trivial }

func (functorEmpty[A, R, F]) kind() Kind    { return KindFunctor }
func (functorEmpty[A, R, F]) mode() Storage { return StorageInline }

func (functorEmpty[A, R, F]) invoke(_ *cell, a A) R {
	var f F
	return f.Call(a)
}

// functorRef holds a pointer-shaped functor in ref.
type functorRef[A, R any, F Callable[A, R]] struct{ trivial }

func (functorRef[A, R, F]) kind() Kind    { return KindFunctor }
func (functorRef[A, R, F]) mode() Storage { return StorageInline }

func (functorRef[A, R, F]) invoke(c *cell, a A) R {
	return (*(*F)(unsafe.Pointer(&c.ref))).Call(a)
}

// functorWords holds pointer-free functor state in the word buffer.
type functorWords[A, R any, F Callable[A, R]] struct{ trivial }

func (functorWords[A, R, F]) kind() Kind    { return KindFunctor }
func (functorWords[A, R, F]) mode() Storage { return StorageInline }

func (functorWords[A, R, F]) invoke(c *cell, a A) R {
	return (*(*F)(unsafe.Pointer(&c.words))).Call(a)
}

// functorHeap holds the functor in an allocator block referenced by ref.
// The block is owned by exactly one cell.
type functorHeap[A, R any, F Callable[A, R]] struct{}

func (functorHeap[A, R, F]) kind() Kind    { return KindFunctor }
func (functorHeap[A, R, F]) mode() Storage { return StorageHeap }

func (functorHeap[A, R, F]) invoke(c *cell, a A) R {
	return (*(*F)(c.ref)).Call(a)
}

func (functorHeap[A, R, F]) clone(dst, src *cell, alloc Allocator) error {
	l := blockLayout[F]()
	p, err := alloc.Allocate(l)
	if err != nil {
		return allocationError(l, err)
	}
	if p == nil {
		return allocationError(l, nil)
	}
	*(*F)(p) = *(*F)(src.ref)
	*dst = cell{ref: p}
	return nil
}

func (functorHeap[A, R, F]) destroy(c *cell, alloc Allocator) {
	p := c.ref
	*c = cell{}
	if p != nil {
		alloc.Deallocate(p, blockLayout[F]())
	}
}
