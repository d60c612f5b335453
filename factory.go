// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package deleg

import "unsafe"

// Callable is implemented by functors and by the zero-size types that
// select a free function at compile time.
type Callable[A, R any] interface {
	Call(a A) R
}

// Method is implemented by zero-size selector types naming a
// pointer-receiver method of T at compile time.
//
//	type addX struct{}
//	func (addX) Call(o *Adder, a int) int { return o.Add(a) }
type Method[T, A, R any] interface {
	Call(obj *T, a A) R
}

// ConstMethod is the value-receiver counterpart of Method.
type ConstMethod[T, A, R any] interface {
	Call(obj T, a A) R
}

// Func adapts a func value to Callable, so closures can go through
// MakeFunctor like any other functor.
type Func[A, R any] func(A) R

func (f Func[A, R]) Call(a A) R { return f(a) }

// MakeStatic binds the free function selected by F.
// F's zero value is called; nothing is stored and no data is read per call.
func MakeStatic[A, R any, F Callable[A, R]]() Delegate[A, R] {
	return Delegate[A, R]{th: staticFuncThunk[A, R, F]{}}
}

// Make binds a function value: a top-level function, a method value, or a
// capturing closure. Captured state travels with fn.
// Panics with ErrNilTarget if fn is nil.
func Make[A, R any](fn func(A) R) Delegate[A, R] {
	mustTarget(fn != nil)
	d := Delegate[A, R]{th: funcThunk[A, R]{}}
	*funcSlot[func(A) R](&d.c.aux) = fn
	return d
}

// MakeStaticMethod binds the method selected by M on obj.
// The Delegate does not own obj and does not extend its lifetime.
// Panics with ErrNilTarget if obj is nil.
func MakeStaticMethod[A, R any, M Method[T, A, R], T any](obj *T) Delegate[A, R] {
	mustTarget(obj != nil)
	return Delegate[A, R]{
		th: staticMethodThunk[A, R, M, T]{},
		c:  cell{ref: unsafe.Pointer(obj)},
	}
}

// MakeStaticConstMethod binds the value-receiver method selected by M on obj.
// Each call reads *obj at call time.
func MakeStaticConstMethod[A, R any, M ConstMethod[T, A, R], T any](obj *T) Delegate[A, R] {
	mustTarget(obj != nil)
	return Delegate[A, R]{
		th: staticConstMethodThunk[A, R, M, T]{},
		c:  cell{ref: unsafe.Pointer(obj)},
	}
}

// MakeMethod binds the method expression m, e.g. (*T).Name, on obj.
// Panics with ErrNilTarget if obj or m is nil.
func MakeMethod[A, R, T any](obj *T, m func(*T, A) R) Delegate[A, R] {
	mustTarget(obj != nil && m != nil)
	d := Delegate[A, R]{
		th: methodThunk[A, R, T]{},
		c:  cell{ref: unsafe.Pointer(obj)},
	}
	*funcSlot[func(*T, A) R](&d.c.aux) = m
	return d
}

// MakeConstMethod binds the value-receiver method expression m, e.g. T.Name,
// on obj. Each call reads *obj at call time.
func MakeConstMethod[A, R, T any](obj *T, m func(T, A) R) Delegate[A, R] {
	mustTarget(obj != nil && m != nil)
	d := Delegate[A, R]{
		th: constMethodThunk[A, R, T]{},
		c:  cell{ref: unsafe.Pointer(obj)},
	}
	*funcSlot[func(T, A) R](&d.c.aux) = m
	return d
}

// MakeFunctor binds a copy of f using DefaultAllocator for oversized state.
func MakeFunctor[A, R any, F Callable[A, R]](f F) (Delegate[A, R], error) {
	return MakeFunctorWith[A, R](DefaultAllocator(), f)
}

// MakeFunctorWith binds a copy of f.
//
// f is stored inline when it is zero-size, pointer-shaped, or pointer-free
// and at most InlineSize bytes; otherwise alloc supplies a block. A nil
// alloc means DefaultAllocator. Fails with ErrAllocationFailure if alloc
// declines.
func MakeFunctorWith[A, R any, F Callable[A, R]](alloc Allocator, f F) (Delegate[A, R], error) {
	l := layoutOf[F]()
	var d Delegate[A, R]
	switch {
	case l.Size == 0:
		d.th = functorEmpty[A, R, F]{}
	case l.Pointers && l.Size == wordSize:
		d.th = functorRef[A, R, F]{}
		*(*F)(unsafe.Pointer(&d.c.ref)) = f
	case !l.Pointers && l.Size <= InlineSize && l.Align <= wordAlign:
		d.th = functorWords[A, R, F]{}
		*(*F)(unsafe.Pointer(&d.c.words)) = f
	default:
		if alloc == nil {
			alloc = DefaultAllocator()
		}
		l = blockLayout[F]()
		p, err := alloc.Allocate(l)
		if err != nil {
			return Delegate[A, R]{}, allocationError(l, err)
		}
		if p == nil {
			return Delegate[A, R]{}, allocationError(l, nil)
		}
		*(*F)(p) = f
		d.th = functorHeap[A, R, F]{}
		d.c.ref = p
		d.alloc = alloc
	}
	return d, nil
}
