// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package deleg

// Kind identifies the shape of the callable bound to a Delegate.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindStaticFunc
	KindFunc
	KindStaticMethod
	KindMethod
	KindStaticConstMethod
	KindConstMethod
	KindFunctor
)

var kindNames = [...]string{
	KindEmpty:             "empty",
	KindStaticFunc:        "static-func",
	KindFunc:              "func",
	KindStaticMethod:      "static-method",
	KindMethod:            "method",
	KindStaticConstMethod: "static-const-method",
	KindConstMethod:       "const-method",
	KindFunctor:           "functor",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Storage reports where a binding keeps its state.
type Storage uint8

const (
	// StorageNone: nothing is stored, the callable is fixed by type.
	StorageNone Storage = iota
	// StorageInline: state lives inside the Delegate value.
	StorageInline
	// StorageHeap: state lives in a block from the allocator strategy.
	StorageHeap
)

func (s Storage) String() string {
	switch s {
	case StorageNone:
		return "none"
	case StorageInline:
		return "inline"
	case StorageHeap:
		return "heap"
	default:
		return "unknown"
	}
}

// Delegate is a fixed-signature callable wrapper for func(A) R.
//
// The zero value is empty. A Delegate holding a heap-stored functor owns its
// block: duplicate it with Clone, transfer it with Move or Assign, and end it
// with Release. A plain Go copy of such a Delegate aliases the block.
//
// Delegate carries no synchronization; concurrent Invoke is as safe as the
// bound callable, mutation must be serialized by the caller.
type Delegate[A, R any] struct {
	th    thunk[A, R]
	c     cell
	alloc Allocator
}

// Action is a Delegate whose callable returns nothing.
type Action[A any] = Delegate[A, struct{}]

// IsEmpty reports whether no binding is active.
func (d *Delegate[A, R]) IsEmpty() bool { return d.th == nil }

// Kind returns the binding kind, KindEmpty if none.
func (d *Delegate[A, R]) Kind() Kind {
	if d.th == nil {
		return KindEmpty
	}
	return d.th.kind()
}

// Storage returns where the binding keeps its state.
func (d *Delegate[A, R]) Storage() Storage {
	if d.th == nil {
		return StorageNone
	}
	return d.th.mode()
}

// Invoke calls the bound callable with a.
// Panics with ErrInvalidBinding if the Delegate is empty.
func (d *Delegate[A, R]) Invoke(a A) R {
	if d.th == nil {
		panic(ErrInvalidBinding)
	}
	return d.th.invoke(&d.c, a)
}

// TryInvoke calls the bound callable with a.
// Returns (zero, ErrInvalidBinding) if the Delegate is empty.
func (d *Delegate[A, R]) TryInvoke(a A) (R, error) {
	if d.th == nil {
		var zero R
		return zero, ErrInvalidBinding
	}
	return d.th.invoke(&d.c, a), nil
}

// AsFunc returns a func value calling d.
// The func refers to d, not to a copy of its binding.
func (d *Delegate[A, R]) AsFunc() func(A) R { return d.Invoke }

// Clone returns an independent Delegate with the same binding.
// Heap-stored functors are copied into a fresh block, which may fail with
// ErrAllocationFailure.
func (d *Delegate[A, R]) Clone() (Delegate[A, R], error) {
	if d.th == nil {
		return Delegate[A, R]{}, nil
	}
	out := Delegate[A, R]{th: d.th, alloc: d.alloc}
	if err := d.th.clone(&out.c, &d.c, d.alloc); err != nil {
		return Delegate[A, R]{}, err
	}
	return out, nil
}

// Move transfers the binding to the returned Delegate and leaves d empty.
func (d *Delegate[A, R]) Move() Delegate[A, R] {
	out := *d
	*d = Delegate[A, R]{}
	return out
}

// Assign releases the current binding and takes ownership of src.
// src must not be used afterwards unless it was obtained by Clone.
func (d *Delegate[A, R]) Assign(src Delegate[A, R]) {
	if src.th == d.th && src.c == d.c {
		return
	}
	d.Release()
	*d = src
}

// Set releases the current binding and binds fn.
func (d *Delegate[A, R]) Set(fn func(A) R) {
	d.Assign(Make(fn))
}

// Release destroys the binding, returning any heap block to its allocator.
// d is empty afterwards; releasing an empty Delegate does nothing.
func (d *Delegate[A, R]) Release() {
	if d.th != nil {
		d.th.destroy(&d.c, d.alloc)
	}
	*d = Delegate[A, R]{}
}

// Same reports whether d and o hold the identical binding.
// Functor bindings are never the same as another Delegate's.
func (d *Delegate[A, R]) Same(o *Delegate[A, R]) bool {
	if d.th == nil || o.th == nil {
		return d.th == nil && o.th == nil
	}
	if d.th != o.th || d.th.kind() == KindFunctor {
		return false
	}
	return d.c == o.c
}
