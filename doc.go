// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package deleg provides allocation-conscious delegates in Go.
//
// A [Delegate] stores one callable of shape func(A) R behind a uniform
// handle: a free function, a bound method, a functor value, or a capturing
// closure. Framework code registers user logic as delegates and calls back
// into it later without knowing the concrete callable.
//
// # Design Philosophy
//
// deleg provides:
//   - One fixed-signature handle for every callable shape
//   - Compile-time binding through zero-size selector types, with no data
//     read per call
//   - No mandatory heap allocation: small functor state lives in an inline
//     buffer, oversized state goes through a pluggable [Allocator]
//
// Multiple arguments are passed as a struct; callables without a result use
// R = struct{} (see [Action]).
//
// # Binding Kinds
//
// Compile-time bound (the callable is part of the type):
//
//   - [MakeStatic]: free function selected by a zero-size [Callable] type
//   - [MakeStaticMethod]: pointer-receiver method selected by a [Method] type
//   - [MakeStaticConstMethod]: value-receiver method selected by a [ConstMethod] type
//
// Runtime bound (the callable is a value):
//
//   - [Make]: func value, top-level function or capturing closure
//   - [MakeMethod]: object pointer plus method expression (*T).M
//   - [MakeConstMethod]: object pointer plus method expression T.M
//
// Functor values:
//
//   - [MakeFunctor]: any [Callable] value, stored with [DefaultAllocator]
//   - [MakeFunctorWith]: the same with an explicit [Allocator]
//   - [Func]: adapts a closure to [Callable]
//
// Bound objects are never owned: a Delegate does not extend the lifetime of
// the object it calls. Binding a nil object or function panics with
// [ErrNilTarget].
//
// # Delegate Lifecycle
//
//   - [Delegate.Invoke]: Call the binding (panics with [ErrInvalidBinding] when empty)
//   - [Delegate.TryInvoke]: Non-panicking variant
//   - [Delegate.IsEmpty], [Delegate.Kind], [Delegate.Storage]: Queries
//   - [Delegate.Clone]: Independent copy; heap state gets a fresh block
//   - [Delegate.Move]: Transfer, leaving the source empty
//   - [Delegate.Assign], [Delegate.Set]: Release the current binding, install another
//   - [Delegate.Release]: Destroy the binding, returning heap state to its allocator
//
// The zero value is empty. A moved-from or released Delegate is empty.
//
// # Storage
//
// Functor state is placed at construction and never moves:
//
//   - zero-size functors store nothing
//   - pointer-shaped functors (pointers, funcs, maps, chans) use a reference slot
//   - pointer-free functors up to [InlineSize] bytes use the word buffer
//   - anything else is placed in a block from the [Allocator]
//
// Closures are func values and therefore always inline; the Go compiler owns
// their captured variables.
//
// # Allocators
//
//   - [Heap]: typed blocks on the Go heap (default)
//   - [Bypass]: declines every block; oversized functors fail with [ErrAllocationFailure]
//   - [Pool]: recycles pointer-free blocks by size class
//   - [Counting]: tracks blocks passing through another allocator
//
// Building with the deleg_bypass tag makes [DefaultAllocator] return
// [Bypass], for programs whose hot paths must not allocate.
//
// # One-Shot Delegates
//
// [OnceDelegate] wraps a Delegate with one-shot enforcement:
//
//   - [Once]: Create a one-shot delegate
//   - [OnceDelegate.Invoke]: Invoke (panics on reuse)
//   - [OnceDelegate.TryInvoke]: Non-panicking variant
//   - [OnceDelegate.Discard]: Drop without invoking
//
// # Example
//
//	type Adder struct{ X int }
//	func (a *Adder) Add(v int) int { return v + a.X }
//
//	a := &Adder{X: 2}
//	d := deleg.MakeMethod(a, (*Adder).Add)
//	result := d.Invoke(40)
//	// result == 42
package deleg
