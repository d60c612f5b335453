// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package deleg

import (
	"sync/atomic"
)

// OnceDelegate wraps a Delegate with one-shot enforcement.
// The binding can be invoked at most once; subsequent attempts
// panic (Invoke) or return false (TryInvoke). The binding is released
// after its single use.
//
// OnceDelegate fits completion callbacks that must not fire twice.
// Unlike Delegate, it is safe for concurrent use.
type OnceDelegate[A, R any] struct {
	used atomic.Uintptr
	d    Delegate[A, R]
}

// Once takes ownership of d and returns a one-shot wrapper around it.
func Once[A, R any](d Delegate[A, R]) *OnceDelegate[A, R] {
	return &OnceDelegate[A, R]{d: d}
}

// Invoke calls the binding with a.
// Panics if the OnceDelegate has already been used, or with
// ErrInvalidBinding if the wrapped Delegate is empty.
func (o *OnceDelegate[A, R]) Invoke(a A) R {
	if o.used.Add(1) != 1 {
		panic("deleg: once delegate invoked twice")
	}
	defer o.d.Release()
	return o.d.Invoke(a)
}

// TryInvoke attempts to call the binding.
// Returns (result, true) on success, or (zero, false) if already used or
// the wrapped Delegate is empty.
func (o *OnceDelegate[A, R]) TryInvoke(a A) (R, bool) {
	if o.used.Add(1) != 1 {
		var zero R
		return zero, false
	}
	defer o.d.Release()
	r, err := o.d.TryInvoke(a)
	return r, err == nil
}

// Discard marks the OnceDelegate as used and releases the binding
// without invoking it.
func (o *OnceDelegate[A, R]) Discard() {
	if o.used.Add(1) == 1 {
		o.d.Release()
	}
}

// Used reports whether the OnceDelegate has been invoked or discarded.
func (o *OnceDelegate[A, R]) Used() bool {
	return o.used.Load() != 0
}
