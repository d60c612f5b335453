// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package deleg

import (
	"errors"
	"fmt"
)

// ErrInvalidBinding is reported when an empty or moved-from Delegate is invoked.
// Invoke panics with this value; TryInvoke returns it.
var ErrInvalidBinding = errors.New("deleg: invoke on empty delegate")

// ErrAllocationFailure is returned when a functor does not fit the inline
// buffer and the allocator strategy cannot, or must not, supply a block.
var ErrAllocationFailure = errors.New("deleg: allocation failure")

// ErrNilTarget is the panic value for binding a nil object or nil function.
// This is a precondition violation, never returned as an error.
var ErrNilTarget = errors.New("deleg: nil bind target")

// allocationError wraps ErrAllocationFailure with the offending layout.
func allocationError(l Layout, cause error) error {
	if cause == nil || errors.Is(cause, ErrAllocationFailure) {
		return fmt.Errorf("%w: size=%d align=%d", ErrAllocationFailure, l.Size, l.Align)
	}
	return fmt.Errorf("%w: size=%d align=%d: %w", ErrAllocationFailure, l.Size, l.Align, cause)
}

// mustTarget panics with ErrNilTarget if ok is false.
func mustTarget(ok bool) {
	if !ok {
		panic(ErrNilTarget)
	}
}
