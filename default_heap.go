// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !deleg_bypass

package deleg

// DefaultAllocator returns the strategy used by [MakeFunctor].
// Build with the deleg_bypass tag to forbid heap blocks program-wide.
func DefaultAllocator() Allocator { return Heap{} }
