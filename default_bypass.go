// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build deleg_bypass

package deleg

// DefaultAllocator returns the strategy used by [MakeFunctor].
// This build forbids heap blocks: oversized functors fail to bind.
func DefaultAllocator() Allocator { return Bypass{} }
