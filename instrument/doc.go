// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package instrument decorates [deleg.Allocator] strategies with structured
// logging and Prometheus metrics.
//
// The decorators forward every request to the wrapped allocator and never
// change its decision:
//
//   - [Logged]: zerolog events per block
//   - [Metered]: counters for blocks, frees and failures, gauge for live bytes
package instrument
