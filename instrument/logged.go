// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package instrument

import (
	"unsafe"

	"github.com/rs/zerolog"

	"code.hybscloud.com/deleg"
)

// LoggedAllocator logs each block at debug level and each declined
// request at warn level.
type LoggedAllocator struct {
	next deleg.Allocator
	log  zerolog.Logger
}

// Logged wraps next with logger; a nil next means deleg.Heap.
func Logged(next deleg.Allocator, logger zerolog.Logger) *LoggedAllocator {
	if next == nil {
		next = deleg.Heap{}
	}
	return &LoggedAllocator{
		next: next,
		log:  logger.With().Str("component", "deleg.alloc").Logger(),
	}
}

func (a *LoggedAllocator) Allocate(l deleg.Layout) (unsafe.Pointer, error) {
	p, err := a.next.Allocate(l)
	if err != nil {
		a.log.Warn().Err(err).
			Uint64("size", uint64(l.Size)).
			Uint64("align", uint64(l.Align)).
			Bool("pointers", l.Pointers).
			Msg("allocation declined")
		return p, err
	}
	a.log.Debug().
		Uint64("size", uint64(l.Size)).
		Uint64("align", uint64(l.Align)).
		Bool("pointers", l.Pointers).
		Msg("block allocated")
	return p, nil
}

func (a *LoggedAllocator) Deallocate(p unsafe.Pointer, l deleg.Layout) {
	a.next.Deallocate(p, l)
	a.log.Debug().
		Uint64("size", uint64(l.Size)).
		Msg("block released")
}
