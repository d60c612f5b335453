// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package instrument_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/deleg"
	"code.hybscloud.com/deleg/instrument"
)

type wide struct {
	x   int
	pad [16]int
}

func (w wide) Call(a int) int { return a + w.x }

func TestLoggedAllocator(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	alloc := instrument.Logged(deleg.Heap{}, logger)

	d, err := deleg.MakeFunctorWith[int, int](alloc, wide{x: 2})
	require.NoError(t, err)
	assert.Equal(t, 42, d.Invoke(40))
	d.Release()

	out := buf.String()
	assert.Contains(t, out, `"message":"block allocated"`)
	assert.Contains(t, out, `"message":"block released"`)
	assert.Contains(t, out, `"component":"deleg.alloc"`)
	assert.Contains(t, out, `"size":136`)
}

func TestLoggedAllocatorDeclined(t *testing.T) {
	var buf bytes.Buffer
	alloc := instrument.Logged(deleg.Bypass{}, zerolog.New(&buf))

	_, err := deleg.MakeFunctorWith[int, int](alloc, wide{})
	require.ErrorIs(t, err, deleg.ErrAllocationFailure)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"level":"warn"`)
	assert.Contains(t, lines[0], `"message":"allocation declined"`)
}

func TestMeteredAllocator(t *testing.T) {
	reg := prometheus.NewRegistry()
	alloc, err := instrument.Metered(deleg.NewPool(), reg)
	require.NoError(t, err)

	a, err := deleg.MakeFunctorWith[int, int](alloc, wide{x: 1})
	require.NoError(t, err)
	b, err := a.Clone()
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	a.Release()
	assert.Equal(t, 43, b.Invoke(42))
	b.Release()

	expected := `
# HELP deleg_alloc_blocks_total Heap blocks handed out for functor state.
# TYPE deleg_alloc_blocks_total counter
deleg_alloc_blocks_total 2
# HELP deleg_alloc_frees_total Heap blocks returned by released delegates.
# TYPE deleg_alloc_frees_total counter
deleg_alloc_frees_total 2
# HELP deleg_alloc_live_bytes Bytes of functor state currently held in heap blocks.
# TYPE deleg_alloc_live_bytes gauge
deleg_alloc_live_bytes 0
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"deleg_alloc_blocks_total", "deleg_alloc_frees_total", "deleg_alloc_live_bytes"))
}

func TestMeteredFailures(t *testing.T) {
	reg := prometheus.NewRegistry()
	alloc, err := instrument.Metered(deleg.Bypass{}, reg)
	require.NoError(t, err)

	_, err = deleg.MakeFunctorWith[int, int](alloc, wide{})
	require.Error(t, err)

	expected := `
# HELP deleg_alloc_failures_total Block requests declined by the allocator strategy.
# TYPE deleg_alloc_failures_total counter
deleg_alloc_failures_total 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "deleg_alloc_failures_total"))
}

func TestMeteredDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := instrument.Metered(nil, reg)
	require.NoError(t, err)
	_, err = instrument.Metered(nil, reg)
	require.Error(t, err)
}
