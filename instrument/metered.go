// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package instrument

import (
	"unsafe"

	"github.com/prometheus/client_golang/prometheus"

	"code.hybscloud.com/deleg"
)

// MeteredAllocator records block traffic in Prometheus collectors.
type MeteredAllocator struct {
	next      deleg.Allocator
	allocs    prometheus.Counter
	frees     prometheus.Counter
	failures  prometheus.Counter
	liveBytes prometheus.Gauge
}

// Metered wraps next and registers its collectors with reg.
// A nil next means deleg.Heap; a nil reg leaves the collectors unregistered.
func Metered(next deleg.Allocator, reg prometheus.Registerer) (*MeteredAllocator, error) {
	if next == nil {
		next = deleg.Heap{}
	}
	m := &MeteredAllocator{
		next: next,
		allocs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "deleg",
			Subsystem: "alloc",
			Name:      "blocks_total",
			Help:      "Heap blocks handed out for functor state.",
		}),
		frees: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "deleg",
			Subsystem: "alloc",
			Name:      "frees_total",
			Help:      "Heap blocks returned by released delegates.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "deleg",
			Subsystem: "alloc",
			Name:      "failures_total",
			Help:      "Block requests declined by the allocator strategy.",
		}),
		liveBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "deleg",
			Subsystem: "alloc",
			Name:      "live_bytes",
			Help:      "Bytes of functor state currently held in heap blocks.",
		}),
	}
	if reg != nil {
		for _, c := range m.collectors() {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func (m *MeteredAllocator) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.allocs, m.frees, m.failures, m.liveBytes}
}

func (m *MeteredAllocator) Allocate(l deleg.Layout) (unsafe.Pointer, error) {
	p, err := m.next.Allocate(l)
	if err != nil || p == nil {
		m.failures.Inc()
		return p, err
	}
	m.allocs.Inc()
	m.liveBytes.Add(float64(l.Size))
	return p, nil
}

func (m *MeteredAllocator) Deallocate(p unsafe.Pointer, l deleg.Layout) {
	m.next.Deallocate(p, l)
	m.frees.Inc()
	m.liveBytes.Sub(float64(l.Size))
}
