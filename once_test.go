// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package deleg_test

import (
	"sync"
	"testing"

	"code.hybscloud.com/deleg"
)

func TestOnceInvoke(t *testing.T) {
	o := deleg.Once(deleg.Make(func(x int) string {
		return "received"
	}))

	got := o.Invoke(42)
	if got != "received" {
		t.Fatalf("got %q, want %q", got, "received")
	}
	if !o.Used() {
		t.Fatal("expected Used after Invoke")
	}

	// After invoke, TryInvoke must fail
	_, ok := o.TryInvoke(0)
	if ok {
		t.Fatal("expected TryInvoke to fail after Invoke")
	}
}

func TestOncePanicOnReuse(t *testing.T) {
	o := deleg.Once(deleg.Make(func(x int) int { return x * 2 }))

	_ = o.Invoke(10)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on second Invoke")
		}
		if s, ok := r.(string); !ok || s != "deleg: once delegate invoked twice" {
			t.Fatalf("unexpected panic message: %v", r)
		}
	}()

	_ = o.Invoke(20)
}

func TestOnceTryInvoke(t *testing.T) {
	o := deleg.Once(deleg.Make(func(x int) int { return x * 2 }))

	got, ok := o.TryInvoke(10)
	if !ok {
		t.Fatal("expected first TryInvoke to succeed")
	}
	if got != 20 {
		t.Fatalf("got %d, want 20", got)
	}

	got, ok = o.TryInvoke(20)
	if ok {
		t.Fatal("expected second TryInvoke to fail")
	}
	if got != 0 {
		t.Fatalf("got %d, want 0 on failed TryInvoke", got)
	}
}

func TestOnceEmpty(t *testing.T) {
	o := deleg.Once(deleg.Delegate[int, int]{})
	if _, ok := o.TryInvoke(1); ok {
		t.Fatal("expected TryInvoke on empty delegate to fail")
	}
}

func TestOnceDiscardReleases(t *testing.T) {
	alloc := deleg.NewCounting(nil)
	d, err := deleg.MakeFunctorWith[int, int](alloc, bigFunctor{x: 1})
	if err != nil {
		t.Fatal(err)
	}
	o := deleg.Once(d)
	o.Discard()
	o.Discard()
	if alloc.Live() != 0 || alloc.Frees() != 1 {
		t.Fatalf("live=%d frees=%d", alloc.Live(), alloc.Frees())
	}
	if _, ok := o.TryInvoke(42); ok {
		t.Fatal("expected TryInvoke to fail after Discard")
	}
}

func TestOnceInvokeReleases(t *testing.T) {
	alloc := deleg.NewCounting(nil)
	d, err := deleg.MakeFunctorWith[int, int](alloc, bigFunctor{x: 12})
	if err != nil {
		t.Fatal(err)
	}
	o := deleg.Once(d)
	if got := o.Invoke(30); got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
	if alloc.Live() != 0 {
		t.Fatalf("live = %d, want 0", alloc.Live())
	}
}

func TestOnceConcurrentInvoke(t *testing.T) {
	o := deleg.Once(deleg.Make(func(x int) int { return x }))

	const goroutines = 100
	var wg sync.WaitGroup
	wg.Add(goroutines)

	successCount := make(chan int, goroutines)
	panicCount := make(chan int, goroutines)

	for range goroutines {
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					panicCount <- 1
				}
			}()
			_ = o.Invoke(1)
			successCount <- 1
		}()
	}

	wg.Wait()
	close(successCount)
	close(panicCount)

	if len(successCount) != 1 {
		t.Fatalf("expected exactly 1 success, got %d", len(successCount))
	}
	if len(panicCount) != goroutines-1 {
		t.Fatalf("expected %d panics, got %d", goroutines-1, len(panicCount))
	}
}

func TestOnceConcurrentTryInvoke(t *testing.T) {
	o := deleg.Once(deleg.Make(func(x int) int { return x }))

	const goroutines = 100
	var wg sync.WaitGroup
	wg.Add(goroutines)

	successCount := make(chan int, goroutines)

	for range goroutines {
		go func() {
			defer wg.Done()
			if _, ok := o.TryInvoke(1); ok {
				successCount <- 1
			}
		}()
	}

	wg.Wait()
	close(successCount)

	if len(successCount) != 1 {
		t.Fatalf("expected exactly 1 success, got %d", len(successCount))
	}
}

func BenchmarkOnceInvoke(b *testing.B) {
	for b.Loop() {
		o := deleg.Once(deleg.Make(func1))
		_ = o.Invoke(42)
	}
}
