// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package deleg_test

import (
	"math/rand/v2"
	"testing"

	"code.hybscloud.com/deleg"
)

const propertyN = 1000

// randInt returns a random int in [-1000, 1000].
func randInt(rng *rand.Rand) int {
	return rng.IntN(2001) - 1000
}

// TestPropertyDirectCall: every binding kind reproduces the direct call.
func TestPropertyDirectCall(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	for range propertyN {
		x := randInt(rng)
		v := randInt(rng)
		obj := &A{x: x}
		f := AddFunctor{x: x}
		big := bigFunctor{x: x}

		fd, err := deleg.MakeFunctor[int, int](f)
		if err != nil {
			t.Fatal(err)
		}
		hd, err := deleg.MakeFunctorWith[int, int](deleg.NewCounting(nil), big)
		if err != nil {
			t.Fatal(err)
		}
		cases := []struct {
			name string
			d    testDelegate
			want int
		}{
			{"static", deleg.MakeStatic[int, int, func1Sel](), func1(v)},
			{"func", deleg.Make(func2), func2(v)},
			{"closure", deleg.Make(func(a int) int { return a*x - 1 }), v*x - 1},
			{"static method", deleg.MakeStaticMethod[int, int, aFunc](obj), obj.Func(v)},
			{"method", deleg.MakeMethod(obj, (*A).Func2), obj.Func2(v)},
			{"static const method", deleg.MakeStaticConstMethod[int, int, aConstFunc](obj), obj.ConstFunc(v)},
			{"const method", deleg.MakeConstMethod(obj, A.ConstFunc), obj.ConstFunc(v)},
			{"functor", fd, f.Call(v)},
			{"heap functor", hd, big.Call(v)},
		}
		for _, tc := range cases {
			if got := tc.d.Invoke(v); got != tc.want {
				t.Fatalf("%s: got %d, want %d (x=%d v=%d)", tc.name, got, tc.want, x, v)
			}
		}
		hd.Release()
	}
}

// TestPropertyCloneMove: Clone and Move preserve results.
func TestPropertyCloneMove(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 0))
	alloc := deleg.NewCounting(deleg.NewPool())
	for range propertyN {
		x := randInt(rng)
		v := randInt(rng)
		d, err := deleg.MakeFunctorWith[int, int](alloc, bigFunctor{x: x})
		if err != nil {
			t.Fatal(err)
		}
		want := d.Invoke(v)
		cp, err := d.Clone()
		if err != nil {
			t.Fatal(err)
		}
		moved := d.Move()
		if got := cp.Invoke(v); got != want {
			t.Fatalf("clone: got %d, want %d", got, want)
		}
		if got := moved.Invoke(v); got != want {
			t.Fatalf("moved: got %d, want %d", got, want)
		}
		cp.Release()
		moved.Release()
		d.Release()
	}
	if alloc.Live() != 0 {
		t.Fatalf("live = %d, want 0", alloc.Live())
	}
}
