// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"cmp"
	"context"
	"math/rand/v2"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"code.hybscloud.com/deleg"
)

const wordsPerLine = 8

// wordCount is one emitted (word, count) pair.
type wordCount struct {
	word  string
	count int
}

// generate returns lines holding n random words in total.
func generate(n int, seed uint64) []string {
	rng := rand.New(rand.NewPCG(seed, 0))
	var lines []string
	var b strings.Builder
	for i := range n {
		if i > 0 && i%wordsPerLine == 0 {
			lines = append(lines, b.String())
			b.Reset()
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(randomWord(rng))
	}
	if b.Len() > 0 {
		lines = append(lines, b.String())
	}
	return lines
}

// randomWord draws from a small alphabet so that words repeat.
func randomWord(rng *rand.Rand) string {
	const letters = "abcdef"
	n := 1 + rng.IntN(3)
	w := make([]byte, n)
	for i := range w {
		w[i] = letters[rng.IntN(len(letters))]
	}
	return string(w)
}

func inputBytes(lines []string) uint64 {
	var n uint64
	for _, l := range lines {
		n += uint64(len(l))
	}
	return n
}

// reducer accumulates the pairs emitted on one worker.
type reducer struct {
	counts map[string]int
}

func (r *reducer) add(p wordCount) struct{} {
	r.counts[p.word] += p.count
	return struct{}{}
}

// normalizer is the per-worker mapping applied to each word. It carries
// pointers beyond one word, so binding it draws a block from the allocator.
type normalizer struct {
	replacer *strings.Replacer
	prefix   string
}

func (n normalizer) Call(w string) string {
	return n.prefix + n.replacer.Replace(strings.ToLower(w))
}

// worker holds the delegates one worker calls back into.
type worker struct {
	split     deleg.Delegate[string, []string]
	normalize deleg.Delegate[string, string]
	emit      deleg.Action[wordCount]
}

func newWorker(alloc deleg.Allocator, r *reducer) (*worker, error) {
	norm, err := deleg.MakeFunctorWith[string, string](alloc, normalizer{
		replacer: strings.NewReplacer(".", "", ",", ""),
	})
	if err != nil {
		return nil, err
	}
	return &worker{
		split:     deleg.Make(strings.Fields),
		normalize: norm,
		emit:      deleg.MakeMethod(r, (*reducer).add),
	}, nil
}

func (w *worker) process(line string) {
	for _, word := range w.split.Invoke(line) {
		w.emit.Invoke(wordCount{word: w.normalize.Invoke(word), count: 1})
	}
}

func (w *worker) release() {
	w.split.Release()
	w.normalize.Release()
	w.emit.Release()
}

// countWords distributes lines round-robin over n local workers and merges
// their counts.
func countWords(ctx context.Context, alloc deleg.Allocator, lines []string, n int) (map[string]int, error) {
	n = max(n, 1)
	partial := make([]map[string]int, n)
	g, ctx := errgroup.WithContext(ctx)
	for id := range n {
		g.Go(func() error {
			r := &reducer{counts: make(map[string]int)}
			w, err := newWorker(alloc, r)
			if err != nil {
				return err
			}
			defer w.release()
			for i := id; i < len(lines); i += n {
				if err := ctx.Err(); err != nil {
					return err
				}
				w.process(lines[i])
			}
			partial[id] = r.counts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	total := make(map[string]int)
	for _, p := range partial {
		for word, c := range p {
			total[word] += c
		}
	}
	return total, nil
}

// topWords returns the k most frequent words, ties broken by word.
func topWords(counts map[string]int, k int) []wordCount {
	out := make([]wordCount, 0, len(counts))
	for w, c := range counts {
		out = append(out, wordCount{word: w, count: c})
	}
	slices.SortFunc(out, func(a, b wordCount) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return strings.Compare(a.word, b.word)
	})
	if k >= 0 && k < len(out) {
		out = out[:k]
	}
	return out
}
