// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import (
	"iter"
	"runtime"
	"sync"
)

// Enqueue function to enqueue parallel works.
type Enqueue func(work func())

// Parallel to run a batch of work using as many CPU as it can.
// It returns after all enqueued works are done.
func Parallel(cb func(Enqueue)) {
	var wg sync.WaitGroup
	defer wg.Wait()
	ch := make(chan func(), runtime.NumCPU()*2)
	defer close(ch)
	for range runtime.NumCPU() {
		wg.Go(func() {
			for work := range ch {
				work()
			}
		})
	}
	cb(func(work func()) { ch <- work })
}

// Ranges splits [0, n) into contiguous [start, end) ranges, about 4 per CPU
// so that workers stay busy when item costs differ.
func Ranges(n int) iter.Seq2[int, int] {
	return func(yield func(start, end int) bool) {
		if n <= 0 {
			return
		}
		parts := runtime.NumCPU() * 4
		size := max((n+parts-1)/parts, 1)
		for start := 0; start < n; start += size {
			if !yield(start, min(start+size, n)) {
				return
			}
		}
	}
}

// ParallelFor calls fn for every index in [0, n) using as many CPU as it can.
// Indexes are handed out to workers by Ranges. It returns after all calls are done.
func ParallelFor(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	Parallel(func(enqueue Enqueue) {
		for start, end := range Ranges(n) {
			enqueue(func() {
				for i := start; i < end; i++ {
					fn(i)
				}
			})
		}
	})
}
