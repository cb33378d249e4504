// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package merkle folds an ordered list of digests into a single root by
// repeatedly hashing consecutive chunks of fanout digests.
//
// Each chunk digest is the sha256 of the concatenated child digests in order.
// The input order is significant and is never changed here.
package merkle

import (
	"io"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"
	"github.com/vechain/acctstate/co"
	"github.com/vechain/acctstate/metrics"
	"github.com/vechain/acctstate/thor"
)

var logger = log.New("pkg", "merkle")

var (
	metricRootDuration = metrics.LazyLoadHistogram("merkle_root_duration_ms", metrics.BucketHashing)
	metricRootLeaves   = metrics.LazyLoadCounter("merkle_root_leaves")
	metricRootDepth    = metrics.LazyLoadGauge("merkle_root_depth")
)

// ErrInvalidFanout is returned for a fanout that cannot shrink a level.
var ErrInvalidFanout = errors.New("fanout must be at least 2")

// DivCeil returns x / y rounded up. y must be positive.
func DivCeil(x, y int) int {
	n := x / y
	if x%y != 0 {
		n++
	}
	return n
}

// ComputeRoot computes the root of hashes in the given order.
func ComputeRoot(hashes []thor.Bytes32, fanout int) (thor.Bytes32, error) {
	return Root(hashes, fanout, identity)
}

// Root computes the root of items in the given order, leaf extracts the digest of each item.
// Lists reaching thor.HashParallelThreshold() are reduced on worker goroutines.
func Root[T any](items []T, fanout int, leaf func(T) thor.Bytes32) (thor.Bytes32, error) {
	return rootLoop(items, fanout, leaf, len(items) >= thor.HashParallelThreshold())
}

// RootLoop computes the root of items in the given order, leaf extracts the digest of each item.
//
// An empty list has the root sha256(""), and a single item is its own root.
func RootLoop[T any](items []T, fanout int, leaf func(T) thor.Bytes32) (thor.Bytes32, error) {
	return rootLoop(items, fanout, leaf, false)
}

// ParallelRootLoop is RootLoop with the chunks of every level hashed on worker goroutines.
// It yields the same root as RootLoop.
func ParallelRootLoop[T any](items []T, fanout int, leaf func(T) thor.Bytes32) (thor.Bytes32, error) {
	return rootLoop(items, fanout, leaf, true)
}

func rootLoop[T any](items []T, fanout int, leaf func(T) thor.Bytes32, parallel bool) (thor.Bytes32, error) {
	if fanout < 2 {
		return thor.Bytes32{}, errors.WithMessagef(ErrInvalidFanout, "got %d", fanout)
	}

	var (
		start = time.Now()
		depth int
	)
	defer func() {
		metricRootDuration().Observe(time.Since(start).Milliseconds())
		metricRootLeaves().Add(int64(len(items)))
		metricRootDepth().Set(int64(depth))
	}()

	switch len(items) {
	case 0:
		return thor.Sha256(), nil
	case 1:
		return leaf(items[0]), nil
	}

	level := reduce(items, fanout, leaf, parallel)
	depth = 1
	for len(level) > 1 {
		level = reduce(level, fanout, identity, parallel)
		depth++
	}
	return level[0], nil
}

// reduce hashes each chunk of items, the next level is returned.
func reduce[T any](items []T, fanout int, leaf func(T) thor.Bytes32, parallel bool) []thor.Bytes32 {
	start := time.Now()

	next := make([]thor.Bytes32, DivCeil(len(items), fanout))
	hashChunk := func(i int) {
		chunk := items[i*fanout : min((i+1)*fanout, len(items))]
		next[i] = thor.Sha256Fn(func(w io.Writer) {
			for _, item := range chunk {
				h := leaf(item)
				w.Write(h[:])
			}
		})
	}

	if parallel && len(next) > 1 {
		co.ParallelFor(len(next), hashChunk)
	} else {
		for i := range next {
			hashChunk(i)
		}
	}

	logger.Debug("hashing", "count", len(items), "elapsed", time.Since(start))
	return next
}

func identity(h thor.Bytes32) thor.Bytes32 {
	return h
}
