// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounthash

import (
	"context"
	"runtime"
	"slices"

	"github.com/vechain/acctstate/account"
	"github.com/vechain/acctstate/co"
	"github.com/vechain/acctstate/merkle"
	"github.com/vechain/acctstate/thor"
	"golang.org/x/sync/errgroup"
)

// MerkleFanout is the fanout of account batch roots.
const MerkleFanout = 16

// Entry is an account stored at a pubkey.
type Entry struct {
	Pubkey  thor.Pubkey
	Account account.Readable
}

// Pair is the digest of the account stored at a pubkey.
type Pair struct {
	Pubkey thor.Pubkey
	Hash   AccountHash
}

func hashEntry(e Entry) Pair {
	return Pair{e.Pubkey, HashAccount(e.Account, e.Pubkey)}
}

func pairHash(p Pair) thor.Bytes32 {
	return thor.Bytes32(p.Hash)
}

// HashAccounts hashes every entry, the result is index aligned with entries.
// Batches reaching thor.HashParallelThreshold() are hashed on worker goroutines.
func HashAccounts(entries []Entry) []Pair {
	pairs := make([]Pair, len(entries))
	hash := func(i int) {
		pairs[i] = hashEntry(entries[i])
	}

	if len(entries) >= thor.HashParallelThreshold() {
		logger.Debug("hashing accounts in parallel", "count", len(entries))
		co.ParallelFor(len(entries), hash)
	} else {
		logger.Trace("hashing accounts", "count", len(entries))
		for i := range entries {
			hash(i)
		}
	}
	return pairs
}

// HashAccountsContext is HashAccounts that stops early once ctx is done,
// in which case the ctx error is returned. ctx is checked between accounts.
func HashAccountsContext(ctx context.Context, entries []Entry) ([]Pair, error) {
	pairs := make([]Pair, len(entries))
	hashRange := func(ctx context.Context, start, end int) error {
		for i := start; i < end; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			pairs[i] = hashEntry(entries[i])
		}
		return nil
	}

	if len(entries) < thor.HashParallelThreshold() {
		logger.Trace("hashing accounts", "count", len(entries))
		if err := hashRange(ctx, 0, len(entries)); err != nil {
			return nil, err
		}
		return pairs, nil
	}

	logger.Debug("hashing accounts in parallel", "count", len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for start, end := range co.Ranges(len(entries)) {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return hashRange(gctx, start, end)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// gctx is always done after Wait, only the caller's ctx tells
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return pairs, nil
}

// ComputeMerkleRoot computes the root of pairs in the given order.
func ComputeMerkleRoot(pairs []Pair, fanout int) (thor.Bytes32, error) {
	return merkle.Root(pairs, fanout, pairHash)
}

// SortPairs sorts pairs by pubkey in place, pairs sharing a pubkey keep their relative order.
func SortPairs(pairs []Pair) {
	slices.SortStableFunc(pairs, func(a, b Pair) int {
		return a.Pubkey.Compare(b.Pubkey)
	})
}

// AccumulateAccountHashes sorts pairs by pubkey in place and computes their root with MerkleFanout.
// Pairs sharing a pubkey keep their relative order.
func AccumulateAccountHashes(pairs []Pair) thor.Bytes32 {
	SortPairs(pairs)
	root, err := ComputeMerkleRoot(pairs, MerkleFanout)
	if err != nil {
		panic(err) // MerkleFanout is valid
	}
	return root
}

// Root hashes entries and accumulates the digests into the batch root.
func Root(entries []Entry) thor.Bytes32 {
	return AccumulateAccountHashes(HashAccounts(entries))
}
