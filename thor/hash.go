// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"hash"
	"io"
	"sync"

	"github.com/minio/sha256-simd"
	"lukechampine.com/blake3"
)

// NewSha256 returns the generic hasher (sha256).
func NewSha256() hash.Hash {
	return sha256.New()
}

// Sha256 computes sha256 checksum for given data.
// With no data it returns the digest of the empty stream.
func Sha256(data ...[]byte) Bytes32 {
	if len(data) == 1 {
		// the quick version
		return sha256.Sum256(data[0])
	}
	return Sha256Fn(func(w io.Writer) {
		for _, b := range data {
			w.Write(b)
		}
	})
}

// Sha256Fn computes sha256 checksum for the provided writer.
func Sha256Fn(fn func(w io.Writer)) (h Bytes32) {
	w := sha256StatePool.Get().(*hashState)
	fn(w)
	w.Sum(w.b32[:0])
	h = w.b32 // to avoid 1 alloc
	w.Reset()
	sha256StatePool.Put(w)
	return
}

// NewBlake3 returns blake3-256 hasher.
func NewBlake3() hash.Hash {
	return blake3.New(32, nil)
}

// Blake3 computes blake3-256 checksum for given data.
func Blake3(data ...[]byte) Bytes32 {
	if len(data) == 1 {
		return blake3.Sum256(data[0])
	}
	return Blake3Fn(func(w io.Writer) {
		for _, b := range data {
			w.Write(b)
		}
	})
}

// Blake3Fn computes blake3-256 checksum for the provided writer.
func Blake3Fn(fn func(w io.Writer)) (h Bytes32) {
	w := blake3StatePool.Get().(*hashState)
	fn(w)
	w.Sum(w.b32[:0])
	h = w.b32
	w.Reset()
	blake3StatePool.Put(w)
	return
}

type hashState struct {
	hash.Hash
	b32 Bytes32
}

var (
	sha256StatePool = sync.Pool{
		New: func() any {
			return &hashState{Hash: NewSha256()}
		},
	}
	blake3StatePool = sync.Pool{
		New: func() any {
			return &hashState{Hash: NewBlake3()}
		},
	}
)
