// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package account

import (
	"sync"

	"github.com/vechain/acctstate/thor"
)

// Locked guards an account for use by several goroutines.
type Locked[T Readable] struct {
	lock sync.RWMutex
	v    T
}

// NewLocked wraps v. v must not be used directly afterwards.
func NewLocked[T Readable](v T) *Locked[T] {
	return &Locked[T]{v: v}
}

// RLock read-locks the account and returns a view over it.
// The view must be released with RUnlock.
func (l *Locked[T]) RLock() *ReadGuard[T] {
	l.lock.RLock()
	return &ReadGuard[T]{l: l}
}

// Update runs fn with the account under the write lock.
func (l *Locked[T]) Update(fn func(v T)) {
	l.lock.Lock()
	defer l.lock.Unlock()
	fn(l.v)
}

// ReadGuard is a read-locked view over a Locked account.
type ReadGuard[T Readable] struct {
	l *Locked[T]
}

var _ Readable = (*ReadGuard[*SharedAccount])(nil)

// RUnlock releases the read lock. The guard must not be used afterwards.
func (g *ReadGuard[T]) RUnlock() {
	g.l.lock.RUnlock()
	g.l = nil
}

func (g *ReadGuard[T]) Lamports() uint64 {
	return g.l.v.Lamports()
}

func (g *ReadGuard[T]) Data() []byte {
	return g.l.v.Data()
}

func (g *ReadGuard[T]) Owner() thor.Pubkey {
	return g.l.v.Owner()
}

func (g *ReadGuard[T]) Executable() bool {
	return g.l.v.Executable()
}

func (g *ReadGuard[T]) RentEpoch() thor.Epoch {
	return g.l.v.RentEpoch()
}

// ToShared materializes the guarded account, sharing its payload when it is already shareable.
func (g *ReadGuard[T]) ToShared() *SharedAccount {
	return g.l.v.ToShared()
}
