// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package account

import (
	"bytes"
	"math/bits"

	"github.com/vechain/acctstate/thor"
)

// Readable is the read capability shared by every account representation.
// Hashing and accounting code should be written against it rather than
// against a concrete type.
type Readable interface {
	Lamports() uint64
	// Data returns the payload. It must be treated as read-only.
	Data() []byte
	Owner() thor.Pubkey
	Executable() bool
	RentEpoch() thor.Epoch
	// ToShared materializes a SharedAccount. Implementations that already
	// hold a shareable payload share it instead of copying.
	ToShared() *SharedAccount
}

// Writable is the write capability of an exclusively held account.
type Writable interface {
	Readable

	SetLamports(lamports uint64)
	CheckedAddLamports(lamports uint64) error
	CheckedSubLamports(lamports uint64) error
	SaturatingAddLamports(lamports uint64)
	SaturatingSubLamports(lamports uint64)
	// DataAsMutSlice returns the payload for in-place writes. The payload is
	// privatized first, so writes are never observed by other holders.
	DataAsMutSlice() []byte
	// SetData replaces the payload, taking ownership of data.
	SetData(data []byte)
	SetOwner(owner thor.Pubkey)
	// CopyIntoOwnerFromSlice sets the owner from exactly 32 bytes, it panics otherwise.
	CopyIntoOwnerFromSlice(src []byte)
	SetExecutable(executable bool)
	SetRentEpoch(epoch thor.Epoch)
}

// Create builds a new T from its five fields, e.g. Create[SharedAccount](...).
// The new account takes ownership of data.
func Create[T any, P interface {
	*T
	Writable
}](lamports uint64, data []byte, owner thor.Pubkey, executable bool, rentEpoch thor.Epoch) P {
	p := P(new(T))
	p.SetLamports(lamports)
	p.SetData(data)
	p.SetOwner(owner)
	p.SetExecutable(executable)
	p.SetRentEpoch(rentEpoch)
	return p
}

// Equal returns true if all fields of two accounts are equivalent.
func Equal(a, b Readable) bool {
	return a.Lamports() == b.Lamports() &&
		a.Executable() == b.Executable() &&
		a.RentEpoch() == b.RentEpoch() &&
		a.Owner() == b.Owner() &&
		bytes.Equal(a.Data(), b.Data())
}

// ToAccount copies any readable account into an owned Account.
func ToAccount(r Readable) *Account {
	return &Account{
		lamports:   r.Lamports(),
		data:       bytes.Clone(r.Data()),
		owner:      r.Owner(),
		executable: r.Executable(),
		rentEpoch:  r.RentEpoch(),
	}
}

func checkedAddLamports(w Writable, lamports uint64) error {
	sum, carry := bits.Add64(w.Lamports(), lamports, 0)
	if carry != 0 {
		return ErrArithmeticOverflow
	}
	w.SetLamports(sum)
	return nil
}

func checkedSubLamports(w Writable, lamports uint64) error {
	diff, borrow := bits.Sub64(w.Lamports(), lamports, 0)
	if borrow != 0 {
		return ErrArithmeticUnderflow
	}
	w.SetLamports(diff)
	return nil
}

func saturatingAddLamports(w Writable, lamports uint64) {
	sum, carry := bits.Add64(w.Lamports(), lamports, 0)
	if carry != 0 {
		sum = ^uint64(0)
	}
	w.SetLamports(sum)
}

func saturatingSubLamports(w Writable, lamports uint64) {
	diff, borrow := bits.Sub64(w.Lamports(), lamports, 0)
	if borrow != 0 {
		diff = 0
	}
	w.SetLamports(diff)
}

func ownerFromSlice(src []byte) thor.Pubkey {
	if len(src) != thor.PubkeyLength {
		panic("account: owner source must be exactly 32 bytes")
	}
	return thor.Pubkey(src)
}
