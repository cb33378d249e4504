// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package account

import (
	"github.com/vechain/acctstate/thor"
)

// Account is an account with data that is stored on chain.
// It exclusively owns its payload.
type Account struct {
	lamports   uint64      // lamports in the account
	data       []byte      // data held in this account
	owner      thor.Pubkey // the program that owns this account. If executable, the program that loads this account.
	executable bool        // this account's data contains a loaded program (and is now read-only)
	rentEpoch  thor.Epoch  // the epoch at which this account will next owe rent
}

var (
	_ Writable = (*Account)(nil)
	_ Writable = (*SharedAccount)(nil)
)

// New creates an account with a zero-filled payload of space bytes.
func New(lamports uint64, space int, owner thor.Pubkey) *Account {
	return NewRentEpoch(lamports, space, owner, thor.InitialRentEpoch)
}

// NewRentEpoch creates an account with a zero-filled payload of space bytes and the given rent epoch.
func NewRentEpoch(lamports uint64, space int, owner thor.Pubkey, rentEpoch thor.Epoch) *Account {
	return Create[Account](lamports, make([]byte, space), owner, false, rentEpoch)
}

// NewData creates an account whose payload is the encoded state.
func NewData(lamports uint64, state any, owner thor.Pubkey) (*Account, error) {
	return newData[Account](lamports, state, owner)
}

// NewDataWithSpace creates an account with a payload of space bytes, prefixed by the encoded state.
func NewDataWithSpace(lamports uint64, state any, space int, owner thor.Pubkey) (*Account, error) {
	return newDataWithSpace[Account](lamports, state, space, owner)
}

func (a *Account) Lamports() uint64 {
	return a.lamports
}

func (a *Account) Data() []byte {
	return a.data
}

func (a *Account) Owner() thor.Pubkey {
	return a.owner
}

func (a *Account) Executable() bool {
	return a.executable
}

func (a *Account) RentEpoch() thor.Epoch {
	return a.rentEpoch
}

func (a *Account) ToShared() *SharedAccount {
	return ToAccount(a).IntoShared()
}

func (a *Account) SetLamports(lamports uint64) {
	a.lamports = lamports
}

func (a *Account) CheckedAddLamports(lamports uint64) error {
	return checkedAddLamports(a, lamports)
}

func (a *Account) CheckedSubLamports(lamports uint64) error {
	return checkedSubLamports(a, lamports)
}

func (a *Account) SaturatingAddLamports(lamports uint64) {
	saturatingAddLamports(a, lamports)
}

func (a *Account) SaturatingSubLamports(lamports uint64) {
	saturatingSubLamports(a, lamports)
}

func (a *Account) DataAsMutSlice() []byte {
	return a.data
}

func (a *Account) SetData(data []byte) {
	a.data = data
}

func (a *Account) SetOwner(owner thor.Pubkey) {
	a.owner = owner
}

func (a *Account) CopyIntoOwnerFromSlice(src []byte) {
	a.owner = ownerFromSlice(src)
}

func (a *Account) SetExecutable(executable bool) {
	a.executable = executable
}

func (a *Account) SetRentEpoch(epoch thor.Epoch) {
	a.rentEpoch = epoch
}

// IntoShared moves the account into a SharedAccount without copying the payload.
// The account is left with an empty payload.
func (a *Account) IntoShared() *SharedAccount {
	s := &SharedAccount{
		lamports:   a.lamports,
		owner:      a.owner,
		executable: a.executable,
		rentEpoch:  a.rentEpoch,
	}
	s.setBuffer(newBuffer(a.data))
	a.data = nil
	return s
}

// SerializeData encodes state into the payload prefix.
func (a *Account) SerializeData(state any) error {
	return SerializeData(a, state)
}

// DeserializeData decodes the state held at the payload prefix into out.
func (a *Account) DeserializeData(out any) error {
	return DeserializeData(a, out)
}

// String implements fmt.Stringer.
func (a *Account) String() string {
	return Format(a)
}
