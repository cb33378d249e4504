// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package account

import (
	"bytes"
	"runtime"
	"slices"
	"sync/atomic"

	"github.com/vechain/acctstate/thor"
)

// buffer is a reference counted payload. Its bytes are immutable while refs > 1.
type buffer struct {
	refs atomic.Int64
	b    []byte
}

func newBuffer(b []byte) *buffer {
	buf := &buffer{b: b}
	buf.refs.Store(1)
	return buf
}

func (buf *buffer) release() {
	buf.refs.Add(-1)
}

// holder is the hold of one handle on its buffer. The hold is dropped once,
// either by the handle or by the cleanup run after the handle is collected.
type holder struct {
	buf atomic.Pointer[buffer]
}

// swap installs buf and drops the hold on the previous buffer.
func (h *holder) swap(buf *buffer) {
	if old := h.buf.Swap(buf); old != nil {
		old.release()
	}
}

func (h *holder) drop() {
	h.swap(nil)
}

// noCopy may be added to structs which must not be copied
// after the first use. See sync.noCopy.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// SharedAccount is the in-memory representation of an account whose payload
// can be shared cheaply between holders.
//
// Every handle counts as one holder of the payload. Clone adds a holder,
// Release drops one. A handle that is dropped without Release stops counting
// once the garbage collector has reclaimed it. A handle whose payload has other holders copies it before
// any in-place write, so a write is never observed through another handle.
//
// A single handle must not be used by more than one goroutine at a time while
// it is being mutated. Distinct handles sharing one payload may be used
// concurrently. SharedAccount must not be copied by value, use Clone.
type SharedAccount struct {
	_ noCopy

	lamports   uint64
	h          *holder // nil means empty payload
	owner      thor.Pubkey
	executable bool
	rentEpoch  thor.Epoch
}

// NewShared creates a shared account with a zero-filled payload of space bytes.
func NewShared(lamports uint64, space int, owner thor.Pubkey) *SharedAccount {
	return NewSharedRentEpoch(lamports, space, owner, thor.InitialRentEpoch)
}

// NewSharedRentEpoch creates a shared account with a zero-filled payload of space bytes and the given rent epoch.
func NewSharedRentEpoch(lamports uint64, space int, owner thor.Pubkey, rentEpoch thor.Epoch) *SharedAccount {
	return Create[SharedAccount](lamports, make([]byte, space), owner, false, rentEpoch)
}

// NewSharedData creates a shared account whose payload is the encoded state.
func NewSharedData(lamports uint64, state any, owner thor.Pubkey) (*SharedAccount, error) {
	return newData[SharedAccount](lamports, state, owner)
}

// NewSharedDataWithSpace creates a shared account with a payload of space bytes, prefixed by the encoded state.
func NewSharedDataWithSpace(lamports uint64, state any, space int, owner thor.Pubkey) (*SharedAccount, error) {
	return newDataWithSpace[SharedAccount](lamports, state, space, owner)
}

func (s *SharedAccount) Lamports() uint64 {
	return s.lamports
}

// Data returns the payload. The slice must not be used after the handle is
// released or dropped, other holders may then write to it in place.
func (s *SharedAccount) Data() []byte {
	if buf := s.buffer(); buf != nil {
		return buf.b
	}
	return nil
}

func (s *SharedAccount) Owner() thor.Pubkey {
	return s.owner
}

func (s *SharedAccount) Executable() bool {
	return s.executable
}

func (s *SharedAccount) RentEpoch() thor.Epoch {
	return s.rentEpoch
}

// ToShared returns a new handle sharing the payload, no data is copied.
func (s *SharedAccount) ToShared() *SharedAccount {
	return s.Clone()
}

// Clone returns a new handle sharing the payload.
func (s *SharedAccount) Clone() *SharedAccount {
	c := &SharedAccount{
		lamports:   s.lamports,
		owner:      s.owner,
		executable: s.executable,
		rentEpoch:  s.rentEpoch,
	}
	if buf := s.buffer(); buf != nil {
		buf.refs.Add(1)
		c.setBuffer(buf)
	}
	return c
}

// Release drops this handle's hold on the payload, letting the remaining
// holders write in place. The handle reads as an empty payload afterwards.
func (s *SharedAccount) Release() {
	if s.h != nil {
		s.h.drop()
	}
}

// IsShared reports whether the payload has more than one holder.
func (s *SharedAccount) IsShared() bool {
	buf := s.buffer()
	return buf != nil && buf.refs.Load() > 1
}

func (s *SharedAccount) buffer() *buffer {
	if s.h == nil {
		return nil
	}
	return s.h.buf.Load()
}

// setBuffer makes buf, already counted for this handle, its payload.
func (s *SharedAccount) setBuffer(buf *buffer) {
	if s.h == nil {
		s.h = new(holder)
		runtime.AddCleanup(s, func(h *holder) { h.drop() }, s.h)
	}
	s.h.swap(buf)
}

// Capacity returns the capacity of the payload buffer.
func (s *SharedAccount) Capacity() int {
	return cap(s.Data())
}

// IntoAccount moves the account into an owned Account. The payload is taken
// as is when this handle is its only holder, and copied otherwise.
// The handle is left with an empty payload.
func (s *SharedAccount) IntoAccount() *Account {
	a := &Account{
		lamports:   s.lamports,
		data:       *s.dataMut("into_account"),
		owner:      s.owner,
		executable: s.executable,
		rentEpoch:  s.rentEpoch,
	}
	s.Release()
	return a
}

// dataMut privatizes the payload and returns it for writing.
func (s *SharedAccount) dataMut(op string) *[]byte {
	buf := s.buffer()
	switch {
	case buf == nil:
		buf = newBuffer(nil)
		s.setBuffer(buf)
	case buf.refs.Load() > 1:
		metricCowCopyCount().AddWithLabel(1, map[string]string{"op": op})
		buf = newBuffer(bytes.Clone(buf.b))
		s.setBuffer(buf)
	}
	return &buf.b
}

// Reserve makes room for at least additional more bytes without reallocation.
func (s *SharedAccount) Reserve(additional int) {
	d := s.dataMut("reserve")
	*d = slices.Grow(*d, additional)
}

// Resize resizes the payload to newLen, filling new bytes with value.
func (s *SharedAccount) Resize(newLen int, value byte) {
	d := s.dataMut("resize")
	if newLen <= len(*d) {
		*d = (*d)[:newLen]
		return
	}
	n := len(*d)
	*d = slices.Grow(*d, newLen-n)[:newLen]
	for i := n; i < newLen; i++ {
		(*d)[i] = value
	}
}

// ExtendFromSlice appends b to the payload.
func (s *SharedAccount) ExtendFromSlice(b []byte) {
	d := s.dataMut("extend")
	*d = append(*d, b...)
}

// SetDataFromSlice replaces the payload content with newData.
//
// When this handle is the only holder, the existing buffer is grown as needed
// and overwritten in place, avoiding a new allocation when the size barely
// changes. Otherwise a fresh buffer holding a copy of newData is swapped in,
// and other holders keep the previous content.
func (s *SharedAccount) SetDataFromSlice(newData []byte) {
	buf := s.buffer()
	if buf == nil || buf.refs.Load() > 1 {
		s.SetData(bytes.Clone(newData))
		return
	}

	d := &buf.b
	newLen := len(newData)
	if deficit := newLen - len(*d); deficit > 0 {
		*d = slices.Grow(*d, deficit)
	}
	// the logical length stays zero until the copy completes
	b := (*d)[:0]
	*d = b
	copy(b[:newLen], newData)
	*d = b[:newLen]
}

// SpareDataCapacityMut returns the unused tail of the privatized buffer, between the
// payload length and its capacity. Bytes written there are not part of the payload.
func (s *SharedAccount) SpareDataCapacityMut() []byte {
	d := *s.dataMut("spare_capacity")
	return d[len(d):cap(d)]
}

func (s *SharedAccount) SetLamports(lamports uint64) {
	s.lamports = lamports
}

func (s *SharedAccount) CheckedAddLamports(lamports uint64) error {
	return checkedAddLamports(s, lamports)
}

func (s *SharedAccount) CheckedSubLamports(lamports uint64) error {
	return checkedSubLamports(s, lamports)
}

func (s *SharedAccount) SaturatingAddLamports(lamports uint64) {
	saturatingAddLamports(s, lamports)
}

func (s *SharedAccount) SaturatingSubLamports(lamports uint64) {
	saturatingSubLamports(s, lamports)
}

func (s *SharedAccount) DataAsMutSlice() []byte {
	return *s.dataMut("data_as_mut_slice")
}

// SetData swaps in data as the new payload, this handle's hold on the previous payload is dropped.
func (s *SharedAccount) SetData(data []byte) {
	s.setBuffer(newBuffer(data))
}

func (s *SharedAccount) SetOwner(owner thor.Pubkey) {
	s.owner = owner
}

func (s *SharedAccount) CopyIntoOwnerFromSlice(src []byte) {
	s.owner = ownerFromSlice(src)
}

func (s *SharedAccount) SetExecutable(executable bool) {
	s.executable = executable
}

func (s *SharedAccount) SetRentEpoch(epoch thor.Epoch) {
	s.rentEpoch = epoch
}

// SerializeData encodes state into the payload prefix.
func (s *SharedAccount) SerializeData(state any) error {
	return SerializeData(s, state)
}

// DeserializeData decodes the state held at the payload prefix into out.
func (s *SharedAccount) DeserializeData(out any) error {
	return DeserializeData(s, out)
}

// String implements fmt.Stringer.
func (s *SharedAccount) String() string {
	return Format(s)
}
