// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"bytes"
	"encoding"
	"encoding/binary"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

const (
	// PubkeyLength length of pubkey in bytes.
	PubkeyLength = 32
	// maxBase58Len is the longest base58 string a 32 bytes value can encode to.
	maxBase58Len = 44
)

var (
	_ encoding.TextMarshaler   = Pubkey{}
	_ encoding.TextUnmarshaler = (*Pubkey)(nil)

	errPubkeyTooLong   = errors.New("pubkey string too long")
	errInvalidPubkey   = errors.New("invalid pubkey")
	errWrongPubkeySize = errors.New("wrong pubkey size")
)

// Pubkey is the address of an account or a program.
// Pubkeys are totally ordered by their bytes.
type Pubkey [PubkeyLength]byte

// String returns the base58 presentation.
func (p Pubkey) String() string {
	return base58.Encode(p[:])
}

// AbbrevString returns abbrev string presentation.
func (p Pubkey) AbbrevString() string {
	s := p.String()
	if len(s) <= 10 {
		return s
	}
	return s[:4] + "…" + s[len(s)-4:]
}

// Bytes returns byte slice form of pubkey.
func (p Pubkey) Bytes() []byte {
	return p[:]
}

// IsZero returns if pubkey has all zero bytes.
func (p Pubkey) IsZero() bool {
	return p == Pubkey{}
}

// Compare compares two pubkeys byte-wise.
// The result is 0 if p == other, -1 if p < other, and +1 if p > other.
func (p Pubkey) Compare(other Pubkey) int {
	return bytes.Compare(p[:], other[:])
}

// MarshalText implements encoding.TextMarshaler.
func (p Pubkey) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Pubkey) UnmarshalText(text []byte) error {
	parsed, err := ParsePubkey(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePubkey parses the base58 presented pubkey.
func ParsePubkey(s string) (Pubkey, error) {
	if len(s) > maxBase58Len {
		return Pubkey{}, errPubkeyTooLong
	}
	b, err := base58.Decode(s)
	if err != nil {
		return Pubkey{}, errors.Wrap(errInvalidPubkey, err.Error())
	}
	return PubkeyFromSlice(b)
}

// MustParsePubkey parses the base58 presented pubkey, panic on error.
func MustParsePubkey(s string) Pubkey {
	p, err := ParsePubkey(s)
	if err != nil {
		panic(err)
	}
	return p
}

// PubkeyFromSlice converts exactly 32 bytes into pubkey.
func PubkeyFromSlice(b []byte) (Pubkey, error) {
	if len(b) != PubkeyLength {
		return Pubkey{}, errWrongPubkeySize
	}
	return Pubkey(b), nil
}

// BytesToPubkey converts bytes slice into pubkey.
// If b is larger than pubkey length, b will be cropped (from the left).
// If b is smaller than pubkey length, b will be extended (from the left).
func BytesToPubkey(b []byte) Pubkey {
	return Pubkey(common.BytesToHash(b))
}

var uniquePubkeyCounter atomic.Uint64

// NewUniquePubkey returns a pubkey distinct from any other pubkey returned by
// this function in the current process. Intended for tests.
func NewUniquePubkey() (p Pubkey) {
	binary.BigEndian.PutUint64(p[:], uniquePubkeyCounter.Add(1))
	return
}
