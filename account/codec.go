// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package account

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
	"github.com/vechain/acctstate/thor"
)

// accountRLP is the serialized form of an account, field order is part of the format.
type accountRLP struct {
	Lamports   uint64
	Data       []byte
	Owner      thor.Pubkey
	Executable bool
	RentEpoch  uint64
}

type accountJSON struct {
	Lamports   uint64        `json:"lamports"`
	Data       hexutil.Bytes `json:"data"`
	Owner      thor.Pubkey   `json:"owner"`
	Executable bool          `json:"executable"`
	RentEpoch  uint64        `json:"rentEpoch"`
}

var (
	_ rlp.Encoder      = (*Account)(nil)
	_ rlp.Decoder      = (*Account)(nil)
	_ rlp.Encoder      = (*SharedAccount)(nil)
	_ rlp.Decoder      = (*SharedAccount)(nil)
	_ json.Marshaler   = (*Account)(nil)
	_ json.Unmarshaler = (*Account)(nil)
	_ json.Marshaler   = (*SharedAccount)(nil)
	_ json.Unmarshaler = (*SharedAccount)(nil)
)

func toRLP(r Readable) *accountRLP {
	return &accountRLP{
		Lamports:   r.Lamports(),
		Data:       r.Data(),
		Owner:      r.Owner(),
		Executable: r.Executable(),
		RentEpoch:  r.RentEpoch(),
	}
}

func toJSON(r Readable) *accountJSON {
	return &accountJSON{
		Lamports:   r.Lamports(),
		Data:       r.Data(),
		Owner:      r.Owner(),
		Executable: r.Executable(),
		RentEpoch:  r.RentEpoch(),
	}
}

// EncodeRLP implements rlp.Encoder.
func (a *Account) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, toRLP(a))
}

// DecodeRLP implements rlp.Decoder.
func (a *Account) DecodeRLP(s *rlp.Stream) error {
	var obj accountRLP
	if err := s.Decode(&obj); err != nil {
		return err
	}
	*a = Account{
		lamports:   obj.Lamports,
		data:       obj.Data,
		owner:      obj.Owner,
		executable: obj.Executable,
		rentEpoch:  obj.RentEpoch,
	}
	return nil
}

// EncodeRLP implements rlp.Encoder. The payload is written straight from the shared buffer.
func (s *SharedAccount) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, toRLP(s))
}

// DecodeRLP implements rlp.Decoder. The decoded payload replaces this handle's payload.
func (s *SharedAccount) DecodeRLP(stream *rlp.Stream) error {
	var obj accountRLP
	if err := stream.Decode(&obj); err != nil {
		return err
	}
	s.lamports = obj.Lamports
	s.SetData(obj.Data)
	s.owner = obj.Owner
	s.executable = obj.Executable
	s.rentEpoch = obj.RentEpoch
	return nil
}

// MarshalJSON implements json.Marshaler.
func (a *Account) MarshalJSON() ([]byte, error) {
	return json.Marshal(toJSON(a))
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Account) UnmarshalJSON(data []byte) error {
	var obj accountJSON
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*a = Account{
		lamports:   obj.Lamports,
		data:       obj.Data,
		owner:      obj.Owner,
		executable: obj.Executable,
		rentEpoch:  obj.RentEpoch,
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s *SharedAccount) MarshalJSON() ([]byte, error) {
	return json.Marshal(toJSON(s))
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *SharedAccount) UnmarshalJSON(data []byte) error {
	var obj accountJSON
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	s.lamports = obj.Lamports
	s.SetData(obj.Data)
	s.owner = obj.Owner
	s.executable = obj.Executable
	s.rentEpoch = obj.RentEpoch
	return nil
}

func newData[T any, P interface {
	*T
	Writable
}](lamports uint64, state any, owner thor.Pubkey) (P, error) {
	data, err := rlp.EncodeToBytes(state)
	if err != nil {
		var zero P
		return zero, errors.Wrap(err, "encode state")
	}
	return Create[T, P](lamports, data, owner, false, thor.InitialRentEpoch), nil
}

func newDataWithSpace[T any, P interface {
	*T
	Writable
}](lamports uint64, state any, space int, owner thor.Pubkey) (P, error) {
	p := Create[T, P](lamports, make([]byte, space), owner, false, thor.InitialRentEpoch)
	if err := SerializeData(p, state); err != nil {
		var zero P
		return zero, err
	}
	return p, nil
}

// SerializeData encodes state and writes it over the payload prefix.
// ErrSizeLimit is returned, and nothing written, if the payload is too short.
func SerializeData(w Writable, state any) error {
	enc, err := rlp.EncodeToBytes(state)
	if err != nil {
		return errors.Wrap(err, "encode state")
	}
	if len(enc) > len(w.Data()) {
		return errors.WithMessagef(ErrSizeLimit, "state needs %d bytes, payload has %d", len(enc), len(w.Data()))
	}
	copy(w.DataAsMutSlice(), enc)
	return nil
}

// DeserializeData decodes the state at the payload prefix into out.
// Bytes after the first value are ignored.
func DeserializeData(r Readable, out any) error {
	data := r.Data()
	if err := rlp.NewStream(bytes.NewReader(data), uint64(len(data))).Decode(out); err != nil {
		return errors.Wrap(err, "decode state")
	}
	return nil
}
