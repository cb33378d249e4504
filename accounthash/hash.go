// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package accounthash computes account digests and folds them into batch roots.
package accounthash

import (
	"encoding/binary"
	"io"

	"github.com/vechain/acctstate/account"
	"github.com/vechain/acctstate/thor"
)

const (
	bufSize = 128
	// lamports, an unused slot, rent epoch, executable flag, owner and pubkey.
	totalFieldSize = 8 + 8 + 8 + 1 + thor.PubkeyLength + thor.PubkeyLength
	// dataSizeCanFit is the longest payload hashed together with the fields in one call.
	dataSizeCanFit = bufSize - totalFieldSize
)

// AccountHash is the digest of an account.
type AccountHash thor.Bytes32

// String implements fmt.Stringer.
func (h AccountHash) String() string {
	return thor.Bytes32(h).String()
}

// IsZero returns whether h is the digest of a zero lamports account.
func (h AccountHash) IsZero() bool {
	return thor.Bytes32(h).IsZero()
}

// MarshalText implements encoding.TextMarshaler.
func (h AccountHash) MarshalText() ([]byte, error) {
	return thor.Bytes32(h).MarshalText()
}

// HashAccount computes the digest of an account stored at pubkey.
//
// The digest is blake3 over lamports (LE) ‖ rent epoch (LE) ‖ data ‖ executable ‖ owner ‖ pubkey.
// A zero lamports account always yields the zero digest.
func HashAccount(r account.Readable, pubkey thor.Pubkey) AccountHash {
	return hashAccountData(r.Lamports(), r.Owner(), r.Executable(), r.RentEpoch(), r.Data(), pubkey, dataSizeCanFit)
}

func hashAccountData(
	lamports uint64,
	owner thor.Pubkey,
	executable bool,
	rentEpoch thor.Epoch,
	data []byte,
	pubkey thor.Pubkey,
	dataFit int,
) AccountHash {
	if lamports == 0 {
		metricHashCount().AddWithLabel(1, map[string]string{"path": "zero"})
		return AccountHash{}
	}

	return AccountHash(thor.Blake3Fn(func(w io.Writer) {
		var arr [bufSize]byte
		buf := arr[:0]
		buf = binary.LittleEndian.AppendUint64(buf, lamports)
		buf = binary.LittleEndian.AppendUint64(buf, rentEpoch)

		if len(data) > dataFit {
			// too large for the buffer, stream what is collected so far and the data
			metricHashCount().AddWithLabel(1, map[string]string{"path": "streamed"})
			w.Write(buf)
			buf = buf[:0]
			w.Write(data)
		} else {
			metricHashCount().AddWithLabel(1, map[string]string{"path": "buffered"})
			buf = append(buf, data...)
		}

		if executable {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
		buf = append(buf, owner[:]...)
		buf = append(buf, pubkey[:]...)
		w.Write(buf)
	}))
}
