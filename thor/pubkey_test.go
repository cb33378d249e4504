// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPubkeyString(t *testing.T) {
	assert.Equal(t, strings.Repeat("1", 32), Pubkey{}.String())

	p := NewUniquePubkey()
	parsed, err := ParsePubkey(p.String())
	require.NoError(t, err)
	assert.Equal(t, p, parsed)
}

func TestParsePubkey(t *testing.T) {
	vote := MustParsePubkey("Vote111111111111111111111111111111111111111")
	assert.False(t, vote.IsZero())

	_, err := ParsePubkey(strings.Repeat("1", 45))
	assert.Equal(t, errPubkeyTooLong, err)

	_, err = ParsePubkey("0OIl")
	assert.Error(t, err, "non base58 alphabet")

	// decodes fine, but to fewer than 32 bytes
	_, err = ParsePubkey("2")
	assert.Equal(t, errWrongPubkeySize, err)

	assert.Panics(t, func() { MustParsePubkey("bad!") })
}

func TestPubkeyFromSlice(t *testing.T) {
	_, err := PubkeyFromSlice(make([]byte, 31))
	assert.Error(t, err)

	b := make([]byte, 32)
	b[0] = 9
	p, err := PubkeyFromSlice(b)
	require.NoError(t, err)
	assert.Equal(t, b, p.Bytes())

	short := BytesToPubkey([]byte{1})
	assert.Equal(t, byte(1), short[31])
}

func TestPubkeyOrdering(t *testing.T) {
	a := NewUniquePubkey()
	b := NewUniquePubkey()

	assert.NotEqual(t, a, b)
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
}

func TestPubkeyText(t *testing.T) {
	type wrapper struct {
		Owner Pubkey `json:"owner"`
	}
	w := wrapper{Owner: NewUniquePubkey()}

	data, err := json.Marshal(w)
	require.NoError(t, err)
	assert.Equal(t, `{"owner":"`+w.Owner.String()+`"}`, string(data))

	var decoded wrapper
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, w, decoded)

	assert.Error(t, json.Unmarshal([]byte(`{"owner":"xyz"}`), &decoded))
}
