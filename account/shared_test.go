// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package account

import (
	"bytes"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vechain/acctstate/thor"
	"pgregory.net/rapid"
)

func TestSharedClone(t *testing.T) {
	s := Create[SharedAccount](1, []byte{1, 2, 3}, thor.Pubkey{}, false, 0)
	assert.False(t, s.IsShared())

	c := s.Clone()
	assert.True(t, s.IsShared())
	assert.True(t, c.IsShared())
	assert.True(t, &s.Data()[0] == &c.Data()[0])

	c.Release()
	assert.False(t, s.IsShared())
	assert.Empty(t, c.Data())

	// ToShared is a cheap clone
	c = s.ToShared()
	assert.True(t, s.IsShared())
	assert.True(t, Equal(s, c))
}

func TestDroppedHandleReleasesHold(t *testing.T) {
	tests := []struct {
		name string
		drop func(s *SharedAccount)
	}{
		{"clone", func(s *SharedAccount) { _ = s.ToShared() }},
		{"read guard", func(s *SharedAccount) {
			g := NewLocked(s).RLock()
			defer g.RUnlock()
			_ = g.ToShared()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Create[SharedAccount](1, make([]byte, 8, 64), thor.Pubkey{}, false, 0)
			tt.drop(s)

			assert.Eventually(t, func() bool {
				runtime.GC()
				return !s.IsShared()
			}, 5*time.Second, 10*time.Millisecond)

			s.SetDataFromSlice(make([]byte, 16))
			assert.Equal(t, 64, s.Capacity(), "a sole holder overwrites in place")
			assert.Len(t, s.Data(), 16)
		})
	}
}

func TestReleaseThenCollect(t *testing.T) {
	s := Create[SharedAccount](1, []byte{1, 2, 3}, thor.Pubkey{}, false, 0)
	func() {
		c := s.Clone()
		c.Release()
		// SetData drops the clone's hold on the shared payload
		c = s.Clone()
		c.SetData([]byte{4})
	}()
	assert.False(t, s.IsShared())

	// collecting the released handles must not drop the remaining hold again
	runtime.GC()
	runtime.GC()
	c := s.Clone()
	assert.True(t, s.IsShared())
	assert.True(t, c.IsShared())
	assert.Equal(t, []byte{1, 2, 3}, c.Data())
}

func TestSharedZeroValue(t *testing.T) {
	var s SharedAccount
	assert.Empty(t, s.Data())
	assert.False(t, s.IsShared())
	assert.Equal(t, 0, s.Capacity())

	c := s.Clone()
	assert.Empty(t, c.Data())

	s.ExtendFromSlice([]byte{1})
	assert.Equal(t, []byte{1}, s.Data())
	assert.Empty(t, c.Data())
}

func TestDataAsMutSlicePrivatizes(t *testing.T) {
	s := Create[SharedAccount](1, []byte{1, 2, 3}, thor.Pubkey{}, false, 0)
	c := s.Clone()

	d := c.DataAsMutSlice()
	d[0] = 9
	assert.Equal(t, []byte{1, 2, 3}, s.Data())
	assert.Equal(t, []byte{9, 2, 3}, c.Data())
	assert.False(t, s.IsShared())
	assert.False(t, c.IsShared())

	// uniquely held, written in place
	before := &s.Data()[0]
	s.DataAsMutSlice()[1] = 8
	assert.True(t, before == &s.Data()[0])
	assert.Equal(t, []byte{1, 8, 3}, s.Data())
}

func TestSetDataFromSliceUnique(t *testing.T) {
	s := Create[SharedAccount](1, make([]byte, 10, 64), thor.Pubkey{}, false, 0)
	capBefore := s.Capacity()

	for _, n := range []int{0, 1, 10, 40, 64, 3} {
		data := bytes.Repeat([]byte{byte(n)}, n)
		s.SetDataFromSlice(data)
		assert.Equal(t, data, s.Data())
		assert.Equal(t, capBefore, s.Capacity(), "must not reallocate when content fits")
	}

	data := bytes.Repeat([]byte{7}, 100)
	s.SetDataFromSlice(data)
	assert.Equal(t, data, s.Data())
	assert.GreaterOrEqual(t, s.Capacity(), 100)

	// the source is copied, not retained
	data[0] = 0
	assert.Equal(t, byte(7), s.Data()[0])
}

func TestSetDataFromSliceShared(t *testing.T) {
	s := Create[SharedAccount](1, []byte{1, 2, 3}, thor.Pubkey{}, false, 0)
	c := s.Clone()

	s.SetDataFromSlice([]byte{4, 5})
	assert.Equal(t, []byte{4, 5}, s.Data())
	assert.Equal(t, []byte{1, 2, 3}, c.Data())
	assert.False(t, c.IsShared())
	assert.False(t, s.IsShared())
}

func TestSetData(t *testing.T) {
	s := Create[SharedAccount](1, []byte{1, 2, 3}, thor.Pubkey{}, false, 0)
	c := s.Clone()

	s.SetData([]byte{9})
	assert.Equal(t, []byte{9}, s.Data())
	assert.Equal(t, []byte{1, 2, 3}, c.Data())
	assert.False(t, c.IsShared())
}

func TestResize(t *testing.T) {
	s := Create[SharedAccount](1, []byte{1, 2, 3}, thor.Pubkey{}, false, 0)
	c := s.Clone()

	s.Resize(5, 0xff)
	assert.Equal(t, []byte{1, 2, 3, 0xff, 0xff}, s.Data())
	assert.Equal(t, []byte{1, 2, 3}, c.Data())

	s.Resize(1, 0)
	assert.Equal(t, []byte{1}, s.Data())

	// bytes left behind by truncation are refilled
	s.Resize(3, 0xaa)
	assert.Equal(t, []byte{1, 0xaa, 0xaa}, s.Data())
}

func TestReserveAndExtend(t *testing.T) {
	s := Create[SharedAccount](1, []byte{1, 2, 3}, thor.Pubkey{}, false, 0)
	c := s.Clone()

	s.Reserve(100)
	assert.GreaterOrEqual(t, s.Capacity(), 103)
	assert.Equal(t, []byte{1, 2, 3}, s.Data())
	assert.False(t, c.IsShared())

	before := &s.Data()[0]
	s.ExtendFromSlice([]byte{4, 5})
	assert.Equal(t, []byte{1, 2, 3, 4, 5}, s.Data())
	assert.True(t, before == &s.Data()[0], "reserved capacity should be used")
	assert.Equal(t, []byte{1, 2, 3}, c.Data())
}

func TestSpareDataCapacityMut(t *testing.T) {
	s := Create[SharedAccount](1, make([]byte, 2, 8), thor.Pubkey{}, false, 0)
	c := s.Clone()

	spare := s.SpareDataCapacityMut()
	assert.Len(t, spare, s.Capacity()-2)
	for i := range spare {
		spare[i] = 0xee
	}
	assert.Equal(t, []byte{0, 0}, s.Data())
	assert.Equal(t, []byte{0, 0}, c.Data())

	// written spare bytes become visible once the payload is extended over them
	s2 := Create[SharedAccount](1, make([]byte, 2, 8), thor.Pubkey{}, false, 0)
	spare = s2.SpareDataCapacityMut()
	require.Len(t, spare, 6)
	spare[0] = 0xee
	s2.Resize(3, 0)
	assert.Equal(t, []byte{0, 0, 0}, s2.Data(), "resize fills new bytes")
}

func TestConcurrentHolders(t *testing.T) {
	s := NewShared(1, 256, thor.Pubkey{})
	handles := make([]*SharedAccount, 8)
	for i := range handles {
		handles[i] = s.Clone()
	}

	var wg sync.WaitGroup
	for i, h := range handles {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d := h.DataAsMutSlice()
			for j := range d {
				d[j] = byte(i + 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, make([]byte, 256), s.Data())
	for i, h := range handles {
		assert.Equal(t, bytes.Repeat([]byte{byte(i + 1)}, 256), h.Data())
	}
}

// TestSharedAccountModel drives random handles through random operations and
// checks every handle against a plain byte slice model after each step.
func TestSharedAccountModel(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		initial := rapid.SliceOfN(rapid.Byte(), 0, 64).Draw(t, "initial")
		handles := []*SharedAccount{Create[SharedAccount](1, bytes.Clone(initial), thor.Pubkey{}, false, 0)}
		models := [][]byte{bytes.Clone(initial)}

		steps := rapid.IntRange(1, 50).Draw(t, "steps")
		for range steps {
			i := rapid.IntRange(0, len(handles)-1).Draw(t, "handle")
			h := handles[i]

			switch rapid.IntRange(0, 7).Draw(t, "op") {
			case 0:
				handles = append(handles, h.Clone())
				models = append(models, bytes.Clone(models[i]))
			case 1:
				data := rapid.SliceOfN(rapid.Byte(), 0, 200).Draw(t, "data")
				unique := h.buffer() != nil && !h.IsShared()
				capBefore := h.Capacity()
				h.SetDataFromSlice(data)
				models[i] = bytes.Clone(data)
				if unique && len(data) <= capBefore && h.Capacity() != capBefore {
					t.Fatalf("reallocated: cap %d -> %d for %d bytes", capBefore, h.Capacity(), len(data))
				}
			case 2:
				n := rapid.IntRange(0, 200).Draw(t, "len")
				fill := rapid.Byte().Draw(t, "fill")
				h.Resize(n, fill)
				if n <= len(models[i]) {
					models[i] = models[i][:n]
				} else {
					models[i] = append(models[i], bytes.Repeat([]byte{fill}, n-len(models[i]))...)
				}
			case 3:
				data := rapid.SliceOfN(rapid.Byte(), 0, 100).Draw(t, "extend")
				h.ExtendFromSlice(data)
				models[i] = append(models[i], data...)
			case 4:
				h.Reserve(rapid.IntRange(0, 300).Draw(t, "reserve"))
			case 5:
				d := h.DataAsMutSlice()
				if len(d) > 0 {
					pos := rapid.IntRange(0, len(d)-1).Draw(t, "pos")
					v := rapid.Byte().Draw(t, "value")
					d[pos] = v
					models[i][pos] = v
				}
			case 6:
				spare := h.SpareDataCapacityMut()
				for j := range spare {
					spare[j] = 0xee
				}
			case 7:
				a := h.IntoAccount()
				if !bytes.Equal(models[i], a.Data()) {
					t.Fatalf("handle %d: into account %x, want %x", i, a.Data(), models[i])
				}
				handles[i] = a.IntoShared()
			}

			for j, h := range handles {
				if !bytes.Equal(models[j], h.Data()) {
					t.Fatalf("handle %d: got %x, want %x", j, h.Data(), models[j])
				}
			}
		}
	})
}
