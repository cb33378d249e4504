// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

// Slot is the unit of time given to a leader for producing a block.
type Slot = uint64

// Epoch is the unit of time a leader schedule is honored. It lasts for some number of slots.
type Epoch = uint64

const (
	GenesisEpoch Epoch = 0
	// InitialRentEpoch must be kept in sync with the zero value of an account's rent epoch.
	InitialRentEpoch Epoch = 0
)
