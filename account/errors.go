// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package account

import "github.com/pkg/errors"

var (
	// ErrArithmeticOverflow is returned when adding lamports overflows.
	ErrArithmeticOverflow = errors.New("arithmetic overflowed")
	// ErrArithmeticUnderflow is returned when subtracting lamports underflows.
	ErrArithmeticUnderflow = errors.New("arithmetic underflowed")
	// ErrSizeLimit is returned when an encoded state does not fit into the account data.
	ErrSizeLimit = errors.New("size limit exceeded")
)
