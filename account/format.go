// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package account

import (
	"fmt"
	"strings"
)

const maxDebugDataLen = 64

// Format renders an account for debugging. At most the first 64 payload bytes are shown.
func Format(r Readable) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Account {\n\tlamports:   %d\n\tdata.len:   %d\n\towner:      %v\n\texecutable: %v\n\trentEpoch:  %d\n",
		r.Lamports(),
		len(r.Data()),
		r.Owner(),
		r.Executable(),
		r.RentEpoch(),
	)
	if data := r.Data(); len(data) > 0 {
		preview := data[:min(len(data), maxDebugDataLen)]
		fmt.Fprintf(&b, "\tdata:       %x", preview)
		if len(data) > maxDebugDataLen {
			b.WriteString("...")
		}
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}
