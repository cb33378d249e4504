// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoopMetrics(t *testing.T) {
	metrics = defaultNoopMetrics()

	count1 := Counter("count1")
	count1.Add(1)
	Counter("count2").Add(1)

	hist := Histogram("hist1", nil)
	for i := range 10 {
		hist.Observe(int64(i))
	}

	CounterVec("countVec1", []string{"zeroOrOne"}).
		AddWithLabel(1, map[string]string{"thisIsNonsense": "butDoesntBreak"})
	Gauge("gauge1").Set(3)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf))
	require.Zero(t, buf.Len(), "noop metrics write nothing")
}
