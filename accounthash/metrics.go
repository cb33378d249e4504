// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounthash

import (
	"github.com/ethereum/go-ethereum/log"
	"github.com/vechain/acctstate/metrics"
)

var (
	logger = log.New("pkg", "accounthash")

	metricHashCount = metrics.LazyLoadCounterVec("account_hash_count", []string{"path"})
)
