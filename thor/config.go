// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

var (
	hashParallelThreshold = 1024 // batches smaller than this are hashed on the calling goroutine

	locked bool
)

// Config is the tunable parameters of the account hashing pipeline. Every parameter has a default value
// and may only be changed before the config is locked.
type Config struct {
	HashParallelThreshold int `json:"hashParallelThreshold" yaml:"hashParallelThreshold"` // minimum number of items before hashing fans out to workers.
}

// SetConfig sets the config.
// Zero fields keep their current values.
// If the config is locked, will panic.
func SetConfig(cfg Config) {
	if locked {
		panic("config is locked, cannot be set")
	}

	if cfg.HashParallelThreshold > 0 {
		hashParallelThreshold = cfg.HashParallelThreshold
	}
}

// GetConfig returns the config in effect.
func GetConfig() Config {
	return Config{
		HashParallelThreshold: hashParallelThreshold,
	}
}

// LockConfig locks the config, preventing any further changes.
func LockConfig() {
	locked = true
}

func HashParallelThreshold() int {
	return hashParallelThreshold
}
