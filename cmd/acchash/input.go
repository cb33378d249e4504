// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/vechain/acctstate/account"
	"github.com/vechain/acctstate/accounthash"
	"github.com/vechain/acctstate/thor"
	"gopkg.in/yaml.v3"
)

// inputFile is the account set to hash. JSON input is read as YAML.
type inputFile struct {
	Config       thor.Config    `yaml:"config"`
	ExpectedRoot *thor.Bytes32  `yaml:"expectedRoot"`
	Accounts     []inputAccount `yaml:"accounts"`
}

type inputAccount struct {
	Pubkey     thor.Pubkey   `yaml:"pubkey"`
	Lamports   uint64        `yaml:"lamports"`
	Data       hexutil.Bytes `yaml:"data"`
	Owner      thor.Pubkey   `yaml:"owner"`
	Executable bool          `yaml:"executable"`
	RentEpoch  uint64        `yaml:"rentEpoch"`
}

func loadInput(path string) (*inputFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read input")
	}

	var input inputFile
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, errors.Wrapf(err, "decode input %s", path)
	}
	return &input, nil
}

func (in *inputFile) entries() []accounthash.Entry {
	entries := make([]accounthash.Entry, 0, len(in.Accounts))
	for _, acc := range in.Accounts {
		entries = append(entries, accounthash.Entry{
			Pubkey:  acc.Pubkey,
			Account: account.Create[account.SharedAccount](acc.Lamports, acc.Data, acc.Owner, acc.Executable, acc.RentEpoch),
		})
	}
	return entries
}
