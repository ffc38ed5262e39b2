// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package token is the token transfer service and mint supply oracle the staker hands value
// movements to. Token records live in the same state as the staker accounts, so a transfer
// commits or reverts together with the operation that issued it.
package token

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/ledger"
)

var (
	ErrNotFound          = errors.New("token: not found")
	ErrExists            = errors.New("token: already exists")
	ErrInsufficientFunds = errors.New("token: insufficient funds")
	ErrOwnerMismatch     = errors.New("token: authority is not the account owner")
	ErrMintMismatch      = errors.New("token: mint mismatch")
	ErrMintAuthority     = errors.New("token: authority is not the mint authority")
)

// Account holds a balance of a single mint.
type Account struct {
	Mint   ledger.Identity
	Owner  ledger.Identity
	Amount uint64
}

// Mint describes a token.
type Mint struct {
	Authority ledger.Identity
	Supply    uint64
	Decimals  uint8
}

func decodeAccount(data []byte) (*Account, error) {
	var acc Account
	if err := rlp.DecodeBytes(data, &acc); err != nil {
		return nil, errors.Wrap(err, "decode token account")
	}
	return &acc, nil
}

func decodeMint(data []byte) (*Mint, error) {
	var m Mint
	if err := rlp.DecodeBytes(data, &m); err != nil {
		return nil, errors.Wrap(err, "decode mint")
	}
	return &m, nil
}
