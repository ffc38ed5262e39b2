// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/checked"
	"github.com/vechain/stakeledger/kv"
	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/state"
)

var (
	accountBucket = kv.Bucket("t")
	mintBucket    = kv.Bucket("m")
)

// Ledger keeps token accounts and mints in a state.
type Ledger struct {
	state *state.State
}

func New(st *state.State) *Ledger {
	return &Ledger{state: st}
}

// Account returns the token account id.
func (l *Ledger) Account(id ledger.Identity) (*Account, error) {
	var acc *Account
	err := l.state.DecodeStorage(accountBucket.Key(id.Bytes()), func(data []byte) (err error) {
		if data == nil {
			return errors.Wrapf(ErrNotFound, "account %v", id)
		}
		acc, err = decodeAccount(data)
		return
	})
	return acc, err
}

// Mint returns the mint id.
func (l *Ledger) Mint(id ledger.Identity) (*Mint, error) {
	var m *Mint
	err := l.state.DecodeStorage(mintBucket.Key(id.Bytes()), func(data []byte) (err error) {
		if data == nil {
			return errors.Wrapf(ErrNotFound, "mint %v", id)
		}
		m, err = decodeMint(data)
		return
	})
	return m, err
}

// Supply returns the circulating supply of mint.
func (l *Ledger) Supply(mint ledger.Identity) (uint64, error) {
	m, err := l.Mint(mint)
	if err != nil {
		return 0, err
	}
	return m.Supply, nil
}

func (l *Ledger) setAccount(id ledger.Identity, acc *Account) error {
	return l.state.EncodeStorage(accountBucket.Key(id.Bytes()), func() ([]byte, error) {
		return rlp.EncodeToBytes(acc)
	})
}

func (l *Ledger) setMint(id ledger.Identity, m *Mint) error {
	return l.state.EncodeStorage(mintBucket.Key(id.Bytes()), func() ([]byte, error) {
		return rlp.EncodeToBytes(m)
	})
}

// CreateMint registers a new mint with zero supply.
func (l *Ledger) CreateMint(id, authority ledger.Identity, decimals uint8) error {
	exists, err := l.state.Exists(mintBucket.Key(id.Bytes()))
	if err != nil {
		return err
	}
	if exists {
		return errors.Wrapf(ErrExists, "mint %v", id)
	}
	return l.setMint(id, &Mint{Authority: authority, Decimals: decimals})
}

// CreateAccount opens an empty account of mint owned by owner.
func (l *Ledger) CreateAccount(id, mint, owner ledger.Identity) error {
	exists, err := l.state.Exists(accountBucket.Key(id.Bytes()))
	if err != nil {
		return err
	}
	if exists {
		return errors.Wrapf(ErrExists, "account %v", id)
	}
	if _, err := l.Mint(mint); err != nil {
		return err
	}
	return l.setAccount(id, &Account{Mint: mint, Owner: owner})
}

// MintTo issues amount new tokens into dest.
func (l *Ledger) MintTo(mint, dest, authority ledger.Identity, amount uint64) error {
	m, err := l.Mint(mint)
	if err != nil {
		return err
	}
	if m.Authority != authority {
		return ErrMintAuthority
	}
	acc, err := l.Account(dest)
	if err != nil {
		return err
	}
	if acc.Mint != mint {
		return ErrMintMismatch
	}
	if m.Supply, err = checked.Add(m.Supply, amount); err != nil {
		return err
	}
	if acc.Amount, err = checked.Add(acc.Amount, amount); err != nil {
		return err
	}
	if err := l.setMint(mint, m); err != nil {
		return err
	}
	return l.setAccount(dest, acc)
}

// Transfer moves amount from source to destination. authority must own source.
func (l *Ledger) Transfer(source, destination, authority ledger.Identity, amount uint64) error {
	src, err := l.Account(source)
	if err != nil {
		return err
	}
	dst, err := l.Account(destination)
	if err != nil {
		return err
	}
	if src.Owner != authority {
		return errors.Wrapf(ErrOwnerMismatch, "account %v", source)
	}
	if src.Mint != dst.Mint {
		return ErrMintMismatch
	}
	if src.Amount < amount {
		return errors.Wrapf(ErrInsufficientFunds, "account %v has %d, needs %d", source, src.Amount, amount)
	}
	if source == destination {
		return nil
	}
	src.Amount -= amount
	if dst.Amount, err = checked.Add(dst.Amount, amount); err != nil {
		return err
	}
	if err := l.setAccount(source, src); err != nil {
		return err
	}
	return l.setAccount(destination, dst)
}

// SetOwner hands account over to newOwner. owner must be the current owner.
func (l *Ledger) SetOwner(id, owner, newOwner ledger.Identity) error {
	acc, err := l.Account(id)
	if err != nil {
		return err
	}
	if acc.Owner != owner {
		return errors.Wrapf(ErrOwnerMismatch, "account %v", id)
	}
	acc.Owner = newOwner
	return l.setAccount(id, acc)
}
