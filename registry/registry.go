// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package registry derives the deterministic identities of ledger accounts.
package registry

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/ledger"
)

// Registry maps seed material to account identities.
type Registry interface {
	// CreateAddress derives the identity of seeds, which already include the bump.
	CreateAddress(seeds ...[]byte) (ledger.Identity, error)
	// FindAddress searches the highest bump that yields a valid identity for seeds.
	FindAddress(seeds ...[]byte) (ledger.Identity, uint8, error)
	// ProgramID returns the identity the derived addresses belong to.
	ProgramID() ledger.Identity
}

// PDA derives program addresses the way the solana runtime does.
type PDA struct {
	programID solana.PublicKey
}

var _ Registry = (*PDA)(nil)

func New(programID ledger.Identity) *PDA {
	return &PDA{programID: solana.PublicKeyFromBytes(programID.Bytes())}
}

func (p *PDA) ProgramID() ledger.Identity {
	return ledger.Identity(p.programID)
}

func (p *PDA) CreateAddress(seeds ...[]byte) (ledger.Identity, error) {
	addr, err := solana.CreateProgramAddress(seeds, p.programID)
	if err != nil {
		return ledger.Identity{}, errors.Wrap(err, "create program address")
	}
	return ledger.Identity(addr), nil
}

func (p *PDA) FindAddress(seeds ...[]byte) (ledger.Identity, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(seeds, p.programID)
	if err != nil {
		return ledger.Identity{}, 0, errors.Wrap(err, "find program address")
	}
	return ledger.Identity(addr), bump, nil
}
