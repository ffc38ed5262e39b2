// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package centralstate

import (
	"github.com/vechain/stakeledger/ledger"
	"github.com/vechain/stakeledger/reverts"
	"github.com/vechain/stakeledger/staker/tag"
)

// CentralState is the deployment wide singleton.
type CentralState struct {
	SignerNonce    uint8           // bump of the derived central state identity
	DailyInflation uint64          // reward tokens issued per day
	TokenMint      ledger.Identity // the reward token
	Authority      ledger.Identity // the only party allowed to change DailyInflation
	CentralVault   ledger.Identity // token account funding rewards and bond unlocks
}

func New(nonce uint8, dailyInflation uint64, mint, authority, vault ledger.Identity) *CentralState {
	return &CentralState{
		SignerNonce:    nonce,
		DailyInflation: dailyInflation,
		TokenMint:      mint,
		Authority:      authority,
		CentralVault:   vault,
	}
}

// Seeds returns the seeds of the central state identity.
func Seeds(programID ledger.Identity, nonce uint8) [][]byte {
	return [][]byte{programID.Bytes(), {nonce}}
}

// SetInflation changes the daily inflation. caller must be the authority.
func (c *CentralState) SetInflation(caller ledger.Identity, rate uint64) error {
	if caller != c.Authority {
		return reverts.ErrUnauthorized
	}
	c.DailyInflation = rate
	return nil
}

func (c *CentralState) Encode() ([]byte, error) {
	return tag.Encode(tag.CentralState, c)
}

// Decode loads a central state, any other tag is a DataTypeMismatch.
func Decode(data []byte) (*CentralState, error) {
	var c CentralState
	if _, err := tag.Decode(data, &c, tag.CentralState); err != nil {
		return nil, err
	}
	return &c, nil
}
