// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

// protocol constants
const (
	SecondsInDay int64 = 3600 * 24

	// StakerMultiplier is the percentage of the inflation paid to stakers,
	// the pool owner receives the rest.
	StakerMultiplier uint64 = 80
	OwnerMultiplier  uint64 = 100 - StakerMultiplier

	// StakeBufferLen is the number of daily pool balances kept. Older days are
	// overwritten and cannot be claimed anymore.
	StakeBufferLen uint64 = 365

	// BondSignerThreshold is the default number of sellers required to sign a bond.
	BondSignerThreshold uint64 = 1
)

// seed prefixes of program derived identities
const (
	StakePoolSeed    = "stake_pool"
	StakeAccountSeed = "stake_account"
	BondAccountSeed  = "bond_account"
)
