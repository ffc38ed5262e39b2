// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

// Signers is the set of identities that authorized the current operation.
// Verifying signatures happens before an operation reaches the ledger.
type Signers map[Identity]struct{}

// NewSigners creates a signer set.
func NewSigners(ids ...Identity) Signers {
	s := make(Signers, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// IsSigner returns whether id authorized the operation.
func (s Signers) IsSigner(id Identity) bool {
	if s == nil {
		return false
	}
	_, ok := s[id]
	return ok
}
