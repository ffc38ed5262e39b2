// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakeledger/ledger"
)

var programID = ledger.MustParseIdentity("So11111111111111111111111111111111111111112")

func TestFindThenCreate(t *testing.T) {
	reg := New(programID)
	assert.Equal(t, programID, reg.ProgramID())

	owner := ledger.BytesToIdentity([]byte("owner"))
	seeds := [][]byte{[]byte(ledger.StakePoolSeed), owner.Bytes()}

	found, bump, err := reg.FindAddress(seeds...)
	require.NoError(t, err)

	created, err := reg.CreateAddress(append(seeds, []byte{bump})...)
	require.NoError(t, err)
	assert.Equal(t, found, created)

	again, bump2, err := reg.FindAddress(seeds...)
	require.NoError(t, err)
	assert.Equal(t, found, again)
	assert.Equal(t, bump, bump2)
}

func TestDistinctSeeds(t *testing.T) {
	reg := New(programID)

	a, _, err := reg.FindAddress([]byte(ledger.StakeAccountSeed), []byte{1})
	require.NoError(t, err)
	b, _, err := reg.FindAddress([]byte(ledger.StakeAccountSeed), []byte{2})
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	other, _, err := New(ledger.BytesToIdentity([]byte{9})).FindAddress([]byte(ledger.StakeAccountSeed), []byte{1})
	require.NoError(t, err)
	assert.NotEqual(t, a, other)
}

func TestSeedTooLong(t *testing.T) {
	_, err := New(programID).CreateAddress(bytes.Repeat([]byte{1}, 33))
	assert.Error(t, err)
}
