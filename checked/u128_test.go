// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package checked

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestU128RLP(t *testing.T) {
	big1, err := FromUint64(1 << 63).MulUint64(1 << 60)
	require.NoError(t, err)

	values := []U128{{}, FromUint64(7), big1}
	data, err := rlp.EncodeToBytes(values)
	require.NoError(t, err)

	var decoded []U128
	require.NoError(t, rlp.DecodeBytes(data, &decoded))
	require.Len(t, decoded, len(values))
	for i := range values {
		assert.Equal(t, values[i].String(), decoded[i].String())
	}

	// wider than 128 bits is rejected
	wide := new(big.Int).Lsh(big.NewInt(1), 130)
	data, err = rlp.EncodeToBytes(wide)
	require.NoError(t, err)
	var u U128
	assert.Error(t, rlp.DecodeBytes(data, &u))
}
