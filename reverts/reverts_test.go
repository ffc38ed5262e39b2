// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
	"fmt"
	"math/big"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func Test_Reverts(t *testing.T) {
	revert := New(CodeOverflow, "test")
	assert.Equal(t, "test", revert.message)
	assert.Equal(t, revert.Error(), revert.message)
	assert.Equal(t, CodeOverflow, revert.Code())

	assert.True(t, IsRevertErr(revert))
	assert.False(t, IsRevertErr(nil))
	assert.False(t, IsRevertErr(fmt.Errorf("test")))
	assert.False(t, IsRevertErr(big.NewInt(0)))
}

func TestIsMatchesCode(t *testing.T) {
	err := Errorf(CodeOverflow, "reward %d overflows", 10)
	assert.True(t, errors.Is(err, ErrOverflow))
	assert.False(t, errors.Is(err, ErrUnderflow))

	wrapped := pkgerrors.Wrap(err, "claim rewards")
	assert.True(t, errors.Is(wrapped, ErrOverflow))
	assert.True(t, IsRevertErr(wrapped))
	assert.Equal(t, CodeOverflow, CodeOf(wrapped))

	assert.Equal(t, CodeUnknown, CodeOf(errors.New("disk full")))
	assert.False(t, errors.Is(errors.New("overflow"), ErrOverflow))
}

func TestCodeString(t *testing.T) {
	assert.Equal(t, "PoolNotEmpty", CodePoolNotEmpty.String())
	assert.Equal(t, "Code(200)", Code(200).String())
}
