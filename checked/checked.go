// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package checked implements the arithmetic used by the ledger: every operation
// either returns the exact result or fails, nothing wraps or saturates silently.
package checked

import (
	"math"

	gmath "github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/stakeledger/reverts"
)

// Add returns x + y, ErrOverflow if the sum does not fit in 64 bits.
func Add(x, y uint64) (uint64, error) {
	sum, overflow := gmath.SafeAdd(x, y)
	if overflow {
		return 0, reverts.ErrOverflow
	}
	return sum, nil
}

// Sub returns x - y, ErrUnderflow if y > x.
func Sub(x, y uint64) (uint64, error) {
	diff, underflow := gmath.SafeSub(x, y)
	if underflow {
		return 0, reverts.ErrUnderflow
	}
	return diff, nil
}

// Mul returns x * y, ErrOverflow if the product does not fit in 64 bits.
func Mul(x, y uint64) (uint64, error) {
	prod, overflow := gmath.SafeMul(x, y)
	if overflow {
		return 0, reverts.ErrOverflow
	}
	return prod, nil
}

// Div returns x / y, ErrOverflow on division by zero.
func Div(x, y uint64) (uint64, error) {
	if y == 0 {
		return 0, reverts.ErrOverflow
	}
	return x / y, nil
}

// Elapsed returns the non-negative number of seconds from since to now.
// A clock going backwards yields zero.
func Elapsed(now, since int64) uint64 {
	if now <= since {
		return 0
	}
	return uint64(now) - uint64(since)
}

// AddSeconds returns t + secs, ErrOverflow if the result leaves the int64 range.
func AddSeconds(t int64, secs uint64) (int64, error) {
	if secs > uint64(math.MaxInt64) {
		return 0, reverts.ErrOverflow
	}
	s := int64(secs)
	if t > 0 && s > math.MaxInt64-t {
		return 0, reverts.ErrOverflow
	}
	return t + s, nil
}
