// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package checked

import (
	"io"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/reverts"
)

const u128Bits = 128

// U128 is an unsigned 128-bit integer. It is a value type, the zero value is 0.
type U128 struct {
	v uint256.Int
}

// FromUint64 widens x.
func FromUint64(x uint64) U128 {
	var u U128
	u.v.SetUint64(x)
	return u
}

func fromInt(v *uint256.Int, overflow bool) (U128, error) {
	if overflow || v.BitLen() > u128Bits {
		return U128{}, reverts.ErrOverflow
	}
	return U128{v: *v}, nil
}

// Add returns u + x, ErrOverflow above 2^128-1.
func (u U128) Add(x U128) (U128, error) {
	return fromInt(new(uint256.Int).AddOverflow(&u.v, &x.v))
}

// Mul returns u * x, ErrOverflow above 2^128-1.
func (u U128) Mul(x U128) (U128, error) {
	return fromInt(new(uint256.Int).MulOverflow(&u.v, &x.v))
}

// MulUint64 returns u * x.
func (u U128) MulUint64(x uint64) (U128, error) {
	return u.Mul(FromUint64(x))
}

// Div returns the floor of u / x, ErrOverflow on division by zero.
func (u U128) Div(x U128) (U128, error) {
	if x.v.IsZero() {
		return U128{}, reverts.ErrOverflow
	}
	return U128{v: *new(uint256.Int).Div(&u.v, &x.v)}, nil
}

// DivUint64 returns the floor of u / x.
func (u U128) DivUint64(x uint64) (U128, error) {
	return u.Div(FromUint64(x))
}

// Uint64 narrows u, ErrOverflow if it does not fit in 64 bits.
func (u U128) Uint64() (uint64, error) {
	if !u.v.IsUint64() {
		return 0, reverts.ErrOverflow
	}
	return u.v.Uint64(), nil
}

func (u U128) String() string {
	return u.v.Dec()
}

// EncodeRLP implements rlp.Encoder.
func (u U128) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, u.v.ToBig())
}

// DecodeRLP implements rlp.Decoder.
func (u *U128) DecodeRLP(s *rlp.Stream) error {
	b, err := s.BigInt()
	if err != nil {
		return err
	}
	if b.BitLen() > u128Bits {
		return errors.New("u128: value exceeds 128 bits")
	}
	u.v.SetFromBig(b)
	return nil
}
