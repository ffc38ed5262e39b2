// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package tag implements the persisted account layout: one discriminant byte
// followed by the rlp encoded body.
package tag

import (
	"fmt"
	"slices"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/stakeledger/reverts"
)

// Tag is the lifecycle discriminant stored as the first account byte.
type Tag uint8

const (
	Uninitialized Tag = iota
	StakePool
	StakeAccount
	InactiveBondAccount
	BondAccount
	CentralState
	Deleted
)

func (t Tag) String() string {
	switch t {
	case Uninitialized:
		return "Uninitialized"
	case StakePool:
		return "StakePool"
	case StakeAccount:
		return "StakeAccount"
	case InactiveBondAccount:
		return "InactiveBondAccount"
	case BondAccount:
		return "BondAccount"
	case CentralState:
		return "CentralState"
	case Deleted:
		return "Deleted"
	default:
		return fmt.Sprintf("Tag(%d)", uint8(t))
	}
}

// Of returns the tag of raw account data. Missing data is Uninitialized.
func Of(data []byte) Tag {
	if len(data) == 0 {
		return Uninitialized
	}
	return Tag(data[0])
}

// Encode returns t followed by the rlp encoding of body.
// Deleted accounts carry no body.
func Encode(t Tag, body any) ([]byte, error) {
	if t == Deleted || body == nil {
		return []byte{byte(t)}, nil
	}
	enc, err := rlp.EncodeToBytes(body)
	if err != nil {
		return nil, errors.Wrapf(err, "encode %v", t)
	}
	return append([]byte{byte(t)}, enc...), nil
}

// Decode checks the tag of data against allowed and decodes the body into body.
// The body is left untouched for Uninitialized and Deleted accounts.
func Decode(data []byte, body any, allowed ...Tag) (Tag, error) {
	t := Of(data)
	if !slices.Contains(allowed, t) {
		return t, reverts.Errorf(reverts.CodeDataTypeMismatch, "data type mismatch: found %v, want %v", t, allowed)
	}
	if t == Uninitialized || t == Deleted {
		return t, nil
	}
	if err := rlp.DecodeBytes(data[1:], body); err != nil {
		return t, errors.Wrapf(err, "decode %v", t)
	}
	return t, nil
}
