// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
	"fmt"
)

// Code classifies a reverted operation.
type Code uint8

const (
	CodeUnknown Code = iota
	CodeOverflow
	CodeUnderflow
	CodeDataTypeMismatch
	CodeAccountNotDeterministic
	CodeUnauthorized
	CodeSignerRequired
	CodePoolNotEmpty
	CodeWrongOwner
	CodeWrongMint
	CodeWrongVault
	CodeWrongDestination
	CodeAccountNotEmpty
	CodeAlreadyInitialized
	CodeInvalidAmount
	CodeInvalidArgument
	CodeUnlockNotStarted
	CodeBondNotUnlocked
	CodeBondSellerLimit
	CodeUnclaimedRewards
)

var codeNames = map[Code]string{
	CodeUnknown:                 "Unknown",
	CodeOverflow:                "Overflow",
	CodeUnderflow:               "Underflow",
	CodeDataTypeMismatch:        "DataTypeMismatch",
	CodeAccountNotDeterministic: "AccountNotDeterministic",
	CodeUnauthorized:            "Unauthorized",
	CodeSignerRequired:          "SignerRequired",
	CodePoolNotEmpty:            "PoolNotEmpty",
	CodeWrongOwner:              "WrongOwner",
	CodeWrongMint:               "WrongMint",
	CodeWrongVault:              "WrongVault",
	CodeWrongDestination:        "WrongDestination",
	CodeAccountNotEmpty:         "AccountNotEmpty",
	CodeAlreadyInitialized:      "AlreadyInitialized",
	CodeInvalidAmount:           "InvalidAmount",
	CodeInvalidArgument:         "InvalidArgument",
	CodeUnlockNotStarted:        "UnlockNotStarted",
	CodeBondNotUnlocked:         "BondNotUnlocked",
	CodeBondSellerLimit:         "BondSellerLimit",
	CodeUnclaimedRewards:        "UnclaimedRewards",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", uint8(c))
}

var (
	ErrOverflow                = New(CodeOverflow, "overflow")
	ErrUnderflow               = New(CodeUnderflow, "underflow")
	ErrDataTypeMismatch        = New(CodeDataTypeMismatch, "data type mismatch")
	ErrAccountNotDeterministic = New(CodeAccountNotDeterministic, "account not deterministic")
	ErrUnauthorized            = New(CodeUnauthorized, "unauthorized")
	ErrSignerRequired          = New(CodeSignerRequired, "signer required")
	ErrPoolNotEmpty            = New(CodePoolNotEmpty, "stake pool not empty")
	ErrWrongOwner              = New(CodeWrongOwner, "wrong owner")
	ErrWrongMint               = New(CodeWrongMint, "wrong mint")
	ErrWrongVault              = New(CodeWrongVault, "wrong vault")
	ErrWrongDestination        = New(CodeWrongDestination, "wrong destination")
	ErrAccountNotEmpty         = New(CodeAccountNotEmpty, "stake account not empty")
	ErrAlreadyInitialized      = New(CodeAlreadyInitialized, "account already initialized")
	ErrInvalidAmount           = New(CodeInvalidAmount, "invalid amount")
	ErrInvalidArgument         = New(CodeInvalidArgument, "invalid argument")
	ErrUnlockNotStarted        = New(CodeUnlockNotStarted, "unlock period not started")
	ErrBondNotUnlocked         = New(CodeBondNotUnlocked, "bond not fully unlocked")
	ErrBondSellerLimit         = New(CodeBondSellerLimit, "bond seller limit")
	ErrUnclaimedRewards        = New(CodeUnclaimedRewards, "rewards must be claimed first")
)

// ErrRevert is returned when an operation is rejected by the ledger rules.
// Nothing an operation did is persisted once it reverts.
type ErrRevert struct {
	code    Code
	message string
}

func New(code Code, message string) *ErrRevert {
	return &ErrRevert{
		code:    code,
		message: message,
	}
}

// Errorf returns a revert of the given code with a formatted message.
func Errorf(code Code, format string, args ...any) *ErrRevert {
	return New(code, fmt.Sprintf(format, args...))
}

func (e *ErrRevert) Error() string {
	return e.message
}

func (e *ErrRevert) Code() Code {
	return e.code
}

// Is reports whether target is a revert of the same code, so that
// errors.Is(err, ErrOverflow) holds for any overflow revert.
func (e *ErrRevert) Is(target error) bool {
	var t *ErrRevert
	if !errors.As(target, &t) {
		return false
	}
	return t.code == e.code
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// CodeOf returns the code of the revert wrapped in err, CodeUnknown if there is none.
func CodeOf(err error) Code {
	var ve *ErrRevert
	if errors.As(err, &ve) {
		return ve.code
	}
	return CodeUnknown
}
