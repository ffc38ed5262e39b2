// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

// IdentityLength length of identity in bytes.
const IdentityLength = 32

// Identity identifies an account: program accounts, token accounts, mints and signers alike.
type Identity [IdentityLength]byte

// String implements the stringer interface, returns the base58 form.
func (id Identity) String() string {
	return base58.Encode(id[:])
}

// AbbrevString returns abbrev string presentation.
func (id Identity) AbbrevString() string {
	s := id.String()
	if len(s) <= 10 {
		return s
	}
	return fmt.Sprintf("%s…%s", s[:4], s[len(s)-4:])
}

// Bytes returns byte slice form of identity.
func (id Identity) Bytes() []byte {
	return id[:]
}

// IsZero returns if identity has all zero bytes.
func (id Identity) IsZero() bool {
	return id == Identity{}
}

// MarshalText implements encoding.TextMarshaler.
func (id Identity) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *Identity) UnmarshalText(text []byte) error {
	parsed, err := ParseIdentity(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ParseIdentity converts base58 string into Identity.
func ParseIdentity(s string) (Identity, error) {
	if s == "" {
		return Identity{}, errors.New("empty identity")
	}
	b, err := base58.Decode(s)
	if err != nil {
		return Identity{}, err
	}
	if len(b) != IdentityLength {
		return Identity{}, fmt.Errorf("invalid identity length %d", len(b))
	}
	var id Identity
	copy(id[:], b)
	return id, nil
}

// MustParseIdentity convert string presented identity into Identity type, panic on error.
func MustParseIdentity(s string) Identity {
	id, err := ParseIdentity(s)
	if err != nil {
		panic(err)
	}
	return id
}

// BytesToIdentity converts bytes slice into identity.
// If b is larger than identity length, b will be cropped (from the left).
// If b is smaller than identity length, b will be extended (from the left).
func BytesToIdentity(b []byte) Identity {
	if len(b) > IdentityLength {
		b = b[len(b)-IdentityLength:]
	}
	var id Identity
	copy(id[IdentityLength-len(b):], b)
	return id
}
