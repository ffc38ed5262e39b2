// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/vechain/stakeledger/kv"
	"github.com/vechain/stakeledger/stackedmap"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// State is a revertible overlay over committed kv data.
// Nothing reaches the underlying store until the staged changes are committed.
type State struct {
	src kv.Getter
	sm  *stackedmap.StackedMap[string, []byte]
}

// New create state object.
func New(src kv.Getter) *State {
	s := &State{src: src}
	s.sm = stackedmap.New(s.load)
	return s
}

func (s *State) load(key string) ([]byte, bool, error) {
	val, err := kv.GetOrNil(s.src, []byte(key))
	if err != nil {
		return nil, false, &Error{err}
	}
	return val, val != nil, nil
}

// Get returns the value of key, or nil if it does not exist.
// The returned slice must not be modified.
func (s *State) Get(key []byte) ([]byte, error) {
	val, _, err := s.sm.Get(string(key))
	if err != nil {
		return nil, err
	}
	if len(val) == 0 {
		return nil, nil
	}
	return val, nil
}

// Exists returns whether key holds a non-empty value.
func (s *State) Exists(key []byte) (bool, error) {
	val, err := s.Get(key)
	if err != nil {
		return false, err
	}
	return val != nil, nil
}

// Set sets the value of key. An empty value deletes it.
func (s *State) Set(key, val []byte) {
	s.sm.Put(string(key), bytes.Clone(val))
}

// Delete removes key.
func (s *State) Delete(key []byte) {
	s.sm.Put(string(key), nil)
}

// EncodeStorage encodes the value returned by enc and stores it under key.
func (s *State) EncodeStorage(key []byte, enc func() ([]byte, error)) error {
	data, err := enc()
	if err != nil {
		return err
	}
	s.Set(key, data)
	return nil
}

// DecodeStorage passes the raw value of key to dec. dec receives nil if key is absent.
func (s *State) DecodeStorage(key []byte, dec func([]byte) error) error {
	data, err := s.Get(key)
	if err != nil {
		return err
	}
	return dec(data)
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Stage collects the net changes made on this state.
func (s *State) Stage() *Stage {
	changes := make(map[string][]byte)
	s.sm.Journal(func(k string, v []byte) bool {
		changes[k] = v
		return true
	})
	return newStage(changes)
}
