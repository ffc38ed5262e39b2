// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"bytes"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"

	"github.com/vechain/stakeledger/kv"
)

// stats counts lookups and remembers the hit rate last reported, in permille.
type stats struct {
	hit, miss atomic.Int64
	rate      atomic.Int32
}

func (st *stats) report() (bool, int64, int64) {
	hit, miss := st.hit.Load(), st.miss.Load()
	var rate int32
	if total := hit + miss; total > 0 {
		rate = int32(hit * 1000 / total)
	}
	return st.rate.Swap(rate) != rate, hit, miss
}

// Store is a kv.Store whose reads are served from an LRU of committed values.
// Writes go through to the source and evict the touched keys.
type Store struct {
	kv.Store
	lru   *lru.Cache
	stats stats
}

// NewStore wraps src with a read cache holding up to size entries.
// size should be > 0, or an error returned.
func NewStore(src kv.Store, size int) (*Store, error) {
	l, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Store{Store: src, lru: l}, nil
}

// Get returns a copy of the cached value, loading it from the source on a miss.
func (s *Store) Get(key []byte) ([]byte, error) {
	if v, ok := s.lru.Get(string(key)); ok {
		s.stats.hit.Add(1)
		return bytes.Clone(v.([]byte)), nil
	}
	s.stats.miss.Add(1)

	val, err := s.Store.Get(key)
	if err != nil {
		return nil, err
	}
	s.lru.Add(string(key), bytes.Clone(val))
	return val, nil
}

// Has reports whether key exists.
func (s *Store) Has(key []byte) (bool, error) {
	if s.lru.Contains(string(key)) {
		return true, nil
	}
	return s.Store.Has(key)
}

func (s *Store) Put(key, val []byte) error {
	s.lru.Remove(string(key))
	return s.Store.Put(key, val)
}

func (s *Store) Delete(key []byte) error {
	s.lru.Remove(string(key))
	return s.Store.Delete(key)
}

// Bulk returns a bulk that evicts every touched key once written.
func (s *Store) Bulk() kv.Bulk {
	return &bulk{Bulk: s.Store.Bulk(), lru: s.lru}
}

// Stats returns the hit and miss counters, and whether the hit rate
// changed since the last call.
func (s *Store) Stats() (changed bool, hit, miss int64) {
	return s.stats.report()
}

type bulk struct {
	kv.Bulk
	lru  *lru.Cache
	keys []string
}

func (b *bulk) Put(key, val []byte) error {
	b.keys = append(b.keys, string(key))
	return b.Bulk.Put(key, val)
}

func (b *bulk) Delete(key []byte) error {
	b.keys = append(b.keys, string(key))
	return b.Bulk.Delete(key)
}

func (b *bulk) Write() error {
	// evict before and after so a concurrent reader cannot re-cache a stale value
	for _, k := range b.keys {
		b.lru.Remove(k)
	}
	if err := b.Bulk.Write(); err != nil {
		return err
	}
	for _, k := range b.keys {
		b.lru.Remove(k)
	}
	b.keys = b.keys[:0]
	return nil
}
