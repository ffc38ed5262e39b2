// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/vechain/stakeledger/kv"
)

func TestLevelDB(t *testing.T) {
	var (
		key        = []byte("123")
		value      = []byte("456")
		inValidKey = []byte("abc")
	)

	disk, err := New(filepath.Join(t.TempDir(), "lvldb"), Options{16, 16})
	require.NoError(t, err)
	defer disk.Close()

	mem, err := NewMem()
	require.NoError(t, err)
	defer mem.Close()

	for _, db := range []*LevelDB{disk, mem} {
		assert.NoError(t, db.Put(key, value))

		got, err := db.Get(key)
		assert.NoError(t, err)
		assert.Equal(t, value, got)

		has, err := db.Has(key)
		assert.NoError(t, err)
		assert.True(t, has)

		has, err = db.Has(inValidKey)
		assert.NoError(t, err)
		assert.False(t, has)

		assert.NoError(t, db.Delete(key))

		_, err = db.Get(key)
		assert.True(t, db.IsNotFound(err))
	}
}

func TestBulk(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	b := db.Bulk()
	assert.NoError(t, b.Put([]byte("a1"), []byte("x")))
	assert.NoError(t, b.Put([]byte("a2"), []byte("y")))
	assert.Equal(t, 2, b.Len())

	has, err := db.Has([]byte("a1"))
	assert.NoError(t, err)
	assert.False(t, has, "bulk must not write before Write")

	assert.NoError(t, b.Write())
	assert.Equal(t, 0, b.Len())

	val, err := db.Get([]byte("a2"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("y"), val)
}

func TestBucketIterate(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	accounts, others := kv.Bucket("a"), kv.Bucket("b")

	assert.NoError(t, db.Put(accounts.Key([]byte{1}), []byte("one")))
	assert.NoError(t, db.Put(accounts.Key([]byte{2}), []byte("two")))
	assert.NoError(t, db.Put(others.Key([]byte{1}), []byte("other")))

	iter := db.Iterate(kv.Range{Start: []byte("a"), Limit: util.BytesPrefix([]byte("a")).Limit})
	defer iter.Release()

	var keys [][]byte
	for iter.Next() {
		keys = append(keys, append([]byte(nil), iter.Key()...))
	}
	assert.NoError(t, iter.Error())
	assert.Equal(t, [][]byte{accounts.Key([]byte{1}), accounts.Key([]byte{2})}, keys)

	val, err := kv.GetOrNil(db, others.Key([]byte{9}))
	assert.NoError(t, err)
	assert.Nil(t, val)
}
