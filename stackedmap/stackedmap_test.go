// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stackedmap_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vechain/stakeledger/stackedmap"
)

func TestStackedMap(t *testing.T) {
	assert := assert.New(t)
	src := map[string]string{"foo": "bar"}

	sm := stackedmap.New(func(key string) (string, bool, error) {
		v, ok := src[key]
		return v, ok, nil
	})

	get := func(key string) string {
		v, ok, err := sm.Get(key)
		assert.NoError(err)
		assert.True(ok)
		return v
	}

	assert.Equal("bar", get("foo"))

	assert.Equal(1, sm.Push())
	sm.Put("foo", "baz")
	assert.Equal("baz", get("foo"))
	sm.Put("foo", "baz1")
	assert.Equal("baz1", get("foo"))

	sm.Push()
	sm.Put("foo", "qux")
	assert.Equal("qux", get("foo"))

	sm.Pop()
	assert.Equal("baz1", get("foo"))

	sm.Pop()
	assert.Equal("bar", get("foo"))

	sm.Push()
	sm.Push()
	sm.PopTo(1)
	assert.Equal("bar", get("foo"))
	assert.Equal(1, sm.Push())
}

func TestStackedMapJournal(t *testing.T) {
	sm := stackedmap.New(func(string) (int, bool, error) {
		return 0, false, nil
	})

	sm.Put("a", 1)
	rev := sm.Push()
	sm.Put("b", 2)
	sm.Put("a", 3)

	var keys []string
	var vals []int
	sm.Journal(func(k string, v int) bool {
		keys = append(keys, k)
		vals = append(vals, v)
		return true
	})
	assert.Equal(t, []string{"a", "b", "a"}, keys)
	assert.Equal(t, []int{1, 2, 3}, vals)

	sm.PopTo(rev)
	keys = nil
	sm.Journal(func(k string, _ int) bool {
		keys = append(keys, k)
		return true
	})
	assert.Equal(t, []string{"a"}, keys)

	v, ok, err := sm.Get("a")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok, err = sm.Get("b")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestStackedMapSourceError(t *testing.T) {
	boom := errors.New("boom")
	sm := stackedmap.New(func(string) (int, bool, error) {
		return 0, false, boom
	})
	_, _, err := sm.Get("x")
	assert.ErrorIs(t, err, boom)
}
