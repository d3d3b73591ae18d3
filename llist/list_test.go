package llist_test

import (
	"math/rand"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/concurrent-dict/condict/llist"
)

func TestInsertThenFind(t *testing.T) {
	var l llist.List[int, string]
	require.True(t, l.Insert(5, "five"))

	v, ok := l.Find(5)
	require.True(t, ok)
	assert.Equal(t, "five", v)
}

func TestInsertRejectsDuplicate(t *testing.T) {
	var l llist.List[int, int]
	require.True(t, l.Insert(1, 100))
	require.False(t, l.Insert(1, 200))

	v, ok := l.Find(1)
	require.True(t, ok)
	assert.Equal(t, 100, v, "second insert of an existing key must not overwrite")
}

func TestDeleteThenContains(t *testing.T) {
	var l llist.List[int, int]
	l.Insert(1, 1)
	require.True(t, l.Delete(1))
	assert.False(t, l.Contains(1))
	assert.False(t, l.Delete(1), "deleting an absent key returns false")
}

func TestInsertionOrderIrrelevant(t *testing.T) {
	base := []int{7, 1, 9, 3, 5, 2, 8, 4, 6}
	perm1 := append([]int(nil), base...)
	perm2 := []int{4, 6, 1, 9, 2, 8, 7, 3, 5}

	var l1, l2 llist.List[int, int]
	for _, k := range perm1 {
		l1.Insert(k, k*10)
	}
	for _, k := range perm2 {
		l2.Insert(k, k*10)
	}

	for _, k := range base {
		v1, ok1 := l1.Find(k)
		v2, ok2 := l2.Find(k)
		require.True(t, ok1)
		require.True(t, ok2)
		assert.Equal(t, v1, v2)
	}
}

// S5: single-threaded mark/unlink scenario.
func TestMarkAndUnlinkScenario(t *testing.T) {
	var l llist.List[int, int]
	l.Insert(5, 5)
	l.Insert(3, 3)
	l.Insert(7, 7)
	require.True(t, l.Delete(5))

	assert.Equal(t, []int{3, 7}, l.Keys())
	assert.False(t, l.Contains(5))
}

func assertAscendingUnique(t *testing.T, keys []int) {
	t.Helper()
	for i := 1; i < len(keys); i++ {
		assert.Less(t, keys[i-1], keys[i], "chain must be strictly ascending")
	}
}

// S6: stress test across many goroutines performing mixed operations,
// checked for structural validity against a lock-protected reference set.
func TestConcurrentStress(t *testing.T) {
	if testing.Short() {
		t.Skip("stress test skipped in -short mode")
	}

	const (
		goroutines = 8
		opsPerG    = 5000
		keySpace   = 1024
	)

	var l llist.List[int, int]
	var refMu sync.Mutex
	ref := make(map[int]int)

	var g errgroup.Group
	for i := 0; i < goroutines; i++ {
		seed := int64(i) + 1
		g.Go(func() error {
			rnd := rand.New(rand.NewSource(seed))
			for j := 0; j < opsPerG; j++ {
				key := rnd.Intn(keySpace)
				switch rnd.Intn(3) {
				case 0:
					if l.Insert(key, key) {
						refMu.Lock()
						ref[key] = key
						refMu.Unlock()
					}
				case 1:
					if l.Delete(key) {
						refMu.Lock()
						delete(ref, key)
						refMu.Unlock()
					}
				case 2:
					l.Find(key)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	keys := l.Keys()
	assertAscendingUnique(t, keys)

	refMu.Lock()
	defer refMu.Unlock()
	wantKeys := make([]int, 0, len(ref))
	for k := range ref {
		wantKeys = append(wantKeys, k)
	}
	sort.Ints(wantKeys)
	assert.Equal(t, wantKeys, keys)
}

func TestConcurrentInsertNoLostUpdates(t *testing.T) {
	const n = 2000
	var l llist.List[int, int]

	var g errgroup.Group
	for i := 0; i < n; i++ {
		key := i
		g.Go(func() error {
			l.Insert(key, key*2)
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for i := 0; i < n; i++ {
		v, ok := l.Find(i)
		require.True(t, ok)
		assert.Equal(t, i*2, v)
	}
	assert.Len(t, l.Keys(), n)
}
