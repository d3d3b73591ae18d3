package fine_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/concurrent-dict/condict/fine"
)

func TestSequentialInvariants(t *testing.T) {
	tbl := fine.New[string, int](0, 0)
	require.True(t, tbl.Insert("a", 1))
	assert.Equal(t, 1, tbl.Get("a"))

	require.False(t, tbl.Insert("a", 2), "re-insert of an existing key updates, not adds")
	assert.Equal(t, 2, tbl.Get("a"))

	require.True(t, tbl.Delete("a"))
	assert.False(t, tbl.Contains("a"))
	assert.False(t, tbl.Delete("a"))
}

func TestGrowthKeepsAllKeysReachable(t *testing.T) {
	tbl := fine.New[int, int](4, 0.75)
	for i := 1; i <= 50; i++ {
		tbl.Insert(i, i*i)
	}
	assert.Equal(t, 50, tbl.Len())
	for i := 1; i <= 50; i++ {
		assert.Equal(t, i*i, tbl.Get(i))
	}
}

// S3: 4 goroutines each insert a disjoint quarter of the key space, then
// read their own keys back; total size must equal the sum inserted.
func TestParallelPartition(t *testing.T) {
	const (
		goroutines = 4
		num        = 4000
	)
	tbl := fine.New[int, int](32, 0.75)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		g := g
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := g; i < num; i += goroutines {
				tbl.Insert(i, i)
			}
			for i := g; i < num; i += goroutines {
				v := tbl.Get(i)
				if v != i {
					panic("read-back mismatch")
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, num, tbl.Len())
	for i := 0; i < num; i++ {
		assert.True(t, tbl.Contains(i))
	}
}
