package semantics

import (
	"math/rand"
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// basic LIS reconstruction
func TestLongestIncreasingSubsequence(t *testing.T) {
	assert.Nil(t, longestIncreasingSubsequence(nil))
	assert.Equal(t, []int{4}, longestIncreasingSubsequence([]int{4}))
	assert.Equal(t, []int{1, 2, 3}, longestIncreasingSubsequence([]int{1, 2, 3}))
	assert.Equal(t, []int{0}, longestIncreasingSubsequence([]int{2, 1, 0}))
	// positions of [A,C,B,D] in [A,B,C,D]
	assert.Len(t, longestIncreasingSubsequence([]int{0, 2, 1, 3}), 3)
}

// [A,B,C,D] -> [A,C,B,D,E]: A and D stay stationary
func TestStationarySetSpecExample(t *testing.T) {
	prev := []int64{1, 2, 3, 4}
	next := []int64{1, 3, 2, 4, 5}

	s := stationarySet(prev, next, true)
	assert.Equal(t, 3, s.Cardinality())
	assert.True(t, s.Contains(1))
	assert.True(t, s.Contains(4))
	// exactly one of B, C joins the stable run
	assert.True(t, s.Contains(2) != s.Contains(3))
}

// the common-prefix fast path must not change the result versus the full
// computation, for any input
func TestStationarySetPrefixFastPathEquivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 500; trial++ {
		nPrev := rng.Intn(12)
		prev := make([]int64, nPrev)
		for i := range prev {
			prev[i] = int64(i + 1)
		}
		rng.Shuffle(len(prev), func(i, j int) { prev[i], prev[j] = prev[j], prev[i] })

		// next: random subset of prev in random order plus fresh ids
		next := make([]int64, 0, nPrev+4)
		for _, id := range prev {
			if rng.Intn(3) > 0 {
				next = append(next, id)
			}
		}
		rng.Shuffle(len(next), func(i, j int) { next[i], next[j] = next[j], next[i] })
		for k := 0; k < rng.Intn(4); k++ {
			next = append(next, int64(100+trial*10+k))
		}

		fast := stationarySet(prev, next, true)
		full := stationarySet(prev, next, false)
		require.True(t, fast.Equal(full), "prev=%v next=%v fast=%v full=%v", prev, next, fast, full)
	}
}

// stationary ids always form a subset of the retained ids
func TestStationarySetSubsetOfRetained(t *testing.T) {
	prev := []int64{1, 2, 3, 4, 5}
	next := []int64{5, 3, 1}
	s := stationarySet(prev, next, true)
	retained := mapset.NewThreadUnsafeSet[int64](1, 3, 5)
	assert.True(t, s.IsSubset(retained))
	assert.GreaterOrEqual(t, s.Cardinality(), 1)
}
