package generator

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/typerush/internal/corpus"
)

func TestRotationServesEachIndexOncePerCycle(t *testing.T) {
	const size = 16
	r := NewRotation(size, rand.New(rand.NewSource(7)))
	for cycle := 0; cycle < 3; cycle++ {
		seen := map[int]int{}
		for i := 0; i < size; i++ {
			seen[r.Next()]++
		}
		require.Len(t, seen, size, "cycle %d", cycle)
		for idx, n := range seen {
			assert.Equal(t, 1, n, "index %d served %d times in cycle %d", idx, n, cycle)
		}
		assert.Equal(t, 0, r.Remaining())
	}
}

func TestRotationReset(t *testing.T) {
	r := NewRotation(3, rand.New(rand.NewSource(1)))
	r.Next()
	r.Next()
	assert.Equal(t, 1, r.Remaining())
	r.Reset()
	assert.Equal(t, 3, r.Remaining())
}

func TestRotationEmpty(t *testing.T) {
	r := NewRotation(0, rand.New(rand.NewSource(1)))
	assert.Equal(t, -1, r.Next())
}

func TestGeneratorNumbersChunksAcrossPassages(t *testing.T) {
	c, err := corpus.New([]string{"one. two.", "three. four. five."})
	require.NoError(t, err)
	g := New(c, WithRand(rand.New(rand.NewSource(3))), WithWidth(40))

	first, ok := g.Next()
	require.True(t, ok)
	second, ok := g.Next()
	require.True(t, ok)

	all := append(first, second...)
	require.Len(t, all, 5)
	for i, ch := range all {
		assert.Equal(t, i, ch.Ordinal)
	}

	g.Reset()
	again, ok := g.Next()
	require.True(t, ok)
	assert.Equal(t, 0, again[0].Ordinal)
}

func TestGeneratorUsesWidth(t *testing.T) {
	c, err := corpus.New([]string{"alpha beta gamma delta epsilon zeta eta theta iota kappa"})
	require.NoError(t, err)
	g := New(c, WithRand(rand.New(rand.NewSource(1))), WithWidth(120))

	wide, _ := g.Next()
	assert.Len(t, wide, 1)

	g.SetWidth(20)
	assert.Equal(t, 20, g.Width())
	narrow, _ := g.Next()
	assert.Greater(t, len(narrow), 1)
}
