package cache

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/mirror/runtime/parser"
)

func TestNewRejectsNonPositiveSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		c, err := New(size)
		assert.Error(t, err)
		assert.Nil(t, c)
	}
}

func TestParseHitsCache(t *testing.T) {
	c, err := New(4)
	require.NoError(t, err)

	first, err := c.Parse("signature f() -> bool")
	require.NoError(t, err)
	second, err := c.Parse("signature f() -> bool")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, Stats{Hits: 1, Misses: 1, Entries: 1}, c.Stats())
}

func TestSourceTextIsTheKey(t *testing.T) {
	c, err := New(4)
	require.NoError(t, err)

	_, err = c.Parse("f(1)")
	require.NoError(t, err)
	_, err = c.Parse("f( 1 )")
	require.NoError(t, err)

	assert.Equal(t, Stats{Hits: 0, Misses: 2, Entries: 2}, c.Stats())
}

func TestFailuresAreNotCached(t *testing.T) {
	c, err := New(4)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		program, err := c.Parse("signature f(")
		require.Error(t, err)
		assert.True(t, errors.Is(err, parser.ErrSyntax))
		assert.Nil(t, program)
	}
	assert.Equal(t, Stats{Hits: 0, Misses: 2, Entries: 0}, c.Stats())
}

func TestOptionsApplyToEveryEntry(t *testing.T) {
	deep := strings.Repeat("f(", 10) + strings.Repeat(")", 10)

	unlimited, err := New(4)
	require.NoError(t, err)
	_, err = unlimited.Parse(deep)
	require.NoError(t, err)

	shallow, err := New(4, parser.WithMaxDepth(5))
	require.NoError(t, err)
	_, err = shallow.Parse(deep)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum nesting depth 5 exceeded")
}

func TestEviction(t *testing.T) {
	c, err := New(2)
	require.NoError(t, err)

	for _, src := range []string{"a()", "b()", "c()"} {
		_, err := c.Parse(src)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, c.Stats().Entries)

	// a() was least recently used
	_, err = c.Parse("a()")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), c.Stats().Hits)
}

func TestPurge(t *testing.T) {
	c, err := New(2)
	require.NoError(t, err)

	_, err = c.Parse("a()")
	require.NoError(t, err)
	c.Purge()

	assert.Equal(t, Stats{Misses: 1}, c.Stats())
}

func TestConcurrentParse(t *testing.T) {
	c, err := New(8)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			program, err := c.Parse(`example f([1, 2]) = "x"`)
			assert.NoError(t, err)
			assert.Len(t, program, 1)
		}()
	}
	wg.Wait()

	stats := c.Stats()
	assert.Equal(t, uint64(16), stats.Hits+stats.Misses)
	assert.Equal(t, 1, stats.Entries)
}
