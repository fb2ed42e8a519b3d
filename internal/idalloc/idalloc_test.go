package idalloc

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextIsMonotonicStartingAtOne(t *testing.T) {
	a := New()
	assert.Equal(t, uint32(1), a.Next())
	assert.Equal(t, uint32(2), a.Next())
	assert.Equal(t, uint32(3), a.Next())
}

func TestNextNeverRepeatsUnderConcurrency(t *testing.T) {
	a := New()
	const n = 1000
	seen := make(chan uint32, n)

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			seen <- a.Next()
		}()
	}
	wg.Wait()
	close(seen)

	ids := make(map[uint32]struct{}, n)
	for id := range seen {
		_, dup := ids[id]
		assert.False(t, dup, "id %d allocated twice", id)
		ids[id] = struct{}{}
	}
	assert.Len(t, ids, n)
}
