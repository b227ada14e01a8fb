package clock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTickIsMonotonic(t *testing.T) {
	prev := Tick()
	assert.NotZero(t, prev)
	for range 100 {
		next := Tick()
		assert.Greater(t, next, prev)
		prev = next
	}
}

func TestTickIsUniqueAcrossGoroutines(t *testing.T) {
	const n = 50
	seen := make(chan uint64, n)
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seen <- Tick()
		}()
	}
	wg.Wait()
	close(seen)

	unique := map[uint64]struct{}{}
	for v := range seen {
		unique[v] = struct{}{}
	}
	assert.Len(t, unique, n)
}
