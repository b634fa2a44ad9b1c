package session

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsumeWithoutAwait(t *testing.T) {
	s := NewStore()
	assert.False(t, s.Consume(1))
}

func TestAwaitThenConsumeOnce(t *testing.T) {
	s := NewStore()
	s.Await(1)

	assert.True(t, s.Consume(1))
	assert.False(t, s.Consume(1), "a flag is consumed exactly once")
}

func TestChatsAreIndependent(t *testing.T) {
	s := NewStore()
	s.Await(1)

	assert.False(t, s.Consume(2))
	assert.True(t, s.Consume(1))
}

func TestClearDropsFlag(t *testing.T) {
	s := NewStore()
	s.Await(1)
	s.Clear(1)

	assert.False(t, s.Consume(1))
}

func TestConcurrentConsumeObservedOnce(t *testing.T) {
	s := NewStore()
	s.Await(7)

	var hits int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.Consume(7) {
				atomic.AddInt32(&hits, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), hits)
}
