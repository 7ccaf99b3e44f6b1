package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/kaodiag/facebot/bot/quiz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLifecycle(t *testing.T) {
	store := NewMemoryStore()

	_, ok := store.Get("U1")
	assert.False(t, ok)

	store.Put("U1", Session{})
	s, ok := store.Get("U1")
	require.True(t, ok)
	assert.False(t, s.HasFace)
	assert.Equal(t, 1, store.Len())

	store.Put("U1", Session{Face: quiz.FaceChild, HasFace: true})
	s, ok = store.Get("U1")
	require.True(t, ok)
	assert.True(t, s.HasFace)
	assert.Equal(t, quiz.FaceChild, s.Face)

	store.Remove("U1")
	_, ok = store.Get("U1")
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	store := NewMemoryStore()
	store.Remove("nobody")
	assert.Equal(t, 0, store.Len())
}

func TestPutOverwrites(t *testing.T) {
	store := NewMemoryStore()
	store.Put("U1", Session{Face: quiz.FaceAdult, HasFace: true})
	store.Put("U1", Session{})
	s, ok := store.Get("U1")
	require.True(t, ok)
	assert.False(t, s.HasFace)
	assert.Equal(t, 1, store.Len())
}

func TestConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()
	const workers = 32
	const rounds = 200

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(n int) {
			defer wg.Done()
			// half the workers share one key, the rest get their own
			key := fmt.Sprintf("U%d", n%2)
			if n%4 == 0 {
				key = fmt.Sprintf("U-solo-%d", n)
			}
			for r := 0; r < rounds; r++ {
				store.Put(key, Session{Face: quiz.FaceChild, HasFace: true})
				store.Get(key)
				store.Len()
				store.Remove(key)
			}
		}(i)
	}
	wg.Wait()
}

func TestConcurrentUsersIndependent(t *testing.T) {
	store := NewMemoryStore()
	store.Put("A", Session{Face: quiz.FaceChild, HasFace: true})
	store.Put("B", Session{Face: quiz.FaceAdult, HasFace: true})

	store.Remove("B")

	s, ok := store.Get("A")
	require.True(t, ok)
	assert.Equal(t, quiz.FaceChild, s.Face)
}
