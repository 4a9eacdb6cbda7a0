package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStore_SetGetDelete(t *testing.T) {
	store := NewTokenStore()

	_, ok := store.Get("s1")
	assert.False(t, ok)

	store.Set("s1", "token-a")
	token, ok := store.Get("s1")
	require.True(t, ok)
	assert.Equal(t, "token-a", token)

	store.Delete("s1")
	_, ok = store.Get("s1")
	assert.False(t, ok)
}

func TestTokenStore_SessionIsolation(t *testing.T) {
	store := NewTokenStore()
	store.Set("s1", "token-a")
	store.Set("s2", "token-b")

	a, _ := store.Get("s1")
	b, _ := store.Get("s2")
	assert.Equal(t, "token-a", a)
	assert.Equal(t, "token-b", b)
}

func TestTokenStore_ConcurrentAccess(t *testing.T) {
	store := NewTokenStore()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sid := fmt.Sprintf("session-%d", i)
			store.Set(sid, fmt.Sprintf("token-%d", i))
			token, ok := store.Get(sid)
			assert.True(t, ok)
			assert.Equal(t, fmt.Sprintf("token-%d", i), token)
		}(i)
	}
	wg.Wait()
}
