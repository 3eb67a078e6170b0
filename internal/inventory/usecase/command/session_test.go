package command

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/stockledger/internal/inventory/domain"
)

func TestSessionStore_Lifecycle(t *testing.T) {
	// Setup
	now := fixedNow
	store := NewSessionStore[string](time.Minute, func() time.Time { return now })

	// Execute
	id := store.Put("upload")

	// Assert
	got, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "upload", got)

	_, err = store.Take(id)
	require.NoError(t, err)
	_, err = store.Get(id)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionStore_TakeOnce(t *testing.T) {
	// Setup
	store := NewSessionStore[string](time.Minute, fixedClock)
	id := store.Put("upload")

	// Execute
	first, errFirst := store.Take(id)
	_, errSecond := store.Take(id)

	// Assert
	require.NoError(t, errFirst)
	assert.Equal(t, "upload", first)
	assert.ErrorIs(t, errSecond, domain.ErrSessionNotFound)

	store.Restore(id, "upload")
	got, err := store.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "upload", got)
}

func TestSessionStore_ConcurrentTake(t *testing.T) {
	// Setup
	store := NewSessionStore[int](time.Minute, fixedClock)
	id := store.Put(7)

	// Execute
	var wg sync.WaitGroup
	var taken atomic.Int32
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Take(id); err == nil {
				taken.Add(1)
			}
		}()
	}
	wg.Wait()

	// Assert
	assert.Equal(t, int32(1), taken.Load())
}

func TestSessionStore_Expiry(t *testing.T) {
	// Setup
	now := fixedNow
	store := NewSessionStore[int](time.Minute, func() time.Time { return now })
	id := store.Put(1)

	// Execute
	now = now.Add(30 * time.Second)
	_, errBefore := store.Get(id)
	now = now.Add(time.Minute)
	_, errAfter := store.Get(id)

	// Assert
	assert.NoError(t, errBefore)
	assert.ErrorIs(t, errAfter, domain.ErrSessionNotFound)
}
