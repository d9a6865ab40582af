package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// go-redis may still be backing off a reconnect after Close
var ignoreRedisDial = goleak.IgnoreTopFunction("github.com/redis/go-redis/v9/internal/pool.(*ConnPool).tryDial")

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, ignoreRedisDial)
}

func TestMemory_SetGetDelete(t *testing.T) {
	c := NewMemory[string]()
	t.Cleanup(c.Close)

	_, ok := c.Get("t1:general")
	assert.False(t, ok)

	c.Set("t1:general", "v1", time.Minute)
	v, ok := c.Get("t1:general")
	require.True(t, ok)
	assert.Equal(t, "v1", v)

	c.Set("t1:general", "v2", time.Minute)
	v, ok = c.Get("t1:general")
	require.True(t, ok)
	assert.Equal(t, "v2", v)

	c.Delete("t1:general")
	_, ok = c.Get("t1:general")
	assert.False(t, ok)

	// deleting twice is harmless
	c.Delete("t1:general")
}

func TestMemory_Expiry(t *testing.T) {
	c := NewMemory[int]()
	t.Cleanup(c.Close)

	c.Set("k", 42, 20*time.Millisecond)
	_, ok := c.Get("k")
	require.True(t, ok)

	assert.Eventually(t, func() bool {
		_, ok := c.Get("k")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestMemory_HitDoesNotExtendTTL(t *testing.T) {
	c := NewMemory[int]()
	t.Cleanup(c.Close)

	c.Set("k", 1, 40*time.Millisecond)

	// Reads keep hitting the key well past its TTL; a touching cache would
	// keep it alive forever.
	expired := false
	deadline := time.Now().Add(500 * time.Millisecond)
	for time.Now().Before(deadline) {
		if _, ok := c.Get("k"); !ok {
			expired = true
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	assert.True(t, expired)
}

func TestMemory_KeysAreIndependent(t *testing.T) {
	c := NewMemory[string]()
	t.Cleanup(c.Close)

	c.Set("t1:email", "a", time.Minute)
	c.Set("t2:email", "b", time.Minute)
	c.Delete("t1:email")

	_, ok := c.Get("t1:email")
	assert.False(t, ok)
	v, ok := c.Get("t2:email")
	require.True(t, ok)
	assert.Equal(t, "b", v)
	assert.Equal(t, 1, c.Len())
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	c := NewMemory[int]()
	t.Cleanup(c.Close)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Set("shared", n, time.Minute)
				c.Get("shared")
				if j%10 == 0 {
					c.Delete("shared")
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestMemory_CloseStopsJanitor(t *testing.T) {
	for i := 0; i < 50; i++ {
		c := NewMemory[int]()
		c.Set("k", i, time.Minute)
		c.Close()
		c.Close()
	}
	goleak.VerifyNone(t, ignoreRedisDial)
}
