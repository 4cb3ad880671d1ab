// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: engineering@inkwell.press

package entitylock_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-press/inkwell/internal/platform/apperr"
	"github.com/inkwell-press/inkwell/internal/platform/entitylock"
)

/*
TestAcquire_Release verifies the basic lock/unlock cycle and key cleanup.
*/
func TestAcquire_Release(t *testing.T) {
	registry := entitylock.NewRegistry()

	release, err := registry.Acquire(context.Background(), "work:w1")
	require.NoError(t, err)
	assert.Equal(t, 1, registry.Len())

	release()
	assert.Equal(t, 0, registry.Len())
}

/*
TestAcquire_SerializesSameKey proves that two goroutines contending on the
same key never hold the lock simultaneously.
*/
func TestAcquire_SerializesSameKey(t *testing.T) {
	registry := entitylock.NewRegistry()

	var holders int
	var maxHolders int
	var mu sync.Mutex

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			release, err := registry.Acquire(context.Background(), "work:w1")
			require.NoError(t, err)
			defer release()

			mu.Lock()
			holders++
			if holders > maxHolders {
				maxHolders = holders
			}
			mu.Unlock()

			time.Sleep(2 * time.Millisecond)

			mu.Lock()
			holders--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxHolders)
	assert.Equal(t, 0, registry.Len())
}

/*
TestAcquire_IndependentKeys verifies that different keys do not contend.
*/
func TestAcquire_IndependentKeys(t *testing.T) {
	registry := entitylock.NewRegistry()

	releaseA, err := registry.Acquire(context.Background(), "work:a")
	require.NoError(t, err)
	defer releaseA()

	// A held lock on "work:a" must not block "work:b".
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	releaseB, err := registry.Acquire(ctx, "work:b")
	require.NoError(t, err)
	releaseB()
}

/*
TestAcquire_Timeout verifies that a waiter gives up with a TIMEOUT error when
its deadline expires, and that the registry does not leak the abandoned entry.
*/
func TestAcquire_Timeout(t *testing.T) {
	registry := entitylock.NewRegistry()

	release, err := registry.Acquire(context.Background(), "work:w1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = registry.Acquire(ctx, "work:w1")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "TIMEOUT", ae.Code)

	release()
	assert.Equal(t, 0, registry.Len())
}
