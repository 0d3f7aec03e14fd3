package context

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrent_RoundTripThroughContext(t *testing.T) {
	current := NewCurrent()
	current.Set(RequestIDKey, "req-1")

	ctx := WithCurrent(context.Background(), current)

	got, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "req-1", got.RequestID())
}

func TestGetCurrent_Missing(t *testing.T) {
	current := GetCurrent(context.Background())

	assert.NotNil(t, current)
	assert.Empty(t, current.RequestID())
	assert.Empty(t, current.All())
}

func TestCurrent_ConcurrentAccess(t *testing.T) {
	current := NewCurrent()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			current.Set("key", i)
			_ = current.Get("key")
		}(i)
	}
	wg.Wait()

	_, isString := current.GetString("key")
	assert.False(t, isString)
}
