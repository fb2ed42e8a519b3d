package resilience

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	b := New("test", Settings{
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 3 },
	})

	failing := errors.New("boom")
	for i := 0; i < 3; i++ {
		err := b.Execute(func() error { return failing })
		require.ErrorIs(t, err, failing)
	}

	assert.Equal(t, Open, b.State())
	assert.ErrorIs(t, b.Execute(func() error { return nil }), ErrOpen)
}

func TestBreakerStaysClosedOnSuccess(t *testing.T) {
	b := New("test", Settings{
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 3 },
	})
	for i := 0; i < 10; i++ {
		require.NoError(t, b.Execute(func() error { return nil }))
	}
	assert.Equal(t, Closed, b.State())
}

func TestBreakerHalfOpensAfterCooldownAndCloses(t *testing.T) {
	b := New("test", Settings{
		CooldownAfter: 10 * time.Millisecond,
		ReadyToTrip:   func(c Counts) bool { return c.ConsecutiveFailures >= 1 },
	})

	require.Error(t, b.Execute(func() error { return errors.New("fail") }))
	assert.Equal(t, Open, b.State())

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, HalfOpen, b.State())

	require.NoError(t, b.Execute(func() error { return nil }))
	assert.Equal(t, Closed, b.State())
}
