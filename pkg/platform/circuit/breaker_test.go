package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBreakerStartsClosed(t *testing.T) {
	b := New("redis")
	assert.False(t, b.IsOpen())
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, "closed", b.State().String())
	assert.Equal(t, "redis", b.Name())
}

func TestRecordFailure(t *testing.T) {
	t.Run("opens on the threshold failure", func(t *testing.T) {
		b := New("redis", WithFailureThreshold(3))

		for i := 0; i < 2; i++ {
			useFallback, change := b.RecordFailure()
			assert.False(t, useFallback)
			assert.False(t, change.Opened)
		}

		useFallback, change := b.RecordFailure()
		assert.True(t, useFallback)
		assert.True(t, change.Opened)
		assert.Equal(t, "open", b.State().String())
	})

	t.Run("further failures keep fallback without a new transition", func(t *testing.T) {
		b := New("redis", WithFailureThreshold(1))
		b.RecordFailure()

		useFallback, change := b.RecordFailure()
		assert.True(t, useFallback)
		assert.False(t, change.Opened)
	})

	t.Run("a success in between restarts the count", func(t *testing.T) {
		b := New("redis", WithFailureThreshold(2))
		b.RecordFailure()
		b.RecordSuccess()
		b.RecordFailure()
		assert.False(t, b.IsOpen())

		b.RecordFailure()
		assert.True(t, b.IsOpen())
	})

	t.Run("non positive threshold keeps default", func(t *testing.T) {
		b := New("redis", WithFailureThreshold(0))
		for i := 0; i < defaultFailureThreshold-1; i++ {
			b.RecordFailure()
		}
		assert.False(t, b.IsOpen())
		b.RecordFailure()
		assert.True(t, b.IsOpen())
	})
}

func TestRecordSuccess(t *testing.T) {
	t.Run("closes after consecutive successes", func(t *testing.T) {
		b := New("redis", WithFailureThreshold(1), WithSuccessThreshold(2))
		b.RecordFailure()

		usePrimary, change := b.RecordSuccess()
		assert.False(t, usePrimary)
		assert.False(t, change.Closed)

		usePrimary, change = b.RecordSuccess()
		assert.True(t, usePrimary)
		assert.True(t, change.Closed)
		assert.False(t, b.IsOpen())
	})

	t.Run("a failure while open restarts the success count", func(t *testing.T) {
		b := New("redis", WithFailureThreshold(1), WithSuccessThreshold(2))
		b.RecordFailure()
		b.RecordSuccess()
		b.RecordFailure()

		b.RecordSuccess()
		assert.True(t, b.IsOpen())
		b.RecordSuccess()
		assert.False(t, b.IsOpen())
	})
}

func TestReset(t *testing.T) {
	b := New("redis", WithFailureThreshold(1))
	b.RecordFailure()
	assert.True(t, b.IsOpen())

	b.Reset()

	assert.False(t, b.IsOpen())
	assert.Equal(t, StateClosed, b.State())
}
