package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func TestBreakerTripsAfterConsecutiveFailures(t *testing.T) {
	cb := New[int]("test", Options{ConsecutiveFailures: 2, Timeout: time.Minute}, nil)

	for i := 0; i < 2; i++ {
		_, err := cb.Execute(func() (int, error) { return 0, errBoom })
		require.ErrorIs(t, err, errBoom)
	}

	_, err := cb.Execute(func() (int, error) { return 1, nil })
	assert.True(t, IsOpen(err))
}

func TestBreakerIgnoresSuccessfulErrors(t *testing.T) {
	notFailure := errors.New("client error")
	cb := New[int]("test", Options{
		ConsecutiveFailures: 1,
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, notFailure)
		},
	}, nil)

	for i := 0; i < 3; i++ {
		_, err := cb.Execute(func() (int, error) { return 0, notFailure })
		assert.ErrorIs(t, err, notFailure)
	}

	v, err := cb.Execute(func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}
