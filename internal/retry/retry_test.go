package retry

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolicy(attempts int) Policy {
	return Policy{
		InitialBackoff: time.Microsecond,
		MaxBackoff:     10 * time.Microsecond,
		MaxAttempts:    attempts,
	}
}

func TestDoSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := Do(fastPolicy(5), func() error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := Do(fastPolicy(5), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoGivesUpAfterMaxAttempts(t *testing.T) {
	sentinel := errors.New("persistent failure")

	calls := 0
	err := Do(fastPolicy(4), func() error {
		calls++
		return sentinel
	})

	require.Error(t, err)
	assert.Equal(t, 4, calls)
	assert.ErrorIs(t, err, sentinel, "the last error must stay inspectable")
	assert.Contains(t, err.Error(), "giving up after 4 attempts")
}

func TestDoTreatsNonPositiveAttemptsAsOne(t *testing.T) {
	calls := 0
	err := Do(Policy{MaxAttempts: 0}, func() error {
		calls++
		return errors.New("nope")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, 100*time.Millisecond, p.InitialBackoff)
	assert.Equal(t, time.Second, p.MaxBackoff)
	assert.Equal(t, 10, p.MaxAttempts)
}
