package pgerrors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassification(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pq.Error{Code: UniqueViolation, Constraint: "bookings_artist_slot_key"})

	assert.Equal(t, UniqueViolation, Code(unique))
	assert.True(t, Is(unique, UniqueViolation))
	assert.Equal(t, "bookings_artist_slot_key", Constraint(unique))
	assert.False(t, IsRetryable(unique))

	assert.True(t, IsRetryable(&pq.Error{Code: SerializationFailure}))
	assert.True(t, IsRetryable(&pq.Error{Code: DeadlockDetected}))

	assert.True(t, IsTimeout(fmt.Errorf("query: %w", context.DeadlineExceeded)))
	assert.True(t, IsTimeout(&pq.Error{Code: QueryCanceled}))
	assert.False(t, IsTimeout(errors.New("connection refused")))

	assert.Empty(t, Code(errors.New("plain")))
	assert.Empty(t, Constraint(nil))
}
