package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntitySpecificErrorsWrapGenericOnes(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, ErrWordNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrRetentionStateNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrSessionNotFound, ErrNotFound)
	assert.ErrorIs(t, ErrWordExists, ErrDuplicate)

	assert.NotErrorIs(t, ErrWordNotFound, ErrDuplicate)
}

func TestErrorPredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, IsNotFoundError(ErrWordNotFound))
	assert.True(t, IsNotFoundError(fmt.Errorf("load: %w", ErrRetentionStateNotFound)))
	assert.False(t, IsNotFoundError(errors.New("boom")))

	assert.True(t, IsDuplicateError(ErrWordExists))
	assert.False(t, IsDuplicateError(ErrWordNotFound))
}
