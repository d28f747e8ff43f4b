package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	err := New(KindEmptyAnalysis, "empty analysis")
	assert.Equal(t, KindEmptyAnalysis, KindOf(err))

	wrapped := fmt.Errorf("pipeline failed: %w", err)
	assert.Equal(t, KindEmptyAnalysis, KindOf(wrapped), "KindOf must see through wrapping")

	assert.Equal(t, KindUnknown, KindOf(errors.New("plain error")))
}

func TestIsKind(t *testing.T) {
	err := New(KindTimeout, "timed out")
	assert.True(t, IsKind(err, KindTimeout))
	assert.False(t, IsKind(err, KindRateLimited))
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(KindSearchUnavailable, "search request failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "search_unavailable")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestWithHint(t *testing.T) {
	base := New(KindValidationFailed, "score out of range")
	hinted := base.WithHint("try again")

	assert.Equal(t, "try again", hinted.Hint)
	assert.Empty(t, base.Hint, "WithHint must not mutate the original")
	assert.Equal(t, base.Kind, hinted.Kind)
}

func TestAsError(t *testing.T) {
	appErr := New(KindRateLimited, "slow down")
	assert.Same(t, appErr, AsError(appErr))

	plain := errors.New("boom")
	converted := AsError(plain)
	assert.Equal(t, KindUnknown, converted.Kind)
	assert.Equal(t, "boom", converted.Message)
}
