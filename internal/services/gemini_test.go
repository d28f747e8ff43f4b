package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"alfredoptarigan/skillbridge/internal/apperrors"
)

func TestClassifyProviderError(t *testing.T) {
	cases := []struct {
		name     string
		message  string
		expected apperrors.Kind
	}{
		{"authentication keyword", "Authentication failed for request", apperrors.KindAuthError},
		{"api key keyword", "invalid API key provided", apperrors.KindAuthError},
		{"http 401", "got HTTP 401 from upstream", apperrors.KindAuthError},
		{"rate limit keyword", "Rate limit exceeded, slow down", apperrors.KindRateLimited},
		{"http 429", "error 429: too many requests", apperrors.KindRateLimited},
		{"timeout keyword", "request timeout after 30s", apperrors.KindTimeout},
		{"deadline exceeded", "context deadline exceeded", apperrors.KindTimeout},
		{"model not found", "Model gemini-xyz not found", apperrors.KindModelUnavailable},
		{"unmatched", "some exotic provider failure", apperrors.KindUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			classified := classifyProviderError(errors.New(tc.message))
			assert.Equal(t, tc.expected, classified.Kind)
		})
	}
}

func TestClassifyProviderError_PreservesOriginalMessage(t *testing.T) {
	original := errors.New("some exotic provider failure")
	classified := classifyProviderError(original)

	assert.Equal(t, apperrors.KindUnknown, classified.Kind)
	assert.Contains(t, classified.Error(), "some exotic provider failure")
	assert.ErrorIs(t, classified, original)
}

func TestClassifyProviderError_ModelAloneIsNotModelUnavailable(t *testing.T) {
	// "model" without "not found" must not be misclassified.
	classified := classifyProviderError(errors.New("the model produced garbage"))
	assert.Equal(t, apperrors.KindUnknown, classified.Kind)
}
