package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTextLength(t *testing.T) {
	ok, reason := ValidateTextLength("", 10, 100)
	assert.False(t, ok)
	assert.Equal(t, "Text cannot be empty", reason)

	ok, reason = ValidateTextLength("    \n  ", 10, 100)
	assert.False(t, ok)
	assert.Equal(t, "Text cannot be empty", reason)

	ok, reason = ValidateTextLength("short", 10, 100)
	assert.False(t, ok)
	assert.Contains(t, reason, "too short")

	ok, reason = ValidateTextLength(strings.Repeat("a", 101), 10, 100)
	assert.False(t, ok)
	assert.Contains(t, reason, "too long")

	ok, reason = ValidateTextLength(strings.Repeat("a", 50), 10, 100)
	assert.True(t, ok)
	assert.Empty(t, reason)

	// Boundaries are inclusive.
	ok, _ = ValidateTextLength(strings.Repeat("a", 10), 10, 100)
	assert.True(t, ok)
	ok, _ = ValidateTextLength(strings.Repeat("a", 100), 10, 100)
	assert.True(t, ok)
}

func TestValidateCVContent(t *testing.T) {
	cv := "Work experience: 5 years backend. Education: BSc. Skills: Go, SQL."
	assert.Empty(t, ValidateCVContent(cv))

	warning := ValidateCVContent("A grocery list: milk, eggs, bread.")
	assert.Contains(t, warning, "doesn't look like a typical CV")

	// A single keyword hit is not enough.
	warning = ValidateCVContent("I have one job.")
	assert.NotEmpty(t, warning)
}

func TestValidateJobDescription(t *testing.T) {
	jd := "Requirements: 3+ years Go. Responsibilities: build APIs. Preferred: Kubernetes."
	assert.Empty(t, ValidateJobDescription(jd))

	warning := ValidateJobDescription("Once upon a time there was a dragon.")
	assert.Contains(t, warning, "doesn't look like a typical job description")
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "a\nb", SanitizeText("  a  \n\n\n   b  \n"))
	assert.Equal(t, "ab", SanitizeText("a\x00b"))
	assert.Equal(t, "", SanitizeText("   \n  \n "))
}
