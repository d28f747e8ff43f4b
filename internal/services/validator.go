package services

import (
	"fmt"
	"strings"
)

// Keyword sets used to flag input that does not look like the document it
// claims to be. The checks are advisory only and never block an analysis.
var (
	cvKeywords = []string{
		"experience", "education", "skills", "work", "university",
		"degree", "job", "position", "project", "achievement",
	}
	jobDescriptionKeywords = []string{
		"requirements", "responsibilities", "qualifications", "experience",
		"skills", "required", "preferred", "must have", "looking for",
	}
)

const minKeywordHits = 2

// ValidateTextLength enforces the minimum/maximum length of an input text.
// Returns ok plus a reason when the text is rejected.
func ValidateTextLength(text string, minLength, maxLength int) (bool, string) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false, "Text cannot be empty"
	}

	length := len(trimmed)
	if length < minLength {
		return false, fmt.Sprintf("Text too short (minimum %d characters, got %d)", minLength, length)
	}
	if length > maxLength {
		return false, fmt.Sprintf("Text too long (maximum %d characters, got %d)", maxLength, length)
	}

	return true, ""
}

// ValidateCVContent heuristically checks that the text looks like a CV.
// A warning is advisory; the analysis proceeds regardless.
func ValidateCVContent(text string) string {
	if countKeywordHits(text, cvKeywords) < minKeywordHits {
		return "Warning: This doesn't look like a typical CV. Results may be inaccurate."
	}
	return ""
}

// ValidateJobDescription heuristically checks that the text looks like a
// job description.
func ValidateJobDescription(text string) string {
	if countKeywordHits(text, jobDescriptionKeywords) < minKeywordHits {
		return "Warning: This doesn't look like a typical job description. Results may be inaccurate."
	}
	return ""
}

func countKeywordHits(text string, keywords []string) int {
	lowered := strings.ToLower(text)
	hits := 0
	for _, keyword := range keywords {
		if strings.Contains(lowered, keyword) {
			hits++
		}
	}
	return hits
}

// SanitizeText collapses excessive whitespace and strips null bytes from
// user-supplied text before it enters the pipeline.
func SanitizeText(text string) string {
	text = strings.ReplaceAll(text, "\x00", "")

	lines := strings.Split(text, "\n")
	var cleanedLines []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
