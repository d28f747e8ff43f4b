package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildAnalysisPrompt_ContainsRequiredFields(t *testing.T) {
	pb := NewPromptBuilder(2800, 1800)
	prompt := pb.BuildAnalysisPrompt("cv text", "jd text")

	for _, field := range []string{
		"overall_score", "skills_match", "experience_match", "education_match",
		"matching_skills", "missing_skills", "youtube_search_query", "skill_gap_analysis_summary",
	} {
		assert.Contains(t, prompt, field)
	}

	assert.Contains(t, prompt, "NEVER return all zeros or empty lists")
	assert.Contains(t, prompt, "BAD OUTPUT EXAMPLE")
	assert.Contains(t, prompt, "GOOD OUTPUT EXAMPLE")
	assert.Contains(t, prompt, "cv text")
	assert.Contains(t, prompt, "jd text")
}

func TestBuildAnalysisPrompt_TruncatesLongInputs(t *testing.T) {
	pb := NewPromptBuilder(100, 50)

	longCV := strings.Repeat("c", 500)
	longJD := strings.Repeat("j", 500)
	prompt := pb.BuildAnalysisPrompt(longCV, longJD)

	assert.Contains(t, prompt, strings.Repeat("c", 100)+truncationMarker)
	assert.Contains(t, prompt, strings.Repeat("j", 50)+truncationMarker)
	assert.NotContains(t, prompt, strings.Repeat("c", 101))
	assert.NotContains(t, prompt, strings.Repeat("j", 51))
}

func TestBuildAnalysisPrompt_ShortInputsUntouched(t *testing.T) {
	pb := NewPromptBuilder(2800, 1800)
	prompt := pb.BuildAnalysisPrompt("short cv", "short jd")

	assert.Contains(t, prompt, "short cv")
	assert.NotContains(t, prompt, "short cv"+truncationMarker)
}

func TestBuildVideoSearchQuery(t *testing.T) {
	assert.Equal(t, "Kubernetes tutorial, latest on youtube", BuildVideoSearchQuery("Kubernetes"))
}
