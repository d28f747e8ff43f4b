package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"alfredoptarigan/skillbridge/internal/apperrors"
	"alfredoptarigan/skillbridge/internal/models"
)

// Fallbacks applied when the model leaves a field blank or useless.
const (
	fallbackListEntry    = "Not specified"
	fallbackGapsAnalysis = "Analysis not available. Please review the strengths and missing skills above."
	fallbackSearchQuery  = "skill improvement tutorial"

	minGapsAnalysisLength = 10
	minSearchQueryLength  = 3

	hintRetry = "Try again, or slightly shorten your CV / job description."
)

// Key aliases observed in model output for each logical field, in resolution
// order. A value of 0 / null / empty means "try the next alias"; the hard
// default applies only after the whole list is exhausted.
var (
	overallScoreKeys = []string{"overall_score", "Overall Match Score", "Match Score", "match_score"}
	skillsMatchKeys  = []string{"skills_match", "Skills Match"}
	experienceKeys   = []string{"experience_match", "Experience Match"}
	educationKeys    = []string{"education_match", "Education Match"}

	strengthsKeys = []string{
		"matching_skills", "strong_skills", "matching_strong_skills",
		"Matching/Strong Skills", "Matching / strong skills", "Matching Skills",
	}
	missingSkillsKeys = []string{
		"missing_skills", "missing_weak_skills",
		"Missing/Weak Skills", "Missing / weak skills", "Missing Skills",
	}

	summaryKeys = []string{"skill_gap_analysis_summary", "Summary", "Skill Gap Summary"}
	queryKeys   = []string{"youtube_search_query", "Search Query", "YouTube search query", "YouTube Search Query"}
)

// Placeholder strings that make a skill list semantically empty even when
// it is structurally non-empty.
var emptyListSentinels = map[string]struct{}{
	"not specified": {},
	"n/a":           {},
	"none":          {},
}

// ParseAnalysisResponse turns the raw completion text into a validated
// AnalysisResult. The model output is unreliable: it may wrap the JSON in
// code fences, rename keys, nest skill entries, or return a structurally
// valid but semantically empty payload. Each stage handles one of those
// failure modes and aborts the rest on error.
//
// Failure taxonomy: MalformedResponse (no JSON recoverable), EmptyAnalysis
// (all signals empty at once), ValidationFailed (score out of range or
// uncoercible). It never panics and never returns out-of-range scores.
func ParseAnalysisResponse(raw string) (*models.AnalysisResult, error) {
	// Stage 1: recover a JSON object from the text.
	payload, err := decodeRawPayload(raw)
	if err != nil {
		return nil, err
	}

	// Stage 2: resolve each logical field across its key aliases.
	overall := resolveField(payload, overallScoreKeys)
	skills := resolveField(payload, skillsMatchKeys)
	experience := resolveField(payload, experienceKeys)
	education := resolveField(payload, educationKeys)
	strengthsRaw := resolveField(payload, strengthsKeys)
	missingRaw := resolveField(payload, missingSkillsKeys)
	summary := asString(resolveField(payload, summaryKeys))
	query := asString(resolveField(payload, queryKeys))

	// Stage 3: coerce skill lists to display strings.
	strengths := coerceSkillList(strengthsRaw)
	missing := coerceSkillList(missingRaw)

	// Scores must be integers before the emptiness guard can compare them.
	scores := make([]int, 4)
	for i, field := range []struct {
		name  string
		value interface{}
	}{
		{"overall_score", overall},
		{"skills_match", skills},
		{"experience_match", experience},
		{"education_match", education},
	} {
		n, err := coerceScore(field.value)
		if err != nil {
			return nil, apperrors.Wrap(
				apperrors.KindValidationFailed,
				fmt.Sprintf("failed to read %s from model response", field.name),
				err,
			).WithHint(hintRetry)
		}
		scores[i] = n
	}

	// Stage 4: semantic-emptiness guard. A zero-filled, empty payload is a
	// model non-answer and must not surface as a legitimate low score.
	allZeroScores := scores[0] == 0 && scores[1] == 0 && scores[2] == 0 && scores[3] == 0
	if allZeroScores &&
		isTrulyEmptyList(strengths) &&
		isTrulyEmptyList(missing) &&
		strings.TrimSpace(summary) == "" &&
		strings.TrimSpace(query) == "" {
		return nil, apperrors.New(
			apperrors.KindEmptyAnalysis,
			"the model returned a structurally valid but completely empty analysis",
		).WithHint(hintRetry)
	}

	// Stage 5: range validation and defaulting. Out-of-range scores are
	// rejected, not clamped.
	for i, name := range []string{"overall_score", "skills_match", "experience_match", "education_match"} {
		if scores[i] < 0 || scores[i] > 100 {
			return nil, apperrors.New(
				apperrors.KindValidationFailed,
				fmt.Sprintf("%s out of range: %d (must be 0-100)", name, scores[i]),
			).WithHint(hintRetry)
		}
	}

	if len(strengths) == 0 {
		strengths = []string{fallbackListEntry}
	}
	if len(missing) == 0 {
		missing = []string{fallbackListEntry}
	}

	summary = strings.TrimSpace(summary)
	if len(summary) < minGapsAnalysisLength {
		summary = fallbackGapsAnalysis
	}

	query = strings.TrimSpace(query)
	if len(query) < minSearchQueryLength {
		query = fallbackSearchQuery
	}

	return &models.AnalysisResult{
		OverallScore:       scores[0],
		SkillsMatch:        scores[1],
		ExperienceMatch:    scores[2],
		EducationMatch:     scores[3],
		Strengths:          strengths,
		MissingSkills:      missing,
		GapsAnalysis:       summary,
		YouTubeSearchQuery: query,
	}, nil
}

// decodeRawPayload strips code-fence wrapping and parses the text into an
// untyped map. If the direct parse fails it retries on the first-{ to last-}
// span of the original text, which recovers JSON buried in conversational
// filler.
func decodeRawPayload(raw string) (map[string]interface{}, error) {
	cleaned := stripCodeFences(raw)

	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned), &payload); err == nil {
		return payload, nil
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start != -1 && end > start {
		if err := json.Unmarshal([]byte(raw[start:end+1]), &payload); err == nil {
			return payload, nil
		}
		return nil, apperrors.New(
			apperrors.KindMalformedResponse,
			"model returned invalid JSON even after extraction",
		).WithHint(hintRetry)
	}

	return nil, apperrors.New(
		apperrors.KindMalformedResponse,
		"model did not return JSON",
	).WithHint(hintRetry)
}

func stripCodeFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = cleaned[len("```json"):]
	}
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

// resolveField returns the first alias whose value is present and non-empty.
func resolveField(payload map[string]interface{}, keys []string) interface{} {
	for _, key := range keys {
		if value, ok := payload[key]; ok && isPresent(value) {
			return value
		}
	}
	return nil
}

// isPresent mirrors the "try next alias" rule: nil, zero numbers, empty
// strings and empty collections all count as absent.
func isPresent(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0
	case []interface{}:
		return len(v) > 0
	case map[string]interface{}:
		return len(v) > 0
	default:
		return true
	}
}

// coerceSkillList renders every list entry as a display string. Plain
// strings pass through; structured entries become "<name> (importance <n>/10)"
// when a weight is present; anything else is stringified verbatim. A bare
// string for the whole list is wrapped into a single-element slice.
func coerceSkillList(value interface{}) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		return []string{v}
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, coerceSkillEntry(item))
		}
		return out
	default:
		return nil
	}
}

func coerceSkillEntry(item interface{}) string {
	switch entry := item.(type) {
	case string:
		return entry
	case map[string]interface{}:
		name := entryDisplayName(entry)
		if importance, ok := entry["importance"]; ok && importance != nil {
			return fmt.Sprintf("%s (importance %s/10)", name, stringifyValue(importance))
		}
		return name
	default:
		return stringifyValue(item)
	}
}

func entryDisplayName(entry map[string]interface{}) string {
	if v, ok := entry["name"]; ok && isPresent(v) {
		return stringifyValue(v)
	}
	if v, ok := entry["skill"]; ok && isPresent(v) {
		return stringifyValue(v)
	}
	return stringifyValue(entry)
}

// isTrulyEmptyList reports whether a list carries no real information:
// nothing left after trimming, or nothing but placeholder sentinels.
func isTrulyEmptyList(list []string) bool {
	for _, item := range list {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		if _, sentinel := emptyListSentinels[strings.ToLower(trimmed)]; !sentinel {
			return false
		}
	}
	return true
}

// coerceScore converts a resolved score value to an int. A missing value
// (all aliases exhausted) defaults to 0; an uncoercible one is an error.
func coerceScore(value interface{}) (int, error) {
	switch v := value.(type) {
	case nil:
		return 0, nil
	case float64:
		return int(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		trimmed := strings.TrimSpace(v)
		if n, err := strconv.Atoi(trimmed); err == nil {
			return n, nil
		}
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return int(f), nil
		}
		return 0, fmt.Errorf("cannot convert %q to an integer score", v)
	default:
		return 0, fmt.Errorf("cannot convert %T to an integer score", value)
	}
}

func asString(value interface{}) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return stringifyValue(value)
}

func stringifyValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", value)
	}
}
