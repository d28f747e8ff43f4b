package models

// AnalysisResult is the validated outcome of one CV vs job description
// analysis. It is constructed exactly once per request by the response
// normalizer and never mutated afterwards.
//
// Invariants: every score is within 0-100, both skill lists are non-empty
// (falling back to the "Not specified" sentinel), gaps_analysis is at least
// 10 characters and youtube_search_query at least 3.
type AnalysisResult struct {
	OverallScore       int      `json:"overall_score"`
	SkillsMatch        int      `json:"skills_match"`
	ExperienceMatch    int      `json:"experience_match"`
	EducationMatch     int      `json:"education_match"`
	Strengths          []string `json:"strengths"`
	MissingSkills      []string `json:"missing_skills"`
	GapsAnalysis       string   `json:"gaps_analysis"`
	YouTubeSearchQuery string   `json:"youtube_search_query"`
}

// VideoResult is one recommended learning video. Built fresh on every
// search call, never persisted.
type VideoResult struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Channel   string `json:"channel"`
	Duration  string `json:"duration"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// AnalysisExport is the downloadable artifact: the full analysis plus the
// skill the user chose to focus on and the search query derived from it.
type AnalysisExport struct {
	Analysis    AnalysisResult `json:"analysis"`
	FocusSkill  string         `json:"focus_skill"`
	SearchQuery string         `json:"search_query"`
}
