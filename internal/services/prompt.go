package services

import (
	"fmt"
	"log"
)

const truncationMarker = "..."

// PromptBuilder composes the analysis prompt sent to the completion
// endpoint. Inputs are truncated independently to a fixed character budget
// so very long CVs cannot drift the model away from the required format.
type PromptBuilder struct {
	cvBudget int
	jdBudget int
}

func NewPromptBuilder(cvBudget, jdBudget int) *PromptBuilder {
	return &PromptBuilder{
		cvBudget: cvBudget,
		jdBudget: jdBudget,
	}
}

// BuildAnalysisPrompt creates the CV vs job description analysis prompt.
// The instructions spell out the eight required fields, forbid an all-empty
// answer and include a bad/good worked example pair, which in practice is
// what keeps the model's output parseable.
func (pb *PromptBuilder) BuildAnalysisPrompt(cvText, jobDescription string) string {
	if len(cvText) > pb.cvBudget {
		cvText = cvText[:pb.cvBudget] + truncationMarker
		log.Printf("⚠️  CV truncated to %d characters", pb.cvBudget)
	}

	if len(jobDescription) > pb.jdBudget {
		jobDescription = jobDescription[:pb.jdBudget] + truncationMarker
		log.Printf("⚠️  Job description truncated to %d characters", pb.jdBudget)
	}

	return fmt.Sprintf(`SYSTEM INSTRUCTION (READ CAREFULLY AND FOLLOW STRICTLY):

You are an AI career analyst. Your ONLY task is to compare a CV to a Job Description and return a STRICT JSON object.

ABSOLUTE RULES:
- DO NOT repeat or rewrite the CV text.
- DO NOT repeat or rewrite the Job Description text.
- DO NOT output explanations, markdown, commentary, or any text outside the JSON.
- The output MUST:
  - Start with '{'
  - End with '}'
  - Contain EXACTLY the required keys (no more, no less).
  - NEVER omit any field.
  - NEVER return all zeros or empty lists.
  - NEVER leave skill_gap_analysis_summary empty.

You must deeply analyze the CV against the Job Description and produce a realistic, non-trivial evaluation.

REQUIRED JSON FORMAT (KEYS AND TYPES):

{
  "overall_score": 0,
  "skills_match": 0,
  "experience_match": 0,
  "education_match": 0,
  "matching_skills": [],
  "missing_skills": [],
  "youtube_search_query": "",
  "skill_gap_analysis_summary": ""
}

MEANINGS:
- overall_score: integer 0-100, overall match between candidate and role.
- skills_match: integer 0-100, how well their skills align with the JD.
- experience_match: integer 0-100, how well their years/type of experience align.
- education_match: integer 0-100, how well education fits the requirements.
- matching_skills: list of STRINGS describing strong or matching skills.
- missing_skills: list of STRINGS describing concrete missing/weak skills.
- youtube_search_query: a single STRING query for the most important missing skill.
  - MUST end with ", latest on youtube".
- skill_gap_analysis_summary: 150-250 word professional narrative summarising:
  - key strengths
  - most critical gaps
  - how gaps affect readiness
  - what to learn next.

IMPORTANT CONSTRAINTS:
- DO NOT use nested objects inside matching_skills or missing_skills.
  Example: ["TensorFlow", "Kubernetes", "Azure DevOps"], NOT [{"name": "TensorFlow"}].
- DO NOT return placeholder or dummy analysis.
- DO NOT return all scores as 0.
- DO NOT return empty arrays for both matching_skills and missing_skills.
- DO NOT leave skill_gap_analysis_summary blank.

BAD OUTPUT EXAMPLE (NEVER DO THIS):
{
  "overall_score": 0,
  "skills_match": 0,
  "experience_match": 0,
  "education_match": 0,
  "matching_skills": [],
  "missing_skills": [],
  "youtube_search_query": "",
  "skill_gap_analysis_summary": ""
}

GOOD OUTPUT EXAMPLE (STRUCTURE ONLY, CONTENT WILL DIFFER):
{
  "overall_score": 68,
  "skills_match": 72,
  "experience_match": 65,
  "education_match": 80,
  "matching_skills": [
    "Strong Python for data engineering and ML",
    "Hands-on experience with AWS (Lambda, S3, SageMaker)",
    "Good foundation in ML model training and evaluation"
  ],
  "missing_skills": [
    "Kubernetes for container orchestration",
    "Experience with Spark for large-scale data processing",
    "Formal MLOps tools such as MLflow"
  ],
  "youtube_search_query": "Kubernetes for data engineers tutorial, latest on youtube",
  "skill_gap_analysis_summary": "..."
}

NOW ANALYZE THE FOLLOWING DATA:

CV TEXT (DO NOT ECHO THIS BACK):
%s

JOB DESCRIPTION TEXT (DO NOT ECHO THIS BACK):
%s

NOW OUTPUT ONLY A VALID, NON-EMPTY JSON OBJECT IN THE REQUIRED FORMAT.
START WITH '{' AND END WITH '}'. NO OTHER TEXT.`, cvText, jobDescription)
}

// BuildVideoSearchQuery derives the video search query for one skill the
// user chose to focus on.
func BuildVideoSearchQuery(skill string) string {
	return fmt.Sprintf("%s tutorial, latest on youtube", skill)
}
