package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"

	"alfredoptarigan/skillbridge/internal/apperrors"
	"alfredoptarigan/skillbridge/internal/config"
)

const analysisSystemInstruction = "You are a career coach AI that helps job seekers " +
	"improve their skills so they are qualified for desired jobs."

// CompletionClient sends a composed prompt to the completion endpoint and
// returns the raw response text. Parsing that text is the normalizer's job.
type CompletionClient interface {
	AnalyzeCV(ctx context.Context, cvText, jobDescription string) (string, error)
	TestConnection(ctx context.Context) bool
}

type geminiClient struct {
	client          *genai.Client
	modelName       string
	temperature     float32
	maxOutputTokens int32
	promptBuilder   *PromptBuilder
}

func NewCompletionClient(cfg *config.Config) (CompletionClient, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiClient{
		client:          client,
		modelName:       cfg.Gemini.Model,
		temperature:     cfg.Gemini.Temperature,
		maxOutputTokens: cfg.Gemini.MaxOutputTokens,
		promptBuilder:   NewPromptBuilder(cfg.Analysis.CVPromptBudget, cfg.Analysis.JDPromptBudget),
	}, nil
}

// AnalyzeCV implements CompletionClient.
func (g *geminiClient) AnalyzeCV(ctx context.Context, cvText, jobDescription string) (string, error) {
	prompt := g.promptBuilder.BuildAnalysisPrompt(cvText, jobDescription)
	log.Printf("📝 Analysis prompt length: %d characters", len(prompt))

	temperature := g.temperature
	genConfig := &genai.GenerateContentConfig{
		Temperature:       &temperature,
		MaxOutputTokens:   g.maxOutputTokens,
		SystemInstruction: genai.NewContentFromText(analysisSystemInstruction, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), genConfig)
	if err != nil {
		log.Printf("❌ Completion API error: %v", err)
		return "", classifyProviderError(err)
	}

	if resp == nil {
		return "", apperrors.New(apperrors.KindUnknown, "completion endpoint returned an empty response")
	}

	text := resp.Text()
	if text == "" {
		return "", apperrors.New(apperrors.KindUnknown, "no text content in completion response")
	}

	log.Printf("✅ Completion response received: %d characters", len(text))
	return text, nil
}

// TestConnection implements CompletionClient. It issues a minimal request
// with a tiny token budget and degrades every failure to false.
func (g *geminiClient) TestConnection(ctx context.Context) bool {
	genConfig := &genai.GenerateContentConfig{
		MaxOutputTokens: 10,
	}

	_, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text("test"), genConfig)
	if err != nil {
		log.Printf("⚠️  Completion connection test failed: %v", err)
		return false
	}

	return true
}

// classifyProviderError translates provider error text into a categorized
// error. Substring matching is confined to this boundary; nothing inward of
// it inspects error strings.
func classifyProviderError(err error) *apperrors.Error {
	message := strings.ToLower(err.Error())

	switch {
	case strings.Contains(message, "authentication"),
		strings.Contains(message, "api key"),
		strings.Contains(message, "401"):
		return apperrors.Wrap(apperrors.KindAuthError,
			"invalid API key for the completion endpoint", err).
			WithHint("Check the GEMINI_API_KEY environment variable.")
	case strings.Contains(message, "rate limit"),
		strings.Contains(message, "429"):
		return apperrors.Wrap(apperrors.KindRateLimited,
			"completion endpoint rate limit exceeded", err).
			WithHint("Wait a moment and try again.")
	case strings.Contains(message, "timeout"),
		strings.Contains(message, "deadline exceeded"):
		return apperrors.Wrap(apperrors.KindTimeout,
			"completion request timed out", err).
			WithHint("Try again.")
	case strings.Contains(message, "model") && strings.Contains(message, "not found"):
		return apperrors.Wrap(apperrors.KindModelUnavailable,
			"completion model not found", err).
			WithHint("Check the GEMINI_MODEL environment variable.")
	default:
		return apperrors.Wrap(apperrors.KindUnknown, err.Error(), err)
	}
}
