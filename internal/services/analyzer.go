package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"alfredoptarigan/skillbridge/internal/apperrors"
	"alfredoptarigan/skillbridge/internal/config"
	"alfredoptarigan/skillbridge/internal/models"
	"alfredoptarigan/skillbridge/internal/repositories"
)

// AnalyzerService runs the full matching pipeline for one report:
// extraction, validation, completion call, normalization, persistence.
// The stages run strictly in order; normalization only ever sees the
// complete response text.
type AnalyzerService interface {
	AnalyzeReport(ctx context.Context, reportID uuid.UUID) error
	AnalyzeTexts(ctx context.Context, cvText, jobDescription string) (*models.AnalysisResult, []string, error)
}

type analyzerService struct {
	reportRepo repositories.ReportRepository
	docRepo    repositories.DocumentRepository
	completion CompletionClient
	pdfParser  PDFParserService
	analysis   config.AnalysisConfig
	maxRetries int
}

func NewAnalyzerService(
	reportRepo repositories.ReportRepository,
	docRepo repositories.DocumentRepository,
	completion CompletionClient,
	pdfParser PDFParserService,
	cfg *config.Config,
) AnalyzerService {
	return &analyzerService{
		reportRepo: reportRepo,
		docRepo:    docRepo,
		completion: completion,
		pdfParser:  pdfParser,
		analysis:   cfg.Analysis,
		maxRetries: cfg.Worker.RetryMaxAttempts,
	}
}

// AnalyzeReport implements AnalyzerService. Every failure is persisted on
// the report as a categorized error so the client polling for the result
// always gets a definite outcome.
func (a *analyzerService) AnalyzeReport(ctx context.Context, reportID uuid.UUID) error {
	if err := a.reportRepo.UpdateStatus(reportID, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	log.Printf("🔄 Starting analysis for report %s", reportID)

	report, err := a.reportRepo.FindByID(reportID)
	if err != nil {
		a.failReport(reportID, apperrors.AsError(err))
		return fmt.Errorf("failed to get report: %w", err)
	}

	cvDoc, err := a.docRepo.FindByID(report.CVDocumentID)
	if err != nil {
		a.failReport(reportID, apperrors.AsError(err))
		return fmt.Errorf("failed to get CV document: %w", err)
	}

	log.Println("📄 Extracting text from CV...")
	cvText, err := a.pdfParser.ExtractTextFromFile(cvDoc.FilePath)
	if err != nil {
		a.failReport(reportID, apperrors.AsError(err))
		return fmt.Errorf("failed to extract CV text: %w", err)
	}

	result, _, err := a.AnalyzeTexts(ctx, cvText, report.JobDescription)
	if err != nil {
		a.failReport(reportID, apperrors.AsError(err))
		return fmt.Errorf("analysis failed: %w", err)
	}

	if err := a.reportRepo.CompleteWithResult(reportID, result); err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	log.Printf("✅ Analysis completed for report %s (overall %d/100)", reportID, result.OverallScore)
	return nil
}

// AnalyzeTexts runs validation, completion and normalization on already
// extracted texts. The returned warnings are advisory content-shape flags
// that never block the analysis.
func (a *analyzerService) AnalyzeTexts(ctx context.Context, cvText, jobDescription string) (*models.AnalysisResult, []string, error) {
	cvText = SanitizeText(cvText)
	jobDescription = SanitizeText(jobDescription)

	if ok, reason := ValidateTextLength(cvText, a.analysis.CVMinLength, a.analysis.MaxTextLength); !ok {
		return nil, nil, apperrors.New(apperrors.KindValidationFailed,
			fmt.Sprintf("CV validation failed: %s", reason)).
			WithHint("Provide a longer CV.")
	}

	if ok, reason := ValidateTextLength(jobDescription, a.analysis.JDMinLength, a.analysis.MaxTextLength); !ok {
		return nil, nil, apperrors.New(apperrors.KindValidationFailed,
			fmt.Sprintf("job description validation failed: %s", reason)).
			WithHint("Provide a longer job description.")
	}

	var warnings []string
	if warning := ValidateCVContent(cvText); warning != "" {
		log.Printf("⚠️  %s", warning)
		warnings = append(warnings, warning)
	}
	if warning := ValidateJobDescription(jobDescription); warning != "" {
		log.Printf("⚠️  %s", warning)
		warnings = append(warnings, warning)
	}

	log.Println("🤖 Requesting analysis from completion endpoint...")
	response, err := a.generateWithRetry(ctx, cvText, jobDescription)
	if err != nil {
		return nil, warnings, err
	}

	result, err := ParseAnalysisResponse(response)
	if err != nil {
		return nil, warnings, err
	}

	return result, warnings, nil
}

// generateWithRetry re-issues the completion call on failure, up to
// maxRetries attempts. Auth failures are not retried; a bad key will not
// get better.
func (a *analyzerService) generateWithRetry(ctx context.Context, cvText, jobDescription string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= a.maxRetries; attempt++ {
		response, err := a.completion.AnalyzeCV(ctx, cvText, jobDescription)
		if err == nil {
			return response, nil
		}

		lastErr = err
		if apperrors.IsKind(err, apperrors.KindAuthError) {
			return "", err
		}

		select {
		case <-ctx.Done():
			return "", apperrors.Wrap(apperrors.KindTimeout, "analysis cancelled", ctx.Err())
		default:
		}

		if attempt < a.maxRetries {
			log.Printf("⚠️  Attempt %d failed: %v. Retrying...", attempt, err)
		}
	}

	return "", lastErr
}

func (a *analyzerService) failReport(reportID uuid.UUID, appErr *apperrors.Error) {
	if err := a.reportRepo.FailWithError(reportID, string(appErr.Kind), appErr.Message, appErr.Hint); err != nil {
		log.Printf("❌ Failed to persist error for report %s: %v", reportID, err)
	}
}
