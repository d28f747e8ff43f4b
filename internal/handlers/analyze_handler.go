package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/skillbridge/internal/config"
	"alfredoptarigan/skillbridge/internal/models"
	"alfredoptarigan/skillbridge/internal/repositories"
	"alfredoptarigan/skillbridge/internal/services"
)

type AnalyzeHandler struct {
	reportRepo repositories.ReportRepository
	docRepo    repositories.DocumentRepository
	analyzer   services.AnalyzerService
	worker     services.Worker
	analysis   config.AnalysisConfig
}

func NewAnalyzeHandler(
	reportRepo repositories.ReportRepository,
	docRepo repositories.DocumentRepository,
	analyzer services.AnalyzerService,
	worker services.Worker,
	cfg *config.Config,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		reportRepo: reportRepo,
		docRepo:    docRepo,
		analyzer:   analyzer,
		worker:     worker,
		analysis:   cfg.Analysis,
	}
}

// HandleAnalyze handles POST /analyze: queues an analysis of an uploaded CV
// against the supplied job description and returns the report ID to poll.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	var req models.AnalyzeRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.CVDocumentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "cv_document_id is required",
		})
	}

	if ok, reason := services.ValidateTextLength(req.JobDescription, h.analysis.JDMinLength, h.analysis.MaxTextLength); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job description validation failed: " + reason,
		})
	}

	cvDocID, err := uuid.Parse(req.CVDocumentID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid cv_document_id format",
		})
	}

	if _, err := h.docRepo.FindByID(cvDocID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "CV document not found",
		})
	}

	report := &models.AnalysisReport{
		ID:             uuid.New(),
		CVDocumentID:   cvDocID,
		JobDescription: services.SanitizeText(req.JobDescription),
		Status:         models.StatusQueued,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := h.reportRepo.Create(report); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create analysis report",
		})
	}

	h.worker.EnqueueJob(report.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.AnalyzeResponse{
		ID:     report.ID.String(),
		Status: string(models.StatusQueued),
	})
}

// HandleAnalyzeText handles POST /analyze/text: a synchronous analysis of
// raw texts, useful when the CV text is already extracted client-side.
func (h *AnalyzeHandler) HandleAnalyzeText(c *fiber.Ctx) error {
	var req models.AnalyzeTextRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	result, warnings, err := h.analyzer.AnalyzeTexts(c.Context(), req.CVText, req.JobDescription)
	if err != nil {
		return respondWithError(c, err)
	}

	return c.JSON(models.AnalyzeTextResponse{
		Analysis: result,
		Warnings: warnings,
	})
}
