package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/skillbridge/internal/models"
	"alfredoptarigan/skillbridge/internal/repositories"
)

type ExportHandler struct {
	reportRepo repositories.ReportRepository
}

func NewExportHandler(reportRepo repositories.ReportRepository) *ExportHandler {
	return &ExportHandler{
		reportRepo: reportRepo,
	}
}

// HandleExport handles GET /result/:id/export: the downloadable JSON
// artifact containing the full analysis, the user-selected focus skill and
// the derived search query.
func (h *ExportHandler) HandleExport(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid report ID format",
		})
	}

	report, err := h.reportRepo.FindByID(reportID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Analysis report not found",
		})
	}

	if report.Status != models.StatusCompleted {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":  "Analysis is not completed yet",
			"status": string(report.Status),
		})
	}

	result, err := repositories.DecodeResult(report)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Stored analysis result is unreadable",
		})
	}

	skill := strings.TrimSpace(c.Query("skill"))
	searchQuery, err := resolveSearchQuery(result, skill)
	if err != nil {
		return respondWithError(c, err)
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="cv_analysis.json"`)

	return c.JSON(models.AnalysisExport{
		Analysis:    *result,
		FocusSkill:  skill,
		SearchQuery: searchQuery,
	})
}
