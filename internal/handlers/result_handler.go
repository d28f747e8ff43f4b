package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/skillbridge/internal/models"
	"alfredoptarigan/skillbridge/internal/repositories"
)

type ResultHandler struct {
	reportRepo repositories.ReportRepository
}

func NewResultHandler(reportRepo repositories.ReportRepository) *ResultHandler {
	return &ResultHandler{
		reportRepo: reportRepo,
	}
}

// HandleGetResult handles GET /result/:id. A failed report carries its
// categorized error so the caller always sees an explained outcome.
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	idParam := c.Params("id")
	reportID, err := uuid.Parse(idParam)
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

	response := models.ResultResponse{
		ID:     report.ID.String(),
		Status: string(report.Status),
	}

	if report.Status == models.StatusCompleted {
		result, err := repositories.DecodeResult(report)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Stored analysis result is unreadable",
			})
		}
		response.Result = result
	}

	if report.Status == models.StatusFailed {
		response.ErrorKind = report.ErrorKind
		response.ErrorMessage = report.ErrorMessage
		response.ErrorHint = report.ErrorHint
	}

	return c.JSON(response)
}
