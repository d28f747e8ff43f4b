package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/skillbridge/internal/apperrors"
	"alfredoptarigan/skillbridge/internal/models"
	"alfredoptarigan/skillbridge/internal/repositories"
	"alfredoptarigan/skillbridge/internal/services"
)

type VideosHandler struct {
	reportRepo    repositories.ReportRepository
	searchService services.VideoSearchService
}

func NewVideosHandler(
	reportRepo repositories.ReportRepository,
	searchService services.VideoSearchService,
) *VideosHandler {
	return &VideosHandler{
		reportRepo:    reportRepo,
		searchService: searchService,
	}
}

// HandleGetVideos handles GET /result/:id/videos. The skill query parameter
// picks which gap to focus on; without it the analysis' own search query is
// used. The video list is rebuilt on every call, never cached.
func (h *VideosHandler) HandleGetVideos(c *fiber.Ctx) error {
	result, errResp := h.loadCompletedResult(c)
	if result == nil {
		return errResp
	}

	skill := strings.TrimSpace(c.Query("skill"))
	searchQuery, err := resolveSearchQuery(result, skill)
	if err != nil {
		return respondWithError(c, err)
	}

	numResults := c.QueryInt("num", 0)

	videos, err := h.searchService.SearchVideos(c.Context(), searchQuery, numResults)
	if err != nil {
		return respondWithError(c, err)
	}

	return c.JSON(models.VideosResponse{
		Skill:       skill,
		SearchQuery: searchQuery,
		Videos:      videos,
	})
}

func (h *VideosHandler) loadCompletedResult(c *fiber.Ctx) (*models.AnalysisResult, error) {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid report ID format",
		})
	}

	report, err := h.reportRepo.FindByID(reportID)
	if err != nil {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Analysis report not found",
		})
	}

	if report.Status != models.StatusCompleted {
		return nil, c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":  "Analysis is not completed yet",
			"status": string(report.Status),
		})
	}

	result, err := repositories.DecodeResult(report)
	if err != nil {
		return nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Stored analysis result is unreadable",
		})
	}

	return result, nil
}

// resolveSearchQuery derives the video search query from the chosen skill,
// falling back to the analysis' own suggested query. Placeholder skills
// ("Not specified") carry no searchable content and are rejected.
func resolveSearchQuery(result *models.AnalysisResult, skill string) (string, error) {
	if skill != "" {
		if strings.EqualFold(skill, "not specified") {
			return "", apperrors.New(apperrors.KindValidationFailed,
				"the selected skill is a placeholder, not a real gap").
				WithHint("Pick one of the identified missing skills.")
		}
		return services.BuildVideoSearchQuery(skill), nil
	}

	return result.YouTubeSearchQuery, nil
}
