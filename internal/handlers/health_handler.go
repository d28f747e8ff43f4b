package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/skillbridge/internal/services"
)

type HealthHandler struct {
	completion    services.CompletionClient
	searchService services.VideoSearchService
}

func NewHealthHandler(
	completion services.CompletionClient,
	searchService services.VideoSearchService,
) *HealthHandler {
	return &HealthHandler{
		completion:    completion,
		searchService: searchService,
	}
}

// HandleHealth handles GET /health.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now(),
	})
}

// HandleProviderHealth handles GET /health/providers: runs the lightweight
// connectivity probes against both upstream APIs. Probe failures degrade to
// false, never to an error response.
func (h *HealthHandler) HandleProviderHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"completion": h.completion.TestConnection(c.Context()),
		"search":     h.searchService.TestConnection(c.Context()),
	})
}
