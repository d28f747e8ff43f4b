package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/skillbridge/internal/apperrors"
)

// statusForKind maps every error category to an HTTP status. Document
// problems are the client's to fix; model and search failures are upstream
// faults.
var statusForKind = map[apperrors.Kind]int{
	apperrors.KindValidationFailed:  fiber.StatusBadRequest,
	apperrors.KindExtractionFailed:  fiber.StatusBadRequest,
	apperrors.KindEncryptedDocument: fiber.StatusBadRequest,
	apperrors.KindEmptyContent:      fiber.StatusBadRequest,

	apperrors.KindMalformedResponse: fiber.StatusBadGateway,
	apperrors.KindEmptyAnalysis:     fiber.StatusBadGateway,
	apperrors.KindAuthError:         fiber.StatusBadGateway,
	apperrors.KindModelUnavailable:  fiber.StatusBadGateway,
	apperrors.KindSearchUnavailable: fiber.StatusBadGateway,

	apperrors.KindRateLimited: fiber.StatusTooManyRequests,
	apperrors.KindTimeout:     fiber.StatusGatewayTimeout,
}

// respondWithError writes the categorized error as a JSON body with the
// mapped status code.
func respondWithError(c *fiber.Ctx, err error) error {
	appErr := apperrors.AsError(err)

	status, ok := statusForKind[appErr.Kind]
	if !ok {
		status = fiber.StatusInternalServerError
	}

	body := fiber.Map{
		"error": appErr.Message,
		"kind":  string(appErr.Kind),
	}
	if appErr.Hint != "" {
		body["hint"] = appErr.Hint
	}

	return c.Status(status).JSON(body)
}
