package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/planner-service/internal/api/dto"
	"github.com/spec-kit/planner-service/internal/auth"
	"github.com/spec-kit/planner-service/internal/service"
	apperrors "github.com/spec-kit/planner-service/pkg/errorutil"
)

const (
	minImportYear = 1900
	maxImportYear = 2100
)

// ImportHandler exposes the holiday import endpoint.
type ImportHandler struct {
	imports *service.ImportService
}

// NewImportHandler constructs handler.
func NewImportHandler(importService *service.ImportService) *ImportHandler {
	return &ImportHandler{imports: importService}
}

// Nager handles POST /import/nager?country=XX&year=YYYY.
func (h *ImportHandler) Nager(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	country := c.Query("country")
	if !isCountryCode(country) {
		return apperrors.NewValidationError("country must be a two-letter code", map[string]any{"country": country})
	}

	yearParam := c.Query("year")
	year, err := strconv.Atoi(yearParam)
	if err != nil || year < minImportYear || year > maxImportYear {
		return apperrors.NewValidationError("year must be between 1900 and 2100", map[string]any{"year": yearParam})
	}

	result, err := h.imports.ImportHolidays(c.UserContext(), user.ID, country, year)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewImportResponse(result))
}

func isCountryCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
