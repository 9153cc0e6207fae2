package dto

import (
	"github.com/spec-kit/planner-service/internal/domain"
	"github.com/spec-kit/planner-service/internal/service"
)

// ImportedItemResponse summarizes one inserted holiday.
type ImportedItemResponse struct {
	ID    string          `json:"id"`
	Title string          `json:"title"`
	Date  string          `json:"date"`
	Type  domain.TaskType `json:"type"`
}

// ImportResponse reports an import run.
type ImportResponse struct {
	Imported int                    `json:"imported"`
	Skipped  int                    `json:"skipped"`
	Details  []ImportedItemResponse `json:"details"`
}

// NewImportResponse maps an import result to its wire shape.
func NewImportResponse(result *service.ImportResult) ImportResponse {
	details := make([]ImportedItemResponse, 0, len(result.Details))
	for _, item := range result.Details {
		details = append(details, ImportedItemResponse{
			ID:    item.ID,
			Title: item.Title,
			Date:  item.Date,
			Type:  item.Type,
		})
	}
	return ImportResponse{
		Imported: result.Imported,
		Skipped:  result.Skipped,
		Details:  details,
	}
}
