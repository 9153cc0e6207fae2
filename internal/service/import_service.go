package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/planner-service/internal/domain"
	"github.com/spec-kit/planner-service/internal/nager"
	"github.com/spec-kit/planner-service/internal/observability"
	"github.com/spec-kit/planner-service/internal/repository"
	apperrors "github.com/spec-kit/planner-service/pkg/errorutil"
)

// ImportedItem summarizes one newly inserted holiday.
type ImportedItem struct {
	ID    string
	Title string
	Date  string
	Type  domain.TaskType
}

// ImportResult reports an import run. Skipped counts feed entries whose
// source id the owner already holds.
type ImportResult struct {
	Imported int
	Skipped  int
	Details  []ImportedItem
}

// HolidayFeed is the slice of the feed client the importer needs.
type HolidayFeed interface {
	PublicHolidays(ctx context.Context, country string, year int) ([]nager.Holiday, error)
}

// ImportService pulls public holidays into a user's planner. Repeated
// imports of the same country and year insert nothing new.
type ImportService struct {
	tasks   repository.TaskRepository
	feed    HolidayFeed
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewImportService constructs the service.
func NewImportService(tasks repository.TaskRepository, feed HolidayFeed, metrics *observability.Metrics, logger *zap.Logger) *ImportService {
	return &ImportService{tasks: tasks, feed: feed, metrics: metrics, logger: logger}
}

// ImportHolidays fetches the feed for a country and year and inserts every
// entry the owner does not already have. Feed failures abort the run
// before anything is written; an empty feed is a successful no-op.
func (s *ImportService) ImportHolidays(ctx context.Context, ownerID, country string, year int) (*ImportResult, error) {
	country = strings.ToUpper(country)

	holidays, err := s.feed.PublicHolidays(ctx, country, year)
	if err != nil {
		return nil, apperrors.NewUpstreamUnavailable("holiday feed unavailable", err)
	}
	if len(holidays) == 0 {
		return &ImportResult{Details: []ImportedItem{}}, nil
	}

	batch := make([]domain.Task, 0, len(holidays))
	for _, item := range holidays {
		task := nager.Normalize(item, country)
		task.OwnerID = ownerID
		batch = append(batch, task)
	}

	inserted, err := s.tasks.InsertManyDeduped(ctx, batch)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	result := &ImportResult{
		Imported: len(inserted),
		Skipped:  len(holidays) - len(inserted),
		Details:  make([]ImportedItem, 0, len(inserted)),
	}
	for _, task := range inserted {
		result.Details = append(result.Details, ImportedItem{
			ID:    task.ID,
			Title: task.Title,
			Date:  task.Date,
			Type:  task.Type,
		})
	}

	s.metrics.RecordImport(result.Imported, result.Skipped)
	s.logger.Info("holiday import completed",
		zap.String("country", country),
		zap.Int("year", year),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}
