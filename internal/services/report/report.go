// Package services содержит бизнес-логику месячных отчётов о
// прослушиваниях.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/soundvault/soundvault/internal/apperr"
	"github.com/soundvault/soundvault/internal/lib/sl"
	"github.com/soundvault/soundvault/internal/models"
)

// ReportRepository определяет метод построения отчёта в хранилище.
type ReportRepository interface {
	// GenreReport агрегирует прослушивания по месяцу и жанру за год
	// до указанного месяца включительно.
	GenreReport(ctx context.Context, consumerID int64, yearMonth time.Time) ([]models.GenrePlaybacks, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

const reportTTL = 10 * time.Minute

// ReportService реализует построение отчётов с кешированием.
type ReportService struct {
	repo  ReportRepository
	cache Cache
	log   *slog.Logger
}

// NewReportService создает новый экземпляр ReportService.
func NewReportService(repo ReportRepository, cache Cache, log *slog.Logger) *ReportService {
	return &ReportService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// MonthlyReport возвращает прослушивания потребителя по жанрам за
// двенадцать месяцев, заканчивающихся месяцем yearMonth (формат YYYY-MM).
func (s *ReportService) MonthlyReport(ctx context.Context, consumerID int64, yearMonth string) ([]models.GenrePlaybacks, error) {
	month, err := time.Parse("2006-01", yearMonth)
	if err != nil {
		return nil, apperr.New(apperr.InvalidInput, "report month must be in format YYYY-MM")
	}

	var result []models.GenrePlaybacks
	cacheKey := fmt.Sprintf("report:%d:%s", consumerID, yearMonth)
	found, err := s.cache.Get(ctx, cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.GenreReport(ctx, consumerID, month)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, cacheKey, result, reportTTL); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", cacheKey), sl.Err(err))
	}
	return result, nil
}
